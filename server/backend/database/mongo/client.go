/*
 * Copyright 2025 The DocVault Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package mongo implements database interfaces using MongoDB.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/docvault-team/docvault/api/types"
	"github.com/docvault-team/docvault/pkg/cache"
	"github.com/docvault-team/docvault/server/backend/database"
	"github.com/docvault-team/docvault/server/logging"
)

const (
	vaultCacheSize = 256
	vaultCacheTTL  = 10 * time.Second
)

// Client is a client that connects to Mongo DB and reads or saves DocVault data.
type Client struct {
	config *Config
	client *mongo.Client

	vaultCache *cache.LRUWithExpires[uint64, *database.VaultInfo]
}

// Dial creates an instance of Client and dials the given MongoDB.
func Dial(conf *Config) (*Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), conf.ParseConnectionTimeout())
	defer cancel()

	clientOptions := options.Client().ApplyURI(conf.ConnectionURI)

	if conf.MonitoringEnabled {
		threshold, err := time.ParseDuration(conf.MonitoringSlowQueryThreshold)
		if err != nil {
			return nil, fmt.Errorf("parse slow query threshold: %w", err)
		}

		monitor := NewQueryMonitor(&MonitorConfig{
			Enabled:            conf.MonitoringEnabled,
			SlowQueryThreshold: threshold,
		})

		clientOptions.SetMonitor(monitor.CreateCommandMonitor())
	}

	client, err := mongo.Connect(clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	ctxPing, cancel := context.WithTimeout(ctx, conf.ParsePingTimeout())
	defer cancel()

	if err := client.Ping(ctxPing, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	if err := ensureIndexes(ctx, client.Database(conf.DocVaultDatabase)); err != nil {
		return nil, err
	}

	vaultCache, err := cache.NewLRUWithExpires[uint64, *database.VaultInfo](
		vaultCacheSize,
		vaultCacheTTL,
		"vault",
	)
	if err != nil {
		return nil, fmt.Errorf("initialize vault cache: %w", err)
	}

	logging.DefaultLogger().Infof(
		"MongoDB connected, URI: %s, DB: %s",
		conf.ConnectionURI,
		conf.DocVaultDatabase,
	)

	return &Client{
		config:     conf,
		client:     client,
		vaultCache: vaultCache,
	}, nil
}

// Close all resources of this client.
func (c *Client) Close() error {
	if err := c.client.Disconnect(context.Background()); err != nil {
		return fmt.Errorf("close mongo client: %w", err)
	}

	c.vaultCache.Purge()

	return nil
}

// Caches returns the caches of this client for statistics registration.
func (c *Client) Caches() []cache.StatsProvider {
	return []cache.StatsProvider{c.vaultCache}
}

// RegisterVault stores a new vault record owned by the given principal and
// assigns the next vault ID in sequence. The sequence advances only after
// the fields pass validation, so a rejected call never consumes an ID.
func (c *Client) RegisterVault(
	ctx context.Context,
	owner types.Principal,
	height uint64,
	fields *types.VaultFields,
) (*database.VaultInfo, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	id, err := c.nextSeq(ctx, ColVaults)
	if err != nil {
		return nil, err
	}

	info := database.NewVaultInfo(id, owner, height, fields)
	if _, err := c.collection(ColVaults).InsertOne(ctx, info); err != nil {
		return nil, fmt.Errorf("insert vault: %w", err)
	}

	return info, nil
}

// UpdateVault overwrites the mutable fields of the vault with the given ID.
func (c *Client) UpdateVault(
	ctx context.Context,
	caller types.Principal,
	height uint64,
	vaultID uint64,
	fields *types.UpdatableVaultFields,
) (*database.VaultInfo, error) {
	// The ownership check reads the stored record directly so it never
	// trusts a cached copy.
	info, err := c.findVaultInfo(ctx, vaultID)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, fmt.Errorf("%d: %w", vaultID, types.ErrVaultNotFound)
	}
	if info.Owner != caller {
		return nil, fmt.Errorf("%s: %w", caller, types.ErrUnauthorized)
	}

	if err := fields.Validate(); err != nil {
		return nil, err
	}

	res := c.collection(ColVaults).FindOneAndUpdate(ctx, bson.M{
		"vault_id": vaultID,
		"owner":    caller,
	}, bson.M{
		"$set": bson.M{
			"title":               fields.Title,
			"fingerprint":         fields.Fingerprint,
			"narrative":           fields.Narrative,
			"keywords":            fields.Keywords,
			"modification_height": height,
		},
	}, options.FindOneAndUpdate().SetReturnDocument(options.After))

	updated := database.VaultInfo{}
	if err := res.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%d: %w", vaultID, types.ErrVaultNotFound)
		}
		return nil, fmt.Errorf("decode vault info: %w", err)
	}

	c.vaultCache.Remove(vaultID)

	return &updated, nil
}

// FindVaultInfoByID returns the vault with the given ID, or nil if absent.
func (c *Client) FindVaultInfoByID(ctx context.Context, vaultID uint64) (*database.VaultInfo, error) {
	if info, ok := c.vaultCache.Get(vaultID); ok {
		return info.DeepCopy(), nil
	}

	info, err := c.findVaultInfo(ctx, vaultID)
	if err != nil || info == nil {
		return nil, err
	}

	c.vaultCache.Add(vaultID, info.DeepCopy())

	return info, nil
}

// ListVaultInfosByOwner returns all vaults owned by the given principal,
// ordered by vault ID.
func (c *Client) ListVaultInfosByOwner(
	ctx context.Context,
	owner types.Principal,
) ([]*database.VaultInfo, error) {
	cursor, err := c.collection(ColVaults).Find(ctx, bson.M{
		"owner": owner,
	}, options.Find().SetSort(bson.M{"vault_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("find vault infos: %w", err)
	}

	var infos []*database.VaultInfo
	if err := cursor.All(ctx, &infos); err != nil {
		return nil, fmt.Errorf("fetch vault infos: %w", err)
	}

	return infos, nil
}

// VaultCount returns the number of vaults registered so far.
func (c *Client) VaultCount(ctx context.Context) (uint64, error) {
	result := c.collection(ColSequences).FindOne(ctx, bson.M{
		"_id": ColVaults,
	})

	seq := struct {
		Value uint64 `bson:"value"`
	}{}
	if err := result.Decode(&seq); err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, nil
		}
		return 0, fmt.Errorf("decode sequence: %w", err)
	}

	return seq.Value, nil
}

// DelegateAccess stores a privilege grant for the given delegate on the given
// vault. A grant for the same (vault, delegate) pair is replaced.
func (c *Client) DelegateAccess(
	ctx context.Context,
	caller types.Principal,
	height uint64,
	vaultID uint64,
	delegate types.Principal,
	level types.AccessLevel,
	duration uint64,
	modificationsAllowed bool,
) (*database.GrantInfo, error) {
	info, err := c.findVaultInfo(ctx, vaultID)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, fmt.Errorf("%d: %w", vaultID, types.ErrVaultNotFound)
	}
	if info.Owner != caller {
		return nil, fmt.Errorf("%s: %w", caller, types.ErrUnauthorized)
	}

	if err := delegate.Validate(); err != nil {
		return nil, err
	}
	if delegate == caller {
		return nil, fmt.Errorf("delegate %s is the vault owner: %w", delegate, types.ErrInvalidInput)
	}
	if err := level.Validate(); err != nil {
		return nil, err
	}
	if err := types.ValidateGrantDuration(duration); err != nil {
		return nil, err
	}

	grantInfo := database.NewGrantInfo(vaultID, delegate, level, modificationsAllowed, height, duration)
	if _, err := c.collection(ColGrants).ReplaceOne(ctx, bson.M{
		"vault_id": vaultID,
		"delegate": delegate,
	}, grantInfo, options.Replace().SetUpsert(true)); err != nil {
		return nil, fmt.Errorf("upsert grant: %w", err)
	}

	return grantInfo, nil
}

// FindGrantInfo returns the grant for the given vault and delegate, or nil
// if absent.
func (c *Client) FindGrantInfo(
	ctx context.Context,
	vaultID uint64,
	delegate types.Principal,
) (*database.GrantInfo, error) {
	result := c.collection(ColGrants).FindOne(ctx, bson.M{
		"vault_id": vaultID,
		"delegate": delegate,
	})

	info := database.GrantInfo{}
	if err := result.Decode(&info); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("decode grant info: %w", err)
	}

	return &info, nil
}

// ListGrantInfosByVault returns all grants on the given vault, ordered by
// delegate.
func (c *Client) ListGrantInfosByVault(
	ctx context.Context,
	vaultID uint64,
) ([]*database.GrantInfo, error) {
	cursor, err := c.collection(ColGrants).Find(ctx, bson.M{
		"vault_id": vaultID,
	}, options.Find().SetSort(bson.M{"delegate": 1}))
	if err != nil {
		return nil, fmt.Errorf("find grant infos: %w", err)
	}

	var infos []*database.GrantInfo
	if err := cursor.All(ctx, &infos); err != nil {
		return nil, fmt.Errorf("fetch grant infos: %w", err)
	}

	return infos, nil
}

// findVaultInfo reads the vault with the given ID from the collection.
func (c *Client) findVaultInfo(ctx context.Context, vaultID uint64) (*database.VaultInfo, error) {
	result := c.collection(ColVaults).FindOne(ctx, bson.M{
		"vault_id": vaultID,
	})

	info := database.VaultInfo{}
	if err := result.Decode(&info); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("decode vault info: %w", err)
	}

	return &info, nil
}

// nextSeq advances the named sequence atomically and returns the new value.
func (c *Client) nextSeq(ctx context.Context, name string) (uint64, error) {
	result := c.collection(ColSequences).FindOneAndUpdate(ctx, bson.M{
		"_id": name,
	}, bson.M{
		"$inc": bson.M{"value": int64(1)},
	}, options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After))

	seq := struct {
		Value uint64 `bson:"value"`
	}{}
	if err := result.Decode(&seq); err != nil {
		return 0, fmt.Errorf("%s: next sequence: %w", name, err)
	}

	return seq.Value, nil
}

func (c *Client) collection(
	name string,
	opts ...options.Lister[options.CollectionOptions],
) *mongo.Collection {
	return c.client.
		Database(c.config.DocVaultDatabase).
		Collection(name, opts...)
}
