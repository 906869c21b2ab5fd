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

// Package vaults provides the vault related business logic.
package vaults

import (
	"context"
	"time"

	"github.com/docvault-team/docvault/api/types"
	"github.com/docvault-team/docvault/api/types/events"
	"github.com/docvault-team/docvault/server/backend"
	"github.com/docvault-team/docvault/server/backend/messagebroker"
	"github.com/docvault-team/docvault/server/logging"
)

// RegisterVault registers a new vault owned by the given principal. The
// vault is stamped with the given height and assigned the next vault id.
func RegisterVault(
	ctx context.Context,
	be *backend.Backend,
	owner types.Principal,
	height uint64,
	fields *types.VaultFields,
) (*types.Vault, error) {
	start := time.Now()
	info, err := be.DB.RegisterVault(ctx, owner, height, fields)
	if err != nil {
		return nil, err
	}
	be.Metrics.AddVaultOperation("register")
	be.Metrics.ObserveVaultOperationSeconds("register", time.Since(start).Seconds())

	publishEvent(be, events.VaultEvent{
		Type:    events.VaultRegisteredEvent,
		VaultID: info.ID,
		Actor:   owner,
		Height:  height,
	})

	return info.ToVault(), nil
}

// UpdateVault overwrites the mutable fields of the vault with the given id.
// Only the owner may update a vault.
func UpdateVault(
	ctx context.Context,
	be *backend.Backend,
	caller types.Principal,
	height uint64,
	vaultID uint64,
	fields *types.UpdatableVaultFields,
) (*types.Vault, error) {
	start := time.Now()
	info, err := be.DB.UpdateVault(ctx, caller, height, vaultID, fields)
	if err != nil {
		return nil, err
	}
	be.Metrics.AddVaultOperation("update")
	be.Metrics.ObserveVaultOperationSeconds("update", time.Since(start).Seconds())

	publishEvent(be, events.VaultEvent{
		Type:    events.VaultUpdatedEvent,
		VaultID: info.ID,
		Actor:   caller,
		Height:  height,
	})

	return info.ToVault(), nil
}

// GetVault returns the vault with the given id. It returns nil if no vault
// with the id exists.
func GetVault(
	ctx context.Context,
	be *backend.Backend,
	vaultID uint64,
) (*types.Vault, error) {
	info, err := be.DB.FindVaultInfoByID(ctx, vaultID)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, nil
	}

	return info.ToVault(), nil
}

// ListVaults lists all vaults owned by the given principal.
func ListVaults(
	ctx context.Context,
	be *backend.Backend,
	owner types.Principal,
) ([]*types.Vault, error) {
	infos, err := be.DB.ListVaultInfosByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}

	var vaults []*types.Vault
	for _, info := range infos {
		vaults = append(vaults, info.ToVault())
	}

	return vaults, nil
}

// GetRegistryStats returns the current statistics of the registry.
func GetRegistryStats(
	ctx context.Context,
	be *backend.Backend,
) (*types.RegistryStats, error) {
	count, err := be.DB.VaultCount(ctx)
	if err != nil {
		return nil, err
	}

	return &types.RegistryStats{
		Height:     be.Clock.Height(),
		VaultCount: count,
	}, nil
}

// publishEvent fans the given event out to subscribers and produces it to
// the message broker. Events describe completed mutations, so publication
// runs off the request goroutine after the write succeeded.
func publishEvent(be *backend.Backend, event events.VaultEvent) {
	be.Background.AttachGoroutine(func(ctx context.Context) {
		be.PubSub.Publish(ctx, event)
		be.Metrics.AddVaultEvents(event.Type)

		if err := be.MsgBroker.Produce(
			ctx,
			messagebroker.NewVaultEventMessage(event),
		); err != nil {
			logging.From(ctx).Errorf("failed to produce vault event: %v", err)
		}
	}, "event")
}
