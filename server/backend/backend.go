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

// Package backend provides the backend implementation of DocVault. This
// package is responsible for managing the database and other resources
// required to run the registry.
package backend

import (
	"errors"
	"fmt"
	"os"

	"github.com/docvault-team/docvault/pkg/cache"
	"github.com/docvault-team/docvault/server/backend/background"
	"github.com/docvault-team/docvault/server/backend/clock"
	"github.com/docvault-team/docvault/server/backend/database"
	memdb "github.com/docvault-team/docvault/server/backend/database/memory"
	"github.com/docvault-team/docvault/server/backend/database/mongo"
	"github.com/docvault-team/docvault/server/backend/housekeeping"
	"github.com/docvault-team/docvault/server/backend/messagebroker"
	"github.com/docvault-team/docvault/server/backend/pubsub"
	"github.com/docvault-team/docvault/server/logging"
	"github.com/docvault-team/docvault/server/profiling/prometheus"
)

// Backend manages DocVault's backend such as the database, the height clock
// and the event fanout.
type Backend struct {
	Config *Config

	// Cache is the central cache manager for all caches.
	Cache *cache.Manager
	// PubSub is used to publish/subscribe vault events to/from clients.
	PubSub *pubsub.PubSub
	// Clock is the height source all operations are stamped with.
	Clock clock.Source

	// Background is used to manage background tasks.
	Background *background.Background
	// Housekeeping is used to report registry statistics periodically.
	Housekeeping *housekeeping.Housekeeping

	// Metrics is used to expose metrics.
	Metrics *prometheus.Metrics
	// DB is the database instance.
	DB database.Database
	// MsgBroker is the message producer instance.
	MsgBroker messagebroker.Broker
}

// New creates a new instance of Backend.
func New(
	conf *Config,
	mongoConf *mongo.Config,
	housekeepingConf *housekeeping.Config,
	metrics *prometheus.Metrics,
	kafkaConf *messagebroker.Config,
) (*Backend, error) {
	// 01. Set the hostname to the hostname of the current machine if it is
	// not given. The hostname is attached to metrics.
	if conf.Hostname == "" {
		hostname, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("os.Hostname: %w", err)
		}
		conf.Hostname = hostname
	}

	// 02. Create the cache manager, the pubsub and the background task
	// manager.
	cacheManager := cache.NewManager()
	pubSub := pubsub.New()
	bg := background.New(metrics)

	// 03. Create the database instance. If the MongoDB configuration is
	// given, create a MongoDB instance. Otherwise, create a memory database
	// instance.
	var db database.Database
	if mongoConf != nil {
		cli, err := mongo.Dial(mongoConf)
		if err != nil {
			return nil, err
		}
		for _, c := range cli.Caches() {
			cacheManager.RegisterCache(c)
		}
		db = cli
	} else {
		memDB, err := memdb.New()
		if err != nil {
			return nil, err
		}
		db = memDB
	}

	// 04. Create the height clock. All operations are stamped with heights
	// from this clock.
	wall, err := clock.NewWall(conf.ParseClockGenesis(), conf.ParseClockInterval())
	if err != nil {
		return nil, err
	}

	// 05. Create the housekeeping instance.
	housekeeper, err := housekeeping.New(housekeepingConf, db, pubSub, cacheManager)
	if err != nil {
		return nil, err
	}

	// 06. Create the message broker instance.
	broker := messagebroker.Ensure(kafkaConf)

	dbInfo := "memory"
	if mongoConf != nil {
		dbInfo = mongoConf.ConnectionURI
	}
	logging.DefaultLogger().Infof("backend created: db: %s", dbInfo)

	return &Backend{
		Config: conf,

		Cache:  cacheManager,
		PubSub: pubSub,
		Clock:  wall,

		Background:   bg,
		Housekeeping: housekeeper,

		Metrics:   metrics,
		DB:        db,
		MsgBroker: broker,
	}, nil
}

// Start starts the backend.
func (b *Backend) Start() error {
	if err := b.Housekeeping.Start(); err != nil {
		return err
	}

	logging.DefaultLogger().Infof("backend started")
	return nil
}

// Shutdown closes all resources of this instance.
func (b *Backend) Shutdown() error {
	var errs []error

	if err := b.Housekeeping.Stop(); err != nil {
		errs = append(errs, err)
	}

	b.Background.Close()

	if err := b.MsgBroker.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := b.DB.Close(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	logging.DefaultLogger().Infof("backend stopped")
	return nil
}
