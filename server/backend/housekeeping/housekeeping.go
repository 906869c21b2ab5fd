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

// Package housekeeping provides the housekeeping service. The housekeeping
// service periodically reports registry statistics such as the number of
// registered vaults, active event subscribers and cache efficiency.
package housekeeping

import (
	"context"
	"fmt"
	"time"

	"github.com/docvault-team/docvault/pkg/cache"
	"github.com/docvault-team/docvault/server/backend/database"
	"github.com/docvault-team/docvault/server/backend/pubsub"
	"github.com/docvault-team/docvault/server/logging"
)

// Housekeeping is the housekeeping service. It periodically runs housekeeping
// tasks that keep an eye on the registry: vault totals, event subscribers and
// cache statistics.
type Housekeeping struct {
	database     database.Database
	pubSub       *pubsub.PubSub
	cacheManager *cache.Manager

	interval time.Duration

	ctx        context.Context
	cancelFunc context.CancelFunc
}

// Start creates a new housekeeping instance and starts it.
func Start(
	conf *Config,
	database database.Database,
	pubSub *pubsub.PubSub,
	cacheManager *cache.Manager,
) (*Housekeeping, error) {
	h, err := New(conf, database, pubSub, cacheManager)
	if err != nil {
		return nil, err
	}
	if err := h.Start(); err != nil {
		return nil, err
	}

	return h, nil
}

// New creates a new housekeeping instance.
func New(
	conf *Config,
	database database.Database,
	pubSub *pubsub.PubSub,
	cacheManager *cache.Manager,
) (*Housekeeping, error) {
	interval, err := time.ParseDuration(conf.Interval)
	if err != nil {
		return nil, fmt.Errorf("parse interval %s: %w", conf.Interval, err)
	}

	ctx, cancelFunc := context.WithCancel(context.Background())

	return &Housekeeping{
		database:     database,
		pubSub:       pubSub,
		cacheManager: cacheManager,

		interval: interval,

		ctx:        ctx,
		cancelFunc: cancelFunc,
	}, nil
}

// Start starts the housekeeping service.
func (h *Housekeeping) Start() error {
	go h.run()
	return nil
}

// Stop stops the housekeeping service.
func (h *Housekeeping) Stop() error {
	h.cancelFunc()

	return nil
}

// run is the housekeeping loop.
func (h *Housekeeping) run() {
	for {
		select {
		case <-time.After(h.interval):
		case <-h.ctx.Done():
			return
		}

		ctx := context.Background()
		if err := h.logStats(ctx); err != nil {
			logging.From(ctx).Error(err)
		}
	}
}

// logStats reports the current registry statistics.
func (h *Housekeeping) logStats(ctx context.Context) error {
	start := time.Now()

	count, err := h.database.VaultCount(ctx)
	if err != nil {
		return err
	}

	logging.From(ctx).Infof(
		"HSKP: vaults %d, subscribers %d, %s",
		count,
		h.pubSub.Len(),
		time.Since(start),
	)
	h.cacheManager.LogCacheStats()

	return nil
}
