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

package cache

import (
	"sync"

	"github.com/docvault-team/docvault/server/logging"
)

// StatsProvider is an interface for caches that provide statistics.
type StatsProvider interface {
	Name() string
	Stats() *Stats
	Len() int
}

// Manager collects registered caches and logs their statistics.
type Manager struct {
	mu     sync.RWMutex
	caches []StatsProvider
	logger logging.Logger
}

// NewManager creates a new cache manager.
func NewManager() *Manager {
	return &Manager{
		logger: logging.New("cache"),
	}
}

// RegisterCache registers a cache for statistics logging.
func (m *Manager) RegisterCache(cache StatsProvider) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.caches = append(m.caches, cache)
}

// LogCacheStats logs the statistics of all registered caches.
func (m *Manager) LogCacheStats() {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.caches {
		stats := c.Stats()
		m.logger.Infof(
			"cache %s: len=%d, hits=%d, misses=%d, hit rate=%.2f",
			c.Name(),
			c.Len(),
			stats.Hits(),
			stats.Misses(),
			stats.HitRate(),
		)
	}
}
