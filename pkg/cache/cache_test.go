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

package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/docvault-team/docvault/pkg/cache"
)

func TestLRUWithExpires(t *testing.T) {
	t.Run("add and get test", func(t *testing.T) {
		lru, err := cache.NewLRUWithExpires[string, int](10, time.Minute, "test")
		assert.NoError(t, err)

		lru.Add("one", 1)
		lru.Add("two", 2)

		value, ok := lru.Get("one")
		assert.True(t, ok)
		assert.Equal(t, 1, value)

		value, ok = lru.Get("two")
		assert.True(t, ok)
		assert.Equal(t, 2, value)

		_, ok = lru.Get("three")
		assert.False(t, ok)

		assert.Equal(t, 2, lru.Len())
	})

	t.Run("expiration test", func(t *testing.T) {
		lru, err := cache.NewLRUWithExpires[string, int](10, 10*time.Millisecond, "test")
		assert.NoError(t, err)

		lru.Add("one", 1)
		value, ok := lru.Get("one")
		assert.True(t, ok)
		assert.Equal(t, 1, value)

		time.Sleep(30 * time.Millisecond)

		_, ok = lru.Get("one")
		assert.False(t, ok)
	})

	t.Run("remove and purge test", func(t *testing.T) {
		lru, err := cache.NewLRUWithExpires[string, int](10, time.Minute, "test")
		assert.NoError(t, err)

		lru.Add("one", 1)
		lru.Add("two", 2)

		assert.True(t, lru.Remove("one"))
		_, ok := lru.Get("one")
		assert.False(t, ok)

		lru.Purge()
		assert.Equal(t, 0, lru.Len())
	})

	t.Run("stats test", func(t *testing.T) {
		lru, err := cache.NewLRUWithExpires[string, int](10, time.Minute, "test")
		assert.NoError(t, err)

		lru.Add("one", 1)
		lru.Get("one")
		lru.Get("one")
		lru.Get("missing")

		stats := lru.Stats()
		assert.Equal(t, int64(2), stats.Hits())
		assert.Equal(t, int64(1), stats.Misses())
		assert.Equal(t, int64(3), stats.Total())
		assert.InDelta(t, 0.66, stats.HitRate(), 0.01)

		stats.Reset()
		assert.Equal(t, int64(0), stats.Total())
	})
}

func TestManager(t *testing.T) {
	t.Run("register and log test", func(t *testing.T) {
		manager := cache.NewManager()

		lru, err := cache.NewLRUWithExpires[string, int](10, time.Minute, "vault")
		assert.NoError(t, err)
		manager.RegisterCache(lru)

		lru.Add("one", 1)
		lru.Get("one")

		manager.LogCacheStats()
	})
}
