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

package cmap_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docvault-team/docvault/pkg/cmap"
)

func TestMap(t *testing.T) {
	t.Run("set and get test", func(t *testing.T) {
		m := cmap.New[uint64, string]()

		m.Set(1, "lease")
		v, exists := m.Get(1)
		assert.True(t, exists)
		assert.Equal(t, "lease", v)

		v, exists = m.Get(2)
		assert.False(t, exists)
		assert.Equal(t, "", v)
	})

	t.Run("upsert test", func(t *testing.T) {
		m := cmap.New[uint64, int]()

		v := m.Upsert(1, func(val int, exists bool) int {
			if exists {
				return val + 1
			}
			return 1
		})
		assert.Equal(t, 1, v)

		v = m.Upsert(1, func(val int, exists bool) int {
			if exists {
				return val + 1
			}
			return 1
		})
		assert.Equal(t, 2, v)
	})

	t.Run("delete test", func(t *testing.T) {
		m := cmap.New[string, int]()

		m.Set("sub-1", 1)
		deleted := m.Delete("sub-1", func(val int, exists bool) bool {
			assert.Equal(t, 1, val)
			return exists
		})
		assert.True(t, deleted)

		_, exists := m.Get("sub-1")
		assert.False(t, exists)

		deleted = m.Delete("sub-2", func(val int, exists bool) bool {
			return exists
		})
		assert.False(t, deleted)
	})

	t.Run("keys and values test", func(t *testing.T) {
		m := cmap.New[uint64, uint64]()

		for i := uint64(1); i <= 5; i++ {
			m.Set(i, i*10)
		}

		assert.Equal(t, 5, m.Len())
		assert.Len(t, m.Keys(), 5)
		assert.Len(t, m.Values(), 5)
		assert.True(t, m.Has(3))
		assert.False(t, m.Has(6))
	})
}

func TestConcurrentMap(t *testing.T) {
	t.Run("concurrent upsert counts test", func(t *testing.T) {
		// Every routine bumps the same counters. Upsert runs the callback
		// under the shard lock, so no increment may be lost.
		m := cmap.New[uint64, int]()
		const numRoutines = 50
		const numVaults = 10

		var wg sync.WaitGroup
		wg.Add(numRoutines)
		for i := 0; i < numRoutines; i++ {
			go func() {
				defer wg.Done()
				for id := uint64(1); id <= numVaults; id++ {
					m.Upsert(id, func(val int, exists bool) int {
						return val + 1
					})
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, numVaults, m.Len())
		for id := uint64(1); id <= numVaults; id++ {
			v, exists := m.Get(id)
			assert.True(t, exists)
			assert.Equal(t, numRoutines, v)
		}
	})

	t.Run("concurrent set get delete test", func(t *testing.T) {
		m := cmap.New[uint64, int]()
		const numRoutines = 50
		const numKeys = 100

		var wg sync.WaitGroup
		wg.Add(numRoutines)
		for i := 0; i < numRoutines; i++ {
			go func(routineID int) {
				defer wg.Done()
				for j := 0; j < numKeys; j++ {
					key := uint64(j)
					switch routineID % 3 {
					case 0:
						m.Set(key, routineID)
					case 1:
						_, _ = m.Get(key)
					case 2:
						m.Delete(key, func(val int, exists bool) bool {
							return exists
						})
					}
				}
			}(i)
		}
		wg.Wait()

		assert.LessOrEqual(t, m.Len(), numKeys)
	})
}
