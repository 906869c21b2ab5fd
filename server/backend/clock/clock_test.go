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

package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/docvault-team/docvault/server/backend/clock"
)

func TestWall(t *testing.T) {
	t.Run("height from elapsed intervals test", func(t *testing.T) {
		source, err := clock.NewWall(time.Now().Add(-25*time.Minute), 10*time.Minute)
		assert.NoError(t, err)
		assert.Equal(t, uint64(2), source.Height())
	})

	t.Run("height before genesis test", func(t *testing.T) {
		source, err := clock.NewWall(time.Now().Add(time.Hour), 10*time.Minute)
		assert.NoError(t, err)
		assert.Equal(t, uint64(0), source.Height())
	})

	t.Run("invalid interval test", func(t *testing.T) {
		_, err := clock.NewWall(time.Now(), 0)
		assert.ErrorIs(t, err, clock.ErrInvalidInterval)
	})
}

func TestManual(t *testing.T) {
	t.Run("forward test", func(t *testing.T) {
		source := clock.NewManual(10)
		assert.Equal(t, uint64(10), source.Height())

		assert.Equal(t, uint64(15), source.Forward(5))
		assert.Equal(t, uint64(15), source.Height())
	})
}
