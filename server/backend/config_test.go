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

package backend_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/docvault-team/docvault/server/backend"
)

func TestConfig(t *testing.T) {
	t.Run("validate test", func(t *testing.T) {
		validConf := backend.Config{
			TokenDuration:    "168h",
			ClockGenesis:     "2025-01-01T00:00:00Z",
			ClockInterval:    "10m",
			EventStreamLimit: 100,
		}
		assert.NoError(t, validConf.Validate())

		conf1 := validConf
		conf1.ClockGenesis = "yesterday"
		assert.Error(t, conf1.Validate())

		conf2 := validConf
		conf2.ClockInterval = "10 minutes"
		assert.Error(t, conf2.Validate())

		conf3 := validConf
		conf3.EventStreamLimit = 0
		assert.Error(t, conf3.Validate())

		conf4 := validConf
		conf4.TokenDuration = "7d"
		assert.Error(t, conf4.Validate())
	})

	t.Run("parse test", func(t *testing.T) {
		conf := backend.Config{
			ClockGenesis:  "2025-01-01T00:00:00Z",
			ClockInterval: "10m",
		}

		genesis := conf.ParseClockGenesis()
		assert.Equal(t, 2025, genesis.Year())
		assert.Equal(t, 10*time.Minute, conf.ParseClockInterval())
	})
}
