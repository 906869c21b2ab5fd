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

package server_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docvault-team/docvault/server"
)

func TestConfig(t *testing.T) {
	t.Run("default config test", func(t *testing.T) {
		conf := server.NewConfig()
		assert.NoError(t, conf.Validate())
		assert.Equal(t, server.DefaultRPCPort, conf.RPC.Port)
		assert.Equal(t, fmt.Sprintf("localhost:%d", server.DefaultRPCPort), conf.RPCAddr())
	})

	t.Run("fail to read absent config file test", func(t *testing.T) {
		conf, err := server.NewConfigFromFile("nowhere.yml")
		assert.Error(t, err)
		assert.Nil(t, conf)
	})

	t.Run("read config file test", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		assert.NoError(t, os.WriteFile(path, []byte(`
RPC:
  Port: 9980
Backend:
  SecretKey: "my-secret"
`), 0o600))

		conf, err := server.NewConfigFromFile(path)
		assert.NoError(t, err)
		assert.NoError(t, conf.Validate())

		assert.Equal(t, 9980, conf.RPC.Port)
		assert.Equal(t, "my-secret", conf.Backend.SecretKey)

		// sections absent from the file fall back to defaults
		assert.Equal(t, server.DefaultProfilingPort, conf.Profiling.Port)
		assert.Equal(t, server.DefaultHousekeepingInterval.String(), conf.Housekeeping.Interval)
		assert.Equal(t, server.DefaultTokenDuration.String(), conf.Backend.TokenDuration)
		assert.Equal(t, server.DefaultClockGenesis, conf.Backend.ClockGenesis)
		assert.Equal(t, server.DefaultEventStreamLimit, conf.Backend.EventStreamLimit)
	})
}
