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

package messagebroker_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/docvault-team/docvault/server/backend/messagebroker"
)

func TestConfig(t *testing.T) {
	validConf := messagebroker.Config{
		Addresses:    "localhost:9092,localhost:9093",
		Topic:        "vault-events",
		WriteTimeout: "5s",
	}

	t.Run("test validate", func(t *testing.T) {
		assert.NoError(t, validConf.Validate())

		conf1 := validConf
		conf1.Addresses = ""
		assert.ErrorIs(t, conf1.Validate(), messagebroker.ErrEmptyAddress)

		conf2 := validConf
		conf2.Addresses = "localhost:9092,"
		assert.Error(t, conf2.Validate())
		assert.Contains(t, conf2.Validate().Error(), conf2.Addresses)

		conf3 := validConf
		conf3.Topic = ""
		assert.ErrorIs(t, conf3.Validate(), messagebroker.ErrEmptyTopic)

		conf4 := validConf
		conf4.WriteTimeout = "invalid"
		assert.ErrorIs(t, conf4.Validate(), messagebroker.ErrInvalidWriteTimeout)
	})

	t.Run("test split addresses", func(t *testing.T) {
		c := &messagebroker.Config{
			Addresses: "localhost:9092,localhost:9093",
		}
		assert.Equal(t, []string{"localhost:9092", "localhost:9093"}, c.SplitAddresses())
	})

	t.Run("test must parse write timeout", func(t *testing.T) {
		c := &messagebroker.Config{
			WriteTimeout: "1s",
		}
		assert.Equal(t, time.Second, c.MustParseWriteTimeout())
	})

	t.Run("test must parse write timeout with empty value", func(t *testing.T) {
		c := &messagebroker.Config{}
		assert.Equal(t, time.Duration(0), c.MustParseWriteTimeout())
	})

	t.Run("test dummy broker when config is nil", func(t *testing.T) {
		broker := messagebroker.Ensure(nil)
		assert.IsType(t, &messagebroker.DummyBroker{}, broker)
		assert.NoError(t, broker.Produce(context.Background(), messagebroker.VaultEventMessage{}))
		assert.NoError(t, broker.Close())
	})

	t.Run("test dummy broker when config is invalid", func(t *testing.T) {
		broker := messagebroker.Ensure(&messagebroker.Config{})
		assert.IsType(t, &messagebroker.DummyBroker{}, broker)
	})
}
