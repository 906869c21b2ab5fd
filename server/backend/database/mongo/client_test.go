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

package mongo_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/rs/xid"
	"github.com/stretchr/testify/assert"

	"github.com/docvault-team/docvault/server/backend/database/mongo"
	"github.com/docvault-team/docvault/server/backend/database/testcases"
)

func setupTestClient(t *testing.T) *mongo.Client {
	uri := os.Getenv("TEST_MONGO_CONNECTION_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_CONNECTION_URI is not set")
	}

	conf := &mongo.Config{
		ConnectionTimeout: "5s",
		ConnectionURI:     uri,
		DocVaultDatabase:  fmt.Sprintf("test-docvault-%s", xid.New()),
		PingTimeout:       "5s",
	}
	assert.NoError(t, conf.Validate())

	cli, err := mongo.Dial(conf)
	assert.NoError(t, err)

	return cli
}

func TestClient(t *testing.T) {
	cli := setupTestClient(t)
	defer func() {
		assert.NoError(t, cli.Close())
	}()

	t.Run("RunRegisterVault test", func(t *testing.T) {
		testcases.RunRegisterVaultTest(t, cli)
	})

	t.Run("RunUpdateVault test", func(t *testing.T) {
		testcases.RunUpdateVaultTest(t, cli)
	})

	t.Run("RunFindVaultInfo test", func(t *testing.T) {
		testcases.RunFindVaultInfoTest(t, cli)
	})

	t.Run("RunVaultSequence test", func(t *testing.T) {
		testcases.RunVaultSequenceTest(t, cli)
	})

	t.Run("RunDelegateAccess test", func(t *testing.T) {
		testcases.RunDelegateAccessTest(t, cli)
	})
}
