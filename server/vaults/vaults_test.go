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

package vaults_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/docvault-team/docvault/api/types"
	"github.com/docvault-team/docvault/api/types/events"
	"github.com/docvault-team/docvault/server/backend"
	"github.com/docvault-team/docvault/server/backend/housekeeping"
	"github.com/docvault-team/docvault/server/profiling/prometheus"
	"github.com/docvault-team/docvault/server/vaults"
)

func setupTestBackend(t *testing.T) *backend.Backend {
	metrics, err := prometheus.NewMetrics()
	assert.NoError(t, err)

	be, err := backend.New(
		&backend.Config{
			ClockGenesis:     "2025-01-01T00:00:00Z",
			ClockInterval:    "10m",
			EventStreamLimit: 10,
		},
		nil,
		&housekeeping.Config{Interval: "1m"},
		metrics,
		nil,
	)
	assert.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, be.Shutdown())
	})

	return be
}

func newVaultFields(title string) *types.VaultFields {
	return &types.VaultFields{
		Title:       title,
		Fingerprint: strings.Repeat("a", 64),
		Narrative:   "service level agreement for the new office lease",
		Category:    "contracts",
		Keywords:    []string{"lease", "office"},
	}
}

func TestVaults(t *testing.T) {
	ctx := context.Background()

	t.Run("register and get vault test", func(t *testing.T) {
		be := setupTestBackend(t)
		owner := types.Principal("alice")

		vault, err := vaults.RegisterVault(ctx, be, owner, 10, newVaultFields("lease"))
		assert.NoError(t, err)
		assert.Equal(t, uint64(1), vault.ID)
		assert.Equal(t, owner, vault.Owner)
		assert.Equal(t, uint64(10), vault.CreationHeight)

		found, err := vaults.GetVault(ctx, be, vault.ID)
		assert.NoError(t, err)
		assert.Equal(t, vault, found)

		absent, err := vaults.GetVault(ctx, be, vault.ID+100)
		assert.NoError(t, err)
		assert.Nil(t, absent)
	})

	t.Run("update vault test", func(t *testing.T) {
		be := setupTestBackend(t)
		owner := types.Principal("alice")

		vault, err := vaults.RegisterVault(ctx, be, owner, 10, newVaultFields("lease"))
		assert.NoError(t, err)

		fields := &types.UpdatableVaultFields{
			Title:       "signed lease",
			Fingerprint: vault.Fingerprint,
			Narrative:   vault.Narrative,
			Keywords:    append([]string{}, vault.Keywords...),
		}
		updated, err := vaults.UpdateVault(ctx, be, owner, 20, vault.ID, fields)
		assert.NoError(t, err)
		assert.Equal(t, "signed lease", updated.Title)
		assert.Equal(t, uint64(10), updated.CreationHeight)
		assert.Equal(t, uint64(20), updated.ModificationHeight)

		_, err = vaults.UpdateVault(ctx, be, types.Principal("mallory"), 30, vault.ID, fields)
		assert.ErrorIs(t, err, types.ErrUnauthorized)
	})

	t.Run("list vaults test", func(t *testing.T) {
		be := setupTestBackend(t)
		owner := types.Principal("alice")

		for _, title := range []string{"lease", "deed", "will"} {
			_, err := vaults.RegisterVault(ctx, be, owner, 10, newVaultFields(title))
			assert.NoError(t, err)
		}
		_, err := vaults.RegisterVault(ctx, be, types.Principal("bob"), 10, newVaultFields("other"))
		assert.NoError(t, err)

		listed, err := vaults.ListVaults(ctx, be, owner)
		assert.NoError(t, err)
		assert.Len(t, listed, 3)
		assert.Equal(t, "lease", listed[0].Title)
		assert.Equal(t, "deed", listed[1].Title)
		assert.Equal(t, "will", listed[2].Title)
	})

	t.Run("registry stats test", func(t *testing.T) {
		be := setupTestBackend(t)

		_, err := vaults.RegisterVault(ctx, be, types.Principal("alice"), 10, newVaultFields("lease"))
		assert.NoError(t, err)

		stats, err := vaults.GetRegistryStats(ctx, be)
		assert.NoError(t, err)
		assert.Equal(t, uint64(1), stats.VaultCount)
		assert.Greater(t, stats.Height, uint64(0))
	})

	t.Run("register publishes event test", func(t *testing.T) {
		be := setupTestBackend(t)

		sub, err := be.PubSub.Subscribe(ctx, types.Principal("watcher"), 0, 10)
		assert.NoError(t, err)
		defer be.PubSub.Unsubscribe(ctx, sub)

		vault, err := vaults.RegisterVault(ctx, be, types.Principal("alice"), 10, newVaultFields("lease"))
		assert.NoError(t, err)

		select {
		case event := <-sub.Events():
			assert.Equal(t, events.VaultRegisteredEvent, event.Type)
			assert.Equal(t, vault.ID, event.VaultID)
			assert.Equal(t, uint64(10), event.Height)
		case <-time.After(time.Second):
			assert.Fail(t, "timeout waiting for vault event")
		}
	})
}
