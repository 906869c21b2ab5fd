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

package admin_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/docvault-team/docvault/admin"
	"github.com/docvault-team/docvault/api/types"
	"github.com/docvault-team/docvault/api/types/events"
)

func newTestClient(t *testing.T, handler http.Handler) *admin.Client {
	t.Helper()

	svr := httptest.NewServer(handler)
	t.Cleanup(svr.Close)

	cli, err := admin.Dial(svr.URL, admin.WithToken("test-token"), admin.WithLogger(zap.NewNop()))
	assert.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, cli.Close())
	})

	return cli
}

func TestClient(t *testing.T) {
	t.Run("register vault test", func(t *testing.T) {
		cli := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/vaults", r.URL.Path)
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

			fields := &types.VaultFields{}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(fields))

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			assert.NoError(t, json.NewEncoder(w).Encode(&types.Vault{
				ID:    1,
				Title: fields.Title,
				Owner: "alice",
			}))
		}))

		vault, err := cli.RegisterVault(context.Background(), &types.VaultFields{
			Title: "lease agreement",
		})
		assert.NoError(t, err)
		assert.Equal(t, uint64(1), vault.ID)
		assert.Equal(t, "lease agreement", vault.Title)
	})

	t.Run("sentinel mapping test", func(t *testing.T) {
		cli := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, err := w.Write([]byte(`{"code":"ErrVaultNotFound","message":"9999: vault not found"}`))
			assert.NoError(t, err)
		}))

		vault, err := cli.GetVault(context.Background(), 9999)
		assert.Nil(t, vault)
		assert.ErrorIs(t, err, types.ErrVaultNotFound)
	})

	t.Run("unknown code test", func(t *testing.T) {
		cli := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			_, err := w.Write([]byte(`{"code":"ErrSplitBrain","message":"registry disagrees"}`))
			assert.NoError(t, err)
		}))

		_, err := cli.GetRegistryStats(context.Background())
		assert.ErrorContains(t, err, "ErrSplitBrain")
	})

	t.Run("list vaults test", func(t *testing.T) {
		cli := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/v1/vaults", r.URL.Path)

			w.Header().Set("Content-Type", "application/json")
			_, err := w.Write([]byte(`{"vaults":[{"id":1,"title":"lease"},{"id":2,"title":"deed"}]}`))
			assert.NoError(t, err)
		}))

		vaults, err := cli.ListVaults(context.Background())
		assert.NoError(t, err)
		assert.Len(t, vaults, 2)
		assert.Equal(t, "lease", vaults[0].Title)
		assert.Equal(t, uint64(2), vaults[1].ID)
	})

	t.Run("delegate access test", func(t *testing.T) {
		cli := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/vaults/7/grants", r.URL.Path)

			request := map[string]any{}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&request))
			assert.Equal(t, "bob", request["delegate"])
			assert.Equal(t, "read", request["access_level"])
			assert.Equal(t, float64(120), request["duration"])

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			assert.NoError(t, json.NewEncoder(w).Encode(&types.Grant{
				VaultID:          7,
				Delegate:         "bob",
				AccessLevel:      types.AccessLevelRead,
				IssuanceHeight:   10,
				ExpirationHeight: 130,
			}))
		}))

		grant, err := cli.DelegateAccess(
			context.Background(), 7, "bob", types.AccessLevelRead, 120, false,
		)
		assert.NoError(t, err)
		assert.Equal(t, types.Principal("bob"), grant.Delegate)
		assert.Equal(t, uint64(130), grant.ExpirationHeight)
	})

	t.Run("watch events test", func(t *testing.T) {
		cli := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/events", r.URL.Path)
			assert.Equal(t, "42", r.URL.Query().Get("vault_id"))

			w.Header().Set("Content-Type", "text/event-stream")
			w.WriteHeader(http.StatusOK)
			_, err := fmt.Fprint(
				w,
				"event: vault-registered\n"+
					`data: {"type":"vault-registered","vault_id":42,"actor":"alice","height":7}`+
					"\n\n",
			)
			assert.NoError(t, err)
		}))

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		ch, err := cli.WatchEvents(ctx, 42)
		assert.NoError(t, err)

		event, ok := <-ch
		assert.True(t, ok)
		assert.Equal(t, events.VaultRegisteredEvent, event.Type)
		assert.Equal(t, uint64(42), event.VaultID)
		assert.Equal(t, types.Principal("alice"), event.Actor)

		_, ok = <-ch
		assert.False(t, ok)
	})
}
