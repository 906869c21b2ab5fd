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

package rpc_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/docvault-team/docvault/api/types"
	"github.com/docvault-team/docvault/api/types/events"
	"github.com/docvault-team/docvault/server/backend"
	"github.com/docvault-team/docvault/server/backend/housekeeping"
	"github.com/docvault-team/docvault/server/profiling/prometheus"
	"github.com/docvault-team/docvault/server/rpc"
)

const testPort = 21101

var testAddr = fmt.Sprintf("http://localhost:%d", testPort)

func setupTestServer(t *testing.T) *rpc.Server {
	t.Helper()

	met, err := prometheus.NewMetrics()
	assert.NoError(t, err)

	be, err := backend.New(&backend.Config{
		SecretKey:        "docvault-test-secret",
		TokenDuration:    "1h",
		ClockGenesis:     "2025-01-01T00:00:00Z",
		ClockInterval:    "10m",
		EventStreamLimit: 10,
	}, nil, &housekeeping.Config{Interval: "1m"}, met, nil)
	assert.NoError(t, err)

	svr, err := rpc.NewServer(&rpc.Config{Port: testPort}, be)
	assert.NoError(t, err)
	assert.NoError(t, svr.Start())

	t.Cleanup(func() {
		svr.Shutdown(true)
		assert.NoError(t, be.Shutdown())
	})

	return svr
}

func mintToken(t *testing.T, svr *rpc.Server, principal types.Principal) string {
	t.Helper()

	token, err := svr.TokenManager().Generate(principal)
	assert.NoError(t, err)
	return token
}

func doRequest(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		assert.NoError(t, err)
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, testAddr+path, reqBody)
	assert.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	defer func() {
		assert.NoError(t, resp.Body.Close())
	}()

	data, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	return resp.StatusCode, data
}

func registerVault(t *testing.T, token, title string) *types.Vault {
	t.Helper()

	status, body := doRequest(t, http.MethodPost, "/v1/vaults", token, newVaultFields(title))
	assert.Equal(t, http.StatusCreated, status)

	vault := &types.Vault{}
	assert.NoError(t, json.Unmarshal(body, vault))
	return vault
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

func errorCodeOf(t *testing.T, body []byte) string {
	t.Helper()

	resp := struct {
		Code string `json:"code"`
	}{}
	assert.NoError(t, json.Unmarshal(body, &resp))
	return resp.Code
}

func TestServer(t *testing.T) {
	svr := setupTestServer(t)
	aliceToken := mintToken(t, svr, "alice")
	bobToken := mintToken(t, svr, "bob")

	t.Run("authentication test", func(t *testing.T) {
		status, body := doRequest(t, http.MethodGet, "/v1/vaults", "", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "ErrUnauthenticated", errorCodeOf(t, body))

		status, _ = doRequest(t, http.MethodGet, "/v1/vaults", "not-a-token", nil)
		assert.Equal(t, http.StatusUnauthorized, status)

		status, _ = doRequest(t, http.MethodGet, "/healthz", "", nil)
		assert.Equal(t, http.StatusOK, status)
	})

	t.Run("register and get vault test", func(t *testing.T) {
		registered := registerVault(t, aliceToken, "lease agreement")
		assert.Equal(t, types.Principal("alice"), registered.Owner)
		assert.Equal(t, "lease agreement", registered.Title)
		assert.NotZero(t, registered.ID)
		assert.NotZero(t, registered.CreationHeight)

		path := fmt.Sprintf("/v1/vaults/%d", registered.ID)
		status, body := doRequest(t, http.MethodGet, path, bobToken, nil)
		assert.Equal(t, http.StatusOK, status)
		fetched := &types.Vault{}
		assert.NoError(t, json.Unmarshal(body, fetched))
		assert.Equal(t, registered, fetched)

		status, body = doRequest(t, http.MethodGet, "/v1/vaults/9999", aliceToken, nil)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "ErrVaultNotFound", errorCodeOf(t, body))

		status, body = doRequest(t, http.MethodGet, "/v1/vaults/lease", aliceToken, nil)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "ErrInvalidInput", errorCodeOf(t, body))
	})

	t.Run("update vault test", func(t *testing.T) {
		registered := registerVault(t, aliceToken, "deed of sale")
		path := fmt.Sprintf("/v1/vaults/%d", registered.ID)

		update := &types.UpdatableVaultFields{
			Title:       "signed deed of sale",
			Fingerprint: strings.Repeat("b", 64),
			Narrative:   "countersigned copy of the deed",
			Keywords:    []string{"deed", "signed"},
		}
		status, body := doRequest(t, http.MethodPut, path, aliceToken, update)
		assert.Equal(t, http.StatusOK, status)
		updated := &types.Vault{}
		assert.NoError(t, json.Unmarshal(body, updated))
		assert.Equal(t, "signed deed of sale", updated.Title)
		assert.Equal(t, registered.Category, updated.Category)

		status, body = doRequest(t, http.MethodPut, path, bobToken, update)
		assert.Equal(t, http.StatusForbidden, status)
		assert.Equal(t, "ErrUnauthorized", errorCodeOf(t, body))

		update.Title = ""
		status, body = doRequest(t, http.MethodPut, path, aliceToken, update)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "ErrInvalidInput", errorCodeOf(t, body))
	})

	t.Run("delegate and get grant test", func(t *testing.T) {
		registered := registerVault(t, aliceToken, "employment contract")
		grantsPath := fmt.Sprintf("/v1/vaults/%d/grants", registered.ID)

		status, body := doRequest(t, http.MethodPost, grantsPath, aliceToken, map[string]any{
			"delegate":              "bob",
			"access_level":          "read",
			"duration":              120,
			"modifications_allowed": true,
		})
		assert.Equal(t, http.StatusCreated, status)
		grant := &types.Grant{}
		assert.NoError(t, json.Unmarshal(body, grant))
		assert.Equal(t, types.Principal("bob"), grant.Delegate)
		assert.Equal(t, grant.IssuanceHeight+120, grant.ExpirationHeight)

		status, body = doRequest(t, http.MethodGet, grantsPath+"/bob", bobToken, nil)
		assert.Equal(t, http.StatusOK, status)
		fetched := &types.Grant{}
		assert.NoError(t, json.Unmarshal(body, fetched))
		assert.Equal(t, grant, fetched)

		status, body = doRequest(t, http.MethodGet, grantsPath+"/carol", aliceToken, nil)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "ErrGrantNotFound", errorCodeOf(t, body))

		status, body = doRequest(t, http.MethodPost, grantsPath, aliceToken, map[string]any{
			"delegate":     "alice",
			"access_level": "read",
			"duration":     120,
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "ErrInvalidInput", errorCodeOf(t, body))

		status, body = doRequest(t, http.MethodPost, grantsPath, bobToken, map[string]any{
			"delegate":     "carol",
			"access_level": "read",
			"duration":     120,
		})
		assert.Equal(t, http.StatusForbidden, status)
		assert.Equal(t, "ErrUnauthorized", errorCodeOf(t, body))

		status, body = doRequest(t, http.MethodPost, grantsPath, aliceToken, map[string]any{
			"delegate":     "carol",
			"access_level": "read",
			"duration":     0,
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "ErrInvalidDuration", errorCodeOf(t, body))

		status, body = doRequest(t, http.MethodPost, grantsPath, aliceToken, map[string]any{
			"delegate":     "carol",
			"access_level": "root",
			"duration":     120,
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "ErrRoleMismatch", errorCodeOf(t, body))
	})

	t.Run("list vaults and grants test", func(t *testing.T) {
		carolToken := mintToken(t, svr, "carol")

		status, body := doRequest(t, http.MethodGet, "/v1/vaults", carolToken, nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, string(body), `"vaults":[]`)

		first := registerVault(t, carolToken, "articles of incorporation")
		second := registerVault(t, carolToken, "shareholder agreement")
		assert.Equal(t, first.ID+1, second.ID)

		status, body = doRequest(t, http.MethodGet, "/v1/vaults", carolToken, nil)
		assert.Equal(t, http.StatusOK, status)
		vaultList := struct {
			Vaults []*types.Vault `json:"vaults"`
		}{}
		assert.NoError(t, json.Unmarshal(body, &vaultList))
		assert.Equal(t, []*types.Vault{first, second}, vaultList.Vaults)

		grantsPath := fmt.Sprintf("/v1/vaults/%d/grants", first.ID)
		for _, delegate := range []string{"dave", "erin"} {
			status, _ = doRequest(t, http.MethodPost, grantsPath, carolToken, map[string]any{
				"delegate":     delegate,
				"access_level": "write",
				"duration":     60,
			})
			assert.Equal(t, http.StatusCreated, status)
		}

		status, body = doRequest(t, http.MethodGet, grantsPath, carolToken, nil)
		assert.Equal(t, http.StatusOK, status)
		grantList := struct {
			Grants []*types.Grant `json:"grants"`
		}{}
		assert.NoError(t, json.Unmarshal(body, &grantList))
		assert.Len(t, grantList.Grants, 2)
		assert.Equal(t, types.Principal("dave"), grantList.Grants[0].Delegate)
		assert.Equal(t, types.Principal("erin"), grantList.Grants[1].Delegate)
	})

	t.Run("stats test", func(t *testing.T) {
		status, body := doRequest(t, http.MethodGet, "/v1/stats", aliceToken, nil)
		assert.Equal(t, http.StatusOK, status)

		stats := &types.RegistryStats{}
		assert.NoError(t, json.Unmarshal(body, stats))
		assert.NotZero(t, stats.Height)
		assert.GreaterOrEqual(t, stats.VaultCount, uint64(1))
	})

	t.Run("event stream test", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, testAddr+"/v1/events", nil)
		assert.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+mintToken(t, svr, "watcher"))

		resp, err := http.DefaultClient.Do(req)
		assert.NoError(t, err)
		defer func() {
			assert.NoError(t, resp.Body.Close())
		}()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

		registered := registerVault(t, aliceToken, "patent filing")

		lines := make(chan string)
		go func() {
			defer close(lines)
			reader := bufio.NewReader(resp.Body)
			for {
				line, err := reader.ReadString('\n')
				if err != nil {
					return
				}
				lines <- line
			}
		}()

		for {
			select {
			case line, ok := <-lines:
				if !ok {
					assert.Fail(t, "stream closed before an event arrived")
					return
				}
				if !strings.HasPrefix(line, "data: ") {
					continue
				}

				event := events.VaultEvent{}
				assert.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &event))
				assert.Equal(t, events.VaultRegisteredEvent, event.Type)
				assert.Equal(t, registered.ID, event.VaultID)
				assert.Equal(t, types.Principal("alice"), event.Actor)
				return
			case <-time.After(5 * time.Second):
				assert.Fail(t, "timeout waiting for a vault event")
				return
			}
		}
	})
}
