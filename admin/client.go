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

// Package admin provides a client for the DocVault API.
package admin

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/docvault-team/docvault/api/types"
	"github.com/docvault-team/docvault/api/types/events"
)

// Option configures Options.
type Option func(*Options)

// WithToken configures the token of the client.
func WithToken(token string) Option {
	return func(o *Options) { o.Token = token }
}

// WithLogger configures the Logger of the client.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// Options configures how we set up the client.
type Options struct {
	// Token is the token of the caller.
	Token string

	// Logger is the Logger of the client.
	Logger *zap.Logger
}

// Client is a client for the DocVault API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string

	logger *zap.Logger
}

// New creates an instance of Client.
func New(opts ...Option) (*Client, error) {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}

	logger := options.Logger
	if logger == nil {
		l, err := zap.NewProduction()
		if err != nil {
			return nil, fmt.Errorf("new logger: %w", err)
		}
		logger = l
	}

	return &Client{
		httpClient: &http.Client{},
		token:      options.Token,
		logger:     logger,
	}, nil
}

// Dial creates an instance of Client and dials to the given address.
func Dial(rpcAddr string, opts ...Option) (*Client, error) {
	cli, err := New(opts...)
	if err != nil {
		return nil, err
	}

	if err := cli.Dial(rpcAddr); err != nil {
		return nil, err
	}

	return cli, nil
}

// Dial dials to the given address.
func (c *Client) Dial(rpcAddr string) error {
	if !strings.Contains(rpcAddr, "://") {
		rpcAddr = "http://" + rpcAddr
	}
	c.baseURL = strings.TrimSuffix(rpcAddr, "/")

	return nil
}

// Close closes the connections of this client.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// SetToken replaces the token of this client.
func (c *Client) SetToken(token string) {
	c.token = token
}

// RegisterVault registers a new vault with the given fields.
func (c *Client) RegisterVault(
	ctx context.Context,
	fields *types.VaultFields,
) (*types.Vault, error) {
	vault := &types.Vault{}
	if err := c.doRequest(ctx, http.MethodPost, "/v1/vaults", fields, vault); err != nil {
		return nil, fmt.Errorf("register vault %s: %w", fields.Title, err)
	}

	return vault, nil
}

// GetVault gets the vault with the given id.
func (c *Client) GetVault(ctx context.Context, vaultID uint64) (*types.Vault, error) {
	vault := &types.Vault{}
	path := fmt.Sprintf("/v1/vaults/%d", vaultID)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, vault); err != nil {
		return nil, fmt.Errorf("get vault %d: %w", vaultID, err)
	}

	return vault, nil
}

// ListVaults lists the vaults owned by the caller.
func (c *Client) ListVaults(ctx context.Context) ([]*types.Vault, error) {
	response := struct {
		Vaults []*types.Vault `json:"vaults"`
	}{}
	if err := c.doRequest(ctx, http.MethodGet, "/v1/vaults", nil, &response); err != nil {
		return nil, fmt.Errorf("list vaults: %w", err)
	}

	return response.Vaults, nil
}

// UpdateVault overwrites the mutable fields of the vault with the given id.
func (c *Client) UpdateVault(
	ctx context.Context,
	vaultID uint64,
	fields *types.UpdatableVaultFields,
) (*types.Vault, error) {
	vault := &types.Vault{}
	path := fmt.Sprintf("/v1/vaults/%d", vaultID)
	if err := c.doRequest(ctx, http.MethodPut, path, fields, vault); err != nil {
		return nil, fmt.Errorf("update vault %d: %w", vaultID, err)
	}

	return vault, nil
}

// DelegateAccess delegates access on the vault to the given delegate.
func (c *Client) DelegateAccess(
	ctx context.Context,
	vaultID uint64,
	delegate types.Principal,
	level types.AccessLevel,
	duration uint64,
	modificationsAllowed bool,
) (*types.Grant, error) {
	request := struct {
		Delegate             types.Principal   `json:"delegate"`
		AccessLevel          types.AccessLevel `json:"access_level"`
		Duration             uint64            `json:"duration"`
		ModificationsAllowed bool              `json:"modifications_allowed"`
	}{
		Delegate:             delegate,
		AccessLevel:          level,
		Duration:             duration,
		ModificationsAllowed: modificationsAllowed,
	}

	grant := &types.Grant{}
	path := fmt.Sprintf("/v1/vaults/%d/grants", vaultID)
	if err := c.doRequest(ctx, http.MethodPost, path, request, grant); err != nil {
		return nil, fmt.Errorf("delegate access on vault %d to %s: %w", vaultID, delegate, err)
	}

	return grant, nil
}

// GetGrant gets the grant of the given delegate on the vault.
func (c *Client) GetGrant(
	ctx context.Context,
	vaultID uint64,
	delegate types.Principal,
) (*types.Grant, error) {
	grant := &types.Grant{}
	path := fmt.Sprintf("/v1/vaults/%d/grants/%s", vaultID, delegate)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, grant); err != nil {
		return nil, fmt.Errorf("get grant of %s on vault %d: %w", delegate, vaultID, err)
	}

	return grant, nil
}

// ListGrants lists the grants issued on the vault with the given id.
func (c *Client) ListGrants(ctx context.Context, vaultID uint64) ([]*types.Grant, error) {
	response := struct {
		Grants []*types.Grant `json:"grants"`
	}{}
	path := fmt.Sprintf("/v1/vaults/%d/grants", vaultID)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &response); err != nil {
		return nil, fmt.Errorf("list grants of vault %d: %w", vaultID, err)
	}

	return response.Grants, nil
}

// GetRegistryStats gets the statistics of the registry.
func (c *Client) GetRegistryStats(ctx context.Context) (*types.RegistryStats, error) {
	stats := &types.RegistryStats{}
	if err := c.doRequest(ctx, http.MethodGet, "/v1/stats", nil, stats); err != nil {
		return nil, fmt.Errorf("get registry stats: %w", err)
	}

	return stats, nil
}

// WatchEvents subscribes to the event stream of the server. A zero vaultID
// subscribes to the events of every vault. The returned channel is closed
// when the stream ends or the context is canceled.
func (c *Client) WatchEvents(
	ctx context.Context,
	vaultID uint64,
) (<-chan events.VaultEvent, error) {
	path := "/v1/events"
	if vaultID > 0 {
		path = fmt.Sprintf("%s?vault_id=%d", path, vaultID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("watch events: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer c.closeBody(resp.Body)
		return nil, fmt.Errorf("watch events: %w", toError(resp))
	}

	ch := make(chan events.VaultEvent)
	go func() {
		defer close(ch)
		defer c.closeBody(resp.Body)

		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			line := scanner.Text()
			if !strings.HasPrefix(line, "data: ") {
				continue
			}

			event := events.VaultEvent{}
			if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &event); err != nil {
				c.logger.Warn("decode event", zap.Error(err))
				continue
			}

			select {
			case ch <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, reqBody, respBody any) error {
	var body io.Reader
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer c.closeBody(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return toError(resp)
	}

	if respBody == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func (c *Client) closeBody(body io.ReadCloser) {
	if err := body.Close(); err != nil {
		c.logger.Warn("close response body", zap.Error(err))
	}
}
