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

package rpc

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/docvault-team/docvault/api/types"
	"github.com/docvault-team/docvault/server/rpc/auth"
	"github.com/docvault-team/docvault/server/vaults"
)

// listVaultsResponse is the envelope of a vault listing.
type listVaultsResponse struct {
	Vaults []*types.Vault `json:"vaults"`
}

func (s *Server) handleRegisterVault(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	fields := &types.VaultFields{}
	if err := decodeJSON(r, fields); err != nil {
		writeError(ctx, w, err)
		return
	}

	vault, err := vaults.RegisterVault(
		ctx,
		s.backend,
		auth.PrincipalFromCtx(ctx),
		s.backend.Clock.Height(),
		fields,
	)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, vault)
}

func (s *Server) handleListVaults(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	list, err := vaults.ListVaults(ctx, s.backend, auth.PrincipalFromCtx(ctx))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if list == nil {
		list = []*types.Vault{}
	}

	writeJSON(ctx, w, http.StatusOK, listVaultsResponse{Vaults: list})
}

func (s *Server) handleGetVault(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseVaultID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	vault, err := vaults.GetVault(ctx, s.backend, id)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if vault == nil {
		writeError(ctx, w, fmt.Errorf("%d: %w", id, types.ErrVaultNotFound))
		return
	}

	writeJSON(ctx, w, http.StatusOK, vault)
}

func (s *Server) handleUpdateVault(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseVaultID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	fields := &types.UpdatableVaultFields{}
	if err := decodeJSON(r, fields); err != nil {
		writeError(ctx, w, err)
		return
	}

	vault, err := vaults.UpdateVault(
		ctx,
		s.backend,
		auth.PrincipalFromCtx(ctx),
		s.backend.Clock.Height(),
		id,
		fields,
	)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, vault)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := vaults.GetRegistryStats(ctx, s.backend)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, stats)
}

func parseVaultID(r *http.Request) (uint64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("vault id %q: %w", raw, types.ErrInvalidInput)
	}
	return id, nil
}
