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

	"github.com/go-chi/chi/v5"

	"github.com/docvault-team/docvault/api/types"
	"github.com/docvault-team/docvault/pkg/errors"
	"github.com/docvault-team/docvault/server/grants"
	"github.com/docvault-team/docvault/server/rpc/auth"
)

// errGrantNotFound reports a lookup of a delegation that was never issued.
var errGrantNotFound = errors.NotFound("grant not found").WithCode("ErrGrantNotFound")

// delegateAccessRequest is the body of an access delegation call.
type delegateAccessRequest struct {
	Delegate             types.Principal   `json:"delegate"`
	AccessLevel          types.AccessLevel `json:"access_level"`
	Duration             uint64            `json:"duration"`
	ModificationsAllowed bool              `json:"modifications_allowed"`
}

// listGrantsResponse is the envelope of a grant listing.
type listGrantsResponse struct {
	Grants []*types.Grant `json:"grants"`
}

func (s *Server) handleDelegateAccess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseVaultID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	req := &delegateAccessRequest{}
	if err := decodeJSON(r, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	grant, err := grants.DelegateAccess(
		ctx,
		s.backend,
		auth.PrincipalFromCtx(ctx),
		s.backend.Clock.Height(),
		id,
		req.Delegate,
		req.AccessLevel,
		req.Duration,
		req.ModificationsAllowed,
	)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, grant)
}

func (s *Server) handleGetGrant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseVaultID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	delegate := types.Principal(chi.URLParam(r, "delegate"))

	grant, err := grants.GetGrant(ctx, s.backend, id, delegate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if grant == nil {
		writeError(ctx, w, fmt.Errorf("%d/%s: %w", id, delegate, errGrantNotFound))
		return
	}

	writeJSON(ctx, w, http.StatusOK, grant)
}

func (s *Server) handleListGrants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseVaultID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	list, err := grants.ListGrants(ctx, s.backend, id)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if list == nil {
		list = []*types.Grant{}
	}

	writeJSON(ctx, w, http.StatusOK, listGrantsResponse{Grants: list})
}
