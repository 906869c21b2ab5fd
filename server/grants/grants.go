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

// Package grants provides the privilege delegation business logic.
package grants

import (
	"context"
	"time"

	"github.com/docvault-team/docvault/api/types"
	"github.com/docvault-team/docvault/api/types/events"
	"github.com/docvault-team/docvault/server/backend"
	"github.com/docvault-team/docvault/server/backend/messagebroker"
	"github.com/docvault-team/docvault/server/logging"
)

// DelegateAccess issues a grant on the vault with the given id. Only the
// vault owner may delegate, and delegating again to the same principal
// overwrites the previous terms.
func DelegateAccess(
	ctx context.Context,
	be *backend.Backend,
	caller types.Principal,
	height uint64,
	vaultID uint64,
	delegate types.Principal,
	level types.AccessLevel,
	duration uint64,
	modificationsAllowed bool,
) (*types.Grant, error) {
	start := time.Now()
	info, err := be.DB.DelegateAccess(
		ctx,
		caller,
		height,
		vaultID,
		delegate,
		level,
		duration,
		modificationsAllowed,
	)
	if err != nil {
		return nil, err
	}
	be.Metrics.AddVaultOperation("delegate")
	be.Metrics.ObserveVaultOperationSeconds("delegate", time.Since(start).Seconds())

	be.Background.AttachGoroutine(func(ctx context.Context) {
		event := events.VaultEvent{
			Type:    events.AccessDelegatedEvent,
			VaultID: vaultID,
			Actor:   caller,
			Height:  height,
		}
		be.PubSub.Publish(ctx, event)
		be.Metrics.AddVaultEvents(event.Type)

		if err := be.MsgBroker.Produce(
			ctx,
			messagebroker.NewVaultEventMessage(event),
		); err != nil {
			logging.From(ctx).Errorf("failed to produce vault event: %v", err)
		}
	}, "event")

	return info.ToGrant(), nil
}

// GetGrant returns the grant issued on the given vault to the given
// delegate. It returns nil if no such grant exists; an expired grant is
// still returned.
func GetGrant(
	ctx context.Context,
	be *backend.Backend,
	vaultID uint64,
	delegate types.Principal,
) (*types.Grant, error) {
	info, err := be.DB.FindGrantInfo(ctx, vaultID, delegate)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, nil
	}

	return info.ToGrant(), nil
}

// ListGrants lists all grants issued on the vault with the given id,
// expired ones included.
func ListGrants(
	ctx context.Context,
	be *backend.Backend,
	vaultID uint64,
) ([]*types.Grant, error) {
	infos, err := be.DB.ListGrantInfosByVault(ctx, vaultID)
	if err != nil {
		return nil, err
	}

	var grants []*types.Grant
	for _, info := range infos {
		grants = append(grants, info.ToGrant())
	}

	return grants, nil
}
