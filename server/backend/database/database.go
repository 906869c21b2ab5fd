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

// Package database provides the database interface for the DocVault backend.
package database

import (
	"context"

	"github.com/docvault-team/docvault/api/types"
)

// Database represents the persistent storage of vault records and privilege
// grants. Each mutating method validates its input against the registry rules
// and applies the write atomically: a rejected call leaves no trace, including
// in the vault sequence counter.
type Database interface {
	// Close closes all resources of this database.
	Close() error

	// RegisterVault stores a new vault record owned by the given principal
	// and assigns the next vault ID in sequence.
	RegisterVault(
		ctx context.Context,
		owner types.Principal,
		height uint64,
		fields *types.VaultFields,
	) (*VaultInfo, error)

	// UpdateVault overwrites the mutable fields of the vault with the given
	// ID. Only the vault owner may update; the category is kept as is.
	UpdateVault(
		ctx context.Context,
		caller types.Principal,
		height uint64,
		vaultID uint64,
		fields *types.UpdatableVaultFields,
	) (*VaultInfo, error)

	// FindVaultInfoByID returns the vault with the given ID. It returns
	// nil without an error if no such vault exists.
	FindVaultInfoByID(ctx context.Context, vaultID uint64) (*VaultInfo, error)

	// ListVaultInfosByOwner returns all vaults owned by the given principal,
	// ordered by vault ID.
	ListVaultInfosByOwner(ctx context.Context, owner types.Principal) ([]*VaultInfo, error)

	// VaultCount returns the number of vaults registered so far.
	VaultCount(ctx context.Context) (uint64, error)

	// DelegateAccess stores a privilege grant for the given delegate on the
	// given vault. A grant for the same (vault, delegate) pair is replaced.
	DelegateAccess(
		ctx context.Context,
		caller types.Principal,
		height uint64,
		vaultID uint64,
		delegate types.Principal,
		level types.AccessLevel,
		duration uint64,
		modificationsAllowed bool,
	) (*GrantInfo, error)

	// FindGrantInfo returns the grant for the given vault and delegate. It
	// returns nil without an error if no such grant exists.
	FindGrantInfo(ctx context.Context, vaultID uint64, delegate types.Principal) (*GrantInfo, error)

	// ListGrantInfosByVault returns all grants on the given vault, ordered
	// by delegate.
	ListGrantInfosByVault(ctx context.Context, vaultID uint64) ([]*GrantInfo, error)
}
