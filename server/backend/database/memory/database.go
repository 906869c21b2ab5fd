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

// Package memory implements the database interface using memdb.
package memory

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-memdb"

	"github.com/docvault-team/docvault/api/types"
	"github.com/docvault-team/docvault/server/backend/database"
)

// DB is an in-memory database backed by memdb.
type DB struct {
	db *memdb.MemDB
}

// seqRecord is a named sequence counter row. The vault sequence advances
// inside the same transaction as the vault insert, so a rejected call never
// consumes an ID.
type seqRecord struct {
	Name  string
	Value uint64
}

// New returns a new in-memory database.
func New() (*DB, error) {
	memDB, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("new memdb: %w", err)
	}

	return &DB{
		db: memDB,
	}, nil
}

// Close closes the database, it's a no-op for memdb.
func (d *DB) Close() error {
	return nil
}

// RegisterVault stores a new vault record owned by the given principal and
// assigns the next vault ID in sequence.
func (d *DB) RegisterVault(
	_ context.Context,
	owner types.Principal,
	height uint64,
	fields *types.VaultFields,
) (*database.VaultInfo, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	txn := d.db.Txn(true)
	defer txn.Abort()

	id, err := nextSeq(txn, tblVaults)
	if err != nil {
		return nil, err
	}

	info := database.NewVaultInfo(id, owner, height, fields)
	if err := txn.Insert(tblVaults, info); err != nil {
		return nil, fmt.Errorf("insert vault: %w", err)
	}
	txn.Commit()

	return info, nil
}

// UpdateVault overwrites the mutable fields of the vault with the given ID.
func (d *DB) UpdateVault(
	_ context.Context,
	caller types.Principal,
	height uint64,
	vaultID uint64,
	fields *types.UpdatableVaultFields,
) (*database.VaultInfo, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(tblVaults, "id", vaultID)
	if err != nil {
		return nil, fmt.Errorf("find vault by id: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%d: %w", vaultID, types.ErrVaultNotFound)
	}

	info := raw.(*database.VaultInfo).DeepCopy()
	if info.Owner != caller {
		return nil, fmt.Errorf("%s: %w", caller, types.ErrUnauthorized)
	}

	if err := fields.Validate(); err != nil {
		return nil, err
	}

	info.UpdateFields(fields, height)
	if err := txn.Insert(tblVaults, info); err != nil {
		return nil, fmt.Errorf("update vault: %w", err)
	}
	txn.Commit()

	return info, nil
}

// FindVaultInfoByID returns the vault with the given ID, or nil if absent.
func (d *DB) FindVaultInfoByID(_ context.Context, vaultID uint64) (*database.VaultInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(tblVaults, "id", vaultID)
	if err != nil {
		return nil, fmt.Errorf("find vault by id: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	return raw.(*database.VaultInfo).DeepCopy(), nil
}

// ListVaultInfosByOwner returns all vaults owned by the given principal. The
// owner index orders entries by vault ID.
func (d *DB) ListVaultInfosByOwner(
	_ context.Context,
	owner types.Principal,
) ([]*database.VaultInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	iter, err := txn.Get(tblVaults, "owner", owner.String())
	if err != nil {
		return nil, fmt.Errorf("fetch vaults by owner: %w", err)
	}

	var infos []*database.VaultInfo
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		infos = append(infos, raw.(*database.VaultInfo).DeepCopy())
	}

	return infos, nil
}

// VaultCount returns the number of vaults registered so far.
func (d *DB) VaultCount(_ context.Context) (uint64, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(tblSequences, "id", tblVaults)
	if err != nil {
		return 0, fmt.Errorf("find sequence %s: %w", tblVaults, err)
	}
	if raw == nil {
		return 0, nil
	}

	return raw.(*seqRecord).Value, nil
}

// DelegateAccess stores a privilege grant for the given delegate on the given
// vault. A grant for the same (vault, delegate) pair is replaced.
func (d *DB) DelegateAccess(
	_ context.Context,
	caller types.Principal,
	height uint64,
	vaultID uint64,
	delegate types.Principal,
	level types.AccessLevel,
	duration uint64,
	modificationsAllowed bool,
) (*database.GrantInfo, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(tblVaults, "id", vaultID)
	if err != nil {
		return nil, fmt.Errorf("find vault by id: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%d: %w", vaultID, types.ErrVaultNotFound)
	}

	if raw.(*database.VaultInfo).Owner != caller {
		return nil, fmt.Errorf("%s: %w", caller, types.ErrUnauthorized)
	}

	if err := delegate.Validate(); err != nil {
		return nil, err
	}
	if delegate == caller {
		return nil, fmt.Errorf("delegate %s is the vault owner: %w", delegate, types.ErrInvalidInput)
	}
	if err := level.Validate(); err != nil {
		return nil, err
	}
	if err := types.ValidateGrantDuration(duration); err != nil {
		return nil, err
	}

	info := database.NewGrantInfo(vaultID, delegate, level, modificationsAllowed, height, duration)
	if err := txn.Insert(tblGrants, info); err != nil {
		return nil, fmt.Errorf("insert grant: %w", err)
	}
	txn.Commit()

	return info, nil
}

// FindGrantInfo returns the grant for the given vault and delegate, or nil
// if absent.
func (d *DB) FindGrantInfo(
	_ context.Context,
	vaultID uint64,
	delegate types.Principal,
) (*database.GrantInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(tblGrants, "id", vaultID, delegate.String())
	if err != nil {
		return nil, fmt.Errorf("find grant by vault and delegate: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	return raw.(*database.GrantInfo).DeepCopy(), nil
}

// ListGrantInfosByVault returns all grants on the given vault. The vault
// index orders entries by delegate.
func (d *DB) ListGrantInfosByVault(
	_ context.Context,
	vaultID uint64,
) ([]*database.GrantInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	iter, err := txn.Get(tblGrants, "vault_id", vaultID)
	if err != nil {
		return nil, fmt.Errorf("fetch grants by vault: %w", err)
	}

	var infos []*database.GrantInfo
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		infos = append(infos, raw.(*database.GrantInfo).DeepCopy())
	}

	return infos, nil
}

// nextSeq advances the named sequence inside the given transaction and
// returns the new value. The stored row is replaced, not mutated, so an
// aborted transaction leaves the sequence unchanged.
func nextSeq(txn *memdb.Txn, name string) (uint64, error) {
	raw, err := txn.First(tblSequences, "id", name)
	if err != nil {
		return 0, fmt.Errorf("find sequence %s: %w", name, err)
	}

	seq := &seqRecord{Name: name, Value: 1}
	if raw != nil {
		seq.Value = raw.(*seqRecord).Value + 1
	}

	if err := txn.Insert(tblSequences, seq); err != nil {
		return 0, fmt.Errorf("insert sequence %s: %w", name, err)
	}

	return seq.Value, nil
}
