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

package database

import (
	"github.com/docvault-team/docvault/api/types"
)

// GrantInfo is a structure representing information of a privilege grant.
// Grants are keyed by the (vault, delegate) pair; delegating again to the
// same delegate replaces the previous grant.
type GrantInfo struct {
	// VaultID is the identifier of the vault the grant applies to.
	VaultID uint64 `bson:"vault_id"`

	// Delegate is the principal receiving the privilege.
	Delegate types.Principal `bson:"delegate"`

	// AccessLevel is the granted level of access.
	AccessLevel types.AccessLevel `bson:"access_level"`

	// ModificationsAllowed indicates whether the delegate may modify the
	// vault record.
	ModificationsAllowed bool `bson:"modifications_allowed"`

	// IssuanceHeight is the chain height at which the grant was issued.
	IssuanceHeight uint64 `bson:"issuance_height"`

	// ExpirationHeight is the chain height at which the grant expires.
	ExpirationHeight uint64 `bson:"expiration_height"`
}

// NewGrantInfo creates a new GrantInfo issued at the given height for the
// given duration in heights.
func NewGrantInfo(
	vaultID uint64,
	delegate types.Principal,
	level types.AccessLevel,
	modificationsAllowed bool,
	height uint64,
	duration uint64,
) *GrantInfo {
	return &GrantInfo{
		VaultID:              vaultID,
		Delegate:             delegate,
		AccessLevel:          level,
		ModificationsAllowed: modificationsAllowed,
		IssuanceHeight:       height,
		ExpirationHeight:     height + duration,
	}
}

// DeepCopy returns a deep copy of this GrantInfo.
func (i *GrantInfo) DeepCopy() *GrantInfo {
	if i == nil {
		return nil
	}

	copied := *i
	return &copied
}

// ToGrant converts this GrantInfo to the Grant API type.
func (i *GrantInfo) ToGrant() *types.Grant {
	return &types.Grant{
		VaultID:              i.VaultID,
		Delegate:             i.Delegate,
		AccessLevel:          i.AccessLevel,
		ModificationsAllowed: i.ModificationsAllowed,
		IssuanceHeight:       i.IssuanceHeight,
		ExpirationHeight:     i.ExpirationHeight,
	}
}
