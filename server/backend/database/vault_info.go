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

// VaultInfo is a structure representing information of a vault record.
type VaultInfo struct {
	// ID is the sequential identifier of the vault.
	ID uint64 `bson:"vault_id"`

	// Title is the display title of the vault.
	Title string `bson:"title"`

	// Owner is the principal that registered the vault.
	Owner types.Principal `bson:"owner"`

	// Fingerprint is the content fingerprint of the stored document.
	Fingerprint string `bson:"fingerprint"`

	// Narrative is the prose summary of the document.
	Narrative string `bson:"narrative"`

	// Category is the classification label fixed at registration.
	Category string `bson:"category"`

	// Keywords are the search keywords of the document.
	Keywords []string `bson:"keywords"`

	// CreationHeight is the chain height at which the vault was registered.
	CreationHeight uint64 `bson:"creation_height"`

	// ModificationHeight is the chain height of the latest mutation.
	ModificationHeight uint64 `bson:"modification_height"`
}

// NewVaultInfo creates a new VaultInfo of the given fields registered at the
// given height.
func NewVaultInfo(id uint64, owner types.Principal, height uint64, fields *types.VaultFields) *VaultInfo {
	return &VaultInfo{
		ID:                 id,
		Title:              fields.Title,
		Owner:              owner,
		Fingerprint:        fields.Fingerprint,
		Narrative:          fields.Narrative,
		Category:           fields.Category,
		Keywords:           append([]string{}, fields.Keywords...),
		CreationHeight:     height,
		ModificationHeight: height,
	}
}

// DeepCopy returns a deep copy of this VaultInfo.
func (i *VaultInfo) DeepCopy() *VaultInfo {
	if i == nil {
		return nil
	}

	copied := *i
	copied.Keywords = append([]string{}, i.Keywords...)
	return &copied
}

// UpdateFields overwrites the mutable fields of this VaultInfo and records
// the mutation height. The owner, category and creation height are kept.
func (i *VaultInfo) UpdateFields(fields *types.UpdatableVaultFields, height uint64) {
	i.Title = fields.Title
	i.Fingerprint = fields.Fingerprint
	i.Narrative = fields.Narrative
	i.Keywords = append([]string{}, fields.Keywords...)
	i.ModificationHeight = height
}

// ToVault converts this VaultInfo to the Vault API type.
func (i *VaultInfo) ToVault() *types.Vault {
	return &types.Vault{
		ID:                 i.ID,
		Title:              i.Title,
		Owner:              i.Owner,
		Fingerprint:        i.Fingerprint,
		Narrative:          i.Narrative,
		Category:           i.Category,
		Keywords:           append([]string{}, i.Keywords...),
		CreationHeight:     i.CreationHeight,
		ModificationHeight: i.ModificationHeight,
	}
}
