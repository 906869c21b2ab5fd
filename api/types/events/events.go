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

// Package events defines the events that occur in the registry.
package events

import (
	"github.com/docvault-team/docvault/api/types"
)

// VaultEventType represents the type of a VaultEvent.
type VaultEventType string

const (
	// VaultRegisteredEvent is published when a vault is registered.
	VaultRegisteredEvent VaultEventType = "vault-registered"

	// VaultUpdatedEvent is published when a vault's mutable fields are
	// overwritten by its owner.
	VaultUpdatedEvent VaultEventType = "vault-updated"

	// AccessDelegatedEvent is published when a privilege grant is issued or
	// overwritten on a vault.
	AccessDelegatedEvent VaultEventType = "access-delegated"
)

// VaultEvent is an event that occurred on a vault. Events describe completed
// mutations; they are published after the state write succeeded.
type VaultEvent struct {
	// Type is the type of the event.
	Type VaultEventType `json:"type"`

	// VaultID is the identifier of the vault the event occurred on.
	VaultID uint64 `json:"vault_id"`

	// Actor is the principal whose call produced the event.
	Actor types.Principal `json:"actor"`

	// Height is the height at which the mutation ran.
	Height uint64 `json:"height"`
}
