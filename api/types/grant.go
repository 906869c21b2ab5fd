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

package types

import "fmt"

// MaxGrantDuration is the longest validity window a delegation may have,
// in heights. At the default height interval of ten minutes this is about
// one year.
const MaxGrantDuration uint64 = 52560

// Grant is a privilege delegation on a vault. At most one grant exists per
// (vault id, delegate) pair; re-delegation overwrites the previous terms.
type Grant struct {
	// VaultID is the identifier of the vault the grant applies to.
	VaultID uint64 `json:"vault_id"`

	// Delegate is the principal the privileges are delegated to.
	Delegate Principal `json:"delegate"`

	// AccessLevel is the delegated level of access.
	AccessLevel AccessLevel `json:"access_level"`

	// ModificationsAllowed reports whether the delegate may modify the
	// document, independent of the access level.
	ModificationsAllowed bool `json:"modifications_allowed"`

	// IssuanceHeight is the height at which the grant was issued.
	IssuanceHeight uint64 `json:"issuance_height"`

	// ExpirationHeight is the height at which the grant expires. A grant is
	// expired once the current height reaches it; expiry never deletes the
	// grant.
	ExpirationHeight uint64 `json:"expiration_height"`
}

// Active reports whether the grant is still valid at the given height.
func (g *Grant) Active(height uint64) bool {
	return height < g.ExpirationHeight
}

// ValidateGrantDuration validates a delegation duration in heights. Both
// bounds matter: zero-length delegations are meaningless and anything past
// MaxGrantDuration is rejected, with the maximum itself allowed.
func ValidateGrantDuration(duration uint64) error {
	if duration == 0 || duration > MaxGrantDuration {
		return fmt.Errorf("%d: %w", duration, ErrInvalidDuration)
	}
	return nil
}
