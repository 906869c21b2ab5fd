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

const (
	// AccessLevelRead grants read access to a vault.
	AccessLevelRead AccessLevel = "read"
	// AccessLevelWrite grants write access to a vault.
	AccessLevelWrite AccessLevel = "write"
	// AccessLevelAdmin grants administrative access to a vault.
	AccessLevelAdmin AccessLevel = "admin"
)

// AccessLevel represents the level of access a delegate holds on a vault.
// What an active grant at a given level actually authorizes is decided by
// the caller checking the grant, not by the registry.
type AccessLevel string

// String returns the string representation of the access level.
func (l AccessLevel) String() string {
	return string(l)
}

// Validate validates the given access level.
func (l AccessLevel) Validate() error {
	switch l {
	case AccessLevelRead, AccessLevelWrite, AccessLevelAdmin:
		return nil
	default:
		return fmt.Errorf("%s: %w", l, ErrRoleMismatch)
	}
}

// NewAccessLevel parses and validates a level string into an AccessLevel.
func NewAccessLevel(level string) (AccessLevel, error) {
	l := AccessLevel(level)
	if err := l.Validate(); err != nil {
		return "", err
	}
	return l, nil
}
