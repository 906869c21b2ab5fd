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

import (
	"github.com/docvault-team/docvault/pkg/errors"
)

// The failure vocabulary of the registry. Every mutating operation returns
// the first failing condition's sentinel, wrapped with call-site context;
// callers discriminate with errors.Is or by code.
var (
	// ErrUnauthorized is returned when the caller is not the vault owner.
	ErrUnauthorized = errors.PermissionDenied("caller is not the vault owner").WithCode("ErrUnauthorized")

	// ErrInvalidInput is returned for a malformed title or fingerprint, or a
	// delegation whose delegate is unusable (empty or the caller itself).
	ErrInvalidInput = errors.InvalidArgument("invalid input").WithCode("ErrInvalidInput")

	// ErrVaultNotFound is returned when a mutating operation targets an
	// absent vault id. Read-only lookups report absence as a nil result
	// instead.
	ErrVaultNotFound = errors.NotFound("vault not found").WithCode("ErrVaultNotFound")

	// ErrVaultAlreadyExists is reserved. Vault ids are freshly allocated, so
	// no registry operation raises it.
	ErrVaultAlreadyExists = errors.AlreadyExists("vault already exists").WithCode("ErrVaultAlreadyExists")

	// ErrInvalidNarrative is returned for a malformed narrative or keyword
	// set.
	ErrInvalidNarrative = errors.InvalidArgument("invalid narrative or keywords").WithCode("ErrInvalidNarrative")

	// ErrInsufficientPrivileges is reserved for collaborators that check a
	// grant against the operation it is meant to authorize; the registry
	// itself never raises it.
	ErrInsufficientPrivileges = errors.PermissionDenied("insufficient privileges").WithCode("ErrInsufficientPrivileges")

	// ErrInvalidDuration is returned when a delegation duration is zero or
	// beyond the maximum.
	ErrInvalidDuration = errors.InvalidArgument("delegation duration out of bounds").WithCode("ErrInvalidDuration")

	// ErrRoleMismatch is returned when an access level is not one of read,
	// write or admin.
	ErrRoleMismatch = errors.InvalidArgument("invalid access level").WithCode("ErrRoleMismatch")

	// ErrInvalidCategory is returned for a malformed category.
	ErrInvalidCategory = errors.InvalidArgument("invalid category").WithCode("ErrInvalidCategory")
)
