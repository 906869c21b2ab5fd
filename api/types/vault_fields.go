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
	"fmt"
	"strings"

	"github.com/docvault-team/docvault/internal/validation"
	"github.com/docvault-team/docvault/pkg/errors"
)

// VaultFields is the set of fields needed to register a vault. The field
// order is the order the rules are checked in, so the error a caller sees
// is deterministic.
type VaultFields struct {
	// Title is the title of the document.
	Title string `json:"title" bson:"title" validate:"required,min=1,max=50"`

	// Fingerprint is the 64-character content hash of the document.
	Fingerprint string `json:"fingerprint" bson:"fingerprint" validate:"required,fingerprint"`

	// Narrative is the free-text description of the document.
	Narrative string `json:"narrative" bson:"narrative" validate:"required,min=1,max=200"`

	// Category is the category of the document.
	Category string `json:"category" bson:"category" validate:"required,min=1,max=20"`

	// Keywords is the ordered keyword list of the document.
	Keywords []string `json:"keywords" bson:"keywords" validate:"required,min=1,max=5,dive,required,min=1,max=30"`
}

// Validate validates the fields for registration.
func (f *VaultFields) Validate() error {
	return firstViolation(validation.ValidateStruct(f))
}

// UpdatableVaultFields is the set of fields an update overwrites. The
// category of a vault is fixed at registration and deliberately absent
// here.
type UpdatableVaultFields struct {
	// Title is the title of the document.
	Title string `json:"title" bson:"title" validate:"required,min=1,max=50"`

	// Fingerprint is the 64-character content hash of the document.
	Fingerprint string `json:"fingerprint" bson:"fingerprint" validate:"required,fingerprint"`

	// Narrative is the free-text description of the document.
	Narrative string `json:"narrative" bson:"narrative" validate:"required,min=1,max=200"`

	// Keywords is the ordered keyword list of the document.
	Keywords []string `json:"keywords" bson:"keywords" validate:"required,min=1,max=5,dive,required,min=1,max=30"`
}

// Validate validates the fields for update.
func (f *UpdatableVaultFields) Validate() error {
	return firstViolation(validation.ValidateStruct(f))
}

// firstViolation converts a struct validation result into the matching
// failure sentinel. Violations arrive in field order, so the first one is
// the first rule that failed.
func firstViolation(err error) error {
	if err == nil {
		return nil
	}

	structError, ok := err.(*validation.StructError)
	if !ok || len(structError.Violations) == 0 {
		return fmt.Errorf("validate fields: %w", ErrInvalidInput)
	}

	violation := structError.Violations[0]
	kind := ErrInvalidInput
	switch {
	case violation.Field == "Narrative" || strings.HasPrefix(violation.Field, "Keywords"):
		kind = ErrInvalidNarrative
	case violation.Field == "Category":
		kind = ErrInvalidCategory
	}

	return errors.WithMetadata(
		fmt.Errorf("%s: %w", violation.Description, kind),
		map[string]string{"field": violation.Field},
	)
}
