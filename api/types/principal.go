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

	"github.com/docvault-team/docvault/internal/validation"
)

// Principal is the opaque identity of a caller. It is resolved and
// authenticated by the transport before any registry operation runs; the
// registry itself only compares principals for equality.
type Principal string

// String returns the string representation of the principal.
func (p Principal) String() string {
	return string(p)
}

// Validate checks that the principal is usable as an identity. The registry
// does not constrain the format, only that it is present.
func (p Principal) Validate() error {
	if err := validation.ValidateValue(string(p), "required"); err != nil {
		return fmt.Errorf("%q: %w", p, ErrInvalidInput)
	}
	return nil
}
