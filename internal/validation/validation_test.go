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
package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidation(t *testing.T) {
	t.Run("ValidateValue test", func(t *testing.T) {
		err := ValidateValue(strings.Repeat("f", 64), "required,fingerprint")
		assert.Nil(t, err, "valid fingerprint")

		err = ValidateValue(strings.Repeat("f", 63), "required,fingerprint")
		assert.Equal(t, "fingerprint", err.(Violation).Tag)

		err = ValidateValue(strings.Repeat("f", 65), "required,fingerprint")
		assert.Equal(t, "fingerprint", err.(Violation).Tag)

		err = ValidateValue("", "required,min=1")
		assert.Equal(t, "required", err.(Violation).Tag)

		err = ValidateValue("a-principal", "required,min=1")
		assert.Nil(t, err, "valid principal")

		err = ValidateValue(strings.Repeat("x", 51), "min=1,max=50")
		assert.Equal(t, "max", err.(Violation).Tag)
	})

	t.Run("ValidateStruct test", func(t *testing.T) {
		type record struct {
			Title       string `validate:"required,min=1,max=50"`
			Fingerprint string `validate:"required,fingerprint"`
		}

		err := ValidateStruct(record{
			Title:       strings.Repeat("t", 51),
			Fingerprint: "short",
		})
		structError := err.(*StructError)
		assert.Len(t, structError.Violations, 2, "record should be invalid")
		assert.Equal(t, "Title", structError.Violations[0].Field)
		assert.Equal(t, "Fingerprint", structError.Violations[1].Field)
	})

	t.Run("violations follow field order", func(t *testing.T) {
		type record struct {
			Title    string   `validate:"required,min=1,max=50"`
			Keywords []string `validate:"required,min=1,max=5,dive,required,min=1,max=30"`
		}

		err := ValidateStruct(record{
			Title:    "",
			Keywords: []string{},
		})
		structError := err.(*StructError)
		assert.Equal(t, "Title", structError.Violations[0].Field)
	})

	t.Run("translated description test", func(t *testing.T) {
		err := ValidateValue("deadbeef", "fingerprint")
		violation := err.(Violation)
		assert.Contains(t, violation.Description, "64-character content fingerprint")
	})
}
