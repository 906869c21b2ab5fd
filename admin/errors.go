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

package admin

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/docvault-team/docvault/api/types"
)

// errorByCode maps the stable error codes of the server back to the registry
// sentinels so callers can discriminate with errors.Is.
var errorByCode = map[string]error{
	"ErrUnauthorized":           types.ErrUnauthorized,
	"ErrInvalidInput":           types.ErrInvalidInput,
	"ErrVaultNotFound":          types.ErrVaultNotFound,
	"ErrVaultAlreadyExists":     types.ErrVaultAlreadyExists,
	"ErrInvalidNarrative":       types.ErrInvalidNarrative,
	"ErrInsufficientPrivileges": types.ErrInsufficientPrivileges,
	"ErrInvalidDuration":        types.ErrInvalidDuration,
	"ErrRoleMismatch":           types.ErrRoleMismatch,
	"ErrInvalidCategory":        types.ErrInvalidCategory,
}

// toError converts a failed response into an error. Codes carried by the
// response body win over the HTTP status.
func toError(resp *http.Response) error {
	envelope := struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	if sentinel, ok := errorByCode[envelope.Code]; ok {
		return fmt.Errorf("%s: %w", envelope.Message, sentinel)
	}

	return fmt.Errorf("%s: %s", envelope.Code, envelope.Message)
}
