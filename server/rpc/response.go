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

package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/docvault-team/docvault/api/types"
	"github.com/docvault-team/docvault/pkg/errors"
	"github.com/docvault-team/docvault/server/logging"
)

// errorCodeHeader carries the stable error code of a failed call so that
// middleware can label metrics without parsing the response body.
const errorCodeHeader = "X-Docvault-Error-Code"

// errorResponse is the envelope of a failed call.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func decodeJSON(r *http.Request, body any) error {
	if err := json.NewDecoder(r.Body).Decode(body); err != nil {
		return fmt.Errorf("%s: %w", err, types.ErrInvalidInput)
	}
	return nil
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.From(ctx).Errorf("encode response: %v", err)
	}
}

// writeError writes the given error as an errorResponse. Errors without a
// status are not caused by the caller and are masked as internal errors.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := errors.StatusOf(err)
	if status == 0 {
		logging.From(ctx).Error(err)

		w.Header().Set(errorCodeHeader, "ErrInternal")
		writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{
			Code:    "ErrInternal",
			Message: "internal error",
		})
		return
	}

	code := errors.CodeOf(err)
	if code == "" {
		code = status.String()
	}

	w.Header().Set(errorCodeHeader, code)
	writeJSON(ctx, w, status.HTTPStatus(), errorResponse{
		Code:    code,
		Message: err.Error(),
	})
}
