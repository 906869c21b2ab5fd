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

package auth

import (
	"net/http"
	"strings"

	"github.com/docvault-team/docvault/server/logging"
)

// RequireAuth verifies the bearer token of each request and stores the
// authenticated principal in the request context. Requests without a valid
// token are rejected before any handler runs.
func RequireAuth(tokenManager *TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok {
				writeUnauthenticated(w, "missing bearer token")
				return
			}

			principal, err := tokenManager.Verify(token)
			if err != nil {
				logging.From(r.Context()).Debugf("token rejected: %v", err)
				writeUnauthenticated(w, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(CtxWithPrincipal(r.Context(), principal)))
		})
	}
}

func writeUnauthenticated(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Docvault-Error-Code", "ErrUnauthenticated")
	w.WriteHeader(http.StatusUnauthorized)
	if _, err := w.Write([]byte(
		`{"code":"ErrUnauthenticated","message":"` + message + `"}`,
	)); err != nil {
		logging.DefaultLogger().Errorf("write unauthenticated response: %v", err)
	}
}
