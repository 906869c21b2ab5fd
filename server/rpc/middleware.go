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
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/docvault-team/docvault/server/logging"
)

// loggingMiddleware attaches a request-scoped logger to the context and logs
// how each call completed.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := logging.With(r.Context(), s.logger)

		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		if logging.Enabled(zap.DebugLevel) {
			s.logger.Debugf(
				"RPC : %q %s %d => %s",
				r.Method,
				r.URL.Path,
				ww.Status(),
				time.Since(start),
			)
		}
	})
}

// handledCounterMiddleware counts handled calls per route and result code.
// The route pattern is only resolved after the routing tree has run, so the
// counter is read on the way out.
func (s *Server) handledCounterMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		code := ww.Header().Get(errorCodeHeader)
		if code == "" {
			code = "OK"
		}

		s.backend.Metrics.AddServerHandledCounter(
			r.Method+" "+chi.RouteContext(r.Context()).RoutePattern(),
			code,
		)
	})
}
