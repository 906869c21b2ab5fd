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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/docvault-team/docvault/api/types"
	"github.com/docvault-team/docvault/api/types/events"
	"github.com/docvault-team/docvault/pkg/errors"
	"github.com/docvault-team/docvault/server/logging"
	"github.com/docvault-team/docvault/server/rpc/auth"
)

// keepaliveInterval is the interval of SSE keepalive comments. It keeps idle
// streams from being cut by intermediaries.
const keepaliveInterval = 30 * time.Second

var errStreamingUnsupported = errors.Internal(
	"streaming unsupported",
).WithCode("ErrStreamingUnsupported")

// handleEvents streams vault events to the caller as server-sent events. The
// stream ends when the caller disconnects or the server shuts down.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(ctx, w, errStreamingUnsupported)
		return
	}

	var vaultID uint64
	if raw := r.URL.Query().Get("vault_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("vault id %q: %w", raw, types.ErrInvalidInput))
			return
		}
		vaultID = id
	}

	sub, err := s.backend.PubSub.Subscribe(
		ctx,
		auth.PrincipalFromCtx(ctx),
		vaultID,
		s.backend.Config.EventStreamLimit,
	)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	defer s.backend.PubSub.Unsubscribe(ctx, sub)

	s.backend.Metrics.AddEventSubscribers()
	defer s.backend.Metrics.RemoveEventSubscribers()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.serviceCtx.Done():
			return
		case <-keepalive.C:
			if _, err := fmt.Fprint(w, ": keepalive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case event, ok := <-sub.Events():
			if !ok {
				return
			}

			if err := writeEvent(w, event); err != nil {
				logging.From(ctx).Debugf("stream write: %v", err)
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w io.Writer, event events.VaultEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, body); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	return nil
}
