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

package pubsub

import (
	"sync"
	"time"

	"github.com/rs/xid"

	"github.com/docvault-team/docvault/api/types"
	"github.com/docvault-team/docvault/api/types/events"
)

const (
	// publishTimeout is the timeout for publishing an event.
	publishTimeout = 100 * time.Millisecond

	// eventsBufferSize is the buffer size of the subscription event channel.
	eventsBufferSize = 16
)

// Subscription represents a subscription of a subscriber to vault events.
type Subscription struct {
	id         string
	subscriber types.Principal
	vaultID    uint64
	mu         sync.Mutex
	closed     bool
	events     chan events.VaultEvent
}

// NewSubscription creates a new instance of Subscription. A zero vaultID
// subscribes to the events of every vault.
func NewSubscription(subscriber types.Principal, vaultID uint64) *Subscription {
	return &Subscription{
		id:         xid.New().String(),
		subscriber: subscriber,
		vaultID:    vaultID,
		events:     make(chan events.VaultEvent, eventsBufferSize),
	}
}

// ID returns the id of this subscription.
func (s *Subscription) ID() string {
	return s.id
}

// Events returns the event channel of this subscription.
func (s *Subscription) Events() chan events.VaultEvent {
	return s.events
}

// Subscriber returns the subscriber of this subscription.
func (s *Subscription) Subscriber() types.Principal {
	return s.subscriber
}

// VaultID returns the vault this subscription watches. Zero means every
// vault.
func (s *Subscription) VaultID() uint64 {
	return s.vaultID
}

// Close closes all resources of this Subscription.
func (s *Subscription) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.events)
	}
}

// Publish publishes the given event to the subscriber. It returns false if
// the subscription is closed or the subscriber does not keep up.
func (s *Subscription) Publish(event events.VaultEvent) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	select {
	case s.events <- event:
		return true
	case <-time.After(publishTimeout):
		return false
	}
}
