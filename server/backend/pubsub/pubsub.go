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

// Package pubsub provides an in-memory pub-sub for vault events, used for
// a single server.
package pubsub

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/docvault-team/docvault/api/types"
	"github.com/docvault-team/docvault/api/types/events"
	"github.com/docvault-team/docvault/pkg/cmap"
	"github.com/docvault-team/docvault/pkg/errors"
	"github.com/docvault-team/docvault/server/logging"
)

// ErrTooManySubscribers is returned when the subscription limit is exceeded.
var ErrTooManySubscribers = errors.ResourceExhausted(
	"subscription limit exceeded",
).WithCode("ErrTooManySubscribers")

// PubSub is an in-memory event hub. Subscriptions are grouped by the vault
// they watch; the group for vault id zero receives the events of every
// vault.
type PubSub struct {
	subsMap *cmap.Map[uint64, *Subscriptions]
}

// New creates an instance of PubSub.
func New() *PubSub {
	return &PubSub{
		subsMap: cmap.New[uint64, *Subscriptions](),
	}
}

// Subscribe subscribes the given subscriber to vault events. If vaultID is
// zero the subscription receives the events of every vault. A limit of zero
// means no limit.
func (m *PubSub) Subscribe(
	ctx context.Context,
	subscriber types.Principal,
	vaultID uint64,
	limit int,
) (*Subscription, error) {
	if logging.Enabled(zap.DebugLevel) {
		logging.From(ctx).Debugf(`Subscribe(%d,%s) Start`, vaultID, subscriber)
	}

	// Upsert keeps the limit check and the insertion atomic per vault. If
	// newSub stays nil the limit was exceeded and nothing was added.
	var newSub *Subscription
	_ = m.subsMap.Upsert(vaultID, func(subs *Subscriptions, exists bool) *Subscriptions {
		if !exists {
			subs = NewSubscriptions(vaultID)
		}

		if limit > 0 && subs.Len() >= limit {
			return subs
		}

		newSub = NewSubscription(subscriber, vaultID)
		subs.Set(newSub)
		return subs
	})

	if newSub == nil {
		return nil, fmt.Errorf("%d subscribers allowed per vault: %w", limit, ErrTooManySubscribers)
	}

	if logging.Enabled(zap.DebugLevel) {
		logging.From(ctx).Debugf(`Subscribe(%d,%s) End`, vaultID, subscriber)
	}

	return newSub, nil
}

// Unsubscribe removes the given subscription and closes it. Empty groups
// are removed so idle vaults hold no entry.
func (m *PubSub) Unsubscribe(ctx context.Context, sub *Subscription) {
	sub.Close()

	if subs, ok := m.subsMap.Get(sub.VaultID()); ok {
		subs.Delete(sub.ID())

		m.subsMap.Delete(sub.VaultID(), func(subs *Subscriptions, exists bool) bool {
			return exists && subs.Len() == 0
		})
	}

	if logging.Enabled(zap.DebugLevel) {
		logging.From(ctx).Debugf(`Unsubscribe(%s) End`, sub.Subscriber())
	}
}

// Publish publishes the given event to the subscribers of its vault and to
// the subscribers of every vault.
func (m *PubSub) Publish(ctx context.Context, event events.VaultEvent) {
	m.publishToGroup(ctx, event.VaultID, event)
	if event.VaultID != 0 {
		m.publishToGroup(ctx, 0, event)
	}
}

func (m *PubSub) publishToGroup(ctx context.Context, vaultID uint64, event events.VaultEvent) {
	subs, ok := m.subsMap.Get(vaultID)
	if !ok {
		return
	}

	for _, sub := range subs.Values() {
		if ok := sub.Publish(event); !ok {
			logging.From(ctx).Warnf(
				`Publish(%d,%s) to %s timeout or closed`,
				event.VaultID,
				event.Type,
				sub.Subscriber(),
			)
		}
	}
}

// Len returns the number of active subscriptions.
func (m *PubSub) Len() int {
	total := 0
	for _, subs := range m.subsMap.Values() {
		total += subs.Len()
	}

	return total
}
