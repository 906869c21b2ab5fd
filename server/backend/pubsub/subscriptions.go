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
	"fmt"

	"github.com/docvault-team/docvault/pkg/cmap"
)

// Subscriptions is the set of subscriptions watching one vault. The set for
// vault id zero holds the subscribers of every vault.
type Subscriptions struct {
	vaultID     uint64
	internalMap *cmap.Map[string, *Subscription]
}

// NewSubscriptions creates a new Subscriptions for the given vault id.
func NewSubscriptions(vaultID uint64) *Subscriptions {
	return &Subscriptions{
		vaultID:     vaultID,
		internalMap: cmap.New[string, *Subscription](),
	}
}

// Set adds the given subscription.
func (s *Subscriptions) Set(sub *Subscription) {
	s.internalMap.Set(sub.ID(), sub)
}

// Values returns the subscriptions of this set.
func (s *Subscriptions) Values() []*Subscription {
	return s.internalMap.Values()
}

// Delete deletes the subscription of the given id and closes it.
func (s *Subscriptions) Delete(id string) {
	s.internalMap.Delete(id, func(sub *Subscription, exists bool) bool {
		if exists {
			sub.Close()
		}
		return exists
	})
}

// Len returns the number of subscriptions in this set.
func (s *Subscriptions) Len() int {
	return s.internalMap.Len()
}

// String returns a string representation of this set.
func (s *Subscriptions) String() string {
	return fmt.Sprintf("Subscriptions(%d)", s.vaultID)
}
