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

// Package messagebroker provides the message broker of the registry. Vault
// events are produced to it after every successful mutation so external
// consumers can follow the ledger.
package messagebroker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/docvault-team/docvault/api/types/events"
	"github.com/docvault-team/docvault/server/logging"
)

// Message represents a message that can be sent to the message broker.
type Message interface {
	Marshal() ([]byte, error)
}

// VaultEventMessage is the broker representation of a vault event.
type VaultEventMessage struct {
	EventType events.VaultEventType `json:"event_type"`
	VaultID   uint64                `json:"vault_id"`
	Actor     string                `json:"actor"`
	Height    uint64                `json:"height"`
	Timestamp time.Time             `json:"timestamp"`
}

// Marshal marshals the vault event message to JSON.
func (m VaultEventMessage) Marshal() ([]byte, error) {
	encoded, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	return encoded, nil
}

// NewVaultEventMessage builds a broker message from a vault event, stamped
// with the current wall time.
func NewVaultEventMessage(event events.VaultEvent) VaultEventMessage {
	return VaultEventMessage{
		EventType: event.Type,
		VaultID:   event.VaultID,
		Actor:     event.Actor.String(),
		Height:    event.Height,
		Timestamp: time.Now(),
	}
}

// Broker is an interface for the message broker.
type Broker interface {
	Produce(ctx context.Context, msg Message) error
	Close() error
}

// Ensure creates a message broker based on the given configuration. If the
// configuration is nil or invalid, it returns a DummyBroker so callers can
// produce without nil checks.
func Ensure(conf *Config) Broker {
	if conf == nil {
		return &DummyBroker{}
	}

	if err := conf.Validate(); err != nil {
		logging.DefaultLogger().Warnf("invalid kafka configuration: %v", err)
		return &DummyBroker{}
	}

	logging.DefaultLogger().Infof(
		"connecting to kafka: %s, topic: %s",
		conf.Addresses,
		conf.Topic,
	)

	return newKafkaBroker(conf)
}
