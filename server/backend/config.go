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

package backend

import (
	"fmt"
	"os"
	"time"
)

// Config is the configuration for creating a Backend instance.
type Config struct {
	// SecretKey is the secret key for signing authentication tokens.
	SecretKey string `yaml:"SecretKey"`

	// TokenDuration is the validity duration of issued tokens.
	TokenDuration string `yaml:"TokenDuration"`

	// ClockGenesis is the instant heights are measured from, in RFC 3339.
	// Expiration heights are persisted, so the genesis must stay the same
	// across restarts of the same registry.
	ClockGenesis string `yaml:"ClockGenesis"`

	// ClockInterval is the wall time between consecutive heights.
	ClockInterval string `yaml:"ClockInterval"`

	// EventStreamLimit is the maximum number of concurrent event stream
	// subscriptions the server accepts.
	EventStreamLimit int `yaml:"EventStreamLimit"`

	// Hostname is the DocVault server hostname. hostname is used by metrics.
	Hostname string `yaml:"Hostname"`
}

// Validate validates this config.
func (c *Config) Validate() error {
	if _, err := time.ParseDuration(c.TokenDuration); err != nil {
		return fmt.Errorf(
			`invalid argument "%s" for "--token-duration" flag: %w`,
			c.TokenDuration,
			err,
		)
	}

	if _, err := time.Parse(time.RFC3339, c.ClockGenesis); err != nil {
		return fmt.Errorf(
			`invalid argument "%s" for "--clock-genesis" flag: %w`,
			c.ClockGenesis,
			err,
		)
	}

	if _, err := time.ParseDuration(c.ClockInterval); err != nil {
		return fmt.Errorf(
			`invalid argument "%s" for "--clock-interval" flag: %w`,
			c.ClockInterval,
			err,
		)
	}

	if c.EventStreamLimit <= 0 {
		return fmt.Errorf(
			`invalid argument %d for "--event-stream-limit" flag`,
			c.EventStreamLimit,
		)
	}

	return nil
}

// ParseTokenDuration returns the validity duration of issued tokens.
func (c *Config) ParseTokenDuration() time.Duration {
	result, err := time.ParseDuration(c.TokenDuration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse token duration: %v\n", err)
		os.Exit(1)
	}

	return result
}

// ParseClockGenesis returns the genesis instant of the height clock.
func (c *Config) ParseClockGenesis() time.Time {
	result, err := time.Parse(time.RFC3339, c.ClockGenesis)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse clock genesis: %v\n", err)
		os.Exit(1)
	}

	return result
}

// ParseClockInterval returns the wall time between consecutive heights.
func (c *Config) ParseClockInterval() time.Duration {
	result, err := time.ParseDuration(c.ClockInterval)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse clock interval: %v\n", err)
		os.Exit(1)
	}

	return result
}
