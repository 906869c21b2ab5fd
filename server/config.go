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

package server

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/docvault-team/docvault/server/backend"
	"github.com/docvault-team/docvault/server/backend/database/mongo"
	"github.com/docvault-team/docvault/server/backend/housekeeping"
	"github.com/docvault-team/docvault/server/backend/messagebroker"
	"github.com/docvault-team/docvault/server/profiling"
	"github.com/docvault-team/docvault/server/rpc"
)

// Below are the values of the default values of DocVault config.
const (
	DefaultRPCPort       = 8980
	DefaultProfilingPort = 8981

	DefaultHousekeepingInterval = time.Minute

	DefaultMongoConnectionURI                = "mongodb://localhost:27017"
	DefaultMongoConnectionTimeout            = 5 * time.Second
	DefaultMongoPingTimeout                  = 5 * time.Second
	DefaultMongoDocVaultDatabase             = "docvault-meta"
	DefaultMongoMonitoringSlowQueryThreshold = 100 * time.Millisecond

	DefaultKafkaTopic        = "vault-events"
	DefaultKafkaWriteTimeout = 5 * time.Second

	DefaultSecretKey     = "docvault-secret"
	DefaultTokenDuration = 7 * 24 * time.Hour

	DefaultClockGenesis  = "2025-01-01T00:00:00Z"
	DefaultClockInterval = 10 * time.Minute

	DefaultEventStreamLimit = 1000

	DefaultHostname = ""
)

// Config is the configuration for creating a DocVault instance.
type Config struct {
	RPC          *rpc.Config           `yaml:"RPC"`
	Profiling    *profiling.Config     `yaml:"Profiling"`
	Housekeeping *housekeeping.Config  `yaml:"Housekeeping"`
	Backend      *backend.Config       `yaml:"Backend"`
	Mongo        *mongo.Config         `yaml:"Mongo"`
	Kafka        *messagebroker.Config `yaml:"Kafka"`
}

// NewConfig returns a Config struct that contains reasonable defaults
// for most of the configurations.
func NewConfig() *Config {
	return newConfig(DefaultRPCPort, DefaultProfilingPort)
}

// NewConfigFromFile returns a Config struct for the given conf file.
func NewConfigFromFile(path string) (*Config, error) {
	conf := &Config{}
	bytes, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err = yaml.Unmarshal(bytes, conf); err != nil {
		return nil, fmt.Errorf("unmarshal config file: %w", err)
	}

	conf.ensureDefaultValue()
	return conf, nil
}

// RPCAddr returns the RPC address.
func (c *Config) RPCAddr() string {
	return fmt.Sprintf("localhost:%d", c.RPC.Port)
}

// Validate returns an error if the provided Config is invalidated.
func (c *Config) Validate() error {
	if err := c.RPC.Validate(); err != nil {
		return err
	}

	if err := c.Profiling.Validate(); err != nil {
		return err
	}

	if err := c.Housekeeping.Validate(); err != nil {
		return err
	}

	if err := c.Backend.Validate(); err != nil {
		return err
	}

	if c.Mongo != nil {
		if err := c.Mongo.Validate(); err != nil {
			return err
		}
	}

	if c.Kafka != nil {
		if err := c.Kafka.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// ensureDefaultValue sets the value of the option to which the default value
// should be applied when the user does not input it.
func (c *Config) ensureDefaultValue() {
	if c.RPC == nil {
		c.RPC = &rpc.Config{}
	}
	if c.Profiling == nil {
		c.Profiling = &profiling.Config{}
	}
	if c.Housekeeping == nil {
		c.Housekeeping = &housekeeping.Config{}
	}
	if c.Backend == nil {
		c.Backend = &backend.Config{}
	}

	if c.RPC.Port == 0 {
		c.RPC.Port = DefaultRPCPort
	}

	if c.Profiling.Port == 0 {
		c.Profiling.Port = DefaultProfilingPort
	}

	if c.Housekeeping.Interval == "" {
		c.Housekeeping.Interval = DefaultHousekeepingInterval.String()
	}

	if c.Backend.SecretKey == "" {
		c.Backend.SecretKey = DefaultSecretKey
	}
	if c.Backend.TokenDuration == "" {
		c.Backend.TokenDuration = DefaultTokenDuration.String()
	}
	if c.Backend.ClockGenesis == "" {
		c.Backend.ClockGenesis = DefaultClockGenesis
	}
	if c.Backend.ClockInterval == "" {
		c.Backend.ClockInterval = DefaultClockInterval.String()
	}
	if c.Backend.EventStreamLimit == 0 {
		c.Backend.EventStreamLimit = DefaultEventStreamLimit
	}

	if c.Mongo != nil {
		if c.Mongo.ConnectionURI == "" {
			c.Mongo.ConnectionURI = DefaultMongoConnectionURI
		}

		if c.Mongo.ConnectionTimeout == "" {
			c.Mongo.ConnectionTimeout = DefaultMongoConnectionTimeout.String()
		}

		if c.Mongo.DocVaultDatabase == "" {
			c.Mongo.DocVaultDatabase = DefaultMongoDocVaultDatabase
		}

		if c.Mongo.PingTimeout == "" {
			c.Mongo.PingTimeout = DefaultMongoPingTimeout.String()
		}

		if c.Mongo.MonitoringEnabled {
			if c.Mongo.MonitoringSlowQueryThreshold == "" {
				c.Mongo.MonitoringSlowQueryThreshold = DefaultMongoMonitoringSlowQueryThreshold.String()
			}
		}
	}

	if c.Kafka != nil && c.Kafka.Addresses != "" {
		if c.Kafka.Topic == "" {
			c.Kafka.Topic = DefaultKafkaTopic
		}
		if c.Kafka.WriteTimeout == "" {
			c.Kafka.WriteTimeout = DefaultKafkaWriteTimeout.String()
		}
	}
}

func newConfig(port int, profilingPort int) *Config {
	return &Config{
		RPC: &rpc.Config{
			Port: port,
		},
		Profiling: &profiling.Config{
			Port: profilingPort,
		},
		Housekeeping: &housekeeping.Config{
			Interval: DefaultHousekeepingInterval.String(),
		},
		Backend: &backend.Config{
			SecretKey:        DefaultSecretKey,
			TokenDuration:    DefaultTokenDuration.String(),
			ClockGenesis:     DefaultClockGenesis,
			ClockInterval:    DefaultClockInterval.String(),
			EventStreamLimit: DefaultEventStreamLimit,
		},
	}
}
