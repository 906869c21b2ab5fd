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

// Package main is the entry point of the DocVault CLI.
package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/docvault-team/docvault/cmd/docvault/vault"
)

var rootCmd = &cobra.Command{
	Use:   "docvault",
	Short: "Registry for document fingerprints with delegated access",
}

// Run executes CLI.
func Run() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}

	return 0
}

func init() {
	rootCmd.PersistentFlags().String(
		"rpc-addr",
		"localhost:8980",
		"Address of the DocVault server",
	)
	rootCmd.PersistentFlags().StringP(
		"output",
		"o",
		"",
		"One of 'json' or 'yaml'",
	)
	_ = viper.BindPFlag("rpcAddr", rootCmd.PersistentFlags().Lookup("rpc-addr"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindEnv("rpcAddr", "DOCVAULT_RPC_ADDR")

	rootCmd.AddCommand(vault.SubCmd)
}
