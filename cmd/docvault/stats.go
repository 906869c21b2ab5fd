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

package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/docvault-team/docvault/admin"
	"github.com/docvault-team/docvault/cmd/docvault/config"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print statistics of the registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			rpcAddr := viper.GetString("rpcAddr")
			token, err := config.LoadToken(rpcAddr)
			if err != nil {
				return err
			}
			cli, err := admin.Dial(rpcAddr, admin.WithToken(token))
			if err != nil {
				return err
			}
			defer func() {
				cli.Close()
			}()

			ctx := context.Background()
			stats, err := cli.GetRegistryStats(ctx)
			if err != nil {
				return err
			}

			cmd.Printf("Height: %d\n", stats.Height)
			cmd.Printf("Vaults: %d\n", stats.VaultCount)
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(newStatsCmd())
}
