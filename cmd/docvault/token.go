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
	"time"

	"github.com/spf13/cobra"

	"github.com/docvault-team/docvault/api/types"
	"github.com/docvault-team/docvault/server"
	"github.com/docvault-team/docvault/server/rpc/auth"
)

var (
	flagSecretKey     string
	flagTokenDuration time.Duration
)

func newTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token [principal]",
		Short: "Mint an access token for the given principal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			principal := types.Principal(args[0])
			if err := principal.Validate(); err != nil {
				return err
			}

			token, err := auth.NewTokenManager(
				flagSecretKey,
				flagTokenDuration,
			).Generate(principal)
			if err != nil {
				return err
			}

			cmd.Println(token)
			return nil
		},
	}
}

func init() {
	cmd := newTokenCmd()
	cmd.Flags().StringVar(
		&flagSecretKey,
		"secret-key",
		server.DefaultSecretKey,
		"The secret key the server signs tokens with",
	)
	cmd.Flags().DurationVar(
		&flagTokenDuration,
		"duration",
		server.DefaultTokenDuration,
		"The validity duration of the token",
	)
	rootCmd.AddCommand(cmd)
}
