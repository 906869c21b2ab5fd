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

var flagToken string

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in to the DocVault server with an access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			rpcAddr := viper.GetString("rpcAddr")

			cli, err := admin.Dial(rpcAddr, admin.WithToken(flagToken))
			if err != nil {
				return err
			}
			defer func() {
				_ = cli.Close()
			}()

			// reject tokens the server does not accept before storing them
			if _, err := cli.GetRegistryStats(context.Background()); err != nil {
				return err
			}

			conf, err := config.Load()
			if err != nil {
				return err
			}
			if conf.Auths == nil {
				conf.Auths = make(map[string]string)
			}
			conf.Auths[rpcAddr] = flagToken

			return config.Save(conf)
		},
	}
}

func init() {
	cmd := newLoginCmd()
	cmd.Flags().StringVarP(
		&flagToken,
		"token",
		"t",
		"",
		"Access token minted for the caller",
	)
	_ = cmd.MarkFlagRequired("token")
	rootCmd.AddCommand(cmd)
}
