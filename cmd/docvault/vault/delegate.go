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

package vault

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/docvault-team/docvault/api/types"
)

var (
	flagDelegate             string
	flagAccessLevel          string
	flagDuration             uint64
	flagModificationsAllowed bool
)

func newDelegateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delegate [id]",
		Short:   "Delegate access on the vault to another principal",
		Example: "docvault vault delegate 1 --delegate bob --level read --duration 144",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseVaultID(args[0])
			if err != nil {
				return err
			}

			level, err := types.NewAccessLevel(flagAccessLevel)
			if err != nil {
				return err
			}

			cli, err := dial()
			if err != nil {
				return err
			}
			defer func() {
				cli.Close()
			}()

			ctx := context.Background()
			grant, err := cli.DelegateAccess(
				ctx,
				id,
				types.Principal(flagDelegate),
				level,
				flagDuration,
				flagModificationsAllowed,
			)
			if err != nil {
				return err
			}

			encoded, err := json.Marshal(grant)
			if err != nil {
				return err
			}
			cmd.Println(string(encoded))

			return nil
		},
	}
}

func init() {
	cmd := newDelegateCommand()
	cmd.Flags().StringVar(
		&flagDelegate,
		"delegate",
		"",
		"Principal to delegate access to",
	)
	cmd.Flags().StringVar(
		&flagAccessLevel,
		"level",
		"read",
		"Access level to delegate. One of 'read', 'write' or 'admin'",
	)
	cmd.Flags().Uint64Var(
		&flagDuration,
		"duration",
		0,
		"Validity window of the delegation in heights",
	)
	cmd.Flags().BoolVar(
		&flagModificationsAllowed,
		"modifications-allowed",
		false,
		"Whether the delegate may modify the document",
	)
	_ = cmd.MarkFlagRequired("delegate")
	_ = cmd.MarkFlagRequired("duration")
	SubCmd.AddCommand(cmd)
}
