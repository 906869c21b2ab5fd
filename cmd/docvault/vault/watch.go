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
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "watch [id]",
		Short:   "Watch the events of a vault, or of every vault if no id is given",
		Example: "docvault vault watch 1",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var vaultID uint64
			if len(args) == 1 {
				id, err := parseVaultID(args[0])
				if err != nil {
					return err
				}
				vaultID = id
			}

			cli, err := dial()
			if err != nil {
				return err
			}
			defer func() {
				cli.Close()
			}()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			events, err := cli.WatchEvents(ctx, vaultID)
			if err != nil {
				return err
			}

			for event := range events {
				encoded, err := json.Marshal(event)
				if err != nil {
					return err
				}
				cmd.Println(string(encoded))
			}

			return nil
		},
	}
}

func init() {
	SubCmd.AddCommand(newWatchCommand())
}
