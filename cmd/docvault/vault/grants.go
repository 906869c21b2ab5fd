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
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/docvault-team/docvault/api/types"
)

func newGrantsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "grants [id]",
		Short:   "List the grants issued on the vault",
		Example: "docvault vault grants 1",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseVaultID(args[0])
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
			grants, err := cli.ListGrants(ctx, id)
			if err != nil {
				return err
			}

			output := viper.GetString("output")
			if err := printGrants(cmd, output, grants); err != nil {
				return err
			}

			return nil
		},
	}
}

func printGrants(cmd *cobra.Command, output string, grants []*types.Grant) error {
	switch output {
	case "":
		tw := table.NewWriter()
		tw.Style().Options.DrawBorder = false
		tw.Style().Options.SeparateColumns = false
		tw.Style().Options.SeparateFooter = false
		tw.Style().Options.SeparateHeader = false
		tw.Style().Options.SeparateRows = false
		tw.AppendHeader(table.Row{
			"DELEGATE",
			"LEVEL",
			"MODIFICATIONS",
			"ISSUED",
			"EXPIRES",
		})
		for _, grant := range grants {
			tw.AppendRow(table.Row{
				grant.Delegate,
				grant.AccessLevel,
				grant.ModificationsAllowed,
				grant.IssuanceHeight,
				grant.ExpirationHeight,
			})
		}
		cmd.Printf("%s\n", tw.Render())
	case "json":
		jsonOutput, err := json.MarshalIndent(grants, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal JSON: %w", err)
		}
		cmd.Println(string(jsonOutput))
	case "yaml":
		yamlOutput, err := yaml.Marshal(grants)
		if err != nil {
			return fmt.Errorf("marshal YAML: %w", err)
		}
		cmd.Println(string(yamlOutput))
	default:
		return fmt.Errorf("unknown output format: %s", output)
	}

	return nil
}

func init() {
	SubCmd.AddCommand(newGrantsCommand())
}
