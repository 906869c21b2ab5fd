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
	"errors"

	"github.com/spf13/cobra"

	"github.com/docvault-team/docvault/api/types"
)

var (
	flagUpdateTitle       string
	flagUpdateFingerprint string
	flagUpdateFile        string
	flagUpdateNarrative   string
	flagUpdateKeywords    []string
)

func newUpdateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "update [id]",
		Short:   "Update the vault with the given id",
		Example: `docvault vault update 1 --title lease-v2 --file ./lease-v2.pdf --narrative "amended office lease" --keywords lease,office,amended`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseVaultID(args[0])
			if err != nil {
				return err
			}

			fingerprint := flagUpdateFingerprint
			if flagUpdateFile != "" {
				if fingerprint != "" {
					return errors.New("--fingerprint and --file are mutually exclusive")
				}

				computed, err := fingerprintFile(flagUpdateFile)
				if err != nil {
					return err
				}
				fingerprint = computed
			}
			if fingerprint == "" {
				return errors.New("either --fingerprint or --file is required")
			}

			cli, err := dial()
			if err != nil {
				return err
			}
			defer func() {
				cli.Close()
			}()

			// An update replaces every mutable field, so all of them must be
			// given even when unchanged.
			ctx := context.Background()
			vault, err := cli.UpdateVault(ctx, id, &types.UpdatableVaultFields{
				Title:       flagUpdateTitle,
				Fingerprint: fingerprint,
				Narrative:   flagUpdateNarrative,
				Keywords:    flagUpdateKeywords,
			})
			if err != nil {
				return err
			}

			encoded, err := json.Marshal(vault)
			if err != nil {
				return err
			}
			cmd.Println(string(encoded))

			return nil
		},
	}
}

func init() {
	cmd := newUpdateCommand()
	cmd.Flags().StringVar(
		&flagUpdateTitle,
		"title",
		"",
		"Title of the document",
	)
	cmd.Flags().StringVar(
		&flagUpdateFingerprint,
		"fingerprint",
		"",
		"Fingerprint of the document",
	)
	cmd.Flags().StringVar(
		&flagUpdateFile,
		"file",
		"",
		"Path of a document to fingerprint locally",
	)
	cmd.Flags().StringVar(
		&flagUpdateNarrative,
		"narrative",
		"",
		"Description of the document",
	)
	cmd.Flags().StringSliceVar(
		&flagUpdateKeywords,
		"keywords",
		nil,
		"Keywords of the document",
	)
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("narrative")
	_ = cmd.MarkFlagRequired("keywords")
	SubCmd.AddCommand(cmd)
}
