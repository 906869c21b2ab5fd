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
	flagTitle       string
	flagFingerprint string
	flagFile        string
	flagNarrative   string
	flagCategory    string
	flagKeywords    []string
)

func newRegisterCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "register",
		Short:   "Register a new vault",
		Example: `docvault vault register --title lease --file ./lease.pdf --narrative "signed office lease" --category contracts --keywords lease,office`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fingerprint := flagFingerprint
			if flagFile != "" {
				if fingerprint != "" {
					return errors.New("--fingerprint and --file are mutually exclusive")
				}

				computed, err := fingerprintFile(flagFile)
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

			ctx := context.Background()
			vault, err := cli.RegisterVault(ctx, &types.VaultFields{
				Title:       flagTitle,
				Fingerprint: fingerprint,
				Narrative:   flagNarrative,
				Category:    flagCategory,
				Keywords:    flagKeywords,
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
	cmd := newRegisterCommand()
	cmd.Flags().StringVar(
		&flagTitle,
		"title",
		"",
		"Title of the document",
	)
	cmd.Flags().StringVar(
		&flagFingerprint,
		"fingerprint",
		"",
		"Fingerprint of the document",
	)
	cmd.Flags().StringVar(
		&flagFile,
		"file",
		"",
		"Path of a document to fingerprint locally",
	)
	cmd.Flags().StringVar(
		&flagNarrative,
		"narrative",
		"",
		"Description of the document",
	)
	cmd.Flags().StringVar(
		&flagCategory,
		"category",
		"",
		"Category of the document. It cannot be changed after registration",
	)
	cmd.Flags().StringSliceVar(
		&flagKeywords,
		"keywords",
		nil,
		"Keywords of the document",
	)
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("narrative")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("keywords")
	SubCmd.AddCommand(cmd)
}
