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
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newFingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint [file]",
		Short: "Print the fingerprint of the given document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(filepath.Clean(args[0]))
			if err != nil {
				return fmt.Errorf("open document: %w", err)
			}
			defer func() {
				_ = file.Close()
			}()

			hash := sha256.New()
			if _, err := io.Copy(hash, file); err != nil {
				return fmt.Errorf("hash document: %w", err)
			}

			cmd.Println(hex.EncodeToString(hash.Sum(nil)))
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(newFingerprintCmd())
}
