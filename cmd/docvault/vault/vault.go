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

// Package vault provides the vault commands of the DocVault CLI.
package vault

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/docvault-team/docvault/admin"
	"github.com/docvault-team/docvault/cmd/docvault/config"
)

// SubCmd represents the vault command. It is the parent of every vault
// subcommand.
var SubCmd = &cobra.Command{
	Use:   "vault",
	Short: "Manage vaults",
}

// dial creates a client for the configured server with the stored token.
func dial() (*admin.Client, error) {
	rpcAddr := viper.GetString("rpcAddr")
	token, err := config.LoadToken(rpcAddr)
	if err != nil {
		return nil, err
	}

	return admin.Dial(rpcAddr, admin.WithToken(token))
}

// parseVaultID parses a vault id argument.
func parseVaultID(arg string) (uint64, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid vault id %q", arg)
	}

	return id, nil
}

// fingerprintFile computes the fingerprint of the document at the given
// path.
func fingerprintFile(path string) (string, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("open document: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", fmt.Errorf("hash document: %w", err)
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}
