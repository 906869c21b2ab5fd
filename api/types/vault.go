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

package types

// Vault is a registered document record. Only the fingerprint and metadata
// of a document are held; its content never enters the registry.
type Vault struct {
	// ID is the identifier of the vault. Ids are allocated gaplessly from 1
	// in registration order and never reused.
	ID uint64 `json:"id"`

	// Title is the title of the document.
	Title string `json:"title"`

	// Owner is the principal that registered the vault. It never changes.
	Owner Principal `json:"owner"`

	// Fingerprint is the 64-character content hash of the document.
	Fingerprint string `json:"fingerprint"`

	// Narrative is the free-text description of the document.
	Narrative string `json:"narrative"`

	// Category is the category of the document. It is set at registration
	// and not updatable.
	Category string `json:"category"`

	// Keywords is the ordered keyword list of the document.
	Keywords []string `json:"keywords"`

	// CreationHeight is the height at which the vault was registered.
	CreationHeight uint64 `json:"creation_height"`

	// ModificationHeight is the height of the last successful mutation.
	ModificationHeight uint64 `json:"modification_height"`
}
