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

// Package testcases contains testcases for database. It is used by database
// implementations to test their own implementations with the same testcases.
package testcases

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docvault-team/docvault/api/types"
	"github.com/docvault-team/docvault/server/backend/database"
)

func newVaultFields(title string) *types.VaultFields {
	return &types.VaultFields{
		Title:       title,
		Fingerprint: strings.Repeat("a", 64),
		Narrative:   "scanned lease agreement for the downtown office",
		Category:    "contracts",
		Keywords:    []string{"lease", "office"},
	}
}

func newUpdatableVaultFields(title string) *types.UpdatableVaultFields {
	return &types.UpdatableVaultFields{
		Title:       title,
		Fingerprint: strings.Repeat("b", 64),
		Narrative:   "amended lease agreement after renegotiation",
		Keywords:    []string{"lease", "amendment", "office"},
	}
}

// RunRegisterVaultTest runs the RegisterVault test for the given db.
func RunRegisterVaultTest(t *testing.T, db database.Database) {
	t.Run("register vault test", func(t *testing.T) {
		ctx := context.Background()
		owner := types.Principal(t.Name())

		count, err := db.VaultCount(ctx)
		assert.NoError(t, err)

		fields := newVaultFields("lease-agreement")
		info, err := db.RegisterVault(ctx, owner, 10, fields)
		assert.NoError(t, err)
		assert.Equal(t, count+1, info.ID)
		assert.Equal(t, owner, info.Owner)
		assert.Equal(t, fields.Title, info.Title)
		assert.Equal(t, fields.Fingerprint, info.Fingerprint)
		assert.Equal(t, fields.Narrative, info.Narrative)
		assert.Equal(t, fields.Category, info.Category)
		assert.Equal(t, fields.Keywords, info.Keywords)
		assert.Equal(t, uint64(10), info.CreationHeight)
		assert.Equal(t, uint64(10), info.ModificationHeight)

		count, err = db.VaultCount(ctx)
		assert.NoError(t, err)
		assert.Equal(t, info.ID, count)
	})

	t.Run("register vault with invalid fields test", func(t *testing.T) {
		ctx := context.Background()
		owner := types.Principal(t.Name())

		cases := []struct {
			name     string
			mutate   func(fields *types.VaultFields)
			expected error
		}{
			{
				name:     "empty title",
				mutate:   func(fields *types.VaultFields) { fields.Title = "" },
				expected: types.ErrInvalidInput,
			},
			{
				name:     "too long title",
				mutate:   func(fields *types.VaultFields) { fields.Title = strings.Repeat("t", 51) },
				expected: types.ErrInvalidInput,
			},
			{
				name:     "too short fingerprint",
				mutate:   func(fields *types.VaultFields) { fields.Fingerprint = strings.Repeat("a", 63) },
				expected: types.ErrInvalidInput,
			},
			{
				name:     "too long fingerprint",
				mutate:   func(fields *types.VaultFields) { fields.Fingerprint = strings.Repeat("a", 65) },
				expected: types.ErrInvalidInput,
			},
			{
				name:     "empty narrative",
				mutate:   func(fields *types.VaultFields) { fields.Narrative = "" },
				expected: types.ErrInvalidNarrative,
			},
			{
				name:     "too long narrative",
				mutate:   func(fields *types.VaultFields) { fields.Narrative = strings.Repeat("n", 201) },
				expected: types.ErrInvalidNarrative,
			},
			{
				name:     "empty category",
				mutate:   func(fields *types.VaultFields) { fields.Category = "" },
				expected: types.ErrInvalidCategory,
			},
			{
				name:     "too long category",
				mutate:   func(fields *types.VaultFields) { fields.Category = strings.Repeat("c", 21) },
				expected: types.ErrInvalidCategory,
			},
			{
				name:     "no keywords",
				mutate:   func(fields *types.VaultFields) { fields.Keywords = nil },
				expected: types.ErrInvalidNarrative,
			},
			{
				name: "too many keywords",
				mutate: func(fields *types.VaultFields) {
					fields.Keywords = []string{"k1", "k2", "k3", "k4", "k5", "k6"}
				},
				expected: types.ErrInvalidNarrative,
			},
			{
				name: "too long keyword",
				mutate: func(fields *types.VaultFields) {
					fields.Keywords = []string{"lease", strings.Repeat("k", 31)}
				},
				expected: types.ErrInvalidNarrative,
			},
			{
				name: "first invalid field wins",
				mutate: func(fields *types.VaultFields) {
					fields.Title = ""
					fields.Narrative = ""
				},
				expected: types.ErrInvalidInput,
			},
		}

		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				count, err := db.VaultCount(ctx)
				assert.NoError(t, err)

				fields := newVaultFields("rejected-vault")
				c.mutate(fields)

				_, err = db.RegisterVault(ctx, owner, 10, fields)
				assert.ErrorIs(t, err, c.expected)

				// A rejected registration must not consume an ID.
				after, err := db.VaultCount(ctx)
				assert.NoError(t, err)
				assert.Equal(t, count, after)
			})
		}
	})
}

// RunUpdateVaultTest runs the UpdateVault test for the given db.
func RunUpdateVaultTest(t *testing.T, db database.Database) {
	t.Run("update vault test", func(t *testing.T) {
		ctx := context.Background()
		owner := types.Principal(t.Name())

		info, err := db.RegisterVault(ctx, owner, 10, newVaultFields("lease-agreement"))
		assert.NoError(t, err)

		fields := newUpdatableVaultFields("amended-lease-agreement")
		updated, err := db.UpdateVault(ctx, owner, 20, info.ID, fields)
		assert.NoError(t, err)
		assert.Equal(t, fields.Title, updated.Title)
		assert.Equal(t, fields.Fingerprint, updated.Fingerprint)
		assert.Equal(t, fields.Narrative, updated.Narrative)
		assert.Equal(t, fields.Keywords, updated.Keywords)
		assert.Equal(t, info.Category, updated.Category)
		assert.Equal(t, info.Owner, updated.Owner)
		assert.Equal(t, info.CreationHeight, updated.CreationHeight)
		assert.Equal(t, uint64(20), updated.ModificationHeight)

		found, err := db.FindVaultInfoByID(ctx, info.ID)
		assert.NoError(t, err)
		assert.Equal(t, updated, found)
	})

	t.Run("update absent vault test", func(t *testing.T) {
		ctx := context.Background()
		owner := types.Principal(t.Name())

		count, err := db.VaultCount(ctx)
		assert.NoError(t, err)

		_, err = db.UpdateVault(ctx, owner, 20, count+1, newUpdatableVaultFields("no-such-vault"))
		assert.ErrorIs(t, err, types.ErrVaultNotFound)
	})

	t.Run("update vault by non-owner test", func(t *testing.T) {
		ctx := context.Background()
		owner := types.Principal(t.Name())
		stranger := types.Principal(t.Name() + "-stranger")

		info, err := db.RegisterVault(ctx, owner, 10, newVaultFields("lease-agreement"))
		assert.NoError(t, err)

		// Ownership is checked before field validation.
		_, err = db.UpdateVault(ctx, stranger, 20, info.ID, newUpdatableVaultFields(""))
		assert.ErrorIs(t, err, types.ErrUnauthorized)

		found, err := db.FindVaultInfoByID(ctx, info.ID)
		assert.NoError(t, err)
		assert.Equal(t, info, found)
	})

	t.Run("update vault with invalid fields test", func(t *testing.T) {
		ctx := context.Background()
		owner := types.Principal(t.Name())

		info, err := db.RegisterVault(ctx, owner, 10, newVaultFields("lease-agreement"))
		assert.NoError(t, err)

		fields := newUpdatableVaultFields("amended-lease-agreement")
		fields.Narrative = strings.Repeat("n", 201)
		_, err = db.UpdateVault(ctx, owner, 20, info.ID, fields)
		assert.ErrorIs(t, err, types.ErrInvalidNarrative)

		// A rejected update must leave the record untouched.
		found, err := db.FindVaultInfoByID(ctx, info.ID)
		assert.NoError(t, err)
		assert.Equal(t, info, found)
	})
}

// RunFindVaultInfoTest runs the FindVaultInfoByID and ListVaultInfosByOwner
// tests for the given db.
func RunFindVaultInfoTest(t *testing.T, db database.Database) {
	t.Run("find absent vault test", func(t *testing.T) {
		ctx := context.Background()

		count, err := db.VaultCount(ctx)
		assert.NoError(t, err)

		info, err := db.FindVaultInfoByID(ctx, count+1)
		assert.NoError(t, err)
		assert.Nil(t, info)
	})

	t.Run("find vault returns a copy test", func(t *testing.T) {
		ctx := context.Background()
		owner := types.Principal(t.Name())

		info, err := db.RegisterVault(ctx, owner, 10, newVaultFields("lease-agreement"))
		assert.NoError(t, err)

		found, err := db.FindVaultInfoByID(ctx, info.ID)
		assert.NoError(t, err)
		found.Title = "mutated-by-caller"
		found.Keywords[0] = "mutated"

		again, err := db.FindVaultInfoByID(ctx, info.ID)
		assert.NoError(t, err)
		assert.Equal(t, info.Title, again.Title)
		assert.Equal(t, info.Keywords, again.Keywords)
	})

	t.Run("list vaults by owner test", func(t *testing.T) {
		ctx := context.Background()
		owner := types.Principal(t.Name())
		other := types.Principal(t.Name() + "-other")

		var ids []uint64
		for i := 0; i < 3; i++ {
			info, err := db.RegisterVault(ctx, owner, 10, newVaultFields(fmt.Sprintf("vault-%d", i)))
			assert.NoError(t, err)
			ids = append(ids, info.ID)
		}
		_, err := db.RegisterVault(ctx, other, 10, newVaultFields("other-vault"))
		assert.NoError(t, err)

		infos, err := db.ListVaultInfosByOwner(ctx, owner)
		assert.NoError(t, err)
		assert.Len(t, infos, len(ids))
		for i, info := range infos {
			assert.Equal(t, ids[i], info.ID)
			assert.Equal(t, owner, info.Owner)
		}
	})
}

// RunVaultSequenceTest runs the vault ID allocation test for the given db.
func RunVaultSequenceTest(t *testing.T, db database.Database) {
	t.Run("vault sequence test", func(t *testing.T) {
		ctx := context.Background()
		owner := types.Principal(t.Name())

		first, err := db.RegisterVault(ctx, owner, 10, newVaultFields("vault-a"))
		assert.NoError(t, err)

		// Rejected registrations must not leave gaps in the sequence.
		fields := newVaultFields("vault-b")
		fields.Fingerprint = "short"
		_, err = db.RegisterVault(ctx, owner, 10, fields)
		assert.ErrorIs(t, err, types.ErrInvalidInput)

		second, err := db.RegisterVault(ctx, owner, 11, newVaultFields("vault-c"))
		assert.NoError(t, err)
		assert.Equal(t, first.ID+1, second.ID)

		third, err := db.RegisterVault(ctx, owner, 12, newVaultFields("vault-d"))
		assert.NoError(t, err)
		assert.Equal(t, second.ID+1, third.ID)

		count, err := db.VaultCount(ctx)
		assert.NoError(t, err)
		assert.Equal(t, third.ID, count)
	})
}

// RunDelegateAccessTest runs the DelegateAccess test for the given db.
func RunDelegateAccessTest(t *testing.T, db database.Database) {
	t.Run("delegate access test", func(t *testing.T) {
		ctx := context.Background()
		owner := types.Principal(t.Name())
		delegate := types.Principal(t.Name() + "-delegate")

		vault, err := db.RegisterVault(ctx, owner, 10, newVaultFields("lease-agreement"))
		assert.NoError(t, err)

		grant, err := db.DelegateAccess(ctx, owner, 20, vault.ID, delegate, types.AccessLevelRead, 100, false)
		assert.NoError(t, err)
		assert.Equal(t, vault.ID, grant.VaultID)
		assert.Equal(t, delegate, grant.Delegate)
		assert.Equal(t, types.AccessLevelRead, grant.AccessLevel)
		assert.False(t, grant.ModificationsAllowed)
		assert.Equal(t, uint64(20), grant.IssuanceHeight)
		assert.Equal(t, uint64(120), grant.ExpirationHeight)

		found, err := db.FindGrantInfo(ctx, vault.ID, delegate)
		assert.NoError(t, err)
		assert.Equal(t, grant, found)
	})

	t.Run("delegate access overwrite test", func(t *testing.T) {
		ctx := context.Background()
		owner := types.Principal(t.Name())
		delegate := types.Principal(t.Name() + "-delegate")

		vault, err := db.RegisterVault(ctx, owner, 10, newVaultFields("lease-agreement"))
		assert.NoError(t, err)

		_, err = db.DelegateAccess(ctx, owner, 20, vault.ID, delegate, types.AccessLevelRead, 100, false)
		assert.NoError(t, err)

		// Delegating again to the same delegate replaces the prior terms.
		grant, err := db.DelegateAccess(ctx, owner, 30, vault.ID, delegate, types.AccessLevelWrite, 200, true)
		assert.NoError(t, err)
		assert.Equal(t, types.AccessLevelWrite, grant.AccessLevel)
		assert.True(t, grant.ModificationsAllowed)
		assert.Equal(t, uint64(230), grant.ExpirationHeight)

		grants, err := db.ListGrantInfosByVault(ctx, vault.ID)
		assert.NoError(t, err)
		assert.Len(t, grants, 1)
		assert.Equal(t, grant, grants[0])
	})

	t.Run("delegate access validation test", func(t *testing.T) {
		ctx := context.Background()
		owner := types.Principal(t.Name())
		delegate := types.Principal(t.Name() + "-delegate")
		stranger := types.Principal(t.Name() + "-stranger")

		vault, err := db.RegisterVault(ctx, owner, 10, newVaultFields("lease-agreement"))
		assert.NoError(t, err)

		count, err := db.VaultCount(ctx)
		assert.NoError(t, err)

		// The absence check precedes every other validation.
		_, err = db.DelegateAccess(ctx, owner, 20, count+1, delegate, types.AccessLevelRead, 0, false)
		assert.ErrorIs(t, err, types.ErrVaultNotFound)

		// The ownership check precedes the grant validations.
		_, err = db.DelegateAccess(ctx, stranger, 20, vault.ID, delegate, types.AccessLevel("root"), 100, false)
		assert.ErrorIs(t, err, types.ErrUnauthorized)

		// The delegate check precedes the level and duration checks.
		_, err = db.DelegateAccess(ctx, owner, 20, vault.ID, types.Principal(""), types.AccessLevel("root"), 0, false)
		assert.ErrorIs(t, err, types.ErrInvalidInput)

		_, err = db.DelegateAccess(ctx, owner, 20, vault.ID, owner, types.AccessLevelRead, 100, false)
		assert.ErrorIs(t, err, types.ErrInvalidInput)

		_, err = db.DelegateAccess(ctx, owner, 20, vault.ID, delegate, types.AccessLevel("root"), 0, false)
		assert.ErrorIs(t, err, types.ErrRoleMismatch)

		_, err = db.DelegateAccess(ctx, owner, 20, vault.ID, delegate, types.AccessLevelRead, 0, false)
		assert.ErrorIs(t, err, types.ErrInvalidDuration)

		_, err = db.DelegateAccess(ctx, owner, 20, vault.ID, delegate, types.AccessLevelRead, types.MaxGrantDuration+1, false)
		assert.ErrorIs(t, err, types.ErrInvalidDuration)

		// No grant is stored when any validation fails.
		grants, err := db.ListGrantInfosByVault(ctx, vault.ID)
		assert.NoError(t, err)
		assert.Len(t, grants, 0)

		// The upper duration bound is inclusive.
		grant, err := db.DelegateAccess(ctx, owner, 20, vault.ID, delegate, types.AccessLevelAdmin, types.MaxGrantDuration, true)
		assert.NoError(t, err)
		assert.Equal(t, uint64(20)+types.MaxGrantDuration, grant.ExpirationHeight)
	})

	t.Run("find absent grant test", func(t *testing.T) {
		ctx := context.Background()
		owner := types.Principal(t.Name())

		vault, err := db.RegisterVault(ctx, owner, 10, newVaultFields("lease-agreement"))
		assert.NoError(t, err)

		grant, err := db.FindGrantInfo(ctx, vault.ID, types.Principal(t.Name()+"-nobody"))
		assert.NoError(t, err)
		assert.Nil(t, grant)
	})

	t.Run("list grants by vault test", func(t *testing.T) {
		ctx := context.Background()
		owner := types.Principal(t.Name())

		vault, err := db.RegisterVault(ctx, owner, 10, newVaultFields("lease-agreement"))
		assert.NoError(t, err)

		delegates := []types.Principal{
			types.Principal(t.Name() + "-delegate-a"),
			types.Principal(t.Name() + "-delegate-b"),
			types.Principal(t.Name() + "-delegate-c"),
		}
		for _, delegate := range delegates {
			_, err := db.DelegateAccess(ctx, owner, 20, vault.ID, delegate, types.AccessLevelRead, 100, false)
			assert.NoError(t, err)
		}

		grants, err := db.ListGrantInfosByVault(ctx, vault.ID)
		assert.NoError(t, err)
		assert.Len(t, grants, len(delegates))
		for i, grant := range grants {
			assert.Equal(t, delegates[i], grant.Delegate)
		}
	})
}
