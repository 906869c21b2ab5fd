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

package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docvault-team/docvault/server/backend/database/memory"
	"github.com/docvault-team/docvault/server/backend/database/testcases"
)

func TestDB(t *testing.T) {
	db, err := memory.New()
	assert.NoError(t, err)

	t.Run("RunRegisterVault test", func(t *testing.T) {
		testcases.RunRegisterVaultTest(t, db)
	})

	t.Run("RunUpdateVault test", func(t *testing.T) {
		testcases.RunUpdateVaultTest(t, db)
	})

	t.Run("RunFindVaultInfo test", func(t *testing.T) {
		testcases.RunFindVaultInfoTest(t, db)
	})

	t.Run("RunVaultSequence test", func(t *testing.T) {
		testcases.RunVaultSequenceTest(t, db)
	})

	t.Run("RunDelegateAccess test", func(t *testing.T) {
		testcases.RunDelegateAccessTest(t, db)
	})

	assert.NoError(t, db.Close())
}
