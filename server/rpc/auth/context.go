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

package auth

import (
	"context"

	"github.com/docvault-team/docvault/api/types"
)

// key is the key for the context.Context.
type key int

const principalKey key = 0

// PrincipalFromCtx returns the authenticated principal from the given
// context. It must only be called below the authentication middleware.
func PrincipalFromCtx(ctx context.Context) types.Principal {
	return ctx.Value(principalKey).(types.Principal)
}

// CtxWithPrincipal creates a new context with the given principal.
func CtxWithPrincipal(ctx context.Context, principal types.Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}
