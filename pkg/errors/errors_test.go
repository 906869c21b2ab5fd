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

package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode_String(t *testing.T) {
	tests := []struct {
		name string
		code StatusCode
		want string
	}{
		{"InvalidArgument", ErrCodeInvalidArgument, "invalid_argument"},
		{"NotFound", ErrCodeNotFound, "not_found"},
		{"AlreadyExists", ErrCodeAlreadyExists, "already_exists"},
		{"PermissionDenied", ErrCodePermissionDenied, "permission_denied"},
		{"ResourceExhausted", ErrCodeResourceExhausted, "resource_exhausted"},
		{"FailedPrecondition", ErrCodeFailedPrecondition, "failed_precondition"},
		{"Internal", ErrCodeInternal, "internal"},
		{"Unavailable", ErrCodeUnavailable, "unavailable"},
		{"Unauthenticated", ErrCodeUnauthenticated, "unauthenticated"},
		{"Unknown", StatusCode(999), "code_999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.String())
		})
	}
}

func TestStatusCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		code StatusCode
		want int
	}{
		{"InvalidArgument", ErrCodeInvalidArgument, http.StatusBadRequest},
		{"FailedPrecondition", ErrCodeFailedPrecondition, http.StatusBadRequest},
		{"NotFound", ErrCodeNotFound, http.StatusNotFound},
		{"AlreadyExists", ErrCodeAlreadyExists, http.StatusConflict},
		{"PermissionDenied", ErrCodePermissionDenied, http.StatusForbidden},
		{"ResourceExhausted", ErrCodeResourceExhausted, http.StatusTooManyRequests},
		{"Unavailable", ErrCodeUnavailable, http.StatusServiceUnavailable},
		{"Unauthenticated", ErrCodeUnauthenticated, http.StatusUnauthorized},
		{"Internal", ErrCodeInternal, http.StatusInternalServerError},
		{"Unknown", StatusCode(999), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}

func TestErrorConstructors(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		err := NotFound("vault not found")
		assert.Equal(t, "vault not found", err.Error())
		assert.Equal(t, ErrCodeNotFound, err.Status())
	})

	t.Run("InvalidArgument", func(t *testing.T) {
		err := InvalidArgument("invalid title")
		assert.Equal(t, "invalid title", err.Error())
		assert.Equal(t, ErrCodeInvalidArgument, err.Status())
	})

	t.Run("PermissionDenied", func(t *testing.T) {
		err := PermissionDenied("caller is not the owner")
		assert.Equal(t, "caller is not the owner", err.Error())
		assert.Equal(t, ErrCodePermissionDenied, err.Status())
	})

	t.Run("Internal", func(t *testing.T) {
		err := Internal("storage failure")
		assert.Equal(t, "storage failure", err.Error())
		assert.Equal(t, ErrCodeInternal, err.Status())
	})
}

func TestWithCode(t *testing.T) {
	err := NotFound("vault not found").WithCode("ErrVaultNotFound")
	assert.Equal(t, "ErrVaultNotFound", err.Code())
	assert.Equal(t, ErrCodeNotFound, err.Status())

	t.Run("CodeOf unwraps", func(t *testing.T) {
		wrapped := fmt.Errorf("1024: %w", err)
		assert.Equal(t, "ErrVaultNotFound", CodeOf(wrapped))
	})

	t.Run("CodeOf without code", func(t *testing.T) {
		assert.Equal(t, "", CodeOf(errors.New("plain")))
		assert.Equal(t, "", CodeOf(nil))
	})
}

func TestStatusOf(t *testing.T) {
	t.Run("StatusError", func(t *testing.T) {
		err := NotFound("grant not found")
		assert.Equal(t, ErrCodeNotFound, StatusOf(err))
	})

	t.Run("WrappedStatusError", func(t *testing.T) {
		baseErr := NotFound("grant not found")
		wrappedErr := fmt.Errorf("delegate access: %w", baseErr)
		assert.Equal(t, ErrCodeNotFound, StatusOf(wrappedErr))
	})

	t.Run("DoubleWrappedStatusError", func(t *testing.T) {
		baseErr := PermissionDenied("caller is not the owner")
		wrappedErr := fmt.Errorf("update vault: %w", baseErr)
		doubleWrapped := fmt.Errorf("request failed: %w", wrappedErr)
		assert.Equal(t, ErrCodePermissionDenied, StatusOf(doubleWrapped))
	})

	t.Run("StandardError", func(t *testing.T) {
		assert.Equal(t, StatusCode(0), StatusOf(errors.New("plain error")))
	})

	t.Run("NilError", func(t *testing.T) {
		assert.Equal(t, StatusCode(0), StatusOf(nil))
	})
}

func TestIsStatus(t *testing.T) {
	err := NotFound("vault not found")

	assert.True(t, IsStatus(err, ErrCodeNotFound))
	assert.False(t, IsStatus(err, ErrCodeInvalidArgument))
	assert.False(t, IsStatus(nil, ErrCodeNotFound))
}

func TestErrorCategoryChecking(t *testing.T) {
	t.Run("ClientErrors", func(t *testing.T) {
		clientErrors := []StatusError{
			NotFound("test"),
			InvalidArgument("test"),
			AlreadyExists("test"),
			PermissionDenied("test"),
			ResourceExhausted("test"),
			FailedPrecond("test"),
			Unauthenticated("test"),
		}

		for _, err := range clientErrors {
			assert.True(t, IsClientError(err), "expected %v to be a client error", err)
			assert.False(t, IsServerError(err), "expected %v to not be a server error", err)
		}
	})

	t.Run("ServerErrors", func(t *testing.T) {
		serverErrors := []StatusError{
			Internal("test"),
			Unavailable("test"),
		}

		for _, err := range serverErrors {
			assert.False(t, IsClientError(err), "expected %v to not be a client error", err)
			assert.True(t, IsServerError(err), "expected %v to be a server error", err)
		}
	})
}

func TestWithMetadata(t *testing.T) {
	t.Run("attaches metadata", func(t *testing.T) {
		baseErr := InvalidArgument("invalid vault fields")
		errWithMeta := WithMetadata(baseErr, map[string]string{
			"field": "Title",
		})

		assert.Equal(t, ErrCodeInvalidArgument, StatusOf(errWithMeta))
		assert.Equal(t, "Title", Metadata(errWithMeta)["field"])
	})

	t.Run("nil error returns nil", func(t *testing.T) {
		assert.Nil(t, WithMetadata(nil, map[string]string{"key": "value"}))
	})

	t.Run("empty metadata returns original error", func(t *testing.T) {
		baseErr := Internal("storage failure")
		assert.Equal(t, baseErr, WithMetadata(baseErr, nil))
		assert.Equal(t, baseErr, WithMetadata(baseErr, map[string]string{}))
	})

	t.Run("merges on repeated wrapping", func(t *testing.T) {
		baseErr := PermissionDenied("caller is not the owner")

		err1 := WithMetadata(baseErr, map[string]string{"vault_id": "7"})
		err2 := WithMetadata(err1, map[string]string{"caller": "usr-b"})

		metadata := Metadata(err2)
		assert.Equal(t, "7", metadata["vault_id"])
		assert.Equal(t, "usr-b", metadata["caller"])
		assert.Equal(t, ErrCodePermissionDenied, StatusOf(err2))
	})

	t.Run("preserves error chain", func(t *testing.T) {
		baseErr := NotFound("vault not found")
		wrappedErr := fmt.Errorf("find vault: %w", baseErr)
		errWithMeta := WithMetadata(wrappedErr, map[string]string{"vault_id": "42"})

		var statusErr StatusError
		assert.True(t, errors.As(errWithMeta, &statusErr))
		assert.Equal(t, ErrCodeNotFound, statusErr.Status())
		assert.Equal(t, "42", Metadata(errWithMeta)["vault_id"])
	})
}
