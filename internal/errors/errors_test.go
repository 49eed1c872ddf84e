package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusFollowsCategory(t *testing.T) {
	cases := []struct {
		name string
		err  *AppError
		want int
	}{
		{"conflict", ErrAlreadyHasOpenAccount, http.StatusConflict},
		{"not found", ErrAccountNotFound, http.StatusNotFound},
		{"no open account", ErrNoOpenAccount, http.StatusNotFound},
		{"precondition failed", ErrAccountNotEmpty, http.StatusUnprocessableEntity},
		{"insufficient funds", ErrInsufficientFunds, http.StatusUnprocessableEntity},
		{"forbidden", ErrSelfTransferNotAllowed, http.StatusForbidden},
		{"not authorized", ErrNotAuthorized, http.StatusForbidden},
		{"unauthenticated", ErrUnauthenticated, http.StatusUnauthorized},
		{"invalid", ErrInvalidAmount, http.StatusBadRequest},
		{"internal", NewStorageFailure("boom", nil), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.HTTPStatus())
		})
	}
}

func TestErrorStringCombinesCodeAndMessage(t *testing.T) {
	err := New(InsufficientFunds, CategoryPreconditionFailed, "insufficient funds")
	assert.Equal(t, "insufficient_funds: insufficient funds", err.Error())
}

func TestWithDetailsDoesNotMutateSentinel(t *testing.T) {
	detailed := ErrAccountNotFound.WithDetails("account 42")

	assert.Equal(t, "account 42", detailed.Details)
	assert.Empty(t, ErrAccountNotFound.Details)
	assert.Equal(t, ErrAccountNotFound.Code, detailed.Code)
}

func TestWithFieldsDoesNotMutateSentinel(t *testing.T) {
	withFields := ErrInvalidAmount.WithFields(FieldError{Field: "amount", Reason: "required"})

	assert.Len(t, withFields.Fields, 1)
	assert.Empty(t, ErrInvalidAmount.Fields)
}

func TestNewStorageFailureWrapsCause(t *testing.T) {
	cause := assert.AnError
	err := NewStorageFailure("failed to read account", cause)

	assert.Equal(t, StorageFailure, err.Code)
	assert.Equal(t, CategoryInternal, err.Category)
	assert.Equal(t, cause.Error(), err.Details)
}
