package handler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrooge-bank/internal/domain"
	"scrooge-bank/internal/errors"
)

func TestValidateEmail(t *testing.T) {
	assert.Nil(t, validateEmail("alice@example.com"))

	for _, bad := range []string{"", "alice", "alice@", "@example.com", "a b@example.com", "alice@example"} {
		appErr := validateEmail(bad)
		require.NotNil(t, appErr, "expected %q to be rejected", bad)
		assert.Equal(t, errors.InvalidInput, appErr.Code)
		require.Len(t, appErr.Fields, 1)
		assert.Equal(t, "email", appErr.Fields[0].Field)
	}
}

func TestValidateSSNCanonicalizesToDigits(t *testing.T) {
	ssn, appErr := validateSSN("123-45-6789")
	require.Nil(t, appErr)
	assert.Equal(t, "123456789", ssn)

	_, appErr = validateSSN("")
	require.NotNil(t, appErr)

	_, appErr = validateSSN("---")
	require.NotNil(t, appErr)
}

func TestValidatePhoneIsOptional(t *testing.T) {
	phone, appErr := validatePhone("")
	require.Nil(t, appErr)
	assert.Nil(t, phone)

	phone, appErr = validatePhone("+1 (555) 000-1111")
	require.Nil(t, appErr)
	require.NotNil(t, phone)
	assert.Equal(t, "15550001111", *phone)

	_, appErr = validatePhone("no digits here")
	require.NotNil(t, appErr)
}

func TestValidateAmount(t *testing.T) {
	amount, appErr := validateAmount("100.50")
	require.Nil(t, appErr)
	assert.Equal(t, "100.5", amount.String())

	// Trailing zeros beyond cent precision carry no sub-cent value.
	_, appErr = validateAmount("1.500")
	assert.Nil(t, appErr)

	for _, bad := range []string{"", "abc", "0", "0.00", "-5", "-0.01"} {
		_, appErr := validateAmount(bad)
		require.NotNil(t, appErr, "expected %q to be rejected", bad)
		assert.Equal(t, errors.InvalidAmount, appErr.Code)
	}
}

func TestValidateAmountRejectsSubCentPrecision(t *testing.T) {
	for _, bad := range []string{"0.005", "0.004", "0.0050", "10.001"} {
		_, appErr := validateAmount(bad)
		require.NotNil(t, appErr, "expected %q to be rejected", bad)
		assert.Equal(t, errors.InvalidAmount, appErr.Code)
		require.Len(t, appErr.Fields, 1)
		assert.Equal(t, "amount", appErr.Fields[0].Field)
	}
}

func TestValidateAccountType(t *testing.T) {
	accountType, appErr := validateAccountType("CHECKING")
	require.Nil(t, appErr)
	assert.Equal(t, domain.AccountTypeChecking, accountType)

	accountType, appErr = validateAccountType("PERSONAL_LOAN")
	require.Nil(t, appErr)
	assert.Equal(t, domain.AccountTypePersonalLoan, accountType)

	for _, bad := range []string{"", "SAVINGS", "checking"} {
		_, appErr := validateAccountType(bad)
		require.NotNil(t, appErr, "expected %q to be rejected", bad)
	}
}

func TestValidateClosureReason(t *testing.T) {
	assert.Nil(t, validateClosureReason(""))
	assert.Nil(t, validateClosureReason("moving abroad"))

	assert.NotNil(t, validateClosureReason("meh"))
	assert.NotNil(t, validateClosureReason(strings.Repeat("x", 31)))
	// Length limits apply to the trimmed form.
	assert.NotNil(t, validateClosureReason("  ab  "))
	assert.Nil(t, validateClosureReason("  valid reason  "))
}

func TestValidateRecipient(t *testing.T) {
	assert.Nil(t, validateRecipient("bob@example.com"))
	assert.Nil(t, validateRecipient("15550001111"))
	assert.NotNil(t, validateRecipient(""))
}
