package handler

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"scrooge-bank/internal/domain"
	"scrooge-bank/internal/errors"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigits    = regexp.MustCompile(`\D`)
)

// validateEmail checks surface syntax only; uniqueness belongs to the store.
func validateEmail(email string) *errors.AppError {
	if email == "" {
		return errors.New(errors.InvalidInput, errors.CategoryInvalid, "email validation failed").
			WithFields(errors.FieldError{Field: "email", Reason: "email is required"})
	}
	if !emailPattern.MatchString(email) {
		return errors.New(errors.InvalidInput, errors.CategoryInvalid, "email validation failed").
			WithFields(errors.FieldError{Field: "email", Reason: "email must be a valid email address"})
	}
	return nil
}

// validateSSN canonicalizes to digits only and rejects empty results.
func validateSSN(ssn string) (string, *errors.AppError) {
	if ssn == "" {
		return "", errors.New(errors.InvalidInput, errors.CategoryInvalid, "ssn validation failed").
			WithFields(errors.FieldError{Field: "ssn", Reason: "ssn is required"})
	}
	sanitized := nonDigits.ReplaceAllString(ssn, "")
	if sanitized == "" {
		return "", errors.New(errors.InvalidInput, errors.CategoryInvalid, "ssn validation failed").
			WithFields(errors.FieldError{Field: "ssn", Reason: "ssn must contain digits"})
	}
	return sanitized, nil
}

// validatePhone is optional: empty input yields nil without error. Non-empty
// input must contain at least one digit and is canonicalized to digits only.
func validatePhone(phone string) (*string, *errors.AppError) {
	if phone == "" {
		return nil, nil
	}
	sanitized := nonDigits.ReplaceAllString(phone, "")
	if sanitized == "" {
		return nil, errors.New(errors.InvalidInput, errors.CategoryInvalid, "phone validation failed").
			WithFields(errors.FieldError{Field: "phone", Reason: "phone must contain digits"})
	}
	return &sanitized, nil
}

// validateAmount parses a positive finite decimal. The string form comes
// from json.Number, so scientific notation and junk are rejected here.
func validateAmount(raw string) (decimal.Decimal, *errors.AppError) {
	if raw == "" {
		return decimal.Zero, errors.New(errors.InvalidAmount, errors.CategoryInvalid, "amount validation failed").
			WithFields(errors.FieldError{Field: "amount", Reason: "amount is required"})
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errors.New(errors.InvalidAmount, errors.CategoryInvalid, "amount validation failed").
			WithFields(errors.FieldError{Field: "amount", Reason: "amount must be a valid number"})
	}
	if !amount.IsPositive() {
		return decimal.Zero, errors.New(errors.InvalidAmount, errors.CategoryInvalid, "amount validation failed").
			WithFields(errors.FieldError{Field: "amount", Reason: "amount must be a positive number"})
	}
	// Balances are stored at cent precision. A finer amount would round
	// per column on write, so a sub-cent transfer could debit and credit
	// different totals.
	if !amount.Equal(amount.Truncate(2)) {
		return decimal.Zero, errors.New(errors.InvalidAmount, errors.CategoryInvalid, "amount validation failed").
			WithFields(errors.FieldError{Field: "amount", Reason: "amount must have at most two decimal places"})
	}
	return amount, nil
}

func validateAccountType(raw string) (domain.AccountType, *errors.AppError) {
	switch domain.AccountType(raw) {
	case domain.AccountTypeChecking, domain.AccountTypePersonalLoan:
		return domain.AccountType(raw), nil
	case "":
		return "", errors.New(errors.InvalidInput, errors.CategoryInvalid, "account type validation failed").
			WithFields(errors.FieldError{Field: "type", Reason: "account type is required"})
	default:
		return "", errors.New(errors.InvalidInput, errors.CategoryInvalid, "account type validation failed").
			WithFields(errors.FieldError{Field: "type", Reason: "account type must be one of: CHECKING, PERSONAL_LOAN"})
	}
}

// validateClosureReason accepts an absent reason; a present one must be
// 5-30 characters after trimming.
func validateClosureReason(reason string) *errors.AppError {
	if reason == "" {
		return nil
	}
	trimmed := strings.TrimSpace(reason)
	if len(trimmed) < 5 {
		return errors.New(errors.InvalidInput, errors.CategoryInvalid, "closure reason validation failed").
			WithFields(errors.FieldError{Field: "reason", Reason: "closure reason must be at least 5 characters long"})
	}
	if len(trimmed) > 30 {
		return errors.New(errors.InvalidInput, errors.CategoryInvalid, "closure reason validation failed").
			WithFields(errors.FieldError{Field: "reason", Reason: "closure reason must not exceed 30 characters"})
	}
	return nil
}

func validateRecipient(recipient string) *errors.AppError {
	if recipient == "" {
		return errors.New(errors.InvalidInput, errors.CategoryInvalid, "recipient validation failed").
			WithFields(errors.FieldError{Field: "recipient", Reason: "recipient is required"})
	}
	return nil
}
