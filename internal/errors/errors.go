package errors

import (
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	AlreadyHasOpenAccount  ErrorCode = "already_has_open_account"
	AccountNotFound        ErrorCode = "account_not_found"
	NoOpenAccount          ErrorCode = "no_open_account"
	AccountAlreadyClosed   ErrorCode = "account_already_closed"
	AccountNotEmpty        ErrorCode = "account_not_empty"
	InsufficientFunds      ErrorCode = "insufficient_funds"
	RecipientNotFound      ErrorCode = "recipient_not_found"
	SelfTransferNotAllowed ErrorCode = "self_transfer_not_allowed"
	NotAuthorized          ErrorCode = "not_authorized"
	UserAlreadyExists      ErrorCode = "user_already_exists"
	UserNotFound           ErrorCode = "user_not_found"
	Unauthenticated        ErrorCode = "unauthenticated"
	InvalidInput           ErrorCode = "invalid_input"
	InvalidAmount          ErrorCode = "invalid_amount"
	StorageFailure         ErrorCode = "storage_failure"
)

// Category is the HTTP-agnostic semantic class of an error. The transport
// mapping in HTTPStatus derives from it, never from individual codes.
type Category string

const (
	CategoryConflict           Category = "conflict"
	CategoryNotFound           Category = "not_found"
	CategoryPreconditionFailed Category = "precondition_failed"
	CategoryForbidden          Category = "forbidden"
	CategoryUnauthenticated    Category = "unauthenticated"
	CategoryInvalid            Category = "invalid"
	CategoryInternal           Category = "internal"
)

// FieldError carries per-field detail for validation-origin errors.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type AppError struct {
	Code     ErrorCode    `json:"code"`
	Category Category     `json:"-"`
	Message  string       `json:"message"`
	Details  string       `json:"details,omitempty"`
	Fields   []FieldError `json:"fields,omitempty"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code ErrorCode, category Category, message string) *AppError {
	return &AppError{
		Code:     code,
		Category: category,
		Message:  message,
	}
}

// WithDetails returns a copy carrying diagnostic detail. The receiver is not
// mutated, so the package-level sentinels stay immutable.
func (e *AppError) WithDetails(details string) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

// WithFields returns a copy carrying per-field validation detail.
func (e *AppError) WithFields(fields ...FieldError) *AppError {
	clone := *e
	clone.Fields = fields
	return &clone
}

func (e *AppError) HTTPStatus() int {
	switch e.Category {
	case CategoryConflict:
		return http.StatusConflict
	case CategoryNotFound:
		return http.StatusNotFound
	case CategoryPreconditionFailed:
		return http.StatusUnprocessableEntity
	case CategoryForbidden:
		return http.StatusForbidden
	case CategoryUnauthenticated:
		return http.StatusUnauthorized
	case CategoryInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Predefined errors for the domain rule set
var (
	ErrAlreadyHasOpenAccount  = New(AlreadyHasOpenAccount, CategoryConflict, "user already has an open account")
	ErrAccountNotFound        = New(AccountNotFound, CategoryNotFound, "account does not exist")
	ErrNoOpenAccount          = New(NoOpenAccount, CategoryNotFound, "no open account found")
	ErrAccountAlreadyClosed   = New(AccountAlreadyClosed, CategoryConflict, "account is already closed")
	ErrAccountNotEmpty        = New(AccountNotEmpty, CategoryPreconditionFailed, "account must have zero balance before closing")
	ErrInsufficientFunds      = New(InsufficientFunds, CategoryPreconditionFailed, "insufficient funds")
	ErrRecipientNotFound      = New(RecipientNotFound, CategoryNotFound, "recipient not found")
	ErrSelfTransferNotAllowed = New(SelfTransferNotAllowed, CategoryForbidden, "cannot transfer funds to yourself")
	ErrNotAuthorized          = New(NotAuthorized, CategoryForbidden, "user not authorized for this action")
	ErrUserAlreadyExists      = New(UserAlreadyExists, CategoryConflict, "a user with this email or ssn already exists")
	ErrUserNotFound           = New(UserNotFound, CategoryNotFound, "user does not exist")
	ErrUnauthenticated        = New(Unauthenticated, CategoryUnauthenticated, "bearer token is missing or invalid")
	ErrInvalidAmount          = New(InvalidAmount, CategoryInvalid, "amount must be a positive number")
)

// NewStorageFailure wraps an underlying store error. The wrapped detail is
// for logs only; handlers must not echo it to clients.
func NewStorageFailure(message string, cause error) *AppError {
	appErr := New(StorageFailure, CategoryInternal, message)
	if cause != nil {
		appErr.Details = cause.Error()
	}
	return appErr
}
