package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeChecking     AccountType = "CHECKING"
	AccountTypePersonalLoan AccountType = "PERSONAL_LOAN"
)

type AccountStatus string

const (
	AccountStatusOpen   AccountStatus = "OPEN"
	AccountStatusClosed AccountStatus = "CLOSED"
)

type Account struct {
	ID        int64           `json:"account_id"`
	UserID    int64           `json:"user_id"`
	Type      AccountType     `json:"type"`
	Status    AccountStatus   `json:"status"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CanClose reports whether the account may transition to CLOSED.
// Closure requires an exactly zero balance; CLOSED is terminal.
func (a *Account) CanClose() bool {
	return a.Status == AccountStatusOpen && a.Balance.IsZero()
}

type AccountRepository interface {
	CreateAccount(account *Account) error
	GetAccount(id int64) (*Account, error)
	// GetOpenAccountByUser returns (nil, nil) when the user has no OPEN
	// account; that is a valid state, not an error.
	GetOpenAccountByUser(userID int64) (*Account, error)
	// GetLatestAccountByUser returns the user's most recently created account
	// regardless of status, or (nil, nil) when the user never had one.
	GetLatestAccountByUser(userID int64) (*Account, error)
	// GetOpenAccountByUserForUpdate is the same lookup with the row locked
	// for the remainder of the enclosing transaction.
	GetOpenAccountByUserForUpdate(userID int64) (*Account, error)
	// GetAccountsForUpdate locks and returns the given account rows. Rows
	// are locked in ascending id order regardless of the order of ids.
	GetAccountsForUpdate(ids []int64) (map[int64]*Account, error)
	UpdateAccountBalance(id int64, newBalance decimal.Decimal) error
	CloseAccount(id int64) error
	// SumBalances totals the balance of every account regardless of status.
	// CLOSED accounts always hold zero, so the sum equals open-account funds.
	SumBalances() (decimal.Decimal, error)
}
