package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind encodes the direction of a ledger entry. Amounts are always
// positive; a withdrawal is a positive amount with kind WITHDRAWAL.
type EntryKind string

const (
	EntryKindDeposit     EntryKind = "DEPOSIT"
	EntryKindWithdrawal  EntryKind = "WITHDRAWAL"
	EntryKindTransferOut EntryKind = "TRANSFER_OUT"
	EntryKindTransferIn  EntryKind = "TRANSFER_IN"
)

// LedgerEntry is an append-only record of a single balance mutation.
// Entries are never updated or deleted.
type LedgerEntry struct {
	ID        int64           `json:"id"`
	AccountID int64           `json:"account_id"`
	Kind      EntryKind       `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

type LedgerRepository interface {
	AppendEntry(entry *LedgerEntry) error
	ListEntriesByAccount(accountID int64) ([]LedgerEntry, error)
}
