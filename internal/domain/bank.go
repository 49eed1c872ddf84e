package domain

import (
	"github.com/shopspring/decimal"
)

// BankCapital is the single seed-capital record written at system
// initialization and read-only thereafter.
type BankCapital struct {
	ID     int64
	Amount decimal.Decimal
}

type BankCapitalRepository interface {
	// GetSeedCapital returns zero when no capital row has been seeded yet.
	GetSeedCapital() (decimal.Decimal, error)
	// EnsureSeedCapital inserts the capital row if absent. Idempotent.
	EnsureSeedCapital(amount decimal.Decimal) error
}
