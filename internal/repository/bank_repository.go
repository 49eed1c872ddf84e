package repository

import (
	"database/sql"
	"log/slog"

	"github.com/shopspring/decimal"

	"scrooge-bank/internal/domain"
	"scrooge-bank/internal/errors"
)

type bankCapitalRepository struct {
	db     SQLExecutor
	logger *slog.Logger
}

func NewBankCapitalRepository(db SQLExecutor, logger *slog.Logger) domain.BankCapitalRepository {
	return &bankCapitalRepository{
		db:     db,
		logger: logger,
	}
}

func (r *bankCapitalRepository) GetSeedCapital() (decimal.Decimal, error) {
	var amountStr string
	err := r.db.QueryRow(`SELECT amount FROM bank_capital ORDER BY id ASC LIMIT 1`).Scan(&amountStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return decimal.Zero, nil
		}
		r.logger.Error("Failed to read seed capital", "error", err)
		return decimal.Zero, errors.NewStorageFailure("failed to read seed capital", err)
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return decimal.Zero, errors.NewStorageFailure("failed to parse seed capital", err)
	}
	return amount, nil
}

// EnsureSeedCapital seeds the single capital row if the table is empty.
// Re-running at startup is a no-op; the record is read-only afterwards.
func (r *bankCapitalRepository) EnsureSeedCapital(amount decimal.Decimal) error {
	query := `
		INSERT INTO bank_capital (id, amount)
		VALUES (1, $1)
		ON CONFLICT (id) DO NOTHING
	`

	if _, err := r.db.Exec(query, amount.String()); err != nil {
		r.logger.Error("Failed to seed bank capital", "error", err)
		return errors.NewStorageFailure("failed to seed bank capital", err)
	}

	r.logger.Info("Bank capital seeded", "amount", amount)
	return nil
}
