package repository

import (
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"scrooge-bank/internal/domain"
	"scrooge-bank/internal/errors"
)

type ledgerRepository struct {
	db     SQLExecutor
	logger *slog.Logger
}

func NewLedgerRepository(db SQLExecutor, logger *slog.Logger) domain.LedgerRepository {
	return &ledgerRepository{
		db:     db,
		logger: logger,
	}
}

// AppendEntry inserts a ledger entry. The table is append-only; there are no
// update or delete paths in this repository.
func (r *ledgerRepository) AppendEntry(entry *domain.LedgerEntry) error {
	query := `
		INSERT INTO transactions (account_id, type, amount, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRow(
		query,
		entry.AccountID,
		entry.Kind,
		entry.Amount.String(),
		now,
	).Scan(&entry.ID)

	if err != nil {
		r.logger.Error("Failed to append ledger entry",
			"account_id", entry.AccountID,
			"type", entry.Kind,
			"amount", entry.Amount,
			"error", err)
		return errors.NewStorageFailure("failed to append ledger entry", err)
	}

	entry.CreatedAt = now
	r.logger.Info("Ledger entry appended", "transaction_id", entry.ID, "account_id", entry.AccountID, "type", entry.Kind)
	return nil
}

func (r *ledgerRepository) ListEntriesByAccount(accountID int64) ([]domain.LedgerEntry, error) {
	query := `
		SELECT id, account_id, type, amount, created_at
		FROM transactions WHERE account_id = $1
		ORDER BY id ASC
	`

	rows, err := r.db.Query(query, accountID)
	if err != nil {
		r.logger.Error("Failed to list ledger entries", "account_id", accountID, "error", err)
		return nil, errors.NewStorageFailure("failed to list ledger entries", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var entry domain.LedgerEntry
		var amountStr string

		if err := rows.Scan(&entry.ID, &entry.AccountID, &entry.Kind, &amountStr, &entry.CreatedAt); err != nil {
			return nil, errors.NewStorageFailure("failed to scan ledger entry", err)
		}

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, errors.NewStorageFailure("failed to parse ledger amount", err)
		}
		entry.Amount = amount

		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageFailure("failed to read ledger entries", err)
	}

	return entries, nil
}
