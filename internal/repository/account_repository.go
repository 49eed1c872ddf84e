package repository

import (
	"database/sql"
	"log/slog"
	"sort"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"scrooge-bank/internal/domain"
	"scrooge-bank/internal/errors"
)

type accountRepository struct {
	db     SQLExecutor
	logger *slog.Logger
}

func NewAccountRepository(db SQLExecutor, logger *slog.Logger) domain.AccountRepository {
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

func (r *accountRepository) CreateAccount(account *domain.Account) error {
	query := `
		INSERT INTO accounts (user_id, type, status, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRow(
		query,
		account.UserID,
		account.Type,
		account.Status,
		account.Balance.String(),
		now,
		now,
	).Scan(&account.ID)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			// The partial unique index on (user_id) WHERE status = 'OPEN'
			// closes the race where two concurrent opens both observe no
			// existing open account; exactly one insert wins.
			if pqErr.Code == "23505" && pqErr.Constraint == "idx_accounts_one_open_per_user" {
				r.logger.Warn("Concurrent open-account creation lost the race", "user_id", account.UserID)
				return errors.ErrAlreadyHasOpenAccount
			}
		}
		r.logger.Error("Failed to create account", "user_id", account.UserID, "error", err)
		return errors.NewStorageFailure("failed to create account", err)
	}

	account.CreatedAt = now
	account.UpdatedAt = now
	r.logger.Info("Account created successfully", "account_id", account.ID, "user_id", account.UserID)
	return nil
}

func (r *accountRepository) GetAccount(id int64) (*domain.Account, error) {
	query := `
		SELECT id, user_id, type, status, balance, created_at, updated_at
		FROM accounts WHERE id = $1
	`

	account, err := r.scanAccount(r.db.QueryRow(query, id))
	if err != nil {
		return nil, err
	}
	if account == nil {
		r.logger.Warn("Account not found", "account_id", id)
		return nil, errors.ErrAccountNotFound
	}
	return account, nil
}

func (r *accountRepository) GetOpenAccountByUser(userID int64) (*domain.Account, error) {
	query := `
		SELECT id, user_id, type, status, balance, created_at, updated_at
		FROM accounts WHERE user_id = $1 AND status = 'OPEN'
	`

	return r.scanAccount(r.db.QueryRow(query, userID))
}

func (r *accountRepository) GetLatestAccountByUser(userID int64) (*domain.Account, error) {
	query := `
		SELECT id, user_id, type, status, balance, created_at, updated_at
		FROM accounts WHERE user_id = $1
		ORDER BY id DESC
		LIMIT 1
	`

	return r.scanAccount(r.db.QueryRow(query, userID))
}

func (r *accountRepository) GetOpenAccountByUserForUpdate(userID int64) (*domain.Account, error) {
	query := `
		SELECT id, user_id, type, status, balance, created_at, updated_at
		FROM accounts WHERE user_id = $1 AND status = 'OPEN'
		FOR UPDATE
	`

	return r.scanAccount(r.db.QueryRow(query, userID))
}

// GetAccountsForUpdate locks the requested rows in a single statement with
// the ids sorted ascending. The total lock order prevents deadlock between
// two transfers moving funds in opposite directions between the same pair.
func (r *accountRepository) GetAccountsForUpdate(ids []int64) (map[int64]*domain.Account, error) {
	sorted := make([]int64, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	query := `
		SELECT id, user_id, type, status, balance, created_at, updated_at
		FROM accounts WHERE id = ANY($1)
		ORDER BY id ASC
		FOR UPDATE
	`

	rows, err := r.db.Query(query, pq.Array(sorted))
	if err != nil {
		r.logger.Error("Failed to lock accounts", "account_ids", sorted, "error", err)
		return nil, errors.NewStorageFailure("failed to lock accounts", err)
	}
	defer rows.Close()

	accounts := make(map[int64]*domain.Account, len(sorted))
	for rows.Next() {
		account, err := r.scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts[account.ID] = account
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageFailure("failed to read locked accounts", err)
	}

	return accounts, nil
}

func (r *accountRepository) UpdateAccountBalance(id int64, newBalance decimal.Decimal) error {
	query := `
		UPDATE accounts
		SET balance = $1, updated_at = $2
		WHERE id = $3 AND status = 'OPEN'
	`

	result, err := r.db.Exec(query, newBalance.String(), time.Now(), id)
	if err != nil {
		r.logger.Error("Failed to update account balance", "account_id", id, "error", err)
		return errors.NewStorageFailure("failed to update account balance", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewStorageFailure("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		r.logger.Warn("No open account found to update", "account_id", id)
		return errors.ErrNoOpenAccount
	}

	r.logger.Info("Account balance updated", "account_id", id, "new_balance", newBalance)
	return nil
}

func (r *accountRepository) CloseAccount(id int64) error {
	// The balance guard is re-stated here so closure can never commit
	// against a balance that moved after the caller's check.
	query := `
		UPDATE accounts
		SET status = 'CLOSED', updated_at = $1
		WHERE id = $2 AND status = 'OPEN' AND balance = 0
	`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		r.logger.Error("Failed to close account", "account_id", id, "error", err)
		return errors.NewStorageFailure("failed to close account", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewStorageFailure("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		r.logger.Warn("Account not closable", "account_id", id)
		return errors.ErrAccountNotEmpty
	}

	r.logger.Info("Account closed", "account_id", id)
	return nil
}

func (r *accountRepository) SumBalances() (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(balance), 0) FROM accounts`

	var sumStr string
	if err := r.db.QueryRow(query).Scan(&sumStr); err != nil {
		r.logger.Error("Failed to sum account balances", "error", err)
		return decimal.Zero, errors.NewStorageFailure("failed to sum account balances", err)
	}

	sum, err := decimal.NewFromString(sumStr)
	if err != nil {
		return decimal.Zero, errors.NewStorageFailure("failed to parse balance sum", err)
	}
	return sum, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *accountRepository) scanAccount(row rowScanner) (*domain.Account, error) {
	var account domain.Account
	var balanceStr string

	err := row.Scan(
		&account.ID,
		&account.UserID,
		&account.Type,
		&account.Status,
		&balanceStr,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Failed to get account", "error", err)
		return nil, errors.NewStorageFailure("failed to get account", err)
	}

	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		r.logger.Error("Failed to parse balance", "account_id", account.ID, "balance_str", balanceStr, "error", err)
		return nil, errors.NewStorageFailure("failed to parse balance", err)
	}

	account.Balance = balance
	return &account, nil
}
