package repository

import (
	"database/sql"
	"log/slog"

	"scrooge-bank/internal/domain"
	"scrooge-bank/internal/errors"
)

// Store provides a unified interface for all repository operations with
// transaction support (Unit of Work).
type Store struct {
	executor SQLExecutor
	logger   *slog.Logger
}

// NewStore creates a new Store instance
func NewStore(db *sql.DB, logger *slog.Logger) *Store {
	return &Store{
		executor: db,
		logger:   logger,
	}
}

// User returns a UserRepository using the current executor
func (s *Store) User() domain.UserRepository {
	return NewUserRepository(s.executor, s.logger)
}

// Account returns an AccountRepository using the current executor
func (s *Store) Account() domain.AccountRepository {
	return NewAccountRepository(s.executor, s.logger)
}

// Ledger returns a LedgerRepository using the current executor
func (s *Store) Ledger() domain.LedgerRepository {
	return NewLedgerRepository(s.executor, s.logger)
}

// BankCapital returns a BankCapitalRepository using the current executor
func (s *Store) BankCapital() domain.BankCapitalRepository {
	return NewBankCapitalRepository(s.executor, s.logger)
}

// WithTransaction executes fn within a database transaction. The transaction
// commits only when fn returns nil; every other exit path, including panics,
// rolls back so no partial balance or ledger state survives.
func (s *Store) WithTransaction(fn func(*Store) error) error {
	// Only sql.DB can begin transactions; a nested call would otherwise
	// silently run outside its own transaction scope.
	db, ok := s.executor.(*sql.DB)
	if !ok {
		return errors.NewStorageFailure("cannot begin transaction from within a transaction", nil)
	}

	tx, err := db.Begin()
	if err != nil {
		return errors.NewStorageFailure("failed to begin transaction", err)
	}

	txStore := &Store{
		executor: &TxWrapper{Tx: tx},
		logger:   s.logger,
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(txStore); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.NewStorageFailure("failed to commit transaction", err)
	}
	return nil
}
