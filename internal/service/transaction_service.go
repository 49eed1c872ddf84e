package service

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"scrooge-bank/internal/domain"
	"scrooge-bank/internal/errors"
	"scrooge-bank/internal/repository"
)

type TransactionService struct {
	store  *repository.Store
	logger *slog.Logger
}

func NewTransactionService(store *repository.Store, logger *slog.Logger) *TransactionService {
	return &TransactionService{
		store:  store,
		logger: logger,
	}
}

// TransactionResult reports the outcome of a committed single-account
// operation: the transactionally fresh balance and the ledger entry id.
type TransactionResult struct {
	NewBalance    decimal.Decimal
	TransactionID int64
}

// Deposit credits the user's open account and appends a DEPOSIT ledger entry
// in the same atomic unit.
func (s *TransactionService) Deposit(userID int64, amount decimal.Decimal) (*TransactionResult, error) {
	s.logger.Info("Processing deposit", "user_id", userID, "amount", amount)
	return s.apply(userID, amount, domain.EntryKindDeposit)
}

// Withdraw debits the user's open account and appends a WITHDRAWAL ledger
// entry. The balance check runs against the locked row, never a stale read.
func (s *TransactionService) Withdraw(userID int64, amount decimal.Decimal) (*TransactionResult, error) {
	s.logger.Info("Processing withdrawal", "user_id", userID, "amount", amount)
	return s.apply(userID, amount, domain.EntryKindWithdrawal)
}

// History lists the ledger entries of the user's open account, oldest first.
func (s *TransactionService) History(userID int64) ([]domain.LedgerEntry, error) {
	account, err := s.store.Account().GetOpenAccountByUser(userID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, errors.ErrNoOpenAccount
	}

	return s.store.Ledger().ListEntriesByAccount(account.ID)
}

func (s *TransactionService) apply(userID int64, amount decimal.Decimal, kind domain.EntryKind) (*TransactionResult, error) {
	// The boundary already validated the amount; this re-check is defense
	// in depth for callers that bypass the handlers.
	if !amount.IsPositive() {
		return nil, errors.ErrInvalidAmount
	}

	var result TransactionResult

	err := s.store.WithTransaction(func(store *repository.Store) error {
		account, err := store.Account().GetOpenAccountByUserForUpdate(userID)
		if err != nil {
			return err
		}
		if account == nil {
			return errors.ErrNoOpenAccount
		}

		var newBalance decimal.Decimal
		switch kind {
		case domain.EntryKindDeposit:
			newBalance = account.Balance.Add(amount)
		case domain.EntryKindWithdrawal:
			if account.Balance.LessThan(amount) {
				return errors.ErrInsufficientFunds
			}
			newBalance = account.Balance.Sub(amount)
		default:
			return errors.NewStorageFailure("unsupported ledger entry kind", nil)
		}

		if err := store.Account().UpdateAccountBalance(account.ID, newBalance); err != nil {
			return err
		}

		entry := &domain.LedgerEntry{
			AccountID: account.ID,
			Kind:      kind,
			Amount:    amount,
		}
		if err := store.Ledger().AppendEntry(entry); err != nil {
			return err
		}

		result = TransactionResult{
			NewBalance:    newBalance,
			TransactionID: entry.ID,
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Transaction failed", "user_id", userID, "type", kind, "error", err)
		return nil, err
	}

	s.logger.Info("Transaction completed", "user_id", userID, "type", kind, "transaction_id", result.TransactionID)
	return &result, nil
}
