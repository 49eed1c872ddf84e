package service

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"scrooge-bank/internal/domain"
	"scrooge-bank/internal/errors"
	"scrooge-bank/internal/repository"
)

type AccountService struct {
	store  *repository.Store
	logger *slog.Logger
}

func NewAccountService(store *repository.Store, logger *slog.Logger) *AccountService {
	return &AccountService{
		store:  store,
		logger: logger,
	}
}

// OpenAccount creates a new OPEN account with zero balance for the user.
// The no-existing-open-account rule is checked inside the transaction and
// additionally enforced by the store's partial unique index, so concurrent
// opens cannot both succeed.
func (s *AccountService) OpenAccount(userID int64, accountType domain.AccountType) (*domain.Account, error) {
	s.logger.Info("Opening account", "user_id", userID, "type", accountType)

	account := &domain.Account{
		UserID:  userID,
		Type:    accountType,
		Status:  domain.AccountStatusOpen,
		Balance: decimal.Zero,
	}

	err := s.store.WithTransaction(func(store *repository.Store) error {
		existing, err := store.Account().GetOpenAccountByUser(userID)
		if err != nil {
			return err
		}
		if existing != nil {
			return errors.ErrAlreadyHasOpenAccount
		}

		return store.Account().CreateAccount(account)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Account opened", "account_id", account.ID, "user_id", userID)
	return account, nil
}

// CloseAccount transitions the user's OPEN account to CLOSED. The balance is
// re-read under lock so a deposit racing the closure cannot strand funds in
// a closed account. reason is caller metadata, already length-checked
// upstream; it is logged and not persisted.
func (s *AccountService) CloseAccount(userID int64, reason string) (*domain.Account, error) {
	var closed *domain.Account

	err := s.store.WithTransaction(func(store *repository.Store) error {
		account, err := store.Account().GetOpenAccountByUserForUpdate(userID)
		if err != nil {
			return err
		}
		if account == nil {
			// Distinguish "already closed" from "never had an account" so a
			// repeated close reports what actually happened.
			latest, err := store.Account().GetLatestAccountByUser(userID)
			if err != nil {
				return err
			}
			if latest != nil && latest.Status == domain.AccountStatusClosed {
				return errors.ErrAccountAlreadyClosed
			}
			return errors.ErrNoOpenAccount
		}

		if !account.CanClose() {
			return errors.ErrAccountNotEmpty
		}

		if err := store.Account().CloseAccount(account.ID); err != nil {
			return err
		}

		account.Status = domain.AccountStatusClosed
		closed = account
		return nil
	})
	if err != nil {
		return nil, err
	}

	if reason != "" {
		s.logger.Info("Account closed", "account_id", closed.ID, "user_id", userID, "reason", reason)
	} else {
		s.logger.Info("Account closed", "account_id", closed.ID, "user_id", userID)
	}
	return closed, nil
}

func (s *AccountService) GetAccount(accountID int64) (*domain.Account, error) {
	return s.store.Account().GetAccount(accountID)
}

// GetOpenAccountForUser returns (nil, nil) when the user has no open
// account; profile rendering treats that as a normal state.
func (s *AccountService) GetOpenAccountForUser(userID int64) (*domain.Account, error) {
	return s.store.Account().GetOpenAccountByUser(userID)
}
