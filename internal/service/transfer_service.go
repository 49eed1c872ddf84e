package service

import (
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"scrooge-bank/internal/domain"
	"scrooge-bank/internal/errors"
	"scrooge-bank/internal/repository"
)

type TransferService struct {
	store  *repository.Store
	logger *slog.Logger
}

func NewTransferService(store *repository.Store, logger *slog.Logger) *TransferService {
	return &TransferService{
		store:  store,
		logger: logger,
	}
}

// TransferResult reports the sender's post-transfer balance and the id of
// the TRANSFER_OUT ledger entry.
type TransferResult struct {
	NewBalance    decimal.Decimal
	TransactionID int64
}

// Transfer moves amount from the sender's open account to the account of the
// user identified by recipientIdentifier (email when it contains '@',
// otherwise phone). Debit, credit and both ledger entries commit in one
// atomic unit; any rule violation aborts with nothing written.
func (s *TransferService) Transfer(senderUserID int64, recipientIdentifier string, amount decimal.Decimal) (*TransferResult, error) {
	s.logger.Info("Processing transfer",
		"sender_user_id", senderUserID,
		"amount", amount)

	if !amount.IsPositive() {
		return nil, errors.ErrInvalidAmount
	}

	var result TransferResult

	err := s.store.WithTransaction(func(store *repository.Store) error {
		sender, err := store.User().GetUserByID(senderUserID)
		if err != nil {
			if appErr, ok := err.(*errors.AppError); ok && appErr.Code == errors.UserNotFound {
				return errors.ErrNotAuthorized
			}
			return err
		}
		if sender.Role != domain.RoleCustomer {
			return errors.ErrNotAuthorized
		}

		recipient, err := s.resolveRecipient(store, recipientIdentifier)
		if err != nil {
			return err
		}

		// Identity comparison, not identifier comparison: a sender
		// addressing their own email or phone is still a self-transfer.
		if sender.ID == recipient.ID {
			return errors.ErrSelfTransferNotAllowed
		}

		senderAccount, err := store.Account().GetOpenAccountByUser(sender.ID)
		if err != nil {
			return err
		}
		recipientAccount, err := store.Account().GetOpenAccountByUser(recipient.ID)
		if err != nil {
			return err
		}
		if senderAccount == nil || recipientAccount == nil {
			return errors.ErrAccountNotFound
		}

		// Both rows are locked in one statement in ascending id order, so
		// two opposite-direction transfers between the same pair cannot
		// deadlock. Balances below come from the locked rows.
		locked, err := store.Account().GetAccountsForUpdate([]int64{senderAccount.ID, recipientAccount.ID})
		if err != nil {
			return err
		}
		senderAccount, recipientAccount = locked[senderAccount.ID], locked[recipientAccount.ID]
		if senderAccount == nil || recipientAccount == nil {
			return errors.ErrAccountNotFound
		}

		if senderAccount.Balance.LessThan(amount) {
			return errors.ErrInsufficientFunds
		}

		newSenderBalance := senderAccount.Balance.Sub(amount)
		newRecipientBalance := recipientAccount.Balance.Add(amount)

		if err := store.Account().UpdateAccountBalance(senderAccount.ID, newSenderBalance); err != nil {
			return err
		}
		if err := store.Account().UpdateAccountBalance(recipientAccount.ID, newRecipientBalance); err != nil {
			return err
		}

		outEntry := &domain.LedgerEntry{
			AccountID: senderAccount.ID,
			Kind:      domain.EntryKindTransferOut,
			Amount:    amount,
		}
		if err := store.Ledger().AppendEntry(outEntry); err != nil {
			return err
		}

		inEntry := &domain.LedgerEntry{
			AccountID: recipientAccount.ID,
			Kind:      domain.EntryKindTransferIn,
			Amount:    amount,
		}
		if err := store.Ledger().AppendEntry(inEntry); err != nil {
			return err
		}

		result = TransferResult{
			NewBalance:    newSenderBalance,
			TransactionID: outEntry.ID,
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Transfer failed", "sender_user_id", senderUserID, "error", err)
		return nil, err
	}

	s.logger.Info("Transfer completed", "sender_user_id", senderUserID, "transaction_id", result.TransactionID)
	return &result, nil
}

func (s *TransferService) resolveRecipient(store *repository.Store, identifier string) (*domain.User, error) {
	var recipient *domain.User
	var err error

	if strings.Contains(identifier, "@") {
		recipient, err = store.User().GetUserByEmail(identifier)
	} else {
		recipient, err = store.User().GetUserByPhone(identifier)
	}
	if err != nil {
		return nil, err
	}
	if recipient == nil {
		return nil, errors.ErrRecipientNotFound
	}
	return recipient, nil
}
