package service

import (
	"log/slog"

	"scrooge-bank/internal/repository"
)

type BankService struct {
	store  *repository.Store
	logger *slog.Logger
}

func NewBankService(store *repository.Store, logger *slog.Logger) *BankService {
	return &BankService{
		store:  store,
		logger: logger,
	}
}

// CapitalBreakdown is the operator's view of bank-wide capital, each value
// rendered as a fixed two-decimal string.
type CapitalBreakdown struct {
	TotalOnHand string            `json:"totalOnHand"`
	Breakdown   CapitalComponents `json:"breakdown"`
}

type CapitalComponents struct {
	InitialCapital        string `json:"initialCapital"`
	TotalCustomerDeposits string `json:"totalCustomerDeposits"`
}

// GetCapitalBreakdown reports seed capital plus the sum of balances over all
// accounts. The sum deliberately ignores account status: CLOSED accounts are
// pinned at zero balance, so including them cannot change the total. The
// report is a point-in-time consistent snapshot at the store's default read
// isolation, not linearizable against concurrent deposits.
func (s *BankService) GetCapitalBreakdown() (*CapitalBreakdown, error) {
	seedCapital, err := s.store.BankCapital().GetSeedCapital()
	if err != nil {
		return nil, err
	}

	totalDeposits, err := s.store.Account().SumBalances()
	if err != nil {
		return nil, err
	}

	totalOnHand := seedCapital.Add(totalDeposits)

	s.logger.Info("Capital breakdown computed",
		"initial_capital", seedCapital,
		"total_customer_deposits", totalDeposits,
		"total_on_hand", totalOnHand)

	return &CapitalBreakdown{
		TotalOnHand: totalOnHand.StringFixed(2),
		Breakdown: CapitalComponents{
			InitialCapital:        seedCapital.StringFixed(2),
			TotalCustomerDeposits: totalDeposits.StringFixed(2),
		},
	}, nil
}
