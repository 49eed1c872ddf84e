package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"scrooge-bank/internal/errors"
	"scrooge-bank/internal/service"
)

type TransactionHandler struct {
	transactionService *service.TransactionService
}

func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

type AmountRequest struct {
	// json.Number keeps the client's textual form so decimal parsing, not
	// float64 conversion, decides validity.
	Amount json.Number `json:"amount"`
}

type TransactionResponse struct {
	NewBalance    string `json:"newBalance"`
	TransactionID int64  `json:"transactionId"`
	Message       string `json:"message"`
}

func (h *TransactionHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, "Deposit successful", h.transactionService.Deposit)
}

func (h *TransactionHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, "Withdrawal successful", h.transactionService.Withdraw)
}

type HistoryEntry struct {
	TransactionID int64  `json:"transactionId"`
	Type          string `json:"type"`
	Amount        string `json:"amount"`
	CreatedAt     string `json:"createdAt"`
}

type HistoryResponse struct {
	Transactions []HistoryEntry `json:"transactions"`
}

func (h *TransactionHandler) History(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, errors.ErrUnauthenticated)
		return
	}

	entries, err := h.transactionService.History(user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response := HistoryResponse{Transactions: make([]HistoryEntry, 0, len(entries))}
	for _, entry := range entries {
		response.Transactions = append(response.Transactions, HistoryEntry{
			TransactionID: entry.ID,
			Type:          string(entry.Kind),
			Amount:        entry.Amount.StringFixed(2),
			CreatedAt:     entry.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *TransactionHandler) apply(
	w http.ResponseWriter,
	r *http.Request,
	message string,
	op func(int64, decimal.Decimal) (*service.TransactionResult, error),
) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, errors.ErrUnauthenticated)
		return
	}

	var req AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.New(errors.InvalidInput, errors.CategoryInvalid, "invalid request body"))
		return
	}

	amount, appErr := validateAmount(req.Amount.String())
	if appErr != nil {
		writeError(w, appErr)
		return
	}

	result, err := op(user.ID, amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, TransactionResponse{
		NewBalance:    result.NewBalance.StringFixed(2),
		TransactionID: result.TransactionID,
		Message:       message,
	})
}
