package handler

import (
	"encoding/json"
	"net/http"

	"scrooge-bank/internal/errors"
	"scrooge-bank/internal/service"
)

type TransferHandler struct {
	transferService *service.TransferService
}

func NewTransferHandler(transferService *service.TransferService) *TransferHandler {
	return &TransferHandler{
		transferService: transferService,
	}
}

type TransferRequest struct {
	Recipient string      `json:"recipient"`
	Amount    json.Number `json:"amount"`
}

type TransferResponse struct {
	NewBalance    string `json:"newBalance"`
	TransactionID int64  `json:"transactionId"`
	Message       string `json:"message"`
}

func (h *TransferHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, errors.ErrUnauthenticated)
		return
	}

	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.New(errors.InvalidInput, errors.CategoryInvalid, "invalid request body"))
		return
	}

	if appErr := validateRecipient(req.Recipient); appErr != nil {
		writeError(w, appErr)
		return
	}
	amount, appErr := validateAmount(req.Amount.String())
	if appErr != nil {
		writeError(w, appErr)
		return
	}

	result, err := h.transferService.Transfer(user.ID, req.Recipient, amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, TransferResponse{
		NewBalance:    result.NewBalance.StringFixed(2),
		TransactionID: result.TransactionID,
		Message:       "Transfer successful",
	})
}
