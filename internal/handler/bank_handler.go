package handler

import (
	"net/http"

	"scrooge-bank/internal/service"
)

type BankHandler struct {
	bankService *service.BankService
}

func NewBankHandler(bankService *service.BankService) *BankHandler {
	return &BankHandler{
		bankService: bankService,
	}
}

func (h *BankHandler) GetCapital(w http.ResponseWriter, r *http.Request) {
	breakdown, err := h.bankService.GetCapitalBreakdown()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, breakdown)
}
