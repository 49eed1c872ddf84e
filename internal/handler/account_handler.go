package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"scrooge-bank/internal/domain"
	"scrooge-bank/internal/errors"
	"scrooge-bank/internal/service"
)

type AccountHandler struct {
	accountService *service.AccountService
}

func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

type OpenAccountRequest struct {
	Type string `json:"type"`
}

type OpenAccountResponse struct {
	AccountID int64  `json:"accountId"`
	Message   string `json:"message"`
}

func (h *AccountHandler) OpenAccount(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, errors.ErrUnauthenticated)
		return
	}

	var req OpenAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.New(errors.InvalidInput, errors.CategoryInvalid, "invalid request body"))
		return
	}

	accountType, appErr := validateAccountType(req.Type)
	if appErr != nil {
		writeError(w, appErr)
		return
	}

	account, err := h.accountService.OpenAccount(user.ID, accountType)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, OpenAccountResponse{
		AccountID: account.ID,
		Message:   "Account created successfully",
	})
}

type AccountResponse struct {
	AccountID int64  `json:"accountId"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	Amount    string `json:"amount"`
}

// GetAccount renders a single account by id. Customers may only see their
// own accounts; another user's account renders as not found so account ids
// cannot be enumerated. Operators may fetch any account.
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, errors.ErrUnauthenticated)
		return
	}

	accountID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, errors.New(errors.InvalidInput, errors.CategoryInvalid, "account id validation failed").
			WithFields(errors.FieldError{Field: "id", Reason: "account id must be a number"}))
		return
	}

	account, err := h.accountService.GetAccount(accountID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if user.Role != domain.RoleOperator && account.UserID != user.ID {
		writeError(w, errors.ErrAccountNotFound)
		return
	}

	writeJSON(w, http.StatusOK, AccountResponse{
		AccountID: account.ID,
		Type:      string(account.Type),
		Status:    string(account.Status),
		Amount:    account.Balance.StringFixed(2),
	})
}

type CloseAccountRequest struct {
	Reason string `json:"reason,omitempty"`
}

type CloseAccountResponse struct {
	AccountID int64  `json:"accountId"`
	Message   string `json:"message"`
}

func (h *AccountHandler) CloseAccount(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, errors.ErrUnauthenticated)
		return
	}

	// Close takes an optional body; an empty body means no reason given.
	var req CloseAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeError(w, errors.New(errors.InvalidInput, errors.CategoryInvalid, "invalid request body"))
		return
	}

	if appErr := validateClosureReason(req.Reason); appErr != nil {
		writeError(w, appErr)
		return
	}

	account, err := h.accountService.CloseAccount(user.ID, req.Reason)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, CloseAccountResponse{
		AccountID: account.ID,
		Message:   "Account closed successfully",
	})
}
