package handler

import (
	"net/http"

	"scrooge-bank/internal/errors"
	"scrooge-bank/internal/service"
)

type AuthHandler struct {
	accountService *service.AccountService
}

func NewAuthHandler(accountService *service.AccountService) *AuthHandler {
	return &AuthHandler{
		accountService: accountService,
	}
}

type MeResponse struct {
	User    string           `json:"user"`
	Account *AccountSnapshot `json:"account,omitempty"`
}

type AccountSnapshot struct {
	Amount string `json:"amount"`
	Type   string `json:"type"`
	Status string `json:"status"`
}

// Me renders the caller's profile. Having no open account is a normal state
// and renders without the account block.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, errors.ErrUnauthenticated)
		return
	}

	account, err := h.accountService.GetOpenAccountForUser(user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response := MeResponse{User: user.Email}
	if account != nil {
		response.Account = &AccountSnapshot{
			Amount: account.Balance.StringFixed(2),
			Type:   string(account.Type),
			Status: string(account.Status),
		}
	}

	writeJSON(w, http.StatusOK, response)
}
