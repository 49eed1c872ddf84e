package handler

import (
	"encoding/json"
	"net/http"

	"scrooge-bank/internal/errors"
	"scrooge-bank/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

type RegisterRequest struct {
	Email string `json:"email"`
	SSN   string `json:"ssn"`
	Phone string `json:"phone,omitempty"`
}

type RegisterResponse struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.New(errors.InvalidInput, errors.CategoryInvalid, "invalid request body"))
		return
	}

	if appErr := validateEmail(req.Email); appErr != nil {
		writeError(w, appErr)
		return
	}
	ssn, appErr := validateSSN(req.SSN)
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	phone, appErr := validatePhone(req.Phone)
	if appErr != nil {
		writeError(w, appErr)
		return
	}

	user, err := h.userService.Register(req.Email, ssn, phone)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, RegisterResponse{
		UserID: user.ID,
		Email:  user.Email,
		Token:  user.Token,
	})
}
