package service

import (
	"log/slog"

	"github.com/google/uuid"

	"scrooge-bank/internal/domain"
	"scrooge-bank/internal/errors"
	"scrooge-bank/internal/repository"
)

type UserService struct {
	store  *repository.Store
	logger *slog.Logger
}

func NewUserService(store *repository.Store, logger *slog.Logger) *UserService {
	return &UserService{
		store:  store,
		logger: logger,
	}
}

// Register creates a CUSTOMER user with an opaque uuid bearer token. Email,
// ssn and phone arrive pre-validated and canonicalized (digits only) from
// the boundary. Uniqueness is backstopped by the store's unique indexes.
func (s *UserService) Register(email, ssn string, phone *string) (*domain.User, error) {
	s.logger.Info("Registering user", "email", email)

	user := &domain.User{
		Email: email,
		SSN:   ssn,
		Phone: phone,
		Role:  domain.RoleCustomer,
		Token: uuid.New().String(),
	}

	if err := s.store.User().CreateUser(user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", "user_id", user.ID)
	return user, nil
}

// Authenticate resolves an opaque bearer token to its user.
func (s *UserService) Authenticate(token string) (*domain.User, error) {
	user, err := s.store.User().GetUserByToken(token)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUnauthenticated
	}
	return user, nil
}
