package repository

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/lib/pq"

	"scrooge-bank/internal/domain"
	"scrooge-bank/internal/errors"
)

type userRepository struct {
	db     SQLExecutor
	logger *slog.Logger
}

func NewUserRepository(db SQLExecutor, logger *slog.Logger) domain.UserRepository {
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

func (r *userRepository) CreateUser(user *domain.User) error {
	query := `
		INSERT INTO users (email, ssn, phone, role, token, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	now := time.Now()

	var phone interface{}
	if user.Phone != nil {
		phone = *user.Phone
	}

	err := r.db.QueryRow(
		query,
		user.Email,
		user.SSN,
		phone,
		user.Role,
		user.Token,
		now,
	).Scan(&user.ID)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				r.logger.Warn("Duplicate user registration attempt", "email", user.Email, "constraint", pqErr.Constraint)
				return errors.ErrUserAlreadyExists
			}
		}
		r.logger.Error("Failed to create user", "email", user.Email, "error", err)
		return errors.NewStorageFailure("failed to create user", err)
	}

	user.CreatedAt = now
	r.logger.Info("User created successfully", "user_id", user.ID)
	return nil
}

func (r *userRepository) GetUserByID(id int64) (*domain.User, error) {
	user, err := r.scanUser(`SELECT id, email, ssn, phone, role, token, created_at FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		r.logger.Warn("User not found", "user_id", id)
		return nil, errors.ErrUserNotFound
	}
	return user, nil
}

func (r *userRepository) GetUserByEmail(email string) (*domain.User, error) {
	return r.scanUser(`SELECT id, email, ssn, phone, role, token, created_at FROM users WHERE email = $1`, email)
}

func (r *userRepository) GetUserByPhone(phone string) (*domain.User, error) {
	return r.scanUser(`SELECT id, email, ssn, phone, role, token, created_at FROM users WHERE phone = $1`, phone)
}

func (r *userRepository) GetUserByToken(token string) (*domain.User, error) {
	return r.scanUser(`SELECT id, email, ssn, phone, role, token, created_at FROM users WHERE token = $1`, token)
}

func (r *userRepository) scanUser(query string, arg interface{}) (*domain.User, error) {
	var user domain.User
	var ssn sql.NullString
	var phone sql.NullString

	err := r.db.QueryRow(query, arg).Scan(
		&user.ID,
		&user.Email,
		&ssn,
		&phone,
		&user.Role,
		&user.Token,
		&user.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Failed to get user", "error", err)
		return nil, errors.NewStorageFailure("failed to get user", err)
	}

	user.SSN = ssn.String
	if phone.Valid {
		user.Phone = &phone.String
	}

	return &user, nil
}
