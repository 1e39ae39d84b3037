package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"studyplanner/internal/core/domain"
	"studyplanner/internal/core/ports"
)

const findUserByEmailQuery = `
SELECT id, username, email, password
FROM users
WHERE email = ?;
`

type UserRepository struct {
	db *sqlx.DB
}

type userRow struct {
	ID       uint64 `db:"id"`
	Username string `db:"username"`
	Email    string `db:"email"`
	Password string `db:"password"`
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(ctx context.Context, input domain.CreateUserInput) (domain.User, error) {
	result, err := r.db.ExecContext(
		ctx,
		"INSERT INTO users (username, email, password) VALUES (?, ?, ?)",
		input.Username,
		input.Email,
		input.PasswordHash,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, domain.ErrUserAlreadyExists
		}
		return domain.User{}, fmt.Errorf("insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return domain.User{}, fmt.Errorf("read user id: %w", err)
	}

	return domain.User{
		ID:           uint64(id),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
	}, nil
}

func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (domain.User, error) {
	var row userRow
	if err := r.db.GetContext(ctx, &row, findUserByEmailQuery, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, err
	}

	return domain.User{
		ID:           row.ID,
		Username:     row.Username,
		Email:        row.Email,
		PasswordHash: row.Password,
	}, nil
}
