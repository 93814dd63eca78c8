package userrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/GlebRadaev/payledger/internal/pg"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const uniqueViolation = "23505"

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (repo *Repository) FindByHandle(ctx context.Context, handle string) (*domain.User, error) {
	query := `
		SELECT user_id, handle, name, role, phone, password_hash, balance, created_at
		FROM users
		WHERE handle = $1
	`
	user, err := scanUser(repo.db.QueryRow(ctx, query, handle))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find user by handle", zap.String("handle", handle), zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (repo *Repository) FindByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	query := `
		SELECT user_id, handle, name, role, phone, password_hash, balance, created_at
		FROM users
		WHERE user_id = $1
	`
	user, err := scanUser(repo.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find user", zap.Stringer("user_id", userID), zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (repo *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (handle, name, role, phone, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING user_id, balance, created_at
	`
	err := repo.db.QueryRow(ctx, query, user.Handle, user.Name, user.Role, user.Phone, user.PasswordHash).
		Scan(&user.ID, &user.Balance, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: handle %s already taken", domain.ErrConflict, user.Handle)
		}
		zap.L().Error("can't save user", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Handle, &user.Name, &user.Role, &user.Phone, &user.PasswordHash, &user.Balance, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
