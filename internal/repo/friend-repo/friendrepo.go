package friendrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

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

func (r *Repository) CreateRequest(ctx context.Context, senderID, receiverID uuid.UUID) (*domain.FriendRequest, error) {
	query := `
		INSERT INTO friend_requests (sender_id, receiver_id, status)
		VALUES ($1, $2, $3)
		RETURNING request_id, sender_id, receiver_id, status, created_at, responded_at
	`
	req, err := scanRequest(r.db.QueryRow(ctx, query, senderID, receiverID, domain.FriendRequestStatusPending))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: friend request already pending", domain.ErrConflict)
		}
		zap.L().Error("can't save friend request", zap.Error(err))
		return nil, err
	}
	return req, nil
}

// FindPending returns the pending request sent by senderID to receiverID, if any.
func (r *Repository) FindPending(ctx context.Context, senderID, receiverID uuid.UUID) (*domain.FriendRequest, error) {
	query := `
		SELECT request_id, sender_id, receiver_id, status, created_at, responded_at
		FROM friend_requests
		WHERE sender_id = $1 AND receiver_id = $2 AND status = 'pending'
		LIMIT 1
	`
	req, err := scanRequest(r.db.QueryRow(ctx, query, senderID, receiverID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't check pending friend request", zap.Error(err))
		return nil, err
	}
	return req, nil
}

// FindByIDForUpdate locks the request row until the surrounding transaction ends.
func (r *Repository) FindByIDForUpdate(ctx context.Context, requestID uuid.UUID) (*domain.FriendRequest, error) {
	query := `
		SELECT request_id, sender_id, receiver_id, status, created_at, responded_at
		FROM friend_requests
		WHERE request_id = $1
		FOR UPDATE
	`
	req, err := scanRequest(r.db.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find friend request", zap.Stringer("request_id", requestID), zap.Error(err))
		return nil, err
	}
	return req, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, requestID uuid.UUID, status domain.FriendRequestStatus, respondedAt time.Time) error {
	query := `
		UPDATE friend_requests
		SET status = $1, responded_at = $2
		WHERE request_id = $3
	`
	tag, err := r.db.Exec(ctx, query, status, respondedAt, requestID)
	if err != nil {
		zap.L().Error("failed to update friend request", zap.Stringer("request_id", requestID), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: friend request %s", domain.ErrNotFound, requestID)
	}
	return nil
}

// CreateFriendship inserts both directed rows of the friendship.
func (r *Repository) CreateFriendship(ctx context.Context, userID, friendID uuid.UUID) error {
	query := `
		INSERT INTO friends (user_id, friend_id)
		VALUES ($1, $2), ($2, $1)
		ON CONFLICT (user_id, friend_id) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, query, userID, friendID); err != nil {
		zap.L().Error("can't create friendship", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) AreFriends(ctx context.Context, userID, friendID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM friends WHERE user_id = $1 AND friend_id = $2)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, friendID).Scan(&exists); err != nil {
		zap.L().Error("can't check friendship", zap.Error(err))
		return false, err
	}
	return exists, nil
}

func (r *Repository) FindFriends(ctx context.Context, userID uuid.UUID) ([]domain.Friend, error) {
	query := `
		SELECT f.friend_id, u.name, u.handle, f.created_at
		FROM friends f
		JOIN users u ON u.user_id = f.friend_id
		WHERE f.user_id = $1
		ORDER BY u.name
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("can't get friends", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var friends []domain.Friend
	for rows.Next() {
		var f domain.Friend
		if err := rows.Scan(&f.UserID, &f.Name, &f.Handle, &f.FriendedAt); err != nil {
			zap.L().Error("can't scan friend row", zap.Error(err))
			return nil, err
		}
		friends = append(friends, f)
	}
	return friends, rows.Err()
}

func scanRequest(row pgx.Row) (*domain.FriendRequest, error) {
	var req domain.FriendRequest
	if err := row.Scan(&req.ID, &req.SenderID, &req.ReceiverID, &req.Status, &req.CreatedAt, &req.RespondedAt); err != nil {
		return nil, err
	}
	return &req, nil
}
