package notificationrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/GlebRadaev/payledger/internal/pg"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	query := `
		INSERT INTO notifications (user_id, sender_id, notification_text, notification_type,
			notification_status, notification_metadata, notification_datetime)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING notification_id
	`
	err := r.db.QueryRow(ctx, query, n.UserID, n.SenderID, n.Text, n.Type, n.Status, n.Metadata, n.CreatedAt).Scan(&n.ID)
	if err != nil {
		zap.L().Error("can't save notification", zap.Error(err))
		return nil, err
	}
	return n, nil
}

func (r *Repository) FindByID(ctx context.Context, notificationID uuid.UUID) (*domain.Notification, error) {
	query := `
		SELECT notification_id, user_id, sender_id, notification_text, notification_type,
			notification_status, notification_metadata, notification_datetime
		FROM notifications
		WHERE notification_id = $1
	`
	n, err := scanNotification(r.db.QueryRow(ctx, query, notificationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find notification", zap.Stringer("notification_id", notificationID), zap.Error(err))
		return nil, err
	}
	return n, nil
}

// FindByIDForUpdate locks the notification until the surrounding transaction ends.
func (r *Repository) FindByIDForUpdate(ctx context.Context, notificationID uuid.UUID) (*domain.Notification, error) {
	query := `
		SELECT notification_id, user_id, sender_id, notification_text, notification_type,
			notification_status, notification_metadata, notification_datetime
		FROM notifications
		WHERE notification_id = $1
		FOR UPDATE
	`
	n, err := scanNotification(r.db.QueryRow(ctx, query, notificationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't lock notification", zap.Stringer("notification_id", notificationID), zap.Error(err))
		return nil, err
	}
	return n, nil
}

// Update writes status and metadata of the notification.
func (r *Repository) Update(ctx context.Context, notificationID uuid.UUID, status domain.NotificationStatus, metadata domain.Metadata) error {
	query := `
		UPDATE notifications
		SET notification_status = $1, notification_metadata = $2
		WHERE notification_id = $3
	`
	tag, err := r.db.Exec(ctx, query, status, metadata, notificationID)
	if err != nil {
		zap.L().Error("failed to update notification", zap.Stringer("notification_id", notificationID), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: notification %s", domain.ErrNotFound, notificationID)
	}
	return nil
}

func (r *Repository) MarkRead(ctx context.Context, notificationID uuid.UUID) error {
	query := `
		UPDATE notifications
		SET notification_status = 'read'
		WHERE notification_id = $1
	`
	tag, err := r.db.Exec(ctx, query, notificationID)
	if err != nil {
		zap.L().Error("failed to mark notification read", zap.Stringer("notification_id", notificationID), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: notification %s", domain.ErrNotFound, notificationID)
	}
	return nil
}

// ResolveByReference records response on the unanswered notifications of
// userID whose metadata refers to referenceID under one of keys, and marks
// them read. It returns the ids of the answered notifications.
func (r *Repository) ResolveByReference(ctx context.Context, userID uuid.UUID, notificationType domain.NotificationType, keys []string, referenceID uuid.UUID, response domain.Response) ([]uuid.UUID, error) {
	query := `
		UPDATE notifications
		SET notification_status = 'read',
			notification_metadata = notification_metadata || jsonb_build_object('response', $4::text)
		WHERE user_id = $1
			AND notification_type = $2
			AND NOT (notification_metadata ? 'response')
			AND EXISTS (SELECT 1 FROM unnest($3::text[]) AS k WHERE notification_metadata ->> k = $5)
		RETURNING notification_id
	`
	rows, err := r.db.Query(ctx, query, userID, notificationType, keys, string(response), referenceID.String())
	if err != nil {
		zap.L().Error("failed to answer notifications",
			zap.Stringer("user_id", userID),
			zap.Stringer("reference_id", referenceID),
			zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			zap.L().Error("failed to scan answered notification", zap.Error(err))
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// FindByUserID returns the feed of userID, newest first.
func (r *Repository) FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error) {
	query := `
		SELECT notification_id, user_id, sender_id, notification_text, notification_type,
			notification_status, notification_metadata, notification_datetime
		FROM notifications
		WHERE user_id = $1
		ORDER BY notification_datetime DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		zap.L().Error("failed to fetch notifications", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			zap.L().Error("failed to scan notification row", zap.Error(err))
			return nil, err
		}
		notifications = append(notifications, *n)
	}
	return notifications, rows.Err()
}

func (r *Repository) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND notification_status = 'unread'`
	var count int
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		zap.L().Error("failed to count unread notifications", zap.Error(err))
		return 0, err
	}
	return count, nil
}

func scanNotification(row pgx.Row) (*domain.Notification, error) {
	var n domain.Notification
	err := row.Scan(&n.ID, &n.UserID, &n.SenderID, &n.Text, &n.Type, &n.Status, &n.Metadata, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
