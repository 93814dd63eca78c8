package repo

import (
	"context"
	"time"

	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/GlebRadaev/payledger/internal/pg"
	friendrepo "github.com/GlebRadaev/payledger/internal/repo/friend-repo"
	ledgerrepo "github.com/GlebRadaev/payledger/internal/repo/ledger-repo"
	notificationrepo "github.com/GlebRadaev/payledger/internal/repo/notification-repo"
	transactionrepo "github.com/GlebRadaev/payledger/internal/repo/transaction-repo"
	userrepo "github.com/GlebRadaev/payledger/internal/repo/user-repo"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UserRepo interface {
	FindByHandle(ctx context.Context, handle string) (*domain.User, error)
	FindByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

type LedgerRepo interface {
	Transfer(ctx context.Context, transactionID, originID, destinationID uuid.UUID, amount decimal.Decimal) ([]domain.LedgerEntry, error)
	ResetBalance(ctx context.Context, actorID, userID uuid.UUID, reason string) (*domain.BalanceAdjustment, error)
	BalanceChangeSince(ctx context.Context, userID uuid.UUID, since time.Time) (decimal.Decimal, error)
}

type TransactionRepo interface {
	Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
	FindByID(ctx context.Context, transactionID uuid.UUID) (*domain.Transaction, error)
	FindByIDForUpdate(ctx context.Context, transactionID uuid.UUID) (*domain.Transaction, error)
	UpdateStatus(ctx context.Context, transactionID uuid.UUID, status domain.TransactionStatus) error
	FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Transaction, error)
}

type FriendRepo interface {
	CreateRequest(ctx context.Context, senderID, receiverID uuid.UUID) (*domain.FriendRequest, error)
	FindPending(ctx context.Context, senderID, receiverID uuid.UUID) (*domain.FriendRequest, error)
	FindByIDForUpdate(ctx context.Context, requestID uuid.UUID) (*domain.FriendRequest, error)
	UpdateStatus(ctx context.Context, requestID uuid.UUID, status domain.FriendRequestStatus, respondedAt time.Time) error
	CreateFriendship(ctx context.Context, userID, friendID uuid.UUID) error
	AreFriends(ctx context.Context, userID, friendID uuid.UUID) (bool, error)
	FindFriends(ctx context.Context, userID uuid.UUID) ([]domain.Friend, error)
}

type NotificationRepo interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	FindByID(ctx context.Context, notificationID uuid.UUID) (*domain.Notification, error)
	FindByIDForUpdate(ctx context.Context, notificationID uuid.UUID) (*domain.Notification, error)
	Update(ctx context.Context, notificationID uuid.UUID, status domain.NotificationStatus, metadata domain.Metadata) error
	MarkRead(ctx context.Context, notificationID uuid.UUID) error
	FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error)
	ResolveByReference(ctx context.Context, userID uuid.UUID, notificationType domain.NotificationType, keys []string, referenceID uuid.UUID, response domain.Response) ([]uuid.UUID, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
}

type Repositories struct {
	UserRepo         UserRepo
	LedgerRepo       LedgerRepo
	TransactionRepo  TransactionRepo
	FriendRepo       FriendRepo
	NotificationRepo NotificationRepo
	TXManager        pg.TXManager
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		UserRepo:         userrepo.New(conn),
		LedgerRepo:       ledgerrepo.New(conn, txManager),
		TransactionRepo:  transactionrepo.New(conn),
		FriendRepo:       friendrepo.New(conn),
		NotificationRepo: notificationrepo.New(conn),
		TXManager:        txManager,
	}
}
