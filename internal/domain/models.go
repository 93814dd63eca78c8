package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	TransactionStatusPending  TransactionStatus = "pending"
	TransactionStatusComplete TransactionStatus = "complete"
	TransactionStatusRejected TransactionStatus = "rejected"
)

// Terminal reports whether no further transition is allowed from s.
func (s TransactionStatus) Terminal() bool {
	return s == TransactionStatusComplete || s == TransactionStatusRejected
}

type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

type FriendRequestStatus string

const (
	FriendRequestStatusPending  FriendRequestStatus = "pending"
	FriendRequestStatusAccepted FriendRequestStatus = "accepted"
	FriendRequestStatusRejected FriendRequestStatus = "rejected"
)

type NotificationType string

const (
	NotificationTypePaymentRequest NotificationType = "payment_request"
	NotificationTypeFriendRequest  NotificationType = "friend_request"
	NotificationTypeSystem         NotificationType = "system"
)

type NotificationStatus string

const (
	NotificationStatusUnread NotificationStatus = "unread"
	NotificationStatusRead   NotificationStatus = "read"
)

type Response string

const (
	ResponseAccept Response = "accept"
	ResponseReject Response = "reject"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           uuid.UUID       `db:"user_id"`
	Handle       string          `db:"handle"`
	Name         string          `db:"name"`
	Role         string          `db:"role"`
	Phone        string          `db:"phone"`
	PasswordHash string          `db:"password_hash"`
	Balance      decimal.Decimal `db:"balance"`
	CreatedAt    time.Time       `db:"created_at"`
}

type Transaction struct {
	ID                uuid.UUID         `db:"transaction_id"`
	OriginUserID      uuid.UUID         `db:"origin_user_id"`
	DestinationUserID uuid.UUID         `db:"destination_user_id"`
	OriginClabe       string            `db:"origin_clabe"`
	DestinationClabe  string            `db:"destination_clabe"`
	Amount            decimal.Decimal   `db:"amount"`
	Currency          string            `db:"currency"`
	Description       string            `db:"description"`
	Category          string            `db:"category"`
	Request           bool              `db:"request"`
	Direction         Direction         `db:"direction"`
	Status            TransactionStatus `db:"status"`
	CreatedAt         time.Time         `db:"transaction_datetime"`
}

// DirectionFor annotates t relative to userID: money leaving userID is outbound.
func (t Transaction) DirectionFor(userID uuid.UUID) Direction {
	if t.OriginUserID == userID {
		return DirectionOutbound
	}
	return DirectionInbound
}

// LedgerEntry is one leg of a completed transaction. The deltas of a
// transaction always sum to zero.
type LedgerEntry struct {
	ID            int64           `db:"entry_id"`
	TransactionID uuid.UUID       `db:"transaction_id"`
	UserID        uuid.UUID       `db:"user_id"`
	Delta         decimal.Decimal `db:"delta"`
	CreatedAt     time.Time       `db:"created_at"`
}

type BalanceAdjustment struct {
	ID              int64           `db:"adjustment_id"`
	UserID          uuid.UUID       `db:"user_id"`
	ActorID         uuid.UUID       `db:"actor_id"`
	PreviousBalance decimal.Decimal `db:"previous_balance"`
	NewBalance      decimal.Decimal `db:"new_balance"`
	Reason          string          `db:"reason"`
	CreatedAt       time.Time       `db:"created_at"`
}

type FriendRequest struct {
	ID          uuid.UUID           `db:"request_id"`
	SenderID    uuid.UUID           `db:"sender_id"`
	ReceiverID  uuid.UUID           `db:"receiver_id"`
	Status      FriendRequestStatus `db:"status"`
	CreatedAt   time.Time           `db:"created_at"`
	RespondedAt *time.Time          `db:"responded_at"`
}

type Friendship struct {
	UserID    uuid.UUID `db:"user_id"`
	FriendID  uuid.UUID `db:"friend_id"`
	CreatedAt time.Time `db:"created_at"`
}

// Friend is a friendship row joined with the friend's profile.
type Friend struct {
	UserID     uuid.UUID `db:"friend_id"`
	Name       string    `db:"name"`
	Handle     string    `db:"handle"`
	FriendedAt time.Time `db:"created_at"`
}

type Notification struct {
	ID        uuid.UUID          `db:"notification_id"`
	UserID    uuid.UUID          `db:"user_id"`
	SenderID  uuid.NullUUID      `db:"sender_id"`
	Text      string             `db:"notification_text"`
	Type      NotificationType   `db:"notification_type"`
	Status    NotificationStatus `db:"notification_status"`
	Metadata  Metadata           `db:"notification_metadata"`
	CreatedAt time.Time          `db:"notification_datetime"`
}
