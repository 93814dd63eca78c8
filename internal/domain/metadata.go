package domain

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	MetaTransactionID   = "transaction_id"
	MetaFriendRequestID = "friend_request_id"
	MetaResponse        = "response"

	// legacy key written by older clients on friend request notifications
	metaLegacyRequestID = "request_id"
)

// Metadata is the free-form payload of a notification, stored as jsonb.
type Metadata map[string]any

// Merge returns a copy of m with the entries of other applied on top.
func (m Metadata) Merge(other Metadata) Metadata {
	out := make(Metadata, len(m)+len(other))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

func (m Metadata) uuid(key string) (uuid.UUID, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return uuid.Nil, fmt.Errorf("%w: metadata has no %s", ErrValidation, key)
	}
	switch v := raw.(type) {
	case uuid.UUID:
		return v, nil
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			return uuid.Nil, fmt.Errorf("%w: metadata %s is not a uuid", ErrValidation, key)
		}
		return id, nil
	default:
		return uuid.Nil, fmt.Errorf("%w: metadata %s has type %T", ErrValidation, key, raw)
	}
}

func (m Metadata) TransactionID() (uuid.UUID, error) {
	return m.uuid(MetaTransactionID)
}

// FriendRequestID reads friend_request_id and falls back to request_id.
func (m Metadata) FriendRequestID() (uuid.UUID, error) {
	if _, ok := m[MetaFriendRequestID]; ok {
		return m.uuid(MetaFriendRequestID)
	}
	if _, ok := m[metaLegacyRequestID]; ok {
		return m.uuid(metaLegacyRequestID)
	}
	return uuid.Nil, fmt.Errorf("%w: metadata has no %s", ErrValidation, MetaFriendRequestID)
}

// Response returns the recorded answer, if any.
func (m Metadata) Response() (Response, bool) {
	v, ok := m[MetaResponse].(string)
	if !ok || v == "" {
		return "", false
	}
	return Response(v), true
}

// ReferenceKeys lists the metadata keys that may carry the id of the entity
// a notification of type t refers to.
func ReferenceKeys(t NotificationType) []string {
	switch t {
	case NotificationTypePaymentRequest:
		return []string{MetaTransactionID}
	case NotificationTypeFriendRequest:
		return []string{MetaFriendRequestID, metaLegacyRequestID}
	default:
		return nil
	}
}
