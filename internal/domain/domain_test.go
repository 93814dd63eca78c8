package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind string
	}{
		{name: "nil", err: nil, kind: "ok"},
		{name: "wrapped not found", err: fmt.Errorf("%w: transaction", ErrNotFound), kind: "not_found"},
		{name: "validation", err: ErrValidation, kind: "validation"},
		{name: "conflict", err: fmt.Errorf("%w: already friends", ErrConflict), kind: "conflict"},
		{name: "forbidden", err: ErrForbidden, kind: "forbidden"},
		{name: "storage", err: StorageError(errors.New("connection reset")), kind: "storage"},
		{name: "unknown", err: errors.New("boom"), kind: "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, KindOf(tt.err))
		})
	}
}

func TestStorageError(t *testing.T) {
	cause := errors.New("connection reset")
	err := StorageError(cause)

	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, StorageError(nil))
	assert.Equal(t, err, StorageError(err))

	notFound := fmt.Errorf("%w: user", ErrNotFound)
	assert.Equal(t, notFound, StorageError(notFound))
}

func TestTransactionStatus_Terminal(t *testing.T) {
	assert.False(t, TransactionStatusPending.Terminal())
	assert.True(t, TransactionStatusComplete.Terminal())
	assert.True(t, TransactionStatusRejected.Terminal())
}

func TestMetadata_FriendRequestID(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name      string
		meta      Metadata
		expectErr bool
	}{
		{name: "current key", meta: Metadata{MetaFriendRequestID: id.String()}},
		{name: "legacy key", meta: Metadata{"request_id": id.String()}},
		{name: "uuid value", meta: Metadata{MetaFriendRequestID: id}},
		{name: "missing", meta: Metadata{}, expectErr: true},
		{name: "not a uuid", meta: Metadata{MetaFriendRequestID: "abc"}, expectErr: true},
		{name: "wrong type", meta: Metadata{MetaFriendRequestID: 42.0}, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.meta.FriendRequestID()
			if tt.expectErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, id, got)
		})
	}
}

func TestMetadata_MergeAndResponse(t *testing.T) {
	txID := uuid.New()
	meta := Metadata{MetaTransactionID: txID.String()}

	_, answered := meta.Response()
	assert.False(t, answered)

	merged := meta.Merge(Metadata{MetaResponse: string(ResponseAccept)})
	resp, answered := merged.Response()
	assert.True(t, answered)
	assert.Equal(t, ResponseAccept, resp)

	_, stillOpen := meta.Response()
	assert.False(t, stillOpen, "merge must not mutate the receiver")

	got, err := merged.TransactionID()
	require.NoError(t, err)
	assert.Equal(t, txID, got)
}

func TestTransaction_DirectionFor(t *testing.T) {
	payer, payee := uuid.New(), uuid.New()
	tx := Transaction{OriginUserID: payer, DestinationUserID: payee}

	assert.Equal(t, DirectionOutbound, tx.DirectionFor(payer))
	assert.Equal(t, DirectionInbound, tx.DirectionFor(payee))
}

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		valid  bool
	}{
		{name: "whole cents", amount: "25.50", valid: true},
		{name: "integer", amount: "10", valid: true},
		{name: "largest", amount: "999999999999999999.99", valid: true},
		{name: "zero", amount: "0", valid: false},
		{name: "negative", amount: "-1", valid: false},
		{name: "half cent", amount: "0.005", valid: false},
		{name: "rounds to zero", amount: "0.001", valid: false},
		{name: "sub cent tail", amount: "10.001", valid: false},
		{name: "trailing zeros", amount: "1.500", valid: true},
		{name: "too large", amount: "1000000000000000000", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(decimal.RequireFromString(tt.amount))
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestValidateCurrency(t *testing.T) {
	assert.NoError(t, ValidateCurrency("MXN"))
	for _, code := range []string{"", "MX", "MXNN", "mxn", "M1N", "€UR"} {
		assert.ErrorIs(t, ValidateCurrency(code), ErrValidation, code)
	}
}

func TestValidateLength(t *testing.T) {
	assert.NoError(t, ValidateLength("category", "ñandú", 5))
	assert.ErrorIs(t, ValidateLength("category", "ñandús", 5), ErrValidation)
}

func TestReferenceKeys(t *testing.T) {
	assert.Equal(t, []string{"transaction_id"}, ReferenceKeys(NotificationTypePaymentRequest))
	assert.Equal(t, []string{"friend_request_id", "request_id"}, ReferenceKeys(NotificationTypeFriendRequest))
	assert.Nil(t, ReferenceKeys(NotificationTypeSystem))
}
