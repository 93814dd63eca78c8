package friends

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/GlebRadaev/payledger/internal/dto"
	"github.com/GlebRadaev/payledger/internal/service/friendservice"
	"github.com/GlebRadaev/payledger/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*FriendHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	return handler, service
}

func newRequest(method, target, body string, userID uuid.UUID, id string) *http.Request {
	r := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	ctx := context.WithValue(r.Context(), auth.UserIDKey, userID)
	if id != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return r.WithContext(ctx)
}

func TestSendFriendRequestHandler(t *testing.T) {
	handler, service := NewMock(t)
	userID := uuid.New()

	tests := []struct {
		name           string
		body           string
		prepareMock    func()
		expectedCode   int
		expectedResult *friendservice.FriendRequestResult
	}{
		{
			name: "Request sent",
			body: `{"handle":"@beto"}`,
			prepareMock: func() {
				service.EXPECT().SendFriendRequest(gomock.Any(), userID, "@beto").
					Return(&friendservice.FriendRequestResult{Success: true, Message: "Friend request sent to @beto"}, nil)
			},
			expectedCode:   http.StatusOK,
			expectedResult: &friendservice.FriendRequestResult{Success: true, Message: "Friend request sent to @beto"},
		},
		{
			name: "Refused with message",
			body: `{"handle":"ghost"}`,
			prepareMock: func() {
				service.EXPECT().SendFriendRequest(gomock.Any(), userID, "ghost").
					Return(&friendservice.FriendRequestResult{Success: false, Message: "User @ghost not found."}, nil)
			},
			expectedCode:   http.StatusOK,
			expectedResult: &friendservice.FriendRequestResult{Success: false, Message: "User @ghost not found."},
		},
		{
			name:         "Invalid request body",
			body:         `handle`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Storage failure",
			body: `{"handle":"beto"}`,
			prepareMock: func() {
				service.EXPECT().SendFriendRequest(gomock.Any(), userID, "beto").
					Return(nil, domain.StorageError(errors.New("db down")))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := newRequest(http.MethodPost, "/api/friends/requests", tt.body, userID, "")
			w := httptest.NewRecorder()

			handler.SendFriendRequest(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedResult != nil {
				var body friendservice.FriendRequestResult
				require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.Equal(t, *tt.expectedResult, body)
			}
		})
	}
}

func TestAcceptFriendRequestHandler(t *testing.T) {
	handler, service := NewMock(t)
	receiver, sender, requestID := uuid.New(), uuid.New(), uuid.New()

	tests := []struct {
		name         string
		id           string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Accepted",
			id:   requestID.String(),
			body: fmt.Sprintf(`{"sender_id":%q}`, sender),
			prepareMock: func() {
				service.EXPECT().AcceptFriendRequest(gomock.Any(), requestID, sender, receiver).Return(nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name: "Not the receiver",
			id:   requestID.String(),
			body: fmt.Sprintf(`{"sender_id":%q}`, sender),
			prepareMock: func() {
				service.EXPECT().AcceptFriendRequest(gomock.Any(), requestID, sender, receiver).
					Return(fmt.Errorf("%w: request is addressed to another user", domain.ErrForbidden))
			},
			expectedCode: http.StatusForbidden,
		},
		{
			name: "Already answered",
			id:   requestID.String(),
			body: fmt.Sprintf(`{"sender_id":%q}`, sender),
			prepareMock: func() {
				service.EXPECT().AcceptFriendRequest(gomock.Any(), requestID, sender, receiver).
					Return(fmt.Errorf("%w: request is accepted", domain.ErrConflict))
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:         "Malformed id",
			id:           "x",
			body:         `{}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Invalid request body",
			id:           requestID.String(),
			body:         `{`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := newRequest(http.MethodPost, "/api/friends/requests/"+tt.id+"/accept", tt.body, receiver, tt.id)
			w := httptest.NewRecorder()

			handler.AcceptFriendRequest(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestRejectFriendRequestHandler(t *testing.T) {
	handler, service := NewMock(t)
	receiver, requestID := uuid.New(), uuid.New()

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Rejected",
			prepareMock: func() {
				service.EXPECT().RejectFriendRequest(gomock.Any(), receiver, requestID).Return(nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name: "Not found",
			prepareMock: func() {
				service.EXPECT().RejectFriendRequest(gomock.Any(), receiver, requestID).
					Return(fmt.Errorf("%w: friend request %s", domain.ErrNotFound, requestID))
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := newRequest(http.MethodPost, "/api/friends/requests/"+requestID.String()+"/reject", "", receiver, requestID.String())
			w := httptest.NewRecorder()

			handler.RejectFriendRequest(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestListFriendsHandler(t *testing.T) {
	handler, service := NewMock(t)
	userID, friendID := uuid.New(), uuid.New()
	since := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		expectedBody []dto.FriendResponseDTO
	}{
		{
			name: "Friends listed",
			prepareMock: func() {
				service.EXPECT().ListFriends(gomock.Any(), userID).
					Return([]domain.Friend{{UserID: friendID, Name: "Beto", Handle: "beto", FriendedAt: since}}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: []dto.FriendResponseDTO{{UserID: friendID, Name: "Beto", Handle: "beto", FriendedAt: "2024-05-01T10:00:00Z"}},
		},
		{
			name: "No friends",
			prepareMock: func() {
				service.EXPECT().ListFriends(gomock.Any(), userID).Return(nil, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: []dto.FriendResponseDTO{},
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				service.EXPECT().ListFriends(gomock.Any(), userID).Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := newRequest(http.MethodGet, "/api/friends", "", userID, "")
			w := httptest.NewRecorder()

			handler.ListFriends(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedBody != nil {
				var body []dto.FriendResponseDTO
				require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.Equal(t, tt.expectedBody, body)
			}
		})
	}
}
