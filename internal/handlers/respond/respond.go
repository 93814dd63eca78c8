// Package respond holds the response helpers shared by the resource handlers.
package respond

import (
	"net/http"

	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/GlebRadaev/payledger/pkg/auth"
	"github.com/GlebRadaev/payledger/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Error writes err with the status code of its domain kind. Errors outside
// the taxonomy are logged and hidden behind a generic message.
func Error(w http.ResponseWriter, err error) {
	switch domain.KindOf(err) {
	case "not_found":
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case "validation":
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case "conflict":
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case "forbidden":
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	default:
		zap.L().Error("request failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// UserID returns the authenticated caller, answering 401 when there is none.
func UserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "User not authorized")
		return uuid.Nil, false
	}
	return userID, true
}

// PathID parses the uuid URL parameter name, answering 400 when it is malformed.
func PathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid id")
		return uuid.Nil, false
	}
	return id, true
}
