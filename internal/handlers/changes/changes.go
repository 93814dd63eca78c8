package changes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/GlebRadaev/payledger/internal/changefeed"
	"github.com/GlebRadaev/payledger/internal/handlers/respond"
	"github.com/GlebRadaev/payledger/pkg/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const keepAlive = 15 * time.Second

type Feed interface {
	Subscribe(userID uuid.UUID, tables ...string) *changefeed.Subscription
	Unsubscribe(sub *changefeed.Subscription)
}

type ChangesHandler struct {
	feed      Feed
	keepAlive time.Duration
}

func New(feed Feed) *ChangesHandler {
	return &ChangesHandler{
		feed:      feed,
		keepAlive: keepAlive,
	}
}

// Stream godoc
//
//	@Summary		Change feed
//	@Description	Server-Sent Events stream of debounced row changes concerning the caller.
//	@Description	Each event is named after its table and carries the batched changes as JSON.
//	@Tags			Changes
//	@Produce		text/event-stream
//	@Security		BearerAuth
//	@Param			table	query	[]string	false	"Tables to watch, all when omitted"	collectionFormat(multi)
//	@Success		200		{object}	changefeed.Event
//	@Failure		400		{object}	utils.Response	"Unknown table"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Streaming unsupported"
//	@Router			/api/changes [get]
func (h *ChangesHandler) Stream(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.UserID(w, r)
	if !ok {
		return
	}
	tables := r.URL.Query()["table"]
	for _, t := range tables {
		if !changefeed.KnownTable(t) {
			utils.RespondWithError(w, http.StatusBadRequest, "Unknown table "+t)
			return
		}
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondWithError(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	sub := h.feed.Subscribe(userID, tables...)
	defer h.feed.Unsubscribe(sub)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-sub.Done():
			return
		case ev := <-sub.Events():
			data, err := json.Marshal(ev)
			if err != nil {
				zap.L().Error("can't encode change event", zap.Error(err))
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Table, data)
			flusher.Flush()
		case <-ticker.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		}
	}
}
