package changefeed

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	TableTransactions   = "transactions"
	TableNotifications  = "notifications"
	TableFriendRequests = "friend_requests"
	TableFriends        = "friends"
	TableUsers          = "users"

	OpInsert = "INSERT"
	OpUpdate = "UPDATE"

	// events buffered per subscriber before new ones are dropped
	subscriberBuffer = 16
	// changes kept per pending batch, oldest dropped first
	maxBatch = 64
)

var ErrSlowSubscriber = errors.New("subscriber buffer full, event dropped")

var tables = []string{TableTransactions, TableNotifications, TableFriendRequests, TableFriends, TableUsers}

// KnownTable reports whether changes on table are published.
func KnownTable(table string) bool {
	return slices.Contains(tables, table)
}

// Change describes one committed row change. UserIDs lists the users whose
// views are affected by it.
type Change struct {
	Table   string      `json:"table"`
	Op      string      `json:"op"`
	ID      uuid.UUID   `json:"id"`
	UserIDs []uuid.UUID `json:"-"`
}

// Event is a debounced batch of changes on one table.
type Event struct {
	Table   string   `json:"table"`
	Changes []Change `json:"changes"`
}

// Publisher is implemented by Hub; lifecycle services publish committed writes through it.
type Publisher interface {
	Publish(ctx context.Context, c Change)
}

type batch struct {
	timer   *time.Timer
	changes []Change
}

type Subscription struct {
	id      uint64
	userID  uuid.UUID
	tables  map[string]struct{}
	events  chan Event
	done    chan struct{}
	pending map[string]*batch
}

// Events delivers debounced batches until Done is closed.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

func (s *Subscription) watches(c Change) bool {
	if _, ok := s.tables[c.Table]; !ok {
		return false
	}
	return slices.Contains(c.UserIDs, s.userID)
}

// Hub fans committed changes out to subscribers, coalescing bursts per
// subscriber and table into a single Event once the table has been quiet
// for the debounce window.
type Hub struct {
	mu       sync.Mutex
	subs     map[uint64]*Subscription
	nextID   uint64
	debounce time.Duration
	pool     WorkerPoolI
	closed   bool
}

func NewHub(pool WorkerPoolI, debounce time.Duration) *Hub {
	return &Hub{
		subs:     make(map[uint64]*Subscription),
		debounce: debounce,
		pool:     pool,
	}
}

// Subscribe registers userID for changes on tables. With no tables given
// every table is watched.
func (h *Hub) Subscribe(userID uuid.UUID, watch ...string) *Subscription {
	if len(watch) == 0 {
		watch = tables
	}
	sub := &Subscription{
		userID:  userID,
		tables:  make(map[string]struct{}, len(watch)),
		events:  make(chan Event, subscriberBuffer),
		done:    make(chan struct{}),
		pending: make(map[string]*batch),
	}
	for _, t := range watch {
		sub.tables[t] = struct{}{}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	sub.id = h.nextID
	if h.closed {
		close(sub.done)
		return sub
	}
	h.subs[sub.id] = sub
	zap.L().Debug("change feed subscribed", zap.Stringer("user_id", userID), zap.Strings("tables", watch))
	return sub
}

func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sub.id]; !ok {
		return
	}
	delete(h.subs, sub.id)
	h.stop(sub)
}

// stop must be called with h.mu held.
func (h *Hub) stop(sub *Subscription) {
	for table, b := range sub.pending {
		b.timer.Stop()
		delete(sub.pending, table)
	}
	close(sub.done)
}

// Publish records c for every interested subscriber and restarts their
// debounce timer for c.Table.
func (h *Hub) Publish(_ context.Context, c Change) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	for _, sub := range h.subs {
		if !sub.watches(c) {
			continue
		}
		b, ok := sub.pending[c.Table]
		if !ok {
			b = &batch{}
			sub, table, b := sub, c.Table, b
			b.timer = time.AfterFunc(h.debounce, func() { h.flush(sub, table, b) })
			sub.pending[c.Table] = b
		} else {
			b.timer.Reset(h.debounce)
		}
		b.changes = append(b.changes, c)
		if len(b.changes) > maxBatch {
			b.changes = b.changes[len(b.changes)-maxBatch:]
		}
	}
}

func (h *Hub) flush(sub *Subscription, table string, b *batch) {
	h.mu.Lock()
	if sub.pending[table] != b || h.closed {
		h.mu.Unlock()
		return
	}
	delete(sub.pending, table)
	h.mu.Unlock()

	ev := Event{Table: table, Changes: b.changes}
	err := h.pool.AddTask(context.Background(), func() error {
		select {
		case <-sub.done:
			return nil
		default:
		}
		select {
		case sub.events <- ev:
			return nil
		default:
			return ErrSlowSubscriber
		}
	})
	if err != nil {
		zap.L().Warn("change feed dispatch failed", zap.String("table", table), zap.Error(err))
	}
}

// Close detaches every subscriber and stops the dispatch workers.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	for id, sub := range h.subs {
		delete(h.subs, id)
		h.stop(sub)
	}
	h.mu.Unlock()

	h.pool.Close()
}
