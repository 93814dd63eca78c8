package changefeed

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDebounce = 30 * time.Millisecond

func NewTestHub(t *testing.T) *Hub {
	hub := NewHub(NewWorkerPool(2), testDebounce)
	t.Cleanup(hub.Close)
	return hub
}

func receive(t *testing.T, sub *Subscription) Event {
	t.Helper()
	select {
	case ev := <-sub.Events():
		return ev
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return Event{}
	}
}

func assertSilent(t *testing.T, sub *Subscription, wait time.Duration) {
	t.Helper()
	select {
	case ev := <-sub.Events():
		t.Fatalf("unexpected event on %s", ev.Table)
	case <-time.After(wait):
	}
}

func TestHub_DebouncesBurstPerTable(t *testing.T) {
	hub := NewTestHub(t)
	userID := uuid.New()
	sub := hub.Subscribe(userID, TableTransactions)

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for _, id := range ids {
		hub.Publish(context.Background(), Change{Table: TableTransactions, Op: OpInsert, ID: id, UserIDs: []uuid.UUID{userID}})
		time.Sleep(testDebounce / 6)
	}

	ev := receive(t, sub)
	assert.Equal(t, TableTransactions, ev.Table)
	require.Len(t, ev.Changes, 3)
	assert.Equal(t, ids[2], ev.Changes[2].ID)
	assertSilent(t, sub, 3*testDebounce)
}

func TestHub_SeparateTablesSeparateEvents(t *testing.T) {
	hub := NewTestHub(t)
	userID := uuid.New()
	sub := hub.Subscribe(userID)

	hub.Publish(context.Background(), Change{Table: TableTransactions, Op: OpUpdate, ID: uuid.New(), UserIDs: []uuid.UUID{userID}})
	hub.Publish(context.Background(), Change{Table: TableNotifications, Op: OpInsert, ID: uuid.New(), UserIDs: []uuid.UUID{userID}})

	got := map[string]int{}
	for i := 0; i < 2; i++ {
		ev := receive(t, sub)
		got[ev.Table] += len(ev.Changes)
	}
	assert.Equal(t, map[string]int{TableTransactions: 1, TableNotifications: 1}, got)
}

func TestHub_FiltersByUserAndTable(t *testing.T) {
	hub := NewTestHub(t)
	alice, bob := uuid.New(), uuid.New()
	aliceSub := hub.Subscribe(alice, TableNotifications)
	bobSub := hub.Subscribe(bob, TableNotifications)

	hub.Publish(context.Background(), Change{Table: TableNotifications, Op: OpInsert, ID: uuid.New(), UserIDs: []uuid.UUID{bob}})
	hub.Publish(context.Background(), Change{Table: TableFriends, Op: OpInsert, ID: uuid.New(), UserIDs: []uuid.UUID{alice}})

	ev := receive(t, bobSub)
	assert.Equal(t, TableNotifications, ev.Table)
	assertSilent(t, aliceSub, 3*testDebounce)
}

func TestHub_Unsubscribe(t *testing.T) {
	hub := NewTestHub(t)
	userID := uuid.New()
	sub := hub.Subscribe(userID, TableUsers)

	hub.Publish(context.Background(), Change{Table: TableUsers, Op: OpUpdate, ID: userID, UserIDs: []uuid.UUID{userID}})
	hub.Unsubscribe(sub)
	hub.Unsubscribe(sub)

	select {
	case <-sub.Done():
	default:
		t.Fatal("subscription not closed")
	}
	assertSilent(t, sub, 3*testDebounce)
}

func TestHub_Close(t *testing.T) {
	hub := NewHub(NewWorkerPool(1), testDebounce)
	userID := uuid.New()
	sub := hub.Subscribe(userID)

	hub.Close()
	hub.Close()
	hub.Publish(context.Background(), Change{Table: TableUsers, Op: OpUpdate, ID: userID, UserIDs: []uuid.UUID{userID}})

	<-sub.Done()
	late := hub.Subscribe(userID)
	<-late.Done()
	assertSilent(t, sub, 2*testDebounce)
}

func TestKnownTable(t *testing.T) {
	tests := []struct {
		table string
		want  bool
	}{
		{TableTransactions, true},
		{TableNotifications, true},
		{TableFriendRequests, true},
		{TableFriends, true},
		{TableUsers, true},
		{"ledger_entries", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			assert.Equal(t, tt.want, KnownTable(tt.table))
		})
	}
}
