package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/shoplite/catalog-system/internal/core/domain"
	"github.com/shoplite/catalog-system/internal/core/ports"
)

type collectingAuditService struct {
	mu     sync.Mutex
	events []ports.AuthEventInput
	done   chan struct{}
	want   int
}

func newCollectingAuditService(want int) *collectingAuditService {
	return &collectingAuditService{done: make(chan struct{}), want: want}
}

func (s *collectingAuditService) Process(_ context.Context, event ports.AuthEventInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	if len(s.events) == s.want {
		close(s.done)
	}
	return nil
}

func (s *collectingAuditService) Recent(_ context.Context, _ int) ([]domain.AuthEvent, error) {
	return nil, nil
}

func TestDispatcher_DeliversEvents(t *testing.T) {
	svc := newCollectingAuditService(3)
	d := NewDispatcher(2, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for _, u := range []string{"alice", "bob", "carol"} {
		d.Record(ports.AuthEventInput{Username: u, Action: domain.AuditActionLogin, Result: domain.AuditResultSuccess})
	}

	select {
	case <-svc.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("events not delivered in time")
	}
}

func TestDispatcher_PreservesPerUserOrdering(t *testing.T) {
	const perUser = 20
	svc := newCollectingAuditService(perUser * 2)
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < perUser; i++ {
		detail := string(rune('a' + i))
		d.Record(ports.AuthEventInput{Username: "alice", Detail: detail})
		d.Record(ports.AuthEventInput{Username: "bob", Detail: detail})
	}

	select {
	case <-svc.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("events not delivered in time")
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	last := map[string]rune{}
	for _, e := range svc.events {
		r := rune(e.Detail[0])
		if prev, ok := last[e.Username]; ok && r <= prev {
			t.Fatalf("ordering violated for %s: %q after %q", e.Username, r, prev)
		}
		last[e.Username] = r
	}
}

func TestDispatcher_SameUserSameShard(t *testing.T) {
	d := NewDispatcher(8, newCollectingAuditService(1), zerolog.Nop())

	first := d.shardIndex("alice")
	for i := 0; i < 10; i++ {
		if d.shardIndex("alice") != first {
			t.Fatalf("shard index not deterministic")
		}
	}
}
