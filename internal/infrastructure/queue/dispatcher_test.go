package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hrsuite/hr-backend/internal/core/domain"
)

type stubAuditRepo struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (r *stubAuditRepo) Insert(_ context.Context, event *domain.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	return nil
}

func (r *stubAuditRepo) ListBySubject(_ context.Context, subjectID int, _ int) ([]domain.AuditEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.AuditEvent
	for _, e := range r.events {
		if e.SubjectID == subjectID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *stubAuditRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func TestAuditDispatcher_DeliversEvents(t *testing.T) {
	repo := &stubAuditRepo{}
	d := NewAuditDispatcher(2, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 1; i <= 10; i++ {
		d.Enqueue(domain.AuditEvent{
			Action:    domain.AuditLogin,
			ActorID:   i,
			SubjectID: i,
			Timestamp: time.Now().UTC(),
		})
	}

	deadline := time.After(2 * time.Second)
	for repo.count() < 10 {
		select {
		case <-deadline:
			t.Fatalf("expected 10 events delivered, got %d", repo.count())
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestAuditDispatcher_ShardIsStablePerSubject(t *testing.T) {
	d := NewAuditDispatcher(4, &stubAuditRepo{}, zerolog.Nop())

	for id := 0; id < 100; id++ {
		a := d.shardIndex(id)
		b := d.shardIndex(id)
		if a != b {
			t.Fatalf("shard index not deterministic for subject %d", id)
		}
		if a < 0 || a >= 4 {
			t.Fatalf("shard index out of range: %d", a)
		}
	}
}
