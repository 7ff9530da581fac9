package workspace_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-summary/internal/workspace"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestStore_CreateGetDelete(t *testing.T) {
	t.Parallel()

	s := workspace.NewStore()
	ws := s.Create()

	got, err := s.Get(ws.ID())
	if err != nil || got != ws {
		t.Fatalf("Get() = %p, %v; want %p", got, err, ws)
	}

	s.Delete(ws.ID())
	if _, err := s.Get(ws.ID()); !errors.Is(err, workspace.ErrNotFound) {
		t.Errorf("Get after Delete error = %v, want ErrNotFound", err)
	}
}

func TestStore_GetRejectsMalformedID(t *testing.T) {
	t.Parallel()

	s := workspace.NewStore()
	for _, id := range []string{"", "abc", "../../etc"} {
		if _, err := s.Get(id); !errors.Is(err, workspace.ErrNotFound) {
			t.Errorf("Get(%q) error = %v, want ErrNotFound", id, err)
		}
	}
}

func TestStore_GetOrCreate(t *testing.T) {
	t.Parallel()

	s := workspace.NewStore()
	a := s.GetOrCreate("unknown")
	b := s.GetOrCreate(a.ID())

	if a != b {
		t.Error("GetOrCreate(existing id) returned a different workspace")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestStore_Sweep(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)}
	s := workspace.NewStore(workspace.WithClock(clock.Now))

	idle := s.Create()
	idle.LoadTranscript(testTranscript("text"))
	idle.SetInstruction("bullets")
	req, err := idle.BeginGeneration(context.Background())
	if err != nil {
		t.Fatalf("BeginGeneration: %v", err)
	}

	clock.Advance(20 * time.Minute)
	active := s.Create()
	clock.Advance(20 * time.Minute)
	if _, err := s.Get(active.ID()); err != nil {
		t.Fatalf("Get(active): %v", err)
	}

	if n := s.Sweep(30 * time.Minute); n != 1 {
		t.Errorf("Sweep() = %d, want 1", n)
	}
	if _, err := s.Get(idle.ID()); !errors.Is(err, workspace.ErrNotFound) {
		t.Error("idle workspace survived sweep")
	}
	if _, err := s.Get(active.ID()); err != nil {
		t.Errorf("active workspace evicted: %v", err)
	}
	if req.Context().Err() == nil {
		t.Error("evicted workspace's generation not cancelled")
	}
}
