package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumetuner/internal/domain"
)

// clock is a settable time source for the store.
type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestStore(ttl time.Duration, max int) (*MemoryFileStore, *clock) {
	c := &clock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	s := NewMemoryFileStore(ttl, max, nil)
	s.now = c.now
	return s, c
}

func TestMemoryFileStorePutGet(t *testing.T) {
	s, _ := newTestStore(time.Hour, 0)
	ctx := context.Background()

	f, err := s.Put(ctx, "resume.txt", "SUMMARY\nx\n")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, f.ID)
	assert.Equal(t, f.CreatedAt.Add(time.Hour), f.ExpiresAt)

	got, err := s.Get(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, f, got)

	_, err = s.Get(ctx, uuid.New())
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestMemoryFileStoreExpiry(t *testing.T) {
	s, c := newTestStore(time.Minute, 0)
	ctx := context.Background()

	f, err := s.Put(ctx, "a.txt", "a")
	require.NoError(t, err)

	c.t = c.t.Add(59 * time.Second)
	_, err = s.Get(ctx, f.ID)
	require.NoError(t, err)

	c.t = c.t.Add(time.Second)
	_, err = s.Get(ctx, f.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, 0, s.Len())
}

func TestMemoryFileStoreSweep(t *testing.T) {
	s, c := newTestStore(time.Minute, 0)
	ctx := context.Background()

	_, _ = s.Put(ctx, "a.txt", "a")
	c.t = c.t.Add(30 * time.Second)
	keep, _ := s.Put(ctx, "b.txt", "b")
	c.t = c.t.Add(45 * time.Second)

	n, err := s.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, s.Len())
	_, err = s.Get(ctx, keep.ID)
	assert.NoError(t, err)
}

func TestMemoryFileStoreEvictsOldest(t *testing.T) {
	s, c := newTestStore(time.Hour, 2)
	ctx := context.Background()

	first, _ := s.Put(ctx, "1.txt", "1")
	c.t = c.t.Add(time.Second)
	second, _ := s.Put(ctx, "2.txt", "2")
	c.t = c.t.Add(time.Second)
	third, _ := s.Put(ctx, "3.txt", "3")

	assert.Equal(t, 2, s.Len())
	_, err := s.Get(ctx, first.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	for _, f := range []domain.StoredFile{second, third} {
		_, err := s.Get(ctx, f.ID)
		assert.NoError(t, err)
	}
}

type countingSweeper struct{ calls chan struct{} }

func (c countingSweeper) Sweep(ctx context.Context) (int, error) {
	c.calls <- struct{}{}
	return 1, nil
}

func TestRunSweeperStopsWithContext(t *testing.T) {
	sw := countingSweeper{calls: make(chan struct{}, 16)}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		RunSweeper(ctx, sw, 5*time.Millisecond, NewMemoryFileStore(time.Hour, 0, nil).log)
		close(done)
	}()

	select {
	case <-sw.calls:
	case <-time.After(time.Second):
		t.Fatal("sweeper never ran")
	}
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
