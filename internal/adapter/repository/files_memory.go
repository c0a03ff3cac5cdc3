package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"resumetuner/internal/domain"
)

// MemoryFileStore keeps uploads in process memory. Entries expire after
// ttl; when maxEntries is positive the oldest entries are evicted to make
// room.
type MemoryFileStore struct {
	mu         sync.Mutex
	files      map[uuid.UUID]domain.StoredFile
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
	log        *logrus.Entry
}

func NewMemoryFileStore(ttl time.Duration, maxEntries int, log *logrus.Entry) *MemoryFileStore {
	if log == nil {
		log = logrus.WithField("component", "file_store")
	}
	return &MemoryFileStore{
		files:      map[uuid.UUID]domain.StoredFile{},
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
		log:        log,
	}
}

func (s *MemoryFileStore) Put(ctx context.Context, name, content string) (domain.StoredFile, error) {
	now := s.now()
	f := domain.StoredFile{
		ID:        uuid.New(),
		Name:      name,
		Content:   content,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(now)
	if s.maxEntries > 0 && len(s.files) >= s.maxEntries {
		s.evictOldestLocked(len(s.files) - s.maxEntries + 1)
	}
	s.files[f.ID] = f
	return f, nil
}

func (s *MemoryFileStore) Get(ctx context.Context, id uuid.UUID) (domain.StoredFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.files[id]
	if !ok {
		return domain.StoredFile{}, domain.Fail(domain.ErrNotFound, "file not found", nil)
	}
	if f.Expired(s.now()) {
		delete(s.files, id)
		return domain.StoredFile{}, domain.Fail(domain.ErrNotFound, "file not found", nil)
	}
	return f, nil
}

// Len reports the number of entries, expired ones included until swept.
func (s *MemoryFileStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

// Sweep drops expired entries and returns how many were removed.
func (s *MemoryFileStore) Sweep(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked(s.now()), nil
}

func (s *MemoryFileStore) sweepLocked(now time.Time) int {
	n := 0
	for id, f := range s.files {
		if f.Expired(now) {
			delete(s.files, id)
			n++
		}
	}
	return n
}

func (s *MemoryFileStore) evictOldestLocked(n int) {
	ids := make([]uuid.UUID, 0, len(s.files))
	for id := range s.files {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return s.files[ids[i]].CreatedAt.Before(s.files[ids[j]].CreatedAt)
	})
	for i := 0; i < n && i < len(ids); i++ {
		delete(s.files, ids[i])
	}
	s.log.WithField("evicted", n).Warn("file store full, evicted oldest uploads")
}

// Sweeper is implemented by stores that need periodic expiry.
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// RunSweeper calls s.Sweep every interval until ctx is done.
func RunSweeper(ctx context.Context, s Sweeper, interval time.Duration, log *logrus.Entry) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.Sweep(ctx)
			if err != nil {
				log.WithError(err).Warn("file sweep failed")
				continue
			}
			if n > 0 {
				log.WithField("removed", n).Debug("expired uploads swept")
			}
		}
	}
}
