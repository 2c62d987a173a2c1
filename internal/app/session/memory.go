package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"papochat/internal/pkg/logx"
)

// MemoryStore keeps sessions in a map. Expired entries are dropped lazily on Get and
// by a background sweep.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration

	// now is replaced in tests.
	now func() time.Time

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	logger zerolog.Logger
}

// NewMemoryStore creates a MemoryStore. When cleanupInterval is positive a goroutine sweeps
// expired sessions at that interval until Close is called.
func NewMemoryStore(ttl, cleanupInterval time.Duration) *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
		stopCh:   make(chan struct{}),
		logger:   logx.Component("session.memory"),
	}

	if cleanupInterval > 0 {
		s.wg.Add(1)
		go s.runCleanup(cleanupInterval)
	}

	return s
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}

	if !sess.ExpiresAt.After(s.now()) {
		delete(s.sessions, id)
		return nil, ErrNotFound
	}

	return sess.clone(), nil
}

func (s *MemoryStore) Save(ctx context.Context, sess *Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess.ExpiresAt = s.now().Add(s.ttl)
	s.sessions[sess.ID] = sess.clone()

	return nil
}

func (s *MemoryStore) Touch(ctx context.Context, id string) (time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return time.Time{}, ErrNotFound
	}

	now := s.now()
	if !sess.ExpiresAt.After(now) {
		delete(s.sessions, id)
		return time.Time{}, ErrNotFound
	}

	sess.ExpiresAt = now.Add(s.ttl)
	return sess.ExpiresAt, nil
}

func (s *MemoryStore) Destroy(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()

	return nil
}

// Len returns the number of stored sessions, expired ones included until swept.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// CleanupExpired removes every expired session and returns how many were removed.
func (s *MemoryStore) CleanupExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if !sess.ExpiresAt.After(now) {
			delete(s.sessions, id)
			removed++
		}
	}

	return removed
}

func (s *MemoryStore) runCleanup(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := s.CleanupExpired(); removed > 0 {
				s.logger.Debug().Int("removed", removed).Msg("Expired sessions swept.")
			}

		case <-s.stopCh:
			s.logger.Info().Msg("Session cleanup worker stopped.")
			return
		}
	}
}

// Close stops the cleanup worker. It is safe to call more than once.
func (s *MemoryStore) Close() error {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
	s.wg.Wait()
	return nil
}
