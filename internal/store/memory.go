package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/resumi/job-discovery/internal/job"
	"github.com/resumi/job-discovery/internal/profile"
)

type memoryJob struct {
	job       job.Job
	expiresAt time.Time
}

type memorySession struct {
	session   Session
	expiresAt time.Time
}

// MemoryStore is a process-local JobCache and SessionStore. It is the default
// when no redis address is configured.
type MemoryStore struct {
	mu       sync.Mutex
	jobs     map[string]memoryJob
	sessions map[string]memorySession

	// now is swappable so expiry can be tested without sleeping.
	now func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		jobs:     make(map[string]memoryJob),
		sessions: make(map[string]memorySession),
		now:      time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, jobs []job.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	expires := s.now().Add(JobTTL)
	for _, j := range jobs {
		s.jobs[j.ID] = memoryJob{job: j, expiresAt: expires}
	}
	return nil
}

func (s *MemoryStore) Jobs(_ context.Context) ([]job.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	var out []job.Job
	for id, entry := range s.jobs {
		if now.After(entry.expiresAt) {
			delete(s.jobs, id)
			continue
		}
		out = append(out, entry.job)
	}
	return out, nil
}

func (s *MemoryStore) Create(_ context.Context, p *profile.Profile) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := Session{
		ID:        uuid.NewString(),
		Profile:   p,
		CreatedAt: s.now().UTC(),
	}
	s.sessions[sess.ID] = memorySession{session: sess, expiresAt: s.now().Add(SessionTTL)}
	return &sess, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[id]
	if !ok || s.now().After(entry.expiresAt) {
		delete(s.sessions, id)
		return nil, ErrSessionNotFound
	}
	entry.expiresAt = s.now().Add(SessionTTL)
	s.sessions[id] = entry
	sess := entry.session
	return &sess, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
