// Package store holds the engine's two TTL caches: the 24-hour job cache and
// the 1-hour session store. Both exist as explicit state objects passed into
// the engine, with a redis-backed implementation for deployments and an
// in-memory one for tests and single-process runs.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/resumi/job-discovery/internal/job"
	"github.com/resumi/job-discovery/internal/profile"
)

const (
	// JobTTL is how long a collected job stays fresh.
	JobTTL = 24 * time.Hour
	// SessionTTL is the inactivity window after which a session expires.
	SessionTTL = time.Hour
)

// ErrSessionNotFound is returned for unknown or expired sessions.
var ErrSessionNotFound = errors.New("session not found or expired")

// Session binds one extracted Profile to a session id. Re-uploading a resume
// replaces the session's profile wholesale.
type Session struct {
	ID        string           `json:"id"`
	Profile   *profile.Profile `json:"profile"`
	CreatedAt time.Time        `json:"created_at"`
}

// JobCache stores canonical jobs for the cache window. Put replaces records
// with the same id entirely.
type JobCache interface {
	Put(ctx context.Context, jobs []job.Job) error
	Jobs(ctx context.Context) ([]job.Job, error)
}

// SessionStore keys sessions by id with a sliding inactivity TTL; Get
// refreshes the window.
type SessionStore interface {
	Create(ctx context.Context, p *profile.Profile) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}
