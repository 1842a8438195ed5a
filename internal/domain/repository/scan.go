package repository

import (
	"context"

	"heyday/internal/domain/entity"
)

// ScanRepository defines the interface for scan session, artifact, and
// processing job data operations.
type ScanRepository interface {
	// CreateSession inserts a new scan session.
	CreateSession(ctx context.Context, session *entity.ScanSession) error
	// FindSessionByID retrieves a session with its artifacts and jobs.
	// Returns ErrSessionNotFound when no row exists.
	FindSessionByID(ctx context.Context, id string) (*entity.ScanSession, error)
	// FindSessionsByUser retrieves a user's sessions, newest first.
	FindSessionsByUser(ctx context.Context, userID string) ([]*entity.ScanSession, error)
	// UpdateSessionStatus persists status and message only.
	UpdateSessionStatus(ctx context.Context, id string, status, message string) error
	// FindArtifactByToken retrieves an artifact by its upload token, or
	// nil when none exists.
	FindArtifactByToken(ctx context.Context, token string) (*entity.ScanArtifact, error)
	// SaveArtifact inserts the artifact or updates the existing row with
	// the same upload token.
	SaveArtifact(ctx context.Context, artifact *entity.ScanArtifact) error
	// FindJobBySession retrieves the most recent processing job for a
	// session, or nil when none exists.
	FindJobBySession(ctx context.Context, sessionID string) (*entity.ProcessingJob, error)
	// CreateJob inserts a new processing job.
	CreateJob(ctx context.Context, job *entity.ProcessingJob) error
	// UpdateJob saves job status changes.
	UpdateJob(ctx context.Context, job *entity.ProcessingJob) error
}
