package service

import (
	"context"
	"io"

	"heyday/internal/application/dto"
)

// ScanService defines the interface for room-scan session tracking.
// Artifact payloads are opaque; the service stores bytes and
// bookkeeping, never their internal structure.
type ScanService interface {
	// CreateSession opens a new scan session for the user.
	CreateSession(ctx context.Context, userID string, req dto.CreateScanRequest) (dto.ScanSessionResponse, error)
	// GetSession retrieves one owned session with artifacts and jobs.
	GetSession(ctx context.Context, userID, sessionID string) (dto.ScanSessionResponse, error)
	// ListSessions retrieves the user's sessions, newest first.
	ListSessions(ctx context.Context, userID string) ([]dto.ScanSessionResponse, error)
	// SaveArtifactChunk appends one uploaded chunk and finalizes the
	// artifact when the last chunk lands. A request without chunk fields
	// is a single-part upload and finalizes immediately.
	SaveArtifactChunk(ctx context.Context, userID, sessionID string, req dto.ArtifactChunkRequest, data io.Reader) (dto.UploadArtifactResponse, error)
	// StartProcessing enqueues (or reuses) a processing job and marks
	// the session processing. autoComplete stubs the runner and finishes
	// the job inline.
	StartProcessing(ctx context.Context, userID, sessionID string, autoComplete bool) (dto.StartProcessingResponse, error)
	// CompleteProcessing is the runner callback: it closes the session's
	// current job and moves the session to ready or failed.
	CompleteProcessing(ctx context.Context, sessionID string, ok bool, message string) error
}
