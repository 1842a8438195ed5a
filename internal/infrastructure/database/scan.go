package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"heyday/internal/domain/entity"
	"heyday/internal/domain/repository"
	appErrors "heyday/internal/pkg/errors"
)

type scanRepository struct {
	db *gorm.DB
}

// NewScanRepository creates a new instance of ScanRepository.
func NewScanRepository(db *gorm.DB) repository.ScanRepository {
	return &scanRepository{db: db}
}

// CreateSession inserts a new scan session.
func (r *scanRepository) CreateSession(ctx context.Context, session *entity.ScanSession) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to create scan session for user %s: %w", session.UserID, err)
	}
	return nil
}

// FindSessionByID retrieves a session with its artifacts and jobs.
func (r *scanRepository) FindSessionByID(ctx context.Context, id string) (*entity.ScanSession, error) {
	var session entity.ScanSession
	err := r.db.WithContext(ctx).Preload("Artifacts").Preload("Jobs").
		Where("id = ?", id).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %s", appErrors.ErrSessionNotFound, id)
		}
		return nil, fmt.Errorf("🔴 ERROR: failed to find scan session %s: %w", id, err)
	}
	return &session, nil
}

// FindSessionsByUser retrieves a user's sessions, newest first.
func (r *scanRepository) FindSessionsByUser(ctx context.Context, userID string) ([]*entity.ScanSession, error) {
	var sessions []*entity.ScanSession
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at desc").Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("🔴 ERROR: failed to find scan sessions for user %s: %w", userID, err)
	}
	return sessions, nil
}

// UpdateSessionStatus persists status and message only.
func (r *scanRepository) UpdateSessionStatus(ctx context.Context, id string, status, message string) error {
	err := r.db.WithContext(ctx).Model(&entity.ScanSession{}).Where("id = ?", id).
		Updates(map[string]any{
			"status":  status,
			"message": message,
		}).Error
	if err != nil {
		return fmt.Errorf("🔴 ERROR: failed to update status for scan session %s: %w", id, err)
	}
	return nil
}

// FindArtifactByToken retrieves an artifact by its upload token.
// Returns (nil, nil) when no row exists; the caller decides whether a
// fresh token means a new artifact.
func (r *scanRepository) FindArtifactByToken(ctx context.Context, token string) (*entity.ScanArtifact, error) {
	var artifact entity.ScanArtifact
	if err := r.db.WithContext(ctx).Where("upload_token = ?", token).First(&artifact).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("🔴 ERROR: failed to find artifact by token: %w", err)
	}
	return &artifact, nil
}

// SaveArtifact inserts the artifact or updates the existing row with the
// same upload token.
func (r *scanRepository) SaveArtifact(ctx context.Context, artifact *entity.ScanArtifact) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "upload_token"}},
			UpdateAll: true,
		}).
		Create(artifact).Error
	if err != nil {
		return fmt.Errorf("🔴 ERROR: failed to save artifact for session %s: %w", artifact.SessionID, err)
	}
	return nil
}

// FindJobBySession retrieves the most recent processing job for a session.
func (r *scanRepository) FindJobBySession(ctx context.Context, sessionID string) (*entity.ProcessingJob, error) {
	var job entity.ProcessingJob
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).
		Order("created_at desc").First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("🔴 ERROR: failed to find job for session %s: %w", sessionID, err)
	}
	return &job, nil
}

// CreateJob inserts a new processing job.
func (r *scanRepository) CreateJob(ctx context.Context, job *entity.ProcessingJob) error {
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to create job for session %s: %w", job.SessionID, err)
	}
	return nil
}

// UpdateJob saves job status changes.
func (r *scanRepository) UpdateJob(ctx context.Context, job *entity.ProcessingJob) error {
	if err := r.db.WithContext(ctx).Save(job).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to update job %d: %w", job.ID, err)
	}
	return nil
}
