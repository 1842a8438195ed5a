package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"heyday/internal/application/dto"
	"heyday/internal/domain/constant"
	"heyday/internal/domain/entity"
	"heyday/internal/domain/repository"
	appErrors "heyday/internal/pkg/errors"
	"heyday/internal/pkg/logger"
)

// stubbedProcessingMessage closes auto-completed jobs; no scan runner
// is deployed alongside this service yet.
const stubbedProcessingMessage = "Processing stubbed on this environment."

type scanService struct {
	scanRepo   repository.ScanRepository
	storageDir string
	now        func() time.Time
	log        logger.Logger
}

// NewScanService creates a new instance of ScanService implementation.
// storageDir is the root under which artifact files are written, one
// subdirectory per session.
func NewScanService(scanRepo repository.ScanRepository, storageDir string, now func() time.Time, log logger.Logger) ScanService {
	return &scanService{
		scanRepo:   scanRepo,
		storageDir: storageDir,
		now:        now,
		log:        log,
	}
}

// CreateSession opens a new scan session for the user.
func (s *scanService) CreateSession(ctx context.Context, userID string, req dto.CreateScanRequest) (dto.ScanSessionResponse, error) {
	session := &entity.ScanSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		RoomLabel: strings.TrimSpace(req.RoomLabel),
	}
	session.SetStatus(constant.ScanCreated)

	if err := s.scanRepo.CreateSession(ctx, session); err != nil {
		s.log.Error(fmt.Sprintf("Failed to create scan session for user %s", userID), err)
		return dto.ScanSessionResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	s.log.Info(fmt.Sprintf("Created scan session %s for user %s", session.ID, userID))
	return dto.ToScanSessionResponse(session), nil
}

// GetSession retrieves one owned session with artifacts and jobs.
func (s *scanService) GetSession(ctx context.Context, userID, sessionID string) (dto.ScanSessionResponse, error) {
	session, err := s.loadOwnedSession(ctx, userID, sessionID)
	if err != nil {
		return dto.ScanSessionResponse{}, err
	}
	return dto.ToScanSessionResponse(session), nil
}

// ListSessions retrieves the user's sessions, newest first.
func (s *scanService) ListSessions(ctx context.Context, userID string) ([]dto.ScanSessionResponse, error) {
	sessions, err := s.scanRepo.FindSessionsByUser(ctx, userID)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to list scan sessions for user %s", userID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return dto.ToScanSessionResponseList(sessions), nil
}

// SaveArtifactChunk appends one uploaded chunk to the artifact's .part
// file and finalizes when the last chunk lands: rename to the final
// name, record size and checksum, and upsert the bookkeeping row.
func (s *scanService) SaveArtifactChunk(ctx context.Context, userID, sessionID string, req dto.ArtifactChunkRequest, data io.Reader) (dto.UploadArtifactResponse, error) {
	session, err := s.loadOwnedSession(ctx, userID, sessionID)
	if err != nil {
		return dto.UploadArtifactResponse{}, err
	}
	if err := validateChunkRequest(req); err != nil {
		return dto.UploadArtifactResponse{}, err
	}

	token := req.UploadToken
	if token == "" {
		token = uuid.NewString()
	}

	// The first chunk of any artifact moves the session out of created.
	if session.GetStatus() == constant.ScanCreated {
		if err := s.scanRepo.UpdateSessionStatus(ctx, session.ID, constant.ScanUploading.String(), ""); err != nil {
			s.log.Error(fmt.Sprintf("Failed to mark session %s uploading", session.ID), err)
			return dto.UploadArtifactResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
		}
	}

	dir := filepath.Join(s.storageDir, session.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.log.Error(fmt.Sprintf("Failed to create artifact directory for session %s", session.ID), err)
		return dto.UploadArtifactResponse{}, fmt.Errorf("%w: %v", appErrors.ErrInternalServer, err)
	}

	partPath := filepath.Join(dir, token+".part")

	// Chunk zero restarts the upload; a retried first chunk must not
	// append onto a previous attempt's bytes.
	if req.ChunkIndex == nil || *req.ChunkIndex == 0 {
		if err := os.Remove(partPath); err != nil && !os.IsNotExist(err) {
			s.log.Error(fmt.Sprintf("Failed to reset partial upload %s", partPath), err)
			return dto.UploadArtifactResponse{}, fmt.Errorf("%w: %v", appErrors.ErrInternalServer, err)
		}
	}

	if err := appendChunk(partPath, data); err != nil {
		s.log.Error(fmt.Sprintf("Failed to write artifact chunk for session %s", session.ID), err)
		return dto.UploadArtifactResponse{}, fmt.Errorf("%w: %v", appErrors.ErrInternalServer, err)
	}

	isFinal := req.TotalChunks == nil ||
		(req.ChunkIndex != nil && *req.ChunkIndex == *req.TotalChunks-1)
	if !isFinal {
		return dto.UploadArtifactResponse{UploadToken: token, Completed: false}, nil
	}

	artifact, err := s.finalizeArtifact(ctx, session, req, token, partPath, dir)
	if err != nil {
		return dto.UploadArtifactResponse{}, err
	}

	res := dto.ToScanArtifactResponse(artifact)
	return dto.UploadArtifactResponse{UploadToken: token, Completed: true, Artifact: &res}, nil
}

// finalizeArtifact promotes the assembled .part file to its final name
// and persists the artifact row. A checksum the client supplied must
// match the assembled bytes; a mismatch marks the row corrupt and
// fails the upload.
func (s *scanService) finalizeArtifact(ctx context.Context, session *entity.ScanSession, req dto.ArtifactChunkRequest, token, partPath, dir string) (*entity.ScanArtifact, error) {
	ext := filepath.Ext(req.FileName)
	if ext == "" {
		ext = ".bin"
	}
	finalPath := filepath.Join(dir, token+ext)

	if err := os.Remove(finalPath); err != nil && !os.IsNotExist(err) {
		s.log.Error(fmt.Sprintf("Failed to replace artifact file %s", finalPath), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrInternalServer, err)
	}
	if err := os.Rename(partPath, finalPath); err != nil {
		s.log.Error(fmt.Sprintf("Failed to finalize artifact file %s", finalPath), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrInternalServer, err)
	}

	size, digest, err := statAndDigest(finalPath)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to read back artifact file %s", finalPath), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrInternalServer, err)
	}

	artifact, err := s.scanRepo.FindArtifactByToken(ctx, token)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to look up artifact %s", token), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	if artifact == nil {
		artifact = &entity.ScanArtifact{SessionID: session.ID, UploadToken: token}
	}
	artifact.Kind = req.Kind
	artifact.Path = filepath.Join(session.ID, token+ext)
	artifact.ByteSize = size
	artifact.ContentType = req.ContentType
	artifact.Checksum = digest

	if req.Checksum != "" && !strings.EqualFold(req.Checksum, digest) {
		artifact.SetState(constant.ArtifactCorrupt)
		if err := s.scanRepo.SaveArtifact(ctx, artifact); err != nil {
			s.log.Error(fmt.Sprintf("Failed to persist corrupt artifact %s", token), err)
			return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
		}
		s.log.Warn(fmt.Sprintf("Artifact %s failed checksum verification", token))
		return nil, fmt.Errorf("%w: checksum mismatch for upload %s", appErrors.ErrUploadCorrupt, token)
	}

	artifact.SetState(constant.ArtifactComplete)
	if err := s.scanRepo.SaveArtifact(ctx, artifact); err != nil {
		s.log.Error(fmt.Sprintf("Failed to persist artifact %s", token), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	s.log.Info(fmt.Sprintf("Stored artifact %s for session %s (%d bytes)", token, session.ID, size))
	return artifact, nil
}

// StartProcessing enqueues a processing job for the session. An
// unfinished job is reused rather than duplicated.
func (s *scanService) StartProcessing(ctx context.Context, userID, sessionID string, autoComplete bool) (dto.StartProcessingResponse, error) {
	session, err := s.loadOwnedSession(ctx, userID, sessionID)
	if err != nil {
		return dto.StartProcessingResponse{}, err
	}

	job, err := s.scanRepo.FindJobBySession(ctx, session.ID)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to look up processing job for session %s", session.ID), err)
		return dto.StartProcessingResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	if job == nil || job.GetStatus() == constant.JobComplete || job.GetStatus() == constant.JobFailed {
		job = &entity.ProcessingJob{SessionID: session.ID}
		job.SetStatus(constant.JobPending)
		if err := s.scanRepo.CreateJob(ctx, job); err != nil {
			s.log.Error(fmt.Sprintf("Failed to create processing job for session %s", session.ID), err)
			return dto.StartProcessingResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
		}
	}

	if err := s.scanRepo.UpdateSessionStatus(ctx, session.ID, constant.ScanProcessing.String(), ""); err != nil {
		s.log.Error(fmt.Sprintf("Failed to mark session %s processing", session.ID), err)
		return dto.StartProcessingResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	session.SetStatus(constant.ScanProcessing)
	session.Message = ""

	if autoComplete {
		startedAt := s.now()
		job.StartedAt = &startedAt
		job.SetStatus(constant.JobRunning)
		if err := s.scanRepo.UpdateJob(ctx, job); err != nil {
			s.log.Error(fmt.Sprintf("Failed to start processing job for session %s", session.ID), err)
			return dto.StartProcessingResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
		}
		if err := s.CompleteProcessing(ctx, session.ID, true, stubbedProcessingMessage); err != nil {
			return dto.StartProcessingResponse{}, err
		}
		// Reload both rows so the response reflects the stubbed run.
		if job, err = s.scanRepo.FindJobBySession(ctx, session.ID); err != nil {
			s.log.Error(fmt.Sprintf("Failed to reload processing job for session %s", session.ID), err)
			return dto.StartProcessingResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
		}
		if session, err = s.scanRepo.FindSessionByID(ctx, session.ID); err != nil {
			s.log.Error(fmt.Sprintf("Failed to reload session %s", session.ID), err)
			return dto.StartProcessingResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
		}
	}

	s.log.Info(fmt.Sprintf("Processing job %d for session %s is %s", job.ID, session.ID, job.Status))
	return dto.StartProcessingResponse{
		Job:     dto.ToProcessingJobResponse(job),
		Session: dto.ToScanSessionResponse(session),
	}, nil
}

// CompleteProcessing closes the session's current job and moves the
// session to ready or failed.
func (s *scanService) CompleteProcessing(ctx context.Context, sessionID string, ok bool, message string) error {
	job, err := s.scanRepo.FindJobBySession(ctx, sessionID)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to look up processing job for session %s", sessionID), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	if job == nil {
		return fmt.Errorf("%w: no processing job for session %s", appErrors.ErrInvalidArgument, sessionID)
	}

	finishedAt := s.now()
	if job.StartedAt == nil {
		job.StartedAt = &finishedAt
	}
	job.FinishedAt = &finishedAt
	job.Message = message
	sessionStatus := constant.ScanReady
	sessionMessage := ""
	if ok {
		job.SetStatus(constant.JobComplete)
	} else {
		job.SetStatus(constant.JobFailed)
		sessionStatus = constant.ScanFailed
		sessionMessage = message
	}

	if err := s.scanRepo.UpdateJob(ctx, job); err != nil {
		s.log.Error(fmt.Sprintf("Failed to close processing job %d", job.ID), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	if err := s.scanRepo.UpdateSessionStatus(ctx, sessionID, sessionStatus.String(), sessionMessage); err != nil {
		s.log.Error(fmt.Sprintf("Failed to close session %s", sessionID), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	s.log.Info(fmt.Sprintf("Session %s finished processing: %s", sessionID, sessionStatus))
	return nil
}

// loadOwnedSession fetches a session and checks it belongs to userID.
func (s *scanService) loadOwnedSession(ctx context.Context, userID, sessionID string) (*entity.ScanSession, error) {
	session, err := s.scanRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, appErrors.ErrSessionNotFound) {
			return nil, err
		}
		s.log.Error(fmt.Sprintf("Failed to load scan session %s", sessionID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	if session.UserID != userID {
		return nil, appErrors.ErrForbidden
	}
	return session, nil
}

func validateChunkRequest(req dto.ArtifactChunkRequest) error {
	if strings.TrimSpace(req.Kind) == "" {
		return fmt.Errorf("%w: artifact kind is required", appErrors.ErrInvalidArgument)
	}
	if req.ChunkIndex != nil && *req.ChunkIndex < 0 {
		return fmt.Errorf("%w: chunk_index must not be negative", appErrors.ErrInvalidArgument)
	}
	if req.TotalChunks != nil {
		if *req.TotalChunks < 1 {
			return fmt.Errorf("%w: total_chunks must be at least 1", appErrors.ErrInvalidArgument)
		}
		if req.ChunkIndex == nil {
			return fmt.Errorf("%w: chunk_index is required with total_chunks", appErrors.ErrInvalidArgument)
		}
		if *req.ChunkIndex >= *req.TotalChunks {
			return fmt.Errorf("%w: chunk_index out of range", appErrors.ErrInvalidArgument)
		}
	}
	return nil
}

func appendChunk(path string, data io.Reader) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func statAndDigest(path string) (int64, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, "", err
	}
	defer f.Close()

	h := sha256.New()
	size, err := io.Copy(h, f)
	if err != nil {
		return 0, "", err
	}
	return size, hex.EncodeToString(h.Sum(nil)), nil
}
