package dto

import (
	"time"

	"heyday/internal/domain/entity"
)

// CreateScanRequest is the DTO for opening a room-scan session.
type CreateScanRequest struct {
	RoomLabel string `json:"room_label"`
}

// ArtifactChunkRequest is the DTO for one uploaded artifact chunk. The
// binary payload arrives as the multipart "file" part; ChunkIndex and
// TotalChunks are absent for single-part uploads.
type ArtifactChunkRequest struct {
	Kind        string `form:"kind"`
	UploadToken string `form:"upload_token"` // generated server-side when empty
	Checksum    string `form:"checksum"`     // optional sha256 hex of the whole artifact
	ChunkIndex  *int   `form:"chunk_index"`
	TotalChunks *int   `form:"total_chunks"`
	FileName    string `form:"-"` // taken from the multipart header
	ContentType string `form:"-"`
}

// ScanArtifactResponse is the DTO for sending artifact state to the client.
type ScanArtifactResponse struct {
	ID          uint      `json:"id"`
	Kind        string    `json:"kind"`
	UploadToken string    `json:"upload_token"`
	ByteSize    int64     `json:"bytes"`
	Checksum    string    `json:"checksum,omitempty"`
	ContentType string    `json:"content_type,omitempty"`
	State       string    `json:"state"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToScanArtifactResponse converts an entity.ScanArtifact to a ScanArtifactResponse DTO.
func ToScanArtifactResponse(a *entity.ScanArtifact) ScanArtifactResponse {
	return ScanArtifactResponse{
		ID:          a.ID,
		Kind:        a.Kind,
		UploadToken: a.UploadToken,
		ByteSize:    a.ByteSize,
		Checksum:    a.Checksum,
		ContentType: a.ContentType,
		State:       a.GetState().String(),
		CreatedAt:   a.CreatedAt,
	}
}

// UploadArtifactResponse is the DTO returned after an artifact chunk is stored.
type UploadArtifactResponse struct {
	UploadToken string                `json:"upload_token"`
	Completed   bool                  `json:"completed"`
	Artifact    *ScanArtifactResponse `json:"artifact,omitempty"`
}

// ProcessingJobResponse is the DTO for sending job progress to the client.
type ProcessingJobResponse struct {
	ID         uint       `json:"id"`
	Status     string     `json:"status"`
	Message    string     `json:"message,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// ToProcessingJobResponse converts an entity.ProcessingJob to a ProcessingJobResponse DTO.
func ToProcessingJobResponse(j *entity.ProcessingJob) ProcessingJobResponse {
	return ProcessingJobResponse{
		ID:         j.ID,
		Status:     j.GetStatus().String(),
		Message:    j.Message,
		CreatedAt:  j.CreatedAt,
		StartedAt:  j.StartedAt,
		FinishedAt: j.FinishedAt,
	}
}

// StartProcessingRequest is the DTO for kicking off a session's processing job.
type StartProcessingRequest struct {
	AutoComplete bool `json:"auto_complete"` // stub the runner and finish the job inline
}

// StartProcessingResponse is the DTO returned when a processing job is enqueued.
type StartProcessingResponse struct {
	Job     ProcessingJobResponse `json:"job"`
	Session ScanSessionResponse   `json:"session"`
}

// ScanSessionResponse is the DTO for sending a scan session to the client.
type ScanSessionResponse struct {
	ID        string                  `json:"id"`
	RoomLabel string                  `json:"room_label,omitempty"`
	Status    string                  `json:"status"`
	Message   string                  `json:"message,omitempty"`
	Artifacts []ScanArtifactResponse  `json:"artifacts"`
	Jobs      []ProcessingJobResponse `json:"jobs"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// ToScanSessionResponse converts an entity.ScanSession to a ScanSessionResponse DTO.
func ToScanSessionResponse(s *entity.ScanSession) ScanSessionResponse {
	artifacts := make([]ScanArtifactResponse, len(s.Artifacts))
	for i := range s.Artifacts {
		artifacts[i] = ToScanArtifactResponse(&s.Artifacts[i])
	}
	jobs := make([]ProcessingJobResponse, len(s.Jobs))
	for i := range s.Jobs {
		jobs[i] = ToProcessingJobResponse(&s.Jobs[i])
	}
	return ScanSessionResponse{
		ID:        s.ID,
		RoomLabel: s.RoomLabel,
		Status:    s.GetStatus().String(),
		Message:   s.Message,
		Artifacts: artifacts,
		Jobs:      jobs,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// ToScanSessionResponseList converts a slice of entity.ScanSession to ScanSessionResponse DTOs.
func ToScanSessionResponseList(sessions []*entity.ScanSession) []ScanSessionResponse {
	list := make([]ScanSessionResponse, len(sessions))
	for i, s := range sessions {
		list[i] = ToScanSessionResponse(s)
	}
	return list
}
