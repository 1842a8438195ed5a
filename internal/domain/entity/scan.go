package entity

import (
	"time"

	"heyday/internal/domain/constant"
)

// ScanSession tracks one room-scan capture from creation through upload
// and processing. Artifact payloads are opaque blobs; only their
// bookkeeping lives here.
type ScanSession struct {
	ID        string          `gorm:"column:id;primaryKey"`
	UserID    string          `gorm:"column:user_id;index"`
	RoomLabel string          `gorm:"column:room_label"`
	Status    string          `gorm:"column:status"`
	Message   string          `gorm:"column:message"`
	Artifacts []ScanArtifact  `gorm:"foreignKey:SessionID"`
	Jobs      []ProcessingJob `gorm:"foreignKey:SessionID"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

// TableName specifies the table name for the ScanSession entity.
func (ScanSession) TableName() string {
	return "scan_sessions"
}

// GetStatus returns the session status as a constant.ScanStatus type.
func (s *ScanSession) GetStatus() constant.ScanStatus {
	return constant.ScanStatus(s.Status)
}

// SetStatus sets the session status.
func (s *ScanSession) SetStatus(status constant.ScanStatus) {
	s.Status = status.String()
}

// ScanArtifact is the bookkeeping row for one uploaded file of a scan
// session (room geometry JSON, texture, video). Chunks append to a
// .part file; the row turns complete when the final chunk lands and
// size and checksum verify.
type ScanArtifact struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	SessionID   string    `gorm:"column:session_id;index"`
	Kind        string    `gorm:"column:kind"`
	UploadToken string    `gorm:"column:upload_token;uniqueIndex"`
	Path        string    `gorm:"column:path"`
	ByteSize    int64     `gorm:"column:byte_size"`
	Checksum    string    `gorm:"column:checksum"`
	ContentType string    `gorm:"column:content_type"`
	State       string    `gorm:"column:state"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

// TableName specifies the table name for the ScanArtifact entity.
func (ScanArtifact) TableName() string {
	return "scan_artifacts"
}

// GetState returns the artifact state as a constant.ArtifactState type.
func (a *ScanArtifact) GetState() constant.ArtifactState {
	return constant.ArtifactState(a.State)
}

// SetState sets the artifact state.
func (a *ScanArtifact) SetState(state constant.ArtifactState) {
	a.State = state.String()
}

// ProcessingJob tracks one processing pass over a scan session.
type ProcessingJob struct {
	ID         uint       `gorm:"primaryKey;autoIncrement"`
	SessionID  string     `gorm:"column:session_id;index"`
	Status     string     `gorm:"column:status"`
	Message    string     `gorm:"column:message"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
	StartedAt  *time.Time `gorm:"column:started_at"`
	FinishedAt *time.Time `gorm:"column:finished_at"`
}

// TableName specifies the table name for the ProcessingJob entity.
func (ProcessingJob) TableName() string {
	return "processing_jobs"
}

// GetStatus returns the job status as a constant.JobStatus type.
func (j *ProcessingJob) GetStatus() constant.JobStatus {
	return constant.JobStatus(j.Status)
}

// SetStatus sets the job status.
func (j *ProcessingJob) SetStatus(status constant.JobStatus) {
	j.Status = status.String()
}
