package constant

// ScanStatus defines the possible states of a room-scan session.
type ScanStatus string

const (
	// ScanCreated represents a session registered but with no uploads yet.
	ScanCreated ScanStatus = "created"
	// ScanUploading represents a session with at least one artifact chunk received.
	ScanUploading ScanStatus = "uploading"
	// ScanProcessing represents a session with a processing job underway.
	ScanProcessing ScanStatus = "processing"
	// ScanReady represents a session whose processing finished successfully.
	ScanReady ScanStatus = "ready"
	// ScanFailed represents a session whose upload or processing failed.
	ScanFailed ScanStatus = "failed"
)

func (s ScanStatus) String() string {
	return string(s)
}

// ArtifactState defines the possible states of an uploaded scan artifact.
type ArtifactState string

const (
	// ArtifactReceived represents an artifact with chunks still arriving.
	ArtifactReceived ArtifactState = "received"
	// ArtifactComplete represents a fully assembled, verified artifact.
	ArtifactComplete ArtifactState = "complete"
	// ArtifactCorrupt represents an artifact that failed size or checksum verification.
	ArtifactCorrupt ArtifactState = "corrupt"
)

func (s ArtifactState) String() string {
	return string(s)
}

// JobStatus defines the possible states of a scan processing job.
type JobStatus string

const (
	// JobPending represents a job queued but not started.
	JobPending JobStatus = "pending"
	// JobRunning represents a job currently executing.
	JobRunning JobStatus = "running"
	// JobComplete represents a job that finished successfully.
	JobComplete JobStatus = "complete"
	// JobFailed represents a job that ended with an error.
	JobFailed JobStatus = "failed"
)

func (s JobStatus) String() string {
	return string(s)
}
