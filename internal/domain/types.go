package domain

// JobStatus tracks each orchestration stage for a single transcription job.
type JobStatus string

const (
	JobStatusIdle         JobStatus = "idle"
	JobStatusValidating   JobStatus = "validating"
	JobStatusSelecting    JobStatus = "selecting"
	JobStatusConverting   JobStatus = "converting"
	JobStatusTranscribing JobStatus = "transcribing"
	JobStatusFinalizing   JobStatus = "finalizing"
	JobStatusDone         JobStatus = "done"
	JobStatusFailed       JobStatus = "failed"
	JobStatusCancelled    JobStatus = "cancelled"
)

// Settings contains user-selectable runtime configuration.
type Settings struct {
	Model          string `json:"model"`
	WhisperPath    string `json:"whisperPath,omitempty"`
	OutputDir      string `json:"outputDir"`
	TempDir        string `json:"tempDir,omitempty"`
	Timestamps     bool   `json:"timestamps"`
	Format         string `json:"format"`
	KeepArtifacts  bool   `json:"keepArtifacts"`
	RemoteEnabled  bool   `json:"remoteEnabled"`
	RemoteEndpoint string `json:"remoteEndpoint,omitempty"`
}

// TranscribeOptions is the per-request options shape shared by CLI and GUI.
type TranscribeOptions struct {
	Timestamps bool   `json:"timestamps"`
	Format     string `json:"format"`
}

// Job stores the current job identity and lifecycle status.
type Job struct {
	ID     string    `json:"id"`
	Status JobStatus `json:"status"`
}
