package transcribe

import "fmt"

// FileNotFoundError reports a missing input path. Fatal, no fallback.
type FileNotFoundError struct {
	Path string `json:"path"`
	Err  error  `json:"-"`
}

// Error formats the missing path for logs and UI.
func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("input file not found: %s", e.Path)
}

// Unwrap exposes the underlying error for errors.Is / errors.As.
func (e *FileNotFoundError) Unwrap() error {
	return e.Err
}

// ConversionError reports a failed waveform conversion. Fatal on the local
// backend path; a conversion failure is distinct from backend unavailability
// and never falls through to remote or placeholder.
type ConversionError struct {
	CommandLog CommandLog `json:"commandLog"`
	Err        error      `json:"-"`
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf(
		"audio conversion failed (cmd=%s exit=%d)",
		e.CommandLog.Command,
		e.CommandLog.ExitCode,
	)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// LocalBackendError reports a discovered local executable that errored or
// produced no output. Surfaced to the caller, never downgraded to the
// placeholder path.
type LocalBackendError struct {
	Message    string     `json:"message"`
	CommandLog CommandLog `json:"commandLog"`
	Err        error      `json:"-"`
}

func (e *LocalBackendError) Error() string {
	if e.CommandLog.Command == "" {
		return e.Message
	}
	return fmt.Sprintf(
		"%s (cmd=%s exit=%d)",
		e.Message,
		e.CommandLog.Command,
		e.CommandLog.ExitCode,
	)
}

func (e *LocalBackendError) Unwrap() error {
	return e.Err
}

// RemoteBackendError reports a failed remote call. The orchestrator absorbs
// it with a warning log and falls through to the placeholder.
type RemoteBackendError struct {
	Status  int    `json:"status,omitempty"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *RemoteBackendError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("remote transcription failed (status=%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("remote transcription failed: %s", e.Message)
}

func (e *RemoteBackendError) Unwrap() error {
	return e.Err
}
