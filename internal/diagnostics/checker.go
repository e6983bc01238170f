package diagnostics

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/LM-Towner/audioTranscriber/internal/domain"
	"github.com/LM-Towner/audioTranscriber/internal/transcribe"
)

// Checker validates transcription backends and required filesystem paths.
type Checker struct {
	lookPath   func(string) (string, error)
	getenv     func(string) string
	mkdirAll   func(string, os.FileMode) error
	createTemp func(string, string) (*os.File, error)
	remove     func(string) error
	discover   func(context.Context, string, []string) transcribe.Availability
	probe      func(context.Context, string, string) transcribe.Availability
}

// NewChecker builds a checker using real OS dependencies.
func NewChecker() *Checker {
	return &Checker{
		lookPath:   exec.LookPath,
		getenv:     os.Getenv,
		mkdirAll:   os.MkdirAll,
		createTemp: os.CreateTemp,
		remove:     os.Remove,
		discover:   transcribe.DiscoverBackend,
		probe:      transcribe.ProbeEndpoint,
	}
}

// Run executes all startup checks and returns a combined report. Missing
// backends are warnings since every job still completes through a fallback
// path; unusable directories are failures because nothing can be written.
func (c *Checker) Run(ctx context.Context, settings domain.Settings) domain.DiagnosticReport {
	tempDir := strings.TrimSpace(settings.TempDir)
	if tempDir == "" {
		tempDir = transcribe.DefaultTempDir()
	}

	items := []domain.DiagnosticItem{
		c.checkLocalBackend(ctx, settings),
		c.checkTool("ffmpeg"),
		c.checkRemote(ctx, settings),
		c.checkWritableDir("temp_dir", "Temp directory", tempDir),
		c.checkWritableDir("output_dir", "Output directory", settings.OutputDir),
	}

	hasFailures := false
	hasWarnings := false
	for _, item := range items {
		switch item.Status {
		case domain.DiagnosticStatusFail:
			hasFailures = true
		case domain.DiagnosticStatusWarn:
			hasWarnings = true
		}
	}

	return domain.DiagnosticReport{
		GeneratedAt: time.Now().UTC(),
		HasFailures: hasFailures,
		HasWarnings: hasWarnings,
		Items:       items,
	}
}

// checkLocalBackend probes for a local whisper executable.
func (c *Checker) checkLocalBackend(ctx context.Context, settings domain.Settings) domain.DiagnosticItem {
	item := domain.DiagnosticItem{
		ID:   "local_backend",
		Name: "Whisper executable",
	}

	avail := c.discover(ctx, settings.WhisperPath, transcribe.DefaultSearchPaths())
	if !avail.Available {
		item.Status = domain.DiagnosticStatusWarn
		item.Message = "No local whisper executable found."
		item.Hint = "Install openai-whisper or set its path in settings. Jobs fall back to the remote API or a placeholder until then."
		return item
	}

	item.Status = domain.DiagnosticStatusPass
	item.Message = fmt.Sprintf("Found at %s", avail.Path)
	return item
}

// checkTool verifies a helper CLI executable is on PATH.
func (c *Checker) checkTool(name string) domain.DiagnosticItem {
	path, err := c.lookPath(name)
	if err != nil {
		return domain.DiagnosticItem{
			ID:      "tool_" + name,
			Name:    name,
			Status:  domain.DiagnosticStatusWarn,
			Message: fmt.Sprintf("Tool not found in PATH: %s", name),
			Hint:    "Install it to transcribe inputs that need audio conversion. WAV files work without it.",
		}
	}

	return domain.DiagnosticItem{
		ID:      "tool_" + name,
		Name:    name,
		Status:  domain.DiagnosticStatusPass,
		Message: fmt.Sprintf("Found at %s", path),
	}
}

// checkRemote reports remote endpoint reachability when the user enabled it.
// The credential comes from the environment and is never persisted.
func (c *Checker) checkRemote(ctx context.Context, settings domain.Settings) domain.DiagnosticItem {
	item := domain.DiagnosticItem{
		ID:   "remote_api",
		Name: "Remote API",
	}

	if !settings.RemoteEnabled {
		item.Status = domain.DiagnosticStatusPass
		item.Message = "Remote transcription is disabled."
		return item
	}

	endpoint := strings.TrimSpace(settings.RemoteEndpoint)
	if endpoint == "" {
		endpoint = transcribe.DefaultRemoteEndpoint
	}

	avail := c.probe(ctx, endpoint, c.getenv("OPENAI_API_KEY"))
	if !avail.Available {
		item.Status = domain.DiagnosticStatusWarn
		item.Message = fmt.Sprintf("Remote endpoint unavailable: %s", avail.Reason)
		item.Hint = "Export OPENAI_API_KEY and check network access. Jobs fall back to a placeholder until then."
		return item
	}

	item.Status = domain.DiagnosticStatusPass
	item.Message = fmt.Sprintf("Reachable at %s", endpoint)
	return item
}

// checkWritableDir validates directory existence and write access.
func (c *Checker) checkWritableDir(id, name, dir string) domain.DiagnosticItem {
	item := domain.DiagnosticItem{
		ID:   id,
		Name: name,
	}

	if strings.TrimSpace(dir) == "" {
		item.Status = domain.DiagnosticStatusFail
		item.Message = fmt.Sprintf("%s is not set.", name)
		item.Hint = "Set a directory where files can be written."
		return item
	}

	if err := c.mkdirAll(dir, 0o755); err != nil {
		item.Status = domain.DiagnosticStatusFail
		item.Message = fmt.Sprintf("Cannot create directory: %s", dir)
		item.Hint = "Choose a writable location or adjust filesystem permissions."
		return item
	}

	tmpFile, err := c.createTemp(dir, ".write-check-*")
	if err != nil {
		item.Status = domain.DiagnosticStatusFail
		item.Message = fmt.Sprintf("Directory is not writable: %s", dir)
		item.Hint = "Choose a writable directory."
		return item
	}

	tmpPath := tmpFile.Name()
	_ = tmpFile.Close()
	_ = c.remove(tmpPath)

	item.Status = domain.DiagnosticStatusPass
	item.Message = fmt.Sprintf("Writable directory: %s", dir)
	return item
}

// NewCheckerForTests creates checker with injectable dependencies.
func NewCheckerForTests(
	lookPath func(string) (string, error),
	getenv func(string) string,
	mkdirAll func(string, os.FileMode) error,
	createTemp func(string, string) (*os.File, error),
	remove func(string) error,
	discover func(context.Context, string, []string) transcribe.Availability,
	probe func(context.Context, string, string) transcribe.Availability,
) *Checker {
	return &Checker{
		lookPath:   lookPath,
		getenv:     getenv,
		mkdirAll:   mkdirAll,
		createTemp: createTemp,
		remove:     remove,
		discover:   discover,
		probe:      probe,
	}
}
