package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	goruntime "runtime"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"github.com/LM-Towner/audioTranscriber/internal/config"
	"github.com/LM-Towner/audioTranscriber/internal/diagnostics"
	"github.com/LM-Towner/audioTranscriber/internal/domain"
	"github.com/LM-Towner/audioTranscriber/internal/history"
	"github.com/LM-Towner/audioTranscriber/internal/jobs"
	"github.com/LM-Towner/audioTranscriber/internal/logging"
	"github.com/LM-Towner/audioTranscriber/internal/transcribe"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

var audioDialogFilter = []wailsruntime.FileFilter{
	{
		DisplayName: "Audio files",
		Pattern:     "*.mp3;*.wav;*.m4a;*.webm;*.mp4;*.ogg;*.flac;*.aac",
	},
	{
		DisplayName: "All files",
		Pattern:     "*",
	},
}

// App wires configuration, jobs, the transcription engine, and UI runtime
// callbacks.
type App struct {
	Settings    domain.Settings
	Store       config.Store
	Jobs        *jobs.Manager
	Diagnostics domain.DiagnosticReport
	History     *history.Store
	assets      fs.FS
	checker     *diagnostics.Checker
	logger      zerolog.Logger

	mu          sync.Mutex
	activeJobID string
	cancel      context.CancelFunc
	events      *jobs.EventBus
	runtimeCtx  context.Context

	newOrchestrator func(cfg transcribe.Config) (orchestratorRunner, error)
}

// orchestratorRunner isolates the transcription engine behind an interface.
type orchestratorRunner interface {
	Transcribe(ctx context.Context, inputPath string, opts transcribe.Options) (transcribe.Result, error)
}

// defaultOrchestrator builds the real engine from a config value.
func defaultOrchestrator(cfg transcribe.Config) (orchestratorRunner, error) {
	return transcribe.New(cfg)
}

// New builds the application with persisted settings and startup diagnostics.
func New() (*App, error) {
	return NewWithAssets(nil)
}

// NewWithAssets builds the application and optionally configures embedded frontend assets.
func NewWithAssets(assets fs.FS) (*App, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve user home: %w", err)
	}

	store := config.NewJSONStore(filepath.Join(homeDir, ".audiotranscriber", "settings.json"))
	settings, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	logger := logging.WithComponent("bootstrap")
	checker := diagnostics.NewChecker()
	report := checker.Run(context.Background(), settings)

	app := &App{
		Settings:        settings,
		Store:           store,
		Jobs:            jobs.NewManager(),
		Diagnostics:     report,
		assets:          assets,
		checker:         checker,
		logger:          logger,
		events:          jobs.NewEventBus(1000),
		newOrchestrator: defaultOrchestrator,
	}

	// Recent-list history is best effort; the app works without it.
	if hist, err := history.Open(history.DefaultPath()); err != nil {
		logger.Warn().Err(err).Msg("history store unavailable")
	} else {
		app.History = hist
	}

	return app, nil
}

// Run starts the Wails desktop application and binds backend methods.
func (a *App) Run() error {
	assetOptions := &assetserver.Options{}
	if a.assets != nil {
		assetOptions.Assets = a.assets
	} else {
		assetOptions.Handler = http.FileServer(http.Dir("./frontend"))
	}

	return wails.Run(&options.App{
		Title:       "Audio Transcriber",
		Width:       1180,
		Height:      780,
		AssetServer: assetOptions,
		OnStartup:   a.Startup,
		OnShutdown: func(ctx context.Context) {
			a.mu.Lock()
			a.runtimeCtx = nil
			a.mu.Unlock()
			if a.History != nil {
				_ = a.History.Close()
			}
		},
		Bind: []interface{}{a},
	})
}

// Startup stores Wails runtime context for push events.
func (a *App) Startup(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.runtimeCtx = ctx
}

// GetDiagnostics returns the latest cached diagnostics report.
func (a *App) GetDiagnostics() domain.DiagnosticReport {
	return a.Diagnostics
}

// GetSettings loads and returns the latest persisted settings.
func (a *App) GetSettings() (domain.Settings, error) {
	settings, err := a.Store.Load()
	if err != nil {
		return domain.Settings{}, fmt.Errorf("load settings: %w", err)
	}

	a.mu.Lock()
	a.Settings = settings
	a.mu.Unlock()

	return settings, nil
}

// SaveSettings normalizes and persists settings, then refreshes diagnostics.
func (a *App) SaveSettings(settings domain.Settings) (domain.Settings, error) {
	normalized := normalizeSettings(settings)
	if err := a.Store.Save(normalized); err != nil {
		return domain.Settings{}, fmt.Errorf("save settings: %w", err)
	}

	a.mu.Lock()
	a.Settings = normalized
	if a.checker != nil {
		a.Diagnostics = a.checker.Run(context.Background(), normalized)
	}
	a.mu.Unlock()

	return normalized, nil
}

// GetModelOptions returns the selectable whisper model presets.
func (a *App) GetModelOptions() []domain.ModelOption {
	return domain.ModelCatalog()
}

// PickInputFile opens a native file dialog for audio selection.
func (a *App) PickInputFile() (string, error) {
	ctx, err := a.runtimeContext()
	if err != nil {
		return "", err
	}

	path, err := wailsruntime.OpenFileDialog(ctx, wailsruntime.OpenDialogOptions{
		Title:   "Select audio file",
		Filters: audioDialogFilter,
	})
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(path), nil
}

// PickOutputDirectory opens a native directory picker for transcript exports.
func (a *App) PickOutputDirectory() (string, error) {
	ctx, err := a.runtimeContext()
	if err != nil {
		return "", err
	}

	path, err := wailsruntime.OpenDirectoryDialog(ctx, wailsruntime.OpenDialogOptions{
		Title: "Select output directory",
	})
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(path), nil
}

// SaveTranscript writes transcript text to a user-picked destination file.
// An empty returned path means the user cancelled the dialog.
func (a *App) SaveTranscript(text, suggestedName string) (string, error) {
	ctx, err := a.runtimeContext()
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(suggestedName) == "" {
		suggestedName = "transcript.txt"
	}

	path, err := wailsruntime.SaveFileDialog(ctx, wailsruntime.SaveDialogOptions{
		Title:           "Save transcript",
		DefaultFilename: suggestedName,
	})
	if err != nil {
		return "", err
	}

	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}

	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}
	return path, nil
}

// RecentTranscriptions lists the newest saved results, most recent first.
func (a *App) RecentTranscriptions(limit int) ([]history.Entry, error) {
	if a.History == nil {
		return nil, nil
	}
	return a.History.Recent(limit)
}

// OpenOutputFolder opens the given path (or configured output dir) in file manager.
func (a *App) OpenOutputFolder(path string) error {
	target := strings.TrimSpace(path)
	if target == "" {
		a.mu.Lock()
		target = a.Settings.OutputDir
		a.mu.Unlock()
	}
	if target == "" {
		return fmt.Errorf("output path is empty")
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	openPath := target
	if !info.IsDir() {
		openPath = filepath.Dir(target)
	}

	return openInFileManager(openPath)
}

// RefreshDiagnostics reloads settings and reruns dependency checks.
func (a *App) RefreshDiagnostics() (domain.DiagnosticReport, error) {
	settings, err := a.Store.Load()
	if err != nil {
		return domain.DiagnosticReport{}, fmt.Errorf("load settings: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.Settings = settings
	a.Diagnostics = a.checker.Run(context.Background(), settings)
	return a.Diagnostics, nil
}

// StartTranscription creates a job and runs it asynchronously.
func (a *App) StartTranscription(inputPath string, opts domain.TranscribeOptions) (domain.Job, error) {
	settings, err := a.Store.Load()
	if err != nil {
		return domain.Job{}, fmt.Errorf("load settings: %w", err)
	}

	jobID := uuid.NewString()
	if err := a.Jobs.Start(jobID); err != nil {
		return domain.Job{}, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.mu.Lock()
	a.activeJobID = jobID
	a.cancel = cancel
	a.Settings = settings
	a.mu.Unlock()

	a.publishStatus(jobID, domain.JobStatusValidating, "Job started")

	go a.runTranscriptionJob(ctx, jobID, inputPath, settings, opts)
	return a.Jobs.Current(), nil
}

// CancelTranscription cancels the currently running job, if any.
func (a *App) CancelTranscription() error {
	a.mu.Lock()
	cancel := a.cancel
	activeJobID := a.activeJobID
	a.mu.Unlock()

	if cancel == nil {
		return jobs.ErrNoRunningJob
	}

	cancel()
	if err := a.Jobs.Cancel(); err != nil && !errors.Is(err, jobs.ErrNoRunningJob) {
		return err
	}

	if activeJobID != "" {
		a.publishStatus(activeJobID, domain.JobStatusCancelled, "Cancellation requested")
	}
	return nil
}

// CurrentJob returns current job metadata and status.
func (a *App) CurrentJob() domain.Job {
	return a.Jobs.Current()
}

// JobEvents returns all events with sequence greater than sinceSeq.
func (a *App) JobEvents(sinceSeq int64) []jobs.Event {
	return a.events.Since(sinceSeq)
}

// runTranscriptionJob executes one transcription and maps outcomes to events.
// The remote credential is read from the environment per job and never stored.
func (a *App) runTranscriptionJob(ctx context.Context, jobID, inputPath string, settings domain.Settings, opts domain.TranscribeOptions) {
	orch, err := a.newOrchestrator(transcribe.Config{
		TempDir:        settings.TempDir,
		Model:          settings.Model,
		WhisperPath:    settings.WhisperPath,
		KeepArtifacts:  settings.KeepArtifacts,
		RemoteEnabled:  settings.RemoteEnabled,
		RemoteAPIKey:   os.Getenv("OPENAI_API_KEY"),
		RemoteEndpoint: settings.RemoteEndpoint,
	})
	if err != nil {
		a.publishFailure(jobID, fmt.Errorf("prepare transcriber: %w", err))
		a.clearActiveJob(jobID)
		return
	}

	runOpts := transcribe.Options{
		IncludeTimestamps: opts.Timestamps,
		Format:            opts.Format,
		OnStage: func(stage string) {
			status, ok := mapStageToStatus(stage)
			if !ok {
				return
			}
			if err := a.Jobs.Transition(status); err == nil {
				a.publishStatus(jobID, status, "Running "+stage+" stage")
			}
		},
		OnLog: func(log transcribe.CommandLog) {
			a.publishEvent(jobs.Event{
				JobID:    jobID,
				Type:     jobs.EventTypeLog,
				Message:  "Command completed",
				Command:  log.Command,
				Args:     log.Args,
				ExitCode: log.ExitCode,
				Stdout:   log.Stdout,
				Stderr:   log.Stderr,
			})
		},
	}

	result, err := orch.Transcribe(ctx, inputPath, runOpts)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			_ = a.Jobs.Transition(domain.JobStatusCancelled)
			a.publishStatus(jobID, domain.JobStatusCancelled, "Job cancelled")
			a.clearActiveJob(jobID)
			return
		}

		a.publishFailure(jobID, err)
		a.clearActiveJob(jobID)
		return
	}

	outputPath := ""
	if dir := strings.TrimSpace(settings.OutputDir); dir != "" {
		path, werr := writeTranscript(dir, inputPath, result.FileInfo.Format, result.Text)
		if werr != nil {
			a.logger.Warn().Err(werr).Str("dir", dir).Msg("write transcript to output directory")
			a.publishEvent(jobs.Event{
				JobID:   jobID,
				Type:    jobs.EventTypeError,
				Message: fmt.Sprintf("write transcript: %v", werr),
			})
		} else {
			outputPath = path
		}
	}

	if a.History != nil {
		if _, herr := a.History.Record(history.Entry{
			ID:         jobID,
			Filename:   result.FileInfo.Filename,
			Method:     result.FileInfo.Method,
			Model:      result.FileInfo.Model,
			Format:     result.FileInfo.Format,
			Timestamps: result.FileInfo.Timestamps,
			Text:       result.Text,
			DurationMS: result.FileInfo.DurationMS,
			SizeBytes:  result.FileInfo.Size,
		}); herr != nil {
			a.logger.Warn().Err(herr).Msg("record transcription history")
		}
	}

	if err := a.Jobs.Transition(domain.JobStatusDone); err == nil {
		a.publishStatus(jobID, domain.JobStatusDone, "Job completed")
	}
	a.publishEvent(jobs.Event{
		JobID:      jobID,
		Type:       jobs.EventTypeResult,
		Status:     domain.JobStatusDone,
		Message:    "Transcription completed",
		Method:     result.FileInfo.Method,
		Text:       result.Text,
		OutputPath: outputPath,
	})
	a.clearActiveJob(jobID)
}

// publishFailure emits failure status, the error, and any failing command log.
func (a *App) publishFailure(jobID string, err error) {
	_ = a.Jobs.Transition(domain.JobStatusFailed)
	a.publishStatus(jobID, domain.JobStatusFailed, "Job failed")
	a.publishEvent(jobs.Event{
		JobID:   jobID,
		Type:    jobs.EventTypeError,
		Status:  domain.JobStatusFailed,
		Message: err.Error(),
	})

	if log, ok := failedCommandLog(err); ok {
		a.publishEvent(jobs.Event{
			JobID:    jobID,
			Type:     jobs.EventTypeLog,
			Message:  "Failed command",
			Command:  log.Command,
			Args:     log.Args,
			ExitCode: log.ExitCode,
			Stdout:   log.Stdout,
			Stderr:   log.Stderr,
		})
	}
}

// failedCommandLog extracts the command log attached to conversion and local
// backend failures.
func failedCommandLog(err error) (transcribe.CommandLog, bool) {
	var convErr *transcribe.ConversionError
	if errors.As(err, &convErr) && convErr.CommandLog.Command != "" {
		return convErr.CommandLog, true
	}
	var localErr *transcribe.LocalBackendError
	if errors.As(err, &localErr) && localErr.CommandLog.Command != "" {
		return localErr.CommandLog, true
	}
	return transcribe.CommandLog{}, false
}

// publishStatus sends a normalized status event.
func (a *App) publishStatus(jobID string, status domain.JobStatus, message string) {
	a.publishEvent(jobs.Event{
		JobID:   jobID,
		Type:    jobs.EventTypeStatus,
		Status:  status,
		Message: message,
	})
}

// publishEvent stores event history and emits runtime push notifications.
func (a *App) publishEvent(event jobs.Event) {
	published := a.events.Publish(event)

	a.mu.Lock()
	ctx := a.runtimeCtx
	a.mu.Unlock()
	if ctx != nil {
		wailsruntime.EventsEmit(ctx, "job:event", published)
	}
}

// clearActiveJob clears cancellation handles for completed job IDs.
func (a *App) clearActiveJob(jobID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.activeJobID == jobID {
		a.activeJobID = ""
		a.cancel = nil
	}
}

// mapStageToStatus maps orchestrator stage names to job statuses.
func mapStageToStatus(stage string) (domain.JobStatus, bool) {
	switch stage {
	case transcribe.StageValidating:
		return domain.JobStatusValidating, true
	case transcribe.StageSelecting:
		return domain.JobStatusSelecting, true
	case transcribe.StageConverting:
		return domain.JobStatusConverting, true
	case transcribe.StageTranscribing:
		return domain.JobStatusTranscribing, true
	case transcribe.StageFinalizing:
		return domain.JobStatusFinalizing, true
	default:
		return "", false
	}
}

// runtimeContext returns current Wails runtime context for dialog APIs.
func (a *App) runtimeContext() (context.Context, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.runtimeCtx == nil {
		return nil, fmt.Errorf("runtime context is not initialized")
	}
	return a.runtimeCtx, nil
}

// writeTranscript saves transcript text into the output directory, named
// after the input file with the format's extension.
func writeTranscript(dir, inputPath, format, text string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	path := filepath.Join(dir, base+transcriptExt(format))
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// transcriptExt maps an output format to its file extension.
func transcriptExt(format string) string {
	switch format {
	case transcribe.FormatSRT:
		return ".srt"
	case transcribe.FormatJSON:
		return ".json"
	default:
		return ".txt"
	}
}

// normalizeSettings trims user inputs and applies defaults for empty fields.
func normalizeSettings(settings domain.Settings) domain.Settings {
	settings.Model = strings.TrimSpace(settings.Model)
	settings.WhisperPath = strings.TrimSpace(settings.WhisperPath)
	settings.OutputDir = strings.TrimSpace(settings.OutputDir)
	settings.TempDir = strings.TrimSpace(settings.TempDir)
	settings.Format = strings.ToLower(strings.TrimSpace(settings.Format))
	settings.RemoteEndpoint = strings.TrimSpace(settings.RemoteEndpoint)
	if !domain.IsValidModel(settings.Model) {
		settings.Model = domain.DefaultModelID
	}
	if settings.Format == "" {
		settings.Format = transcribe.FormatText
	}
	return settings
}

// openInFileManager launches the platform file explorer for the provided path.
func openInFileManager(path string) error {
	var cmd *exec.Cmd
	switch goruntime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("explorer", filepath.Clean(path))
	default:
		cmd = exec.Command("xdg-open", path)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch file manager: %w", err)
	}
	return nil
}
