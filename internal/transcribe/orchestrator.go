package transcribe

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/LM-Towner/audioTranscriber/internal/logging"
	"github.com/LM-Towner/audioTranscriber/internal/subtitle"
)

// Stage names reported through Options.OnStage, in pipeline order.
const (
	StageValidating   = "validating"
	StageSelecting    = "selecting"
	StageConverting   = "converting"
	StageTranscribing = "transcribing"
	StageFinalizing   = "finalizing"
)

// Output format tags accepted on a request.
const (
	FormatText = "txt"
	FormatSRT  = "srt"
	FormatJSON = "json"
)

// Backend methods recorded on a result. Exactly one per call.
const (
	MethodLocal       = "local-executable"
	MethodRemote      = "remote-api"
	MethodPlaceholder = "placeholder"
)

// DefaultModel is the whisper model size used when none is configured.
const DefaultModel = "base"

// DefaultTempDir returns the scratch directory used when none is configured.
func DefaultTempDir() string {
	return filepath.Join(os.TempDir(), "audiotranscriber")
}

// Config fixes orchestrator behavior at construction time. Reconfiguration
// means constructing a new Orchestrator; fields are never mutated afterwards.
type Config struct {
	// TempDir holds converted waveforms and subtitle output. Created once
	// at construction and shared by all calls.
	TempDir string
	// Model selects the whisper model size passed to the local backend.
	Model string
	// WhisperPath, when set and present on disk, short-circuits discovery.
	WhisperPath string
	// SearchPaths overrides the well-known install locations probed by
	// discovery. Nil means DefaultSearchPaths.
	SearchPaths []string
	// KeepArtifacts suppresses temporary artifact cleanup.
	KeepArtifacts bool
	// Logger overrides the component logger when set.
	Logger *zerolog.Logger

	RemoteEnabled  bool
	RemoteAPIKey   string
	RemoteEndpoint string
}

// Options carries per-call output preferences and execution callbacks.
type Options struct {
	IncludeTimestamps bool
	Format            string
	OnStage           func(stage string)
	OnLog             func(log CommandLog)
}

// Result is the sole return contract of Transcribe.
type Result struct {
	Text     string   `json:"text"`
	FileInfo FileInfo `json:"fileInfo"`
}

// Orchestrator selects a transcription backend per call and drives it
// end-to-end: local executable, then remote API, then placeholder.
type Orchestrator struct {
	cfg      Config
	runner   commandRunner
	client   *http.Client
	logger   zerolog.Logger
	stat     func(name string) (os.FileInfo, error)
	mkdirAll func(path string, perm os.FileMode) error
	readFile func(name string) ([]byte, error)
	remove   func(name string) error
}

// New constructs an orchestrator with OS dependencies, applying defaults and
// creating the shared temp directory.
func New(cfg Config) (*Orchestrator, error) {
	if strings.TrimSpace(cfg.TempDir) == "" {
		cfg.TempDir = DefaultTempDir()
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultModel
	}
	if strings.TrimSpace(cfg.RemoteEndpoint) == "" {
		cfg.RemoteEndpoint = DefaultRemoteEndpoint
	}
	if cfg.SearchPaths == nil {
		cfg.SearchPaths = DefaultSearchPaths()
	}

	logger := logging.WithComponent("transcribe")
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	o := &Orchestrator{
		cfg:      cfg,
		runner:   &execRunner{},
		client:   &http.Client{Timeout: remoteRequestTimeout},
		logger:   logger,
		stat:     os.Stat,
		mkdirAll: os.MkdirAll,
		readFile: os.ReadFile,
		remove:   os.Remove,
	}
	if err := o.mkdirAll(o.cfg.TempDir, 0o755); err != nil {
		return nil, fmt.Errorf("create temp directory: %w", err)
	}

	return o, nil
}

// Transcribe runs one file through backend selection, execution, and
// finalization. Temporary artifacts registered during the call are removed
// before it returns, on success and failure alike, unless KeepArtifacts is
// set.
func (o *Orchestrator) Transcribe(ctx context.Context, inputPath string, opts Options) (Result, error) {
	start := time.Now()
	opts = normalizeOptions(opts)

	emitStage(opts.OnStage, StageValidating)
	info, err := o.stat(inputPath)
	if err != nil {
		return Result{}, &FileNotFoundError{Path: inputPath, Err: err}
	}

	artifacts := &artifactSet{}
	if !o.cfg.KeepArtifacts {
		defer artifacts.cleanup(o.remove, o.logger)
	}

	emitStage(opts.OnStage, StageSelecting)
	local := o.Discover(ctx)

	text := ""
	method := MethodPlaceholder
	whisperPath := ""

	if local.Available {
		audioPath := inputPath
		if !isCanonicalWaveform(inputPath) {
			emitStage(opts.OnStage, StageConverting)
			audioPath, err = o.convertToWAV(ctx, inputPath, artifacts, opts.OnLog)
			if err != nil {
				return Result{}, err
			}
		}

		emitStage(opts.OnStage, StageTranscribing)
		subtitleText, err := o.runLocal(ctx, local.Path, audioPath, artifacts, opts.OnLog)
		if err != nil {
			return Result{}, err
		}

		text = subtitle.Parse(subtitleText, opts.IncludeTimestamps)
		method = MethodLocal
		whisperPath = local.Path
	} else {
		o.logger.Debug().Str("reason", local.Reason).Msg("local backend unavailable")
		emitStage(opts.OnStage, StageTranscribing)
		if remoteText, ok := o.tryRemote(ctx, inputPath, opts); ok {
			text = remoteText
			method = MethodRemote
		} else {
			text = generatePlaceholder(filepath.Base(inputPath), info.Size(), contentTypeFor(inputPath))
		}
	}

	emitStage(opts.OnStage, StageFinalizing)
	return Result{
		Text: text,
		FileInfo: FileInfo{
			Filename:    filepath.Base(inputPath),
			Size:        info.Size(),
			SizeKB:      formatSizeKB(info.Size()),
			ContentType: contentTypeFor(inputPath),
			DurationMS:  time.Since(start).Milliseconds(),
			Timestamps:  opts.IncludeTimestamps,
			Format:      opts.Format,
			Model:       o.cfg.Model,
			Method:      method,
			WhisperPath: whisperPath,
		},
	}, nil
}

// tryRemote attempts the remote path when it is enabled and credentialed.
// Remote failures are soft: they are logged and reported as not-ok so the
// caller falls through to the placeholder, never to a failed call.
func (o *Orchestrator) tryRemote(ctx context.Context, inputPath string, opts Options) (string, bool) {
	if !o.cfg.RemoteEnabled || strings.TrimSpace(o.cfg.RemoteAPIKey) == "" {
		return "", false
	}

	probe := o.ProbeRemote(ctx)
	if !probe.Available {
		o.logger.Warn().
			Str("reason", probe.Reason).
			Msg("remote backend unreachable, falling back to placeholder")
		return "", false
	}

	text, err := o.sendRemote(ctx, inputPath, opts)
	if err != nil {
		o.logger.Warn().
			Err(err).
			Msg("remote transcription failed, falling back to placeholder")
		return "", false
	}

	return text, true
}

// emitStage forwards stage updates when a callback is configured.
func emitStage(cb func(stage string), stage string) {
	if cb != nil {
		cb(stage)
	}
}

// emitLog forwards command logs when a callback is configured.
func emitLog(cb func(log CommandLog), log CommandLog) {
	if cb != nil {
		cb(log)
	}
}

// normalizeOptions applies the default output format.
func normalizeOptions(opts Options) Options {
	opts.Format = strings.ToLower(strings.TrimSpace(opts.Format))
	if opts.Format == "" {
		opts.Format = FormatText
	}
	return opts
}

// NewForTests constructs an orchestrator with injectable dependencies and no
// construction side effects.
func NewForTests(
	cfg Config,
	runner commandRunner,
	client *http.Client,
	stat func(name string) (os.FileInfo, error),
	readFile func(name string) ([]byte, error),
	remove func(name string) error,
) *Orchestrator {
	if client == nil {
		client = &http.Client{Timeout: remoteRequestTimeout}
	}
	return &Orchestrator{
		cfg:      cfg,
		runner:   runner,
		client:   client,
		logger:   logging.WithComponent("transcribe"),
		stat:     stat,
		mkdirAll: os.MkdirAll,
		readFile: readFile,
		remove:   remove,
	}
}
