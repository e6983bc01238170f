package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/LM-Towner/audioTranscriber/internal/diagnostics"
	"github.com/LM-Towner/audioTranscriber/internal/domain"
	"github.com/LM-Towner/audioTranscriber/internal/history"
	"github.com/LM-Towner/audioTranscriber/internal/logging"
	"github.com/LM-Towner/audioTranscriber/internal/transcribe"
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FFFF"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	okStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FF00"))
	warnStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFF00"))
	errStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF0000"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

func main() {
	var (
		inputPath   string
		outputPath  string
		timestamps  bool
		format      string
		model       string
		whisperPath string
		tmpDir      string
		remote      bool
		keepTemp    bool
		runCheck    bool
		historyN    int
		noHistory   bool
		quiet       bool

		apiKey string
	)

	flag.StringVar(&inputPath, "input", "", "Input audio file path (-i)")
	flag.StringVar(&inputPath, "i", "", "Input audio file path")
	flag.StringVar(&outputPath, "output", "", "Output transcript file (-o, default <input base>.<format>)")
	flag.StringVar(&outputPath, "o", "", "Output transcript file")
	flag.BoolVar(&timestamps, "timestamps", false, "Prefix each block with its start timestamp")
	flag.StringVar(&format, "format", transcribe.FormatText, "Output format: txt|srt|json")
	flag.StringVar(&model, "model", domain.DefaultModelID, "Whisper model size: tiny|base|small|medium|large")
	flag.StringVar(&whisperPath, "whisper-path", "", "Path to the whisper executable (overrides discovery)")
	flag.StringVar(&tmpDir, "tmpdir", "", "Temporary working directory (default system temp)")
	flag.BoolVar(&remote, "remote", false, "Allow the remote API fallback when no local backend exists")
	flag.BoolVar(&keepTemp, "keep-temp", false, "Keep temporary conversion and subtitle files")
	flag.BoolVar(&runCheck, "check", false, "Run environment diagnostics and exit")
	flag.IntVar(&historyN, "history", 0, "List the N most recent transcriptions and exit")
	flag.BoolVar(&noHistory, "no-history", false, "Do not record this run in the history database")
	flag.BoolVar(&quiet, "quiet", false, "Suppress progress and summary; print only the transcript path")
	flag.StringVar(&apiKey, "api-key", os.Getenv("OPENAI_API_KEY"), "Remote API credential (or set OPENAI_API_KEY)")
	flag.Parse()

	logCfg := logging.DefaultConfig()
	logCfg.Format = "console"
	if quiet {
		logCfg.Level = "error"
	}
	logging.Init(logCfg)

	if runCheck {
		os.Exit(runDiagnostics(whisperPath, tmpDir, remote))
	}
	if historyN > 0 {
		os.Exit(listHistory(historyN))
	}

	if inputPath == "" {
		fmt.Fprintln(os.Stderr, errStyle.Render("missing --input/-i audio path"))
		flag.Usage()
		os.Exit(2)
	}
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case transcribe.FormatText, transcribe.FormatSRT, transcribe.FormatJSON:
	default:
		fmt.Fprintln(os.Stderr, errStyle.Render("unknown format: "+format))
		os.Exit(2)
	}
	if !domain.IsValidModel(model) {
		fmt.Fprintln(os.Stderr, errStyle.Render("unknown model: "+model))
		os.Exit(2)
	}

	orch, err := transcribe.New(transcribe.Config{
		TempDir:       tmpDir,
		Model:         model,
		WhisperPath:   whisperPath,
		KeepArtifacts: keepTemp,
		RemoteEnabled: remote,
		RemoteAPIKey:  apiKey,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render(fmt.Sprintf("prepare transcriber: %v", err)))
		os.Exit(1)
	}

	opts := transcribe.Options{
		IncludeTimestamps: timestamps,
		Format:            format,
	}
	if !quiet {
		opts.OnStage = func(stage string) {
			fmt.Fprintln(os.Stderr, dimStyle.Render("stage: "+stage))
		}
	}

	result, err := orch.Transcribe(context.Background(), inputPath, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render(err.Error()))
		os.Exit(1)
	}

	if outputPath == "" {
		base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
		outputPath = base + transcriptExt(format)
	}
	if err := os.WriteFile(outputPath, []byte(result.Text), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render(fmt.Sprintf("write transcript: %v", err)))
		os.Exit(1)
	}

	if !noHistory {
		recordHistory(result)
	}

	if quiet {
		fmt.Println(outputPath)
		return
	}
	printSummary(result, outputPath)
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

// recordHistory stores the finished run; failures only warn.
func recordHistory(result transcribe.Result) {
	logger := logging.WithComponent("history")

	store, err := history.Open(history.DefaultPath())
	if err != nil {
		logger.Warn().Err(err).Msg("history store unavailable")
		return
	}
	defer store.Close()

	if _, err := store.Record(history.Entry{
		Filename:   result.FileInfo.Filename,
		Method:     result.FileInfo.Method,
		Model:      result.FileInfo.Model,
		Format:     result.FileInfo.Format,
		Timestamps: result.FileInfo.Timestamps,
		Text:       result.Text,
		DurationMS: result.FileInfo.DurationMS,
		SizeBytes:  result.FileInfo.Size,
	}); err != nil {
		logger.Warn().Err(err).Msg("record transcription")
	}
}

// printSummary renders the post-run report to stderr.
func printSummary(result transcribe.Result, outputPath string) {
	info := result.FileInfo

	rows := []struct{ label, value string }{
		{"File", info.Filename},
		{"Size", info.SizeKB + " KB"},
		{"Type", info.ContentType},
		{"Method", info.Method},
		{"Model", info.Model},
		{"Duration", fmt.Sprintf("%d ms", info.DurationMS)},
		{"Output", outputPath},
	}
	if info.WhisperPath != "" {
		rows = append(rows, struct{ label, value string }{"Whisper", info.WhisperPath})
	}

	fmt.Fprintln(os.Stderr, okStyle.Render("Transcription complete"))
	for _, row := range rows {
		fmt.Fprintf(os.Stderr, "%s %s\n",
			labelStyle.Render(fmt.Sprintf("%-9s", row.label+":")),
			valueStyle.Render(row.value))
	}
}

// runDiagnostics prints the preflight report and returns the exit code.
func runDiagnostics(whisperPath, tmpDir string, remote bool) int {
	checker := diagnostics.NewChecker()
	report := checker.Run(context.Background(), domain.Settings{
		Model:         domain.DefaultModelID,
		WhisperPath:   whisperPath,
		TempDir:       tmpDir,
		OutputDir:     ".",
		RemoteEnabled: remote,
	})

	for _, item := range report.Items {
		var badge string
		switch item.Status {
		case domain.DiagnosticStatusPass:
			badge = okStyle.Render("pass")
		case domain.DiagnosticStatusWarn:
			badge = warnStyle.Render("warn")
		default:
			badge = errStyle.Render("fail")
		}
		fmt.Printf("%s %s %s\n", badge, labelStyle.Render(item.Name+":"), valueStyle.Render(item.Message))
		if item.Hint != "" && item.Status != domain.DiagnosticStatusPass {
			fmt.Printf("      %s\n", dimStyle.Render(item.Hint))
		}
	}

	if report.HasFailures {
		return 1
	}
	return 0
}

// listHistory prints the most recent runs and returns the exit code.
func listHistory(limit int) int {
	store, err := history.Open(history.DefaultPath())
	if err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render(fmt.Sprintf("open history: %v", err)))
		return 1
	}
	defer store.Close()

	entries, err := store.Recent(limit)
	if err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render(fmt.Sprintf("list history: %v", err)))
		return 1
	}
	if len(entries) == 0 {
		fmt.Println(dimStyle.Render("no transcriptions recorded"))
		return 0
	}

	for _, e := range entries {
		fmt.Printf("%s  %s  %s\n",
			dimStyle.Render(e.CreatedAt.Format("2006-01-02 15:04")),
			labelStyle.Render(e.Filename),
			valueStyle.Render(fmt.Sprintf("method=%s model=%s format=%s", e.Method, e.Model, e.Format)))
	}
	return 0
}
