package transcribe

import (
	"context"
	"path/filepath"
	"strings"
)

const srtExt = ".srt"

// runLocal invokes the whisper executable against audioPath and returns the
// raw subtitle output it wrote. The subtitle file is registered as an
// artifact as soon as its expected name is known.
func (o *Orchestrator) runLocal(
	ctx context.Context,
	execPath string,
	audioPath string,
	artifacts *artifactSet,
	onLog func(log CommandLog),
) (string, error) {
	args := buildWhisperArgs(audioPath, o.cfg.Model, o.cfg.TempDir)
	cmdResult, runErr := o.runner.Run(ctx, execPath, args...)
	log := CommandLog{
		Command:  execPath,
		Args:     args,
		ExitCode: cmdResult.ExitCode,
		Stdout:   cmdResult.Stdout,
		Stderr:   cmdResult.Stderr,
	}
	emitLog(onLog, log)
	if runErr != nil {
		return "", &LocalBackendError{
			Message:    "whisper invocation failed",
			CommandLog: log,
			Err:        runErr,
		}
	}

	// whisper names its output after the input basename.
	srtPath := filepath.Join(o.cfg.TempDir, stripExt(filepath.Base(audioPath))+srtExt)
	artifacts.register(srtPath)

	if _, err := o.stat(srtPath); err != nil {
		return "", &LocalBackendError{
			Message:    "whisper produced no subtitle output",
			CommandLog: log,
			Err:        err,
		}
	}

	content, err := o.readFile(srtPath)
	if err != nil {
		return "", &LocalBackendError{
			Message:    "failed to read subtitle output",
			CommandLog: log,
			Err:        err,
		}
	}

	return string(content), nil
}

// buildWhisperArgs builds whisper CLI args for subtitle-format output into
// the shared temp directory.
func buildWhisperArgs(audioPath, model, outputDir string) []string {
	return []string{
		audioPath,
		"--model", model,
		"--output_format", "srt",
		"--output_dir", outputDir,
	}
}

// stripExt removes the final extension from a file name.
func stripExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
