package transcribe

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const (
	ffmpegCommand = "ffmpeg"
	wavExt        = ".wav"
)

// isCanonicalWaveform reports whether the input already carries the waveform
// extension the local backend accepts directly.
func isCanonicalWaveform(path string) bool {
	return strings.EqualFold(filepath.Ext(path), wavExt)
}

// convertToWAV re-encodes the input into mono 16kHz PCM WAV inside the shared
// temp directory. The output path carries a nanosecond component so
// concurrent calls cannot clobber each other, and is registered before the
// run so a partial file is still cleaned up on failure.
func (o *Orchestrator) convertToWAV(
	ctx context.Context,
	inputPath string,
	artifacts *artifactSet,
	onLog func(log CommandLog),
) (string, error) {
	outPath := filepath.Join(o.cfg.TempDir, fmt.Sprintf("converted-%d%s", time.Now().UnixNano(), wavExt))
	artifacts.register(outPath)

	args := buildFFmpegArgs(inputPath, outPath)
	cmdResult, runErr := o.runner.Run(ctx, ffmpegCommand, args...)
	log := CommandLog{
		Command:  ffmpegCommand,
		Args:     args,
		ExitCode: cmdResult.ExitCode,
		Stdout:   cmdResult.Stdout,
		Stderr:   cmdResult.Stderr,
	}
	emitLog(onLog, log)
	if runErr != nil {
		return "", &ConversionError{CommandLog: log, Err: runErr}
	}

	if _, err := o.stat(outPath); err != nil {
		return "", &ConversionError{CommandLog: log, Err: err}
	}

	return outPath, nil
}

// buildFFmpegArgs builds conversion CLI args for mono 16k PCM WAV output.
func buildFFmpegArgs(inputPath, outPath string) []string {
	return []string{
		"-hide_banner",
		"-nostdin",
		"-y",
		"-i", inputPath,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		outPath,
	}
}
