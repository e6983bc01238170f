package transcribe

import (
	"path/filepath"
	"strconv"
	"strings"
)

// FileInfo echoes input metadata and processing facts for one result. Every
// code path populates all fields.
type FileInfo struct {
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	SizeKB      string `json:"size_kb"`
	ContentType string `json:"content_type"`
	DurationMS  int64  `json:"duration_ms"`
	Timestamps  bool   `json:"timestamps"`
	Format      string `json:"format"`
	Model       string `json:"model"`
	Method      string `json:"method"`
	WhisperPath string `json:"whisper_path,omitempty"`
}

// contentTypes maps recognized input extensions to MIME labels. Unlisted
// extensions are accepted, not rejected.
var contentTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".m4a":  "audio/m4a",
	".webm": "audio/webm",
	".mp4":  "audio/mp4",
	".ogg":  "audio/ogg",
	".flac": "audio/flac",
	".aac":  "audio/aac",
}

// contentTypeFor labels a path by its extension.
func contentTypeFor(path string) string {
	if label, ok := contentTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return label
	}
	return "audio/unknown"
}

// formatSizeKB renders a byte count as kilobytes with two decimals. The
// string is always derived from the byte size, never stored separately.
func formatSizeKB(size int64) string {
	return strconv.FormatFloat(float64(size)/1024.0, 'f', 2, 64)
}
