package config

import (
	"os"
	"path/filepath"

	"github.com/LM-Towner/audioTranscriber/internal/domain"
)

// DefaultSettings returns baseline local configuration for first launch.
func DefaultSettings() domain.Settings {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return domain.Settings{
		Model:     domain.DefaultModelID,
		OutputDir: filepath.Join(homeDir, "Documents", "Transcripts"),
		Format:    "txt",
	}
}
