package transcribe

import (
	"errors"
	"os"

	"github.com/rs/zerolog"
)

// artifactSet tracks temporary files created by one orchestration call.
// Cleanup operates strictly on this set so concurrent calls sharing a temp
// directory never delete each other's files.
type artifactSet struct {
	paths []string
}

// register records a path whose deletion this call now owns.
func (s *artifactSet) register(path string) {
	s.paths = append(s.paths, path)
}

// cleanup deletes every registered artifact. Deletion failures are logged as
// warnings and never affect the call result. Paths that were registered but
// never materialized are skipped silently.
func (s *artifactSet) cleanup(remove func(string) error, logger zerolog.Logger) {
	for _, path := range s.paths {
		if err := remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Warn().Err(err).Str("path", path).Msg("failed to remove temporary artifact")
		}
	}
	s.paths = nil
}
