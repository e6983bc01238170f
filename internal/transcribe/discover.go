package transcribe

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	whisperCommand = "whisper"

	discoverProbeTimeout = 5 * time.Second
	remoteProbeTimeout   = 5 * time.Second
)

// DefaultRemoteEndpoint is the hosted transcription endpoint used when no
// override is configured.
const DefaultRemoteEndpoint = "https://api.openai.com/v1/audio/transcriptions"

// Availability is the tagged result of one backend probe. Produced fresh on
// every call; the environment may change between runs.
type Availability struct {
	Available bool   `json:"available"`
	Path      string `json:"path,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// DefaultSearchPaths returns the well-known whisper install locations probed
// in priority order: virtualenv layouts under the home directory first, then
// package-manager bin directories.
func DefaultSearchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, "whisper-env", "bin", "whisper"),
			filepath.Join(home, ".venvs", "whisper", "bin", "whisper"),
			filepath.Join(home, ".local", "bin", "whisper"),
		)
	}
	return append(paths, "/usr/local/bin/whisper", "/opt/homebrew/bin/whisper")
}

// DiscoverBackend probes for a usable local whisper executable without
// constructing a full orchestrator, so callers can pre-flight cheaply.
func DiscoverBackend(ctx context.Context, override string, searchPaths []string) Availability {
	return discoverBackend(ctx, override, searchPaths, os.Stat, &execRunner{})
}

// Discover reports local backend availability using this orchestrator's
// configured override and search paths.
func (o *Orchestrator) Discover(ctx context.Context) Availability {
	return discoverBackend(ctx, o.cfg.WhisperPath, o.cfg.SearchPaths, o.stat, o.runner)
}

// discoverBackend walks the discovery chain: configured override, well-known
// install paths, then a bare command invocation with a short timeout. First
// match wins and no step is retried.
func discoverBackend(
	ctx context.Context,
	override string,
	searchPaths []string,
	stat func(name string) (os.FileInfo, error),
	runner commandRunner,
) Availability {
	if path := strings.TrimSpace(override); path != "" {
		if _, err := stat(path); err == nil {
			return Availability{Available: true, Path: path}
		}
	}

	for _, candidate := range searchPaths {
		if _, err := stat(candidate); err == nil {
			return Availability{Available: true, Path: candidate}
		}
	}

	probeCtx, cancel := context.WithTimeout(ctx, discoverProbeTimeout)
	defer cancel()
	if _, err := runner.Run(probeCtx, whisperCommand, "--help"); err != nil {
		return Availability{Reason: fmt.Sprintf("whisper executable not found: %v", err)}
	}

	return Availability{Available: true, Path: whisperCommand}
}

// ProbeEndpoint performs a reachability check against a remote transcription
// endpoint. Any HTTP response counts as reachable regardless of status code;
// only transport failures and a missing credential report unavailable.
func ProbeEndpoint(ctx context.Context, endpoint, credential string) Availability {
	return probeEndpoint(ctx, endpoint, credential, http.DefaultClient)
}

// ProbeRemote reports remote backend reachability using this orchestrator's
// configured endpoint and credential.
func (o *Orchestrator) ProbeRemote(ctx context.Context) Availability {
	return probeEndpoint(ctx, o.cfg.RemoteEndpoint, o.cfg.RemoteAPIKey, o.client)
}

func probeEndpoint(ctx context.Context, endpoint, credential string, client *http.Client) Availability {
	if strings.TrimSpace(credential) == "" {
		return Availability{Reason: "missing credential"}
	}

	probeCtx, cancel := context.WithTimeout(ctx, remoteProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodHead, endpoint, nil)
	if err != nil {
		return Availability{Reason: err.Error()}
	}

	resp, err := client.Do(req)
	if err != nil {
		return Availability{Reason: err.Error()}
	}
	resp.Body.Close()

	return Availability{Available: true, Path: endpoint}
}
