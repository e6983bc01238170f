package domain

import "time"

// DiagnosticStatus grades a single preflight check.
type DiagnosticStatus string

const (
	DiagnosticStatusPass DiagnosticStatus = "pass"
	// DiagnosticStatusWarn means a backend is missing but transcription
	// still completes through a fallback path.
	DiagnosticStatusWarn DiagnosticStatus = "warn"
	DiagnosticStatusFail DiagnosticStatus = "fail"
)

// DiagnosticItem is one preflight check result with optional hint.
type DiagnosticItem struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Status  DiagnosticStatus `json:"status"`
	Message string           `json:"message"`
	Hint    string           `json:"hint,omitempty"`
}

// DiagnosticReport aggregates preflight checks for UI and CLI consumption.
type DiagnosticReport struct {
	GeneratedAt time.Time        `json:"generatedAt"`
	HasFailures bool             `json:"hasFailures"`
	HasWarnings bool             `json:"hasWarnings"`
	Items       []DiagnosticItem `json:"items"`
}
