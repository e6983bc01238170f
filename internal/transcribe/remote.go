package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// remoteModel is the model identifier the hosted endpoint expects.
	// Local model size selectors do not map onto it.
	remoteModel = "whisper-1"

	remoteFormatSRT  = "srt"
	remoteFormatJSON = "json"

	remoteRequestTimeout = 10 * time.Minute
)

// sendRemote uploads the input file as a multipart form with a bearer
// credential and extracts the transcript from the response. Subtitle-format
// responses are returned verbatim; structured responses yield their text
// field, or the whole body when the field is absent.
func (o *Orchestrator) sendRemote(ctx context.Context, inputPath string, opts Options) (string, error) {
	file, err := os.Open(inputPath)
	if err != nil {
		return "", &RemoteBackendError{Message: "open input file", Err: err}
	}
	defer file.Close()

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	if err := form.WriteField("model", remoteModel); err != nil {
		return "", &RemoteBackendError{Message: "encode request body", Err: err}
	}
	responseFormat := remoteResponseFormat(opts.Format)
	if err := form.WriteField("response_format", responseFormat); err != nil {
		return "", &RemoteBackendError{Message: "encode request body", Err: err}
	}
	part, err := form.CreateFormFile("file", filepath.Base(inputPath))
	if err != nil {
		return "", &RemoteBackendError{Message: "encode request body", Err: err}
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", &RemoteBackendError{Message: "encode request body", Err: err}
	}
	if err := form.Close(); err != nil {
		return "", &RemoteBackendError{Message: "encode request body", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.cfg.RemoteEndpoint, &body)
	if err != nil {
		return "", &RemoteBackendError{Message: "build request", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+o.cfg.RemoteAPIKey)
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := o.client.Do(req)
	if err != nil {
		return "", &RemoteBackendError{Message: "send request", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &RemoteBackendError{Status: resp.StatusCode, Message: "read response", Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &RemoteBackendError{
			Status:  resp.StatusCode,
			Message: strings.TrimSpace(string(data)),
		}
	}

	if responseFormat == remoteFormatSRT {
		return string(data), nil
	}

	var parsed struct {
		Text *string `json:"text"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", &RemoteBackendError{Status: resp.StatusCode, Message: "decode response body", Err: err}
	}
	if parsed.Text != nil {
		return *parsed.Text, nil
	}
	return string(data), nil
}

// remoteResponseFormat maps the request's format tag onto the endpoint's
// response_format values: subtitle output stays srt, everything else asks
// for the structured JSON form.
func remoteResponseFormat(format string) string {
	if strings.EqualFold(format, FormatSRT) {
		return remoteFormatSRT
	}
	return remoteFormatJSON
}
