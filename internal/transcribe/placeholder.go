package transcribe

import (
	"fmt"
	"math/rand"
	"strings"
)

// placeholderMarker opens every placeholder transcript so it can never be
// mistaken for real backend output.
const placeholderMarker = "This is a placeholder transcription. No speech-to-text backend was available when this file was processed."

// placeholderFillers is non-semantic demo filler. Selection is random and
// callers must not attach meaning to the chosen paragraph.
var placeholderFillers = []string{
	"The quick brown fox jumps over the lazy dog. Pack my box with five dozen liquor jugs. How vexingly quick daft zebras jump.",
	"Welcome to the audio transcription demo. This sample text stands in for the words that would normally be recognized from your recording.",
	"Testing, one two three. The microphone check continued for a few seconds before the meeting came to order and the first item was read aloud.",
	"Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua.",
}

// generatePlaceholder builds the substitute transcript used when no backend
// is usable: fixed marker, one filler paragraph, echoed file metadata. It
// never fails.
func generatePlaceholder(filename string, size int64, contentType string) string {
	var b strings.Builder
	b.WriteString(placeholderMarker)
	b.WriteString("\n\n")
	b.WriteString(placeholderFillers[rand.Intn(len(placeholderFillers))])
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "File: %s\n", filename)
	fmt.Fprintf(&b, "Size: %s KB\n", formatSizeKB(size))
	fmt.Fprintf(&b, "Type: %s", contentType)
	return b.String()
}
