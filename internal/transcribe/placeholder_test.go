package transcribe

import (
	"strings"
	"testing"
)

// TestGeneratePlaceholderStructure checks marker, filler, and echoed
// metadata sections.
func TestGeneratePlaceholderStructure(t *testing.T) {
	got := generatePlaceholder("voice.mp3", 2048, "audio/mpeg")

	if !strings.HasPrefix(got, placeholderMarker) {
		t.Fatalf("missing marker prefix: %q", got)
	}
	if !strings.Contains(got, "File: voice.mp3") {
		t.Fatalf("missing filename: %q", got)
	}
	if !strings.Contains(got, "Size: 2.00 KB") {
		t.Fatalf("missing formatted size: %q", got)
	}
	if !strings.Contains(got, "Type: audio/mpeg") {
		t.Fatalf("missing content type: %q", got)
	}
}

// TestGeneratePlaceholderFillerMembership checks the filler paragraph always
// comes from the fixed set. Selection is random, so assert membership only.
func TestGeneratePlaceholderFillerMembership(t *testing.T) {
	for i := 0; i < 20; i++ {
		got := generatePlaceholder("a.wav", 10, "audio/wav")
		sections := strings.Split(got, "\n\n")
		if len(sections) != 3 {
			t.Fatalf("sections = %d, want 3: %q", len(sections), got)
		}

		filler := sections[1]
		found := false
		for _, candidate := range placeholderFillers {
			if filler == candidate {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("filler not in fixed set: %q", filler)
		}
	}
}
