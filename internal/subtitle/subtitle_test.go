package subtitle

import (
	"strings"
	"testing"
)

const threeBlockInput = `1
00:00:00,000 --> 00:00:03,500
Hello world.

2
00:00:03,500 --> 00:00:07,200
This is a test.

3
00:00:07,200 --> 00:00:10,000
Goodbye.
`

// TestParseTimestampedBlocks checks block markers and blank-line separation.
func TestParseTimestampedBlocks(t *testing.T) {
	got := Parse(threeBlockInput, true)
	want := "[00:00:00,000] Hello world.\n\n[00:00:03,500] This is a test.\n\n[00:00:07,200] Goodbye."
	if got != want {
		t.Fatalf("Parse() = %q, want %q", got, want)
	}
}

// TestParsePlainJoinsWithSpaces checks the timestamp-free rendering.
func TestParsePlainJoinsWithSpaces(t *testing.T) {
	got := Parse(threeBlockInput, false)
	want := "Hello world. This is a test. Goodbye."
	if got != want {
		t.Fatalf("Parse() = %q, want %q", got, want)
	}
	if strings.Contains(got, "[") {
		t.Fatalf("plain output contains timestamp marker: %q", got)
	}
}

// TestParseIsDeterministic checks repeated parses yield identical output.
func TestParseIsDeterministic(t *testing.T) {
	first := Parse(threeBlockInput, true)
	second := Parse(threeBlockInput, true)
	if first != second {
		t.Fatalf("outputs differ:\n%q\n%q", first, second)
	}
}

// TestParseMultilineBlockJoinsText checks space-joining inside one block.
func TestParseMultilineBlockJoinsText(t *testing.T) {
	input := "1\n00:00:01,000 --> 00:00:02,000\nfirst line\nsecond line\n"
	got := Parse(input, true)
	want := "[00:00:01,000] first line second line"
	if got != want {
		t.Fatalf("Parse() = %q, want %q", got, want)
	}
}

// TestParseEmptyBlockKeepsBareMarker checks range lines without text.
func TestParseEmptyBlockKeepsBareMarker(t *testing.T) {
	input := "1\n00:00:01,000 --> 00:00:02,000\n\n2\n00:00:02,000 --> 00:00:03,000\nhello\n"
	got := Parse(input, true)
	want := "[00:00:01,000] [00:00:02,000] hello"
	if got != want {
		t.Fatalf("Parse() = %q, want %q", got, want)
	}

	if got := Parse(input, false); got != "hello" {
		t.Fatalf("plain Parse() = %q, want %q", got, "hello")
	}
}

// TestParseMalformedRangeLineStillDelimits checks unvalidated range lines.
func TestParseMalformedRangeLineStillDelimits(t *testing.T) {
	input := "garbage --> more garbage\nsome text\n"
	got := Parse(input, true)
	want := "[garbage] some text"
	if got != want {
		t.Fatalf("Parse() = %q, want %q", got, want)
	}
}

// TestParseSkipsIndexAndBlankLines checks filtered line classes.
func TestParseSkipsIndexAndBlankLines(t *testing.T) {
	input := "42\n\n   \n7\nactual words\n"
	got := Parse(input, false)
	want := "actual words"
	if got != want {
		t.Fatalf("Parse() = %q, want %q", got, want)
	}
}

// TestParseHandlesCRLFInput checks carriage returns are stripped.
func TestParseHandlesCRLFInput(t *testing.T) {
	input := "1\r\n00:00:00,500 --> 00:00:01,000\r\nwindows line\r\n"
	got := Parse(input, true)
	want := "[00:00:00,500] windows line"
	if got != want {
		t.Fatalf("Parse() = %q, want %q", got, want)
	}
}

// TestParseEmptyInput checks empty and whitespace-only documents.
func TestParseEmptyInput(t *testing.T) {
	if got := Parse("", true); got != "" {
		t.Fatalf("Parse(empty) = %q, want empty", got)
	}
	if got := Parse("\n\n  \n", false); got != "" {
		t.Fatalf("Parse(blank) = %q, want empty", got)
	}
}
