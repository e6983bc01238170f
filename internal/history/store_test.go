package history

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "state", "history.sqlite"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// TestRecordAssignsIdentity checks that blank IDs and times are filled in.
func TestRecordAssignsIdentity(t *testing.T) {
	store := openTestStore(t)

	got, err := store.Record(Entry{
		Filename: "interview.mp3",
		Method:   "local-executable",
		Model:    "base",
		Format:   "txt",
		Text:     "hello world",
	})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if got.ID == "" {
		t.Fatal("expected generated id")
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("expected created time to be set")
	}
}

// TestRecordAndRecentRoundTrip checks persisted entry fidelity.
func TestRecordAndRecentRoundTrip(t *testing.T) {
	store := openTestStore(t)

	want := Entry{
		ID:         "entry-1",
		Filename:   "meeting.wav",
		Method:     "placeholder",
		Model:      "small",
		Format:     "srt",
		Timestamps: true,
		Text:       "[00:00:01,000] hi there",
		DurationMS: 1530,
		SizeBytes:  2048,
		CreatedAt:  time.Unix(1700000000, 0),
	}
	if _, err := store.Record(want); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	entries, err := store.Recent(5)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if entries[0] != want {
		t.Fatalf("entry = %+v, want %+v", entries[0], want)
	}
}

// TestRecentOrdersNewestFirst checks descending creation order.
func TestRecentOrdersNewestFirst(t *testing.T) {
	store := openTestStore(t)

	base := time.Unix(1700000000, 0)
	for i, name := range []string{"first.mp3", "second.mp3", "third.mp3"} {
		_, err := store.Record(Entry{
			Filename:  name,
			Method:    "local-executable",
			Model:     "base",
			Format:    "txt",
			Text:      "text",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Record(%s) error = %v", name, err)
		}
	}

	entries, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}
	wantOrder := []string{"third.mp3", "second.mp3", "first.mp3"}
	for i, want := range wantOrder {
		if entries[i].Filename != want {
			t.Fatalf("entries[%d].Filename = %q, want %q", i, entries[i].Filename, want)
		}
	}
}

// TestRecentHonorsLimit checks the LIMIT clause and the zero default.
func TestRecentHonorsLimit(t *testing.T) {
	store := openTestStore(t)

	base := time.Unix(1700000000, 0)
	for i := 0; i < 4; i++ {
		_, err := store.Record(Entry{
			Filename:  "clip.mp3",
			Method:    "remote-api",
			Model:     "base",
			Format:    "txt",
			Text:      "text",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	entries, err := store.Recent(2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}

	entries, err = store.Recent(0)
	if err != nil {
		t.Fatalf("Recent(0) error = %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("len(entries) = %d, want 4", len(entries))
	}
}

// TestRecentEmptyDatabase checks the no-rows case.
func TestRecentEmptyDatabase(t *testing.T) {
	store := openTestStore(t)

	entries, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("len(entries) = %d, want 0", len(entries))
	}
}
