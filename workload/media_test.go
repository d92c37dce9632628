// ABOUTME: Tests for audio file discovery and tag-reading jobs
// ABOUTME: Uses temp directories with decoy files; bogus audio must fail softly

package workload

import (
	"os"
	"path/filepath"
	"testing"
)

// TestIsAudioFile verifies extension matching
func TestIsAudioFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"song.mp3", true},
		{"SONG.MP3", true},
		{"album/track.flac", true},
		{"track.ogg", true},
		{"track.m4a", true},
		{"notes.txt", false},
		{"archive.tar.gz", false},
		{"noextension", false},
	}

	for _, tt := range tests {
		if got := IsAudioFile(tt.path); got != tt.want {
			t.Errorf("IsAudioFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestFindAudioFiles(t *testing.T) {
	tmpDir := t.TempDir()

	files := []string{
		"a.mp3",
		"b.flac",
		"notes.txt",
		filepath.Join("sub", "d.ogg"),
		filepath.Join("sub", "readme.md"),
	}

	for _, name := range files {
		path := filepath.Join(tmpDir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("Failed to create test dir: %v", err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}

	found, err := FindAudioFiles(tmpDir)
	if err != nil {
		t.Fatalf("FindAudioFiles failed: %v", err)
	}

	if len(found) != 3 {
		t.Errorf("Expected 3 audio files, got %d: %v", len(found), found)
	}

	for _, path := range found {
		if !IsAudioFile(path) {
			t.Errorf("Non-audio file %s in results", path)
		}
	}
}

func TestFindAudioFilesMissingDir(t *testing.T) {
	if _, err := FindAudioFiles("/nonexistent/music"); err == nil {
		t.Error("Expected error for missing directory, got none")
	}
}

func TestScanJobsBuildsOneJobPerFile(t *testing.T) {
	tmpDir := t.TempDir()

	for _, name := range []string{"a.mp3", "b.mp3"} {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte("x"), 0o600); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}

	jobs, err := ScanJobs(tmpDir, NewCollector())
	if err != nil {
		t.Fatalf("ScanJobs failed: %v", err)
	}

	if len(jobs) != 2 {
		t.Errorf("Expected 2 jobs, got %d", len(jobs))
	}
}

// A file with an audio extension but garbage content must record an error
// entry, not break anything
func TestTagJobBogusFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "fake.mp3")

	if err := os.WriteFile(path, []byte("definitely not audio data"), 0o600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	c := NewCollector()
	if err := TagJob(path, c)(); err == nil {
		t.Error("Expected error reading tags from garbage, got none")
	}

	entries := c.Entries()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}

	if entries[0].Err == nil {
		t.Error("Expected recorded entry to carry the error")
	}
}

func TestTagJobMissingFile(t *testing.T) {
	c := NewCollector()

	if err := TagJob("/nonexistent/track.mp3", c)(); err == nil {
		t.Error("Expected error for missing file, got none")
	}
}

func TestChecksumJob(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "data.bin")

	if err := os.WriteFile(path, []byte("stable content"), 0o600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	first := NewCollector()
	if err := ChecksumJob(path, first)(); err != nil {
		t.Fatalf("ChecksumJob failed: %v", err)
	}

	second := NewCollector()
	if err := ChecksumJob(path, second)(); err != nil {
		t.Fatalf("ChecksumJob failed: %v", err)
	}

	a := first.Entries()[0].Detail
	b := second.Entries()[0].Detail

	if a != b {
		t.Errorf("Same content produced digests %q and %q", a, b)
	}

	if len(a) != 12 {
		t.Errorf("Expected a 12-char digest prefix, got %q", a)
	}
}

func TestChecksumJobMissingFile(t *testing.T) {
	c := NewCollector()

	if err := ChecksumJob("/nonexistent/data.bin", c)(); err == nil {
		t.Error("Expected error for missing file, got none")
	}

	entries := c.Entries()
	if len(entries) != 1 || entries[0].Err == nil {
		t.Error("Expected one failed entry recorded")
	}
}
