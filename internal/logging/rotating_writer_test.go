package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRotatingWriterAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	w, err := NewRotatingFileWriter(path, 1024, 3)
	if err != nil {
		t.Fatalf("Failed to create writer: %v", err)
	}
	defer func() { _ = w.Close() }()

	for _, line := range []string{"first\n", "second\n"} {
		if _, err := w.Write([]byte(line)); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log: %v", err)
	}
	if string(data) != "first\nsecond\n" {
		t.Errorf("Unexpected log content: %q", data)
	}
}

func TestRotatingWriterRotates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")

	w, err := NewRotatingFileWriter(path, 20, 2)
	if err != nil {
		t.Fatalf("Failed to create writer: %v", err)
	}
	defer func() { _ = w.Close() }()

	// Each line is 10 bytes; the third write pushes past 20 bytes and
	// triggers a rotation.
	for i := 0; i < 3; i++ {
		if _, err := w.Write([]byte("123456789\n")); err != nil {
			t.Fatalf("Write %d failed: %v", i, err)
		}
	}

	backup, err := os.ReadFile(filepath.Join(dir, "app.1.log"))
	if err != nil {
		t.Fatalf("Expected a rotated backup: %v", err)
	}
	if count := strings.Count(string(backup), "\n"); count != 2 {
		t.Errorf("Expected 2 lines in the backup, got %d", count)
	}

	current, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read current log: %v", err)
	}
	if count := strings.Count(string(current), "\n"); count != 1 {
		t.Errorf("Expected 1 line in the current log, got %d", count)
	}
}

func TestRotatingWriterDropsOldestBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")

	w, err := NewRotatingFileWriter(path, 10, 2)
	if err != nil {
		t.Fatalf("Failed to create writer: %v", err)
	}
	defer func() { _ = w.Close() }()

	// Four rotations with maxBackups=2 leaves app.log, app.1.log and
	// app.2.log only.
	for i := 0; i < 5; i++ {
		if _, err := w.Write([]byte("0123456789")); err != nil {
			t.Fatalf("Write %d failed: %v", i, err)
		}
	}

	for _, name := range []string{"app.log", "app.1.log", "app.2.log"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("Expected %s to exist: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "app.3.log")); err == nil {
		t.Error("Expected the oldest backup to be dropped")
	}
}

func TestRotatingWriterResumesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte("existing\n"), 0600); err != nil {
		t.Fatalf("Failed to seed log file: %v", err)
	}

	w, err := NewRotatingFileWriter(path, 1024, 3)
	if err != nil {
		t.Fatalf("Failed to create writer: %v", err)
	}
	defer func() { _ = w.Close() }()

	if _, err := w.Write([]byte("appended\n")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log: %v", err)
	}
	if string(data) != "existing\nappended\n" {
		t.Errorf("Expected append to existing file, got %q", data)
	}
}
