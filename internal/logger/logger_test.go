package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "webdir.log")

	log, err := New("debug", path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	log.Info("hello", String("component", "test"))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), `"component":"test"`) {
		t.Errorf("expected structured field in log output, got %s", data)
	}
	if !strings.Contains(string(data), `"session":`) {
		t.Errorf("expected session field in log output, got %s", data)
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "webdir.log")

	log, err := New("error", path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	log.Debug("invisible")
	log.Info("invisible")
	_ = log.Sync()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "invisible") {
		t.Errorf("expected sub-error entries to be filtered, got %s", data)
	}
}

func TestNewNop_DoesNotPanic(t *testing.T) {
	log := NewNop()
	log.Debug("a")
	log.Info("b")
	log.Warn("c")
	log.Error("d")
	if err := log.Sync(); err != nil {
		t.Errorf("unexpected sync error: %v", err)
	}
}
