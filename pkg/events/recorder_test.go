package events

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func TestFolderRecorder(t *testing.T) {
	dir := t.TempDir()
	r := NewFolderRecorder(dir)

	r.Record("LinuxDiagnostic", "GenerateLoggingConfig", true, "logging configuration generated")

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read events dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 event file, got %d", len(entries))
	}
	if filepath.Ext(entries[0].Name()) != ".json" {
		t.Fatalf("event file name = %q, want .json", entries[0].Name())
	}

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatalf("read event file: %v", err)
	}

	var event struct {
		EventID   string `json:"eventId"`
		Timestamp string `json:"timestamp"`
		Extension string `json:"extensionName"`
		Operation string `json:"operation"`
		Success   bool   `json:"success"`
		Message   string `json:"message"`
	}
	if err := json.Unmarshal(data, &event); err != nil {
		t.Fatalf("event file is not valid JSON: %v", err)
	}

	if _, err := uuid.Parse(event.EventID); err != nil {
		t.Fatalf("eventId %q is not a uuid: %v", event.EventID, err)
	}
	if event.Extension != "LinuxDiagnostic" || event.Operation != "GenerateLoggingConfig" {
		t.Fatalf("event fields wrong: %+v", event)
	}
	if !event.Success || event.Message == "" || event.Timestamp == "" {
		t.Fatalf("event fields wrong: %+v", event)
	}
}

func TestFolderRecorderMissingDir(t *testing.T) {
	r := NewFolderRecorder(filepath.Join(t.TempDir(), "does", "not", "exist"))

	// Recording is best-effort: a missing folder must not panic.
	r.Record("LinuxDiagnostic", "GenerateLoggingConfig", false, "boom")
}

func TestLogRecorder(t *testing.T) {
	r := NewLogRecorder()
	r.Record("LinuxDiagnostic", "SaveMachineIdentity", true, "persisted")
}
