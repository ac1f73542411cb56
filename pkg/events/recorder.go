// Package events records extension operational events. The extension name
// is always passed explicitly; recorders hold no ambient extension state.
package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/azlinux-tools/ladcfg/pkg/logger"
)

// Recorder is the injected event-reporting capability. Recording is
// best-effort: failures are logged, never propagated.
type Recorder interface {
	Record(extension, operation string, success bool, message string)
}

// LogRecorder reports events to the structured log only.
type LogRecorder struct {
	log *slog.Logger
}

func NewLogRecorder() *LogRecorder {
	return &LogRecorder{log: logger.Get(logger.ComponentEvents)}
}

func (r *LogRecorder) Record(extension, operation string, success bool, message string) {
	r.log.Info("extension event",
		"extension", extension,
		"operation", operation,
		"success", success,
		"message", message)
}

type extensionEvent struct {
	EventID   string `json:"eventId"`
	Timestamp string `json:"timestamp"`
	Extension string `json:"extensionName"`
	Operation string `json:"operation"`
	Success   bool   `json:"success"`
	Message   string `json:"message"`
}

// FolderRecorder writes one JSON file per event into the guest agent's
// events folder, named by a millisecond timestamp as the agent expects.
type FolderRecorder struct {
	dir string
	log *slog.Logger
}

func NewFolderRecorder(dir string) *FolderRecorder {
	return &FolderRecorder{
		dir: dir,
		log: logger.Get(logger.ComponentEvents),
	}
}

func (r *FolderRecorder) Record(extension, operation string, success bool, message string) {
	now := time.Now()

	event := extensionEvent{
		EventID:   uuid.New().String(),
		Timestamp: now.UTC().Format(time.RFC3339),
		Extension: extension,
		Operation: operation,
		Success:   success,
		Message:   message,
	}

	data, err := json.Marshal(event)
	if err != nil {
		r.log.Warn("Failed to marshal extension event", "operation", operation, "error", err)
		return
	}

	path := filepath.Join(r.dir, fmt.Sprintf("%d.json", now.UnixMilli()))
	if err := os.WriteFile(path, data, 0644); err != nil {
		r.log.Warn("Failed to write extension event", "path", path, "error", err)
	}
}
