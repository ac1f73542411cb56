package handlerenv

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "HandlerEnvironment.json")
	content := `[{
  "version": 1.0,
  "name": "LinuxDiagnostic",
  "handlerEnvironment": {
    "heartbeatFile": "/var/lib/waagent/LinuxDiagnostic/heartbeat.log",
    "statusFolder": "/var/lib/waagent/LinuxDiagnostic/status",
    "configFolder": "/var/lib/waagent/LinuxDiagnostic/config",
    "logFolder": "/var/log/azure/LinuxDiagnostic",
    "eventsFolder": "/var/log/azure/Extension/events"
  }
}]`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write handler environment: %v", err)
	}

	env, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if env.Name != "LinuxDiagnostic" {
		t.Fatalf("name = %q", env.Name)
	}
	if env.HandlerEnvironment.ConfigFolder != "/var/lib/waagent/LinuxDiagnostic/config" {
		t.Fatalf("configFolder = %q", env.HandlerEnvironment.ConfigFolder)
	}
	if env.HandlerEnvironment.EventsFolder != "/var/log/azure/Extension/events" {
		t.Fatalf("eventsFolder = %q", env.HandlerEnvironment.EventsFolder)
	}
}

func TestLoadEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "HandlerEnvironment.json")
	if err := os.WriteFile(path, []byte(`[]`), 0644); err != nil {
		t.Fatalf("write handler environment: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load should fail on an empty array")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("Load should fail for a missing file")
	}
}
