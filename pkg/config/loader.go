package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and validates extension settings from path. The file may be
// YAML or JSON (JSON documents are valid YAML).
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings file: %w", err)
	}

	var cfg Settings
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate settings: %w", err)
	}

	return &cfg, nil
}

// Save writes settings back out as YAML.
func Save(path string, cfg *Settings) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// Validate checks structural constraints of the settings. Cross-references
// between policies and sinks are checked at generation time.
func (s *Settings) Validate() error {
	for i, entry := range s.FileLogs {
		if entry.File == "" {
			return fmt.Errorf("fileLogs[%d]: no file path given", i)
		}
		if !strings.HasPrefix(entry.File, "/") {
			return fmt.Errorf("fileLogs[%d]: file path %q is not absolute", i, entry.File)
		}
	}

	for i, sink := range s.SinksConfig.Sinks {
		if sink.Name == "" {
			return fmt.Errorf("sinksConfig.sink[%d]: no name given", i)
		}
		if sink.Type == "" {
			return fmt.Errorf("sinksConfig.sink[%d] (%s): no type given", i, sink.Name)
		}
		switch sink.Type {
		case SinkTypeJSONBlob:
		case SinkTypeEventHub:
			if sink.SasURL == "" {
				return fmt.Errorf("sinksConfig.sink[%d] (%s): EventHub sink has no sasURL", i, sink.Name)
			}
		default:
			return fmt.Errorf("sinksConfig.sink[%d] (%s): unsupported sink type %q", i, sink.Name, sink.Type)
		}
	}

	return nil
}
