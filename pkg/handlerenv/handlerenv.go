// Package handlerenv reads the HandlerEnvironment.json the Azure Linux
// Guest Agent presents to extension handlers.
package handlerenv

import (
	"encoding/json"
	"fmt"
	"os"
)

// HandlerEnvironment describes the folders the guest agent assigned to this
// handler. The on-disk file is a single-element JSON array.
type HandlerEnvironment struct {
	Version            float64 `json:"version"`
	Name               string  `json:"name"`
	HandlerEnvironment struct {
		HeartbeatFile string `json:"heartbeatFile"`
		StatusFolder  string `json:"statusFolder"`
		ConfigFolder  string `json:"configFolder"`
		LogFolder     string `json:"logFolder"`
		EventsFolder  string `json:"eventsFolder"`
	} `json:"handlerEnvironment"`
}

func Load(path string) (*HandlerEnvironment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read handler environment: %w", err)
	}

	var envs []HandlerEnvironment
	if err := json.Unmarshal(data, &envs); err != nil {
		return nil, fmt.Errorf("parse handler environment: %w", err)
	}
	if len(envs) == 0 {
		return nil, fmt.Errorf("handler environment %s is empty", path)
	}

	return &envs[0], nil
}
