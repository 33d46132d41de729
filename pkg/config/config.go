package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/uuid"

	"screen-flipper/pkg/globals"
)

type Config struct {
	ID                 string `json:"id"`
	DisplayID          string `json:"displayId"`
	OutputName         string `json:"outputName"`
	TouchDevicePattern string `json:"touchDevicePattern"`
	StatePath          string `json:"statePath"`
}

// Default returns the built-in settings with a fresh ID
func Default() (*Config, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate config ID: %w", err)
	}

	return &Config{
		ID:                 id.String(),
		DisplayID:          globals.DisplayID,
		OutputName:         globals.OutputName,
		TouchDevicePattern: globals.TouchDevicePattern,
		StatePath:          globals.StatePath,
	}, nil
}

// Path returns the config file location, honoring SCREEN_FLIPPER_CONFIG
func Path() string {
	if p := os.Getenv(globals.ConfigEnv); p != "" {
		return p
	}
	return globals.ConfigPath
}

// Load reads the config file at path over the defaults.
// A missing file is created from the defaults so the ID sticks across runs.
// When path is not writable the defaults are used for this run only.
func Load(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		c.Save(path)
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return c, nil
}

func (c *Config) validate() error {
	if c.DisplayID == "" {
		return fmt.Errorf("displayId is empty")
	}
	if c.OutputName == "" {
		return fmt.Errorf("outputName is empty")
	}
	if c.TouchDevicePattern == "" {
		return fmt.Errorf("touchDevicePattern is empty")
	}
	if c.StatePath == "" {
		return fmt.Errorf("statePath is empty")
	}
	return nil
}

// Save writes the config to path, creating its directory
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
