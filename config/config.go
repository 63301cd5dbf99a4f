package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// SwingSetting controls whether generated songs swing.
type SwingSetting string

const (
	SwingAuto SwingSetting = "auto" // coin flip per song
	SwingOn   SwingSetting = "on"
	SwingOff  SwingSetting = "off"
)

// GenerationConfig holds the default song-generation parameters.
type GenerationConfig struct {
	Tempo        int          `json:"tempo,omitempty"` // 0 = random 80-120 per song
	Key          string       `json:"key,omitempty"`   // pitch class, "" = random
	Minor        bool         `json:"minor,omitempty"`
	Swing        SwingSetting `json:"swing,omitempty"`
	Bars         int          `json:"bars,omitempty"`
	Repeats      int          `json:"repeats,omitempty"`
	NonChordBias float64      `json:"nonChordBias,omitempty"` // 0-1 chance a melody note leaves the chord
}

// OutputConfig defines the MIDI output port
type OutputConfig struct {
	PortName string `json:"portName,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Generation GenerationConfig `json:"generation,omitempty"`
	Output     OutputConfig     `json:"output,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Generation: GenerationConfig{
			Swing:        SwingAuto,
			Bars:         4,
			Repeats:      4,
			NonChordBias: 0.9,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-compose"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
