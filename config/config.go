// Package config loads the game settings file
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/platanus-dice/constants"
	"github.com/lixenwraith/platanus-dice/input"
	"github.com/lixenwraith/platanus-dice/storage"
)

// AppName names the config and data directories
const AppName = "platanus-dice"

// ErrUnknownCode reports a keymap entry that names no control
var ErrUnknownCode = errors.New("unknown control code")

// Audio output backends
const (
	AudioBackendAuto    = "auto"    // Speaker, then an external player
	AudioBackendSpeaker = "speaker" // Device through the beep speaker
	AudioBackendPipe    = "pipe"    // External player fed over stdin
	AudioBackendNone    = "none"
)

type Config struct {
	DataDir string              `yaml:"data_dir"`
	Storage StorageConfig       `yaml:"storage"`
	Audio   AudioConfig         `yaml:"audio"`
	Log     LogConfig           `yaml:"log"`
	Keys    map[string][]string `yaml:"keys,omitempty"` // Code name → raw keys, replaces that code's defaults
	Seed    int64               `yaml:"seed"`           // 0 picks a random seed per run
}

type StorageConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path,omitempty"` // sqlite database file, defaults under data_dir
}

type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"`
	SampleRate int     `yaml:"sample_rate"`
	Backend    string  `yaml:"backend"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"` // Defaults to <data_dir>/platanus-dice.log
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		DataDir: DefaultDataDir(),
		Storage: StorageConfig{
			Backend: storage.BackendFile,
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     1.0,
			SampleRate: constants.AudioSampleRate,
			Backend:    AudioBackendAuto,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultDataDir is the per-user data directory, falling back to the working directory
func DefaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, AppName)
	}
	return "." + AppName
}

// DefaultPath is the settings file location
func DefaultPath() string {
	return filepath.Join(DefaultDataDir(), "config.yaml")
}

// Load reads path over the defaults; a missing file yields the defaults
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML, creating the directory
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks every field that would otherwise fail later at startup
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("data_dir must not be empty")
	}

	switch strings.ToLower(c.Storage.Backend) {
	case storage.BackendFile, storage.BackendSQLite, storage.BackendMemory:
	default:
		return fmt.Errorf("storage.backend %q: want file, sqlite or memory", c.Storage.Backend)
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio.volume %v out of range [0, 1]", c.Audio.Volume)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio.sample_rate must be positive, got %d", c.Audio.SampleRate)
	}
	switch c.Audio.Backend {
	case AudioBackendAuto, AudioBackendSpeaker, AudioBackendPipe, AudioBackendNone:
	default:
		return fmt.Errorf("audio.backend %q: want auto, speaker, pipe or none", c.Audio.Backend)
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	if _, err := c.KeyTable(); err != nil {
		return err
	}
	return nil
}

// KeyTable merges the keymap override over the default bindings
func (c *Config) KeyTable() (input.KeyTable, error) {
	override, err := input.ParseKeyTable(c.Keys)
	if err != nil {
		var unknown *input.UnknownCodeError
		if errors.As(err, &unknown) {
			return nil, fmt.Errorf("keys: %w: %q", ErrUnknownCode, unknown.Name)
		}
		return nil, fmt.Errorf("keys: %w", err)
	}
	return input.DefaultKeyTable().Merge(override), nil
}

// LogFile resolves the log destination
func (c *Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.DataDir, AppName+".log")
}
