package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds MCP server identity settings.
type ServerConfig struct {
	Name string `yaml:"name"`
}

// NotesConfig holds notes directory settings.
type NotesConfig struct {
	// Dir is the notes directory name inside PLAYGROUND_HOME.
	Dir string `yaml:"dir"`
}

// Config holds playground configuration.
type Config struct {
	Version string       `yaml:"version"`
	Server  ServerConfig `yaml:"server,omitempty"`
	Notes   NotesConfig  `yaml:"notes,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Version: "1",
		Server: ServerConfig{
			Name: "playground",
		},
		Notes: NotesConfig{
			Dir: "notes",
		},
	}
}

// Store represents a loaded PLAYGROUND_HOME.
type Store struct {
	Home   string
	Config Config
}

// Issue represents a health check finding.
type Issue struct {
	Severity string // "warning" or "error"
	Message  string
}

// Home returns the PLAYGROUND_HOME path, respecting the PLAYGROUND_HOME env var.
func Home() string {
	if h := os.Getenv("PLAYGROUND_HOME"); h != "" {
		return h
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".playground")
	}
	return filepath.Join(home, ".playground")
}

// Init creates the PLAYGROUND_HOME directory structure and seeds the
// sample notes.
func Init(home string, force bool) error {
	if _, err := os.Stat(home); err == nil && !force {
		return fmt.Errorf("PLAYGROUND_HOME already exists at %s (use --force to reinitialize)", home)
	}

	cfg := DefaultConfig()

	if err := os.MkdirAll(filepath.Join(home, cfg.Notes.Dir), 0755); err != nil {
		return fmt.Errorf("failed to create notes directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	cfgPath := filepath.Join(home, "config.yaml")
	if err := os.WriteFile(cfgPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return SeedNotes(filepath.Join(home, cfg.Notes.Dir))
}

// Load reads and validates an existing PLAYGROUND_HOME.
// Missing config fields are filled from defaults.
func Load(home string) (*Store, error) {
	cfgPath := filepath.Join(home, "config.yaml")
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("cannot read PLAYGROUND_HOME config at %s: %w", cfgPath, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config.yaml: %w", err)
	}
	return &Store{Home: home, Config: cfg}, nil
}

// SaveConfig writes the current config to config.yaml.
func (s *Store) SaveConfig() error {
	data, err := yaml.Marshal(s.Config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	cfgPath := filepath.Join(s.Home, "config.yaml")
	if err := os.WriteFile(cfgPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// SetConfigValue sets a config value by dot-path key (e.g. "server.name").
func (s *Store) SetConfigValue(key, value string) error {
	switch key {
	case "server.name":
		if value == "" {
			return fmt.Errorf("server.name must be non-empty")
		}
		s.Config.Server.Name = value
	case "notes.dir":
		if value == "" || filepath.IsAbs(value) {
			return fmt.Errorf("notes.dir must be a relative directory name")
		}
		s.Config.Notes.Dir = value
	default:
		return fmt.Errorf("unknown config key: %s\nValid keys: server.name, notes.dir", key)
	}
	return s.SaveConfig()
}

// Path resolves a path within PLAYGROUND_HOME.
func (s *Store) Path(parts ...string) string {
	all := append([]string{s.Home}, parts...)
	return filepath.Join(all...)
}

// NotesDir returns the absolute notes directory path.
func (s *Store) NotesDir() string {
	return s.Path(s.Config.Notes.Dir)
}

// CheckHealth verifies PLAYGROUND_HOME structure integrity.
func CheckHealth(home string) []Issue {
	var issues []Issue

	cfgPath := filepath.Join(home, "config.yaml")
	data, err := os.ReadFile(cfgPath)
	cfg := DefaultConfig()
	if err != nil {
		issues = append(issues, Issue{"error", fmt.Sprintf("cannot read config.yaml: %v", err)})
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		issues = append(issues, Issue{"error", fmt.Sprintf("config.yaml is not valid YAML: %v", err)})
	}

	notesDir := filepath.Join(home, cfg.Notes.Dir)
	info, err := os.Stat(notesDir)
	if err != nil {
		issues = append(issues, Issue{"error", fmt.Sprintf("missing directory: %s", notesDir)})
	} else if !info.IsDir() {
		issues = append(issues, Issue{"error", fmt.Sprintf("expected directory but found file: %s", notesDir)})
	} else {
		for _, name := range SeedNoteNames() {
			if _, err := os.Stat(filepath.Join(notesDir, name)); err != nil {
				issues = append(issues, Issue{"warning", fmt.Sprintf("missing seed note: %s (run 'playground doctor --fix' to restore)", name)})
			}
		}
	}

	return issues
}

// FixIssues attempts to repair simple issues in PLAYGROUND_HOME.
func FixIssues(home string) []string {
	var fixed []string

	cfgPath := filepath.Join(home, "config.yaml")
	cfg := DefaultConfig()
	if data, err := os.ReadFile(cfgPath); err != nil {
		out, _ := yaml.Marshal(cfg)
		if os.WriteFile(cfgPath, out, 0644) == nil {
			fixed = append(fixed, "recreated missing config.yaml with defaults")
		}
	} else {
		_ = yaml.Unmarshal(data, &cfg)
	}

	notesDir := filepath.Join(home, cfg.Notes.Dir)
	if _, err := os.Stat(notesDir); err != nil {
		if err := os.MkdirAll(notesDir, 0755); err == nil {
			fixed = append(fixed, fmt.Sprintf("recreated missing directory: %s", cfg.Notes.Dir))
		}
	}

	for _, name := range SeedNoteNames() {
		if _, err := os.Stat(filepath.Join(notesDir, name)); err != nil {
			if err := SeedNote(notesDir, name); err == nil {
				fixed = append(fixed, fmt.Sprintf("restored seed note: %s", name))
			}
		}
	}

	return fixed
}
