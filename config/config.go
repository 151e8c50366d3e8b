package config

import (
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for circuitdoc.
type Config struct {
	Scan    ScanConfig    `yaml:"scan"`
	Output  OutputConfig  `yaml:"output"`
	History HistoryConfig `yaml:"history"`
	Logging LoggingConfig `yaml:"logging"`
}

// ScanConfig holds source discovery and recognition settings.
type ScanConfig struct {
	Includes    []string `yaml:"includes"`
	Excludes    []string `yaml:"excludes"`
	Constructor string   `yaml:"constructor"` // keyword of the declaration line, e.g. QuantumCircuit
	Jobs        int      `yaml:"jobs"`        // 0 = GOMAXPROCS
}

// OutputConfig holds output settings.
type OutputConfig struct {
	Document string `yaml:"document"`
	Format   string `yaml:"format"` // "json" or "text"
	DocsDir  string `yaml:"docs_dir"`
}

// HistoryConfig holds history store settings.
type HistoryConfig struct {
	Enabled bool `yaml:"enabled"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"` // "quiet", "info", "debug"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			Includes:    []string{"**/*.py"},
			Excludes:    []string{"**/.git/**", "**/.venv/**", "**/venv/**", "**/__pycache__/**", "**/site-packages/**", "**/.circuitdoc/**"},
			Constructor: "QuantumCircuit",
			Jobs:        0,
		},
		Output: OutputConfig{
			Document: "circuit.md",
			Format:   "json",
			DocsDir:  filepath.Join(".circuitdoc", "docs"),
		},
		History: HistoryConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for circuitdoc.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "circuitdoc.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".circuitdoc", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// ApplyEnv overrides settings from CIRCUITDOC_* environment variables.
// Malformed numeric values are ignored.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("CIRCUITDOC_CONSTRUCTOR"); v != "" {
		c.Scan.Constructor = v
	}
	if v := os.Getenv("CIRCUITDOC_DOCUMENT"); v != "" {
		c.Output.Document = v
	}
	if v := os.Getenv("CIRCUITDOC_FORMAT"); v != "" {
		c.Output.Format = v
	}
	if v := os.Getenv("CIRCUITDOC_JOBS"); v != "" {
		if jobs, err := strconv.Atoi(v); err == nil && jobs >= 0 {
			c.Scan.Jobs = jobs
		}
	}
	if v := os.Getenv("CIRCUITDOC_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// HistoryDBPath returns the path to the history database.
func HistoryDBPath(dir string) string {
	return filepath.Join(dir, ".circuitdoc", "history.db")
}

// EnsureDataDir ensures the .circuitdoc directory exists.
func EnsureDataDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".circuitdoc"), 0755)
}
