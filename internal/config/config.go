package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"logsift/internal/domain"
)

// Config holds all configuration for the application
type Config struct {
	// Classification settings
	Mode                 string   `yaml:"mode"`
	Levels               []string `yaml:"levels"`
	LongRunningThreshold float64  `yaml:"long_running_threshold"`

	// Ingestion settings
	Workers        int  `yaml:"workers"`
	KeepBlankLines bool `yaml:"keep_blank_lines"`
	MaxLineLength  int  `yaml:"max_line_length"`

	// Discovery settings
	LogSuffixes   []string `yaml:"log_suffixes"`
	PathsToIgnore []string `yaml:"paths_to_ignore"`

	// Output settings
	OutputJSONFile string `yaml:"output_file"`
	OutputJSONDir  string `yaml:"output_dir"`

	LogLevel string `yaml:"log_level"`

	Database DatabaseConfig `yaml:"database"`

	// Command flags
	Flags Flags `yaml:"-"`
}

// DatabaseConfig holds MySQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// Flags holds command-line flags
type Flags struct {
	ConfigFile string
	EnvFile    string
	Strict     bool
	Workers    int
	Verbose    bool
	NameFilter string
	JSON       bool
	Out        string
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		Mode:                 DefaultMode,
		LongRunningThreshold: DefaultLongRunningThreshold,
		Workers:              DefaultWorkers,
		MaxLineLength:        DefaultMaxLineLength,
		OutputJSONFile:       DefaultOutputJSONFile,
		OutputJSONDir:        DefaultOutputJSONDir,
		LogLevel:             DefaultLogLevel,
		Database: DatabaseConfig{
			Host: DefaultDBHost,
			Port: DefaultDBPort,
			User: DefaultDBUser,
			Name: DefaultDBName,
		},
		Flags: Flags{Workers: DefaultWorkers},
	}
	// Copy defaults so callers can modify them freely
	cfg.LogSuffixes = append([]string(nil), DefaultLogSuffixes...)
	cfg.PathsToIgnore = append([]string(nil), DefaultPathsToIgnore...)
	return cfg
}

// Load builds the configuration in layers: defaults, YAML file, .env and
// environment variables, then command flags.
func Load(flags Flags) (*Config, error) {
	cfg := New()

	path, required := flags.ConfigFile, true
	if path == "" {
		path, required = DefaultConfigFile, false
	}
	if err := cfg.LoadFile(path, required); err != nil {
		return nil, err
	}

	envFile := flags.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := cfg.LoadEnv(envFile); err != nil {
		return nil, err
	}

	cfg.ApplyFlags(flags)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile merges a YAML config file into c. A missing file is an error only
// when required is true.
func (c *Config) LoadFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// LoadEnv loads envFile into the process environment, if it exists, and
// applies LOGSIFT_* and DB_* variables. Variables already set in the
// environment win over the file.
func (c *Config) LoadEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	c.Mode = getenv("LOGSIFT_MODE", c.Mode)
	c.Workers = getenvInt("LOGSIFT_WORKERS", c.Workers)
	c.LongRunningThreshold = getenvFloat("LOGSIFT_LONG_RUNNING_THRESHOLD", c.LongRunningThreshold)
	c.MaxLineLength = getenvInt("LOGSIFT_MAX_LINE_LENGTH", c.MaxLineLength)
	c.OutputJSONDir = getenv("LOGSIFT_OUTPUT_DIR", c.OutputJSONDir)
	c.OutputJSONFile = getenv("LOGSIFT_OUTPUT_FILE", c.OutputJSONFile)
	c.LogLevel = getenv("LOGSIFT_LOG_LEVEL", c.LogLevel)
	if v := os.Getenv("LOGSIFT_LEVELS"); v != "" {
		c.Levels = splitList(v)
	}

	c.Database.Host = getenv("DB_HOST", c.Database.Host)
	c.Database.Port = getenv("DB_PORT", c.Database.Port)
	c.Database.User = getenv("DB_USERNAME", c.Database.User)
	c.Database.Password = getenv("DB_PASSWORD", c.Database.Password)
	c.Database.Name = getenv("DB_DATABASE", c.Database.Name)
	return nil
}

// ApplyFlags applies command flag overrides
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags
	if flags.Strict {
		c.Mode = "strict"
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Verbose {
		c.LogLevel = "debug"
	}
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if _, err := domain.ParseMode(c.Mode); err != nil {
		return err
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.LongRunningThreshold < 0 {
		return fmt.Errorf("long_running_threshold must not be negative, got %g", c.LongRunningThreshold)
	}
	if c.MaxLineLength <= 0 {
		return fmt.Errorf("max_line_length must be positive, got %d", c.MaxLineLength)
	}
	return nil
}

// ParsedMode returns the configured Mode
func (c *Config) ParsedMode() domain.Mode {
	mode, _ := domain.ParseMode(c.Mode)
	return mode
}

// GetOutputPath returns the absolute path of the JSON report file
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
