package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logsift/internal/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNew(t *testing.T) {
	cfg := New()

	assert.Equal(t, DefaultMode, cfg.Mode)
	assert.Equal(t, DefaultWorkers, cfg.Workers)
	assert.Equal(t, DefaultLongRunningThreshold, cfg.LongRunningThreshold)
	assert.Equal(t, DefaultLogSuffixes, cfg.LogSuffixes)
	require.NoError(t, cfg.Validate())

	cfg.LogSuffixes[0] = ".changed"
	assert.Equal(t, ".log", DefaultLogSuffixes[0], "defaults are copied")
}

func TestConfig_LoadFile(t *testing.T) {
	path := writeFile(t, "logsift.yaml", `
mode: strict
workers: 4
long_running_threshold: 2.5
levels: [INFO, ERROR]
output_dir: /tmp/reports
database:
  host: db.internal
  name: ci_logs
`)

	cfg := New()
	require.NoError(t, cfg.LoadFile(path, true))

	assert.Equal(t, "strict", cfg.Mode)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 2.5, cfg.LongRunningThreshold)
	assert.Equal(t, []string{"INFO", "ERROR"}, cfg.Levels)
	assert.Equal(t, "/tmp/reports", cfg.OutputJSONDir)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "ci_logs", cfg.Database.Name)
	assert.Equal(t, DefaultDBPort, cfg.Database.Port, "unset keys keep their defaults")
}

func TestConfig_LoadFile_Missing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")

	assert.NoError(t, New().LoadFile(missing, false))
	assert.Error(t, New().LoadFile(missing, true))
}

func TestConfig_LoadFile_Invalid(t *testing.T) {
	path := writeFile(t, "bad.yaml", "workers: [not, a, number]\n")
	assert.Error(t, New().LoadFile(path, true))
}

func TestConfig_LoadEnv(t *testing.T) {
	t.Setenv("LOGSIFT_MODE", "strict")
	t.Setenv("LOGSIFT_WORKERS", "6")
	t.Setenv("LOGSIFT_LONG_RUNNING_THRESHOLD", "30")
	t.Setenv("LOGSIFT_LEVELS", "INFO, WARN ,")
	t.Setenv("DB_DATABASE", "from_env")
	t.Setenv("LOGSIFT_MAX_LINE_LENGTH", "not-a-number")

	cfg := New()
	require.NoError(t, cfg.LoadEnv(""))

	assert.Equal(t, "strict", cfg.Mode)
	assert.Equal(t, 6, cfg.Workers)
	assert.Equal(t, 30.0, cfg.LongRunningThreshold)
	assert.Equal(t, []string{"INFO", "WARN"}, cfg.Levels)
	assert.Equal(t, "from_env", cfg.Database.Name)
	assert.Equal(t, DefaultMaxLineLength, cfg.MaxLineLength, "unparsable values are ignored")
}

func TestConfig_LoadEnv_DotEnvFile(t *testing.T) {
	const key = "LOGSIFT_OUTPUT_FILE"
	require.Empty(t, os.Getenv(key))
	t.Cleanup(func() { os.Unsetenv(key) })

	envFile := writeFile(t, ".env", key+"=from-dotenv.json\n")

	cfg := New()
	require.NoError(t, cfg.LoadEnv(envFile))
	assert.Equal(t, "from-dotenv.json", cfg.OutputJSONFile)

	assert.NoError(t, New().LoadEnv(filepath.Join(t.TempDir(), "missing.env")), "a missing .env file is not an error")
}

func TestConfig_ApplyFlags(t *testing.T) {
	cfg := New()
	cfg.ApplyFlags(Flags{Strict: true, Workers: 3, Verbose: true, NameFilter: "*.log"})

	assert.Equal(t, domain.ModeStrict, cfg.ParsedMode())
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "*.log", cfg.Flags.NameFilter)

	cfg = New()
	cfg.Workers = 5
	cfg.ApplyFlags(Flags{})
	assert.Equal(t, 5, cfg.Workers, "zero workers flag keeps the configured value")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"unknown mode", func(c *Config) { c.Mode = "lenient" }, true},
		{"zero workers", func(c *Config) { c.Workers = 0 }, true},
		{"negative threshold", func(c *Config) { c.LongRunningThreshold = -1 }, true},
		{"zero threshold", func(c *Config) { c.LongRunningThreshold = 0 }, false},
		{"zero max line length", func(c *Config) { c.MaxLineLength = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad_Layers(t *testing.T) {
	path := writeFile(t, "logsift.yaml", "workers: 2\nmode: tolerant\n")
	t.Setenv("LOGSIFT_WORKERS", "4")

	cfg, err := Load(Flags{ConfigFile: path, EnvFile: filepath.Join(t.TempDir(), "none.env"), Strict: true})
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Workers, "environment wins over the file")
	assert.Equal(t, "strict", cfg.Mode, "flags win over the file")

	cfg, err = Load(Flags{ConfigFile: path, Workers: 8})
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Workers, "flags win over the environment")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(Flags{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")})
	assert.Error(t, err)
}

func TestConfig_GetOutputPath(t *testing.T) {
	cfg := New()
	cfg.OutputJSONDir = "/var/reports"
	cfg.OutputJSONFile = "run.json"
	assert.Equal(t, "/var/reports/run.json", cfg.GetOutputPath())

	cfg.OutputJSONDir = "storage"
	assert.True(t, filepath.IsAbs(cfg.GetOutputPath()))
}
