package config

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadConfig_Defaults verifies defaults apply when no config sources exist.
func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	defer func() { _ = os.Chdir(oldWd) }()

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"-", "*", "+", ">"}, cfg.Markers)
	assert.Empty(t, cfg.ColonMarker)
	assert.Equal(t, DefaultIndentWidth, cfg.IndentWidth)
	assert.False(t, cfg.UseTabs)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "auto", cfg.OutputFormat)
	assert.Equal(t, "  ", cfg.IndentUnit())

	// History file resolves relative to the project root.
	assert.True(t, filepath.IsAbs(cfg.HistoryFile))
	assert.Equal(t, filepath.Join(cfg.ProjectRoot, ".inklist", "history"), cfg.HistoryFile)
}

// TestLoadConfig_FileValues verifies values load from an explicit config file.
func TestLoadConfig_FileValues(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "inklist.yaml")
	cfgContent := `markers:
  - "-"
  - ">"
colon_marker: ">"
filetypes:
  - markdown
indent_width: 4
use_tabs: false
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgContent), 0600))

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"-", ">"}, cfg.Markers)
	assert.Equal(t, ">", cfg.ColonMarker)
	assert.Equal(t, []string{"markdown"}, cfg.Filetypes)
	assert.Equal(t, 4, cfg.IndentWidth)
	assert.Equal(t, "    ", cfg.IndentUnit())

	// Explicit config file pins the project root to its directory.
	assert.Equal(t, tmpDir, cfg.ProjectRoot)
	assert.Equal(t, cfgPath, GetConfigFileUsed())
}

// TestLoadConfig_FlagPrecedence tests that flags override env vars and file.
func TestLoadConfig_FlagPrecedence(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "inklist.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("indent_width: 4\n"), 0600))

	require.NoError(t, os.Setenv("INKLIST_INDENT_WIDTH", "8"))
	defer func() { _ = os.Unsetenv("INKLIST_INDENT_WIDTH") }()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("indent-width", 0, "spaces per indent level")
	require.NoError(t, flags.Set("indent-width", "3"))

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.IndentWidth, "flag value should override config file and env var")
}

// TestLoadConfig_EnvPrecedenceOverFile tests that env vars override the file.
func TestLoadConfig_EnvPrecedenceOverFile(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "inklist.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("indent_width: 4\n"), 0600))

	require.NoError(t, os.Setenv("INKLIST_INDENT_WIDTH", "8"))
	defer func() { _ = os.Unsetenv("INKLIST_INDENT_WIDTH") }()

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.IndentWidth, "env var should override config file")
}

// TestLoadConfig_FlagNotSetUsesEnv tests that unset flags fall back to env vars.
func TestLoadConfig_FlagNotSetUsesEnv(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "inklist.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("indent_width: 4\n"), 0600))

	require.NoError(t, os.Setenv("INKLIST_INDENT_WIDTH", "8"))
	defer func() { _ = os.Unsetenv("INKLIST_INDENT_WIDTH") }()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("indent-width", 0, "spaces per indent level")
	// Note: not calling flags.Set(), so Changed is false

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.IndentWidth, "env var should be used when flag is not set")
}

// TestLoadConfig_EnvMarkersSlice tests that a comma-separated env var
// populates the marker list.
func TestLoadConfig_EnvMarkersSlice(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "inklist.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("indent_width: 2\n"), 0600))

	require.NoError(t, os.Setenv("INKLIST_MARKERS", "-,>"))
	defer func() { _ = os.Unsetenv("INKLIST_MARKERS") }()

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"-", ">"}, cfg.Markers)
}

// TestLoadConfig_TabsFlagRemap tests the --tabs flag maps to use_tabs.
func TestLoadConfig_TabsFlagRemap(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "inklist.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("use_tabs: false\n"), 0600))

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Bool("tabs", false, "indent with tabs")
	require.NoError(t, flags.Set("tabs", "true"))

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)

	assert.True(t, cfg.UseTabs)
	assert.Equal(t, "\t", cfg.IndentUnit())
}

// TestLoadConfig_ProjectDirFlag tests that --project-dir sets the root.
func TestLoadConfig_ProjectDirFlag(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "inklist.yaml"), []byte("indent_width: 4\n"), 0600))

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("project-dir", "", "project root directory")
	require.NoError(t, flags.Set("project-dir", tmpDir))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, tmpDir, cfg.ProjectRoot)
	assert.Equal(t, 4, cfg.IndentWidth, "config file should be discovered in project dir")
}

// TestLoadConfig_InvalidMarkers tests that a bad marker set fails the load.
func TestLoadConfig_InvalidMarkers(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "inklist.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("markers: [\"\"]\n"), 0600))

	_, err := LoadConfig(cfgPath, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid marker configuration")
}

// TestLoadConfig_HistoryFileExpansion tests env var expansion in paths.
func TestLoadConfig_HistoryFileExpansion(t *testing.T) {
	ResetConfig()

	histDir := t.TempDir()
	require.NoError(t, os.Setenv("INKLIST_TEST_HIST", histDir))
	defer func() { _ = os.Unsetenv("INKLIST_TEST_HIST") }()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "inklist.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("history_file: ${INKLIST_TEST_HIST}/history\n"), 0600))

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(histDir, "history"), cfg.HistoryFile)
}

func TestExpandEnvVars(t *testing.T) {
	require.NoError(t, os.Setenv("TEST_VAR_ONE", "value_one"))
	require.NoError(t, os.Setenv("TEST_VAR_TWO", "value_two"))
	defer func() {
		_ = os.Unsetenv("TEST_VAR_ONE")
		_ = os.Unsetenv("TEST_VAR_TWO")
	}()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "single variable",
			input:    "${TEST_VAR_ONE}",
			expected: "value_one",
		},
		{
			name:     "variable in path",
			input:    "/path/to/${TEST_VAR_ONE}/file",
			expected: "/path/to/value_one/file",
		},
		{
			name:     "unset variable stays as-is",
			input:    "${UNSET_VARIABLE}",
			expected: "${UNSET_VARIABLE}",
		},
		{
			name:     "no variables",
			input:    "plain string",
			expected: "plain string",
		},
		{
			name:     "mixed set and unset",
			input:    "${TEST_VAR_ONE}:${UNSET_VAR}",
			expected: "value_one:${UNSET_VAR}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := expandEnvVars(tt.input)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolvePathRelativeTo(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		baseDir  string
		expected string
	}{
		{
			name:     "relative path joins base",
			path:     ".inklist/history",
			baseDir:  "/project",
			expected: filepath.Join("/project", ".inklist/history"),
		},
		{
			name:     "absolute path unchanged",
			path:     "/var/hist",
			baseDir:  "/project",
			expected: "/var/hist",
		},
		{
			name:     "empty path unchanged",
			path:     "",
			baseDir:  "/project",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, resolvePathRelativeTo(tt.path, tt.baseDir))
		})
	}
}

// TestConfig_Validate tests the Validate method.
func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Markers:     []string{"-", "*"},
			IndentWidth: 2,
		}
	}

	tests := []struct {
		name      string
		mutate    func(*Config)
		wantErr   bool
		errSubstr string
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:      "zero indent width",
			mutate:    func(c *Config) { c.IndentWidth = 0 },
			wantErr:   true,
			errSubstr: "indent_width",
		},
		{
			name:      "empty marker",
			mutate:    func(c *Config) { c.Markers = []string{""} },
			wantErr:   true,
			errSubstr: "marker",
		},
		{
			name:      "bad log level",
			mutate:    func(c *Config) { c.LogLevel = "trace" },
			wantErr:   true,
			errSubstr: "log_level",
		},
		{
			name:      "bad log format",
			mutate:    func(c *Config) { c.LogFormat = "xml" },
			wantErr:   true,
			errSubstr: "log_format",
		},
		{
			name:      "bad output format",
			mutate:    func(c *Config) { c.OutputFormat = "yaml" },
			wantErr:   true,
			errSubstr: "output format",
		},
		{
			name:    "empty enums are allowed",
			mutate:  func(c *Config) { c.LogLevel, c.LogFormat, c.OutputFormat = "", "", "" },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errSubstr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestEnsureHistoryDir(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := &Config{HistoryFile: filepath.Join(tmpDir, "nested", "dir", "history")}

	require.NoError(t, cfg.EnsureHistoryDir())

	info, err := os.Stat(filepath.Join(tmpDir, "nested", "dir"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Empty history file is a no-op.
	empty := &Config{}
	require.NoError(t, empty.EnsureHistoryDir())
}

// TestNewLogger tests logger construction from config settings.
func TestNewLogger(t *testing.T) {
	t.Run("text format", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&Config{LogLevel: "info", LogFormat: "text"}, &buf)
		logger.Info("hello", "key", "value")
		assert.Contains(t, buf.String(), "msg=hello")
		assert.Contains(t, buf.String(), "key=value")
	})

	t.Run("json format", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&Config{LogLevel: "info", LogFormat: "json"}, &buf)
		logger.Info("hello")
		assert.Contains(t, buf.String(), `"msg":"hello"`)
	})

	t.Run("level filters debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&Config{LogLevel: "info"}, &buf)
		logger.Debug("hidden")
		assert.Empty(t, buf.String())
	})

	t.Run("debug level passes debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&Config{LogLevel: "debug"}, &buf)
		logger.Debug("shown")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("nil config discards", func(t *testing.T) {
		logger := NewLogger(nil, os.Stderr)
		require.NotNil(t, logger)
		logger.Info("discarded")
	})
}

// TestGetLogger tests context retrieval and the discard fallback.
func TestGetLogger(t *testing.T) {
	t.Run("missing logger falls back to discard", func(t *testing.T) {
		logger := GetLogger(context.Background())
		require.NotNil(t, logger)
	})

	t.Run("stored logger is returned", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		ctx := context.WithValue(context.Background(), LoggerKey(), logger)
		assert.Same(t, logger, GetLogger(ctx))
	})
}
