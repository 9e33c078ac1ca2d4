package commands

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inkstone-labs/inklist/internal/cli/config"
	"github.com/inkstone-labs/inklist/internal/cli/output"
	intconfig "github.com/inkstone-labs/inklist/internal/config"
	"github.com/inkstone-labs/inklist/pkg/list"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	List     *list.Config
	Renderer *output.Renderer
}

// NewCommandContext resolves the configuration, compiles the marker
// grammar, and builds a renderer for the command's output streams.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	listCfg, err := cfg.ListConfig()
	if err != nil {
		return nil, err
	}

	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		List:     listCfg,
		Renderer: r,
	}, nil
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to
// environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	markers := list.DefaultMarkers()
	if v := os.Getenv("INKLIST_MARKERS"); v != "" {
		markers = strings.Split(v, ",")
	}

	indentWidth := config.DefaultIndentWidth
	if v := os.Getenv("INKLIST_INDENT_WIDTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			indentWidth = n
		}
	}

	return &config.Config{
		Markers:      markers,
		ColonMarker:  os.Getenv("INKLIST_COLON_MARKER"),
		Filetypes:    intconfig.DefaultFiletypes(),
		IndentWidth:  indentWidth,
		UseTabs:      os.Getenv("INKLIST_USE_TABS") == "true",
		LogLevel:     getEnvOrDefault("INKLIST_LOG_LEVEL", config.DefaultLogLevel),
		LogFormat:    getEnvOrDefault("INKLIST_LOG_FORMAT", config.DefaultLogFormat),
		HistoryFile:  getEnvOrDefault("INKLIST_HISTORY_FILE", config.DefaultHistoryFile),
		Verbose:      os.Getenv("INKLIST_VERBOSE") == "true",
		OutputFormat: os.Getenv("INKLIST_OUTPUT"),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
