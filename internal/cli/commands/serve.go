package commands

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/inkstone-labs/inklist/internal/cli/config"
	intconfig "github.com/inkstone-labs/inklist/internal/config"
	"github.com/inkstone-labs/inklist/internal/host"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the gesture server for editor integration",
		Long: `Start the gesture server for editor integration.

The server communicates over stdin/stdout using JSON-RPC. Editors open
documents, report changes, and request gesture edits; the server answers
with buffer edit directives the editor applies itself.

The project root is taken from the client's initialization request
(rootUri parameter), falling back to the directory the server was
started in. The project's inklist.yaml is watched and reloaded on
change.`,
		Example: `  # Start the gesture server (usually launched by an editor plugin)
  inklist serve`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd)
		},
	}

	return cmd
}

func runServe(cmd *cobra.Command) error {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	server := host.NewServer(cmd.InOrStdin(), cmd.OutOrStdout(), logger)
	server.SetProjectRoot(cfg.ProjectRoot)

	configFile := intconfig.FindConfigFile(cfg.ProjectRoot)
	if configFile == "" {
		// Watch where the file would appear so a later init is picked up.
		configFile = filepath.Join(cfg.ProjectRoot, intconfig.ConfigFileName)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	eg, egctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		// On clean disconnect the group context stays live, so release
		// the watcher explicitly.
		defer cancel()
		return server.Run()
	})
	eg.Go(func() error {
		return server.WatchConfig(egctx, configFile)
	})

	return eg.Wait()
}
