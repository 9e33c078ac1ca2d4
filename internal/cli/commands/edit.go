package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/inkstone-labs/inklist/internal/tui"
)

// NewEditCommand creates the edit command.
func NewEditCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Open a list document in the terminal editor",
		Long: `Open a modal terminal editor with the gesture engine wired to its keys.

Enter continues the list under the cursor, Tab and Shift-Tab reindent
the current item, and o/O open siblings below or above. Press ? inside
the editor for the full key reference.`,
		Example: `  # Edit a file (a missing file is created on save)
  inklist edit notes.md

  # Open a scratch buffer
  inklist edit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return runEdit(cmd, path)
		},
	}

	return cmd
}

func runEdit(cmd *cobra.Command, path string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("edit needs an interactive terminal; use 'inklist transform' for scripted edits")
	}

	cmdCtx.Logger.Debug("starting editor", "path", path)

	return tui.Run(tui.Options{
		Path:       path,
		Config:     cmdCtx.List,
		IndentUnit: cmdCtx.Cfg.IndentUnit(),
	})
}
