package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msalah0e/tourney/internal/config"
	"github.com/msalah0e/tourney/internal/graph"
	"github.com/msalah0e/tourney/internal/log"
	"github.com/msalah0e/tourney/internal/ui"
	"github.com/msalah0e/tourney/internal/workspace"
)

var version = "0.3.0"

var (
	cfg           *config.Config
	workspacePath string
	logLevel      string
)

var rootCmd = &cobra.Command{
	Use:   "tourney",
	Short: "tourney — design tournament structures as stage graphs",
	Long: ui.Brand.Sprint(ui.Trophy+" tourney") + " — design tournament structures from the terminal\n" +
		ui.Subtle.Sprint("Place stages, wire them together, tune their settings, export the result"),
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		if err := config.EnsureExists(); err != nil {
			log.Warn(cmd.Context()).Err(err).Msg("config: could not write defaults")
		}

		level := cfg.Log.Level
		if cmd.Flags().Changed("log-level") {
			level = logLevel
		}
		lvl, err := log.ParseLevel(level)
		if err != nil {
			fail("  %v\n", err)
		}
		log.SetLevel(lvl)

		if workspacePath == "" {
			workspacePath = config.WorkspacePath()
		}
	},
}

func init() {
	rootCmd.SetVersionTemplate("tourney {{ .Version }}\n")
	rootCmd.PersistentFlags().StringVar(&workspacePath, "workspace", "", "Workspace file (default $XDG_CONFIG_HOME/tourney/workspace.json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Diagnostics level: debug, info, warn, error, off")

	rootCmd.AddCommand(
		newCmd(),
		kindsCmd(),
		addCmd(),
		moveCmd(),
		renameCmd(),
		removeCmd(),
		connectCmd(),
		disconnectCmd(),
		fieldsCmd(),
		setCmd(),
		showCmd(),
		exportCmd(),
		importCmd(),
		viewCmd(),
		libraryCmd(),
		watchCmd(),
		editCmd(),
		historyCmd(),
		completionCmd(),
	)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

// fail prints a red message to stderr and exits 1.
func fail(format string, args ...any) {
	ui.Bad.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}

func loadWorkspace() *workspace.Workspace {
	w, err := workspace.Load(workspacePath, cfg.Export.FallbackName)
	if err != nil {
		fail("  Failed to load workspace: %v\n", err)
	}
	return w
}

func saveWorkspace(w *workspace.Workspace) {
	if err := w.Save(); err != nil {
		fail("  Failed to save workspace: %v\n", err)
	}
}

func resolveBlock(w *workspace.Workspace, ref string) graph.Block {
	id, err := w.Store.ResolveBlock(ref)
	if err != nil {
		fail("  %v\n", err)
	}
	b, _ := w.Store.Block(id)
	return b
}

func blockLine(b graph.Block) string {
	return fmt.Sprintf("%s %s", ui.Brand.Sprint(b.Title), ui.Subtle.Sprintf("(%s)", shortID(b.ID)))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
