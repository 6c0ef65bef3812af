package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/msalah0e/tourney/internal/ui"
	"github.com/msalah0e/tourney/internal/watch"
)

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Re-print the summary whenever the workspace file changes",
		Long: `Re-print the summary whenever the workspace file changes.

Run it in a second terminal while editing with other tourney commands.
Press Ctrl+C to stop.`,
		Run: func(cmd *cobra.Command, args []string) {
			w := loadWorkspace()
			printSummary(w.Store)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err := watch.File(ctx, w.Path, cfg.Watch.Debounce(), func() {
				if _, err := w.Reload(); err != nil {
					ui.Bad.Printf("  %v\n", err)
					return
				}
				fmt.Print("\033[H\033[2J")
				printSummary(w.Store)
			})
			if err != nil {
				fail("  %v\n", err)
			}
		},
	}
}
