package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/msalah0e/tourney/internal/tui"
	"github.com/msalah0e/tourney/internal/ui"
)

func editCmd() *cobra.Command {
	var noMouse bool

	cmd := &cobra.Command{
		Use:     "edit",
		Aliases: []string{"ui", "tui"},
		Short:   "Open the interactive canvas",
		Long: `Open the interactive canvas.

  a        add a block under the last clicked point (n picks the kind)
  tab      select the next block; arrows nudge it; drag with the mouse
  c enter  connect the selected block to the next one you select
  i        inspect and edit fields (space toggles, enter edits)
  x        delete the selected block and its connections
  w        save to the workspace; q quits`,
		Run: func(cmd *cobra.Command, args []string) {
			w := loadWorkspace()

			model := tui.New(w.Store, tui.Options{Canvas: cfg.Canvas, Save: w.Save})
			opts := []tea.ProgramOption{tea.WithAltScreen()}
			if !noMouse {
				opts = append(opts, tea.WithMouseCellMotion())
			}
			if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
				fail("  %v\n", err)
			}
			ui.Subtle.Println("  Unsaved changes are discarded; press w in the editor to save")
		},
	}

	cmd.Flags().BoolVar(&noMouse, "no-mouse", false, "Disable mouse input")
	return cmd
}
