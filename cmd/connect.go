package cmd

import (
	"github.com/spf13/cobra"

	"github.com/msalah0e/tourney/internal/connect"
	"github.com/msalah0e/tourney/internal/ui"
)

func connectCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "connect <from> <to>",
		Short:             "Feed the output of one block into another",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: blockCompletionFunc,
		Run: func(cmd *cobra.Command, args []string) {
			w := loadWorkspace()
			from := resolveBlock(w, args[0])
			to := resolveBlock(w, args[1])

			// Same path as the canvas: start on the source, complete on the target
			var session connect.Session
			session.Start(from.ID)
			c, err := session.Complete(w.Store, to.ID)
			if err != nil {
				fail("  %v\n", err)
			}
			saveWorkspace(w)
			record(w, "connect", from.Title, from.Title+" -> "+to.Title)

			ui.Good.Printf("  %s %s ──▶ %s %s\n", ui.StatusIcon(true), blockLine(from), blockLine(to), ui.Subtle.Sprint(shortID(c.ID)))
		},
	}
}

func disconnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect <connection> | <from> <to>",
		Short: "Remove a connection by id, or by its two endpoints",
		Args:  cobra.RangeArgs(1, 2),
		Run: func(cmd *cobra.Command, args []string) {
			w := loadWorkspace()

			var id string
			if len(args) == 1 {
				var err error
				id, err = w.Store.ResolveConnection(args[0])
				if err != nil {
					fail("  %v\n", err)
				}
			} else {
				from := resolveBlock(w, args[0])
				to := resolveBlock(w, args[1])
				out, _ := w.Store.ConnectionsOf(from.ID)
				for _, c := range out {
					if c.To == to.ID {
						id = c.ID
					}
				}
				if id == "" {
					fail("  %s is not connected to %s\n", from.Title, to.Title)
				}
			}

			w.Store.RemoveConnection(id)
			saveWorkspace(w)
			record(w, "disconnect", id, "")
			ui.Good.Printf("  %s Removed connection %s\n", ui.StatusIcon(true), shortID(id))
		},
	}
}
