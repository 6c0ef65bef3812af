package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msalah0e/tourney/internal/activity"
	"github.com/msalah0e/tourney/internal/config"
	"github.com/msalah0e/tourney/internal/ui"
	"github.com/msalah0e/tourney/internal/workspace"
)

func journal() *activity.Journal {
	return activity.Open(config.ActivityPath())
}

// record journals a CLI edit. Journal failures never fail the command.
func record(w *workspace.Workspace, action, target, details string) {
	if err := journal().Record(action, w.Store.Name(), target, details); err != nil {
		ui.Warn.Printf("  %s could not write history: %v\n", ui.WarnIcon(), err)
	}
}

func historyCmd() *cobra.Command {
	var (
		count      int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"log"},
		Short:   "Show recent edits made from the command line",
		Run: func(cmd *cobra.Command, args []string) {
			entries, err := journal().Read(count)
			if err != nil {
				fail("  %v\n", err)
			}

			if jsonOutput {
				data, _ := json.MarshalIndent(entries, "", "  ")
				fmt.Println(string(data))
				return
			}

			if len(entries) == 0 {
				fmt.Println("  No edits recorded yet.")
				return
			}
			ui.Banner("history")
			printEntries(entries)
			fmt.Printf("\n  Showing %d most recent entries\n", len(entries))
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 20, "Number of entries (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	cmd.AddCommand(
		historySearchCmd(),
		historyClearCmd(),
	)
	return cmd
}

func historySearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search recorded edits",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			results, err := journal().Search(args[0], 50)
			if err != nil || len(results) == 0 {
				fmt.Printf("  No entries matching %q\n", args[0])
				return
			}
			ui.Banner("search results")
			printEntries(results)
			fmt.Printf("\n  %d results\n", len(results))
		},
	}
}

func historyClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the edit history",
		Run: func(cmd *cobra.Command, args []string) {
			if err := journal().Clear(); err != nil {
				fail("  Failed to clear: %v\n", err)
			}
			ui.Good.Printf("  %s History cleared\n", ui.StatusIcon(true))
		},
	}
}

func printEntries(entries []activity.Entry) {
	var rows [][]string
	for _, e := range entries {
		rows = append(rows, []string{
			e.Timestamp.Local().Format("Jan 02 15:04"),
			e.Action,
			e.Graph,
			e.Target,
			truncate(e.Details, 40),
		})
	}
	ui.Table([]string{"Time", "Action", "Tournament", "Target", "Details"}, rows)
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max-3] + "..."
	}
	return s
}
