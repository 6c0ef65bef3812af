package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/msalah0e/tourney/internal/block"
	"github.com/msalah0e/tourney/internal/graph"
	"github.com/msalah0e/tourney/internal/persist"
	"github.com/msalah0e/tourney/internal/ui"
)

func showCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:               "show [block]",
		Short:             "Summarise the workspace, or one block and its neighbours",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: blockCompletionFunc,
		Run: func(cmd *cobra.Command, args []string) {
			w := loadWorkspace()

			if len(args) == 1 {
				b := resolveBlock(w, args[0])
				output, err := graph.RenderShow(w.Store, b.ID, ui.BrandFn, ui.SubtleFn, ui.InfoFn)
				if err != nil {
					fail("  %v\n", err)
				}
				fmt.Println()
				fmt.Print(output)
				fmt.Println()
				return
			}

			if jsonOutput {
				data, err := persist.Marshal(persist.Export(w.Store, time.Now()), persist.JSON)
				if err != nil {
					fail("  %v\n", err)
				}
				fmt.Println(string(data))
				return
			}

			printSummary(w.Store)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the workspace document as JSON")
	return cmd
}

func printSummary(s *graph.Store) {
	stats := s.Stats()
	ui.Banner(s.Name())

	if stats.Blocks == 0 {
		fmt.Println("  Empty canvas. Get started:")
		fmt.Println()
		ui.Info.Println("  tourney add group --title Pools")
		ui.Info.Println("  tourney add \"single elimination\" --x 300")
		ui.Info.Println("  tourney connect Pools \"Single Elimination\"")
		return
	}

	ui.KV("Blocks", stats.Blocks)
	ui.KV("Connections", stats.Connections)
	fmt.Println()

	var rows [][]string
	for _, b := range s.Blocks() {
		out, in := s.ConnectionsOf(b.ID)
		rows = append(rows, []string{
			shortID(b.ID),
			b.Title,
			block.Label(b.Kind),
			fmt.Sprintf("%g, %g", b.Position.X, b.Position.Y),
			fmt.Sprintf("%d in / %d out", len(in), len(out)),
		})
	}
	ui.Table([]string{"ID", "Title", "Kind", "Position", "Links"}, rows)
	fmt.Println()

	order, err := graph.RenderOrder(s, ui.BrandFn, ui.SubtleFn)
	switch {
	case errors.Is(err, graph.ErrCycle):
		fmt.Printf("  %s %v\n", ui.WarnIcon(), err)
	case err != nil:
		fail("  %v\n", err)
	default:
		ui.Subtle.Println("  Stage order")
		fmt.Print(order)
	}
}

