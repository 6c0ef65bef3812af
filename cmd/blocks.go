package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msalah0e/tourney/internal/block"
	"github.com/msalah0e/tourney/internal/graph"
	"github.com/msalah0e/tourney/internal/placement"
	"github.com/msalah0e/tourney/internal/ui"
)

func newCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new [name]",
		Short: "Start a fresh, empty tournament in the workspace",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			name := cfg.Export.FallbackName
			if len(args) == 1 {
				name = args[0]
			}

			w := loadWorkspace()
			w.Reset(name)
			saveWorkspace(w)
			record(w, "new", "", "")

			ui.Good.Printf("  %s Started %s\n", ui.StatusIcon(true), ui.Brand.Sprint(w.Store.Name()))
		},
	}
}

func kindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List block kinds and their default settings",
		Run: func(cmd *cobra.Command, args []string) {
			ui.Banner("block kinds")
			var rows [][]string
			for _, k := range block.Kinds() {
				rows = append(rows, []string{string(k), block.Label(k), block.DefaultConfig(k).String()})
			}
			ui.Table([]string{"Kind", "Label", "Defaults"}, rows)
		},
	}
}

func addCmd() *cobra.Command {
	var (
		x, y               float64
		pointerX, pointerY float64
		title              string
	)

	cmd := &cobra.Command{
		Use:   "add <kind>",
		Short: "Place a new block on the canvas",
		Long: `Place a new block on the canvas.

The kind may be typed loosely ("double elim", "rr"). Give --x/--y for the
block's top-left corner, or --pointer-x/--pointer-y to centre the block
under a point the way a drop does.

  tourney add group --title Pools
  tourney add "single elimination" --pointer-x 400 --pointer-y 120`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: kindCompletionFunc,
		Run: func(cmd *cobra.Command, args []string) {
			k, err := block.LookupKind(args[0])
			if err != nil {
				fail("  %v\n", err)
			}

			pos := graph.Position{X: x, Y: y}
			if cmd.Flags().Changed("pointer-x") || cmd.Flags().Changed("pointer-y") {
				half := placement.Extents{W: cfg.Canvas.BlockWidth / 2, H: cfg.Canvas.BlockHeight / 2}
				pos = placement.DropPosition(placement.Point{X: pointerX, Y: pointerY}, placement.Point{}, half)
			}

			w := loadWorkspace()
			b := w.Store.AddBlock(k, pos, title)
			saveWorkspace(w)
			record(w, "add", b.Title, string(b.Kind))

			ui.Good.Printf("  %s Added %s at (%g, %g)\n", ui.StatusIcon(true), blockLine(b), b.Position.X, b.Position.Y)
		},
	}

	cmd.Flags().Float64Var(&x, "x", 0, "Left edge in canvas units")
	cmd.Flags().Float64Var(&y, "y", 0, "Top edge in canvas units")
	cmd.Flags().Float64Var(&pointerX, "pointer-x", 0, "Drop point x; centres the block on it")
	cmd.Flags().Float64Var(&pointerY, "pointer-y", 0, "Drop point y; centres the block on it")
	cmd.Flags().StringVar(&title, "title", "", "Block title (default: the kind's label)")
	return cmd
}

func moveCmd() *cobra.Command {
	var dx, dy float64
	var nudge string

	cmd := &cobra.Command{
		Use:               "move <block>",
		Short:             "Move a block by a delta (positions never go below zero)",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: blockCompletionFunc,
		Run: func(cmd *cobra.Command, args []string) {
			w := loadWorkspace()
			b := resolveBlock(w, args[0])

			delta := placement.DragDelta(placement.Point{X: dx, Y: dy})
			if nudge != "" {
				dir, ok := map[string]placement.Direction{
					"up": placement.Up, "down": placement.Down,
					"left": placement.Left, "right": placement.Right,
				}[nudge]
				if !ok {
					fail("  Unknown direction: %s (use up, down, left or right)\n", nudge)
				}
				delta = placement.Nudge(dir, cfg.Canvas.NudgeStep)
			}

			w.Store.MovePosition(b.ID, delta)
			saveWorkspace(w)
			record(w, "move", b.Title, fmt.Sprintf("%+g,%+g", delta.DX, delta.DY))

			moved, _ := w.Store.Block(b.ID)
			ui.Good.Printf("  %s Moved %s to (%g, %g)\n", ui.StatusIcon(true), blockLine(moved), moved.Position.X, moved.Position.Y)
		},
	}

	cmd.Flags().Float64Var(&dx, "dx", 0, "Horizontal delta")
	cmd.Flags().Float64Var(&dy, "dy", 0, "Vertical delta")
	cmd.Flags().StringVar(&nudge, "nudge", "", "Move one nudge step: up, down, left or right")
	return cmd
}

func renameCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "rename <block> <title>",
		Short:             "Change a block's title",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: blockCompletionFunc,
		Run: func(cmd *cobra.Command, args []string) {
			w := loadWorkspace()
			b := resolveBlock(w, args[0])
			w.Store.UpdateTitle(b.ID, args[1])
			saveWorkspace(w)
			record(w, "rename", args[1], "was "+b.Title)

			ui.Good.Printf("  %s Renamed %s → %s\n", ui.StatusIcon(true), b.Title, ui.Brand.Sprint(args[1]))
		},
	}
}

func removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "rm <block>",
		Short:             "Remove a block and every connection touching it",
		Aliases:           []string{"remove", "delete"},
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: blockCompletionFunc,
		Run: func(cmd *cobra.Command, args []string) {
			w := loadWorkspace()
			b := resolveBlock(w, args[0])
			out, in := w.Store.ConnectionsOf(b.ID)
			w.Store.RemoveBlock(b.ID)
			saveWorkspace(w)
			record(w, "rm", b.Title, "")

			msg := fmt.Sprintf("  %s Removed %s", ui.StatusIcon(true), blockLine(b))
			if n := len(out) + len(in); n > 0 {
				msg += fmt.Sprintf(" and %d connection(s)", n)
			}
			ui.Good.Println(msg)
		},
	}
}
