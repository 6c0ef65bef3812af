package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msalah0e/tourney/internal/block"
	"github.com/msalah0e/tourney/internal/inspector"
	"github.com/msalah0e/tourney/internal/ui"
)

func fieldsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:               "fields <block>",
		Short:             "Show a block's editable fields",
		Aliases:           []string{"inspect"},
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: blockCompletionFunc,
		Run: func(cmd *cobra.Command, args []string) {
			w := loadWorkspace()
			b := resolveBlock(w, args[0])
			fields := inspector.Fields(b)

			if jsonOutput {
				data, _ := json.MarshalIndent(fields, "", "  ")
				fmt.Println(string(data))
				return
			}

			ui.Banner(block.Label(b.Kind))
			var rows [][]string
			for _, f := range fields {
				rng := ""
				if f.Type == inspector.Int {
					rng = fmt.Sprintf("%d..%d", f.Min, f.Max)
				}
				rows = append(rows, []string{f.Name, f.Type.String(), fmt.Sprint(f.Value), rng})
			}
			ui.Table([]string{"Field", "Type", "Value", "Range"}, rows)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func setCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <block> <field> <value>",
		Short: "Set a block field (numbers outside the range are clamped)",
		Long: `Set a block field.

Numbers outside a field's range are clamped to the nearest bound. Booleans
accept true/false, 1/0, t/f. The field "title" sets the block title.

  tourney set Pools teams_per_group 6
  tourney set Playoffs third_place true`,
		Args:              cobra.ExactArgs(3),
		ValidArgsFunction: blockCompletionFunc,
		Run: func(cmd *cobra.Command, args []string) {
			w := loadWorkspace()
			b := resolveBlock(w, args[0])

			if err := inspector.SetField(w.Store, b.ID, args[1], args[2]); err != nil {
				fail("  %v\n", err)
			}
			saveWorkspace(w)
			record(w, "set", b.Title, args[1]+"="+args[2])

			updated, _ := w.Store.Block(b.ID)
			value := any(updated.Title)
			if args[1] != inspector.TitleField {
				value = updated.Config[args[1]]
			}
			ui.Good.Printf("  %s %s.%s = %v\n", ui.StatusIcon(true), updated.Title, args[1], value)
		},
	}
}
