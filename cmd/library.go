package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msalah0e/tourney/internal/library"
	"github.com/msalah0e/tourney/internal/ui"
)

func libraryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "library",
		Aliases: []string{"lib"},
		Short:   "Save and reopen tournament designs",
	}

	cmd.AddCommand(
		librarySaveCmd(),
		libraryOpenCmd(),
		libraryListCmd(),
		libraryRemoveCmd(),
	)

	return cmd
}

func openLibrary() *library.Library {
	lib, err := library.Open(cfg.LibraryPath())
	if err != nil {
		fail("  Failed to open library: %v\n", err)
	}
	return lib
}

func librarySaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save [name]",
		Short: "Save the workspace under a name (default: the tournament name)",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			w := loadWorkspace()
			lib := openLibrary()
			defer lib.Close()

			name := w.Store.Name()
			if len(args) == 1 {
				name = args[0]
			}
			if err := lib.Save(cmd.Context(), name, w.Store); err != nil {
				fail("  %v\n", err)
			}
			ui.Good.Printf("  %s Saved %s\n", ui.StatusIcon(true), ui.Brand.Sprint(name))
		},
	}
}

func libraryOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "open <name>",
		Short:             "Replace the workspace with a saved design",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: designCompletionFunc,
		Run: func(cmd *cobra.Command, args []string) {
			w := loadWorkspace()
			lib := openLibrary()
			defer lib.Close()

			rep, err := lib.Load(cmd.Context(), args[0], w.Store)
			if err != nil {
				fail("  %v\n", err)
			}
			saveWorkspace(w)
			record(w, "library open", "", args[0])
			ui.Good.Printf("  %s Opened %s: %d blocks, %d connections\n",
				ui.StatusIcon(true), ui.Brand.Sprint(rep.Name), rep.Blocks, rep.Connections)
		},
	}
}

func libraryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List saved designs",
		Aliases: []string{"ls"},
		Run: func(cmd *cobra.Command, args []string) {
			lib := openLibrary()
			defer lib.Close()

			entries, err := lib.List(cmd.Context())
			if err != nil {
				fail("  %v\n", err)
			}
			if len(entries) == 0 {
				fmt.Println("  No saved designs")
				ui.Info.Println("  tourney library save [name]")
				return
			}

			ui.Banner("library")
			var rows [][]string
			for _, e := range entries {
				rows = append(rows, []string{
					e.Name,
					fmt.Sprintf("%d", e.Blocks),
					fmt.Sprintf("%d", e.Connections),
					e.SavedAt.Local().Format("2006-01-02 15:04"),
				})
			}
			ui.Table([]string{"Name", "Blocks", "Connections", "Saved"}, rows)
			fmt.Printf("\n  %d designs\n", len(entries))
		},
	}
}

func libraryRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "rm <name>",
		Short:             "Delete a saved design",
		Aliases:           []string{"remove", "delete"},
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: designCompletionFunc,
		Run: func(cmd *cobra.Command, args []string) {
			lib := openLibrary()
			defer lib.Close()

			if err := lib.Delete(cmd.Context(), args[0]); err != nil {
				fail("  %v\n", err)
			}
			ui.Good.Printf("  %s Deleted %s\n", ui.StatusIcon(true), args[0])
		},
	}
}
