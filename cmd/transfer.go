package cmd

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/msalah0e/tourney/internal/persist"
	"github.com/msalah0e/tourney/internal/ui"
)

func exportCmd() *cobra.Command {
	var (
		format  string
		out     string
		copyOut bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the tournament as JSON, YAML, DOT or HTML",
		Long: `Export the tournament.

Without --out the result goes to stdout. --out with a directory writes a
file named after the tournament inside it.

  tourney export --format yaml
  tourney export --out ./designs/
  tourney export --format dot | dot -Tpng -o cup.png`,
		Run: func(cmd *cobra.Command, args []string) {
			if format == "" {
				format = cfg.Export.Format
			}
			f, err := persist.ParseFormat(format)
			if err != nil {
				fail("  %v (use json, yaml, dot or html)\n", err)
			}

			w := loadWorkspace()

			if out != "" {
				path := out
				if info, err := os.Stat(out); err == nil && info.IsDir() {
					path = filepath.Join(out, persist.SuggestedFilename(w.Store.Name(), f))
				}
				if err := w.Bridge.ExportFile(path, f); err != nil {
					fail("  Export failed: %v\n", err)
				}
				ui.Good.Printf("  %s Exported %s\n", ui.StatusIcon(true), path)
			}

			if out != "" && !copyOut {
				return
			}
			data, err := w.Bridge.Render(f)
			if err != nil {
				fail("  Export failed: %v\n", err)
			}
			if copyOut {
				if err := clipboard.WriteAll(string(data)); err != nil {
					fail("  Clipboard unavailable: %v\n", err)
				}
				ui.Good.Printf("  %s Copied %s to clipboard\n", ui.StatusIcon(true), f)
			}
			if !copyOut {
				fmt.Print(string(data))
				if f == persist.JSON {
					fmt.Println()
				}
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Export format: json, yaml, dot or html (default from config)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to this file or directory instead of stdout")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Copy the export to the clipboard")
	return cmd
}

func importCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the workspace with a JSON or YAML document",
		Long: `Replace the workspace with a document.

Broken block or connection entries are skipped and counted; a document
whose top level is unusable is rejected and the workspace is left as it
was. Use "-" to read stdin.`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			w := loadWorkspace()

			var (
				rep persist.Report
				err error
			)
			switch {
			case args[0] == "-":
				data, rerr := io.ReadAll(os.Stdin)
				if rerr != nil {
					fail("  Failed to read stdin: %v\n", rerr)
				}
				f := persist.JSON
				if format != "" {
					f, err = persist.ParseFormat(format)
					if err != nil {
						fail("  %v\n", err)
					}
				}
				rep, err = w.Bridge.Import(data, f)
			case format != "":
				f, perr := persist.ParseFormat(format)
				if perr != nil {
					fail("  %v\n", perr)
				}
				data, rerr := os.ReadFile(args[0])
				if rerr != nil {
					fail("  Failed to read file: %v\n", rerr)
				}
				rep, err = w.Bridge.Import(data, f)
			default:
				rep, err = w.Bridge.ImportFile(args[0])
			}
			if err != nil {
				fail("  Import failed: %v\n", err)
			}
			saveWorkspace(w)
			record(w, "import", "", args[0])

			ui.Good.Printf("  %s Imported %s: %d blocks, %d connections\n",
				ui.StatusIcon(true), ui.Brand.Sprint(rep.Name), rep.Blocks, rep.Connections)
			if rep.DroppedBlocks > 0 || rep.DroppedConnections > 0 {
				ui.Warn.Printf("  %s Skipped %d block(s) and %d connection(s) that were malformed\n",
					ui.WarnIcon(), rep.DroppedBlocks, rep.DroppedConnections)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Document format: json or yaml (default from extension)")
	return cmd
}

func viewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Open the canvas as an HTML page in the browser",
		Run: func(cmd *cobra.Command, args []string) {
			w := loadWorkspace()
			if w.Store.Stats().Blocks == 0 {
				fmt.Println("  Empty canvas: add some blocks first")
				return
			}

			htmlPath := filepath.Join(os.TempDir(), persist.SuggestedFilename(w.Store.Name(), persist.HTML))
			if err := w.Bridge.ExportFile(htmlPath, persist.HTML); err != nil {
				fail("  Failed to write HTML: %v\n", err)
			}

			var openCmd *exec.Cmd
			switch runtime.GOOS {
			case "darwin":
				openCmd = exec.Command("open", htmlPath)
			case "linux":
				openCmd = exec.Command("xdg-open", htmlPath)
			default:
				openCmd = exec.Command("cmd", "/c", "start", htmlPath)
			}

			if err := openCmd.Start(); err != nil {
				// Fallback: just print the path
				fmt.Printf("  HTML written to: %s\n", htmlPath)
				fmt.Println("  Open it in your browser to see the canvas")
				return
			}

			ui.Good.Printf("  %s Opened %s\n", ui.StatusIcon(true), ui.Brand.Sprint(w.Store.Name()))
			ui.Subtle.Printf("  %s\n", htmlPath)
		},
	}
}
