package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/msalah0e/tourney/internal/block"
	"github.com/msalah0e/tourney/internal/config"
	"github.com/msalah0e/tourney/internal/library"
	"github.com/msalah0e/tourney/internal/workspace"
)

// completionCmd generates shell completion scripts.
func completionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate completion scripts for your shell.

  # Bash (add to ~/.bashrc)
  eval "$(tourney completion bash)"

  # Zsh (add to ~/.zshrc)
  eval "$(tourney completion zsh)"

  # Fish
  tourney completion fish | source

  # PowerShell
  tourney completion powershell | Out-String | Invoke-Expression`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Run: func(cmd *cobra.Command, args []string) {
			switch args[0] {
			case "bash":
				_ = rootCmd.GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				_ = rootCmd.GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				_ = rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				_ = rootCmd.GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
		},
	}

	return cmd
}

// kindCompletionFunc completes block kinds.
func kindCompletionFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var completions []string
	for _, k := range block.Kinds() {
		completions = append(completions, string(k)+"\t"+block.Label(k))
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// blockCompletionFunc completes block ids from the workspace.
// PersistentPreRun does not run during completion, so paths are resolved here.
func blockCompletionFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	path := workspacePath
	if path == "" {
		path = config.WorkspacePath()
	}
	w, err := workspace.Load(path, "")
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var completions []string
	for _, b := range w.Store.Blocks() {
		completions = append(completions, b.ID+"\t"+b.Title+" ("+block.Label(b.Kind)+")")
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// designCompletionFunc completes saved design names.
func designCompletionFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	lib, err := library.Open(config.Load().LibraryPath())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	defer lib.Close()

	entries, err := lib.List(context.Background())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var completions []string
	for _, e := range entries {
		completions = append(completions, e.Name)
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}
