package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// shells lists the completion targets in the order help shows them.
var shells = []string{"bash", "zsh", "fish", "powershell"}

// completionCommand creates the completion command. Profile names and
// --engine values complete as well as subcommands.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion <shell>",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for bash, zsh, fish or powershell.

Besides subcommands and flags, the scripts complete:
  - built-in profile names for --profile and "profiles show|export"
  - .toml files for --profile-file and .csv files for --mapping
  - wasm and exec for --engine`,
		Example: `  source <(masterymap completion bash)
  masterymap completion zsh > "${fpath[1]}/_masterymap"
  masterymap completion fish > ~/.config/fish/completions/masterymap.fish
  masterymap completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             shells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, w := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(w, true)
			case "zsh":
				return root.GenZshCompletion(w)
			case "fish":
				return root.GenFishCompletion(w, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(w)
			}
			return fmt.Errorf("unsupported shell %q", args[0])
		},
	}
}
