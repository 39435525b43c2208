package cli

import (
	"github.com/seregonwar/CoreBaseApplication/internal/errors"
	"github.com/spf13/cobra"
)

func (a *app) completionCmd(root *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion script",
		Long: `Generate shell completion scripts for corebase.

Examples:
  # Bash
  corebase completion bash > /etc/bash_completion.d/corebase

  # Zsh
  corebase completion zsh > "${fpath[1]}/_corebase"

  # Fish
  corebase completion fish > ~/.config/fish/completions/corebase.fish`,
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return root.GenBashCompletion(a.stdout)
			case "zsh":
				return root.GenZshCompletion(a.stdout)
			case "fish":
				return root.GenFishCompletion(a.stdout, true)
			case "powershell":
				return root.GenPowerShellCompletion(a.stdout)
			default:
				return errors.New(errors.ErrInvalidParameter,
					"Unknown shell: "+args[0],
					"Supported shells: bash, zsh, fish, powershell")
			}
		},
	}
}
