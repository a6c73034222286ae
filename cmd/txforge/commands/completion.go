package commands

import (
	"os"

	"github.com/spf13/cobra"
)

// Completion returns the completion command for shell autocompletion.
func Completion() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for txforge.

To load completions:

Bash:
  $ source <(txforge completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ txforge completion bash > /etc/bash_completion.d/txforge
  # macOS:
  $ txforge completion bash > $(brew --prefix)/etc/bash_completion.d/txforge

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  # To load completions for each session, execute once:
  $ txforge completion zsh > "${fpath[1]}/_txforge"
  # You will need to start a new shell for this setup to take effect.

Fish:
  $ txforge completion fish | source
  # To load completions for each session, execute once:
  $ txforge completion fish > ~/.config/fish/completions/txforge.fish

PowerShell:
  PS> txforge completion powershell | Out-String | Invoke-Expression
  # To load completions for every new session, run:
  PS> txforge completion powershell > txforge.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
	return cmd
}
