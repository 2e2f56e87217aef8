package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for curlscope.

To load completions:

Bash:
  $ source <(curlscope completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ curlscope completion bash > /etc/bash_completion.d/curlscope
  # macOS:
  $ curlscope completion bash > $(brew --prefix)/etc/bash_completion.d/curlscope

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ curlscope completion zsh > "${fpath[1]}/_curlscope"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ curlscope completion fish | source

  # To load completions for each session, execute once:
  $ curlscope completion fish > ~/.config/fish/completions/curlscope.fish

PowerShell:
  PS> curlscope completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> curlscope completion powershell > curlscope.ps1
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

func init() {
	rootCmd.AddCommand(completionCmd)
}
