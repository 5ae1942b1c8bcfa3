package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/certpaths/pkg/cache"
	"github.com/matzehuels/certpaths/pkg/catalog"
	"github.com/matzehuels/certpaths/pkg/pipeline"
)

// registerCompletions adds value completion for flags with a fixed domain.
func registerCompletions(root *cobra.Command) {
	vendors := make([]string, len(catalog.Vendors))
	for i, v := range catalog.Vendors {
		vendors[i] = string(v)
	}
	fixed := func(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return values, cobra.ShellCompDirectiveNoFileComp
		}
	}

	_ = root.RegisterFlagCompletionFunc("vendor", fixed(vendors...))
	_ = root.RegisterFlagCompletionFunc("cache-backend", fixed(cache.BackendFile, cache.BackendRedis, cache.BackendNone))
	_ = root.RegisterFlagCompletionFunc("log-level", fixed("debug", "info", "warn", "error"))
	_ = root.RegisterFlagCompletionFunc("catalog", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"json", "yaml", "yml", "toml"}, cobra.ShellCompDirectiveFilterFileExt
	})

	for _, cmd := range root.Commands() {
		if cmd.Flags().Lookup("format") != nil {
			_ = cmd.RegisterFlagCompletionFunc("format", fixed(
				pipeline.FormatSVG, pipeline.FormatDOT, pipeline.FormatJSON, pipeline.FormatPDF, pipeline.FormatPNG))
		}
	}
}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for certpaths.

To load completions:

Bash:
  $ source <(certpaths completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ certpaths completion bash > /etc/bash_completion.d/certpaths
  # macOS:
  $ certpaths completion bash > $(brew --prefix)/etc/bash_completion.d/certpaths

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ certpaths completion zsh > "${fpath[1]}/_certpaths"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ certpaths completion fish | source

  # To load completions for each session, execute once:
  $ certpaths completion fish > ~/.config/fish/completions/certpaths.fish

PowerShell:
  PS> certpaths completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> certpaths completion powershell > certpaths.ps1
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
