package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pisica/pkg/appearance"
	"github.com/matzehuels/pisica/pkg/export"
	"github.com/matzehuels/pisica/pkg/geometry"
	"github.com/matzehuels/pisica/pkg/render"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for pisica.

Bash:
  $ source <(pisica completion bash)

Zsh:
  $ pisica completion zsh > "${fpath[1]}/_pisica"

Fish:
  $ pisica completion fish | source

PowerShell:
  PS> pisica completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// registerAppearanceCompletions offers the closed value sets of the
// appearance flags to the shell.
func registerAppearanceCompletions(cmd *cobra.Command) {
	fixed := func(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return values, cobra.ShellCompDirectiveNoFileComp
		}
	}

	var breeds, accessories []string
	for _, b := range geometry.Breeds() {
		breeds = append(breeds, b.String())
	}
	for _, a := range appearance.Accessories() {
		accessories = append(accessories, a.String())
	}

	_ = cmd.RegisterFlagCompletionFunc("breed", fixed(breeds...))
	_ = cmd.RegisterFlagCompletionFunc("show", fixed(accessories...))
	_ = cmd.RegisterFlagCompletionFunc("hide", fixed(accessories...))
	_ = cmd.RegisterFlagCompletionFunc("rasterizer", fixed(render.Rasterizers()...))
	if cmd.Flags().Lookup("format") != nil {
		_ = cmd.RegisterFlagCompletionFunc("format", fixed(export.FormatPNG, export.FormatSVG, export.FormatPDF))
	}
}
