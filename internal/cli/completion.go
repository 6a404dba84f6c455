package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eventorbit/eventorbit/internal/draft"
)

var validShells = []string{"bash", "zsh", "fish", "powershell"}

var completionCmd = newCompletionCmd()

func newCompletionCmd() *cobra.Command {
	cmd := LeafCommand{
		Use:     "completion [SHELL]",
		Short:   "Generate shell completion script",
		Example: `  eval "$(eventorbit completion zsh)"`,
		Args:    cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := ""
			if len(args) > 0 {
				shell = args[0]
			} else {
				shell = detectShell()
				if shell == "" {
					return fmt.Errorf("could not detect shell from $SHELL; please specify one of %s", strings.Join(validShells, ", "))
				}
			}
			return runCompletion(cmd, shell)
		},
	}.Build()
	cmd.ValidArgs = validShells
	return cmd
}

func runCompletion(cmd *cobra.Command, shell string) error {
	root := cmd.Root()
	out := cmd.OutOrStdout()

	switch shell {
	case "bash":
		return root.GenBashCompletionV2(out, true)
	case "zsh":
		return root.GenZshCompletion(out)
	case "fish":
		return root.GenFishCompletion(out, true)
	case "powershell":
		return root.GenPowerShellCompletion(out)
	default:
		return fmt.Errorf("unsupported shell: %s (valid: %s)", shell, strings.Join(validShells, ", "))
	}
}

// detectShell reads $SHELL and returns a supported shell name, or "".
func detectShell() string {
	switch base := filepath.Base(os.Getenv("SHELL")); base {
	case "bash", "zsh", "fish":
		return base
	default:
		return ""
	}
}

// completeDraftKeys offers draft slugs for commands whose first argument
// names a draft.
func completeDraftKeys(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return draftKeys(homeDir, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func draftKeys(homeDir, prefix string) []string {
	reg, err := draft.ReadRegistry(homeDir)
	if err != nil {
		return nil
	}
	var out []string
	for _, d := range reg.Drafts {
		if strings.HasPrefix(d.Slug, prefix) {
			out = append(out, d.Slug+"\t"+d.Name)
		}
	}
	return out
}
