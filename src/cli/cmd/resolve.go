package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sofmeright/flatconf/src/output"
)

var resolveFormat string

var resolveCmd = &cobra.Command{
	Use:   "resolve <path>...",
	Short: "Print the effective policy for files",
	Long: `Print the merged policy (language options, plugins, rules, settings)
that applies to each path. Paths matching no entry print an empty policy.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringVar(&resolveFormat, "format", "json", "output format: json or yaml")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	s, err := loadSession()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for i, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", arg, err)
		}
		if len(args) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "# %s\n", arg)
		}
		if err := output.WritePolicy(w, s.resolver.Resolve(abs), resolveFormat); err != nil {
			return err
		}
	}
	return nil
}
