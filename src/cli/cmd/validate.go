package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/sofmeright/flatconf/src/output"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load and check the configuration",
	Long: `Load the configuration, locate every referenced plugin and check every
rule id. Any problem aborts with a message naming the offending entry.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	start := time.Now()
	s, err := loadSession()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	color := output.UseColor()
	path := s.cfg.Path
	if path == "" {
		path = output.Dimmed("(none)", color)
	}

	sec := output.NewSection(w, "Config", time.Since(start), color)
	sec.Row("%-12s%s", "file", path)
	sec.Row("%-12s%s", "base", s.resolver.BaseDir())
	sec.Row("%-12s%d", "entries", len(s.cfg.Entries))
	sec.Row("%-12s%d", "plugins", len(s.resolver.Plugins()))
	sec.Separator()
	sec.Row("%-12s%s  valid", "status", output.StatusIcon("success", color))
	sec.Close()
	return nil
}
