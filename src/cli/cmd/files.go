package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sofmeright/flatconf/src/lint"
	"github.com/sofmeright/flatconf/src/output"
)

var (
	filesChanged      bool
	filesTargetBranch string
	filesShowRules    bool
)

var filesCmd = &cobra.Command{
	Use:   "files [root]",
	Short: "List the files the configuration applies to",
	Long: `Walk root (default: the base directory), resolve every file and list
those with a non-empty policy. Global ignores prune the walk.

With --changed, only files changed against the git baseline are listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFiles,
}

func init() {
	filesCmd.Flags().BoolVar(&filesChanged, "changed", false, "only files changed relative to the target branch")
	filesCmd.Flags().StringVar(&filesTargetBranch, "target-branch", "", "branch to diff against with --changed")
	filesCmd.Flags().BoolVar(&filesShowRules, "rules", false, "list enabled rules per file")
	rootCmd.AddCommand(filesCmd)
}

func runFiles(cmd *cobra.Command, args []string) error {
	s, err := loadSession()
	if err != nil {
		return err
	}

	root := s.resolver.BaseDir()
	if len(args) > 0 {
		root = args[0]
	}

	start := time.Now()
	files, err := s.resolver.CollectFiles(root)
	if err != nil {
		return fmt.Errorf("collecting files: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if filesChanged {
		delta := &lint.Delta{RootDir: s.resolver.BaseDir(), TargetBranch: filesTargetBranch, Log: logger}
		changedSet, err := delta.ChangedFiles(ctx)
		if err != nil {
			logger.Warn("delta failed, listing all files", zap.Error(err))
		}
		all := len(files)
		files = lint.FilterByDelta(files, changedSet)
		logger.Debug("delta filter", zap.Int("changed", len(files)), zap.Int("total", all))
	}

	policies, err := s.resolver.ResolveAll(ctx, lint.Paths(files))
	if err != nil {
		return err
	}

	var rows []output.FileRow
	for i, p := range policies {
		if p.IsEmpty() {
			continue
		}
		rows = append(rows, output.FileRow{Path: files[i].Path, Policy: p})
	}

	w := cmd.OutOrStdout()
	color := output.UseColor()
	output.SectionStart(w, "flatconf_files", "Files")
	sec := output.NewSection(w, "Files", time.Since(start), color)
	output.FilesTable(sec, rows, color)
	if filesShowRules {
		for _, r := range rows {
			sec.Separator()
			sec.Row("%s", output.Bold(r.Path, color))
			output.RuleList(sec, r.Policy, color)
		}
	}
	sec.Separator()
	sec.Row("%d of %d files covered", len(rows), len(files))
	sec.Close()
	output.SectionEnd(w, "flatconf_files")
	return nil
}
