package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sofmeright/flatconf/src/config"
	"github.com/sofmeright/flatconf/src/lint"
	"github.com/sofmeright/flatconf/src/logging"
	"github.com/sofmeright/flatconf/src/plugin"
)

var (
	cfgFile   string
	pluginDir string
	baseDir   string
	verbose   bool
	logger    = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "flatconf",
	Short: "Resolve flat lint configuration",
	Long: `flatconf loads an ordered lint configuration, validates its plugins and
rules, and resolves the effective policy that governs each file.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(verbose)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: flatconf.yml)")
	rootCmd.PersistentFlags().StringVar(&pluginDir, "plugin-dir", "", "directory of plugin manifests to register")
	rootCmd.PersistentFlags().StringVar(&baseDir, "cwd", "", "base directory patterns are relative to (default: config file directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}

// ExitCode maps an Execute error to a process exit status: 2 for
// configuration errors, 1 for anything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var cerr *config.Error
	if errors.As(err, &cerr) {
		return 2
	}
	return 1
}

// session is everything a command needs, built once per invocation and
// passed explicitly.
type session struct {
	cfg      *config.Config
	registry *plugin.Registry
	resolver *lint.Resolver
}

func loadSession() (*session, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	reg := plugin.Builtin()
	if pluginDir != "" {
		n, err := reg.LoadManifests(pluginDir)
		if err != nil {
			return nil, fmt.Errorf("loading plugins: %w", err)
		}
		logger.Debug("plugin manifests registered", zap.String("dir", pluginDir), zap.Int("count", n))
	}

	dir, err := resolveBaseDir(cfg)
	if err != nil {
		return nil, err
	}

	r, err := lint.NewResolver(cfg.Entries, reg,
		lint.WithLogger(logger),
		lint.WithBaseDir(dir),
	)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, registry: reg, resolver: r}, nil
}

// resolveBaseDir picks --cwd, then the config file's directory, then the
// working directory.
func resolveBaseDir(cfg *config.Config) (string, error) {
	dir := baseDir
	if dir == "" && cfg.Path != "" {
		dir = filepath.Dir(cfg.Path)
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting working directory: %w", err)
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving base directory: %w", err)
	}
	return abs, nil
}
