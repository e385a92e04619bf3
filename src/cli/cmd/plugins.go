package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sofmeright/flatconf/src/lint"
	"github.com/sofmeright/flatconf/src/output"
	"github.com/sofmeright/flatconf/src/plugin"
)

var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "List the plugins available to the configuration",
	RunE:  runPlugins,
}

func init() {
	rootCmd.AddCommand(pluginsCmd)
}

func runPlugins(cmd *cobra.Command, args []string) error {
	reg := plugin.Builtin()
	if pluginDir != "" {
		if _, err := reg.LoadManifests(pluginDir); err != nil {
			return err
		}
	}

	var plugins []*lint.Plugin
	for _, id := range reg.All() {
		p, err := reg.LoadPlugin(id)
		if err != nil {
			return err
		}
		plugins = append(plugins, p)
	}

	color := output.UseColor()
	sec := output.NewSection(cmd.OutOrStdout(), "Plugins", 0, color)
	output.PluginTable(sec, plugins, color)
	sec.Separator()
	sec.Row("%d plugins, %d core rules", len(plugins), len(reg.BuiltinRules()))
	sec.Close()
	return nil
}
