package lint

import "slices"

// Plugin describes an external rule provider as seen by the resolver.
type Plugin struct {
	ID      string
	Version string   // semver; may be empty when the provider doesn't declare one
	Rules   []string // rule names without the plugin prefix
}

// HasRule reports whether the plugin provides the named rule.
func (p *Plugin) HasRule(name string) bool {
	return slices.Contains(p.Rules, name)
}

// PluginLoader locates plugins by identifier. It returns an error when the
// identifier cannot be found.
type PluginLoader interface {
	LoadPlugin(id string) (*Plugin, error)
}

// BuiltinRuleProvider is implemented by loaders that also know the rules
// built into the engine. Those rules are referenced without a prefix.
type BuiltinRuleProvider interface {
	BuiltinRules() []string
}
