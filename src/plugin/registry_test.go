package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sofmeright/flatconf/src/config"
	"github.com/sofmeright/flatconf/src/lint"
)

func TestBuiltinRegistry(t *testing.T) {
	r := Builtin()
	assert.Equal(t, []string{"eslint-plugin-node", "eslint-plugin-promise", "eslint-plugin-security"}, r.All())

	p, err := r.LoadPlugin("eslint-plugin-security")
	require.NoError(t, err)
	assert.Equal(t, "1.7.1", p.Version)
	assert.True(t, p.HasRule("detect-eval-with-expression"))
	assert.True(t, p.HasRule("detect-object-injection"))

	assert.Contains(t, r.BuiltinRules(), "no-var")
	assert.Contains(t, r.BuiltinRules(), "eqeqeq")
}

func TestRegistryLoadUnknown(t *testing.T) {
	_, err := Builtin().LoadPlugin("does-not-exist")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	rules := []string{"b-rule", "a-rule"}
	require.NoError(t, r.Register(&lint.Plugin{ID: "acme", Version: "1.0.0", Rules: rules}))

	rules[0] = "mutated"
	p, err := r.LoadPlugin("acme")
	require.NoError(t, err)
	assert.Equal(t, []string{"a-rule", "b-rule"}, p.Rules)

	p.Rules[0] = "mutated"
	again, err := r.LoadPlugin("acme")
	require.NoError(t, err)
	assert.Equal(t, "a-rule", again.Rules[0], "callers get copies")

	assert.ErrorContains(t, r.Register(&lint.Plugin{ID: "acme"}), "duplicate")
	assert.Error(t, r.Register(&lint.Plugin{}))
	assert.Error(t, r.Register(nil))
}

func TestBundledCatalogsAreUnique(t *testing.T) {
	for _, p := range Bundled() {
		seen := map[string]bool{}
		for _, rule := range p.Rules {
			assert.False(t, seen[rule], "%s lists %s twice", p.ID, rule)
			seen[rule] = true
		}
	}

	seen := map[string]bool{}
	for _, rule := range CoreRules() {
		assert.False(t, seen[rule], "core rule %s listed twice", rule)
		seen[rule] = true
	}
}

func TestResolveWithBuiltinRegistry(t *testing.T) {
	entries := []config.Entry{
		{
			Files: []string{"**/*.js"},
			LanguageOptions: config.LanguageOptions{
				EcmaVersion: 2021,
				SourceType:  config.SourceModule,
			},
			Plugins: map[string]config.PluginRef{
				"security": {ID: "eslint-plugin-security", Constraint: "^1.7"},
				"node":     {ID: "eslint-plugin-node"},
				"promise":  {ID: "eslint-plugin-promise"},
			},
			Rules: map[string]config.RuleConfig{
				"no-var":                               {Severity: config.SeverityError},
				"security/detect-eval-with-expression": {Severity: config.SeverityError},
				"node/prefer-global/buffer":            {Severity: config.SeverityWarn, Options: []any{"always"}},
				"promise/catch-or-return":              {Severity: config.SeverityWarn},
			},
			Ignores: []string{"target/**"},
		},
	}

	r, err := lint.NewResolver(entries, Builtin())
	require.NoError(t, err)

	p := r.Resolve("src/app.js")
	assert.Equal(t, 2021, p.LanguageOptions.EcmaVersion)
	assert.Equal(t, map[string]string{
		"security": "eslint-plugin-security",
		"node":     "eslint-plugin-node",
		"promise":  "eslint-plugin-promise",
	}, p.Plugins)
	assert.Equal(t, config.SeverityError, p.Rules["security/detect-eval-with-expression"].Severity)
	assert.Equal(t, []any{"always"}, p.Rules["node/prefer-global/buffer"].Options)

	assert.True(t, r.Resolve("target/out.js").IsEmpty())
}

func TestResolveWithBuiltinRegistryErrors(t *testing.T) {
	entries := []config.Entry{
		{
			Files:   []string{"**/*.js"},
			Plugins: map[string]config.PluginRef{"security": {ID: "eslint-plugin-security", Constraint: ">=2"}},
			Rules:   map[string]config.RuleConfig{"no-such-core-rule": {Severity: config.SeverityWarn}},
		},
	}

	_, err := lint.NewResolver(entries, Builtin())
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrPluginVersion)
	assert.ErrorIs(t, err, config.ErrUnknownRule)
}
