package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParsePluginRef(t *testing.T) {
	tests := []struct {
		in   string
		want PluginRef
	}{
		{"eslint-plugin-security", PluginRef{ID: "eslint-plugin-security"}},
		{"eslint-plugin-node@^11.1.0", PluginRef{ID: "eslint-plugin-node", Constraint: "^11.1.0"}},
		{"@scope/plugin", PluginRef{ID: "@scope/plugin"}},
		{"@scope/plugin@>=2, <3", PluginRef{ID: "@scope/plugin", Constraint: ">=2, <3"}},
		{"  padded  ", PluginRef{ID: "padded"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePluginRef(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.String(), got.String())
		})
	}

	for _, bad := range []string{"", "@", "x@", "@scope/x@ "} {
		_, err := ParsePluginRef(bad)
		assert.ErrorIs(t, err, ErrMalformed, bad)
	}
}

func TestSplitRuleID(t *testing.T) {
	tests := []struct {
		id, plugin, rule string
	}{
		{"no-var", "", "no-var"},
		{"@/no-var", "", "no-var"},
		{"security/detect-eval-with-expression", "security", "detect-eval-with-expression"},
		{"node/prefer-global/buffer", "node", "prefer-global/buffer"},
		{"@scope/rule", "@scope", "rule"},
		{"@scope/plugin/rule", "@scope/plugin", "rule"},
		{"@scope", "", "@scope"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			plugin, rule := SplitRuleID(tt.id)
			assert.Equal(t, tt.plugin, plugin)
			assert.Equal(t, tt.rule, rule)
		})
	}
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in   any
		want Severity
	}{
		{"off", SeverityOff},
		{"WARN", SeverityWarn},
		{"error", SeverityError},
		{"2", SeverityError},
		{0, SeverityOff},
		{int64(1), SeverityWarn},
		{float64(2), SeverityError},
	}
	for _, tt := range tests {
		got, err := ParseSeverity(tt.in)
		require.NoError(t, err, "%v", tt.in)
		assert.Equal(t, tt.want, got, "%v", tt.in)
	}

	for _, bad := range []any{"fatal", -1, 3, 1.5, true, nil} {
		_, err := ParseSeverity(bad)
		assert.ErrorIs(t, err, ErrBadSeverity, "%v", bad)
	}
}

func TestParseEcmaVersion(t *testing.T) {
	tests := []struct {
		in   any
		want int
	}{
		{3, 3},
		{5, 5},
		{6, 2015},
		{12, 2021},
		{2021, 2021},
		{float64(2022), 2022},
		{"latest", LatestEcmaVersion},
	}
	for _, tt := range tests {
		got, err := ParseEcmaVersion(tt.in)
		require.NoError(t, err, "%v", tt.in)
		assert.Equal(t, tt.want, got, "%v", tt.in)
	}

	for _, bad := range []any{4, 2014, LatestEcmaVersion + 1, "es6", 6.5} {
		_, err := ParseEcmaVersion(bad)
		assert.ErrorIs(t, err, ErrBadLanguageOptions, "%v", bad)
	}
}

func TestParseGlobalAccess(t *testing.T) {
	for in, want := range map[any]GlobalAccess{
		true:        GlobalWritable,
		false:       GlobalReadonly,
		"readable":  GlobalReadonly,
		"writeable": GlobalWritable,
		"off":       GlobalOff,
	} {
		got, err := ParseGlobalAccess(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseGlobalAccess("public")
	assert.ErrorIs(t, err, ErrBadLanguageOptions)
}

func TestIsGlobalIgnore(t *testing.T) {
	assert.True(t, Entry{Ignores: []string{"dist/"}}.IsGlobalIgnore())
	assert.True(t, Entry{Name: "ignored", Ignores: []string{"dist/"}}.IsGlobalIgnore())
	assert.False(t, Entry{}.IsGlobalIgnore())
	assert.False(t, Entry{Files: []string{"**/*.js"}, Ignores: []string{"dist/"}}.IsGlobalIgnore())
	assert.False(t, Entry{
		Ignores: []string{"dist/"},
		Rules:   map[string]RuleConfig{"no-var": {Severity: SeverityError}},
	}.IsGlobalIgnore())
}

func TestRuleConfigMarshal(t *testing.T) {
	rules := map[string]RuleConfig{
		"no-var": {Severity: SeverityError},
		"semi":   {Severity: SeverityWarn, Options: []any{"always"}},
	}

	data, err := json.Marshal(rules)
	require.NoError(t, err)
	assert.JSONEq(t, `{"no-var": "error", "semi": ["warn", "always"]}`, string(data))

	out, err := yaml.Marshal(rules)
	require.NoError(t, err)
	assert.YAMLEq(t, "no-var: error\nsemi: [warn, always]\n", string(out))
}
