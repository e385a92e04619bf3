package config

import (
	"encoding/json"
	"fmt"
	"strings"
)

// LatestEcmaVersion is what ecmaVersion "latest" resolves to.
const LatestEcmaVersion = 2026

// SourceType selects module-system semantics for parsed files.
type SourceType string

const (
	SourceScript   SourceType = "script"
	SourceModule   SourceType = "module"
	SourceCommonJS SourceType = "commonjs"
)

// GlobalAccess is the declared access level of a global variable.
type GlobalAccess string

const (
	GlobalReadonly GlobalAccess = "readonly"
	GlobalWritable GlobalAccess = "writable"
	GlobalOff      GlobalAccess = "off"
)

// Entry is one element of the ordered configuration sequence.
type Entry struct {
	Name            string                `json:"name,omitempty" yaml:"name,omitempty"`
	Files           []string              `json:"files,omitempty" yaml:"files,omitempty"`
	Ignores         []string              `json:"ignores,omitempty" yaml:"ignores,omitempty"`
	LanguageOptions LanguageOptions       `json:"languageOptions,omitempty" yaml:"languageOptions,omitempty"`
	LinterOptions   LinterOptions         `json:"linterOptions,omitempty" yaml:"linterOptions,omitempty"`
	Plugins         map[string]PluginRef  `json:"plugins,omitempty" yaml:"plugins,omitempty"`
	Rules           map[string]RuleConfig `json:"rules,omitempty" yaml:"rules,omitempty"`
	Settings        map[string]any        `json:"settings,omitempty" yaml:"settings,omitempty"`
}

// IsGlobalIgnore reports whether the entry carries nothing but ignore
// patterns (and optionally a name). Such entries exclude matching files
// from every other entry.
func (e Entry) IsGlobalIgnore() bool {
	return len(e.Ignores) > 0 &&
		len(e.Files) == 0 &&
		e.LanguageOptions.IsZero() &&
		e.LinterOptions.IsZero() &&
		len(e.Plugins) == 0 &&
		len(e.Rules) == 0 &&
		len(e.Settings) == 0
}

// Label returns the entry name, or its index when unnamed.
func (e Entry) Label(i int) string {
	if e.Name != "" {
		return e.Name
	}
	return fmt.Sprintf("#%d", i)
}

// LanguageOptions describes how selected files are parsed.
// Zero values mean "not set" and never override earlier entries.
type LanguageOptions struct {
	EcmaVersion   int                     `json:"ecmaVersion,omitempty" yaml:"ecmaVersion,omitempty"`
	SourceType    SourceType              `json:"sourceType,omitempty" yaml:"sourceType,omitempty"`
	Globals       map[string]GlobalAccess `json:"globals,omitempty" yaml:"globals,omitempty"`
	ParserOptions map[string]any          `json:"parserOptions,omitempty" yaml:"parserOptions,omitempty"`
}

// IsZero reports whether no option is set.
func (o LanguageOptions) IsZero() bool {
	return o.EcmaVersion == 0 && o.SourceType == "" && len(o.Globals) == 0 && len(o.ParserOptions) == 0
}

// LinterOptions controls engine behavior around inline directives.
type LinterOptions struct {
	NoInlineConfig                *bool     `json:"noInlineConfig,omitempty" yaml:"noInlineConfig,omitempty"`
	ReportUnusedDisableDirectives *Severity `json:"reportUnusedDisableDirectives,omitempty" yaml:"reportUnusedDisableDirectives,omitempty"`
}

// IsZero reports whether no option is set.
func (o LinterOptions) IsZero() bool {
	return o.NoInlineConfig == nil && o.ReportUnusedDisableDirectives == nil
}

// PluginRef names an external plugin, optionally pinned to a semver
// constraint: "eslint-plugin-security@^1.7.0", "@scope/plugin@>=2".
type PluginRef struct {
	ID         string
	Constraint string
}

// ParsePluginRef splits an identifier from its version constraint.
// The leading "@" of a scoped package is part of the identifier.
func ParsePluginRef(s string) (PluginRef, error) {
	s = strings.TrimSpace(s)
	search := s
	offset := 0
	if strings.HasPrefix(s, "@") {
		search = s[1:]
		offset = 1
	}

	ref := PluginRef{ID: s}
	if at := strings.Index(search, "@"); at >= 0 {
		ref.ID = s[:at+offset]
		ref.Constraint = strings.TrimSpace(s[at+offset+1:])
		if ref.Constraint == "" {
			return PluginRef{}, detail(ErrMalformed, "plugin %q has an empty version constraint", s)
		}
	}
	if ref.ID == "" || ref.ID == "@" {
		return PluginRef{}, detail(ErrMalformed, "empty plugin identifier")
	}
	return ref, nil
}

func (r PluginRef) String() string {
	if r.Constraint == "" {
		return r.ID
	}
	return r.ID + "@" + r.Constraint
}

// MarshalJSON writes the reference in its string form.
func (r PluginRef) MarshalJSON() ([]byte, error) { return json.Marshal(r.String()) }

// MarshalYAML writes the reference in its string form.
func (r PluginRef) MarshalYAML() (any, error) { return r.String(), nil }

// RuleConfig is a rule's severity plus its rule-specific options.
type RuleConfig struct {
	Severity Severity
	Options  []any
}

// tuple renders the rule the way it is written in config files:
// a bare severity, or [severity, options...].
func (r RuleConfig) tuple() any {
	if len(r.Options) == 0 {
		return r.Severity.String()
	}
	out := make([]any, 0, len(r.Options)+1)
	out = append(out, r.Severity.String())
	return append(out, r.Options...)
}

// MarshalJSON writes the rule as a severity or severity tuple.
func (r RuleConfig) MarshalJSON() ([]byte, error) { return json.Marshal(r.tuple()) }

// MarshalYAML writes the rule as a severity or severity tuple.
func (r RuleConfig) MarshalYAML() (any, error) { return r.tuple(), nil }

// SplitRuleID separates the plugin namespace from a rule id.
//
//	"no-var"                          -> ("", "no-var")
//	"@/no-var"                        -> ("", "no-var")
//	"node/prefer-global/buffer"       -> ("node", "prefer-global/buffer")
//	"@scope/plugin/rule"              -> ("@scope/plugin", "rule")
func SplitRuleID(id string) (plugin, rule string) {
	if strings.HasPrefix(id, "@/") {
		return "", id[2:]
	}
	if strings.HasPrefix(id, "@") {
		i := strings.LastIndex(id, "/")
		if i < 0 {
			return "", id
		}
		return id[:i], id[i+1:]
	}
	i := strings.Index(id, "/")
	if i < 0 {
		return "", id
	}
	return id[:i], id[i+1:]
}
