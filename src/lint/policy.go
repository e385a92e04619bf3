package lint

import (
	"maps"
	"slices"
	"sort"

	"github.com/sofmeright/flatconf/src/config"
)

// EffectivePolicy is the merged configuration that governs one file.
// Callers should treat it as read-only; nested option values may be shared
// with the resolver.
type EffectivePolicy struct {
	// Ignored is set when a global ignore excluded the file. The rest of
	// the policy is empty in that case.
	Ignored         bool                         `json:"ignored,omitempty" yaml:"ignored,omitempty"`
	LanguageOptions config.LanguageOptions       `json:"languageOptions" yaml:"languageOptions"`
	LinterOptions   config.LinterOptions         `json:"linterOptions" yaml:"linterOptions"`
	Plugins         map[string]string            `json:"plugins" yaml:"plugins"`
	Rules           map[string]config.RuleConfig `json:"rules" yaml:"rules"`
	Settings        map[string]any               `json:"settings,omitempty" yaml:"settings,omitempty"`
	// Entries lists the indices of the entries that contributed, in order.
	Entries []int `json:"-" yaml:"-"`
}

// IsEmpty reports whether the policy enables nothing. The engine skips
// files with an empty policy.
func (p EffectivePolicy) IsEmpty() bool {
	return len(p.Plugins) == 0 &&
		len(p.Rules) == 0 &&
		len(p.Settings) == 0 &&
		p.LanguageOptions.IsZero() &&
		p.LinterOptions.IsZero()
}

// Rule returns the resolved configuration for a rule id.
func (p EffectivePolicy) Rule(id string) (config.RuleConfig, bool) {
	rc, ok := p.Rules[id]
	return rc, ok
}

// EnabledRules returns the sorted ids of rules whose severity is not off.
func (p EffectivePolicy) EnabledRules() []string {
	var ids []string
	for id, rc := range p.Rules {
		if rc.Severity.Enabled() {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// merge folds one entry into the policy. Later values win per language
// option field, per plugin name, per rule id and per settings key.
func (p *EffectivePolicy) merge(index int, e config.Entry) {
	p.Entries = append(p.Entries, index)

	lo := e.LanguageOptions
	if lo.EcmaVersion != 0 {
		p.LanguageOptions.EcmaVersion = lo.EcmaVersion
	}
	if lo.SourceType != "" {
		p.LanguageOptions.SourceType = lo.SourceType
	}
	if len(lo.Globals) > 0 {
		if p.LanguageOptions.Globals == nil {
			p.LanguageOptions.Globals = make(map[string]config.GlobalAccess, len(lo.Globals))
		}
		maps.Copy(p.LanguageOptions.Globals, lo.Globals)
	}
	if len(lo.ParserOptions) > 0 {
		p.LanguageOptions.ParserOptions = deepMerge(p.LanguageOptions.ParserOptions, lo.ParserOptions)
	}

	if v := e.LinterOptions.NoInlineConfig; v != nil {
		b := *v
		p.LinterOptions.NoInlineConfig = &b
	}
	if v := e.LinterOptions.ReportUnusedDisableDirectives; v != nil {
		s := *v
		p.LinterOptions.ReportUnusedDisableDirectives = &s
	}

	if len(e.Plugins) > 0 {
		if p.Plugins == nil {
			p.Plugins = make(map[string]string, len(e.Plugins))
		}
		for name, ref := range e.Plugins {
			p.Plugins[name] = ref.ID
		}
	}

	if len(e.Rules) > 0 {
		if p.Rules == nil {
			p.Rules = make(map[string]config.RuleConfig, len(e.Rules))
		}
		for id, rc := range e.Rules {
			// A bare severity keeps the options set by an earlier entry.
			if prev, ok := p.Rules[id]; ok && len(rc.Options) == 0 {
				rc.Options = prev.Options
			}
			rc.Options = slices.Clone(rc.Options)
			p.Rules[id] = rc
		}
	}

	if len(e.Settings) > 0 {
		p.Settings = deepMerge(p.Settings, e.Settings)
	}
}

// deepMerge returns a new map holding dst overlaid with src. Nested maps
// merge key by key; any other value from src replaces the one in dst.
func deepMerge(dst, src map[string]any) map[string]any {
	out := make(map[string]any, len(dst)+len(src))
	maps.Copy(out, dst)
	for k, v := range src {
		srcMap, srcIsMap := v.(map[string]any)
		dstMap, dstIsMap := out[k].(map[string]any)
		switch {
		case srcIsMap && dstIsMap:
			out[k] = deepMerge(dstMap, srcMap)
		case srcIsMap:
			out[k] = deepMerge(nil, srcMap)
		default:
			out[k] = v
		}
	}
	return out
}
