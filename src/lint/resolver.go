// Package lint resolves a flat configuration sequence into the effective
// policy for a file: which entries apply, and the language options,
// plugins and rule severities they merge into.
package lint

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sofmeright/flatconf/src/config"
)

// DefaultIgnores are global ignore patterns applied before any entry.
var DefaultIgnores = []string{"**/node_modules/", ".git/"}

// Resolver computes effective policies from an ordered, validated
// configuration. It is immutable after NewResolver returns and safe for
// concurrent use.
type Resolver struct {
	baseDir        string
	entries        []compiledEntry
	globalIgnores  patternList
	builtin        map[string]bool
	plugins        map[string]*Plugin
	log            *zap.Logger
	defaultIgnores bool
	extraBuiltins  []string
}

type compiledEntry struct {
	index   int
	entry   config.Entry
	files   patternList
	ignores patternList
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for load-time reporting.
func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.log = l
		}
	}
}

// WithBaseDir sets the directory patterns are relative to. Absolute paths
// passed to Resolve are made relative to it; without a base directory,
// absolute paths match nothing.
func WithBaseDir(dir string) Option {
	return func(r *Resolver) {
		if dir != "" {
			r.baseDir = filepath.Clean(dir)
		}
	}
}

// WithBuiltinRules adds rule ids the engine provides without a plugin.
func WithBuiltinRules(ids ...string) Option {
	return func(r *Resolver) {
		r.extraBuiltins = append(r.extraBuiltins, ids...)
	}
}

// WithoutDefaultIgnores disables DefaultIgnores.
func WithoutDefaultIgnores() Option {
	return func(r *Resolver) { r.defaultIgnores = false }
}

// NewResolver validates entries against loader and compiles them.
//
// Every problem is reported, not just the first: the returned error joins
// one *config.Error per offending entry field. A nil loader means no plugin
// can be found.
func NewResolver(entries []config.Entry, loader PluginLoader, opts ...Option) (*Resolver, error) {
	r := &Resolver{
		log:            zap.NewNop(),
		builtin:        map[string]bool{},
		plugins:        map[string]*Plugin{},
		defaultIgnores: true,
	}
	for _, opt := range opts {
		opt(r)
	}

	if bp, ok := loader.(BuiltinRuleProvider); ok {
		for _, id := range bp.BuiltinRules() {
			r.builtin[id] = true
		}
	}
	for _, id := range r.extraBuiltins {
		r.builtin[id] = true
	}

	if r.defaultIgnores {
		r.globalIgnores, _ = compilePatterns(DefaultIgnores, true)
	}

	var errs []error
	fail := func(i int, e config.Entry, field, key string, err error) {
		errs = append(errs, config.NewError(i, e.Name, field, key, err))
	}

	// Local plugin name -> every plugin bound to it by any entry.
	bound := map[string][]*Plugin{}

	for i, src := range entries {
		e := cloneEntry(src)
		ce := compiledEntry{index: i, entry: e}

		var perrs []error
		ce.files, perrs = compilePatterns(e.Files, false)
		for _, err := range perrs {
			fail(i, e, "files", "", err)
		}
		ce.ignores, perrs = compilePatterns(e.Ignores, true)
		for _, err := range perrs {
			fail(i, e, "ignores", "", err)
		}

		for _, name := range slices.Sorted(maps.Keys(e.Plugins)) {
			ref := e.Plugins[name]
			p, err := r.loadPlugin(loader, ref)
			if err != nil {
				fail(i, e, "plugins", name, err)
				continue
			}
			bound[name] = append(bound[name], p)
		}

		if e.IsGlobalIgnore() {
			r.globalIgnores = append(r.globalIgnores, ce.ignores...)
			continue
		}
		r.entries = append(r.entries, ce)
	}

	// Rules are checked once every plugin is known, so an entry may enable
	// a rule from a plugin another entry declares.
	for _, ce := range r.entries {
		for _, id := range slices.Sorted(maps.Keys(ce.entry.Rules)) {
			if err := r.checkRule(id, bound); err != nil {
				fail(ce.index, ce.entry, "rules", id, err)
			}
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	r.log.Debug("configuration loaded",
		zap.Int("entries", len(r.entries)),
		zap.Int("global_ignores", len(r.globalIgnores)),
		zap.Int("plugins", len(r.plugins)),
		zap.String("base_dir", r.baseDir),
	)
	return r, nil
}

// loadPlugin loads (once per identifier) and version-checks a plugin.
func (r *Resolver) loadPlugin(loader PluginLoader, ref config.PluginRef) (*Plugin, error) {
	p, ok := r.plugins[ref.ID]
	if !ok {
		if loader == nil {
			return nil, fmt.Errorf("%w: %q: no plugin loader configured", config.ErrUnknownPlugin, ref.ID)
		}
		loaded, err := loader.LoadPlugin(ref.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", config.ErrUnknownPlugin, ref.ID, err)
		}
		if loaded == nil {
			return nil, fmt.Errorf("%w: %q", config.ErrUnknownPlugin, ref.ID)
		}
		p = loaded
		r.plugins[ref.ID] = p
		r.log.Debug("plugin loaded", zap.String("id", p.ID), zap.String("version", p.Version), zap.Int("rules", len(p.Rules)))
	}

	if ref.Constraint == "" {
		return p, nil
	}
	c, err := semver.NewConstraint(ref.Constraint)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: bad constraint %q: %v", config.ErrPluginVersion, ref.ID, ref.Constraint, err)
	}
	if p.Version == "" {
		return nil, fmt.Errorf("%w: %q declares no version, cannot satisfy %q", config.ErrPluginVersion, ref.ID, ref.Constraint)
	}
	v, err := semver.NewVersion(p.Version)
	if err != nil {
		return nil, fmt.Errorf("%w: %q has unparseable version %q", config.ErrPluginVersion, ref.ID, p.Version)
	}
	if !c.Check(v) {
		return nil, fmt.Errorf("%w: %q version %s does not satisfy %q", config.ErrPluginVersion, ref.ID, v, ref.Constraint)
	}
	return p, nil
}

func (r *Resolver) checkRule(id string, bound map[string][]*Plugin) error {
	ns, name := config.SplitRuleID(id)
	if ns == "" {
		if r.builtin[name] {
			return nil
		}
		return fmt.Errorf("%w: %q is not a built-in rule", config.ErrUnknownRule, id)
	}

	candidates, ok := bound[ns]
	if !ok {
		return fmt.Errorf("%w: %q: no plugin is declared under the name %q", config.ErrUnknownRule, id, ns)
	}
	for _, p := range candidates {
		if p.HasRule(name) {
			return nil
		}
	}
	ids := make([]string, 0, len(candidates))
	for _, p := range candidates {
		ids = append(ids, p.ID)
	}
	return fmt.Errorf("%w: %q is not provided by %s", config.ErrUnknownRule, id, strings.Join(ids, ", "))
}

// Resolve returns the effective policy for path. Paths matching no entry
// (or outside the base directory) get an empty policy.
func (r *Resolver) Resolve(path string) EffectivePolicy {
	var policy EffectivePolicy

	rel, ok := r.relative(path)
	if !ok {
		return policy
	}
	if r.globalIgnores.excludes(rel) {
		policy.Ignored = true
		return policy
	}

	// Entries without files only apply to paths some entry with files
	// claims.
	claimed := false
	for _, ce := range r.entries {
		if len(ce.files) > 0 && ce.applies(rel) {
			claimed = true
			break
		}
	}
	if !claimed {
		return policy
	}

	for _, ce := range r.entries {
		if len(ce.files) == 0 {
			if ce.ignores.excludes(rel) {
				continue
			}
		} else if !ce.applies(rel) {
			continue
		}
		policy.merge(ce.index, ce.entry)
	}
	return policy
}

func (ce compiledEntry) applies(rel string) bool {
	return ce.files.matchAny(rel) && !ce.ignores.excludes(rel)
}

// IsIgnored reports whether a global ignore excludes path. Directory paths
// are matched too, so walkers can prune whole subtrees.
func (r *Resolver) IsIgnored(path string) bool {
	rel, ok := r.relative(path)
	if !ok {
		return false
	}
	return r.globalIgnores.excludes(rel)
}

// ResolveAll resolves many paths concurrently. Results keep the input
// order. Only context cancellation produces an error.
func (r *Resolver) ResolveAll(ctx context.Context, paths []string) ([]EffectivePolicy, error) {
	out := make([]EffectivePolicy, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU() * 2)
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = r.Resolve(p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Plugins returns the loaded plugins keyed by identifier.
func (r *Resolver) Plugins() map[string]*Plugin {
	return maps.Clone(r.plugins)
}

// Len returns the number of non-ignore entries.
func (r *Resolver) Len() int { return len(r.entries) }

// BaseDir returns the directory patterns are relative to.
func (r *Resolver) BaseDir() string { return r.baseDir }

// relative converts path into the normalized form patterns match against.
func (r *Resolver) relative(p string) (string, bool) {
	if filepath.IsAbs(p) {
		if r.baseDir == "" {
			return "", false
		}
		rel, err := filepath.Rel(r.baseDir, p)
		if err != nil {
			return "", false
		}
		p = rel
	}
	rel := normalizeSlashPath(p)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") || strings.HasPrefix(rel, "/") {
		return "", false
	}
	return rel, true
}

// cloneEntry copies the maps and slices of an entry so later changes by
// the caller cannot leak into a built Resolver.
func cloneEntry(e config.Entry) config.Entry {
	e.Files = slices.Clone(e.Files)
	e.Ignores = slices.Clone(e.Ignores)
	e.LanguageOptions.Globals = maps.Clone(e.LanguageOptions.Globals)
	e.LanguageOptions.ParserOptions = maps.Clone(e.LanguageOptions.ParserOptions)
	e.Plugins = maps.Clone(e.Plugins)
	if e.Rules != nil {
		rules := make(map[string]config.RuleConfig, len(e.Rules))
		for id, rc := range e.Rules {
			rc.Options = slices.Clone(rc.Options)
			rules[id] = rc
		}
		e.Rules = rules
	}
	e.Settings = maps.Clone(e.Settings)
	if v := e.LinterOptions.NoInlineConfig; v != nil {
		b := *v
		e.LinterOptions.NoInlineConfig = &b
	}
	if v := e.LinterOptions.ReportUnusedDisableDirectives; v != nil {
		s := *v
		e.LinterOptions.ReportUnusedDisableDirectives = &s
	}
	return e
}
