// Package plugin provides the plugin registry the resolver loads plugins
// from: bundled catalogs for the security, node and promise plugins, the
// engine's core rules, and plugins described by manifest files on disk.
package plugin

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/sofmeright/flatconf/src/lint"
)

// ErrNotFound is returned by LoadPlugin for unknown identifiers.
var ErrNotFound = errors.New("plugin not found")

// Registry maps plugin identifiers to their rule catalogs. It implements
// lint.PluginLoader and lint.BuiltinRuleProvider.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]*lint.Plugin
	core    []string
}

// NewRegistry returns an empty registry with no core rules.
func NewRegistry() *Registry {
	return &Registry{plugins: map[string]*lint.Plugin{}}
}

// Builtin returns a registry holding the core rules and every bundled
// plugin catalog.
func Builtin() *Registry {
	r := NewRegistry()
	r.SetCoreRules(CoreRules())
	for _, p := range Bundled() {
		if err := r.Register(p); err != nil {
			panic(fmt.Sprintf("plugin: bundled catalog: %v", err))
		}
	}
	return r
}

// Register adds a plugin. Registering an identifier twice is an error.
func (r *Registry) Register(p *lint.Plugin) error {
	if p == nil || p.ID == "" {
		return fmt.Errorf("plugin: registration without an identifier")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.plugins[p.ID]; exists {
		return fmt.Errorf("plugin: duplicate registration: %s", p.ID)
	}
	cp := *p
	cp.Rules = slices.Clone(p.Rules)
	sort.Strings(cp.Rules)
	r.plugins[p.ID] = &cp
	return nil
}

// SetCoreRules replaces the list of rules built into the engine.
func (r *Registry) SetCoreRules(ids []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.core = slices.Clone(ids)
}

// LoadPlugin returns a copy of the named plugin.
func (r *Registry) LoadPlugin(id string) (*lint.Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	cp := *p
	cp.Rules = slices.Clone(p.Rules)
	return &cp, nil
}

// BuiltinRules returns the core rule ids.
func (r *Registry) BuiltinRules() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.core)
}

// All returns sorted identifiers of all registered plugins.
func (r *Registry) All() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.plugins))
	for id := range r.plugins {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
