package plugin

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/sofmeright/flatconf/src/lint"
)

// Manifest describes a plugin that isn't bundled.
//
// flatconf-plugin.yml example:
//
//	id: eslint-plugin-acme
//	version: 2.3.0
//	rules:
//	  - no-legacy-api
//	  - require-license-header
type Manifest struct {
	ID      string   `yaml:"id" json:"id" toml:"id"`
	Version string   `yaml:"version" json:"version" toml:"version"`
	Rules   []string `yaml:"rules" json:"rules" toml:"rules"`
}

// Plugin converts the manifest, validating its fields.
func (m Manifest) Plugin() (*lint.Plugin, error) {
	if m.ID == "" {
		return nil, fmt.Errorf("manifest has no id")
	}
	if m.Version != "" {
		if _, err := semver.NewVersion(m.Version); err != nil {
			return nil, fmt.Errorf("%s: version %q: %w", m.ID, m.Version, err)
		}
	}
	seen := make(map[string]bool, len(m.Rules))
	for _, r := range m.Rules {
		if r == "" || strings.HasPrefix(r, "/") {
			return nil, fmt.Errorf("%s: invalid rule name %q", m.ID, r)
		}
		if seen[r] {
			return nil, fmt.Errorf("%s: duplicate rule %q", m.ID, r)
		}
		seen[r] = true
	}
	return &lint.Plugin{ID: m.ID, Version: m.Version, Rules: m.Rules}, nil
}

// ReadManifest decodes a manifest file, choosing the decoder by extension.
func ReadManifest(path string) (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(path)
	if err != nil {
		return m, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		err = yaml.Unmarshal(data, &m)
	case ".json":
		err = json.Unmarshal(data, &m)
	case ".toml":
		err = toml.Unmarshal(data, &m)
	default:
		return m, fmt.Errorf("%s: unsupported manifest extension", path)
	}
	if err != nil {
		return m, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// LoadManifests registers every manifest (*.yml, *.yaml, *.json, *.toml)
// found directly in dir. Files are processed in name order; the first
// error stops loading.
func (r *Registry) LoadManifests(dir string) (int, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("reading plugin dir: %w", err)
	}

	var names []string
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(de.Name())) {
		case ".yml", ".yaml", ".json", ".toml":
			names = append(names, de.Name())
		}
	}
	sort.Strings(names)

	loaded := 0
	for _, name := range names {
		path := filepath.Join(dir, name)
		m, err := ReadManifest(path)
		if err != nil {
			return loaded, err
		}
		p, err := m.Plugin()
		if err != nil {
			return loaded, fmt.Errorf("%s: %w", path, err)
		}
		if err := r.Register(p); err != nil {
			return loaded, fmt.Errorf("%s: %w", path, err)
		}
		loaded++
	}
	return loaded, nil
}
