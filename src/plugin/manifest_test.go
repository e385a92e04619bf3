package plugin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestReadManifestFormats(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "acme.yml", "id: eslint-plugin-acme\nversion: 2.3.0\nrules:\n  - no-legacy-api\n  - require-license-header\n")
	writeManifest(t, dir, "beta.json", `{"id": "eslint-plugin-beta", "version": "0.1.0", "rules": ["no-beta"]}`)
	writeManifest(t, dir, "gamma.toml", "id = \"eslint-plugin-gamma\"\nrules = [\"no-gamma\"]\n")

	tests := []struct {
		file string
		want Manifest
	}{
		{"acme.yml", Manifest{ID: "eslint-plugin-acme", Version: "2.3.0", Rules: []string{"no-legacy-api", "require-license-header"}}},
		{"beta.json", Manifest{ID: "eslint-plugin-beta", Version: "0.1.0", Rules: []string{"no-beta"}}},
		{"gamma.toml", Manifest{ID: "eslint-plugin-gamma", Rules: []string{"no-gamma"}}},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			m, err := ReadManifest(filepath.Join(dir, tt.file))
			require.NoError(t, err)
			assert.Equal(t, tt.want, m)
		})
	}
}

func TestReadManifestErrors(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "broken.json", `{"id": `)
	writeManifest(t, dir, "notes.txt", "id: x")

	_, err := ReadManifest(filepath.Join(dir, "broken.json"))
	assert.Error(t, err)
	_, err = ReadManifest(filepath.Join(dir, "notes.txt"))
	assert.ErrorContains(t, err, "unsupported manifest extension")
	_, err = ReadManifest(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)
}

func TestManifestPlugin(t *testing.T) {
	tests := []struct {
		name    string
		m       Manifest
		wantErr string
	}{
		{"valid", Manifest{ID: "p", Version: "1.2.3", Rules: []string{"a", "b"}}, ""},
		{"no version", Manifest{ID: "p", Rules: []string{"a"}}, ""},
		{"missing id", Manifest{Rules: []string{"a"}}, "no id"},
		{"bad version", Manifest{ID: "p", Version: "one", Rules: []string{"a"}}, "version"},
		{"empty rule", Manifest{ID: "p", Rules: []string{""}}, "invalid rule name"},
		{"duplicate rule", Manifest{ID: "p", Rules: []string{"a", "a"}}, "duplicate rule"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := tt.m.Plugin()
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.m.ID, p.ID)
			assert.Equal(t, tt.m.Rules, p.Rules)
		})
	}
}

func TestLoadManifests(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "acme.yml", "id: eslint-plugin-acme\nversion: 2.3.0\nrules: [no-legacy-api]\n")
	writeManifest(t, dir, "beta.json", `{"id": "eslint-plugin-beta", "rules": ["no-beta"]}`)
	writeManifest(t, dir, "README.md", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yml"), 0o755))

	r := Builtin()
	n, err := r.LoadManifests(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	p, err := r.LoadPlugin("eslint-plugin-acme")
	require.NoError(t, err)
	assert.Equal(t, "2.3.0", p.Version)
	assert.True(t, p.HasRule("no-legacy-api"))
}

func TestLoadManifestsDuplicate(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "a.yml", "id: eslint-plugin-security\nrules: [x]\n")

	n, err := Builtin().LoadManifests(dir)
	assert.Equal(t, 0, n)
	assert.ErrorContains(t, err, "duplicate registration")
}

func TestLoadManifestsMissingDir(t *testing.T) {
	_, err := NewRegistry().LoadManifests(filepath.Join(t.TempDir(), "absent"))
	assert.ErrorContains(t, err, "reading plugin dir")
}
