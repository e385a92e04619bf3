package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const projectConfig = `
- name: base
  files: ["**/*.js"]
  languageOptions:
    ecmaVersion: 2021
    sourceType: module
  plugins:
    security: eslint-plugin-security
  rules:
    no-var: error
    semi: [warn, always]
    security/detect-eval-with-expression: error
- files: ["vendor/**"]
  rules:
    no-var: warn
- ignores: ["dist/"]
`

func setupProject(t *testing.T, config string, files ...string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "flatconf.yml"), []byte(config), 0o644))
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("var x = 1\n"), 0o644))
	}
	return dir
}

// run executes the root command with fresh flag values and captures stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	cfgFile, pluginDir, baseDir, verbose = "", "", "", false
	resolveFormat = "json"
	filesChanged, filesTargetBranch, filesShowRules = false, "", false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestValidate(t *testing.T) {
	dir := setupProject(t, projectConfig)

	out, err := run(t, "validate", "--config", filepath.Join(dir, "flatconf.yml"))
	require.NoError(t, err)
	assert.Contains(t, out, "valid")
	assert.Regexp(t, `entries\s+3`, out)
	assert.Regexp(t, `plugins\s+1`, out)
}

func TestValidateUnknownPlugin(t *testing.T) {
	dir := setupProject(t, `
- files: ["**/*.js"]
  plugins:
    missing: does-not-exist
`)

	_, err := run(t, "validate", "--config", filepath.Join(dir, "flatconf.yml"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "does-not-exist")
	assert.Equal(t, 2, ExitCode(err))
}

func TestValidateMalformedConfig(t *testing.T) {
	dir := setupProject(t, "- rules: {no-var: fatal}\n")

	_, err := run(t, "validate", "--config", filepath.Join(dir, "flatconf.yml"))
	require.Error(t, err)
	assert.Equal(t, 2, ExitCode(err))
}

func TestResolve(t *testing.T) {
	dir := setupProject(t, projectConfig)
	cfg := filepath.Join(dir, "flatconf.yml")

	out, err := run(t, "resolve", "--config", cfg, filepath.Join(dir, "vendor", "lib.js"))
	require.NoError(t, err)

	var policy struct {
		LanguageOptions map[string]any    `json:"languageOptions"`
		Plugins         map[string]string `json:"plugins"`
		Rules           map[string]any    `json:"rules"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &policy))
	assert.Equal(t, "warn", policy.Rules["no-var"], "the later vendor entry wins")
	assert.Equal(t, []any{"warn", "always"}, policy.Rules["semi"])
	assert.Equal(t, "eslint-plugin-security", policy.Plugins["security"])
	assert.Equal(t, float64(2021), policy.LanguageOptions["ecmaVersion"])
}

func TestResolveUnmatchedAndIgnored(t *testing.T) {
	dir := setupProject(t, projectConfig)
	cfg := filepath.Join(dir, "flatconf.yml")

	out, err := run(t, "resolve", "--config", cfg, filepath.Join(dir, "README.md"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"languageOptions": {}, "linterOptions": {}, "plugins": null, "rules": null}`, out)

	out, err = run(t, "resolve", "--config", cfg, "--format", "yaml", filepath.Join(dir, "dist", "app.js"))
	require.NoError(t, err)
	assert.Contains(t, out, "ignored: true")
}

func TestFiles(t *testing.T) {
	dir := setupProject(t, projectConfig,
		"src/app.js",
		"vendor/lib.js",
		"README.md",
		"dist/bundle.js",
		"node_modules/dep/index.js",
	)

	out, err := run(t, "files", "--config", filepath.Join(dir, "flatconf.yml"), "--rules")
	require.NoError(t, err)
	assert.Contains(t, out, "src/app.js")
	assert.Contains(t, out, "vendor/lib.js")
	assert.NotContains(t, out, "bundle.js")
	assert.NotContains(t, out, "node_modules")
	assert.Contains(t, out, "security/detect-eval-with-expression")
	// flatconf.yml and README.md are walked but not covered.
	assert.Contains(t, out, "2 of 4 files covered")
}

func TestPlugins(t *testing.T) {
	manifests := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(manifests, "acme.yml"),
		[]byte("id: eslint-plugin-acme\nversion: 1.0.0\nrules: [no-legacy-api]\n"), 0o644))

	out, err := run(t, "plugins", "--plugin-dir", manifests)
	require.NoError(t, err)
	assert.Contains(t, out, "eslint-plugin-security")
	assert.Contains(t, out, "eslint-plugin-acme")
	assert.Contains(t, out, "4 plugins")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "flatconf")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(errors.New("boom")))
}
