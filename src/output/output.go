package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sofmeright/flatconf/src/config"
	"github.com/sofmeright/flatconf/src/lint"
)

// Colors for terminal output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

// WritePolicy encodes an effective policy as indented JSON or YAML.
func WritePolicy(w io.Writer, p lint.EffectivePolicy, format string) error {
	switch format {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q (use json or yaml)", format)
}

// FileRow is one resolved file for FilesTable.
type FileRow struct {
	Path   string
	Policy lint.EffectivePolicy
}

// FilesTable writes one line per file: enabled rule counts by severity and
// the contributing entries.
func FilesTable(sec *Section, rows []FileRow, color bool) {
	sec.Row("%-36s%6s  %6s  %s", "file", "error", "warn", "entries")
	for _, r := range rows {
		var errs, warns int
		for _, rc := range r.Policy.Rules {
			switch rc.Severity {
			case config.SeverityError:
				errs++
			case config.SeverityWarn:
				warns++
			}
		}
		entries := make([]string, len(r.Policy.Entries))
		for i, idx := range r.Policy.Entries {
			entries[i] = fmt.Sprintf("%d", idx)
		}
		sec.Row("%-36s%6d  %6d  %s", r.Path, errs, warns, Dimmed(strings.Join(entries, ","), color))
	}
}

// RuleList writes the enabled rules of a policy with their severities.
func RuleList(sec *Section, p lint.EffectivePolicy, color bool) {
	for _, id := range p.EnabledRules() {
		rc := p.Rules[id]
		sec.Row("%s  %s", SeverityTag(rc.Severity, color), colorize(id, colorCyan, color))
	}
}

// PluginTable writes the registered plugins with versions and rule counts.
func PluginTable(sec *Section, plugins []*lint.Plugin, color bool) {
	sec.Row("%-32s%-12s%s", "plugin", "version", "rules")
	for _, p := range plugins {
		version := p.Version
		if version == "" {
			version = Dimmed("-", color)
		}
		sec.Row("%-32s%-12s%d", p.ID, version, len(p.Rules))
	}
}

// SeverityTag returns a short severity label, optionally colored.
func SeverityTag(s config.Severity, color bool) string {
	switch s {
	case config.SeverityError:
		return colorize("ERR ", colorRed, color)
	case config.SeverityWarn:
		return colorize("WARN", colorYellow, color)
	case config.SeverityOff:
		return colorize("OFF ", colorGray, color)
	default:
		return s.String()
	}
}

// Bold returns bold text if color is enabled.
func Bold(text string, color bool) string {
	return colorize(text, colorBold, color)
}

func colorize(text, code string, color bool) string {
	if !color {
		return text
	}
	return code + text + colorReset
}

func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// UseColor returns true if colored output should be used.
// Respects NO_COLOR env, TERM=dumb, and terminal detection.
func UseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTerminal() || IsCI()
}
