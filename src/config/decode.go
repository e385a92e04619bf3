package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Decode converts generically decoded data (the result of unmarshaling
// YAML, JSON or TOML into an `any`) into typed entries. The top level is
// either a list of entries or a table with a "config" list.
//
// Every malformed field is reported; the returned error joins one *Error
// per problem.
func Decode(raw any) ([]Entry, error) {
	list, err := entryList(raw)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(list))
	var errs []error
	for i, item := range list {
		e, entryErrs := decodeEntry(i, item)
		errs = append(errs, entryErrs...)
		entries = append(entries, e)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return entries, nil
}

func entryList(raw any) ([]any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []any:
		return v, nil
	case []map[string]any:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, nil
	case map[string]any:
		inner, ok := v["config"]
		if !ok {
			return nil, NewError(-1, "", "", "", detail(ErrMalformed, "top level must be a list of entries or a table with a \"config\" list"))
		}
		if len(v) > 1 {
			return nil, NewError(-1, "", "", "", detail(ErrMalformed, "unexpected top-level keys besides \"config\": %s", strings.Join(otherKeys(v, "config"), ", ")))
		}
		return entryList(inner)
	}
	return nil, NewError(-1, "", "", "", detail(ErrMalformed, "top level is %T, expected a list of entries", raw))
}

var entryKeys = map[string]bool{
	"name":            true,
	"files":           true,
	"ignores":         true,
	"languageOptions": true,
	"linterOptions":   true,
	"plugins":         true,
	"rules":           true,
	"settings":        true,
}

func decodeEntry(i int, item any) (Entry, []error) {
	var e Entry
	m, ok := asMap(item)
	if !ok {
		return e, []error{NewError(i, "", "", "", detail(ErrMalformed, "entry is %T, expected a table", item))}
	}

	if n, ok := m["name"]; ok {
		s, isStr := n.(string)
		if !isStr {
			return e, []error{NewError(i, "", "name", "", detail(ErrMalformed, "name must be a string"))}
		}
		e.Name = s
	}

	var errs []error
	fail := func(field, key string, err error) {
		errs = append(errs, NewError(i, e.Name, field, key, err))
	}

	for _, k := range sortedKeys(m) {
		if !entryKeys[k] {
			fail(k, "", detail(ErrMalformed, "unexpected key"))
		}
	}

	if v, ok := m["files"]; ok {
		files, err := stringList(v)
		if err != nil {
			fail("files", "", err)
		}
		e.Files = files
	}
	if v, ok := m["ignores"]; ok {
		ignores, err := stringList(v)
		if err != nil {
			fail("ignores", "", err)
		}
		e.Ignores = ignores
	}
	if v, ok := m["languageOptions"]; ok {
		lo, loErrs := decodeLanguageOptions(v)
		for _, le := range loErrs {
			fail("languageOptions", le.key, le.err)
		}
		e.LanguageOptions = lo
	}
	if v, ok := m["linterOptions"]; ok {
		lo, loErrs := decodeLinterOptions(v)
		for _, le := range loErrs {
			fail("linterOptions", le.key, le.err)
		}
		e.LinterOptions = lo
	}
	if v, ok := m["plugins"]; ok {
		pm, isMap := asMap(v)
		if !isMap {
			fail("plugins", "", detail(ErrMalformed, "plugins must be a table of name: identifier"))
		} else {
			e.Plugins = make(map[string]PluginRef, len(pm))
			for _, name := range sortedKeys(pm) {
				id, isStr := pm[name].(string)
				if !isStr {
					fail("plugins", name, detail(ErrMalformed, "plugin identifier must be a string, got %T", pm[name]))
					continue
				}
				if strings.Contains(name, "/") && !strings.HasPrefix(name, "@") {
					fail("plugins", name, detail(ErrMalformed, "plugin name must not contain \"/\""))
					continue
				}
				ref, err := ParsePluginRef(id)
				if err != nil {
					fail("plugins", name, err)
					continue
				}
				e.Plugins[name] = ref
			}
		}
	}
	if v, ok := m["rules"]; ok {
		rm, isMap := asMap(v)
		if !isMap {
			fail("rules", "", detail(ErrMalformed, "rules must be a table of rule: severity"))
		} else {
			e.Rules = make(map[string]RuleConfig, len(rm))
			for _, id := range sortedKeys(rm) {
				rc, err := ParseRuleConfig(rm[id])
				if err != nil {
					fail("rules", id, err)
					continue
				}
				e.Rules[id] = rc
			}
		}
	}
	if v, ok := m["settings"]; ok {
		sm, isMap := asMap(v)
		if !isMap {
			fail("settings", "", detail(ErrMalformed, "settings must be a table"))
		} else {
			e.Settings = normalizeMap(sm)
		}
	}

	return e, errs
}

// ParseRuleConfig accepts a bare severity or a list [severity, options...].
func ParseRuleConfig(v any) (RuleConfig, error) {
	if list, ok := v.([]any); ok {
		if len(list) == 0 {
			return RuleConfig{}, detail(ErrBadSeverity, "empty rule configuration")
		}
		sev, err := ParseSeverity(list[0])
		if err != nil {
			return RuleConfig{}, err
		}
		rc := RuleConfig{Severity: sev}
		if len(list) > 1 {
			rc.Options = make([]any, 0, len(list)-1)
			for _, o := range list[1:] {
				rc.Options = append(rc.Options, normalizeValue(o))
			}
		}
		return rc, nil
	}
	sev, err := ParseSeverity(v)
	if err != nil {
		return RuleConfig{}, err
	}
	return RuleConfig{Severity: sev}, nil
}

type keyedErr struct {
	key string
	err error
}

func decodeLanguageOptions(v any) (LanguageOptions, []keyedErr) {
	var lo LanguageOptions
	m, ok := asMap(v)
	if !ok {
		return lo, []keyedErr{{"", detail(ErrBadLanguageOptions, "languageOptions must be a table")}}
	}

	var errs []keyedErr
	for _, k := range sortedKeys(m) {
		val := m[k]
		switch k {
		case "ecmaVersion":
			ver, err := ParseEcmaVersion(val)
			if err != nil {
				errs = append(errs, keyedErr{k, err})
				continue
			}
			lo.EcmaVersion = ver
		case "sourceType":
			st, err := ParseSourceType(val)
			if err != nil {
				errs = append(errs, keyedErr{k, err})
				continue
			}
			lo.SourceType = st
		case "globals":
			gm, isMap := asMap(val)
			if !isMap {
				errs = append(errs, keyedErr{k, detail(ErrBadLanguageOptions, "globals must be a table")})
				continue
			}
			lo.Globals = make(map[string]GlobalAccess, len(gm))
			for _, name := range sortedKeys(gm) {
				access, err := ParseGlobalAccess(gm[name])
				if err != nil {
					errs = append(errs, keyedErr{"globals." + name, err})
					continue
				}
				lo.Globals[name] = access
			}
		case "parserOptions":
			pm, isMap := asMap(val)
			if !isMap {
				errs = append(errs, keyedErr{k, detail(ErrBadLanguageOptions, "parserOptions must be a table")})
				continue
			}
			lo.ParserOptions = normalizeMap(pm)
		default:
			errs = append(errs, keyedErr{k, detail(ErrBadLanguageOptions, "unexpected key")})
		}
	}
	return lo, errs
}

func decodeLinterOptions(v any) (LinterOptions, []keyedErr) {
	var lo LinterOptions
	m, ok := asMap(v)
	if !ok {
		return lo, []keyedErr{{"", detail(ErrMalformed, "linterOptions must be a table")}}
	}

	var errs []keyedErr
	for _, k := range sortedKeys(m) {
		val := m[k]
		switch k {
		case "noInlineConfig":
			b, isBool := val.(bool)
			if !isBool {
				errs = append(errs, keyedErr{k, detail(ErrMalformed, "must be a boolean")})
				continue
			}
			lo.NoInlineConfig = &b
		case "reportUnusedDisableDirectives":
			// Booleans are accepted as shorthand: true is warn, false is off.
			var sev Severity
			if b, isBool := val.(bool); isBool {
				if b {
					sev = SeverityWarn
				}
			} else {
				parsed, err := ParseSeverity(val)
				if err != nil {
					errs = append(errs, keyedErr{k, err})
					continue
				}
				sev = parsed
			}
			lo.ReportUnusedDisableDirectives = &sev
		default:
			errs = append(errs, keyedErr{k, detail(ErrMalformed, "unexpected key")})
		}
	}
	return lo, errs
}

// ParseEcmaVersion accepts "latest", 3, 5, the yearly editions and their
// short forms (6 is 2015, 7 is 2016, ...).
func ParseEcmaVersion(v any) (int, error) {
	if s, ok := v.(string); ok {
		if s == "latest" {
			return LatestEcmaVersion, nil
		}
		return 0, detail(ErrBadLanguageOptions, "ecmaVersion %q (expected a number or \"latest\")", s)
	}
	n, ok := toInt(v)
	if !ok {
		return 0, detail(ErrBadLanguageOptions, "ecmaVersion %v is not a number", v)
	}
	short := LatestEcmaVersion - 2009
	switch {
	case n == 3 || n == 5:
		return n, nil
	case n >= 6 && n <= short:
		return n + 2009, nil
	case n >= 2015 && n <= LatestEcmaVersion:
		return n, nil
	}
	return 0, detail(ErrBadLanguageOptions, "unsupported ecmaVersion %d", n)
}

// ParseSourceType accepts script, module or commonjs.
func ParseSourceType(v any) (SourceType, error) {
	s, _ := v.(string)
	switch SourceType(s) {
	case SourceScript, SourceModule, SourceCommonJS:
		return SourceType(s), nil
	}
	return "", detail(ErrBadLanguageOptions, "sourceType %v (expected script, module or commonjs)", v)
}

// ParseGlobalAccess normalizes the accepted spellings of a global's access.
func ParseGlobalAccess(v any) (GlobalAccess, error) {
	switch t := v.(type) {
	case bool:
		if t {
			return GlobalWritable, nil
		}
		return GlobalReadonly, nil
	case string:
		switch t {
		case "readonly", "readable":
			return GlobalReadonly, nil
		case "writable", "writeable":
			return GlobalWritable, nil
		case "off":
			return GlobalOff, nil
		}
	}
	return "", detail(ErrBadLanguageOptions, "global access %v (expected readonly, writable or off)", v)
}

func stringList(v any) ([]string, error) {
	switch t := v.(type) {
	case string:
		return []string{t}, nil
	case []string:
		return t, nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, detail(ErrMalformed, "pattern list contains %T, expected strings", item)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, detail(ErrMalformed, "expected a list of patterns, got %T", v)
}

func asMap(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

// normalizeValue turns map[any]any into map[string]any recursively so that
// option values serialize to JSON regardless of which decoder produced them.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return normalizeMap(t)
	case map[any]any:
		m, _ := asMap(t)
		return normalizeMap(m)
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = normalizeValue(t[i])
		}
		return out
	}
	return v
}

func normalizeMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v)
	}
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func otherKeys(m map[string]any, except string) []string {
	var keys []string
	for _, k := range sortedKeys(m) {
		if k != except {
			keys = append(keys, k)
		}
	}
	return keys
}
