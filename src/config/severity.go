package config

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Severity is the reporting level of a rule.
type Severity int

const (
	SeverityOff Severity = iota
	SeverityWarn
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityOff:
		return "off"
	case SeverityWarn:
		return "warn"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Enabled reports whether the rule runs at all.
func (s Severity) Enabled() bool { return s > SeverityOff }

// MarshalJSON writes the severity by name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// MarshalYAML writes the severity by name.
func (s Severity) MarshalYAML() (any, error) {
	return s.String(), nil
}

// ParseSeverity accepts "off", "warn", "error" or the numeric forms 0, 1, 2.
// Numbers may arrive as any of the integer or float types the decoders
// produce.
func ParseSeverity(v any) (Severity, error) {
	if s, ok := v.(string); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "off", "0":
			return SeverityOff, nil
		case "warn", "1":
			return SeverityWarn, nil
		case "error", "2":
			return SeverityError, nil
		}
		return 0, detail(ErrBadSeverity, "%q (expected off, warn or error)", s)
	}

	n, ok := toInt(v)
	if !ok || n < int(SeverityOff) || n > int(SeverityError) {
		return 0, detail(ErrBadSeverity, "%v (expected 0, 1 or 2)", v)
	}
	return Severity(n), nil
}

// toInt converts decoder number types to int. Floats must be integral.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float32:
		if float32(math.Trunc(float64(n))) != n {
			return 0, false
		}
		return int(n), true
	case float64:
		if math.Trunc(n) != n {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}
