package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const defaultConfigFile = "flatconf.yml"

// Format is the encoding of a configuration file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// Config is a loaded configuration sequence. It is never modified after
// Load returns.
type Config struct {
	Path    string
	Entries []Entry
}

// Load reads configuration from a file, choosing the decoder by extension.
// If path is empty, it tries the default file and returns an empty
// configuration when that doesn't exist. An explicitly named file must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	entries, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Config{Path: path, Entries: entries}, nil
}

// FormatFor maps a file extension to a Format.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unsupported config file extension %q (use .yml, .yaml, .json or .toml)", filepath.Ext(path))
}

// Parse decodes raw bytes in the given format into entries.
func Parse(data []byte, format Format) ([]Entry, error) {
	raw, err := Unmarshal(data, format)
	if err != nil {
		return nil, err
	}
	return Decode(raw)
}

// Unmarshal decodes data into generic maps and lists. Syntax errors are
// reported as *Error wrapping ErrMalformed.
func Unmarshal(data []byte, format Format) (any, error) {
	var raw any
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	case FormatJSON:
		if len(strings.TrimSpace(string(data))) == 0 {
			return nil, nil
		}
		err = json.Unmarshal(data, &raw)
	case FormatTOML:
		var table map[string]any
		err = toml.Unmarshal(data, &table)
		if err == nil && len(table) > 0 {
			raw = table
		}
	default:
		return nil, fmt.Errorf("unknown config format %q", format)
	}
	if err != nil {
		return nil, NewError(-1, "", "", "", fmt.Errorf("%w: %v", ErrMalformed, err))
	}
	return raw, nil
}
