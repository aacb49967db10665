package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type codec struct {
	decode func(data []byte, filename string, s *Settings) error
	encode func(s Settings) ([]byte, error)
}

// codecFor picks the settings format from the file extension.
func codecFor(path string) (codec, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return codec{decode: decodeTOML, encode: encodeTOML}, nil
	case ".json":
		return codec{decode: decodeJSON, encode: encodeJSON}, nil
	case ".yaml", ".yml":
		return codec{decode: decodeYAML, encode: encodeYAML}, nil
	case ".hcl":
		return codec{decode: decodeHCL, encode: encodeHCL}, nil
	default:
		return codec{}, fmt.Errorf("%w %q", ErrUnsupportedFormat, ext)
	}
}

func decodeTOML(data []byte, _ string, s *Settings) error {
	if _, err := toml.Decode(string(data), s); err != nil {
		return fmt.Errorf("parsing TOML: %w", err)
	}
	return nil
}

func encodeTOML(s Settings) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeJSON accepts the legacy settings file; unknown keys such as the old
// "full_exts" list are ignored.
func decodeJSON(data []byte, _ string, s *Settings) error {
	if err := json.Unmarshal(data, s); err != nil {
		return fmt.Errorf("parsing JSON: %w", err)
	}
	return nil
}

func encodeJSON(s Settings) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func decodeYAML(data []byte, _ string, s *Settings) error {
	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}
	return nil
}

func encodeYAML(s Settings) ([]byte, error) {
	return yaml.Marshal(s)
}
