package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/aerissecure/votive"
)

// LoadForm reads a petition form. The format follows the extension:
// .yaml/.yml, .toml or .json.
func LoadForm(path string) (votive.Form, error) {
	b, err := os.ReadFile(path) //nolint:gosec // G304: path is given by the user
	if errors.Is(err, os.ErrNotExist) {
		return votive.Form{}, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return votive.Form{}, fmt.Errorf("reading form: %w", err)
	}

	var f votive.Form
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &f)
	case ".toml":
		_, err = toml.Decode(string(b), &f)
	case ".json":
		err = json.Unmarshal(b, &f)
	default:
		return votive.Form{}, fmt.Errorf("unsupported form format %q", ext)
	}
	if err != nil {
		return votive.Form{}, fmt.Errorf("parsing form %s: %w", path, err)
	}

	f.ApplyDefaults()
	return f, nil
}

// SaveForm writes f as YAML.
func SaveForm(path string, f votive.Form) error {
	b, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("encoding form: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("writing form: %w", err)
	}
	return nil
}
