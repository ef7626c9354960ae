package style

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ConfigFileName is the well-known configuration file name.
const ConfigFileName = "phpfmt.toml"

// Load reads a configuration file and merges it over the defaults.
// Options absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown option %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover walks up from startDir looking for the nearest phpfmt.toml.
// Returns the path and true when found.
func Discover(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Resolve produces the effective configuration for a run: explicit file if
// given, otherwise the nearest discovered phpfmt.toml, otherwise defaults.
func Resolve(explicitPath, startDir string) (*Config, error) {
	if explicitPath != "" {
		return Load(explicitPath)
	}
	path, found, err := Discover(startDir)
	if err != nil {
		return nil, err
	}
	if !found {
		return Default(), nil
	}
	return Load(path)
}
