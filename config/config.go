// Package config loads and writes the ambient CLI-wide defaults file
// (spec.md §6.1's `--quiet`/`--strict`/`--pretty-debug-json` flags, as
// operator-level defaults rather than per-invocation flags). Grounded
// on noisetorch's config.go: same read-or-initialize-defaults shape,
// same BurntSushi/toml DecodeFile/Encode pair.
package config

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config carries CLI-wide defaults that every `packrat build`
// invocation falls back to when the matching flag is not given.
type Config struct {
	Strict          bool
	Quiet           bool
	PrettyDebugJSON bool
}

// Default returns the factory defaults written on first run.
func Default() Config {
	return Config{Strict: false, Quiet: false, PrettyDebugJSON: false}
}

const fileName = "config.toml"

// Dir resolves the config directory: $XDG_CONFIG_HOME/packrat, falling
// back to $HOME/.config/packrat.
func Dir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(base, "packrat")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), fileName)
}

// Load reads the config file, initializing it with Default() if it
// does not yet exist.
func Load() (Config, error) {
	dir := Dir()
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return Config{}, err
		}
	}

	path := Path()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		def := Default()
		if err := Write(def); err != nil {
			return Config{}, err
		}
		return def, nil
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Write serializes cfg to the config file, creating its directory if
// needed.
func Write(cfg Config) error {
	if err := os.MkdirAll(Dir(), 0o700); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(&cfg); err != nil {
		return err
	}
	return os.WriteFile(Path(), buf.Bytes(), 0o644)
}
