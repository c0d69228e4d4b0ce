package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/dsymtools/buildlink/pkg/errors"
)

// DefaultDebugDir is where distributions install debug-symbol files.
const DefaultDebugDir = "/usr/lib/debug"

// IndexDirName is the reserved subdirectory holding build-ID links.
// It must never be rescanned as input.
const IndexDirName = ".build-id"

// Config holds the runtime settings for a scan.
type Config struct {
	// DebugDir is the root of the debug-symbol tree to scan.
	DebugDir string `koanf:"debug_dir"`

	// Readelf names the introspection command. Overridable via the
	// READELF environment variable for cross/sysroot builds.
	Readelf string `koanf:"readelf"`

	// SkipSuffixes lists filename suffixes that identify metadata
	// sidecar files; these never reach the introspection command.
	SkipSuffixes []string `koanf:"skip_suffixes"`
}

// Load builds the configuration from layered sources: built-in defaults,
// an optional TOML file, then environment variables. Later layers win.
func Load(configFile string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"debug_dir":     DefaultDebugDir,
		"readelf":       "readelf",
		"skip_suffixes": []string{".txt"},
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	if configFile != "" {
		if _, err := os.Stat(configFile); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not readable", configFile)
		}
		if err := k.Load(file.Provider(configFile), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to parse %s", configFile)
		}
	}

	// READELF is the conventional binutils override; BUILDLINK_* covers
	// the remaining keys. Any other variable is ignored.
	err := k.Load(env.Provider("", ".", func(s string) string {
		if s == "READELF" {
			return "readelf"
		}
		if strings.HasPrefix(s, "BUILDLINK_") {
			return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "BUILDLINK_")), "-", "_")
		}
		return ""
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	return &cfg, nil
}
