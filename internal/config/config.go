// Package config loads .cfmtlint.toml project configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"cfmtlint/internal/ctype"
	"cfmtlint/internal/diag"
	"cfmtlint/internal/printf"
)

// FileName is the configuration file looked up from the analyzed path.
const FileName = ".cfmtlint.toml"

// ErrNotFound is returned by Find when no configuration file exists up the tree.
var ErrNotFound = errors.New("no " + FileName + " found")

// Config is the decoded configuration.
type Config struct {
	// Path of the loaded file; empty for defaults.
	Path      string            `toml:"-"`
	Check     Check             `toml:"check"`
	Severity  map[string]string `toml:"severity"`
	Functions map[string]int    `toml:"functions"`
	Typedefs  []Typedef         `toml:"typedefs"`

	levels   map[printf.ErrorKind]Level
	typedefs map[string]ctype.Type
}

// Check holds the [check] section.
type Check struct {
	RequireStdio   bool `toml:"require_stdio"`
	Jobs           int  `toml:"jobs"`
	MaxDiagnostics int  `toml:"max_diagnostics"`
}

// Typedef is one [[typedefs]] entry.
type Typedef struct {
	Name string `toml:"name"`
	Type string `toml:"type"`
}

// Level is the resolved severity of one error kind.
type Level struct {
	Severity diag.Severity
	Enabled  bool
}

var defaultSeverity = map[printf.ErrorKind]string{
	printf.ErrFlag:         "warning",
	printf.ErrLength:       "warning",
	printf.ErrTypeMismatch: "warning",
	printf.ErrTypeWildcard: "warning",
	printf.ErrTypeNotExist: "error",
	printf.ErrArgs:         "error",
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{
		Check: Check{
			RequireStdio:   true,
			MaxDiagnostics: 100,
		},
		Severity:  make(map[string]string, len(defaultSeverity)),
		Functions: map[string]int{},
	}
	for kind, sev := range defaultSeverity {
		cfg.Severity[kind.Key()] = sev
	}
	if err := cfg.resolve(); err != nil {
		panic(fmt.Errorf("config: default configuration is invalid: %w", err))
	}
	return cfg
}

// Find walks up from startDir to locate FileName.
func Find(startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ErrNotFound
}

// Discover loads the nearest configuration, or the defaults when none exists.
func Discover(startDir string) (*Config, error) {
	path, err := Find(startDir)
	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Load decodes path on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("check", "jobs") && cfg.Check.Jobs < 0 {
		return nil, fmt.Errorf("%s: [check].jobs must not be negative", path)
	}
	if meta.IsDefined("check", "max_diagnostics") && cfg.Check.MaxDiagnostics < 0 {
		return nil, fmt.Errorf("%s: [check].max_diagnostics must not be negative", path)
	}
	cfg.Path = path
	if err := cfg.resolve(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// resolve validates the raw tables and caches the typed views.
func (c *Config) resolve() error {
	known := make(map[string]printf.ErrorKind, len(printf.ErrorKinds))
	for _, k := range printf.ErrorKinds {
		known[k.Key()] = k
	}
	c.levels = make(map[printf.ErrorKind]Level, len(known))
	for key, value := range c.Severity {
		kind, ok := known[key]
		if !ok {
			return fmt.Errorf("[severity]: unknown error kind %q", key)
		}
		sev, enabled, err := diag.ParseSeverity(value)
		if err != nil {
			return fmt.Errorf("[severity].%s: %w", key, err)
		}
		c.levels[kind] = Level{Severity: sev, Enabled: enabled}
	}

	for name, idx := range c.Functions {
		if idx < 0 {
			return fmt.Errorf("[functions].%s: format index must not be negative", name)
		}
	}

	c.typedefs = make(map[string]ctype.Type, len(c.Typedefs))
	for i, td := range c.Typedefs {
		name := strings.TrimSpace(td.Name)
		if name == "" {
			return fmt.Errorf("[[typedefs]] #%d: missing name", i+1)
		}
		t, ok := ctype.Parse(td.Type)
		if !ok {
			return fmt.Errorf("[[typedefs]] %s: cannot parse type %q", name, td.Type)
		}
		c.typedefs[name] = t
	}
	return nil
}

// Level returns the severity configured for kind.
func (c *Config) Level(kind printf.ErrorKind) Level {
	if l, ok := c.levels[kind]; ok {
		return l
	}
	sev, _, _ := diag.ParseSeverity(defaultSeverity[kind])
	return Level{Severity: sev, Enabled: true}
}

// SetSeverity overrides one kind, as CLI flags do.
func (c *Config) SetSeverity(kind printf.ErrorKind, value string) error {
	sev, enabled, err := diag.ParseSeverity(value)
	if err != nil {
		return err
	}
	if c.Severity == nil {
		c.Severity = map[string]string{}
	}
	c.Severity[kind.Key()] = value
	if c.levels == nil {
		c.levels = map[printf.ErrorKind]Level{}
	}
	c.levels[kind] = Level{Severity: sev, Enabled: enabled}
	return nil
}

// TypedefTypes returns the parsed [[typedefs]] table.
func (c *Config) TypedefTypes() map[string]ctype.Type {
	return c.typedefs
}

// FunctionNames returns the configured function names sorted.
func (c *Config) FunctionNames() []string {
	names := make([]string, 0, len(c.Functions))
	for name := range c.Functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
