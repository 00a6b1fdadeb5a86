package config

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// DefaultHeadingLevel is the markdown heading depth treated as a task boundary.
const DefaultHeadingLevel = 2

// Error is a configuration error: a malformed config document, a bad
// override, or an unresolvable runtime binary.
type Error struct {
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config error: %s: %v", e.Reason, e.Err)
	}
	return "config error: " + e.Reason
}

func (e *Error) Unwrap() error { return e.Err }

// Config holds the language→runtime mapping and the heading level. It is
// built once per invocation and immutable for the duration of the run.
type Config struct {
	Runtimes     map[string]RuntimeConfig
	HeadingLevel int
}

// Default returns the built-in configuration. The defaults cover common
// interpreters so the tool is usable with zero configuration.
func Default() *Config {
	return &Config{
		Runtimes:     defaultRuntimes(),
		HeadingLevel: DefaultHeadingLevel,
	}
}

func defaultRuntimes() map[string]RuntimeConfig {
	return map[string]RuntimeConfig{
		"bash":       SimpleRuntime("bash"),
		"sh":         SimpleRuntime("sh"),
		"python":     SimpleRuntime("python3"),
		"ruby":       SimpleRuntime("ruby"),
		"node":       SimpleRuntime("node"),
		"javascript": SimpleRuntime("node"),
		"js":         SimpleRuntime("node"),
		"php":        SimpleRuntime("php"),
		"perl":       SimpleRuntime("perl"),
		"jq":         SimpleRuntime("jq"),
		"go":         DetailedRuntime{Cmd: "go run", Mode: ModeFile},
		"golang":     DetailedRuntime{Cmd: "go run", Mode: ModeFile},
		"mq":         DetailedRuntime{Cmd: "mq", Mode: ModeArg},
	}
}

// LoadFile reads configuration from a TOML file. Fields present in the file
// replace the defaults wholesale; missing fields keep their defaults.
// Unknown fields are ignored.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Reason: fmt.Sprintf("failed to read config file %s", path), Err: err}
	}

	// Decode into a raw shape first: runtime values are polymorphic
	// (bare string or table) and need explicit coercion.
	var raw struct {
		HeadingLevel *int           `toml:"heading_level"`
		Runtimes     map[string]any `toml:"runtimes"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, &Error{Reason: "failed to parse config file", Err: err}
	}

	cfg := Default()

	if raw.HeadingLevel != nil {
		cfg.HeadingLevel = *raw.HeadingLevel
	}

	if raw.Runtimes != nil {
		runtimes := make(map[string]RuntimeConfig, len(raw.Runtimes))
		for lang, v := range raw.Runtimes {
			rc, err := coerceRuntime(lang, v)
			if err != nil {
				return nil, err
			}
			runtimes[lang] = rc
		}
		cfg.Runtimes = runtimes
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration as TOML. Parent directories are created as
// needed; an existing file is overwritten.
func (c *Config) Save(path string) error {
	doc := map[string]any{
		"heading_level": c.HeadingLevel,
		"runtimes":      c.marshalRuntimes(),
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return &Error{Reason: "failed to marshal config", Err: err}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &Error{Reason: "failed to create config directory", Err: err}
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return &Error{Reason: fmt.Sprintf("failed to write config file %s", path), Err: err}
	}

	return nil
}

func (c *Config) marshalRuntimes() map[string]any {
	runtimes := make(map[string]any, len(c.Runtimes))
	for lang, rc := range c.Runtimes {
		if simple, ok := rc.(SimpleRuntime); ok {
			runtimes[lang] = string(simple)
			continue
		}
		runtimes[lang] = map[string]any{
			"command":        rc.Command(),
			"execution_mode": string(rc.ExecutionMode()),
		}
	}
	return runtimes
}

// Validate checks the configuration invariants.
func (c *Config) Validate() error {
	if c.HeadingLevel < 1 || c.HeadingLevel > 6 {
		return &Error{Reason: fmt.Sprintf("heading_level must be between 1 and 6, got %d", c.HeadingLevel)}
	}
	for lang, rc := range c.Runtimes {
		if strings.TrimSpace(rc.Command()) == "" {
			return &Error{Reason: fmt.Sprintf("empty command for language %q", lang)}
		}
	}
	return nil
}

// ApplyRuntimeOverrides applies lang:command pairs from the CLI. When mode
// is non-nil it applies uniformly to every overridden language; otherwise
// the overrides default to stdin mode. Last write wins.
func (c *Config) ApplyRuntimeOverrides(pairs []string, mode *ExecutionMode) error {
	for _, pair := range pairs {
		lang, command, found := strings.Cut(pair, ":")
		if !found || lang == "" || command == "" {
			return &Error{Reason: fmt.Sprintf("invalid runtime override %q: expected lang:command", pair)}
		}
		if mode != nil {
			c.Runtimes[lang] = DetailedRuntime{Cmd: command, Mode: *mode}
		} else {
			c.Runtimes[lang] = SimpleRuntime(command)
		}
	}
	return nil
}

// GetRuntime returns the resolved command string for a language tag.
func (c *Config) GetRuntime(lang string) (string, bool) {
	rc, ok := c.Runtimes[lang]
	if !ok {
		return "", false
	}
	return rc.Command(), true
}

// GetExecutionMode returns the configured mode, or stdin when the language
// is unmapped. Callers must check GetRuntime first: an unmapped language is
// a dispatch failure, not a silent no-op.
func (c *Config) GetExecutionMode(lang string) ExecutionMode {
	rc, ok := c.Runtimes[lang]
	if !ok {
		return ModeStdin
	}
	return rc.ExecutionMode()
}

// HasRuntime reports whether a runtime is configured for a language.
func (c *Config) HasRuntime(lang string) bool {
	_, ok := c.Runtimes[lang]
	return ok
}

// ValidateRuntimes checks that every configured command's leading program
// token resolves on PATH. This is an explicit pre-flight check, not run
// before every execution.
func (c *Config) ValidateRuntimes() error {
	for lang, rc := range c.Runtimes {
		fields := strings.Fields(rc.Command())
		if len(fields) == 0 {
			return &Error{Reason: fmt.Sprintf("empty command for language %q", lang)}
		}
		binary := fields[0]
		if _, err := exec.LookPath(binary); err != nil {
			return &Error{Reason: fmt.Sprintf("runtime %q for language %q not found in PATH", binary, lang)}
		}
	}
	return nil
}
