package config

import "fmt"

// ExecutionMode selects how a code block's text reaches its runtime.
type ExecutionMode string

const (
	// ModeStdin pipes the code to the child's standard input.
	ModeStdin ExecutionMode = "stdin"
	// ModeFile writes the code to a temp file appended to the argument list.
	ModeFile ExecutionMode = "file"
	// ModeArg appends the code as a literal command-line argument.
	ModeArg ExecutionMode = "arg"
)

// ParseExecutionMode parses a mode string from config or CLI flags.
func ParseExecutionMode(s string) (ExecutionMode, error) {
	switch ExecutionMode(s) {
	case ModeStdin, ModeFile, ModeArg:
		return ExecutionMode(s), nil
	default:
		return "", &Error{Reason: fmt.Sprintf("invalid execution mode %q: must be one of: stdin, file, arg", s)}
	}
}

// RuntimeConfig maps a language tag to an interpreter command. A runtime is
// either a bare command string or a detailed entry that also picks an
// execution mode.
type RuntimeConfig interface {
	// Command returns the command string, never empty for a valid config.
	// Whitespace separates the program from its fixed leading arguments.
	Command() string
	// ExecutionMode returns the configured mode.
	ExecutionMode() ExecutionMode
}

// SimpleRuntime is a bare command string. Execution mode is stdin.
type SimpleRuntime string

func (r SimpleRuntime) Command() string              { return string(r) }
func (r SimpleRuntime) ExecutionMode() ExecutionMode { return ModeStdin }

// DetailedRuntime is a command paired with an explicit execution mode.
type DetailedRuntime struct {
	Cmd  string
	Mode ExecutionMode
}

func (r DetailedRuntime) Command() string { return r.Cmd }

func (r DetailedRuntime) ExecutionMode() ExecutionMode {
	if r.Mode == "" {
		return ModeStdin
	}
	return r.Mode
}

// coerceRuntime converts a decoded TOML value into a RuntimeConfig, trying
// the bare-string shape before the detailed table shape.
func coerceRuntime(lang string, v any) (RuntimeConfig, error) {
	switch val := v.(type) {
	case string:
		if val == "" {
			return nil, &Error{Reason: fmt.Sprintf("empty command for language %q", lang)}
		}
		return SimpleRuntime(val), nil
	case map[string]any:
		cmd, ok := val["command"].(string)
		if !ok || cmd == "" {
			return nil, &Error{Reason: fmt.Sprintf("runtime for language %q has no command", lang)}
		}
		mode := ModeStdin
		if raw, ok := val["execution_mode"]; ok {
			s, ok := raw.(string)
			if !ok {
				return nil, &Error{Reason: fmt.Sprintf("invalid execution_mode for language %q", lang)}
			}
			parsed, err := ParseExecutionMode(s)
			if err != nil {
				return nil, err
			}
			mode = parsed
		}
		return DetailedRuntime{Cmd: cmd, Mode: mode}, nil
	default:
		return nil, &Error{Reason: fmt.Sprintf("invalid runtime config for language %q: expected string or table", lang)}
	}
}
