package runner

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gerunddev/mdx/internal/config"
)

func TestExecuteCodeUnknownLanguage(t *testing.T) {
	r := WithDefaultConfig()

	err := r.ExecuteCode("cobol", "DISPLAY 'HELLO'.", nil)
	if err == nil {
		t.Fatal("Expected error for unconfigured language")
	}

	var notFound *RuntimeNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Expected RuntimeNotFoundError, got %T", err)
	}
	if notFound.Lang != "cobol" {
		t.Errorf("Expected lang cobol, got %q", notFound.Lang)
	}
}

func TestExecuteCodeWhitespaceCommand(t *testing.T) {
	cfg := &config.Config{
		Runtimes:     map[string]config.RuntimeConfig{"blank": config.SimpleRuntime("   ")},
		HeadingLevel: 2,
	}

	r := New(cfg)
	err := r.ExecuteCode("blank", "true", nil)

	var notFound *RuntimeNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Expected RuntimeNotFoundError for all-whitespace command, got %v", err)
	}
}

func TestExecuteCodeSpawnFailure(t *testing.T) {
	cfg := &config.Config{
		Runtimes:     map[string]config.RuntimeConfig{"ghost": config.SimpleRuntime("mdx-no-such-binary")},
		HeadingLevel: 2,
	}

	r := New(cfg)
	err := r.ExecuteCode("ghost", "true", nil)

	var execErr *ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("Expected ExecutionError for spawn failure, got %v", err)
	}
	if execErr.Unwrap() == nil {
		t.Error("Expected the OS error to be wrapped")
	}
}

func TestExecuteStdinMode(t *testing.T) {
	r := WithDefaultConfig()

	if err := r.ExecuteCode("bash", "exit 0", nil); err != nil {
		t.Errorf("Expected success, got %v", err)
	}

	err := r.ExecuteCode("bash", "exit 3", nil)
	var execErr *ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("Expected ExecutionError for non-zero exit, got %v", err)
	}
}

func TestExecuteArgMode(t *testing.T) {
	cfg := &config.Config{
		Runtimes: map[string]config.RuntimeConfig{
			"inline": config.DetailedRuntime{Cmd: "sh -c", Mode: config.ModeArg},
		},
		HeadingLevel: 2,
	}

	r := New(cfg)

	if err := r.ExecuteCode("inline", "exit 0", nil); err != nil {
		t.Errorf("Expected success, got %v", err)
	}
	if err := r.ExecuteCode("inline", "exit 1", nil); err == nil {
		t.Error("Expected error for failing inline code")
	}
}

func TestExecuteFileMode(t *testing.T) {
	// The tag doubles as the temp file extension, so a unique tag lets
	// the test find any leftover files.
	const lang = "mdxtest"
	cfg := &config.Config{
		Runtimes: map[string]config.RuntimeConfig{
			lang: config.DetailedRuntime{Cmd: "bash", Mode: config.ModeFile},
		},
		HeadingLevel: 2,
	}

	r := New(cfg)

	leftovers := func() []string {
		matches, err := filepath.Glob(filepath.Join(os.TempDir(), tempFilePrefix+"*."+lang))
		if err != nil {
			t.Fatal(err)
		}
		return matches
	}

	if err := r.ExecuteCode(lang, "exit 0", nil); err != nil {
		t.Errorf("Expected success, got %v", err)
	}
	if files := leftovers(); len(files) != 0 {
		t.Errorf("Expected temp file to be removed after success, found %v", files)
	}

	if err := r.ExecuteCode(lang, "exit 1", nil); err == nil {
		t.Error("Expected error for failing script")
	}
	if files := leftovers(); len(files) != 0 {
		t.Errorf("Expected temp file to be removed after failure, found %v", files)
	}
}

func TestFileExtension(t *testing.T) {
	tests := []struct {
		lang string
		want string
	}{
		{"go", "go"},
		{"golang", "go"},
		{"python", "py"},
		{"ruby", "rb"},
		{"javascript", "js"},
		{"js", "js"},
		{"typescript", "ts"},
		{"ts", "ts"},
		{"lua", "lua"},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			if got := fileExtension(tt.lang); got != tt.want {
				t.Errorf("fileExtension(%q) = %q, want %q", tt.lang, got, tt.want)
			}
		})
	}
}

func TestEnvInjection(t *testing.T) {
	r := WithDefaultConfig()

	code := `test "$MX_ARGS" = "a b" && test "$MX_ARG_0" = "a" && test "$MX_ARG_1" = "b"`
	if err := r.ExecuteCode("bash", code, []string{"a", "b"}); err != nil {
		t.Errorf("Expected MX_* variables to be set, got %v", err)
	}
}

func TestEnvInjectionWithoutArgs(t *testing.T) {
	r := WithDefaultConfig()

	code := `test -z "${MX_ARGS+x}" && test -z "${MX_ARG_0+x}"`
	if err := r.ExecuteCode("bash", code, nil); err != nil {
		t.Errorf("Expected no MX_* variables without args, got %v", err)
	}
}

func TestEnvInheritsParent(t *testing.T) {
	t.Setenv("MDX_TEST_PARENT", "inherited")

	r := WithDefaultConfig()

	code := `test "$MDX_TEST_PARENT" = "inherited"`
	if err := r.ExecuteCode("bash", code, []string{"a"}); err != nil {
		t.Errorf("Expected parent environment to be inherited, got %v", err)
	}
}

func TestBuildEnv(t *testing.T) {
	if env := buildEnv(nil); env != nil {
		t.Errorf("Expected nil env without args, got %v", env)
	}

	env := buildEnv([]string{"x", "y z"})
	want := map[string]bool{
		"MX_ARGS=x y z": false,
		"MX_ARG_0=x":    false,
		"MX_ARG_1=y z":  false,
	}
	for _, entry := range env {
		if _, ok := want[entry]; ok {
			want[entry] = true
		}
	}
	for entry, seen := range want {
		if !seen {
			t.Errorf("Expected env to contain %q", entry)
		}
	}
}

func TestExecuteSectionSkipsEmptyLang(t *testing.T) {
	r := WithDefaultConfig()

	section := &Section{
		Title: "Docs",
		Level: 2,
		Codes: []CodeBlock{
			{Lang: "", Code: "this is documentation, not code"},
		},
	}

	if err := r.ExecuteSection(section, nil); err != nil {
		t.Errorf("Expected empty-lang blocks to be skipped, got %v", err)
	}
}

func TestExecuteSectionFailFast(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "second-ran")

	r := WithDefaultConfig()

	section := &Section{
		Title: "Broken",
		Level: 2,
		Codes: []CodeBlock{
			{Lang: "bash", Code: "exit 1"},
			{Lang: "bash", Code: "touch " + marker},
		},
	}

	err := r.ExecuteSection(section, nil)
	var execErr *ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("Expected ExecutionError, got %v", err)
	}

	if _, err := os.Stat(marker); !os.IsNotExist(err) {
		t.Error("Expected the second block to never run after the first failed")
	}
}
