package runner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/gerunddev/mdx/internal/config"
)

// tempFilePrefix names the temp files created for file-mode execution.
const tempFilePrefix = "mdx_"

// ExecuteSection runs every code block in the section in order. Blocks
// without a language tag are documentation, not tasks, and are skipped.
// The first failing block aborts the rest of the section.
func (r *Runner) ExecuteSection(section *Section, args []string) error {
	for _, block := range section.Codes {
		if block.Lang == "" {
			r.log.BlockSkipped("no language tag")
			continue
		}
		if err := r.ExecuteCode(block.Lang, block.Code, args); err != nil {
			r.log.ExecError(block.Lang, err)
			return err
		}
	}
	return nil
}

// ExecuteCode runs a single code block with the runtime configured for its
// language tag.
func (r *Runner) ExecuteCode(lang, code string, args []string) error {
	command, ok := r.config.GetRuntime(lang)
	if !ok {
		return &RuntimeNotFoundError{Lang: lang}
	}

	parts := strings.Fields(command)
	if len(parts) == 0 {
		return &RuntimeNotFoundError{Lang: lang}
	}

	mode := r.config.GetExecutionMode(lang)
	r.log.BlockExecuting(lang, command, string(mode))

	switch mode {
	case config.ModeFile:
		return r.execFile(lang, code, parts, args)
	case config.ModeArg:
		return r.execArg(code, parts, args)
	default:
		return r.execStdin(code, parts, args)
	}
}

// execStdin pipes the code to the child's standard input. Stdout and
// stderr are inherited so interactive and colored output work unmodified.
func (r *Runner) execStdin(code string, parts, args []string) error {
	cmd := exec.Command(parts[0], parts[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = buildEnv(args)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return &ExecutionError{Reason: "failed to open stdin pipe", Err: err}
	}

	if err := cmd.Start(); err != nil {
		stdin.Close()
		return &ExecutionError{Reason: "failed to spawn process", Err: err}
	}

	writeErr := func() error {
		defer stdin.Close()
		_, err := io.WriteString(stdin, code)
		return err
	}()

	waitErr := cmd.Wait()
	if writeErr != nil {
		return &ExecutionError{Reason: "failed to write to stdin", Err: writeErr}
	}
	return exitStatus(waitErr)
}

// execArg appends the code as the final literal argument.
func (r *Runner) execArg(code string, parts, args []string) error {
	argv := append(append([]string{}, parts[1:]...), code)

	cmd := exec.Command(parts[0], argv...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = buildEnv(args)

	if err := cmd.Start(); err != nil {
		return &ExecutionError{Reason: "failed to spawn process", Err: err}
	}
	return exitStatus(cmd.Wait())
}

// execFile writes the code to a temp file whose path is appended to the
// argument list. The file is removed on every exit path; removal failure
// is swallowed so it never masks the task's own exit status.
func (r *Runner) execFile(lang, code string, parts, args []string) error {
	name := fmt.Sprintf("%s%d.%s", tempFilePrefix, time.Now().UnixNano(), fileExtension(lang))
	path := filepath.Join(os.TempDir(), name)

	if err := os.WriteFile(path, []byte(code), 0644); err != nil {
		return &ExecutionError{Reason: "failed to write temp file", Err: err}
	}
	defer os.Remove(path)

	r.log.TempFileWritten(path)

	argv := append(append([]string{}, parts[1:]...), path)

	cmd := exec.Command(parts[0], argv...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = buildEnv(args)

	if err := cmd.Start(); err != nil {
		return &ExecutionError{Reason: fmt.Sprintf("failed to execute %s", lang), Err: err}
	}
	return exitStatus(cmd.Wait())
}

// fileExtension maps a language tag to a temp file extension. Unknown tags
// use the tag itself.
func fileExtension(lang string) string {
	switch lang {
	case "go", "golang":
		return "go"
	case "python":
		return "py"
	case "ruby":
		return "rb"
	case "javascript", "js":
		return "js"
	case "typescript", "ts":
		return "ts"
	default:
		return lang
	}
}

// buildEnv derives the child environment from the task arguments. Without
// arguments the child inherits the parent environment untouched.
func buildEnv(args []string) []string {
	if len(args) == 0 {
		return nil
	}

	env := os.Environ()
	env = append(env, "MX_ARGS="+strings.Join(args, " "))
	for i, arg := range args {
		env = append(env, fmt.Sprintf("MX_ARG_%d=%s", i, arg))
	}
	return env
}

// exitStatus converts a Wait error into the execution error taxonomy.
func exitStatus(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return &ExecutionError{Reason: fmt.Sprintf("process exited with status %d", code)}
		}
		return &ExecutionError{Reason: "process terminated abnormally", Err: exitErr}
	}
	return &ExecutionError{Reason: "failed to wait for process", Err: err}
}
