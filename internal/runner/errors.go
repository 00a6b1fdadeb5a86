package runner

import "fmt"

// MarkdownError reports a document that failed to parse.
type MarkdownError struct {
	Err error
}

func (e *MarkdownError) Error() string {
	return fmt.Sprintf("markdown error: failed to parse markdown: %v", e.Err)
}

func (e *MarkdownError) Unwrap() error { return e.Err }

// QueryError reports a section-extraction query that failed to evaluate.
type QueryError struct {
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query error: failed to execute query: %v", e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// ExecutionError reports a spawn failure, a non-zero or abnormal exit, or
// an I/O failure while feeding a child process.
type ExecutionError struct {
	Reason string
	Err    error
}

func (e *ExecutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("execution error: %s: %v", e.Reason, e.Err)
	}
	return "execution error: " + e.Reason
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// SectionNotFoundError reports a task title with no matching section.
type SectionNotFoundError struct {
	Title string
}

func (e *SectionNotFoundError) Error() string {
	return "section not found: " + e.Title
}

// RuntimeNotFoundError reports a language tag with no configured runtime.
type RuntimeNotFoundError struct {
	Lang string
}

func (e *RuntimeNotFoundError) Error() string {
	return "runtime not found for language: " + e.Lang
}
