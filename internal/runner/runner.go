// Package runner turns Markdown sections into executed tasks. It owns the
// typed Section/CodeBlock data model, the conversion from the query
// engine's generic records, and the execution engine that dispatches each
// code block to its configured runtime.
package runner

import (
	"os"
	"time"

	"github.com/gerunddev/mdx/internal/config"
	"github.com/gerunddev/mdx/internal/logger"
	"github.com/gerunddev/mdx/internal/mdquery"
)

// CodeBlock is a fenced code block in a section.
type CodeBlock struct {
	// Lang is the fence's declared language tag, possibly empty.
	Lang string
	// Code is the raw block body without fence markers.
	Code string
}

// Section is one task: a heading plus the code blocks nested under it.
type Section struct {
	Title string
	Level int
	Codes []CodeBlock
	// Description is the prose following the heading, trimmed.
	// Empty when the document has none.
	Description string
}

// Runner executes code blocks in Markdown sections.
type Runner struct {
	config *config.Config
	engine *mdquery.Engine
	log    *logger.Logger
}

// New creates a Runner with the given configuration.
func New(cfg *config.Config) *Runner {
	return &Runner{
		config: cfg,
		engine: mdquery.NewEngine(),
		log:    logger.Discard(),
	}
}

// WithDefaultConfig creates a Runner with the built-in configuration.
func WithDefaultConfig() *Runner {
	return New(config.Default())
}

// SetLogger sets the logger for execution events.
func (r *Runner) SetLogger(log *logger.Logger) {
	r.log = log
}

// LoadMarkdown reads a Markdown file.
func (r *Runner) LoadMarkdown(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ExtractSections extracts sections from Markdown content. The document is
// parsed and queried fresh on every call; nothing is cached across calls.
func (r *Runner) ExtractSections(markdown string) ([]Section, error) {
	doc, err := r.engine.Parse([]byte(markdown))
	if err != nil {
		return nil, &MarkdownError{Err: err}
	}

	records, err := r.engine.SectionsWithCode(doc, r.config.HeadingLevel)
	if err != nil {
		return nil, &QueryError{Err: err}
	}

	sections := make([]Section, 0, len(records))
	for _, record := range records {
		// Records that are not key-value objects are dropped, not errors.
		dict, ok := record.(map[string]any)
		if !ok {
			continue
		}
		sections = append(sections, r.sectionFromRecord(dict))
	}

	r.log.SectionsExtracted(len(sections), r.config.HeadingLevel)
	return sections, nil
}

// FindSection returns the first section whose title exactly equals the
// requested title, or nil. Matching is case-sensitive; document order
// decides between duplicates.
func (r *Runner) FindSection(sections []Section, title string) *Section {
	for i := range sections {
		if sections[i].Title == title {
			return &sections[i]
		}
	}
	return nil
}

// RunTask loads a Markdown file and executes the section matching the task
// name, passing args through to the child processes as MX_* variables.
func (r *Runner) RunTask(path, task string, args []string) error {
	markdown, err := r.LoadMarkdown(path)
	if err != nil {
		return err
	}

	sections, err := r.ExtractSections(markdown)
	if err != nil {
		return err
	}

	section := r.FindSection(sections, task)
	if section == nil {
		return &SectionNotFoundError{Title: task}
	}

	r.log.TaskStarted(task, len(section.Codes))
	start := time.Now()

	if err := r.ExecuteSection(section, args); err != nil {
		return err
	}

	executed := 0
	for _, block := range section.Codes {
		if block.Lang != "" {
			executed++
		}
	}
	r.log.TaskCompleted(task, executed, time.Since(start))
	return nil
}

// ListSections loads a Markdown file and returns all of its sections.
func (r *Runner) ListSections(path string) ([]Section, error) {
	markdown, err := r.LoadMarkdown(path)
	if err != nil {
		return nil, err
	}
	return r.ExtractSections(markdown)
}
