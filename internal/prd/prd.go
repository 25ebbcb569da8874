// Package prd parses product-requirements markdown documents into a
// structured model of sections and task checkboxes, and renders edits
// back out without disturbing the surrounding prose.
package prd

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Task is a single markdown checkbox item inside a section.
type Task struct {
	Title string
	Done  bool

	// line is the index into Document.lines for this task.
	line int
}

// Section is a top-level `## ` heading and the tasks beneath it.
type Section struct {
	Title string
	Tasks []*Task
}

// Document is a parsed PRD. The original lines are retained so that
// Render can reproduce the file with only checkbox state changed.
type Document struct {
	Sections []*Section

	lines []string
	tasks map[string]*Task
}

var (
	// `## Heading` but not `###`; mirrors GitHub-style task-list docs.
	headerPattern = regexp.MustCompile(`^## ([^#].*)`)
	taskPattern   = regexp.MustCompile(`^(\s*-\s*\[)( |x)(\]\s+)(.+)$`)
)

// Parse reads a PRD document line by line. A task line before the first
// `## ` heading is an error, as is a duplicated section title: both would
// otherwise make sync results depend on which copy matched.
func Parse(r io.Reader) (*Document, error) {
	doc := &Document{tasks: make(map[string]*Task)}
	seen := make(map[string]bool)

	var current *Section

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		line := scanner.Text()
		lineNo++
		doc.lines = append(doc.lines, line)

		if m := headerPattern.FindStringSubmatch(line); m != nil {
			title := strings.TrimSpace(m[1])
			if seen[title] {
				return nil, fmt.Errorf("line %d: duplicate section %q", lineNo, title)
			}
			seen[title] = true
			current = &Section{Title: title}
			doc.Sections = append(doc.Sections, current)
			continue
		}

		if m := taskPattern.FindStringSubmatch(line); m != nil {
			if current == nil {
				return nil, fmt.Errorf("line %d: task %q outside any section", lineNo, strings.TrimSpace(m[4]))
			}
			task := &Task{
				Title: strings.TrimSpace(m[4]),
				Done:  m[2] == "x",
				line:  len(doc.lines) - 1,
			}
			current.Tasks = append(current.Tasks, task)
			doc.tasks[task.Title] = task
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	return doc, nil
}

// Find returns the task with the given title, or nil.
func (d *Document) Find(title string) *Task {
	return d.tasks[strings.TrimSpace(title)]
}

// MarkDone checks off the task with the given title. It reports whether
// the document changed: false means the task was absent or already done.
func (d *Document) MarkDone(title string) bool {
	task := d.Find(title)
	if task == nil || task.Done {
		return false
	}
	task.Done = true

	m := taskPattern.FindStringSubmatch(d.lines[task.line])
	d.lines[task.line] = m[1] + "x" + m[3] + m[4]
	return true
}

// Render writes the document back out. Lines that are not task
// checkboxes are reproduced byte for byte.
func (d *Document) Render() string {
	return strings.Join(d.lines, "\n")
}
