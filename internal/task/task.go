// Package task handles task files and their frontmatter.
package task

import (
	"time"

	"github.com/twiced-technology-gmbh/gtd/internal/date"
)

// Task represents a GTD task parsed from a markdown file.
type Task struct {
	ID        int        `yaml:"id" json:"id"`
	Title     string     `yaml:"title" json:"title"`
	Bucket    string     `yaml:"bucket" json:"bucket"`
	Priority  string     `yaml:"priority,omitempty" json:"priority,omitempty"`
	Context   string     `yaml:"context,omitempty" json:"context,omitempty"`
	Project   string     `yaml:"project,omitempty" json:"project,omitempty"`
	Tags      []string   `yaml:"tags,omitempty" json:"tags,omitempty"`
	Due       *date.Date `yaml:"due,omitempty" json:"due,omitempty"`
	Created   time.Time  `yaml:"created" json:"created"`
	Updated   time.Time  `yaml:"updated" json:"updated"`
	Completed *time.Time `yaml:"completed,omitempty" json:"completed,omitempty"`

	// Body is the markdown content below the frontmatter (not in YAML).
	Body string `yaml:"-" json:"body,omitempty"`

	// File is the path to the task file (not in YAML).
	File string `yaml:"-" json:"file,omitempty"`
}

// Overdue reports whether the task's due date is strictly before the
// calendar date of now. A task due today is not overdue yet.
func (t *Task) Overdue(now time.Time) bool {
	return t.Due != nil && t.Due.String() < now.Format("2006-01-02")
}
