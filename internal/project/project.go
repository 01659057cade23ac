// Package project handles project files and resolution of project
// references produced by capture.
package project

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/twiced-technology-gmbh/gtd/internal/clierr"
	"github.com/twiced-technology-gmbh/gtd/internal/task"
)

const fileMode = 0o600

// Project represents a GTD project parsed from a markdown file.
type Project struct {
	Title   string    `yaml:"title" json:"title"`
	Created time.Time `yaml:"created" json:"created"`

	// Body is the markdown content below the frontmatter (not in YAML).
	Body string `yaml:"-" json:"body,omitempty"`

	// File is the path to the project file (not in YAML).
	File string `yaml:"-" json:"file,omitempty"`
}

// Slug returns the filename slug for the project title.
func (p *Project) Slug() string {
	return task.GenerateSlug(p.Title)
}

// Create writes a new project file. Fails if a project with the same slug
// already exists.
func Create(projectsDir, title string) (*Project, error) {
	p := &Project{Title: title, Created: time.Now()}
	path := filepath.Join(projectsDir, p.Slug()+".md")

	if _, err := os.Stat(path); err == nil {
		return nil, clierr.Newf(clierr.ProjectExists, "project %q already exists", title).
			WithDetails(map[string]any{"title": title, "file": path})
	}

	if err := write(path, p); err != nil {
		return nil, err
	}
	p.File = path
	return p, nil
}

// ReadAll reads all project files from the given directory.
func ReadAll(projectsDir string) ([]*Project, error) {
	entries, err := os.ReadDir(projectsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading projects directory: %w", err)
	}

	var projects []*Project
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".md" {
			continue
		}
		path := filepath.Join(projectsDir, entry.Name())
		p, err := read(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}
		projects = append(projects, p)
	}

	return projects, nil
}

// Resolve matches a capture project reference against existing project
// titles. The match is case-insensitive, alternately comparing the
// reference against the title with spaces replaced by hyphens (so
// "pro:weekend-trip" finds the project "Weekend Trip"). Returns nil when
// nothing matches; an unresolved reference leaves the task unassociated.
func Resolve(projects []*Project, name string) *Project {
	needle := strings.ToLower(name)
	for _, p := range projects {
		title := strings.ToLower(p.Title)
		if title == needle {
			return p
		}
		if strings.ReplaceAll(title, " ", "-") == needle {
			return p
		}
	}
	return nil
}

// read parses a project file with YAML frontmatter.
func read(path string) (*Project, error) {
	data, err := os.ReadFile(path) //nolint:gosec // project path from trusted source
	if err != nil {
		return nil, fmt.Errorf("reading project file: %w", err)
	}

	content := string(data)
	if !strings.HasPrefix(content, "---\n") {
		return nil, fmt.Errorf("parsing %s: file does not start with YAML frontmatter (---)", path)
	}
	rest := content[4:]
	idx := strings.Index(rest, "\n---\n")
	if idx < 0 {
		if !strings.HasSuffix(rest, "\n---") {
			return nil, fmt.Errorf("parsing %s: unclosed frontmatter (missing closing ---)", path)
		}
		idx = len(rest) - len("---")
	}

	var p Project
	if err := yaml.Unmarshal([]byte(rest[:idx]), &p); err != nil {
		return nil, fmt.Errorf("parsing frontmatter in %s: %w", path, err)
	}

	if end := idx + len("\n---\n"); end < len(rest) {
		p.Body = strings.TrimLeft(rest[end:], "\n")
	}
	p.File = path

	return &p, nil
}

// write serializes a project to a markdown file with YAML frontmatter.
func write(path string, p *Project) error {
	fm, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(fm)
	buf.WriteString("---\n")
	if p.Body != "" {
		buf.WriteString("\n")
		buf.WriteString(p.Body)
		if !strings.HasSuffix(p.Body, "\n") {
			buf.WriteString("\n")
		}
	}

	return os.WriteFile(path, buf.Bytes(), fileMode)
}
