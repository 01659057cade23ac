package project

import (
	"errors"
	"testing"

	"github.com/twiced-technology-gmbh/gtd/internal/clierr"
)

func TestCreateAndReadAll(t *testing.T) {
	dir := t.TempDir()

	p, err := Create(dir, "Apartment Hunt")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Title != "Apartment Hunt" {
		t.Errorf("title = %q", p.Title)
	}
	if p.Slug() != "apartment-hunt" {
		t.Errorf("slug = %q", p.Slug())
	}

	projects, err := ReadAll(dir)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(projects) != 1 || projects[0].Title != "Apartment Hunt" {
		t.Errorf("projects = %v", projects)
	}
}

func TestCreate_RejectsDuplicate(t *testing.T) {
	dir := t.TempDir()

	if _, err := Create(dir, "Apartment Hunt"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := Create(dir, "apartment HUNT")
	if err == nil {
		t.Fatal("expected error for duplicate project")
	}
	var cliErr *clierr.Error
	if !errors.As(err, &cliErr) || cliErr.Code != clierr.ProjectExists {
		t.Errorf("error = %v, want code %s", err, clierr.ProjectExists)
	}
}

func TestReadAll_MissingDir(t *testing.T) {
	projects, err := ReadAll(t.TempDir() + "/nope")
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("projects = %v, want none", projects)
	}
}

func TestResolve(t *testing.T) {
	projects := []*Project{
		{Title: "Apartment Hunt"},
		{Title: "Taxes"},
	}

	tests := []struct {
		name string
		ref  string
		want string // resolved title, or "" for no match
	}{
		{"exact title", "Apartment Hunt", "Apartment Hunt"},
		{"case-insensitive title", "apartment hunt", "Apartment Hunt"},
		{"hyphenated reference", "apartment-hunt", "Apartment Hunt"},
		{"hyphenated mixed case", "Apartment-Hunt", "Apartment Hunt"},
		{"single word", "taxes", "Taxes"},
		{"no match", "garden", ""},
		{"empty reference", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Resolve(projects, tt.ref)
			if tt.want == "" {
				if p != nil {
					t.Errorf("Resolve(%q) = %v, want nil", tt.ref, p)
				}
				return
			}
			if p == nil || p.Title != tt.want {
				t.Errorf("Resolve(%q) = %v, want %q", tt.ref, p, tt.want)
			}
		})
	}
}
