package task

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/twiced-technology-gmbh/gtd/internal/date"
)

func TestWriteRead_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "001-call-bank.md")

	due := date.New(2026, time.March, 15)
	created := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)
	original := &Task{
		ID:       1,
		Title:    "Call the bank",
		Bucket:   "next",
		Priority: "high",
		Context:  "@phone",
		Project:  "Apartment",
		Tags:     []string{"money", "urgent"},
		Due:      &due,
		Created:  created,
		Updated:  created,
		Body:     "Ask about the mortgage rate.\n\n- bring account number\n",
	}

	if err := Write(path, original); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if got.ID != 1 || got.Title != "Call the bank" || got.Bucket != "next" {
		t.Errorf("core fields: %+v", got)
	}
	if got.Priority != "high" || got.Context != "@phone" || got.Project != "Apartment" {
		t.Errorf("metadata fields: %+v", got)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "money" {
		t.Errorf("tags = %v", got.Tags)
	}
	if got.Due == nil || got.Due.String() != "2026-03-15" {
		t.Errorf("due = %v", got.Due)
	}
	if got.Body != original.Body {
		t.Errorf("body = %q, want %q", got.Body, original.Body)
	}
	if got.File != path {
		t.Errorf("file = %q, want %q", got.File, path)
	}
}

func TestWriteRead_EmptyBody(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "002-x.md")

	if err := Write(path, &Task{ID: 2, Title: "x", Bucket: "inbox"}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.Body != "" {
		t.Errorf("body = %q, want empty", got.Body)
	}
}

func TestRead_RejectsMalformedFiles(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"no frontmatter", "just some markdown\n"},
		{"unclosed frontmatter", "---\nid: 1\ntitle: x\n"},
		{"invalid yaml", "---\nid: [unclosed\n---\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "bad.md")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := Read(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestFindByID(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"001-first.md", "042-second.md", "100-third.md"} {
		writeTestFile(t, dir, name)
	}

	path, err := FindByID(dir, 42)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if filepath.Base(path) != "042-second.md" {
		t.Errorf("path = %q", path)
	}

	if _, err := FindByID(dir, 7); err == nil {
		t.Error("expected error for missing ID")
	}
}

func TestReadAllLenient_SkipsMalformed(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "001-good.md")
	if err := os.WriteFile(filepath.Join(dir, "002-bad.md"), []byte("no frontmatter"), 0o600); err != nil {
		t.Fatal(err)
	}

	tasks, warnings, err := ReadAllLenient(dir)
	if err != nil {
		t.Fatalf("ReadAllLenient: %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("tasks = %d, want 1", len(tasks))
	}
	if len(warnings) != 1 || warnings[0].File != "002-bad.md" {
		t.Errorf("warnings = %v", warnings)
	}
}

func TestReadAllLenient_MissingDir(t *testing.T) {
	tasks, warnings, err := ReadAllLenient(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("ReadAllLenient: %v", err)
	}
	if tasks != nil || warnings != nil {
		t.Errorf("expected empty results, got %v / %v", tasks, warnings)
	}
}

func writeTestFile(t *testing.T, dir, name string) {
	t.Helper()
	id, err := ExtractIDFromFilename(name)
	if err != nil {
		t.Fatal(err)
	}
	if err := Write(filepath.Join(dir, name), &Task{ID: id, Title: name, Bucket: "inbox"}); err != nil {
		t.Fatal(err)
	}
}
