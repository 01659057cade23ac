package task

import (
	"strings"
	"testing"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Call the bank", "call-the-bank"},
		{"email: follow up w/ Jan?", "email-follow-up-w-jan"},
		{"  spaces   everywhere  ", "spaces-everywhere"},
		{"ALLCAPS", "allcaps"},
		{"123 numbers first", "123-numbers-first"},
		{"---", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := GenerateSlug(tt.title); got != tt.want {
				t.Errorf("GenerateSlug(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestGenerateSlug_TruncatesAtWordBoundary(t *testing.T) {
	long := strings.Repeat("word ", 20) // 100 chars
	slug := GenerateSlug(long)

	if len(slug) > maxSlugLength {
		t.Errorf("slug length %d exceeds %d", len(slug), maxSlugLength)
	}
	if strings.HasSuffix(slug, "-") {
		t.Errorf("slug %q ends with hyphen", slug)
	}
	// No partial word at the end: every segment must be "word".
	for _, part := range strings.Split(slug, "-") {
		if part != "word" {
			t.Errorf("slug %q contains partial word %q", slug, part)
		}
	}
}

func TestGenerateFilename(t *testing.T) {
	tests := []struct {
		id   int
		slug string
		want string
	}{
		{1, "call-bank", "001-call-bank.md"},
		{42, "x", "042-x.md"},
		{999, "y", "999-y.md"},
		{1234, "z", "1234-z.md"},
	}

	for _, tt := range tests {
		if got := GenerateFilename(tt.id, tt.slug); got != tt.want {
			t.Errorf("GenerateFilename(%d, %q) = %q, want %q", tt.id, tt.slug, got, tt.want)
		}
	}
}

func TestExtractIDFromFilename(t *testing.T) {
	id, err := ExtractIDFromFilename("042-call-bank.md")
	if err != nil {
		t.Fatalf("ExtractIDFromFilename: %v", err)
	}
	if id != 42 {
		t.Errorf("id = %d, want 42", id)
	}

	if _, err := ExtractIDFromFilename("notes.md"); err == nil {
		t.Error("expected error for filename without ID prefix")
	}
}
