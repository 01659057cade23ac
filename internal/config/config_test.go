package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNewDefault(t *testing.T) {
	cfg := NewDefault("personal")
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Space.Name != "personal" {
		t.Errorf("name = %q", cfg.Space.Name)
	}
	if cfg.NextID != 1 {
		t.Errorf("next_id = %d", cfg.NextID)
	}
	if cfg.Defaults.Bucket != "inbox" || cfg.Defaults.Priority != "medium" {
		t.Errorf("defaults = %+v", cfg.Defaults)
	}
	if len(cfg.Contexts) != 6 {
		t.Errorf("contexts = %v", cfg.Contexts)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"wrong version", func(c *Config) { c.Version = 99 }},
		{"empty name", func(c *Config) { c.Space.Name = "" }},
		{"empty tasks dir", func(c *Config) { c.TasksDir = "" }},
		{"empty projects dir", func(c *Config) { c.ProjectsDir = "" }},
		{"too few buckets", func(c *Config) { c.Buckets = []string{"inbox"} }},
		{"duplicate buckets", func(c *Config) { c.Buckets = []string{"inbox", "inbox"} }},
		{"no priorities", func(c *Config) { c.Priorities = nil }},
		{"duplicate contexts", func(c *Config) { c.Contexts = []string{"@home", "@home"} }},
		{"default bucket not listed", func(c *Config) { c.Defaults.Bucket = "triage" }},
		{"default priority not listed", func(c *Config) { c.Defaults.Priority = "urgent" }},
		{"bad stale_after", func(c *Config) { c.Review.StaleAfter = "fortnight" }},
		{"zero next_id", func(c *Config) { c.NextID = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault("test")
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("err = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestInitAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "gtd")

	cfg, err := Init(dir, "work")
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if _, err := os.Stat(cfg.TasksPath()); err != nil {
		t.Errorf("tasks dir not created: %v", err)
	}
	if _, err := os.Stat(cfg.ProjectsPath()); err != nil {
		t.Errorf("projects dir not created: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Space.Name != "work" || loaded.Version != CurrentVersion {
		t.Errorf("loaded = %+v", loaded)
	}
	if loaded.Dir() != cfg.Dir() {
		t.Errorf("dir = %q, want %q", loaded.Dir(), cfg.Dir())
	}
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(t.TempDir())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestLoad_MigratesV1(t *testing.T) {
	dir := t.TempDir()

	v1 := `version: 1
space:
  name: legacy
tasks_dir: tasks
projects_dir: projects
buckets: [inbox, next, waiting, someday, done, archived]
priorities: [low, medium, high]
defaults:
  bucket: inbox
  priority: medium
next_id: 7
`
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(v1), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Version != CurrentVersion {
		t.Errorf("version = %d", cfg.Version)
	}
	if len(cfg.Contexts) != 6 {
		t.Errorf("contexts not backfilled: %v", cfg.Contexts)
	}
	if cfg.Review.StaleAfter != DefaultStaleAfter {
		t.Errorf("stale_after = %q", cfg.Review.StaleAfter)
	}
	if cfg.NextID != 7 {
		t.Errorf("next_id = %d", cfg.NextID)
	}

	// Migration is persisted: a second load sees the current version on disk.
	again, err := Load(dir)
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if again.Version != CurrentVersion {
		t.Errorf("persisted version = %d", again.Version)
	}
}

func TestLoad_RejectsNewerVersion(t *testing.T) {
	dir := t.TempDir()
	content := "version: 99\nspace:\n  name: future\n"
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); !errors.Is(err, ErrInvalid) {
		t.Errorf("err = %v, want ErrInvalid", err)
	}
}

func TestFindDir(t *testing.T) {
	root := t.TempDir()
	spaceDir := filepath.Join(root, DefaultDir)
	if _, err := Init(spaceDir, "test"); err != nil {
		t.Fatal(err)
	}

	t.Run("from parent of space dir", func(t *testing.T) {
		got, err := FindDir(root)
		if err != nil {
			t.Fatalf("FindDir: %v", err)
		}
		if got != spaceDir {
			t.Errorf("dir = %q, want %q", got, spaceDir)
		}
	})

	t.Run("from nested subdirectory", func(t *testing.T) {
		nested := filepath.Join(root, "a", "b")
		if err := os.MkdirAll(nested, 0o750); err != nil {
			t.Fatal(err)
		}
		got, err := FindDir(nested)
		if err != nil {
			t.Fatalf("FindDir: %v", err)
		}
		if got != spaceDir {
			t.Errorf("dir = %q, want %q", got, spaceDir)
		}
	})

	t.Run("from inside the space dir", func(t *testing.T) {
		got, err := FindDir(spaceDir)
		if err != nil {
			t.Fatalf("FindDir: %v", err)
		}
		if got != spaceDir {
			t.Errorf("dir = %q, want %q", got, spaceDir)
		}
	})

	t.Run("no space anywhere", func(t *testing.T) {
		if _, err := FindDir(t.TempDir()); err == nil {
			t.Error("expected error")
		}
	})
}

func TestBucketHelpers(t *testing.T) {
	cfg := NewDefault("test")

	if !cfg.IsTerminalBucket("done") || !cfg.IsTerminalBucket("archived") {
		t.Error("done and archived should be terminal")
	}
	if cfg.IsTerminalBucket("next") {
		t.Error("next should not be terminal")
	}
	if !cfg.IsArchivedBucket("archived") {
		t.Error("archived should be the archived bucket")
	}

	board := cfg.BoardBuckets()
	for _, b := range board {
		if b == ArchivedBucket {
			t.Error("archived present in board buckets")
		}
	}
	if len(board) != len(cfg.Buckets)-1 {
		t.Errorf("board buckets = %v", board)
	}

	if got := cfg.BucketIndex("waiting"); got != 2 {
		t.Errorf("BucketIndex(waiting) = %d", got)
	}
	if got := cfg.BucketIndex("nope"); got != -1 {
		t.Errorf("BucketIndex(nope) = %d", got)
	}
	if got := cfg.PriorityIndex("high"); got != 2 {
		t.Errorf("PriorityIndex(high) = %d", got)
	}
}

func TestIsTerminalBucket_CustomBuckets(t *testing.T) {
	cfg := NewDefault("test")
	cfg.Buckets = []string{"todo", "doing", "shipped"}

	if !cfg.IsTerminalBucket("shipped") {
		t.Error("last bucket should be terminal without archived")
	}
	if cfg.IsTerminalBucket("doing") {
		t.Error("doing should not be terminal")
	}
}
