package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/twiced-technology-gmbh/gtd/internal/clierr"
)

const fileMode = 0o600

// Sentinel errors.
var (
	ErrNotFound = errors.New("no GTD space found (run 'gtd init' to create one)")
	ErrInvalid  = errors.New("invalid config")
)

// Config represents a GTD space configuration.
type Config struct {
	Version     int            `yaml:"version"`
	Space       SpaceConfig    `yaml:"space"`
	TasksDir    string         `yaml:"tasks_dir"`
	ProjectsDir string         `yaml:"projects_dir"`
	Buckets     []string       `yaml:"buckets"`
	Priorities  []string       `yaml:"priorities"`
	Contexts    []string       `yaml:"contexts"`
	Defaults    DefaultsConfig `yaml:"defaults"`
	Review      ReviewConfig   `yaml:"review,omitempty"`
	NextID      int            `yaml:"next_id"`

	// dir is the absolute path to the space directory (not serialized).
	dir string `yaml:"-"`
}

// SpaceConfig holds space metadata.
type SpaceConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

// DefaultsConfig holds default values for new tasks.
type DefaultsConfig struct {
	Bucket   string `yaml:"bucket"`
	Priority string `yaml:"priority"`
}

// ReviewConfig holds review-dashboard settings.
type ReviewConfig struct {
	// StaleAfter is a duration string; tasks not updated for longer than
	// this are flagged during review.
	StaleAfter string `yaml:"stale_after,omitempty"`
}

// Dir returns the absolute path to the space directory.
func (c *Config) Dir() string {
	return c.dir
}

// TasksPath returns the absolute path to the tasks directory.
func (c *Config) TasksPath() string {
	return filepath.Join(c.dir, c.TasksDir)
}

// ProjectsPath returns the absolute path to the projects directory.
func (c *Config) ProjectsPath() string {
	return filepath.Join(c.dir, c.ProjectsDir)
}

// ConfigPath returns the absolute path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.dir, ConfigFileName)
}

// NewDefault creates a Config with default values.
func NewDefault(name string) *Config {
	return &Config{
		Version:     CurrentVersion,
		Space:       SpaceConfig{Name: name},
		TasksDir:    DefaultTasksDir,
		ProjectsDir: DefaultProjectsDir,
		Buckets:     append([]string{}, DefaultBuckets...),
		Priorities:  append([]string{}, DefaultPriorities...),
		Contexts:    append([]string{}, DefaultContexts...),
		Defaults: DefaultsConfig{
			Bucket:   DefaultBucket,
			Priority: DefaultPriority,
		},
		Review: ReviewConfig{StaleAfter: DefaultStaleAfter},
		NextID: 1,
	}
}

// SetDir sets the space directory path on the config.
func (c *Config) SetDir(dir string) {
	c.dir = dir
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if c.Space.Name == "" {
		return fmt.Errorf("%w: space.name is required", ErrInvalid)
	}
	if c.TasksDir == "" {
		return fmt.Errorf("%w: tasks_dir is required", ErrInvalid)
	}
	if c.ProjectsDir == "" {
		return fmt.Errorf("%w: projects_dir is required", ErrInvalid)
	}
	if len(c.Buckets) < 2 { //nolint:mnd // a workflow needs at least 2 buckets
		return fmt.Errorf("%w: at least 2 buckets are required", ErrInvalid)
	}
	if hasDuplicates(c.Buckets) {
		return fmt.Errorf("%w: buckets contain duplicates", ErrInvalid)
	}
	if len(c.Priorities) < 1 {
		return fmt.Errorf("%w: at least 1 priority is required", ErrInvalid)
	}
	if hasDuplicates(c.Priorities) {
		return fmt.Errorf("%w: priorities contain duplicates", ErrInvalid)
	}
	if hasDuplicates(c.Contexts) {
		return fmt.Errorf("%w: contexts contain duplicates", ErrInvalid)
	}
	if !contains(c.Buckets, c.Defaults.Bucket) {
		return fmt.Errorf("%w: default bucket %q not in buckets list", ErrInvalid, c.Defaults.Bucket)
	}
	if !contains(c.Priorities, c.Defaults.Priority) {
		return fmt.Errorf("%w: default priority %q not in priorities list", ErrInvalid, c.Defaults.Priority)
	}
	if c.Review.StaleAfter != "" {
		if _, err := time.ParseDuration(c.Review.StaleAfter); err != nil {
			return fmt.Errorf("%w: invalid review.stale_after %q: %w", ErrInvalid, c.Review.StaleAfter, err)
		}
	}
	if c.NextID < 1 {
		return fmt.Errorf("%w: next_id must be >= 1", ErrInvalid)
	}
	return nil
}

// StaleAfterDuration parses review.stale_after into a time.Duration.
// Returns the default when the field is empty or unparseable.
func (c *Config) StaleAfterDuration() time.Duration {
	fallback, _ := time.ParseDuration(DefaultStaleAfter)
	if c.Review.StaleAfter == "" {
		return fallback
	}
	d, err := time.ParseDuration(c.Review.StaleAfter)
	if err != nil {
		return fallback
	}
	return d
}

// Init creates a new GTD space in the given directory with default settings.
// It creates the space directory, tasks and projects subdirectories, and the
// config file.
func Init(dir, name string) (*Config, error) {
	const dirMode = 0o750

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg := NewDefault(name)
	cfg.SetDir(absDir)

	if err := os.MkdirAll(cfg.TasksPath(), dirMode); err != nil {
		return nil, fmt.Errorf("creating tasks directory: %w", err)
	}
	if err := os.MkdirAll(cfg.ProjectsPath(), dirMode); err != nil {
		return nil, fmt.Errorf("creating projects directory: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to its config file.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(c.ConfigPath(), data, fileMode)
}

// Load reads and validates a config from the given space directory.
func Load(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	path := filepath.Join(absDir, ConfigFileName)
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.dir = absDir

	// Migrate old config versions forward before validating.
	oldVersion := cfg.Version
	if err := migrate(&cfg); err != nil {
		return nil, err
	}

	// Persist migrated config so future loads skip re-migration.
	if cfg.Version != oldVersion {
		if err := cfg.Save(); err != nil {
			return nil, fmt.Errorf("saving migrated config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// FindDir walks upward from startDir looking for a space directory
// containing config.yml. Returns the absolute path to the space directory.
func FindDir(startDir string) (string, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	dir := absStart
	for {
		candidate := filepath.Join(dir, DefaultDir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Join(dir, DefaultDir), nil
		}

		// Also check if we're inside the space directory itself.
		candidate = filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", clierr.New(clierr.SpaceNotFound,
				"no GTD space found (run 'gtd init' to create one)")
		}
		dir = parent
	}
}

// IsTerminalBucket returns true if the given bucket is terminal.
// Both the done bucket (immediately before archived) and archived itself
// are terminal. If the space has no archived bucket, the last bucket is
// terminal.
func (c *Config) IsTerminalBucket(b string) bool {
	if len(c.Buckets) == 0 {
		return false
	}
	if b == ArchivedBucket {
		return true
	}
	lastIdx := len(c.Buckets) - 1
	if c.Buckets[lastIdx] == ArchivedBucket && lastIdx > 0 {
		return b == c.Buckets[lastIdx-1]
	}
	return b == c.Buckets[lastIdx]
}

// IsArchivedBucket returns true if the given bucket is the archived bucket.
func (c *Config) IsArchivedBucket(b string) bool {
	return b == ArchivedBucket && contains(c.Buckets, ArchivedBucket)
}

// BoardBuckets returns the buckets that should appear as board columns,
// excluding the archived bucket.
func (c *Config) BoardBuckets() []string {
	result := make([]string, 0, len(c.Buckets))
	for _, b := range c.Buckets {
		if b != ArchivedBucket {
			result = append(result, b)
		}
	}
	return result
}

// BucketIndex returns the index of a bucket in the configured order, or -1.
func (c *Config) BucketIndex(bucket string) int {
	return IndexOf(c.Buckets, bucket)
}

// PriorityIndex returns the index of a priority in the configured order, or -1.
func (c *Config) PriorityIndex(priority string) int {
	return IndexOf(c.Priorities, priority)
}

func contains(slice []string, item string) bool {
	return IndexOf(slice, item) >= 0
}

// IndexOf returns the index of item in slice, or -1 if not found.
func IndexOf(slice []string, item string) int {
	for i, s := range slice {
		if s == item {
			return i
		}
	}
	return -1
}

func hasDuplicates(slice []string) bool {
	seen := make(map[string]bool, len(slice))
	for _, s := range slice {
		if seen[s] {
			return true
		}
		seen[s] = true
	}
	return false
}
