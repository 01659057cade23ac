// Package config handles GTD space configuration.
package config

const (
	// DefaultDir is the default space directory name.
	DefaultDir = "gtd"
	// DefaultTasksDir is the default tasks subdirectory name.
	DefaultTasksDir = "tasks"
	// DefaultProjectsDir is the default projects subdirectory name.
	DefaultProjectsDir = "projects"
	// DefaultBucket is the bucket new tasks land in when capture carries
	// no explicit bucket shortcut.
	DefaultBucket = "inbox"
	// DefaultPriority is the default priority for new tasks.
	DefaultPriority = "medium"
	// DefaultStaleAfter is the default age (as a duration string) after
	// which an untouched task shows up in the review dashboard.
	DefaultStaleAfter = "168h"

	// ConfigFileName is the name of the config file within the space directory.
	ConfigFileName = "config.yml"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 2

	// ArchivedBucket is the reserved bucket name for soft-deleted tasks.
	ArchivedBucket = "archived"
	// DoneBucket is the terminal bucket for completed tasks.
	DoneBucket = "done"
)

// Default slice values for a new space (slices cannot be const).
var (
	// DefaultBuckets are the GTD processing buckets in workflow order.
	DefaultBuckets = []string{
		"inbox",
		"next",
		"waiting",
		"someday",
		DoneBucket,
		ArchivedBucket,
	}

	DefaultPriorities = []string{
		"low",
		"medium",
		"high",
	}

	// DefaultContexts are the recognized task contexts. The capture grammar
	// only ever produces these six; the list is configuration rather than
	// package-level shared state so a space can narrow or extend it for
	// structured commands.
	DefaultContexts = []string{
		"@home",
		"@work",
		"@computer",
		"@phone",
		"@errands",
		"@anywhere",
	}
)
