package task

import (
	"github.com/twiced-technology-gmbh/gtd/internal/clierr"
)

// ValidateBucket checks that a bucket is in the allowed list.
func ValidateBucket(bucket string, allowed []string) error {
	for _, b := range allowed {
		if b == bucket {
			return nil
		}
	}
	return clierr.Newf(clierr.InvalidBucket, "invalid bucket %q", bucket).
		WithDetails(map[string]any{
			"bucket":  bucket,
			"allowed": allowed,
		})
}

// ValidatePriority checks that a priority is in the allowed list.
func ValidatePriority(priority string, allowed []string) error {
	for _, p := range allowed {
		if p == priority {
			return nil
		}
	}
	return clierr.Newf(clierr.InvalidPriority, "invalid priority %q", priority).
		WithDetails(map[string]any{
			"priority": priority,
			"allowed":  allowed,
		})
}

// ValidateContext checks that a context is in the allowed list.
func ValidateContext(context string, allowed []string) error {
	for _, c := range allowed {
		if c == context {
			return nil
		}
	}
	return clierr.Newf(clierr.InvalidContext, "invalid context %q", context).
		WithDetails(map[string]any{
			"context": context,
			"allowed": allowed,
		})
}

// ValidateDate returns a CLIError for invalid date input.
func ValidateDate(field, input string, err error) *clierr.Error {
	return clierr.Newf(clierr.InvalidDate, "invalid %s date: %v", field, err).
		WithDetails(map[string]any{
			"field": field,
			"input": input,
		})
}

// ValidateTaskID returns a CLIError for invalid task ID input.
func ValidateTaskID(input string) *clierr.Error {
	return clierr.Newf(clierr.InvalidTaskID, "invalid task ID %q", input).
		WithDetails(map[string]any{"input": input})
}

// ValidateBoundaryError returns a CLIError for boundary moves.
func ValidateBoundaryError(id int, bucket, direction string) *clierr.Error {
	return clierr.Newf(clierr.BoundaryError,
		"task #%d is already at the %s bucket (%s)", id, direction, bucket).
		WithDetails(map[string]any{
			"id":        id,
			"bucket":    bucket,
			"direction": direction,
		})
}

// FormatDueDate returns a CLIError for invalid due date input.
func FormatDueDate(input string, err error) *clierr.Error {
	return ValidateDate("due", input, err)
}
