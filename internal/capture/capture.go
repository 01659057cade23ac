// Package capture parses a single quick-add line into a structured task
// draft. The grammar extracts priority, context, project reference, due
// date, tags, and a bucket shortcut from free-form text; everything the
// grammar does not recognize stays in the title as literal text.
//
// Parsing is a pure function with no shared state. It never fails: a
// malformed token is either stripped without producing a value (due:) or
// left untouched in the title.
package capture

import (
	"regexp"
	"strings"

	"github.com/twiced-technology-gmbh/gtd/internal/date"
)

// Draft is the structured, unpersisted result of parsing one capture line.
// String fields use "" for absent; the caller merges the draft into its own
// task-creation contract and applies defaults (e.g. the inbox bucket).
type Draft struct {
	Title    string   `json:"title"`
	Priority string   `json:"priority,omitempty"` // high, medium, low
	Context  string   `json:"context,omitempty"`  // "@home", "@work", ...
	Project  string   `json:"project,omitempty"`  // raw reference, resolved by the caller
	Due      string   `json:"due,omitempty"`      // YYYY-MM-DD
	Tags     []string `json:"tags,omitempty"`
	Bucket   string   `json:"bucket,omitempty"` // next, waiting, someday
}

// Token patterns. Each captures the leading boundary (start or whitespace)
// in group 1 and the token value in group 2 so the boundary can be
// re-inserted when the token is stripped.
var (
	priorityRe = regexp.MustCompile(`(?i)(^|\s)(?:pri:|!)([hml])\b`)
	contextRe  = regexp.MustCompile(`(?i)(^|\s)@(home|work|computer|phone|errands|anywhere)\b`)
	projectRe  = regexp.MustCompile(`(?i)(^|\s)pro:(\S+)`)
	dueRe      = regexp.MustCompile(`(?i)(^|\s)due:(\S+)`)
	tagRe      = regexp.MustCompile(`(^|\s)\+(\w+)\b`)
	bucketRe   = regexp.MustCompile(`(?i)(^|\s)>(next|waiting|wait|someday|maybe)\b`)

	whitespaceRe = regexp.MustCompile(`\s+`)
)

var priorityNames = map[string]string{
	"h": "high",
	"m": "medium",
	"l": "low",
}

var bucketNames = map[string]string{
	"next":    "next",
	"wait":    "waiting",
	"waiting": "waiting",
	"someday": "someday",
	"maybe":   "someday",
}

// A rule extracts one kind of token from the input, records the result on
// the draft, and returns the input with the recognized span removed.
type rule func(in string, today date.Date, d *Draft) string

// rules is the extraction pipeline. The order is a designed invariant:
// priority -> context -> project -> due -> tags -> bucket. Each rule sees
// the text as already stripped by the previous rules, which is what
// resolves overlaps (e.g. a tag-like "+foo" inside a "pro:" token belongs
// to the project because the project rule runs first).
var rules = []rule{
	extractPriority,
	extractContext,
	extractProject,
	extractDue,
	extractTags,
	extractBucket,
}

// Parse parses one quick-add line relative to today's date.
func Parse(input string) Draft {
	return ParseAt(input, date.Today())
}

// ParseAt parses one quick-add line, resolving relative due-date
// expressions against the given reference date. It is total: any input
// yields a draft, never an error.
func ParseAt(input string, today date.Date) Draft {
	var d Draft
	rest := input
	for _, r := range rules {
		rest = r(rest, today, &d)
	}
	d.Title = normalizeWhitespace(rest)
	return d
}

// stripFirst removes the first match of re from s, keeping the captured
// leading boundary. Returns the token value, the remaining text, and
// whether a match was found.
func stripFirst(re *regexp.Regexp, s string) (value, rest string, ok bool) {
	m := re.FindStringSubmatchIndex(s)
	if m == nil {
		return "", s, false
	}
	boundary := s[m[2]:m[3]]
	value = s[m[4]:m[5]]
	return value, s[:m[0]] + boundary + s[m[1]:], true
}

func extractPriority(in string, _ date.Date, d *Draft) string {
	v, rest, ok := stripFirst(priorityRe, in)
	if !ok {
		return in
	}
	d.Priority = priorityNames[strings.ToLower(v)]
	return rest
}

func extractContext(in string, _ date.Date, d *Draft) string {
	v, rest, ok := stripFirst(contextRe, in)
	if !ok {
		return in
	}
	d.Context = "@" + strings.ToLower(v)
	return rest
}

func extractProject(in string, _ date.Date, d *Draft) string {
	v, rest, ok := stripFirst(projectRe, in)
	if !ok {
		return in
	}
	d.Project = v // case preserved; resolution happens in the caller
	return rest
}

func extractDue(in string, today date.Date, d *Draft) string {
	v, rest, ok := stripFirst(dueRe, in)
	if !ok {
		return in
	}
	// The token is stripped even when the value is unrecognized; the due
	// field simply stays absent in that case.
	d.Due = resolveDue(v, today)
	return rest
}

// extractTags collects every +word occurrence, left to right. Tags are the
// only multi-valued field; duplicates are kept as they appear.
func extractTags(in string, _ date.Date, d *Draft) string {
	matches := tagRe.FindAllStringSubmatchIndex(in, -1)
	if matches == nil {
		return in
	}

	var out strings.Builder
	last := 0
	for _, m := range matches {
		d.Tags = append(d.Tags, in[m[4]:m[5]])
		out.WriteString(in[last:m[0]])
		out.WriteString(in[m[2]:m[3]]) // keep the boundary
		last = m[1]
	}
	out.WriteString(in[last:])
	return out.String()
}

func extractBucket(in string, _ date.Date, d *Draft) string {
	v, rest, ok := stripFirst(bucketRe, in)
	if !ok {
		return in
	}
	d.Bucket = bucketNames[strings.ToLower(v)]
	return rest
}

// normalizeWhitespace collapses runs of whitespace to a single space and
// trims leading/trailing whitespace.
func normalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
