package capture

import (
	"reflect"
	"testing"
	"time"

	"github.com/twiced-technology-gmbh/gtd/internal/date"
)

// refDate is a fixed reference date so relative due expressions are
// deterministic.
var refDate = date.New(2026, time.March, 10)

func TestParseAt_PlainText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		title string
	}{
		{"simple", "buy milk", "buy milk"},
		{"extra whitespace collapsed", "  buy   milk  ", "buy milk"},
		{"empty input", "", ""},
		{"whitespace only", "   \t ", ""},
		{"token-free punctuation kept", "email: follow up w/ Jan?", "email: follow up w/ Jan?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ParseAt(tt.input, refDate)
			if d.Title != tt.title {
				t.Errorf("title = %q, want %q", d.Title, tt.title)
			}
			if d.Priority != "" || d.Context != "" || d.Project != "" || d.Due != "" || d.Bucket != "" || len(d.Tags) != 0 {
				t.Errorf("expected no extracted fields, got %+v", d)
			}
		})
	}
}

func TestParseAt_Priority(t *testing.T) {
	tests := []struct {
		input    string
		priority string
		title    string
	}{
		{"task !H", "high", "task"},
		{"task !M", "medium", "task"},
		{"task !L", "low", "task"},
		{"task !h", "high", "task"},
		{"task pri:H", "high", "task"},
		{"task pri:m", "medium", "task"},
		{"!L task", "low", "task"},
		// First occurrence wins; the second stays literal in the title.
		{"task !H !M", "high", "task !M"},
		{"task pri:H pri:L", "high", "task pri:L"},
		// Not a token: no boundary or not a priority letter.
		{"wow!H stays", "", "wow!H stays"},
		{"task !X", "", "task !X"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d := ParseAt(tt.input, refDate)
			if d.Priority != tt.priority {
				t.Errorf("priority = %q, want %q", d.Priority, tt.priority)
			}
			if d.Title != tt.title {
				t.Errorf("title = %q, want %q", d.Title, tt.title)
			}
		})
	}
}

func TestParseAt_Context(t *testing.T) {
	for _, ctx := range []string{"@home", "@work", "@computer", "@phone", "@errands", "@anywhere"} {
		t.Run(ctx, func(t *testing.T) {
			d := ParseAt("task "+ctx, refDate)
			if d.Context != ctx {
				t.Errorf("context = %q, want %q", d.Context, ctx)
			}
			if d.Title != "task" {
				t.Errorf("title = %q, want %q", d.Title, "task")
			}
		})
	}

	t.Run("uppercase normalized", func(t *testing.T) {
		d := ParseAt("task @HOME", refDate)
		if d.Context != "@home" {
			t.Errorf("context = %q, want %q", d.Context, "@home")
		}
	})

	t.Run("unknown context stays literal", func(t *testing.T) {
		d := ParseAt("email @boss", refDate)
		if d.Context != "" {
			t.Errorf("context = %q, want empty", d.Context)
		}
		if d.Title != "email @boss" {
			t.Errorf("title = %q, want %q", d.Title, "email @boss")
		}
	})

	t.Run("longer word is not a context", func(t *testing.T) {
		d := ParseAt("email @worker", refDate)
		if d.Context != "" {
			t.Errorf("context = %q, want empty", d.Context)
		}
		if d.Title != "email @worker" {
			t.Errorf("title = %q, want %q", d.Title, "email @worker")
		}
	})

	t.Run("first of two wins", func(t *testing.T) {
		d := ParseAt("task @home @work", refDate)
		if d.Context != "@home" {
			t.Errorf("context = %q, want %q", d.Context, "@home")
		}
		if d.Title != "task @work" {
			t.Errorf("title = %q, want %q", d.Title, "task @work")
		}
	})
}

func TestParseAt_Project(t *testing.T) {
	tests := []struct {
		input   string
		project string
		title   string
	}{
		{"task pro:acme", "acme", "task"},
		// Case is preserved for the caller to resolve.
		{"task pro:Acme-Website", "Acme-Website", "task"},
		// Value runs to the next whitespace.
		{"task pro:a/b.c rest", "a/b.c", "task rest"},
		// The project rule runs before tags, so a plus sign inside the
		// value belongs to the project.
		{"task pro:+foo", "+foo", "task"},
		{"task pro:one pro:two", "one", "task pro:two"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d := ParseAt(tt.input, refDate)
			if d.Project != tt.project {
				t.Errorf("project = %q, want %q", d.Project, tt.project)
			}
			if d.Title != tt.title {
				t.Errorf("title = %q, want %q", d.Title, tt.title)
			}
		})
	}
}

func TestParseAt_Due(t *testing.T) {
	tests := []struct {
		input string
		due   string
		title string
	}{
		{"task due:today", "2026-03-10", "task"},
		{"task due:tomorrow", "2026-03-11", "task"},
		{"task due:tom", "2026-03-11", "task"},
		{"task due:TODAY", "2026-03-10", "task"},
		{"task due:+3d", "2026-03-13", "task"},
		{"task due:+0d", "2026-03-10", "task"},
		// Month rollover.
		{"task due:+25d", "2026-04-04", "task"},
		// Literal dates pass through without validation.
		{"task due:2026-12-31", "2026-12-31", "task"},
		{"task due:2026-99-99", "2026-99-99", "task"},
		// Unrecognized values strip the token and leave the field absent.
		{"task due:whenever", "", "task"},
		{"task due:3d", "", "task"},
		// The due rule runs before tags, so "+3d" is not a tag.
		{"task due:+3d +urgent", "2026-03-13", "task"},
		{"task due:today due:tomorrow", "2026-03-10", "task due:tomorrow"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d := ParseAt(tt.input, refDate)
			if d.Due != tt.due {
				t.Errorf("due = %q, want %q", d.Due, tt.due)
			}
			if d.Title != tt.title {
				t.Errorf("title = %q, want %q", d.Title, tt.title)
			}
		})
	}
}

func TestParseAt_Tags(t *testing.T) {
	tests := []struct {
		input string
		tags  []string
		title string
	}{
		{"task +urgent", []string{"urgent"}, "task"},
		// All occurrences, in order.
		{"task +b +a +c", []string{"b", "a", "c"}, "task"},
		{"+first task +last", []string{"first", "last"}, "task"},
		{"task +tag_1", []string{"tag_1"}, "task"},
		// No boundary: plus glued to a word stays literal.
		{"a+b stays", nil, "a+b stays"},
		// Bare plus is not a tag.
		{"task + rest", nil, "task + rest"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d := ParseAt(tt.input, refDate)
			if !reflect.DeepEqual(d.Tags, tt.tags) {
				t.Errorf("tags = %v, want %v", d.Tags, tt.tags)
			}
			if d.Title != tt.title {
				t.Errorf("title = %q, want %q", d.Title, tt.title)
			}
		})
	}
}

func TestParseAt_Bucket(t *testing.T) {
	tests := []struct {
		input  string
		bucket string
		title  string
	}{
		{"task >next", "next", "task"},
		{"task >wait", "waiting", "task"},
		{"task >waiting", "waiting", "task"},
		{"task >someday", "someday", "task"},
		{"task >maybe", "someday", "task"},
		{"task >NEXT", "next", "task"},
		{"task >done", "", "task >done"},
		{"task >next >wait", "next", "task >wait"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d := ParseAt(tt.input, refDate)
			if d.Bucket != tt.bucket {
				t.Errorf("bucket = %q, want %q", d.Bucket, tt.bucket)
			}
			if d.Title != tt.title {
				t.Errorf("title = %q, want %q", d.Title, tt.title)
			}
		})
	}
}

func TestParseAt_Combined(t *testing.T) {
	d := ParseAt("email boss about launch !H @work pro:acme due:tomorrow +urgent +followup >wait", refDate)

	if d.Title != "email boss about launch" {
		t.Errorf("title = %q", d.Title)
	}
	if d.Priority != "high" {
		t.Errorf("priority = %q", d.Priority)
	}
	if d.Context != "@work" {
		t.Errorf("context = %q", d.Context)
	}
	if d.Project != "acme" {
		t.Errorf("project = %q", d.Project)
	}
	if d.Due != "2026-03-11" {
		t.Errorf("due = %q", d.Due)
	}
	if !reflect.DeepEqual(d.Tags, []string{"urgent", "followup"}) {
		t.Errorf("tags = %v", d.Tags)
	}
	if d.Bucket != "waiting" {
		t.Errorf("bucket = %q", d.Bucket)
	}
}

func TestParseAt_TokensOnly(t *testing.T) {
	d := ParseAt("!H @home +now >next", refDate)
	if d.Title != "" {
		t.Errorf("title = %q, want empty", d.Title)
	}
	if d.Priority != "high" || d.Context != "@home" || d.Bucket != "next" {
		t.Errorf("unexpected draft: %+v", d)
	}
}

// Parsing an already-parsed title must not extract anything further.
func TestParseAt_TitleIsStable(t *testing.T) {
	inputs := []string{
		"buy milk !H @home pro:house due:+2d +errand >next",
		"email @worker a+b",
	}
	for _, input := range inputs {
		first := ParseAt(input, refDate)
		second := ParseAt(first.Title, refDate)
		if second.Title != first.Title {
			t.Errorf("reparse of %q changed title: %q -> %q", input, first.Title, second.Title)
		}
		if second.Priority != "" || second.Context != "" || second.Project != "" ||
			second.Due != "" || second.Bucket != "" || len(second.Tags) != 0 {
			t.Errorf("reparse of %q extracted fields: %+v", input, second)
		}
	}
}

func TestParse_UsesToday(t *testing.T) {
	d := Parse("task due:today")
	if d.Due != date.Today().String() {
		t.Errorf("due = %q, want %q", d.Due, date.Today().String())
	}
}
