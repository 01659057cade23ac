package review

import (
	"testing"
	"time"

	"github.com/twiced-technology-gmbh/gtd/internal/config"
	"github.com/twiced-technology-gmbh/gtd/internal/date"
	"github.com/twiced-technology-gmbh/gtd/internal/task"
)

// now is the fixed clock for all review tests.
var now = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func testTasks() []*task.Task {
	overdueDate := date.New(2026, time.March, 1)
	futureDate := date.New(2026, time.April, 1)
	fresh := now.Add(-time.Hour)
	old := now.Add(-14 * 24 * time.Hour)

	return []*task.Task{
		{ID: 1, Title: "sort receipts", Bucket: "inbox", Priority: "low", Updated: old},
		{ID: 2, Title: "call bank", Bucket: "next", Priority: "high", Context: "@phone",
			Project: "Taxes", Tags: []string{"money"}, Due: &overdueDate, Updated: fresh},
		{ID: 3, Title: "renew passport", Bucket: "next", Priority: "medium", Context: "@errands",
			Due: &futureDate, Updated: fresh},
		{ID: 4, Title: "learn piano", Bucket: "someday", Priority: "low", Updated: old},
		{ID: 5, Title: "file taxes", Bucket: "done", Priority: "high", Project: "Taxes", Updated: old},
	}
}

func TestFilter(t *testing.T) {
	tasks := testTasks()

	tests := []struct {
		name    string
		opts    FilterOptions
		wantIDs []int
	}{
		{"no filter", FilterOptions{}, []int{1, 2, 3, 4, 5}},
		{"by bucket", FilterOptions{Buckets: []string{"next"}}, []int{2, 3}},
		{"exclude bucket", FilterOptions{ExcludeBuckets: []string{"done", "someday"}}, []int{1, 2, 3}},
		{"by priority", FilterOptions{Priorities: []string{"high"}}, []int{2, 5}},
		{"by context", FilterOptions{Context: "@phone"}, []int{2}},
		{"by project", FilterOptions{Project: "Taxes"}, []int{2, 5}},
		{"by tag", FilterOptions{Tag: "money"}, []int{2}},
		{"search title", FilterOptions{Search: "PASSPORT"}, []int{3}},
		{"search tag", FilterOptions{Search: "mone"}, []int{2}},
		{"overdue only", FilterOptions{Overdue: true, Now: now}, []int{2}},
		{"combined", FilterOptions{Buckets: []string{"next"}, Priorities: []string{"high"}}, []int{2}},
		{"no match", FilterOptions{Context: "@computer"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(tasks, tt.opts)
			gotIDs := ids(got)
			if !equalInts(gotIDs, tt.wantIDs) {
				t.Errorf("ids = %v, want %v", gotIDs, tt.wantIDs)
			}
		})
	}
}

func TestSort(t *testing.T) {
	cfg := config.NewDefault("test")

	t.Run("priority uses config order", func(t *testing.T) {
		tasks := testTasks()
		Sort(tasks, "priority", true, cfg) // reverse: high first
		if tasks[0].Priority != "high" || tasks[len(tasks)-1].Priority != "low" {
			t.Errorf("order = %v", priorities(tasks))
		}
	})

	t.Run("bucket uses config order", func(t *testing.T) {
		tasks := testTasks()
		Sort(tasks, "bucket", false, cfg)
		if tasks[0].Bucket != "inbox" || tasks[len(tasks)-1].Bucket != "done" {
			t.Errorf("order = %v", buckets(tasks))
		}
	})

	t.Run("nil due sorts last", func(t *testing.T) {
		tasks := testTasks()
		Sort(tasks, "due", false, cfg)
		if tasks[0].ID != 2 || tasks[1].ID != 3 {
			t.Errorf("order = %v", ids(tasks))
		}
		if tasks[len(tasks)-1].Due != nil {
			t.Error("task with due date sorted after nil due")
		}
	})
}

func TestSummary(t *testing.T) {
	cfg := config.NewDefault("personal")
	s := Summary(cfg, testTasks(), now)

	if s.SpaceName != "personal" {
		t.Errorf("space name = %q", s.SpaceName)
	}
	if s.TotalTasks != 5 {
		t.Errorf("total = %d", s.TotalTasks)
	}
	if s.InboxCount != 1 {
		t.Errorf("inbox = %d", s.InboxCount)
	}

	byBucket := make(map[string]BucketSummary)
	for _, bs := range s.Buckets {
		byBucket[bs.Bucket] = bs
	}

	// Archived is excluded from the dashboard.
	if _, ok := byBucket["archived"]; ok {
		t.Error("archived bucket present in summary")
	}

	next := byBucket["next"]
	if next.Count != 2 || next.Overdue != 1 {
		t.Errorf("next = %+v", next)
	}

	// inbox task is 14 days old, past the default 168h staleness window.
	if byBucket["inbox"].Stale != 1 {
		t.Errorf("inbox stale = %d", byBucket["inbox"].Stale)
	}

	// done is terminal: old age must not count as stale or overdue.
	done := byBucket["done"]
	if done.Count != 1 || done.Stale != 0 || done.Overdue != 0 {
		t.Errorf("done = %+v", done)
	}
}

func TestStale(t *testing.T) {
	cfg := config.NewDefault("test")
	stale := Stale(cfg, testTasks(), now)

	// Tasks 1 and 4 are old and non-terminal; task 5 is old but done.
	if !equalInts(ids(stale), []int{1, 4}) {
		t.Errorf("stale ids = %v", ids(stale))
	}
}

func TestGroupBy(t *testing.T) {
	cfg := config.NewDefault("test")

	t.Run("by project", func(t *testing.T) {
		gs := GroupBy(testTasks(), "project", cfg)
		if len(gs.Groups) != 2 {
			t.Fatalf("groups = %d", len(gs.Groups))
		}
		// Alphabetical: "(no project)" before "Taxes".
		if gs.Groups[0].Key != "(no project)" || gs.Groups[0].Total != 3 {
			t.Errorf("group 0 = %+v", gs.Groups[0])
		}
		if gs.Groups[1].Key != "Taxes" || gs.Groups[1].Total != 2 {
			t.Errorf("group 1 = %+v", gs.Groups[1])
		}
	})

	t.Run("by bucket uses config order", func(t *testing.T) {
		gs := GroupBy(testTasks(), "bucket", cfg)
		var keys []string
		for _, g := range gs.Groups {
			keys = append(keys, g.Key)
		}
		want := []string{"inbox", "next", "someday", "done"}
		if len(keys) != len(want) {
			t.Fatalf("keys = %v", keys)
		}
		for i := range want {
			if keys[i] != want[i] {
				t.Errorf("keys = %v, want %v", keys, want)
				break
			}
		}
	})

	t.Run("by tag includes untagged", func(t *testing.T) {
		gs := GroupBy(testTasks(), "tag", cfg)
		found := false
		for _, g := range gs.Groups {
			if g.Key == "(untagged)" && g.Total == 4 {
				found = true
			}
		}
		if !found {
			t.Errorf("groups = %+v", gs.Groups)
		}
	})
}

func TestParseIDs(t *testing.T) {
	tests := []struct {
		input   string
		want    []int
		wantErr bool
	}{
		{"1", []int{1}, false},
		{"1,2,3", []int{1, 2, 3}, false},
		{"3, 1 ,2", []int{3, 1, 2}, false},
		{"1,1,2", []int{1, 2}, false},
		{"1,,2", []int{1, 2}, false},
		{"abc", nil, true},
		{"1,x", nil, true},
		{"", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseIDs(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseIDs: %v", err)
			}
			if !equalInts(got, tt.want) {
				t.Errorf("ids = %v, want %v", got, tt.want)
			}
		})
	}
}

func ids(tasks []*task.Task) []int {
	var out []int
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func priorities(tasks []*task.Task) []string {
	var out []string
	for _, t := range tasks {
		out = append(out, t.Priority)
	}
	return out
}

func buckets(tasks []*task.Task) []string {
	var out []string
	for _, t := range tasks {
		out = append(out, t.Bucket)
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
