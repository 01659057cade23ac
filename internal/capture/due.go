package capture

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/twiced-technology-gmbh/gtd/internal/date"
)

var (
	relativeDueRe = regexp.MustCompile(`^\+(\d+)d$`)
	literalDueRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// resolveDue turns a due: token value into a YYYY-MM-DD string, or ""
// when the expression is not recognized. The value is lower-cased before
// matching.
//
// A literal YYYY-MM-DD is passed through without calendar validation
// (2024-02-30 survives unchanged); callers that need a real date parse it
// themselves.
func resolveDue(value string, today date.Date) string {
	v := strings.ToLower(value)

	switch v {
	case "today":
		return today.String()
	case "tomorrow", "tom":
		return today.AddDays(1).String()
	}

	if m := relativeDueRe.FindStringSubmatch(v); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return "" // digits too large for int; treat as unrecognized
		}
		return today.AddDays(n).String()
	}

	if literalDueRe.MatchString(v) {
		return v
	}

	return ""
}
