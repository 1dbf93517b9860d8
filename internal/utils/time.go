package utils

import (
	"strings"
	"time"
)

const layoutDisplayDate = "Jan 2, 2006"

// DisplayDate renders a YYYY-MM-DD or RFC3339 string as "Mar 10, 2024".
// Unparseable input is returned trimmed.
func DisplayDate(s string) string {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(layoutDisplayDate)
		}
	}
	return s
}
