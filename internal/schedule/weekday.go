package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// ISO weekday names, index 0 = Monday (weekday 1).
var weekdayNames = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// ParseWeekday accepts a weekday as an English name ("tuesday"), a
// three-letter prefix ("tue"), or an ISO number ("2").
func ParseWeekday(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("weekday required")
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 7 {
			return 0, fmt.Errorf("weekday %d out of range 1-7", n)
		}
		return n, nil
	}
	for i, name := range weekdayNames {
		if s == name || (len(s) >= 3 && strings.HasPrefix(name, s)) {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

// WeekdayName returns the capitalized English name for an ISO weekday 1-7.
func WeekdayName(n int) string {
	if n < 1 || n > 7 {
		return strconv.Itoa(n)
	}
	name := weekdayNames[n-1]
	return strings.ToUpper(name[:1]) + name[1:]
}
