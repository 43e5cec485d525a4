package booking

import (
	"strings"
	"time"

	"github.com/example/gymsched/internal/brp"
)

// Match selects the class matching name (trimmed, case-insensitive
// equality) and, when timeOfDay is non-empty, starting at exactly that
// HH:MM in loc. When timeOfDay is empty and several classes share the
// name, the first one in listing order wins; callers wanting a specific
// session must supply the time.
func Match(listing []brp.GroupActivity, name, timeOfDay string, loc *time.Location) (brp.GroupActivity, bool) {
	name = strings.TrimSpace(name)
	for _, a := range listing {
		if !strings.EqualFold(strings.TrimSpace(a.Name), name) {
			continue
		}
		if timeOfDay != "" && a.Duration.Start.In(loc).Format("15:04") != timeOfDay {
			continue
		}
		return a, true
	}
	return brp.GroupActivity{}, false
}
