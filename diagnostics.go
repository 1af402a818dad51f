package corefoundation

import (
	"time"

	"github.com/joeycumines/go-catrate"
)

// warnLimiter suppresses repeated, identical warning categories (affinity
// pinning refused, for any worker and any reason; repeated residual-task
// drains on pool shutdown) to at most one per five seconds per category, so a
// restricted environment or a test loop that shuts pools down repeatedly
// doesn't spam a caller's log sink.
var warnLimiter = catrate.NewLimiter(map[time.Duration]int{
	5 * time.Second: 1,
})

// warnRateLimited logs msg at [LevelWarn] through logger (falling back to
// the package-level logger when nil), at most once per five seconds per
// category.
func warnRateLimited(logger Logger, category string, msg string, fields map[string]any) {
	if _, allowed := warnLimiter.Allow(category); !allowed {
		return
	}
	logWith(logger, LevelWarn, msg, fields)
}
