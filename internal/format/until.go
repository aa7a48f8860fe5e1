package format

import (
	"time"

	"github.com/dustin/go-humanize"
)

// Until describes how far target is from now ("3 days from now", "2 hours ago").
// A target within the same minute reads "now".
func Until(target, now time.Time) string {
	d := target.Sub(now)
	if d > -time.Minute && d < time.Minute {
		return "now"
	}
	return humanize.RelTime(target, now, "ago", "from now")
}
