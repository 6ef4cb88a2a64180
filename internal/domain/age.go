package domain

import (
	"fmt"
	"time"
)

// RelativeAge formats the age of ts relative to now the way history entries are labelled.
func RelativeAge(ts, now time.Time) string {
	seconds := int64(now.Sub(ts) / time.Second)
	switch {
	case seconds < 60:
		return "just now"
	case seconds < 3600:
		return fmt.Sprintf("%dm ago", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%dh ago", seconds/3600)
	case seconds < 604800:
		return fmt.Sprintf("%dd ago", seconds/86400)
	default:
		return ts.Local().Format(DateFormat)
	}
}
