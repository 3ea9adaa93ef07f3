package dashboard

import (
	"fmt"
	"math"
	"time"
)

var timeNow = time.Now

var shortMonths = [...]string{
	"janv.", "févr.", "mars", "avr.", "mai", "juin",
	"juil.", "août", "sept.", "oct.", "nov.", "déc.",
}

// DaysUntil counts whole days from now to t, rounding up: an event later
// today is 1, one that started an hour ago is 0.
func DaysUntil(t, now time.Time) int {
	return int(math.Ceil(t.Sub(now).Hours() / 24))
}

// FormatDateTime renders t as "15 févr. 2025, 15:00".
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d %s %d, %02d:%02d", t.Day(), shortMonths[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}

func ReminderLabel(days int) string {
	if days == 0 {
		return "Aujourd’hui"
	}
	return fmt.Sprintf("Dans %d jour(s)", days)
}
