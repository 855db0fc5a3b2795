package review

import (
	"fmt"
	"time"
)

// Label renders a human-readable countdown or overdue string for a status
// and due date, e.g. "OVERDUE 3d", "NOW", "TODAY 14:05", "IN 2d". It is
// display-only and derived purely from the status and the date delta.
func Label(s Status, due, now time.Time) string {
	switch s {
	case Overdue:
		if due.IsZero() {
			return "OVERDUE"
		}
		return "OVERDUE " + spanLabel(now.Sub(due))
	case DueNow:
		return "NOW"
	case Today:
		return "TODAY " + due.Format("15:04")
	default:
		return "IN " + spanLabel(due.Sub(now))
	}
}

func spanLabel(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	if days := int(d.Hours() / 24); days >= 1 {
		return fmt.Sprintf("%dd", days)
	}
	if hours := int(d.Hours()); hours >= 1 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dm", int(d.Minutes()))
}
