package dispatch

import (
	"time"

	"MailBurst/internal/models"
)

// onTimeWindow bounds how far past its schedule a campaign can run and
// still count as on time. Late campaigns are still dispatched; the window
// only feeds logging and metrics.
const onTimeWindow = 5 * time.Minute

// Due reports whether a campaign's scheduled time has arrived. The
// comparison is inclusive, and a campaign overdue by any amount is still
// due: a pass that runs late catches up instead of skipping.
func Due(c models.Campaign, now time.Time) bool {
	if c.Status != models.StatusScheduled {
		return false
	}
	return !c.ScheduleDate.After(now)
}

// OnTime reports whether a due campaign is within the on-time window.
func OnTime(c models.Campaign, now time.Time) bool {
	return now.Sub(c.ScheduleDate) <= onTimeWindow
}

// SelectDue filters the scheduled set down to the campaigns whose time
// has arrived. Pure; the input snapshot is never modified.
func SelectDue(campaigns []models.Campaign, now time.Time) []models.Campaign {
	due := make([]models.Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		if Due(c, now) {
			due = append(due, c)
		}
	}
	return due
}
