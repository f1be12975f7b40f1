package dispatch

import (
	"time"

	"MailBurst/internal/models"
)

// NextScheduleDate computes the occurrence after the one just used. It
// returns nil for one-shot campaigns, which become terminal instead of
// re-arming.
//
// Monthly additions rely on the calendar's own normalization: Jan 31 plus
// one month resolves the same way time.AddDate resolves Feb 31, landing
// on Mar 3 (Mar 2 in leap years). That overflow is accepted, not
// corrected.
func NextScheduleDate(f models.Frequency, from time.Time) *time.Time {
	var next time.Time

	switch f {
	case models.FrequencyDaily:
		next = from.AddDate(0, 0, 1)
	case models.FrequencyWeekly:
		next = from.AddDate(0, 0, 7)
	case models.FrequencyMonthly:
		next = from.AddDate(0, 1, 0)
	default:
		return nil
	}

	return &next
}
