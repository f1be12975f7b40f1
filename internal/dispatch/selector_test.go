package dispatch

import (
	"testing"
	"time"

	"MailBurst/internal/models"
)

func TestDueBoundaryIsInclusive(t *testing.T) {
	now := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)

	c := models.Campaign{Status: models.StatusScheduled, ScheduleDate: now}
	if !Due(c, now) {
		t.Error("campaign scheduled exactly at now should be due")
	}

	c.ScheduleDate = now.Add(time.Second)
	if Due(c, now) {
		t.Error("campaign scheduled in the future should not be due")
	}
}

func TestOverdueCampaignsAreStillDue(t *testing.T) {
	now := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)

	// way past the on-time window, must still dispatch
	c := models.Campaign{
		Status:       models.StatusScheduled,
		ScheduleDate: now.Add(-48 * time.Hour),
	}

	if !Due(c, now) {
		t.Error("overdue campaign must still be due, never skipped")
	}
	if OnTime(c, now) {
		t.Error("campaign overdue by 48h should not count as on time")
	}
}

func TestOnTimeWindow(t *testing.T) {
	now := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)

	c := models.Campaign{
		Status:       models.StatusScheduled,
		ScheduleDate: now.Add(-4 * time.Minute),
	}
	if !OnTime(c, now) {
		t.Error("campaign due 4 minutes ago should be on time")
	}

	c.ScheduleDate = now.Add(-6 * time.Minute)
	if OnTime(c, now) {
		t.Error("campaign due 6 minutes ago should be late")
	}
}

func TestSelectDueSkipsNonScheduledStatuses(t *testing.T) {
	now := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)

	campaigns := []models.Campaign{
		{ID: "a", Status: models.StatusScheduled, ScheduleDate: past},
		{ID: "b", Status: models.StatusPaused, ScheduleDate: past},
		{ID: "c", Status: models.StatusSent, ScheduleDate: past},
		{ID: "d", Status: models.StatusScheduled, ScheduleDate: now.Add(time.Hour)},
	}

	due := SelectDue(campaigns, now)

	if len(due) != 1 || due[0].ID != "a" {
		t.Fatalf("expected only campaign a to be due, got %+v", due)
	}
}
