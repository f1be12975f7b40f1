package models

import "time"

type Frequency string

const (
	FrequencyOnce    Frequency = "once"
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyOnce, FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

type CampaignStatus string

const (
	StatusScheduled CampaignStatus = "scheduled"
	StatusSent      CampaignStatus = "sent"
	StatusPaused    CampaignStatus = "paused"
)

// Campaign is one scheduled (possibly recurring) newsletter run. A
// scheduled campaign always carries a ScheduleDate; NextSendDate is nil
// for one-shot campaigns. SentCount accumulates successful sends across
// all runs.
type Campaign struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user_id"`
	Name         string         `json:"name"`
	Subject      string         `json:"subject"`
	Body         string         `json:"body"`
	Frequency    Frequency      `json:"frequency"`
	ScheduleDate time.Time      `json:"schedule_date"`
	NextSendDate *time.Time     `json:"next_send_date,omitempty"`
	RecipientIDs []string       `json:"recipient_ids"`
	Status       CampaignStatus `json:"status"`
	SentCount    int            `json:"sent_count"`
	LastSentDate *time.Time     `json:"last_sent_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CampaignUpdate carries the fields the dispatcher writes back after a
// run. Nil pointer fields are left untouched; SentCountDelta is added to
// the stored counter rather than overwriting it.
type CampaignUpdate struct {
	Status       *CampaignStatus
	ScheduleDate *time.Time
	NextSendDate *time.Time
	// ClearNextSend nulls NextSendDate; a nil NextSendDate alone means
	// "leave untouched".
	ClearNextSend  bool
	LastSentDate   *time.Time
	SentCountDelta int
}
