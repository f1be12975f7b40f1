package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"MailBurst/internal/email"
	"MailBurst/internal/metrics"
	"MailBurst/internal/models"
)

// CampaignStore is the slice of the storage layer the dispatcher reads
// and writes.
type CampaignStore interface {
	ListScheduledCampaigns(ctx context.Context, userID string) ([]models.Campaign, error)
	GetCampaign(ctx context.Context, id string) (*models.Campaign, error)
	UpdateCampaign(ctx context.Context, id string, upd models.CampaignUpdate) error
}

// RecipientStore resolves a campaign's recipient ids. Ids with no
// matching record are simply absent from the result.
type RecipientStore interface {
	ListRecipientsByIDs(ctx context.Context, userID string, ids []string) ([]models.Recipient, error)
}

// MailSender delivers one rendered message.
type MailSender interface {
	Send(to, subject, htmlBody string) error
}

// StatusError reports a "send now" request against a campaign that is not
// in a sendable state.
type StatusError struct {
	CampaignID string
	Status     models.CampaignStatus
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("campaign %s cannot be dispatched in status %q", e.CampaignID, e.Status)
}

// Config is built once by the host process and injected; the dispatcher
// holds no global state.
type Config struct {
	Campaigns  CampaignStore
	Recipients RecipientStore
	Sender     MailSender
	Limiter    *rate.Limiter
	Logger     *zap.Logger
	Workers    int
}

type Dispatcher struct {
	campaigns  CampaignStore
	recipients RecipientStore
	sender     MailSender
	limiter    *rate.Limiter
	log        *zap.Logger
	workers    int

	// serializes passes so a timer tick and a manual "run now" never
	// interleave within this process
	mu sync.Mutex
}

func New(cfg Config) *Dispatcher {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Dispatcher{
		campaigns:  cfg.Campaigns,
		recipients: cfg.Recipients,
		sender:     cfg.Sender,
		limiter:    cfg.Limiter,
		log:        log,
		workers:    workers,
	}
}

// RunPass performs one full scan-and-send cycle over all due campaigns.
// Partial failures are folded into the result as error strings; the
// returned error is non-nil only when the pass could not begin at all.
func (d *Dispatcher) RunPass(ctx context.Context, now time.Time) (models.DispatchResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	metrics.DispatchPasses.Inc()
	started := time.Now()
	defer func() {
		metrics.PassDuration.Observe(time.Since(started).Seconds())
	}()

	scheduled, err := d.campaigns.ListScheduledCampaigns(ctx, "")
	if err != nil {
		return models.DispatchResult{}, fmt.Errorf("list scheduled campaigns: %w", err)
	}

	due := SelectDue(scheduled, now)

	result := models.DispatchResult{Errors: []string{}}
	if len(due) == 0 {
		return result, nil
	}

	d.log.Info("dispatch pass started",
		zap.Int("scheduled", len(scheduled)),
		zap.Int("due", len(due)),
	)

	// Fan the due campaigns out over a bounded pool. Each campaign's run
	// is self-contained: its recipients all complete before its state
	// update, and its counters never mix with another campaign's.
	var (
		wg    sync.WaitGroup
		resMu sync.Mutex
	)
	sem := make(chan struct{}, d.workers)

	for _, c := range due {
		wg.Add(1)
		sem <- struct{}{}

		go func(c models.Campaign) {
			defer wg.Done()
			defer func() { <-sem }()

			if !OnTime(c, now) {
				metrics.LateCampaigns.Inc()
				d.log.Warn("campaign dispatched late",
					zap.String("campaign_id", c.ID),
					zap.Duration("overdue", now.Sub(c.ScheduleDate)),
				)
			}

			r := d.runCampaign(ctx, c, now)

			resMu.Lock()
			result.Merge(r)
			resMu.Unlock()
		}(c)
	}
	wg.Wait()

	d.log.Info("dispatch pass finished",
		zap.Int("total_sent", result.TotalSent),
		zap.Int("errors", len(result.Errors)),
	)

	return result, nil
}

// RunCampaign dispatches a single campaign immediately, ignoring its
// schedule. Backs the "send now" action, which targets exactly the
// campaign the user picked.
func (d *Dispatcher) RunCampaign(ctx context.Context, id string, now time.Time) (models.DispatchResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	c, err := d.campaigns.GetCampaign(ctx, id)
	if err != nil {
		return models.DispatchResult{}, err
	}
	if c.Status != models.StatusScheduled {
		return models.DispatchResult{}, &StatusError{CampaignID: id, Status: c.Status}
	}

	return d.runCampaign(ctx, *c, now), nil
}

// runCampaign executes one campaign's run: resolve recipients, render and
// send per recipient, then persist the updated campaign state in a single
// write.
func (d *Dispatcher) runCampaign(ctx context.Context, c models.Campaign, now time.Time) models.DispatchResult {
	result := models.DispatchResult{Errors: []string{}}

	recipients, err := d.recipients.ListRecipientsByIDs(ctx, c.UserID, c.RecipientIDs)
	if err != nil {
		// Leave the campaign untouched; it stays due and the next pass
		// retries it.
		d.log.Error("recipient resolution failed",
			zap.String("campaign_id", c.ID),
			zap.Error(err),
		)
		result.Errors = append(result.Errors,
			fmt.Sprintf("campaign %q: resolving recipients: %v", c.Name, err))
		return result
	}

	metrics.CampaignsDispatched.Inc()

	sent := 0
	for _, r := range recipients {

		if d.limiter != nil {
			if err := d.limiter.Wait(ctx); err != nil {
				// Abort without persisting, like a resolution failure:
				// the campaign stays due, so the recipients never
				// attempted are owed to the next pass instead of being
				// skipped for good.
				d.log.Error("campaign run aborted",
					zap.String("campaign_id", c.ID),
					zap.Int("sent", sent),
					zap.Error(err),
				)
				result.TotalSent = sent
				result.Errors = append(result.Errors,
					fmt.Sprintf("campaign %q: rate limiter stopped: %v", c.Name, err))
				return result
			}
		}

		subject := email.Render(c.Subject, r)
		body := email.Render(c.Body, r)

		if err := d.sender.Send(r.Email, subject, body); err != nil {
			// One bad address never blocks the rest of the batch.
			d.log.Error("send failed",
				zap.String("campaign_id", c.ID),
				zap.String("to", r.Email),
				zap.Error(err),
			)
			result.Errors = append(result.Errors,
				fmt.Sprintf("campaign %q: send to %s: %v", c.Name, r.Email, err))
			metrics.EmailFailures.Inc()
			continue
		}

		sent++
		metrics.EmailsSent.Inc()
	}

	result.TotalSent = sent

	upd := models.CampaignUpdate{
		SentCountDelta: sent,
		LastSentDate:   &now,
	}
	if c.Frequency == models.FrequencyOnce {
		status := models.StatusSent
		upd.Status = &status
		upd.ClearNextSend = true
	} else {
		next := NextScheduleDate(c.Frequency, c.ScheduleDate)
		upd.ScheduleDate = next
		upd.NextSendDate = next
	}

	if err := d.campaigns.UpdateCampaign(ctx, c.ID, upd); err != nil {
		// The sends already happened and cannot be undone; the stored
		// counters stay stale until a later write succeeds.
		d.log.Error("campaign update failed",
			zap.String("campaign_id", c.ID),
			zap.Error(err),
		)
		result.Errors = append(result.Errors,
			fmt.Sprintf("campaign %q: persisting run result: %v", c.Name, err))
		return result
	}

	d.log.Info("campaign run complete",
		zap.String("campaign_id", c.ID),
		zap.String("frequency", string(c.Frequency)),
		zap.Int("sent", sent),
		zap.Int("failed", len(result.Errors)),
	)

	return result
}
