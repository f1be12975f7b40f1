package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"MailBurst/internal/models"
)

type Store struct {
	Pool *pgxpool.Pool
}

// New connects with exponential backoff so the service survives the
// database coming up after it does.
func New(ctx context.Context, conn string) (*Store, error) {
	var pool *pgxpool.Pool

	operation := func() error {
		p, err := pgxpool.New(ctx, conn)
		if err != nil {
			return err
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return err
		}
		pool = p
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, err
	}

	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

const campaignColumns = `id, user_id, name, subject, body, frequency, schedule_date,
       next_send_date, recipient_ids, status, sent_count, last_sent_date,
       created_at, updated_at`

func scanCampaign(row pgx.Row) (models.Campaign, error) {
	var c models.Campaign
	err := row.Scan(
		&c.ID, &c.UserID, &c.Name, &c.Subject, &c.Body, &c.Frequency,
		&c.ScheduleDate, &c.NextSendDate, &c.RecipientIDs, &c.Status,
		&c.SentCount, &c.LastSentDate, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

// ListScheduledCampaigns returns every campaign in scheduled status,
// optionally scoped to one user. An empty userID means all users.
func (s *Store) ListScheduledCampaigns(ctx context.Context, userID string) ([]models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE status=$1`
	args := []any{models.StatusScheduled}
	if userID != "" {
		query += ` AND user_id=$2`
		args = append(args, userID)
	}

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := []models.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

func (s *Store) GetCampaign(ctx context.Context, id string) (*models.Campaign, error) {
	row := s.Pool.QueryRow(ctx,
		`SELECT `+campaignColumns+` FROM campaigns WHERE id=$1`, id)

	c, err := scanCampaign(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &CampaignNotFoundError{ID: id}
		}
		return nil, err
	}
	return &c, nil
}

// UpdateCampaign applies a partial update. sent_count is incremented by
// the delta rather than overwritten, so one campaign's write can never
// clobber counters accumulated elsewhere.
func (s *Store) UpdateCampaign(ctx context.Context, id string, upd models.CampaignUpdate) error {
	set := []string{"updated_at=NOW()"}
	args := []any{}
	argPos := 1

	if upd.SentCountDelta != 0 {
		set = append(set, fmt.Sprintf("sent_count=sent_count+$%d", argPos))
		args = append(args, upd.SentCountDelta)
		argPos++
	}
	if upd.Status != nil {
		set = append(set, fmt.Sprintf("status=$%d", argPos))
		args = append(args, *upd.Status)
		argPos++
	}
	if upd.ScheduleDate != nil {
		set = append(set, fmt.Sprintf("schedule_date=$%d", argPos))
		args = append(args, *upd.ScheduleDate)
		argPos++
	}
	if upd.NextSendDate != nil {
		set = append(set, fmt.Sprintf("next_send_date=$%d", argPos))
		args = append(args, *upd.NextSendDate)
		argPos++
	} else if upd.ClearNextSend {
		set = append(set, "next_send_date=NULL")
	}
	if upd.LastSentDate != nil {
		set = append(set, fmt.Sprintf("last_sent_date=$%d", argPos))
		args = append(args, *upd.LastSentDate)
		argPos++
	}

	query := fmt.Sprintf("UPDATE campaigns SET %s WHERE id=$%d",
		strings.Join(set, ", "), argPos)
	args = append(args, id)

	tag, err := s.Pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return &CampaignNotFoundError{ID: id}
	}
	return nil
}

// ListRecipientsByIDs resolves recipient ids scoped to their owner. Ids
// with no matching record are dropped; the input id order is preserved in
// the result.
func (s *Store) ListRecipientsByIDs(ctx context.Context, userID string, ids []string) ([]models.Recipient, error) {
	if len(ids) == 0 {
		return []models.Recipient{}, nil
	}

	rows, err := s.Pool.Query(ctx,
		`SELECT id, user_id, company_name, contact_name, email
		 FROM recipients
		 WHERE user_id=$1 AND id = ANY($2)`,
		userID, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[string]models.Recipient, len(ids))
	for rows.Next() {
		var r models.Recipient
		if err := rows.Scan(&r.ID, &r.UserID, &r.CompanyName, &r.ContactName, &r.Email); err != nil {
			return nil, err
		}
		byID[r.ID] = r
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	recipients := make([]models.Recipient, 0, len(byID))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			recipients = append(recipients, r)
		}
	}
	return recipients, nil
}

func (s *Store) InsertCampaign(ctx context.Context, c *models.Campaign) error {
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO campaigns
		 (id, user_id, name, subject, body, frequency, schedule_date, next_send_date,
		  recipient_ids, status, sent_count, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,0,NOW(),NOW())`,
		c.ID, c.UserID, c.Name, c.Subject, c.Body, c.Frequency,
		c.ScheduleDate, c.NextSendDate, c.RecipientIDs, c.Status,
	)
	return err
}

func (s *Store) InsertRecipient(ctx context.Context, r *models.Recipient) error {
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO recipients (id, user_id, company_name, contact_name, email)
		 VALUES ($1,$2,$3,$4,$5)`,
		r.ID, r.UserID, r.CompanyName, r.ContactName, r.Email,
	)
	return err
}
