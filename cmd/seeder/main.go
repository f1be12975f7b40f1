package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"MailBurst/internal/csvparser"
	"MailBurst/internal/db"
	"MailBurst/internal/models"
)

// Seeds a local database: applies the schema, imports recipients from
// seed/recipients.csv, and creates a pair of sample campaigns targeting
// them (one due now, one weekly).
func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, relying on OS environment")
	}

	ctx := context.Background()

	store, err := db.New(ctx, os.Getenv("DATABASE_URL"))
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer store.Close()

	schema, err := os.ReadFile("seed/schema.sql")
	if err != nil {
		logger.Fatal("failed to read schema", zap.Error(err))
	}
	if _, err := store.Pool.Exec(ctx, string(schema)); err != nil {
		logger.Fatal("failed to apply schema", zap.Error(err))
	}

	f, err := os.Open("seed/recipients.csv")
	if err != nil {
		logger.Fatal("failed to open recipients csv", zap.Error(err))
	}
	defer f.Close()

	recipients, err := csvparser.ParseRecipients(f)
	if err != nil {
		logger.Fatal("failed to parse recipients csv", zap.Error(err))
	}

	userID := uuid.NewString()

	recipientIDs := make([]string, 0, len(recipients))
	for i := range recipients {
		recipients[i].ID = uuid.NewString()
		recipients[i].UserID = userID
		if err := store.InsertRecipient(ctx, &recipients[i]); err != nil {
			logger.Fatal("failed to insert recipient",
				zap.String("email", recipients[i].Email),
				zap.Error(err),
			)
		}
		recipientIDs = append(recipientIDs, recipients[i].ID)
	}
	logger.Info("recipients seeded", zap.Int("count", len(recipientIDs)))

	now := time.Now()
	nextWeek := now.AddDate(0, 0, 7)

	campaigns := []models.Campaign{
		{
			ID:           uuid.NewString(),
			UserID:       userID,
			Name:         "Launch announcement",
			Subject:      "Hi {{contactName}}, something new at {{companyName}}",
			Body:         "<p>Hello {{contactName}},</p><p>We have news for {{companyName}}.</p>",
			Frequency:    models.FrequencyOnce,
			ScheduleDate: now,
			RecipientIDs: recipientIDs,
			Status:       models.StatusScheduled,
		},
		{
			ID:           uuid.NewString(),
			UserID:       userID,
			Name:         "Weekly digest",
			Subject:      "Your weekly digest",
			Body:         "<p>Hi {{contactName}}, here is this week's roundup.</p>",
			Frequency:    models.FrequencyWeekly,
			ScheduleDate: now,
			NextSendDate: &nextWeek,
			RecipientIDs: recipientIDs,
			Status:       models.StatusScheduled,
		},
	}

	for _, c := range campaigns {
		if err := store.InsertCampaign(ctx, &c); err != nil {
			logger.Fatal("failed to insert campaign",
				zap.String("name", c.Name),
				zap.Error(err),
			)
		}
		logger.Info("campaign seeded",
			zap.String("name", c.Name),
			zap.String("frequency", string(c.Frequency)),
		)
	}

	logger.Info("database seeding complete")
}
