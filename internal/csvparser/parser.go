package csvparser

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"MailBurst/internal/models"
)

// ParseRecipients reads recipient rows from a CSV with a header row. An
// Email column is required (case-insensitive); company and contact name
// columns are optional and default to empty. Malformed rows and rows
// without an email are skipped.
func ParseRecipients(r io.Reader) ([]models.Recipient, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, err
	}

	emailIdx, companyIdx, contactIdx := -1, -1, -1
	for i, h := range headers {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "email":
			emailIdx = i
		case "company_name", "company":
			companyIdx = i
		case "contact_name", "contact":
			contactIdx = i
		}
	}
	if emailIdx == -1 {
		return nil, errors.New("csv must contain an Email column")
	}

	recipients := []models.Recipient{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) != len(headers) {
			continue // skip malformed row
		}

		email := strings.TrimSpace(record[emailIdx])
		if email == "" {
			continue
		}

		rec := models.Recipient{Email: email}
		if companyIdx >= 0 {
			rec.CompanyName = strings.TrimSpace(record[companyIdx])
		}
		if contactIdx >= 0 {
			rec.ContactName = strings.TrimSpace(record[contactIdx])
		}

		recipients = append(recipients, rec)
	}

	if len(recipients) == 0 {
		return nil, errors.New("csv must contain at least one recipient row")
	}

	return recipients, nil
}
