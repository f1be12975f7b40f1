package email

import (
	"strings"

	"MailBurst/internal/models"
)

// Render substitutes the recipient placeholders in a subject or body
// template. Everything else passes through unchanged, including
// unrecognized {{...}} tokens. Empty recipient fields substitute as empty
// strings; rendering never fails.
func Render(template string, r models.Recipient) string {
	replacer := strings.NewReplacer(
		"{{companyName}}", r.CompanyName,
		"{{contactName}}", r.ContactName,
		"{{email}}", r.Email,
	)
	return replacer.Replace(template)
}
