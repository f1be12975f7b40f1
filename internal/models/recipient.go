package models

// Recipient is an external contact targeted by a campaign. This service
// only reads recipients; they are created and edited elsewhere.
type Recipient struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	CompanyName string `json:"company_name"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
}
