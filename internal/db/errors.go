package db

import "fmt"

// CampaignNotFoundError reports a lookup or update against an id with no
// stored campaign.
type CampaignNotFoundError struct {
	ID string
}

func (e *CampaignNotFoundError) Error() string {
	return fmt.Sprintf("campaign %s not found", e.ID)
}
