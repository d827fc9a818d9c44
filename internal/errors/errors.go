// internal/errors/errors.go
package appErrors

import "fmt"

// ErrCampaignNotFound is a sentinel error for a missing campaign, either
// by (business, month) or by ID.
type ErrCampaignNotFound struct {
    CampaignID   string
    BusinessName string
    Month        string
}

func (e *ErrCampaignNotFound) Error() string {
    if e.CampaignID != "" {
        return fmt.Sprintf("campaign %s not found", e.CampaignID)
    }
    return fmt.Sprintf("no campaign found for business %q in month %s", e.BusinessName, e.Month)
}

func NewCampaignNotFound(businessName, month string) error {
    return &ErrCampaignNotFound{BusinessName: businessName, Month: month}
}

func NewCampaignNotFoundByID(id string) error {
    return &ErrCampaignNotFound{CampaignID: id}
}

// ErrCreatorNotFound is a sentinel error for a missing creator row.
type ErrCreatorNotFound struct {
    CreatorID string
}

func (e *ErrCreatorNotFound) Error() string {
    return fmt.Sprintf("creator %s not found", e.CreatorID)
}

func NewCreatorNotFound(id string) error {
    return &ErrCreatorNotFound{CreatorID: id}
}
