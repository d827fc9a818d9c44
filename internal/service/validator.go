// internal/service/validator.go
package service

import (
    "fmt"

    "github.com/agenciacriadores/crm-backend/internal/repository"
)

// ValidationResult reports whether a campaign's declared quantity matches
// the count of non-removed assignment rows.
type ValidationResult struct {
    IsValid  bool     `json:"isValid"`
    Errors   []string `json:"errors"`
    Declared int      `json:"declared"`
    Real     int      `json:"real"`
}

// IntegrityValidator is a read-only diagnostic; it never mutates state.
// The declared count can silently drift (mutations issued directly against
// the store by other paths), so every slot read starts here.
type IntegrityValidator struct {
    Repo repository.CampaignRepositoryInterface
}

func (v *IntegrityValidator) Validate(campaignID string) (*ValidationResult, error) {
    campaign, err := v.Repo.GetByID(campaignID)
    if err != nil {
        return nil, err
    }

    real, err := v.Repo.CountAssignments(campaignID)
    if err != nil {
        return nil, err
    }

    result := &ValidationResult{
        IsValid:  campaign.QuantidadeCriadores == real,
        Errors:   []string{},
        Declared: campaign.QuantidadeCriadores,
        Real:     real,
    }
    if !result.IsValid {
        result.Errors = append(result.Errors, fmt.Sprintf(
            "Inconsistência: esperado %d criadores, encontrado %d",
            campaign.QuantidadeCriadores, real,
        ))
    }
    return result, nil
}
