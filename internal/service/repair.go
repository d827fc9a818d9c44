// internal/service/repair.go
package service

import (
    "log"

    "github.com/agenciacriadores/crm-backend/internal/model"
    "github.com/agenciacriadores/crm-backend/internal/repository"
)

// AutoRepair reconciles a campaign's declared quantity to its real
// assignment count through the store's atomic repair procedure. Policy:
// the real count wins — the declared quantity is corrected, never the
// assignment rows.
type AutoRepair struct {
    Repo repository.CampaignRepositoryInterface
}

func (r *AutoRepair) Repair(campaignID string) (*model.RepairResult, error) {
    result, err := r.Repo.FixQuantity(campaignID)
    if err != nil {
        return nil, err
    }
    if result.Fixed {
        log.Printf("🔧 campaign %s repaired: quantidade %d -> %d (real: %d)\n",
            campaignID, result.OldQuantity, result.NewQuantity, result.RealCreatorCount)
    }
    return result, nil
}
