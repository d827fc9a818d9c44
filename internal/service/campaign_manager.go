// internal/service/campaign_manager.go
package service

import (
    "fmt"
    "log"

    "github.com/agenciacriadores/crm-backend/internal/model"
    "github.com/agenciacriadores/crm-backend/internal/queue"
    "github.com/agenciacriadores/crm-backend/internal/repository"
)

// CampaignManager orchestrates slot reads and creator mutations. Stateless
// across calls: every request resolves, validates and rebuilds from the
// store. Mutations delegate to the store's atomic procedures — the
// transaction boundary lives there, this layer calls exactly once and
// surfaces exactly one outcome.
type CampaignManager struct {
    Repo      repository.CampaignRepositoryInterface
    Audit     queue.Queue
    Validator *IntegrityValidator
    Repair    *AutoRepair
}

func NewCampaignManager(repo repository.CampaignRepositoryInterface, audit queue.Queue) *CampaignManager {
    return &CampaignManager{
        Repo:      repo,
        Audit:     audit,
        Validator: &IntegrityValidator{Repo: repo},
        Repair:    &AutoRepair{Repo: repo},
    }
}

// SlotsResult is what a slot read returns. IsValid/Errors reflect the
// pre-repair validation outcome so callers can observe that a correction
// occurred; RepairAttempted/Repaired make the self-healing visible.
type SlotsResult struct {
    Slots           []model.Slot    `json:"slots"`
    Campaign        *model.Campaign `json:"campaign"`
    IsValid         bool            `json:"isValid"`
    Errors          []string        `json:"errors"`
    RepairAttempted bool            `json:"repairAttempted"`
    Repaired        bool            `json:"repaired"`
}

// GetSlots resolves the campaign for (business, month), validates the
// declared-vs-real count, repairs on mismatch and rebuilds the slot list.
// Repair failures are logged and swallowed: slot display must not
// hard-fail over a bookkeeping drift, so the read falls back to the
// pre-repair state.
func (m *CampaignManager) GetSlots(businessName, month string) (*SlotsResult, error) {
    campaign, err := m.Repo.GetByBusinessMonth(businessName, month)
    if err != nil {
        return nil, err
    }

    validation, err := m.Validator.Validate(campaign.ID)
    if err != nil {
        return nil, fmt.Errorf("failed to validate campaign %s: %w", campaign.ID, err)
    }

    result := &SlotsResult{
        IsValid: validation.IsValid,
        Errors:  validation.Errors,
    }

    if !validation.IsValid {
        result.RepairAttempted = true
        fix, err := m.Repair.Repair(campaign.ID)
        if err != nil {
            log.Printf("⚠️ auto-repair failed for campaign %s: %v\n", campaign.ID, err)
        } else if fix.Fixed {
            result.Repaired = true
            m.publishAudit(&model.AuditLogEntry{
                CampaignID: campaign.ID,
                Action:     model.AuditActionAutoFix,
                Status:     model.AuditStatusSuccess,
                OldValue:   fmt.Sprintf("%d", fix.OldQuantity),
                NewValue:   fmt.Sprintf("%d", fix.NewQuantity),
                Details:    fmt.Sprintf("quantidade_criadores corrigida para %d criadores reais", fix.RealCreatorCount),
            })
            // Re-read so the builder sees the corrected quantity.
            campaign, err = m.Repo.GetByID(campaign.ID)
            if err != nil {
                return nil, err
            }
        }
    }

    assignments, err := m.Repo.ListAssignments(campaign.ID)
    if err != nil {
        return nil, fmt.Errorf("failed to list assignments for campaign %s: %w", campaign.ID, err)
    }

    result.Campaign = campaign
    result.Slots = BuildSlots(campaign, assignments)
    return result, nil
}

// AddCreator assigns a creator to the campaign. increaseSlots controls
// whether landing beyond the declared quantity grows quantidade_criadores
// or is expected to fill an existing empty slot.
func (m *CampaignManager) AddCreator(campaignID, creatorID, userEmail string, increaseSlots bool) (*model.MutationResult, error) {
    result, err := m.Repo.AddCreator(campaignID, creatorID, userEmail, increaseSlots)
    if err != nil {
        log.Printf("❌ add creator failed: campaign=%s creator=%s: %v\n", campaignID, creatorID, err)
        return nil, err
    }

    m.publishAudit(&model.AuditLogEntry{
        CampaignID: campaignID,
        Action:     model.AuditActionAddCreator,
        Status:     auditStatus(result.Success),
        NewValue:   creatorID,
        UserEmail:  userEmail,
        Details:    result.Message,
    })
    return result, nil
}

// RemoveCreator soft-removes an assignment. deleteLine controls whether
// the declared quantity shrinks with it or the slot stays open for reuse.
func (m *CampaignManager) RemoveCreator(campaignID, creatorID, userEmail string, deleteLine bool) (*model.MutationResult, error) {
    result, err := m.Repo.RemoveCreator(campaignID, creatorID, userEmail, deleteLine)
    if err != nil {
        log.Printf("❌ remove creator failed: campaign=%s creator=%s: %v\n", campaignID, creatorID, err)
        return nil, err
    }

    m.publishAudit(&model.AuditLogEntry{
        CampaignID: campaignID,
        Action:     model.AuditActionRemoveCreator,
        Status:     auditStatus(result.Success),
        OldValue:   creatorID,
        UserEmail:  userEmail,
        Details:    result.Message,
    })
    return result, nil
}

// SwapCreator replaces oldCreatorID with newCreatorID as a single store
// transaction, so the slot is never observably empty in between and the
// declared quantity is unaffected.
func (m *CampaignManager) SwapCreator(campaignID, oldCreatorID, newCreatorID, userEmail string) (*model.MutationResult, error) {
    result, err := m.Repo.SwapCreator(campaignID, oldCreatorID, newCreatorID, userEmail)
    if err != nil {
        log.Printf("❌ swap creator failed: campaign=%s old=%s new=%s: %v\n", campaignID, oldCreatorID, newCreatorID, err)
        return nil, err
    }

    m.publishAudit(&model.AuditLogEntry{
        CampaignID: campaignID,
        Action:     model.AuditActionSwapCreator,
        Status:     auditStatus(result.Success),
        OldValue:   oldCreatorID,
        NewValue:   newCreatorID,
        UserEmail:  userEmail,
        Details:    result.Message,
    })
    return result, nil
}

// FixCampaign is the operator-triggered variant of auto-repair. Unlike the
// read path, failures are surfaced to the caller instead of swallowed.
func (m *CampaignManager) FixCampaign(campaignID string) (*model.RepairResult, error) {
    result, err := m.Repair.Repair(campaignID)
    if err != nil {
        log.Printf("❌ manual fix failed for campaign %s: %v\n", campaignID, err)
        return nil, err
    }

    if result.Fixed {
        m.publishAudit(&model.AuditLogEntry{
            CampaignID: campaignID,
            Action:     model.AuditActionAutoFix,
            Status:     model.AuditStatusSuccess,
            OldValue:   fmt.Sprintf("%d", result.OldQuantity),
            NewValue:   fmt.Sprintf("%d", result.NewQuantity),
            Details:    "correção manual",
        })
    }
    return result, nil
}

// publishAudit mirrors a mutation into the audit sink. Best-effort: a
// publish failure is logged, never propagated.
func (m *CampaignManager) publishAudit(entry *model.AuditLogEntry) {
    if m.Audit == nil {
        return
    }
    if err := m.Audit.Publish(queue.TopicAuditLog, entry); err != nil {
        log.Println("⚠️ failed to publish audit entry:", err)
    }
}

func auditStatus(success bool) string {
    if success {
        return model.AuditStatusSuccess
    }
    return model.AuditStatusFailed
}
