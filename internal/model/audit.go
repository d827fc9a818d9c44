// internal/model/audit.go
package model

import "time"

// Audit actions emitted by the slot engine.
const (
    AuditActionAddCreator    = "add_creator"
    AuditActionRemoveCreator = "remove_creator"
    AuditActionSwapCreator   = "swap_creator"
    AuditActionAutoFix       = "auto_fix"
    AuditActionLegacySwap    = "legacy_swap_creator"
)

// Audit entry statuses.
const (
    AuditStatusSuccess = "success"
    AuditStatusFailed  = "failed"
)

// AuditLogEntry mirrors one slot mutation into the audit sink. Entries are
// written best-effort; a lost entry never rolls back the mutation it records.
type AuditLogEntry struct {
    ID         string    `db:"id" json:"id"`
    CampaignID string    `db:"campaign_id" json:"campaign_id"`
    Action     string    `db:"action" json:"action"`
    Status     string    `db:"status" json:"status"`
    OldValue   string    `db:"old_value" json:"old_value,omitempty"`
    NewValue   string    `db:"new_value" json:"new_value,omitempty"`
    UserEmail  string    `db:"user_email" json:"user_email"`
    Details    string    `db:"details" json:"details,omitempty"`
    CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
