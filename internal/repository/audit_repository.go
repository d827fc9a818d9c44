package repository

import (
    "database/sql"
    "time"

    "github.com/google/uuid"

    "github.com/agenciacriadores/crm-backend/internal/model"
)

// AuditLogRepositoryInterface is the persistence side of the audit sink.
type AuditLogRepositoryInterface interface {
    Insert(e *model.AuditLogEntry) error
    ListByCampaign(campaignID string, limit int) ([]*model.AuditLogEntry, error)
}

type AuditLogRepository struct {
    DB *sql.DB
}

// Insert writes one audit entry and fills in ID/CreatedAt when missing.
func (r *AuditLogRepository) Insert(e *model.AuditLogEntry) error {
    if e.ID == "" {
        e.ID = uuid.NewString()
    }
    if e.CreatedAt.IsZero() {
        e.CreatedAt = time.Now()
    }
    query := `
        INSERT INTO audit_log (id, campaign_id, action, status, old_value, new_value, user_email, details, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `
    _, err := r.DB.Exec(query,
        e.ID, e.CampaignID, e.Action, e.Status,
        e.OldValue, e.NewValue, e.UserEmail, e.Details, e.CreatedAt,
    )
    return err
}

func (r *AuditLogRepository) ListByCampaign(campaignID string, limit int) ([]*model.AuditLogEntry, error) {
    if limit < 1 {
        limit = 50
    }
    query := `
        SELECT id, campaign_id, action, status, old_value, new_value, user_email, details, created_at
        FROM audit_log
        WHERE campaign_id = $1
        ORDER BY created_at DESC
        LIMIT $2
    `
    rows, err := r.DB.Query(query, campaignID, limit)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    entries := []*model.AuditLogEntry{}
    for rows.Next() {
        e := &model.AuditLogEntry{}
        if err := rows.Scan(
            &e.ID, &e.CampaignID, &e.Action, &e.Status,
            &e.OldValue, &e.NewValue, &e.UserEmail, &e.Details, &e.CreatedAt,
        ); err != nil {
            return nil, err
        }
        entries = append(entries, e)
    }
    return entries, rows.Err()
}

var _ AuditLogRepositoryInterface = (*AuditLogRepository)(nil)
