// internal/model/campaign.go
package model

import "time"

type Campaign struct {
    ID                  string     `db:"id" json:"id"`
    BusinessID          string     `db:"business_id" json:"business_id"`
    BusinessName        string     `db:"business_name" json:"business_name"`
    Title               string     `db:"title" json:"title"`
    Month               string     `db:"month" json:"mes"` // "YYYY-MM"
    Status              string     `db:"status" json:"status"`
    QuantidadeCriadores int        `db:"quantidade_criadores" json:"quantidade_criadores"`
    CreatedAt           time.Time  `db:"created_at" json:"created_at"`
    UpdatedAt           *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}
