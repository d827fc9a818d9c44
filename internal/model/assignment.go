// internal/model/assignment.go
package model

import "time"

// AssignmentStatus is a closed set; the store never holds anything else.
type AssignmentStatus string

const (
    AssignmentAtivo    AssignmentStatus = "Ativo"
    AssignmentRemovido AssignmentStatus = "Removido"
)

// PlaceholderCreator marks a reserved slot without a real creator.
const PlaceholderCreator = "[SLOT VAZIO]"

// Assignment is one campaign_creators row: a (campaign, creator) link
// carrying per-creator deliverable state. Removal is soft (status flip),
// rows are never hard-deleted.
type Assignment struct {
    ID                   string           `db:"id" json:"id"`
    CampaignID           string           `db:"campaign_id" json:"campaign_id"`
    CreatorID            *string          `db:"creator_id" json:"creator_id"` // nil for placeholder rows
    CreatorName          string           `db:"creator_name" json:"creator_name"`
    SlotIndex            int              `db:"slot_index" json:"slot_index"`
    Status               AssignmentStatus `db:"status" json:"status"`
    BriefingCompleto     string           `db:"briefing_completo" json:"briefing_completo"`
    DataHoraVisita       *time.Time       `db:"data_hora_visita" json:"data_hora_visita,omitempty"`
    QuantidadeConvidados int              `db:"quantidade_convidados" json:"quantidade_convidados"`
    VisitaConfirmado     string           `db:"visita_confirmado" json:"visita_confirmado"`
    VideoAprovado        string           `db:"video_aprovado" json:"video_aprovado"`
    VideoPostado         string           `db:"video_postado" json:"video_postado"`
    DataHoraPostagem     *time.Time       `db:"data_hora_postagem" json:"data_hora_postagem,omitempty"`
    VideoInstagramLink   string           `db:"video_instagram_link" json:"video_instagram_link,omitempty"`
    VideoTiktokLink      string           `db:"video_tiktok_link" json:"video_tiktok_link,omitempty"`
    CreatedAt            time.Time        `db:"created_at" json:"created_at"`
    UpdatedAt            *time.Time       `db:"updated_at" json:"updated_at,omitempty"`
}

// IsPlaceholder reports whether this row only reserves a slot.
func (a *Assignment) IsPlaceholder() bool {
    return a.CreatorID == nil || a.CreatorName == PlaceholderCreator
}
