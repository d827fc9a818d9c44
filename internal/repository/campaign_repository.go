package repository

import (
    "database/sql"
    "fmt"

    appErrors "github.com/agenciacriadores/crm-backend/internal/errors"
    "github.com/agenciacriadores/crm-backend/internal/model"
)

// CampaignRepositoryInterface is the assignment-store capability set the
// slot engine is written against. The Postgres implementation below and the
// in-memory fakes in the service tests both satisfy it.
type CampaignRepositoryInterface interface {
    // Campaign reads
    GetByID(id string) (*model.Campaign, error)
    GetByBusinessMonth(businessName, month string) (*model.Campaign, error)

    // Assignment reads
    ListAssignments(campaignID string) ([]*model.Assignment, error)
    CountAssignments(campaignID string) (int, error)

    // Atomic mutations. Each call maps to one stored procedure that owns
    // its own transaction boundary (mutation + quantity bookkeeping).
    AddCreator(campaignID, creatorID, userEmail string, increaseSlots bool) (*model.MutationResult, error)
    RemoveCreator(campaignID, creatorID, userEmail string, deleteLine bool) (*model.MutationResult, error)
    SwapCreator(campaignID, oldCreatorID, newCreatorID, userEmail string) (*model.MutationResult, error)
    FixQuantity(campaignID string) (*model.RepairResult, error)

    // Deliverable progress counts
    GetCampaignStats(campaignID string) (map[string]int, error)
}

type CampaignRepository struct {
    DB *sql.DB
}

// ====================== Campaign reads ======================

func (r *CampaignRepository) GetByID(id string) (*model.Campaign, error) {
    query := `
        SELECT c.id, c.business_id, b.name, c.title, c.month, c.status, c.quantidade_criadores, c.created_at, c.updated_at
        FROM campaigns c
        JOIN businesses b ON b.id = c.business_id
        WHERE c.id = $1
    `
    var c model.Campaign
    err := r.DB.QueryRow(query, id).Scan(
        &c.ID, &c.BusinessID, &c.BusinessName, &c.Title, &c.Month,
        &c.Status, &c.QuantidadeCriadores, &c.CreatedAt, &c.UpdatedAt,
    )
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, appErrors.NewCampaignNotFoundByID(id)
        }
        return nil, err
    }
    return &c, nil
}

func (r *CampaignRepository) GetByBusinessMonth(businessName, month string) (*model.Campaign, error) {
    query := `
        SELECT c.id, c.business_id, b.name, c.title, c.month, c.status, c.quantidade_criadores, c.created_at, c.updated_at
        FROM campaigns c
        JOIN businesses b ON b.id = c.business_id
        WHERE LOWER(b.name) = LOWER($1) AND c.month = $2
    `
    var c model.Campaign
    err := r.DB.QueryRow(query, businessName, month).Scan(
        &c.ID, &c.BusinessID, &c.BusinessName, &c.Title, &c.Month,
        &c.Status, &c.QuantidadeCriadores, &c.CreatedAt, &c.UpdatedAt,
    )
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, appErrors.NewCampaignNotFound(businessName, month)
        }
        return nil, err
    }
    return &c, nil
}

// ====================== Assignment reads ======================

// ListAssignments returns the non-removed rows for a campaign ordered by
// slot_index (written at creation time), then created_at as a tiebreaker.
func (r *CampaignRepository) ListAssignments(campaignID string) ([]*model.Assignment, error) {
    query := `
        SELECT cc.id, cc.campaign_id, cc.creator_id, COALESCE(cr.name, $2),
               cc.slot_index, cc.status, cc.briefing_completo, cc.data_hora_visita,
               cc.quantidade_convidados, cc.visita_confirmado, cc.video_aprovado,
               cc.video_postado, cc.data_hora_postagem, cc.video_instagram_link,
               cc.video_tiktok_link, cc.created_at, cc.updated_at
        FROM campaign_creators cc
        LEFT JOIN creators cr ON cr.id = cc.creator_id
        WHERE cc.campaign_id = $1 AND cc.status <> 'Removido'
        ORDER BY cc.slot_index, cc.created_at
    `
    rows, err := r.DB.Query(query, campaignID, model.PlaceholderCreator)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    assignments := []*model.Assignment{}
    for rows.Next() {
        a := &model.Assignment{}
        if err := rows.Scan(
            &a.ID, &a.CampaignID, &a.CreatorID, &a.CreatorName,
            &a.SlotIndex, &a.Status, &a.BriefingCompleto, &a.DataHoraVisita,
            &a.QuantidadeConvidados, &a.VisitaConfirmado, &a.VideoAprovado,
            &a.VideoPostado, &a.DataHoraPostagem, &a.VideoInstagramLink,
            &a.VideoTiktokLink, &a.CreatedAt, &a.UpdatedAt,
        ); err != nil {
            return nil, err
        }
        assignments = append(assignments, a)
    }
    return assignments, rows.Err()
}

func (r *CampaignRepository) CountAssignments(campaignID string) (int, error) {
    var count int
    err := r.DB.QueryRow(`
        SELECT COUNT(*)
        FROM campaign_creators
        WHERE campaign_id = $1 AND status <> 'Removido'`, campaignID).Scan(&count)
    if err != nil {
        return 0, err
    }
    return count, nil
}

// ====================== Atomic mutations ======================

// Each procedure runs mutation + quantidade_criadores bookkeeping in a
// single transaction; see seed/procedures.sql.

func (r *CampaignRepository) AddCreator(campaignID, creatorID, userEmail string, increaseSlots bool) (*model.MutationResult, error) {
    query := `SELECT success, new_quantidade, message FROM add_criador_campanha($1, $2, $3, $4)`
    var res model.MutationResult
    err := r.DB.QueryRow(query, campaignID, creatorID, userEmail, increaseSlots).Scan(
        &res.Success, &res.NewQuantidade, &res.Message,
    )
    if err != nil {
        return nil, fmt.Errorf("add_criador_campanha failed: %w", err)
    }
    return &res, nil
}

func (r *CampaignRepository) RemoveCreator(campaignID, creatorID, userEmail string, deleteLine bool) (*model.MutationResult, error) {
    query := `SELECT success, new_quantidade, message FROM remove_criador_campanha($1, $2, $3, $4)`
    var res model.MutationResult
    err := r.DB.QueryRow(query, campaignID, creatorID, userEmail, deleteLine).Scan(
        &res.Success, &res.NewQuantidade, &res.Message,
    )
    if err != nil {
        return nil, fmt.Errorf("remove_criador_campanha failed: %w", err)
    }
    return &res, nil
}

func (r *CampaignRepository) SwapCreator(campaignID, oldCreatorID, newCreatorID, userEmail string) (*model.MutationResult, error) {
    query := `SELECT success, new_quantidade, message FROM trocar_criador_campanha($1, $2, $3, $4)`
    var res model.MutationResult
    err := r.DB.QueryRow(query, campaignID, oldCreatorID, newCreatorID, userEmail).Scan(
        &res.Success, &res.NewQuantidade, &res.Message,
    )
    if err != nil {
        return nil, fmt.Errorf("trocar_criador_campanha failed: %w", err)
    }
    return &res, nil
}

func (r *CampaignRepository) FixQuantity(campaignID string) (*model.RepairResult, error) {
    query := `SELECT fixed, old_quantidade, new_quantidade, real_criadores FROM fix_quantidade_criadores($1)`
    var res model.RepairResult
    err := r.DB.QueryRow(query, campaignID).Scan(
        &res.Fixed, &res.OldQuantity, &res.NewQuantity, &res.RealCreatorCount,
    )
    if err != nil {
        return nil, fmt.Errorf("fix_quantidade_criadores failed: %w", err)
    }
    return &res, nil
}

// ====================== Stats ======================

func (r *CampaignRepository) GetCampaignStats(campaignID string) (map[string]int, error) {
    query := `
        SELECT
            COUNT(*),
            COUNT(*) FILTER (WHERE briefing_completo = 'Sim'),
            COUNT(*) FILTER (WHERE visita_confirmado = 'Sim'),
            COUNT(*) FILTER (WHERE video_aprovado = 'Sim'),
            COUNT(*) FILTER (WHERE video_postado = 'Sim')
        FROM campaign_creators
        WHERE campaign_id = $1 AND status <> 'Removido' AND creator_id IS NOT NULL
    `
    stats := map[string]int{}
    var total, briefing, visitas, aprovados, postados int
    if err := r.DB.QueryRow(query, campaignID).Scan(&total, &briefing, &visitas, &aprovados, &postados); err != nil {
        return nil, err
    }
    stats["total"] = total
    stats["briefings_completos"] = briefing
    stats["visitas_confirmadas"] = visitas
    stats["videos_aprovados"] = aprovados
    stats["videos_postados"] = postados
    return stats, nil
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
