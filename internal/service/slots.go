// internal/service/slots.go
package service

import (
    "github.com/agenciacriadores/crm-backend/internal/model"
)

// BuildSlots projects a campaign's declared quota plus its current
// assignments into an ordered slot list. Pure: no side effects, always
// safe to call and discard.
//
// Exactly quantidade_criadores slots come back. Position i is filled from
// assignments[i] when that row carries a real creator; placeholder rows
// ("[SLOT VAZIO]") reserve the position but render as empty.
func BuildSlots(campaign *model.Campaign, assignments []*model.Assignment) []model.Slot {
    quantity := campaign.QuantidadeCriadores
    if quantity < 0 {
        quantity = 0
    }

    slots := make([]model.Slot, 0, quantity)
    for i := 0; i < quantity; i++ {
        if i < len(assignments) && !assignments[i].IsPlaceholder() {
            slots = append(slots, filledSlot(i, assignments[i]))
        } else {
            slots = append(slots, emptySlot(i))
        }
    }
    return slots
}

func filledSlot(index int, a *model.Assignment) model.Slot {
    return model.Slot{
        Index:                index,
        Influenciador:        a.CreatorName,
        CreatorID:            a.CreatorID,
        IsExisting:           true,
        BriefingCompleto:     a.BriefingCompleto,
        VisitaConfirmado:     a.VisitaConfirmado,
        VideoAprovado:        a.VideoAprovado,
        VideoPostado:         a.VideoPostado,
        DataHoraVisita:       a.DataHoraVisita,
        DataHoraPostagem:     a.DataHoraPostagem,
        QuantidadeConvidados: a.QuantidadeConvidados,
        VideoInstagramLink:   a.VideoInstagramLink,
        VideoTiktokLink:      a.VideoTiktokLink,
    }
}

func emptySlot(index int) model.Slot {
    return model.Slot{
        Index:            index,
        Influenciador:    "",
        CreatorID:        nil,
        IsExisting:       false,
        BriefingCompleto: model.DeliverablePendente,
        VisitaConfirmado: model.DeliverablePendente,
        VideoAprovado:    model.DeliverablePendente,
        VideoPostado:     model.DeliverableNao,
    }
}
