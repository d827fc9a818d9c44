// internal/model/slot.go
package model

import "time"

// Slot is a derived view: position i in [0, quantidade_criadores). It is
// rebuilt on every read and carries no identity beyond its index.
type Slot struct {
    Index                int        `json:"index"`
    Influenciador        string     `json:"influenciador"`
    CreatorID            *string    `json:"creatorId"`
    IsExisting           bool       `json:"isExisting"`
    BriefingCompleto     string     `json:"briefingCompleto"`
    VisitaConfirmado     string     `json:"visitaConfirmado"`
    VideoAprovado        string     `json:"videoAprovado"`
    VideoPostado         string     `json:"videoPostado"`
    DataHoraVisita       *time.Time `json:"dataHoraVisita,omitempty"`
    DataHoraPostagem     *time.Time `json:"dataHoraPostagem,omitempty"`
    QuantidadeConvidados int        `json:"quantidadeConvidados,omitempty"`
    VideoInstagramLink   string     `json:"videoInstagramLink,omitempty"`
    VideoTiktokLink      string     `json:"videoTiktokLink,omitempty"`
}

// Deliverable defaults for empty slots.
const (
    DeliverablePendente = "Pendente"
    DeliverableNao      = "Não"
    DeliverableSim      = "Sim"
)

// MutationResult is what the store's atomic add/remove/swap procedures return.
type MutationResult struct {
    Success       bool   `json:"success"`
    NewQuantidade int    `json:"newQuantidade"`
    Message       string `json:"message"`
}

// RepairResult is what the store's repair procedure returns.
type RepairResult struct {
    Fixed            bool `json:"fixed"`
    OldQuantity      int  `json:"oldQuantity"`
    NewQuantity      int  `json:"newQuantity"`
    RealCreatorCount int  `json:"realCreatorCount"`
}
