// internal/sheets/locator.go
package sheets

import (
    "fmt"
    "log"
    "strings"
    "time"

    "github.com/google/uuid"

    "github.com/agenciacriadores/crm-backend/internal/model"
)

// SlotAction says how the new creator landed on the sheet.
type SlotAction string

const (
    ActionEditedExistingSlot SlotAction = "edited_existing_slot"
    ActionCreatedNewSlot     SlotAction = "created_new_slot"
)

// NewCreatorData carries the deliverable cells for the incoming creator.
// Sheet cells are free text, so everything stays a string here.
type NewCreatorData struct {
    BriefingCompleto     string `json:"briefingCompleto"`
    DataHoraVisita       string `json:"dataHoraVisita"`
    QuantidadeConvidados string `json:"quantidadeConvidados"`
    VisitaConfirmado     string `json:"visitaConfirmado"`
    VideoAprovado        string `json:"videoAprovado"`
    VideoPostado         string `json:"videoPostado"`
    VideoInstagramLink   string `json:"videoInstagramLink"`
    VideoTiktokLink      string `json:"videoTiktokLink"`
}

// SwapRequest is the legacy endpoint payload.
type SwapRequest struct {
    CampaignID     string         `json:"campaignId"`
    BusinessName   string         `json:"businessName"`
    Mes            string         `json:"mes"`
    OldCreator     string         `json:"oldCreator"`
    NewCreator     string         `json:"newCreator"`
    NewCreatorData NewCreatorData `json:"newCreatorData"`
    User           string         `json:"user"`
}

type OldCreatorOutcome struct {
    Name        string `json:"name"`
    RowIndex    int    `json:"rowIndex"`
    Deactivated bool   `json:"deactivated"`
}

type NewCreatorOutcome struct {
    Name     string     `json:"name"`
    RowIndex int        `json:"rowIndex"`
    Action   SlotAction `json:"action"`
}

type SwapResult struct {
    OldCreator    *OldCreatorOutcome   `json:"oldCreator"`
    NewCreator    *NewCreatorOutcome   `json:"newCreator"`
    Operations    []string             `json:"operations"`
    AuditLogEntry *model.AuditLogEntry `json:"auditLogEntry"`
}

// Locator implements the legacy spreadsheet slot rules: soft-remove by
// flipping "Status do Calendário" to Inativo, and prefer overwriting the
// first empty Ativo row over appending. Appending grows the sheet past the
// nominal slot budget, so it is always the last resort.
//
// No transactional guarantee exists on this path; the read-then-write
// sequence can race under concurrent requests.
type Locator struct {
    Gateway  Gateway
    Tab      string
    AuditTab string
}

func NewLocator(gw Gateway) *Locator {
    return &Locator{Gateway: gw, Tab: CalendarTab, AuditTab: AuditTab}
}

// SwapCreator runs the legacy swap/add flow for one (business, month).
func (l *Locator) SwapCreator(req *SwapRequest) (*SwapResult, error) {
    result := &SwapResult{Operations: []string{}}

    rows, err := l.Gateway.ReadRows(l.Tab)
    if err != nil {
        result.AuditLogEntry = l.writeAudit(req, model.AuditStatusFailed, "failed to read sheet: "+err.Error(), result)
        return nil, fmt.Errorf("failed to read sheet: %w", err)
    }

    // 1. Deactivate the outgoing creator's row. Not finding it is
    // non-fatal: the request may be a pure addition.
    if req.OldCreator != "" {
        idx := findCreatorRow(rows, req.BusinessName, req.Mes, req.OldCreator)
        if idx >= 0 {
            rows[idx][ColStatusCalendario] = StatusInativo
            if err := l.Gateway.UpdateRow(l.Tab, idx, rows[idx]); err != nil {
                result.AuditLogEntry = l.writeAudit(req, model.AuditStatusFailed, "failed to deactivate old creator: "+err.Error(), result)
                return nil, fmt.Errorf("failed to deactivate old creator: %w", err)
            }
            result.OldCreator = &OldCreatorOutcome{Name: req.OldCreator, RowIndex: idx, Deactivated: true}
            result.Operations = append(result.Operations, "deactivated_old_creator")
        } else {
            log.Printf("⚠️ old creator %q not found for %s/%s, treating as addition\n",
                req.OldCreator, req.BusinessName, req.Mes)
            result.Operations = append(result.Operations, "old_creator_not_found")
        }
    }

    // 2. First row with an empty influencer cell and Ativo status is the
    // reusable slot.
    newRow := buildRow(req)
    slotIdx := findEmptySlotRow(rows, req.BusinessName, req.Mes)

    // 3. Edit in place when possible, append as the fallback.
    if slotIdx >= 0 {
        if err := l.Gateway.UpdateRow(l.Tab, slotIdx, newRow); err != nil {
            result.AuditLogEntry = l.writeAudit(req, model.AuditStatusFailed, "failed to edit slot row: "+err.Error(), result)
            return nil, fmt.Errorf("failed to edit slot row: %w", err)
        }
        result.NewCreator = &NewCreatorOutcome{Name: req.NewCreator, RowIndex: slotIdx, Action: ActionEditedExistingSlot}
        result.Operations = append(result.Operations, string(ActionEditedExistingSlot))
    } else {
        if err := l.Gateway.AppendRow(l.Tab, newRow); err != nil {
            result.AuditLogEntry = l.writeAudit(req, model.AuditStatusFailed, "failed to append slot row: "+err.Error(), result)
            return nil, fmt.Errorf("failed to append slot row: %w", err)
        }
        result.NewCreator = &NewCreatorOutcome{Name: req.NewCreator, RowIndex: len(rows), Action: ActionCreatedNewSlot}
        result.Operations = append(result.Operations, string(ActionCreatedNewSlot))
    }

    // 4. Mirror the mutation into the audit log before returning.
    result.AuditLogEntry = l.writeAudit(req, model.AuditStatusSuccess,
        strings.Join(result.Operations, ","), result)

    return result, nil
}

// writeAudit appends an audit row for the swap. The sheet mutation is
// authoritative even when its audit trail is incomplete, so failures here
// are logged and never propagated.
func (l *Locator) writeAudit(req *SwapRequest, status, details string, result *SwapResult) *model.AuditLogEntry {
    entry := &model.AuditLogEntry{
        ID:         uuid.NewString(),
        CampaignID: req.CampaignID,
        Action:     model.AuditActionLegacySwap,
        Status:     status,
        OldValue:   req.OldCreator,
        NewValue:   req.NewCreator,
        UserEmail:  req.User,
        Details:    details,
        CreatedAt:  time.Now(),
    }

    row := Row{
        entry.ID,
        entry.CreatedAt.Format(time.RFC3339),
        entry.CampaignID,
        req.BusinessName,
        req.Mes,
        entry.Action,
        entry.Status,
        entry.OldValue,
        entry.NewValue,
        entry.UserEmail,
        entry.Details,
    }
    if err := l.Gateway.AppendRow(l.AuditTab, row); err != nil {
        log.Println("⚠️ failed to write audit row:", err)
    }
    return entry
}

// findCreatorRow returns the first active row for (business, mes) whose
// influencer cell matches name, or -1.
func findCreatorRow(rows []Row, business, mes, name string) int {
    for i, row := range rows {
        if !rowMatches(row, business, mes) {
            continue
        }
        if cell(row, ColStatusCalendario) != StatusAtivo {
            continue
        }
        if strings.EqualFold(strings.TrimSpace(cell(row, ColInfluenciador)), strings.TrimSpace(name)) {
            return i
        }
    }
    return -1
}

// findEmptySlotRow returns the first active row for (business, mes) with an
// empty influencer cell, or -1.
func findEmptySlotRow(rows []Row, business, mes string) int {
    for i, row := range rows {
        if !rowMatches(row, business, mes) {
            continue
        }
        if cell(row, ColStatusCalendario) != StatusAtivo {
            continue
        }
        influencer := strings.TrimSpace(cell(row, ColInfluenciador))
        if influencer == "" || influencer == model.PlaceholderCreator {
            return i
        }
    }
    return -1
}

func rowMatches(row Row, business, mes string) bool {
    return strings.EqualFold(strings.TrimSpace(cell(row, ColBusiness)), strings.TrimSpace(business)) &&
        strings.TrimSpace(cell(row, ColMes)) == strings.TrimSpace(mes)
}

func cell(row Row, col int) string {
    if col >= len(row) {
        return ""
    }
    return row[col]
}

// buildRow assembles the full calendar row for the incoming creator.
func buildRow(req *SwapRequest) Row {
    d := req.NewCreatorData
    row := make(Row, RowWidth)
    row[ColBusiness] = req.BusinessName
    row[ColMes] = req.Mes
    row[ColInfluenciador] = req.NewCreator
    row[ColStatusCalendario] = StatusAtivo
    row[ColBriefingCompleto] = orDefault(d.BriefingCompleto, model.DeliverablePendente)
    row[ColDataHoraVisita] = d.DataHoraVisita
    row[ColQuantidadeConvidados] = d.QuantidadeConvidados
    row[ColVisitaConfirmado] = orDefault(d.VisitaConfirmado, model.DeliverablePendente)
    row[ColVideoAprovado] = orDefault(d.VideoAprovado, model.DeliverablePendente)
    row[ColVideoPostado] = orDefault(d.VideoPostado, model.DeliverableNao)
    row[ColVideoInstagramLink] = d.VideoInstagramLink
    row[ColVideoTiktokLink] = d.VideoTiktokLink
    return row
}

func orDefault(v, def string) string {
    if strings.TrimSpace(v) == "" {
        return def
    }
    return v
}
