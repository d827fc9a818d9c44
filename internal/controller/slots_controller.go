// internal/controller/slots_controller.go
package controller

import (
    "encoding/json"
    "errors"
    "net/http"
    "strconv"

    "github.com/go-chi/chi/v5"
    "github.com/google/uuid"

    appErrors "github.com/agenciacriadores/crm-backend/internal/errors"
    "github.com/agenciacriadores/crm-backend/internal/repository"
    "github.com/agenciacriadores/crm-backend/internal/service"
)

type SlotsController struct {
    Manager     *service.CampaignManager
    CreatorRepo repository.CreatorRepositoryInterface
    AuditRepo   repository.AuditLogRepositoryInterface
}

// GetSlots returns the slot list for a (business, month) pair.
// GET /api/campaigns/slots?business=...&mes=...
func (c *SlotsController) GetSlots(w http.ResponseWriter, r *http.Request) {
    business := r.URL.Query().Get("business")
    mes := r.URL.Query().Get("mes")
    if business == "" || mes == "" {
        http.Error(w, "business and mes query params are required", http.StatusBadRequest)
        return
    }

    result, err := c.Manager.GetSlots(business, mes)
    if err != nil {
        writeError(w, err)
        return
    }

    writeJSON(w, result)
}

// AddCreator assigns a creator to a campaign.
// POST /api/campaigns/{id}/creators
func (c *SlotsController) AddCreator(w http.ResponseWriter, r *http.Request) {
    campaignID, ok := campaignIDParam(w, r)
    if !ok {
        return
    }

    var body struct {
        CreatorID     string `json:"creatorId"`
        UserEmail     string `json:"userEmail"`
        IncreaseSlots bool   `json:"increaseSlots"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }
    if _, err := uuid.Parse(body.CreatorID); err != nil {
        http.Error(w, "invalid creator id", http.StatusBadRequest)
        return
    }

    creator, err := c.CreatorRepo.GetByID(body.CreatorID)
    if err != nil {
        writeError(w, err)
        return
    }
    if creator == nil {
        writeError(w, appErrors.NewCreatorNotFound(body.CreatorID))
        return
    }

    result, err := c.Manager.AddCreator(campaignID, body.CreatorID, body.UserEmail, body.IncreaseSlots)
    if err != nil {
        writeError(w, err)
        return
    }

    writeJSON(w, result)
}

// RemoveCreator soft-removes a creator from a campaign.
// POST /api/campaigns/{id}/creators/remove
func (c *SlotsController) RemoveCreator(w http.ResponseWriter, r *http.Request) {
    campaignID, ok := campaignIDParam(w, r)
    if !ok {
        return
    }

    var body struct {
        CreatorID  string `json:"creatorId"`
        UserEmail  string `json:"userEmail"`
        DeleteLine bool   `json:"deleteLine"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }
    if _, err := uuid.Parse(body.CreatorID); err != nil {
        http.Error(w, "invalid creator id", http.StatusBadRequest)
        return
    }

    result, err := c.Manager.RemoveCreator(campaignID, body.CreatorID, body.UserEmail, body.DeleteLine)
    if err != nil {
        writeError(w, err)
        return
    }

    writeJSON(w, result)
}

// SwapCreator replaces one creator with another in a single store
// transaction.
// POST /api/campaigns/{id}/creators/swap
func (c *SlotsController) SwapCreator(w http.ResponseWriter, r *http.Request) {
    campaignID, ok := campaignIDParam(w, r)
    if !ok {
        return
    }

    var body struct {
        OldCreatorID string `json:"oldCreatorId"`
        NewCreatorID string `json:"newCreatorId"`
        UserEmail    string `json:"userEmail"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }
    if _, err := uuid.Parse(body.OldCreatorID); err != nil {
        http.Error(w, "invalid old creator id", http.StatusBadRequest)
        return
    }
    if _, err := uuid.Parse(body.NewCreatorID); err != nil {
        http.Error(w, "invalid new creator id", http.StatusBadRequest)
        return
    }

    creator, err := c.CreatorRepo.GetByID(body.NewCreatorID)
    if err != nil {
        writeError(w, err)
        return
    }
    if creator == nil {
        writeError(w, appErrors.NewCreatorNotFound(body.NewCreatorID))
        return
    }

    result, err := c.Manager.SwapCreator(campaignID, body.OldCreatorID, body.NewCreatorID, body.UserEmail)
    if err != nil {
        writeError(w, err)
        return
    }

    writeJSON(w, result)
}

// FixCampaign triggers a manual quantity repair.
// POST /api/campaigns/{id}/fix
func (c *SlotsController) FixCampaign(w http.ResponseWriter, r *http.Request) {
    campaignID, ok := campaignIDParam(w, r)
    if !ok {
        return
    }

    result, err := c.Manager.FixCampaign(campaignID)
    if err != nil {
        if notFound(err) {
            writeError(w, err)
            return
        }
        writeJSON(w, map[string]any{
            "success": false,
            "error":   err.Error(),
        })
        return
    }

    writeJSON(w, map[string]any{
        "success": true,
        "data":    result,
    })
}

// GetAuditLog lists recent audit entries for a campaign.
// GET /api/campaigns/{id}/audit-log
func (c *SlotsController) GetAuditLog(w http.ResponseWriter, r *http.Request) {
    campaignID, ok := campaignIDParam(w, r)
    if !ok {
        return
    }

    limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
    entries, err := c.AuditRepo.ListByCampaign(campaignID, limit)
    if err != nil {
        writeError(w, err)
        return
    }

    writeJSON(w, map[string]any{"data": entries})
}

// GetStats returns deliverable progress counts for a campaign.
// GET /api/campaigns/{id}/stats
func (c *SlotsController) GetStats(w http.ResponseWriter, r *http.Request) {
    campaignID, ok := campaignIDParam(w, r)
    if !ok {
        return
    }

    stats, err := c.Manager.Repo.GetCampaignStats(campaignID)
    if err != nil {
        writeError(w, err)
        return
    }

    writeJSON(w, map[string]any{"stats": stats})
}

func campaignIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
    id := chi.URLParam(r, "id")
    if _, err := uuid.Parse(id); err != nil {
        http.Error(w, "invalid campaign id", http.StatusBadRequest)
        return "", false
    }
    return id, true
}

func notFound(err error) bool {
    var campaignNotFound *appErrors.ErrCampaignNotFound
    var creatorNotFound *appErrors.ErrCreatorNotFound
    return errors.As(err, &campaignNotFound) || errors.As(err, &creatorNotFound)
}

func writeError(w http.ResponseWriter, err error) {
    if notFound(err) {
        http.Error(w, err.Error(), http.StatusNotFound)
        return
    }
    http.Error(w, err.Error(), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, payload any) {
    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(payload)
}
