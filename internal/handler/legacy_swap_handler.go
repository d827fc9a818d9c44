// internal/handler/legacy_swap_handler.go
package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/agenciacriadores/crm-backend/internal/sheets"
)

// LegacySwapHandler serves the spreadsheet-backed creator swap endpoint.
// This path predates the relational store and stays live for businesses
// still managed on the calendar sheet.
type LegacySwapHandler struct {
	Locator *sheets.Locator
}

// NewLegacySwapHandler creates a handler around a sheet gateway
func NewLegacySwapHandler(gw sheets.Gateway) *LegacySwapHandler {
	return &LegacySwapHandler{Locator: sheets.NewLocator(gw)}
}

// SwapCreatorHandler handles POST /api/legacy/trocar-criador
func (h *LegacySwapHandler) SwapCreatorHandler(w http.ResponseWriter, r *http.Request) {
	var req sheets.SwapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.BusinessName == "" || req.Mes == "" || req.NewCreator == "" {
		http.Error(w, "businessName, mes and newCreator are required", http.StatusBadRequest)
		return
	}

	log.Printf("📥 Legacy swap: %s/%s %q -> %q\n", req.BusinessName, req.Mes, req.OldCreator, req.NewCreator)

	result, err := h.Locator.SwapCreator(&req)
	if err != nil {
		log.Println("❌ Legacy swap failed:", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"message": "criador atualizado com sucesso",
		"data":    result,
	})
}
