package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/draftdex/draftdex-api/models"
	"github.com/draftdex/draftdex-api/utils"
)

// POST /api/sets/{setID}/cards/bulk
//
// Assigns a rarity or a type to a selection of cards, one write per card.
// Failures do not roll back writes that already went through; the caller
// gets a single aggregate error listing what failed.
func (db *DBHandler) BulkAssign(w http.ResponseWriter, r *http.Request) {
	auth0ID, ok := utils.GetAuth0ID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	setID := r.PathValue("setID")
	var set models.CardSet
	if err := db.Preload("User").Where("public_id = ?", setID).First(&set).Error; err != nil {
		http.Error(w, "Set not found", http.StatusNotFound)
		return
	}
	if set.User.Auth0ID != auth0ID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	var req struct {
		CardIDs []string `json:"cardIds"`
		Rarity  *string  `json:"rarity,omitempty"`
		Type    *string  `json:"type,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if len(req.CardIDs) == 0 {
		http.Error(w, "No cards selected", http.StatusBadRequest)
		return
	}
	if req.Rarity == nil && req.Type == nil {
		http.Error(w, "Nothing to assign", http.StatusBadRequest)
		return
	}
	if req.Rarity != nil && *req.Rarity != "" && !models.ValidRarity(*req.Rarity) {
		http.Error(w, "Invalid rarity", http.StatusBadRequest)
		return
	}
	if req.Type != nil && *req.Type != "" && !models.ValidCardType(*req.Type) {
		http.Error(w, "Invalid card type", http.StatusBadRequest)
		return
	}

	updates := map[string]interface{}{}
	if req.Rarity != nil {
		updates["rarity"] = *req.Rarity
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}

	var failed []string
	updated := 0
	for _, cardID := range req.CardIDs {
		result := db.Model(&models.Card{}).
			Where("public_id = ? AND set_id = ?", cardID, set.ID).
			Updates(updates)
		if result.Error != nil {
			log.Printf("BulkAssign: failed to update card %s: %v", cardID, result.Error)
			failed = append(failed, cardID)
			continue
		}
		if result.RowsAffected == 0 {
			failed = append(failed, cardID)
			continue
		}
		updated++
	}

	if len(failed) > 0 {
		msg := fmt.Sprintf("Updated %d of %d cards; failed: %s",
			updated, len(req.CardIDs), strings.Join(failed, ", "))
		http.Error(w, msg, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"updated": updated,
	})
}
