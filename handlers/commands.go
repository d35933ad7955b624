package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/draftdex/draftdex-api/derive"
	"github.com/draftdex/draftdex-api/models"
)

// Per-card mutation commands. Each is an independent write; two rapid edits
// of the same card are not sequenced against each other and the last write
// wins.

// PUT /api/sets/{setID}/cards/{cardID}/rating
func (db *DBHandler) SetCardRating(w http.ResponseWriter, r *http.Request) {
	card, ok := db.ownedCard(w, r)
	if !ok {
		return
	}

	var req struct {
		Rating float64 `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Out-of-range input is clamped, not rejected
	clamped := derive.ClampRating(req.Rating)
	card.Rating = &clamped

	if err := db.Save(card).Error; err != nil {
		http.Error(w, "Failed to update rating", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(card)
}

// PUT /api/sets/{setID}/cards/{cardID}/manacost
func (db *DBHandler) SetCardManaCost(w http.ResponseWriter, r *http.Request) {
	card, ok := db.ownedCard(w, r)
	if !ok {
		return
	}

	var req struct {
		ManaCost json.RawMessage `json:"manaCost"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Negative or non-numeric input becomes unset
	card.ManaCost = derive.ParseManaCost(req.ManaCost)

	if err := db.Save(card).Error; err != nil {
		http.Error(w, "Failed to update mana cost", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(card)
}

// POST /api/sets/{setID}/cards/{cardID}/bomb
func (db *DBHandler) ToggleCardBomb(w http.ResponseWriter, r *http.Request) {
	card, ok := db.ownedCard(w, r)
	if !ok {
		return
	}

	card.IsBomb = !card.IsBomb

	if err := db.Save(card).Error; err != nil {
		http.Error(w, "Failed to update card", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(card)
}

// POST /api/sets/{setID}/cards/{cardID}/attributes/{attributeID}
//
// Adds the attribute to the card if absent, removes it if present.
func (db *DBHandler) ToggleCardAttribute(w http.ResponseWriter, r *http.Request) {
	attributeID := r.PathValue("attributeID")
	if attributeID == "" {
		http.Error(w, "Attribute ID is required", http.StatusBadRequest)
		return
	}

	card, ok := db.ownedCard(w, r)
	if !ok {
		return
	}

	var attribute models.CustomAttribute
	if err := db.Where("public_id = ?", attributeID).First(&attribute).Error; err != nil {
		http.Error(w, "Attribute not found", http.StatusNotFound)
		return
	}

	if card.AttributeIDs.Contains(attributeID) {
		kept := make(models.StringList, 0, len(card.AttributeIDs))
		for _, id := range card.AttributeIDs {
			if id != attributeID {
				kept = append(kept, id)
			}
		}
		card.AttributeIDs = kept
	} else {
		card.AttributeIDs = append(card.AttributeIDs, attributeID)
	}

	if err := db.Save(card).Error; err != nil {
		http.Error(w, "Failed to update card", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(card)
}
