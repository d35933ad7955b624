package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/draftdex/draftdex-api/models"
	"github.com/draftdex/draftdex-api/utils"
)

// GET /api/attributes
func (db *DBHandler) GetAttributes(w http.ResponseWriter, r *http.Request) {
	user, ok := db.currentUser(w, r)
	if !ok {
		return
	}

	var attributes []models.CustomAttribute
	if err := db.Where("user_id = ?", user.ID).Find(&attributes).Error; err != nil {
		http.Error(w, "Failed to fetch attributes", http.StatusInternalServerError)
		return
	}

	if len(attributes) == 0 {
		attributes = []models.CustomAttribute{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(attributes)
}

// POST /api/attributes
func (db *DBHandler) CreateAttribute(w http.ResponseWriter, r *http.Request) {
	user, ok := db.currentUser(w, r)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "Attribute name is required", http.StatusBadRequest)
		return
	}

	publicID, err := gonanoid.New()
	if err != nil {
		http.Error(w, "Failed to generate ID", http.StatusInternalServerError)
		return
	}

	attribute := models.CustomAttribute{
		PublicID: publicID,
		Name:     req.Name,
		UserID:   user.ID,
	}

	if err := db.Create(&attribute).Error; err != nil {
		log.Printf("CreateAttribute: Failed to create attribute: %v", err)
		http.Error(w, "Failed to create attribute", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(attribute)
}

// PUT /api/attributes/{attributeID}
func (db *DBHandler) UpdateAttributeByID(w http.ResponseWriter, r *http.Request) {
	user, ok := db.currentUser(w, r)
	if !ok {
		return
	}

	attributeID := r.PathValue("attributeID")
	var attribute models.CustomAttribute
	if err := db.Where("public_id = ? AND user_id = ?", attributeID, user.ID).First(&attribute).Error; err != nil {
		http.Error(w, "Attribute not found", http.StatusNotFound)
		return
	}

	var req struct {
		Name *string `json:"name,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Name != nil && *req.Name != "" && attribute.Name != *req.Name {
		attribute.Name = *req.Name
		if err := db.Save(&attribute).Error; err != nil {
			http.Error(w, "Failed to update attribute", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(attribute)
}

// DELETE /api/attributes/{attributeID}
//
// Deleting an attribute detaches it from every card carrying it before the
// record itself goes away.
func (db *DBHandler) DeleteAttributeByID(w http.ResponseWriter, r *http.Request) {
	user, ok := db.currentUser(w, r)
	if !ok {
		return
	}

	attributeID := r.PathValue("attributeID")
	var attribute models.CustomAttribute
	if err := db.Where("public_id = ? AND user_id = ?", attributeID, user.ID).First(&attribute).Error; err != nil {
		http.Error(w, "Attribute not found", http.StatusNotFound)
		return
	}

	var cards []models.Card
	if err := db.Joins("JOIN card_sets ON card_sets.id = cards.set_id").
		Where("card_sets.user_id = ?", user.ID).
		Find(&cards).Error; err != nil {
		http.Error(w, "Failed to fetch cards", http.StatusInternalServerError)
		return
	}

	for i := range cards {
		if !cards[i].AttributeIDs.Contains(attributeID) {
			continue
		}
		kept := make(models.StringList, 0, len(cards[i].AttributeIDs))
		for _, id := range cards[i].AttributeIDs {
			if id != attributeID {
				kept = append(kept, id)
			}
		}
		if err := db.Model(&cards[i]).Update("attribute_ids", kept).Error; err != nil {
			// Best effort: a card left pointing at a dead attribute is
			// harmless, the filter just never matches it
			log.Printf("DeleteAttributeByID: failed to detach attribute from card %s: %v",
				cards[i].PublicID, err)
		}
	}

	if err := db.Delete(&attribute).Error; err != nil {
		http.Error(w, "Failed to delete attribute", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// currentUser resolves the authenticated user row. On failure it writes the
// error response and returns ok=false.
func (db *DBHandler) currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	auth0ID, ok := utils.GetAuth0ID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil, false
	}

	var user models.User
	if err := db.Where("auth0_id = ?", auth0ID).First(&user).Error; err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return nil, false
	}
	return &user, true
}
