package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/draftdex/draftdex-api/models"
	"github.com/draftdex/draftdex-api/utils"
)

// /api/sets/{setID}

func (db *DBHandler) GetSetByID(w http.ResponseWriter, r *http.Request) {
	setID := r.PathValue("setID")
	var set models.CardSet
	// Preload the User to access Auth0ID without a separate query
	if err := db.Preload("User").Where("public_id = ?", setID).First(&set).Error; err != nil {
		log.Printf("GetSetByID: Set not found for public_id=%s: %v", setID, err)
		http.Error(w, fmt.Sprintf("Set with ID %s not found", setID), http.StatusNotFound)
		return
	}

	auth0ID, ok := utils.GetAuth0ID(r)
	isOwner := ok && set.User.Auth0ID == auth0ID
	if !isOwner {
		log.Printf("GetSetByID: Forbidden access for set %s by auth0ID=%s", setID, auth0ID)
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	type SetResponse struct {
		models.CardSet
		IsOwner bool `json:"IsOwner"`
	}

	response := SetResponse{
		CardSet: set,
		IsOwner: isOwner,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// POST /api/sets
func (db *DBHandler) CreateCardSet(w http.ResponseWriter, r *http.Request) {
	// Get Auth0 ID from JWT/context
	auth0ID, ok := utils.GetAuth0ID(r)
	if !ok {
		log.Printf("CreateCardSet: Unauthorized request")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	// Look up the user in your database
	var user models.User
	if err := db.Where("auth0_id = ?", auth0ID).First(&user).Error; err != nil {
		log.Printf("CreateCardSet: User not found for auth0ID=%s: %v", auth0ID, err)
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	// Decode the request body
	type CreateSetRequest struct {
		Name string `json:"name"`
	}
	var req CreateSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("CreateCardSet: Invalid request body: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "Set name is required", http.StatusBadRequest)
		return
	}

	publicID, err := gonanoid.New()
	if err != nil {
		log.Printf("CreateCardSet: Failed to generate publicID: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	// Create the set
	set := models.CardSet{
		Name:     req.Name,
		UserID:   user.ID,
		PublicID: publicID,
	}

	// Save to DB
	if err := db.Create(&set).Error; err != nil {
		log.Printf("CreateCardSet: Failed to create set: %v", err)
		http.Error(w, "Failed to create set", http.StatusInternalServerError)
		return
	}

	log.Printf("CreateCardSet: Successfully created set with publicID=%s for userID=%d", publicID, user.ID)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(set)
}

// PUT /api/sets/{setID}
func (db *DBHandler) UpdateSetByID(w http.ResponseWriter, r *http.Request) {
	setID := r.PathValue("setID")

	auth0ID, ok := utils.GetAuth0ID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

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
		Name *string `json:"name,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Name != nil && *req.Name != "" && set.Name != *req.Name {
		set.Name = *req.Name
		if err := db.Save(&set).Error; err != nil {
			http.Error(w, "Failed to update set", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(set)
}

// DELETE /api/sets/{setID}
//
// Deleting a set cascades to every card in it. Stored images are removed
// best-effort: a failed image delete is logged and does not abort the record
// cleanup.
func (db *DBHandler) DeleteSetByID(w http.ResponseWriter, r *http.Request) {
	setID := r.PathValue("setID")

	auth0ID, ok := utils.GetAuth0ID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var set models.CardSet
	if err := db.Preload("User").Where("public_id = ?", setID).First(&set).Error; err != nil {
		http.Error(w, "Set not found", http.StatusNotFound)
		return
	}
	if set.User.Auth0ID != auth0ID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	var cards []models.Card
	if err := db.Where("set_id = ?", set.ID).Find(&cards).Error; err != nil {
		http.Error(w, "Failed to fetch cards for set", http.StatusInternalServerError)
		return
	}

	for i := range cards {
		db.deleteCardImages(r.Context(), &cards[i])
	}

	if err := db.Where("set_id = ?", set.ID).Delete(&models.Card{}).Error; err != nil {
		http.Error(w, "Failed to delete cards", http.StatusInternalServerError)
		return
	}
	if err := db.Delete(&set).Error; err != nil {
		http.Error(w, "Failed to delete set", http.StatusInternalServerError)
		return
	}

	log.Printf("DeleteSetByID: Deleted set %s and %d cards", setID, len(cards))
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/users/{nickname}/sets
func (db *DBHandler) GetSetsForUser(w http.ResponseWriter, r *http.Request) {
	nickname := r.PathValue("nickname")
	if nickname == "" {
		http.Error(w, "Nickname is required", http.StatusBadRequest)
		return
	}

	var user models.User
	if err := db.Where("nickname = ?", nickname).First(&user).Error; err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	auth0ID, ok := utils.GetAuth0ID(r)
	if !ok || user.Auth0ID != auth0ID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	var sets []models.CardSet
	if err := db.Where("user_id = ?", user.ID).Find(&sets).Error; err != nil {
		http.Error(w, "Failed to fetch sets", http.StatusInternalServerError)
		return
	}

	// If no sets found, return an empty array instead of null
	if len(sets) == 0 {
		sets = []models.CardSet{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(sets); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
