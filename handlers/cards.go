package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/draftdex/draftdex-api/derive"
	"github.com/draftdex/draftdex-api/models"
	"github.com/draftdex/draftdex-api/storage"
	"github.com/draftdex/draftdex-api/utils"
)

const maxUploadBytes = 20 << 20 // 20 MB for front + back scans

// POST /api/sets/{setID}/cards
//
// Multipart upload: "image" is the card scan, optional "back" is the second
// face. The card name defaults to the image filename without its extension.
func (db *DBHandler) UploadCard(w http.ResponseWriter, r *http.Request) {
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

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Could not parse upload", http.StatusBadRequest)
		return
	}

	colors := splitList(r.FormValue("colors"))
	for _, c := range colors {
		if !models.ValidColor(c) {
			http.Error(w, "Invalid color: "+c, http.StatusBadRequest)
			return
		}
	}
	// A card never finishes upload without at least one color
	if len(colors) == 0 {
		http.Error(w, "At least one color is required", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Card image is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	name := r.FormValue("name")
	if name == "" {
		base := filepath.Base(header.Filename)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	imageURL, err := db.Images.Upload(r.Context(), storage.NewStorageKey(),
		header.Header.Get("Content-Type"), file)
	if err != nil {
		log.Printf("UploadCard: image upload failed: %v", err)
		http.Error(w, "Failed to store image", http.StatusInternalServerError)
		return
	}

	backURL := ""
	isDoubleFaced := false
	if back, backHeader, err := r.FormFile("back"); err == nil {
		defer back.Close()
		backURL, err = db.Images.Upload(r.Context(), storage.NewStorageKey(),
			backHeader.Header.Get("Content-Type"), back)
		if err != nil {
			log.Printf("UploadCard: back image upload failed: %v", err)
			// The card row never gets created, so reclaim the front image
			if derr := db.Images.Delete(r.Context(), imageURL); derr != nil {
				log.Printf("UploadCard: failed to clean up front image: %v", derr)
			}
			http.Error(w, "Failed to store back image", http.StatusInternalServerError)
			return
		}
		isDoubleFaced = true
	}

	publicID, err := gonanoid.New()
	if err != nil {
		http.Error(w, "Failed to generate ID", http.StatusInternalServerError)
		return
	}

	card := models.Card{
		PublicID:      publicID,
		Name:          name,
		Colors:        models.StringList(colors),
		Comment:       r.FormValue("comment"),
		IsDoubleFaced: isDoubleFaced,
		ImageURL:      imageURL,
		BackImageURL:  backURL,
		AttributeIDs:  models.StringList{},
		SetID:         set.ID,
	}

	if err := db.Create(&card).Error; err != nil {
		log.Printf("UploadCard: Failed to create card: %v", err)
		http.Error(w, "Failed to create card", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(card)
}

// GET /api/sets/{setID}/cards
//
// The full derivation runs here: filter criteria and sort key come from the
// query string, and view=tiers switches the response from a flat list to
// rating-tier buckets (descending, empty tiers omitted).
func (db *DBHandler) GetCardsForSet(w http.ResponseWriter, r *http.Request) {
	setID := r.PathValue("setID")

	var set models.CardSet
	if err := db.Preload("User").Where("public_id = ?", setID).First(&set).Error; err != nil {
		http.Error(w, "Set not found", http.StatusNotFound)
		return
	}

	auth0ID, ok := utils.GetAuth0ID(r)
	if !ok || set.User.Auth0ID != auth0ID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	var cards []models.Card
	if err := db.Where("set_id = ?", set.ID).Find(&cards).Error; err != nil {
		http.Error(w, "Failed to fetch cards", http.StatusInternalServerError)
		return
	}
	derive.NormalizeCards(cards)

	q := r.URL.Query()
	filters := parseFilters(q)

	sortKey := q.Get("sort")
	if sortKey == "" {
		sortKey = derive.SortDefault
	}

	cards = derive.FilterCards(cards, filters, set.ID)
	derive.SortCards(cards, sortKey)

	w.Header().Set("Content-Type", "application/json")

	if q.Get("view") == "tiers" {
		type TierResponse struct {
			Tier  string        `json:"tier"`
			Cards []models.Card `json:"cards"`
		}
		groups := derive.GroupTiers(cards)
		response := []TierResponse{}
		for _, label := range derive.TierLabels {
			if len(groups[label]) == 0 {
				continue
			}
			response = append(response, TierResponse{Tier: label, Cards: groups[label]})
		}
		json.NewEncoder(w).Encode(response)
		return
	}

	json.NewEncoder(w).Encode(cards)
}

// GET /api/sets/{setID}/cards/{cardID}
func (db *DBHandler) GetCardByID(w http.ResponseWriter, r *http.Request) {
	cardID := r.PathValue("cardID")
	if cardID == "" {
		http.Error(w, "Card ID is required", http.StatusBadRequest)
		return
	}

	card, ok := db.ownedCard(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(card); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// PUT /api/sets/{setID}/cards/{cardID}
func (db *DBHandler) UpdateCardByID(w http.ResponseWriter, r *http.Request) {
	card, ok := db.ownedCard(w, r)
	if !ok {
		return
	}

	// Decode the update data
	type CardUpdateRequest struct {
		Name          *string         `json:"name,omitempty"`
		Colors        *[]string       `json:"colors,omitempty"`
		Rarity        *string         `json:"rarity,omitempty"`
		Type          *string         `json:"type,omitempty"`
		Rating        *float64        `json:"rating,omitempty"`
		ManaCost      json.RawMessage `json:"manaCost,omitempty"`
		IsBomb        *bool           `json:"isBomb,omitempty"`
		IsDoubleFaced *bool           `json:"isDoubleFaced,omitempty"`
		Comment       *string         `json:"comment,omitempty"`
	}
	var req CardUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Update fields if provided
	if req.Name != nil {
		card.Name = *req.Name
	}
	if req.Colors != nil {
		for _, c := range *req.Colors {
			if !models.ValidColor(c) {
				http.Error(w, "Invalid color: "+c, http.StatusBadRequest)
				return
			}
		}
		card.Colors = models.StringList(*req.Colors)
	}
	if req.Rarity != nil {
		if *req.Rarity != "" && !models.ValidRarity(*req.Rarity) {
			http.Error(w, "Invalid rarity", http.StatusBadRequest)
			return
		}
		card.Rarity = *req.Rarity
	}
	if req.Type != nil {
		if *req.Type != "" && !models.ValidCardType(*req.Type) {
			http.Error(w, "Invalid card type", http.StatusBadRequest)
			return
		}
		card.Type = *req.Type
	}
	if req.Rating != nil {
		clamped := derive.ClampRating(*req.Rating)
		card.Rating = &clamped
	}
	if len(req.ManaCost) > 0 {
		card.ManaCost = derive.ParseManaCost(req.ManaCost)
	}
	if req.IsBomb != nil {
		card.IsBomb = *req.IsBomb
	}
	if req.IsDoubleFaced != nil {
		// Toggling the flag on before uploading the back image is allowed
		card.IsDoubleFaced = *req.IsDoubleFaced
	}
	if req.Comment != nil {
		card.Comment = *req.Comment
	}

	// Save the updated card
	if err := db.Save(card).Error; err != nil {
		http.Error(w, "Failed to update card", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(card)
}

// PUT /api/sets/{setID}/cards/{cardID}/back
//
// Upload or replace the second face of a double-faced card.
func (db *DBHandler) UploadCardBackImage(w http.ResponseWriter, r *http.Request) {
	card, ok := db.ownedCard(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Could not parse upload", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("back")
	if err != nil {
		http.Error(w, "Back image is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if card.BackImageURL != "" {
		if err := db.Images.Delete(r.Context(), card.BackImageURL); err != nil {
			log.Printf("UploadCardBackImage: failed to delete old back image: %v", err)
		}
	}

	backURL, err := db.Images.Upload(r.Context(), storage.NewStorageKey(),
		header.Header.Get("Content-Type"), file)
	if err != nil {
		log.Printf("UploadCardBackImage: upload failed: %v", err)
		http.Error(w, "Failed to store back image", http.StatusInternalServerError)
		return
	}

	card.BackImageURL = backURL
	card.IsDoubleFaced = true
	if err := db.Save(card).Error; err != nil {
		http.Error(w, "Failed to update card", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(card)
}

// DELETE /api/sets/{setID}/cards/{cardID}
func (db *DBHandler) DeleteCardByID(w http.ResponseWriter, r *http.Request) {
	card, ok := db.ownedCard(w, r)
	if !ok {
		return
	}

	db.deleteCardImages(r.Context(), card)

	result := db.Delete(card)
	if result.Error != nil {
		http.Error(w, "Failed to delete card", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// deleteCardImages removes a card's stored scans best-effort. Failures are
// logged, never propagated.
func (db *DBHandler) deleteCardImages(ctx context.Context, card *models.Card) {
	if err := db.Images.Delete(ctx, card.ImageURL); err != nil {
		log.Printf("Failed to delete image for card %s: %v", card.PublicID, err)
	}
	if card.BackImageURL != "" {
		if err := db.Images.Delete(ctx, card.BackImageURL); err != nil {
			log.Printf("Failed to delete back image for card %s: %v", card.PublicID, err)
		}
	}
}

// ownedCard loads the card at {setID}/{cardID} and enforces set ownership.
// On failure it writes the error response and returns ok=false.
func (db *DBHandler) ownedCard(w http.ResponseWriter, r *http.Request) (*models.Card, bool) {
	setID := r.PathValue("setID")
	cardID := r.PathValue("cardID")

	auth0ID, ok := utils.GetAuth0ID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil, false
	}

	var set models.CardSet
	if err := db.Preload("User").Where("public_id = ?", setID).First(&set).Error; err != nil {
		http.Error(w, "Set not found", http.StatusNotFound)
		return nil, false
	}
	if set.User.Auth0ID != auth0ID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return nil, false
	}

	var card models.Card
	if err := db.Where("public_id = ? AND set_id = ?", cardID, set.ID).First(&card).Error; err != nil {
		http.Error(w, "Card not found", http.StatusNotFound)
		return nil, false
	}
	derive.NormalizeCard(&card)

	return &card, true
}

func splitList(raw string) []string {
	var out []string
	for _, v := range strings.Split(raw, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
