package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftdex/draftdex-api/models"
)

func TestCreateCardSet(t *testing.T) {
	db, _ := newTestHandler(t)
	user := seedUser(t, db, "auth0|alice", "alice")

	r := httptest.NewRequest(http.MethodPost, "/api/sets", strings.NewReader(`{"name":"DMU"}`))
	r = authedRequest(r, user.Auth0ID)
	w := httptest.NewRecorder()

	db.CreateCardSet(w, r)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var set models.CardSet
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &set))
	assert.Equal(t, "DMU", set.Name)
	assert.NotEmpty(t, set.PublicID)
	assert.Equal(t, user.ID, set.UserID)
}

func TestDeleteSetCascadesToCardsAndImages(t *testing.T) {
	db, images := newTestHandler(t)
	user := seedUser(t, db, "auth0|alice", "alice")
	doomed := seedSet(t, db, user, "DMU")
	kept := seedSet(t, db, user, "BRO")

	doomedCards := []models.Card{
		seedCard(t, db, doomed, models.Card{Name: "A"}),
		seedCard(t, db, doomed, models.Card{Name: "B", IsDoubleFaced: true, BackImageURL: "https://img.test/back/b"}),
	}
	keptCard := seedCard(t, db, kept, models.Card{Name: "C"})

	attribute := models.CustomAttribute{PublicID: "attr-1", Name: "sideboard", UserID: user.ID}
	require.NoError(t, db.Create(&attribute).Error)

	r := httptest.NewRequest(http.MethodDelete, "/api/sets/"+doomed.PublicID, nil)
	r.SetPathValue("setID", doomed.PublicID)
	r = authedRequest(r, user.Auth0ID)
	w := httptest.NewRecorder()

	db.DeleteSetByID(w, r)

	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	var count int64
	require.NoError(t, db.Model(&models.Card{}).Where("set_id = ?", doomed.ID).Count(&count).Error)
	assert.Zero(t, count, "cards of the deleted set must be gone")

	var survivor models.Card
	require.NoError(t, db.Where("public_id = ?", keptCard.PublicID).First(&survivor).Error)
	assert.Equal(t, "C", survivor.Name)

	var attrCount int64
	require.NoError(t, db.Model(&models.CustomAttribute{}).Count(&attrCount).Error)
	assert.Equal(t, int64(1), attrCount, "attributes are untouched by set deletion")

	// Front images for both cards plus the one back image
	assert.Len(t, images.deleted, 3)
	assert.Contains(t, images.deleted, doomedCards[0].ImageURL)
	assert.Contains(t, images.deleted, doomedCards[1].ImageURL)
	assert.Contains(t, images.deleted, "https://img.test/back/b")
}

func TestDeleteSetRequiresOwnership(t *testing.T) {
	db, _ := newTestHandler(t)
	owner := seedUser(t, db, "auth0|alice", "alice")
	intruder := seedUser(t, db, "auth0|mallory", "mallory")
	set := seedSet(t, db, owner, "DMU")

	r := httptest.NewRequest(http.MethodDelete, "/api/sets/"+set.PublicID, nil)
	r.SetPathValue("setID", set.PublicID)
	r = authedRequest(r, intruder.Auth0ID)
	w := httptest.NewRecorder()

	db.DeleteSetByID(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.CardSet{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDeleteAttributeDetachesFromCards(t *testing.T) {
	db, _ := newTestHandler(t)
	user := seedUser(t, db, "auth0|alice", "alice")
	set := seedSet(t, db, user, "DMU")

	attribute := models.CustomAttribute{PublicID: "attr-1", Name: "sideboard", UserID: user.ID}
	require.NoError(t, db.Create(&attribute).Error)
	other := models.CustomAttribute{PublicID: "attr-2", Name: "wheel", UserID: user.ID}
	require.NoError(t, db.Create(&other).Error)

	tagged := seedCard(t, db, set, models.Card{
		Name:         "Bear",
		AttributeIDs: models.StringList{"attr-1", "attr-2"},
	})
	untagged := seedCard(t, db, set, models.Card{Name: "Goblin"})

	r := httptest.NewRequest(http.MethodDelete, "/api/attributes/attr-1", nil)
	r.SetPathValue("attributeID", "attr-1")
	r = authedRequest(r, user.Auth0ID)
	w := httptest.NewRecorder()

	db.DeleteAttributeByID(w, r)

	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	var got models.Card
	require.NoError(t, db.Where("public_id = ?", tagged.PublicID).First(&got).Error)
	assert.Equal(t, models.StringList{"attr-2"}, got.AttributeIDs)

	// Fresh destination: reusing got would fold its primary key into the
	// next First query's conditions
	var otherCard models.Card
	require.NoError(t, db.Where("public_id = ?", untagged.PublicID).First(&otherCard).Error)
	assert.Empty(t, otherCard.AttributeIDs)

	var count int64
	require.NoError(t, db.Model(&models.CustomAttribute{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdateSetRename(t *testing.T) {
	db, _ := newTestHandler(t)
	user := seedUser(t, db, "auth0|alice", "alice")
	set := seedSet(t, db, user, "DMU")

	payload, _ := json.Marshal(map[string]string{"name": "Dominaria United"})
	r := httptest.NewRequest(http.MethodPut, "/api/sets/"+set.PublicID, bytes.NewReader(payload))
	r.SetPathValue("setID", set.PublicID)
	r = authedRequest(r, user.Auth0ID)
	w := httptest.NewRecorder()

	db.UpdateSetByID(w, r)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got models.CardSet
	require.NoError(t, db.Where("public_id = ?", set.PublicID).First(&got).Error)
	assert.Equal(t, "Dominaria United", got.Name)
}

func TestGetSetsForUserReturnsEmptyArray(t *testing.T) {
	db, _ := newTestHandler(t)
	user := seedUser(t, db, "auth0|alice", "alice")

	r := httptest.NewRequest(http.MethodGet, "/api/users/alice/sets", nil)
	r.SetPathValue("nickname", user.Nickname)
	r = authedRequest(r, user.Auth0ID)
	w := httptest.NewRecorder()

	db.GetSetsForUser(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]\n", w.Body.String())
}
