package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/draftdex/draftdex-api/middleware"
	"github.com/draftdex/draftdex-api/models"
)

// fakeImageStore records uploads and deletions instead of talking to S3
type fakeImageStore struct {
	uploads int
	failOn  int // when > 0, the nth upload returns an error
	deleted []string
}

func (f *fakeImageStore) Upload(ctx context.Context, key string, contentType string, body io.Reader) (string, error) {
	f.uploads++
	if f.failOn > 0 && f.uploads == f.failOn {
		return "", errors.New("bucket unavailable")
	}
	return "https://img.test/" + key, nil
}

func (f *fakeImageStore) Delete(ctx context.Context, url string) error {
	f.deleted = append(f.deleted, url)
	return nil
}

func newTestHandler(t *testing.T) (*DBHandler, *fakeImageStore) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A pooled second connection would see a different in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.CardSet{}, &models.Card{}, &models.CustomAttribute{}))

	images := &fakeImageStore{}
	return &DBHandler{DB: db, Images: images}, images
}

// authedRequest attaches validated Auth0 claims the way the JWT middleware
// would
func authedRequest(r *http.Request, auth0ID string) *http.Request {
	claims := &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{Subject: auth0ID},
		CustomClaims:     &middleware.CustomClaims{Nickname: "tester"},
	}
	ctx := context.WithValue(r.Context(), jwtmiddleware.ContextKey{}, claims)
	return r.WithContext(ctx)
}

func seedUser(t *testing.T, db *DBHandler, auth0ID, nickname string) models.User {
	t.Helper()
	user := models.User{Auth0ID: auth0ID, Nickname: nickname}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedSet(t *testing.T, db *DBHandler, user models.User, name string) models.CardSet {
	t.Helper()
	publicID, err := gonanoid.New()
	require.NoError(t, err)
	set := models.CardSet{Name: name, UserID: user.ID, PublicID: publicID}
	require.NoError(t, db.Create(&set).Error)
	return set
}

func seedCard(t *testing.T, db *DBHandler, set models.CardSet, card models.Card) models.Card {
	t.Helper()
	publicID, err := gonanoid.New()
	require.NoError(t, err)
	card.PublicID = publicID
	card.SetID = set.ID
	if card.Colors == nil {
		card.Colors = models.StringList{models.ColorRed}
	}
	if card.AttributeIDs == nil {
		card.AttributeIDs = models.StringList{}
	}
	if card.ImageURL == "" {
		card.ImageURL = "https://img.test/cards/" + publicID
	}
	require.NoError(t, db.Create(&card).Error)
	return card
}
