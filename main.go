package main

import (
	"log"
	"net/http"
	"os"

	"github.com/draftdex/draftdex-api/config"
	"github.com/draftdex/draftdex-api/handlers"
	"github.com/draftdex/draftdex-api/middleware"
	"github.com/draftdex/draftdex-api/storage"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func init() {
	// Load .env file if not in production environment
	if os.Getenv("RAILWAY_ENVIRONMENT_NAME") == "" {
		err := godotenv.Load()
		if err != nil {
			log.Printf("Warning: .env file not found, environment variables might not be loaded: %v", err)
		}
	}
}

func main() {
	// Initialize database connection
	config.Connect()
	authMiddleware := middleware.EnsureValidToken()

	images, err := storage.NewS3Store(storage.S3Config{
		Region:    config.Env.S3Region,
		Bucket:    config.Env.S3Bucket,
		AccessKey: config.Env.S3AccessKey,
		SecretKey: config.Env.S3SecretKey,
		Endpoint:  config.Env.S3Endpoint,
		BaseURL:   config.Env.S3BaseURL,
	})
	if err != nil {
		log.Fatalf("Failed to set up image storage: %v", err)
	}

	DBHandler := &handlers.DBHandler{DB: config.Database, Images: images}
	mux := http.NewServeMux()

	// Set
	mux.HandleFunc("GET /api/sets/{setID}", DBHandler.GetSetByID)
	mux.HandleFunc("POST /api/sets", middleware.SyncUserMiddleware(DBHandler.CreateCardSet))
	mux.HandleFunc("PUT /api/sets/{setID}", middleware.SyncUserMiddleware(DBHandler.UpdateSetByID))
	mux.HandleFunc("DELETE /api/sets/{setID}", middleware.SyncUserMiddleware(DBHandler.DeleteSetByID))

	// User
	mux.HandleFunc("GET /api/users/{nickname}/sets", DBHandler.GetSetsForUser)
	mux.HandleFunc("GET /api/users/{nickname}", DBHandler.GetUserByNickname)
	mux.HandleFunc("POST /api/users", DBHandler.AddUser)

	// Cards
	mux.HandleFunc("POST /api/sets/{setID}/cards", middleware.SyncUserMiddleware(DBHandler.UploadCard))
	mux.HandleFunc("GET /api/sets/{setID}/cards", DBHandler.GetCardsForSet)
	mux.HandleFunc("GET /api/sets/{setID}/cards/{cardID}", middleware.SyncUserMiddleware(DBHandler.GetCardByID))
	mux.HandleFunc("PUT /api/sets/{setID}/cards/{cardID}", middleware.SyncUserMiddleware(DBHandler.UpdateCardByID))
	mux.HandleFunc("DELETE /api/sets/{setID}/cards/{cardID}", middleware.SyncUserMiddleware(DBHandler.DeleteCardByID))
	mux.HandleFunc("PUT /api/sets/{setID}/cards/{cardID}/back", middleware.SyncUserMiddleware(DBHandler.UploadCardBackImage))

	// Card commands
	mux.HandleFunc("PUT /api/sets/{setID}/cards/{cardID}/rating", middleware.SyncUserMiddleware(DBHandler.SetCardRating))
	mux.HandleFunc("PUT /api/sets/{setID}/cards/{cardID}/manacost", middleware.SyncUserMiddleware(DBHandler.SetCardManaCost))
	mux.HandleFunc("POST /api/sets/{setID}/cards/{cardID}/bomb", middleware.SyncUserMiddleware(DBHandler.ToggleCardBomb))
	mux.HandleFunc("POST /api/sets/{setID}/cards/{cardID}/attributes/{attributeID}", middleware.SyncUserMiddleware(DBHandler.ToggleCardAttribute))
	mux.HandleFunc("POST /api/sets/{setID}/cards/bulk", middleware.SyncUserMiddleware(DBHandler.BulkAssign))

	// Custom attributes
	mux.HandleFunc("GET /api/attributes", middleware.SyncUserMiddleware(DBHandler.GetAttributes))
	mux.HandleFunc("POST /api/attributes", middleware.SyncUserMiddleware(DBHandler.CreateAttribute))
	mux.HandleFunc("PUT /api/attributes/{attributeID}", middleware.SyncUserMiddleware(DBHandler.UpdateAttributeByID))
	mux.HandleFunc("DELETE /api/attributes/{attributeID}", middleware.SyncUserMiddleware(DBHandler.DeleteAttributeByID))

	// Configure CORS with specific options
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "https://draftdex.vercel.app"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(authMiddleware(mux))

	// Server configuration

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // fallback port for local development
	}
	serverAddr := "0.0.0.0:" + port

	http.ListenAndServe(serverAddr, corsHandler)
}
