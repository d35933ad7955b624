package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/draftdex/draftdex-api/auth"
	"github.com/draftdex/draftdex-api/config"
	"github.com/draftdex/draftdex-api/models"
)

// GET /api/users/{nickname}
func (db *DBHandler) GetUserByNickname(w http.ResponseWriter, r *http.Request) {
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

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(user); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// POST /api/users
//
// Service-to-service registration path: creates the user row if needed and
// hands back a signed cookie token.
func (db *DBHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	user := new(models.User)
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&user); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Println("Decoding error:", err)
		return
	}

	if user.Nickname == "" {
		http.Error(w, "Nickname is required", http.StatusBadRequest)
		return
	}

	// Check if user already exists
	var existingUser models.User
	result := db.Where("nickname = ?", user.Nickname).First(&existingUser)
	if result.Error == nil {
		// User already exists, return 200 status to prevent frontend errors
		tokenString, err := auth.CreateToken(existingUser.Nickname)
		if err != nil {
			http.Error(w, "Failed to generate token", http.StatusInternalServerError)
			log.Println("Token generation error:", err)
			return
		}

		setAuthCookie(w, tokenString)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"message": "User already exists!",
		})
		log.Printf("User %s already exists\n", existingUser.Nickname)
		return
	}

	// Perform the database creation with error checking
	result = db.Create(&user)
	if result.Error != nil {
		http.Error(w, "Failed to create user", http.StatusInternalServerError)
		log.Println("Database creation error:", result.Error)
		return
	}

	tokenString, err := auth.CreateToken(user.Nickname)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		log.Println("Token generation error:", err)
		return
	}

	setAuthCookie(w, tokenString)

	response := map[string]interface{}{
		"user": user,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(response)
	log.Println("User created successfully")
}

func setAuthCookie(w http.ResponseWriter, tokenString string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    tokenString,
		Path:     "/",
		HttpOnly: true,
		Domain:   config.Env.Domain,
		Secure:   config.Env.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400, // 24 hours
	})
}
