package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/models"
	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/utils"
)

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

// login handles user login
func (r *Router) login(w http.ResponseWriter, req *http.Request) {
	var loginReq LoginRequest
	if err := json.NewDecoder(req.Body).Decode(&loginReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	var user models.UserAuth
	if err := r.db.Where("email = ?", loginReq.Email).First(&user).Error; err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !user.IsActive {
		respondError(w, http.StatusUnauthorized, "Account disabled")
		return
	}

	if !utils.CheckPasswordHash(loginReq.Password, user.Password) {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	now := time.Now()
	user.LastLogin = &now
	r.db.Save(&user)

	accessToken, refreshToken, err := utils.GenerateTokens(&user, r.cfg)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate tokens")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"tokens": map[string]string{
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
		},
		"user": user,
	})
}

// newRegistrationUser validates a registration payload and builds the account
// record. Registration is open, so new accounts always start as viewer no
// matter what the payload carries; promotions are done by an admin afterwards.
func newRegistrationUser(req RegisterRequest) (models.UserAuth, error) {
	if req.Email == "" || req.Username == "" || len(req.Password) < 8 {
		return models.UserAuth{}, errors.New("email, username and a password of at least 8 characters are required")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return models.UserAuth{}, err
	}

	return models.UserAuth{
		Username: req.Username,
		Password: hash,
		Email:    req.Email,
		Name:     req.Name,
		Role:     "viewer",
	}, nil
}

// register handles user registration
func (r *Router) register(w http.ResponseWriter, req *http.Request) {
	var regReq RegisterRequest
	if err := json.NewDecoder(req.Body).Decode(&regReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := newRegistrationUser(regReq)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := r.db.Create(&user).Error; err != nil {
		respondError(w, http.StatusConflict, "User already exists")
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// logout is a no-op for stateless JWT auth; the client drops its tokens
func (r *Router) logout(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Logged out",
	})
}
