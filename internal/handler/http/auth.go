package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/sheet-viz/internal/logger"
	"github.com/MKhiriev/sheet-viz/internal/utils"
	"github.com/MKhiriev/sheet-viz/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, r, errors.Join(ErrInvalidJSON, err), "Invalid JSON was passed")
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, creds)
	if err != nil {
		writeError(w, r, err, "Registration failed")
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, registeredUser)
	if err != nil {
		writeError(w, r, err, "Registration failed")
		return
	}

	log.Info().Int64("user_id", registeredUser.UserID).Msg("user registered")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.AuthResponse{
		Message: "User registered successfully",
		Token:   token.SignedString,
		User:    registeredUser.Info(),
	}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, r, errors.Join(ErrInvalidJSON, err), "Invalid JSON was passed")
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, creds)
	if err != nil {
		writeError(w, r, err, "Login failed")
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		writeError(w, r, err, "Login failed")
		return
	}

	log.Debug().Int64("user_id", foundUser.UserID).Msg("user successfully logged in")

	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    token.SignedString,
		Path:     "/",
		MaxAge:   int(h.services.AuthService.TokenDuration().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.AuthResponse{
		Message: "Login successful",
		Token:   token.SignedString,
		User:    foundUser.Info(),
	}, http.StatusOK)
}

// logout needs no authentication. The cookie is always cleared; a valid
// token additionally marks its owner offline.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if tokenString, err := tokenFromRequest(r); err == nil {
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err == nil {
			if err = h.services.AuthService.Logout(ctx, token.UserID); err != nil {
				log.Err(err).Int64("user_id", token.UserID).Msg("marking user offline failed")
			}
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	utils.WriteMessage(w, "Logged out", http.StatusOK)
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	profile, err := h.services.AuthService.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "Could not load profile")
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}

// requestUserID reads the caller id stored by the auth middleware and
// answers 401 itself when it is missing.
func requestUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoToken, "Unauthorized")
		return 0, false
	}
	return userID, true
}
