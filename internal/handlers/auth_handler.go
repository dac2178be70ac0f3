package handlers

import (
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"stagefront/internal/models"
	"stagefront/internal/repository"
	"stagefront/internal/services"
)

type AuthHandler struct {
	users     repository.UserRepository
	resets    repository.PasswordResetRepository
	email     services.EmailSender
	jwtSecret string
	expiresIn int64
	appURL    string
}

func NewAuthHandler(users repository.UserRepository, resets repository.PasswordResetRepository, email services.EmailSender, jwtSecret string, expiresIn int64, appURL string) *AuthHandler {
	return &AuthHandler{
		users:     users,
		resets:    resets,
		email:     email,
		jwtSecret: jwtSecret,
		expiresIn: expiresIn,
		appURL:    appURL,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONErrorResponse(w, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
			return
		}
		writeRepoError(w, err, "user")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		writeJSONErrorResponse(w, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
		return
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Duration(h.expiresIn) * time.Second).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.jwtSecret))
	if err != nil {
		log.Error().Err(err).Msg("failed to sign token")
		writeJSONErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to issue token")
		return
	}

	writeJSON(w, http.StatusOK, models.LoginResponse{
		AccessToken: token,
		ExpiresIn:   h.expiresIn,
		Email:       user.Email,
		Name:        user.Name,
		Role:        user.Role,
	})
}

// ForgotPassword always answers 200 with the same body so callers cannot
// probe which emails have accounts.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Error().Err(err).Msg("forgot password lookup failed")
		}
		writeJSONMessage(w, http.StatusOK, "If that account exists, a reset email has been sent")
		return
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		log.Error().Err(err).Msg("failed to generate reset token")
		writeJSONMessage(w, http.StatusOK, "If that account exists, a reset email has been sent")
		return
	}
	plainToken := hex.EncodeToString(raw)

	token := &models.PasswordResetToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		TokenHash: hashResetToken(plainToken),
		ExpiresAt: time.Now().UTC().Add(time.Hour),
		CreatedAt: time.Now().UTC(),
	}
	if err := h.resets.Create(r.Context(), token); err != nil {
		log.Error().Err(err).Msg("failed to store reset token")
		writeJSONMessage(w, http.StatusOK, "If that account exists, a reset email has been sent")
		return
	}

	resetLink := h.appURL + "/admin/reset-password?token=" + plainToken
	body := "A password reset was requested for your account.\n\n" +
		"Reset your password here: " + resetLink + "\n\n" +
		"The link expires in one hour. If you did not request this, ignore this email."
	if err := h.email.Send(user.Email, "Password reset", body); err != nil {
		log.Error().Err(err).Str("email", user.Email).Msg("failed to send reset email")
	}

	writeJSONMessage(w, http.StatusOK, "If that account exists, a reset email has been sent")
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	token, err := h.resets.GetValidByTokenHash(r.Context(), hashResetToken(req.Token))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_token", "Reset token is invalid or expired")
			return
		}
		writeRepoError(w, err, "reset token")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")
		writeJSONErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to reset password")
		return
	}

	if err := h.users.UpdatePasswordHash(r.Context(), token.UserID, string(hash)); err != nil {
		writeRepoError(w, err, "user")
		return
	}

	if err := h.resets.MarkUsed(r.Context(), token.ID, time.Now().UTC()); err != nil {
		log.Warn().Err(err).Msg("failed to mark reset token used")
	}

	writeJSONMessage(w, http.StatusOK, "password updated successfully")
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
