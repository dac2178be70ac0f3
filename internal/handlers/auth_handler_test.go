package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"stagefront/internal/models"
	"stagefront/internal/repository"
)

type mockUserRepo struct {
	user        *models.User
	updatedHash string
}

var _ repository.UserRepository = (*mockUserRepo)(nil)

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error { return nil }

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.user == nil || m.user.ID != id {
		return nil, sql.ErrNoRows
	}
	return m.user, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.user == nil || !strings.EqualFold(m.user.Email, email) {
		return nil, sql.ErrNoRows
	}
	return m.user, nil
}

func (m *mockUserRepo) ListAll(ctx context.Context) ([]models.User, error) { return nil, nil }
func (m *mockUserRepo) SetRole(ctx context.Context, id string, role string) error {
	return nil
}

func (m *mockUserRepo) UpdatePasswordHash(ctx context.Context, userID string, passwordHash string) error {
	m.updatedHash = passwordHash
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error { return nil }

type mockResetRepo struct {
	created *models.PasswordResetToken
	valid   *models.PasswordResetToken
	usedID  string
}

var _ repository.PasswordResetRepository = (*mockResetRepo)(nil)

func (m *mockResetRepo) Create(ctx context.Context, token *models.PasswordResetToken) error {
	m.created = token
	return nil
}

func (m *mockResetRepo) GetValidByTokenHash(ctx context.Context, tokenHash string) (*models.PasswordResetToken, error) {
	if m.valid == nil || m.valid.TokenHash != tokenHash {
		return nil, sql.ErrNoRows
	}
	return m.valid, nil
}

func (m *mockResetRepo) MarkUsed(ctx context.Context, id string, usedAt time.Time) error {
	m.usedID = id
	return nil
}

type fakeEmailSender struct {
	to   string
	body string
}

func (f *fakeEmailSender) Send(to string, subject string, body string) error {
	f.to = to
	f.body = body
	return nil
}

func testUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return &models.User{
		ID:           "u-1",
		Email:        "admin@example.com",
		Name:         "Admin",
		Role:         models.RoleAdmin,
		PasswordHash: string(hash),
	}
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestLoginIssuesTokenWithRoleClaim(t *testing.T) {
	users := &mockUserRepo{user: testUser(t, "hunter2secret")}
	h := NewAuthHandler(users, &mockResetRepo{}, &fakeEmailSender{}, "test-secret", 3600, "http://localhost:3000")

	w := postJSON(t, h.Login, "/auth/login", `{"email":"admin@example.com","password":"hunter2secret"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}

	var resp models.LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Role != models.RoleAdmin {
		t.Fatalf("expected admin role, got %q", resp.Role)
	}

	token, err := jwt.Parse(resp.AccessToken, func(tok *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token does not parse: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["sub"] != "u-1" || claims["role"] != models.RoleAdmin {
		t.Fatalf("unexpected claims: %v", claims)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	users := &mockUserRepo{user: testUser(t, "hunter2secret")}
	h := NewAuthHandler(users, &mockResetRepo{}, &fakeEmailSender{}, "test-secret", 3600, "http://localhost:3000")

	w := postJSON(t, h.Login, "/auth/login", `{"email":"admin@example.com","password":"wrong-password"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d (%s)", w.Code, w.Body.String())
	}
}

func TestForgotPasswordHidesUnknownAccounts(t *testing.T) {
	resets := &mockResetRepo{}
	email := &fakeEmailSender{}
	h := NewAuthHandler(&mockUserRepo{}, resets, email, "test-secret", 3600, "http://localhost:3000")

	w := postJSON(t, h.ForgotPassword, "/auth/forgot-password", `{"email":"nobody@example.com"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	if resets.created != nil {
		t.Fatal("no token should be created for unknown accounts")
	}
	if email.to != "" {
		t.Fatal("no email should be sent for unknown accounts")
	}
}

func TestForgotPasswordSendsResetLink(t *testing.T) {
	users := &mockUserRepo{user: testUser(t, "hunter2secret")}
	resets := &mockResetRepo{}
	email := &fakeEmailSender{}
	h := NewAuthHandler(users, resets, email, "test-secret", 3600, "http://localhost:3000")

	w := postJSON(t, h.ForgotPassword, "/auth/forgot-password", `{"email":"admin@example.com"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	if resets.created == nil || resets.created.UserID != "u-1" {
		t.Fatalf("expected stored token for u-1, got %+v", resets.created)
	}
	if email.to != "admin@example.com" || !strings.Contains(email.body, "reset-password?token=") {
		t.Fatalf("unexpected email: to=%q body=%q", email.to, email.body)
	}
	// Only the hash is stored, never the token itself.
	if strings.Contains(email.body, resets.created.TokenHash) {
		t.Fatal("email must not contain the stored token hash")
	}
}

func TestResetPasswordUpdatesHashAndConsumesToken(t *testing.T) {
	users := &mockUserRepo{user: testUser(t, "hunter2secret")}
	resets := &mockResetRepo{
		valid: &models.PasswordResetToken{
			ID:        "t-1",
			UserID:    "u-1",
			TokenHash: hashResetToken("plain-token"),
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}
	h := NewAuthHandler(users, resets, &fakeEmailSender{}, "test-secret", 3600, "http://localhost:3000")

	w := postJSON(t, h.ResetPassword, "/auth/reset-password", `{"token":"plain-token","new_password":"brand-new-pass"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	if users.updatedHash == "" {
		t.Fatal("expected password hash update")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(users.updatedHash), []byte("brand-new-pass")); err != nil {
		t.Fatalf("stored hash does not match new password: %v", err)
	}
	if resets.usedID != "t-1" {
		t.Fatalf("expected token t-1 marked used, got %q", resets.usedID)
	}
}

func TestResetPasswordRejectsUnknownToken(t *testing.T) {
	h := NewAuthHandler(&mockUserRepo{}, &mockResetRepo{}, &fakeEmailSender{}, "test-secret", 3600, "http://localhost:3000")

	w := postJSON(t, h.ResetPassword, "/auth/reset-password", `{"token":"bogus","new_password":"brand-new-pass"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d (%s)", w.Code, w.Body.String())
	}
}
