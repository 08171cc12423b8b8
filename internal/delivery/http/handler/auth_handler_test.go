package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"medical-imaging-backend/internal/delivery/dto"
	"medical-imaging-backend/internal/usecase"
	"medical-imaging-backend/pkg/validator"

	"github.com/gorilla/sessions"
)

type stubAuthUsecase struct {
	taken    map[string]bool
	password string
}

func newStubAuthUsecase() *stubAuthUsecase {
	return &stubAuthUsecase{taken: map[string]bool{}, password: "secret123"}
}

func (s *stubAuthUsecase) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error) {
	if s.taken[req.Username] {
		return nil, usecase.ErrUsernameTaken
	}
	s.taken[req.Username] = true
	return &dto.UserResponse{ID: 1, Username: req.Username, Email: req.Email, Role: "student"}, nil
}

func (s *stubAuthUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	if !s.taken[req.Username] || req.Password != s.password {
		return nil, usecase.ErrInvalidCredentials
	}
	return &dto.TokenResponse{
		AccessToken: "token-123",
		TokenType:   "bearer",
		ExpiresIn:   3600,
		User:        &dto.UserResponse{ID: 1, Username: req.Username, Role: "student"},
	}, nil
}

func (s *stubAuthUsecase) Logout(ctx context.Context, username, tokenID string) error { return nil }

func (s *stubAuthUsecase) OAuthAuthCodeURL(state string) string {
	return "https://github.example/authorize?state=" + state
}

func (s *stubAuthUsecase) OAuthLogin(ctx context.Context, code string) (string, error) {
	return "http://localhost:3000/auth/callback?token=token-123", nil
}

func newAuthTestHandler() (*AuthHandler, *stubAuthUsecase) {
	uc := newStubAuthUsecase()
	store := sessions.NewCookieStore([]byte("session-secret"))
	return NewAuthHandler(uc, validator.NewValidator(), store), uc
}

func TestAuthHandlerSignup(t *testing.T) {
	h, _ := newAuthTestHandler()

	body, _ := json.Marshal(dto.SignupRequest{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	})
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Signup(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthHandlerSignupDuplicate(t *testing.T) {
	h, uc := newAuthTestHandler()
	uc.taken["alice"] = true

	body, _ := json.Marshal(dto.SignupRequest{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	})
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Signup(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthHandlerSignupValidation(t *testing.T) {
	h, _ := newAuthTestHandler()

	body, _ := json.Marshal(dto.SignupRequest{Username: "al", Email: "not-an-email", Password: "123"})
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Signup(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
}

func loginForm(username, password string) *http.Request {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestAuthHandlerLogin(t *testing.T) {
	h, uc := newAuthTestHandler()
	uc.taken["alice"] = true

	rec := httptest.NewRecorder()
	h.Login(rec, loginForm("alice", "secret123"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad envelope: %v", err)
	}
	var token dto.TokenResponse
	if err := json.Unmarshal(env.Data, &token); err != nil {
		t.Fatalf("data is not a token response: %v", err)
	}
	if token.AccessToken != "token-123" || token.TokenType != "bearer" {
		t.Errorf("unexpected token response: %+v", token)
	}
}

func TestAuthHandlerLoginWrongPassword(t *testing.T) {
	h, uc := newAuthTestHandler()
	uc.taken["alice"] = true

	rec := httptest.NewRecorder()
	h.Login(rec, loginForm("alice", "wrong"))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandlerLoginMissingFields(t *testing.T) {
	h, _ := newAuthTestHandler()

	rec := httptest.NewRecorder()
	h.Login(rec, loginForm("", ""))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestOAuthStartSetsStateAndRedirects(t *testing.T) {
	h, _ := newAuthTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/auth/oauth/github", nil)
	rec := httptest.NewRecorder()
	h.OAuthStart(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	location := rec.Header().Get("Location")
	if !strings.Contains(location, "state=") {
		t.Errorf("redirect missing state: %q", location)
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("expected session cookie to be set")
	}
}

func TestOAuthCallbackRejectsBadState(t *testing.T) {
	h, _ := newAuthTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/auth/oauth/github/callback?state=forged&code=abc", nil)
	rec := httptest.NewRecorder()
	h.OAuthCallback(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
