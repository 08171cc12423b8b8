package usecase

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"medical-imaging-backend/config"
	"medical-imaging-backend/internal/delivery/dto"
	"medical-imaging-backend/internal/domain/entity"
	"medical-imaging-backend/internal/infrastructure/oauth"
	"medical-imaging-backend/internal/service"
	"medical-imaging-backend/pkg/jwt"
)

type fakeOAuthProvider struct {
	profile *oauth.Profile
	err     error
}

func (p *fakeOAuthProvider) AuthCodeURL(state string) string {
	return "https://github.example/authorize?state=" + state
}

func (p *fakeOAuthProvider) Exchange(ctx context.Context, code string) (*oauth.Profile, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.profile, nil
}

type authFixture struct {
	uc         AuthUsecase
	users      *fakeUserRepo
	tokens     *fakeTokenStore
	jwtService *jwt.JWTService
	audit      *fakeAuditRepo
}

func newAuthFixture(provider oauth.Provider) *authFixture {
	log := newTestLogger()
	users := newFakeUserRepo()
	tokens := newFakeTokenStore()
	audit := &fakeAuditRepo{}
	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:       "test-secret",
		AccessExpiry: time.Hour,
	})
	uc := NewAuthUsecase(log, users, jwtService, tokens, provider,
		service.NewAuditService(log, audit), "http://localhost:3000/auth/callback")
	return &authFixture{uc: uc, users: users, tokens: tokens, jwtService: jwtService, audit: audit}
}

func TestSignupAssignsStudentRole(t *testing.T) {
	f := newAuthFixture(&fakeOAuthProvider{})

	user, err := f.uc.Signup(context.Background(), &dto.SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	if user.Role != entity.RoleStudent {
		t.Errorf("expected role %q, got %q", entity.RoleStudent, user.Role)
	}
	if user.Username != "alice" || user.Email != "alice@example.com" {
		t.Errorf("unexpected user response: %+v", user)
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	f := newAuthFixture(&fakeOAuthProvider{})
	ctx := context.Background()

	req := &dto.SignupRequest{Username: "alice", Email: "alice@example.com", Password: "secret123"}
	if _, err := f.uc.Signup(ctx, req); err != nil {
		t.Fatalf("first Signup failed: %v", err)
	}

	dup := &dto.SignupRequest{Username: "alice", Email: "other@example.com", Password: "secret456"}
	if _, err := f.uc.Signup(ctx, dup); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestLoginIssuesValidToken(t *testing.T) {
	f := newAuthFixture(&fakeOAuthProvider{})
	ctx := context.Background()

	if _, err := f.uc.Signup(ctx, &dto.SignupRequest{
		Username: "bob", Email: "bob@example.com", Password: "secret123",
	}); err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	resp, err := f.uc.Login(ctx, &dto.LoginRequest{Username: "bob", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.TokenType != "bearer" {
		t.Errorf("expected token type bearer, got %q", resp.TokenType)
	}

	claims, err := f.jwtService.ValidateToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("issued token did not validate: %v", err)
	}
	if claims.Subject != "bob" || claims.Role != entity.RoleStudent {
		t.Errorf("unexpected claims: subject=%q role=%q", claims.Subject, claims.Role)
	}

	active, err := f.tokens.Exists(ctx, "bob", claims.TokenID)
	if err != nil || !active {
		t.Errorf("expected token id to be stored, active=%v err=%v", active, err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthFixture(&fakeOAuthProvider{})
	ctx := context.Background()

	if _, err := f.uc.Signup(ctx, &dto.SignupRequest{
		Username: "bob", Email: "bob@example.com", Password: "secret123",
	}); err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	if _, err := f.uc.Login(ctx, &dto.LoginRequest{Username: "bob", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	f := newAuthFixture(&fakeOAuthProvider{})

	if _, err := f.uc.Login(context.Background(), &dto.LoginRequest{Username: "ghost", Password: "secret123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newAuthFixture(&fakeOAuthProvider{})
	ctx := context.Background()

	if _, err := f.uc.Signup(ctx, &dto.SignupRequest{
		Username: "bob", Email: "bob@example.com", Password: "secret123",
	}); err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	resp, err := f.uc.Login(ctx, &dto.LoginRequest{Username: "bob", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	claims, err := f.jwtService.ValidateToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}

	if err := f.uc.Logout(ctx, "bob", claims.TokenID); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	active, err := f.tokens.Exists(ctx, "bob", claims.TokenID)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if active {
		t.Error("expected token to be revoked after logout")
	}
}

func TestOAuthLoginCreatesStudentAccount(t *testing.T) {
	provider := &fakeOAuthProvider{profile: &oauth.Profile{
		Login: "octocat",
		Email: "octocat@example.com",
	}}
	f := newAuthFixture(provider)

	redirect, err := f.uc.OAuthLogin(context.Background(), "auth-code")
	if err != nil {
		t.Fatalf("OAuthLogin failed: %v", err)
	}

	parsed, err := url.Parse(redirect)
	if err != nil {
		t.Fatalf("redirect URL did not parse: %v", err)
	}
	if !strings.HasPrefix(redirect, "http://localhost:3000/auth/callback?") {
		t.Errorf("unexpected redirect base: %q", redirect)
	}
	q := parsed.Query()
	if q.Get("username") != "octocat" || q.Get("role") != entity.RoleStudent {
		t.Errorf("unexpected redirect params: %v", q)
	}
	if _, err := f.jwtService.ValidateToken(q.Get("token")); err != nil {
		t.Errorf("redirect token did not validate: %v", err)
	}

	user, err := f.users.FindByEmail(context.Background(), "octocat@example.com")
	if err != nil {
		t.Fatalf("expected OAuth user to be created: %v", err)
	}
	if user.Role != entity.RoleStudent {
		t.Errorf("expected role %q, got %q", entity.RoleStudent, user.Role)
	}
}

func TestOAuthLoginReusesExistingAccount(t *testing.T) {
	provider := &fakeOAuthProvider{profile: &oauth.Profile{
		Login: "octocat",
		Email: "alice@example.com",
	}}
	f := newAuthFixture(provider)
	ctx := context.Background()

	if _, err := f.uc.Signup(ctx, &dto.SignupRequest{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	}); err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	redirect, err := f.uc.OAuthLogin(ctx, "auth-code")
	if err != nil {
		t.Fatalf("OAuthLogin failed: %v", err)
	}
	parsed, _ := url.Parse(redirect)
	if got := parsed.Query().Get("username"); got != "alice" {
		t.Errorf("expected existing username alice, got %q", got)
	}

	count, _ := f.users.Count(ctx)
	if count != 1 {
		t.Errorf("expected 1 user, got %d", count)
	}
}
