package usecase

import (
	"context"
	"errors"
	"net/url"

	"medical-imaging-backend/internal/converter"
	"medical-imaging-backend/internal/delivery/dto"
	"medical-imaging-backend/internal/domain/entity"
	"medical-imaging-backend/internal/domain/repository"
	"medical-imaging-backend/internal/infrastructure/cache"
	"medical-imaging-backend/internal/infrastructure/oauth"
	"medical-imaging-backend/internal/service"
	"medical-imaging-backend/pkg/jwt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthUsecase interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, username, tokenID string) error
	OAuthAuthCodeURL(state string) string
	OAuthLogin(ctx context.Context, code string) (string, error)
}

type authUsecase struct {
	log          *logrus.Logger
	userRepo     repository.UserRepository
	jwtService   *jwt.JWTService
	tokenStore   cache.TokenStore
	provider     oauth.Provider
	auditService service.AuditService
	frontendURL  string
}

func NewAuthUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	jwtService *jwt.JWTService,
	tokenStore cache.TokenStore,
	provider oauth.Provider,
	auditService service.AuditService,
	frontendURL string,
) AuthUsecase {
	return &authUsecase{
		log:          log,
		userRepo:     userRepo,
		jwtService:   jwtService,
		tokenStore:   tokenStore,
		provider:     provider,
		auditService: auditService,
		frontendURL:  frontendURL,
	}
}

// Signup registers a new account. Every self-service signup gets the
// student role; only an admin can promote afterwards. Duplicate usernames
// are rejected before any write.
func (u *authUsecase) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error) {
	if _, err := u.userRepo.FindByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		u.log.Warnf("Failed to check existing username: %+v", err)
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: string(hashedPassword),
		Role:           entity.RoleStudent,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if isDuplicateKeyError(err, "username") {
			return nil, ErrUsernameTaken
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	u.auditService.Record(ctx, &user.ID, entity.AuditActionUserSignup, entity.JSON{
		"username": user.Username,
	})

	return converter.UserToResponse(user), nil
}

// Login verifies form credentials and issues a bearer token. The token id
// is stored so the token can be revoked before expiry.
func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := u.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		u.log.Warnf("Failed to find user by username: %+v", err)
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, tokenID, err := u.jwtService.GenerateToken(user.Username, user.Role)
	if err != nil {
		u.log.Warnf("Failed to generate token: %+v", err)
		return nil, err
	}

	if err := u.tokenStore.Store(ctx, user.Username, tokenID, u.jwtService.GetAccessExpiry()); err != nil {
		u.log.Warnf("Failed to store token: %+v", err)
		return nil, err
	}

	u.auditService.Record(ctx, &user.ID, entity.AuditActionUserLogin, entity.JSON{
		"username": user.Username,
	})

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(u.jwtService.GetAccessExpiry().Seconds()),
		User:        converter.UserToResponse(user),
	}, nil
}

func (u *authUsecase) Logout(ctx context.Context, username, tokenID string) error {
	return u.tokenStore.Revoke(ctx, username, tokenID)
}

func (u *authUsecase) OAuthAuthCodeURL(state string) string {
	return u.provider.AuthCodeURL(state)
}

// OAuthLogin exchanges the authorization code, upserts the local account
// keyed by the verified email, and returns the frontend redirect URL
// carrying the issued token. OAuth accounts always get the student role;
// promoting to admin is an explicit admin action.
func (u *authUsecase) OAuthLogin(ctx context.Context, code string) (string, error) {
	profile, err := u.provider.Exchange(ctx, code)
	if err != nil {
		u.log.Warnf("OAuth code exchange failed: %+v", err)
		return "", err
	}

	user, err := u.userRepo.FindByEmail(ctx, profile.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			u.log.Warnf("Failed to find user by email: %+v", err)
			return "", err
		}

		// OAuth accounts never authenticate with this password; it only
		// satisfies the not-null column.
		placeholder, err := bcrypt.GenerateFromPassword([]byte("oauth_default"), bcrypt.DefaultCost)
		if err != nil {
			return "", err
		}

		user = &entity.User{
			Username:       profile.Login,
			Email:          profile.Email,
			HashedPassword: string(placeholder),
			Role:           entity.RoleStudent,
		}
		if err := u.userRepo.Create(ctx, user); err != nil {
			if isDuplicateKeyError(err, "username") {
				return "", ErrUsernameTaken
			}
			u.log.Warnf("Failed to create OAuth user: %+v", err)
			return "", err
		}
	}

	token, tokenID, err := u.jwtService.GenerateToken(user.Username, user.Role)
	if err != nil {
		u.log.Warnf("Failed to generate token: %+v", err)
		return "", err
	}

	if err := u.tokenStore.Store(ctx, user.Username, tokenID, u.jwtService.GetAccessExpiry()); err != nil {
		u.log.Warnf("Failed to store token: %+v", err)
		return "", err
	}

	u.auditService.Record(ctx, &user.ID, entity.AuditActionUserOAuthLogin, entity.JSON{
		"username": user.Username,
	})

	params := url.Values{}
	params.Set("token", token)
	params.Set("username", user.Username)
	params.Set("email", user.Email)
	params.Set("role", user.Role)

	return u.frontendURL + "?" + params.Encode(), nil
}
