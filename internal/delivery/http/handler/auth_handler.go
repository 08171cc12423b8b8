package handler

import (
	"encoding/json"
	"net/http"

	"medical-imaging-backend/internal/delivery/dto"
	"medical-imaging-backend/internal/delivery/http/middleware"
	"medical-imaging-backend/internal/usecase"
	"medical-imaging-backend/pkg/response"
	"medical-imaging-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const oauthSessionName = "oauth_session"

type AuthHandler struct {
	authUsecase  usecase.AuthUsecase
	validator    *validator.CustomValidator
	sessionStore sessions.Store
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, validator *validator.CustomValidator, sessionStore sessions.Store) *AuthHandler {
	return &AuthHandler{
		authUsecase:  authUsecase,
		validator:    validator,
		sessionStore: sessionStore,
	}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.authUsecase.Signup(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrUsernameTaken:
			response.Error(w, http.StatusBadRequest, "Username already exists", nil)
		default:
			response.InternalServerError(w, "Failed to create user")
		}
		return
	}

	response.Success(w, http.StatusCreated, "User created successfully", user)
}

// Login accepts form-encoded credentials and returns a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid form data", nil)
		return
	}

	req := dto.LoginRequest{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	token, err := h.authUsecase.Login(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidCredentials:
			response.Unauthorized(w, "Invalid credentials")
		default:
			response.InternalServerError(w, "Failed to login")
		}
		return
	}

	response.Success(w, http.StatusOK, "Login successful", token)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}
	tokenID, ok := middleware.GetTokenIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	if err := h.authUsecase.Logout(r.Context(), user.Username, tokenID); err != nil {
		response.InternalServerError(w, "Failed to logout")
		return
	}

	response.Success(w, http.StatusOK, "Logged out successfully", nil)
}

// OAuthStart begins the redirect dance. The state nonce lives in a
// server-side session cookie until the callback.
func (h *AuthHandler) OAuthStart(w http.ResponseWriter, r *http.Request) {
	state := uuid.New().String()

	session, _ := h.sessionStore.Get(r, oauthSessionName)
	session.Values["state"] = state
	if err := session.Save(r, w); err != nil {
		response.InternalServerError(w, "Failed to save session")
		return
	}

	http.Redirect(w, r, h.authUsecase.OAuthAuthCodeURL(state), http.StatusFound)
}

// OAuthCallback completes the flow and redirects to the frontend with the
// token in the query string.
func (h *AuthHandler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	session, _ := h.sessionStore.Get(r, oauthSessionName)
	expectedState, _ := session.Values["state"].(string)
	delete(session.Values, "state")
	_ = session.Save(r, w)

	if expectedState == "" || r.URL.Query().Get("state") != expectedState {
		response.Unauthorized(w, "Invalid OAuth state")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		response.Error(w, http.StatusBadRequest, "Missing authorization code", nil)
		return
	}

	redirectURL, err := h.authUsecase.OAuthLogin(r.Context(), code)
	if err != nil {
		response.InternalServerError(w, "OAuth login failed")
		return
	}

	http.Redirect(w, r, redirectURL, http.StatusFound)
}
