package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"medical-imaging-backend/config"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

// Profile is the external identity returned by a provider after a
// successful code exchange.
type Profile struct {
	Login string
	Email string
}

// Provider performs the server side of an OAuth authorization-code flow.
type Provider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*Profile, error)
}

// GitHubProvider exchanges authorization codes against GitHub and
// resolves the user's primary email from the emails endpoint.
type GitHubProvider struct {
	config *oauth2.Config
	apiURL string
}

func NewGitHubProvider(cfg config.OAuthConfig) *GitHubProvider {
	return &GitHubProvider{
		config: &oauth2.Config{
			ClientID:     cfg.GitHubClientID,
			ClientSecret: cfg.GitHubClientSecret,
			RedirectURL:  cfg.GitHubRedirectURL,
			Scopes:       []string{"user:email"},
			Endpoint:     github.Endpoint,
		},
		apiURL: "https://api.github.com",
	}
}

func (p *GitHubProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state)
}

func (p *GitHubProvider) Exchange(ctx context.Context, code string) (*Profile, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	client := p.config.Client(ctx, token)

	var user struct {
		Login string `json:"login"`
	}
	if err := p.getJSON(client, "/user", &user); err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	if user.Login == "" {
		return nil, errors.New("provider returned no login")
	}

	var emails []struct {
		Email   string `json:"email"`
		Primary bool   `json:"primary"`
	}
	if err := p.getJSON(client, "/user/emails", &emails); err != nil {
		return nil, fmt.Errorf("failed to fetch user emails: %w", err)
	}

	primary := ""
	for _, e := range emails {
		if e.Primary {
			primary = e.Email
			break
		}
	}
	if primary == "" {
		primary = fmt.Sprintf("%s@users.noreply.github.com", user.Login)
	}

	return &Profile{Login: user.Login, Email: primary}, nil
}

func (p *GitHubProvider) getJSON(client *http.Client, path string, out interface{}) error {
	resp, err := client.Get(p.apiURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
