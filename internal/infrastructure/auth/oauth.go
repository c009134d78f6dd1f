package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"

	"github.com/smartwaste/smartwaste-backend/internal/domain/entities"
	"github.com/smartwaste/smartwaste-backend/internal/domain/ports"
	"github.com/smartwaste/smartwaste-backend/internal/infrastructure/config"
)

const (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"
	githubUserURL     = "https://api.github.com/user"
	githubEmailsURL   = "https://api.github.com/user/emails"
)

// ErrMissingProviderEmail indica que o provedor não devolveu email utilizável
var ErrMissingProviderEmail = errors.New("oauth provider returned no verified email")

// OAuthProvider implementa ports.OAuthProvider sobre golang.org/x/oauth2
type OAuthProvider struct {
	kind    entities.OAuthProvider
	config  *oauth2.Config
	profile func(ctx context.Context, client *http.Client) (*ports.OAuthProfile, error)
}

// NewOAuthProviders monta os provedores configurados, indexados pelo nome usado na rota
func NewOAuthProviders(cfg config.OAuthConfig) map[string]ports.OAuthProvider {
	providers := make(map[string]ports.OAuthProvider)

	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		providers["google"] = NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.RedirectURL+"/google/callback")
	}
	if cfg.GitHubClientID != "" && cfg.GitHubClientSecret != "" {
		providers["github"] = NewGitHubProvider(cfg.GitHubClientID, cfg.GitHubClientSecret, cfg.RedirectURL+"/github/callback")
	}

	return providers
}

// NewGoogleProvider cria o provedor Google
func NewGoogleProvider(clientID, clientSecret, redirectURL string) *OAuthProvider {
	return newGoogleProvider(&oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}, googleUserInfoURL)
}

func newGoogleProvider(cfg *oauth2.Config, userInfoURL string) *OAuthProvider {
	return &OAuthProvider{
		kind:   entities.ProviderGoogle,
		config: cfg,
		profile: func(ctx context.Context, client *http.Client) (*ports.OAuthProfile, error) {
			var info struct {
				Sub           string `json:"sub"`
				Email         string `json:"email"`
				EmailVerified bool   `json:"email_verified"`
				Name          string `json:"name"`
			}
			if err := getJSON(ctx, client, userInfoURL, &info); err != nil {
				return nil, err
			}
			if info.Email == "" || !info.EmailVerified {
				return nil, ErrMissingProviderEmail
			}
			return &ports.OAuthProfile{
				Provider:  entities.ProviderGoogle,
				AccountID: info.Sub,
				Email:     info.Email,
				Name:      info.Name,
			}, nil
		},
	}
}

// NewGitHubProvider cria o provedor GitHub
func NewGitHubProvider(clientID, clientSecret, redirectURL string) *OAuthProvider {
	return newGitHubProvider(&oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{"read:user", "user:email"},
		Endpoint:     github.Endpoint,
	}, githubUserURL, githubEmailsURL)
}

func newGitHubProvider(cfg *oauth2.Config, userURL, emailsURL string) *OAuthProvider {
	return &OAuthProvider{
		kind:   entities.ProviderGitHub,
		config: cfg,
		profile: func(ctx context.Context, client *http.Client) (*ports.OAuthProfile, error) {
			var user struct {
				ID    int64  `json:"id"`
				Login string `json:"login"`
				Name  string `json:"name"`
				Email string `json:"email"`
			}
			if err := getJSON(ctx, client, userURL, &user); err != nil {
				return nil, err
			}

			// email público pode estar vazio; busca o primário verificado
			email := user.Email
			if email == "" {
				var emails []struct {
					Email    string `json:"email"`
					Primary  bool   `json:"primary"`
					Verified bool   `json:"verified"`
				}
				if err := getJSON(ctx, client, emailsURL, &emails); err != nil {
					return nil, err
				}
				for _, e := range emails {
					if e.Primary && e.Verified {
						email = e.Email
						break
					}
				}
			}
			if email == "" {
				return nil, ErrMissingProviderEmail
			}

			name := user.Name
			if name == "" {
				name = user.Login
			}
			return &ports.OAuthProfile{
				Provider:  entities.ProviderGitHub,
				AccountID: strconv.FormatInt(user.ID, 10),
				Email:     email,
				Name:      name,
			}, nil
		},
	}
}

// Kind retorna o provedor gravado no usuário
func (p *OAuthProvider) Kind() entities.OAuthProvider {
	return p.kind
}

func (p *OAuthProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state)
}

// Exchange troca o code pelo token e busca o perfil do usuário
func (p *OAuthProvider) Exchange(ctx context.Context, code string) (*ports.OAuthProfile, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("oauth exchange: %w", err)
	}
	return p.profile(ctx, p.config.Client(ctx, token))
}

func getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}
