package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/oauth2"

	"github.com/smartwaste/smartwaste-backend/internal/domain/entities"
	"github.com/smartwaste/smartwaste-backend/internal/infrastructure/config"
)

// fakeProviderServer responde token e perfil; routes mapeia path -> corpo JSON
func fakeProviderServer(t *testing.T, routes map[string]any) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "access-123",
			"token_type":   "bearer",
		})
	})
	for path, body := range routes {
		body := body
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer access-123" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(body)
		})
	}

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func testOAuthConfig(server *httptest.Server) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost/callback",
		Endpoint: oauth2.Endpoint{
			AuthURL:   server.URL + "/authorize",
			TokenURL:  server.URL + "/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

func TestGoogleProvider_Exchange(t *testing.T) {
	server := fakeProviderServer(t, map[string]any{
		"/userinfo": map[string]any{"sub": "g-1", "email": "mario@gmail.com", "email_verified": true, "name": "Mario"},
	})
	provider := newGoogleProvider(testOAuthConfig(server), server.URL+"/userinfo")

	profile, err := provider.Exchange(context.Background(), "code")
	if err != nil {
		t.Fatalf("Exchange falhou: %v", err)
	}
	if profile.Provider != entities.ProviderGoogle || profile.AccountID != "g-1" || profile.Email != "mario@gmail.com" {
		t.Errorf("perfil inesperado: %+v", profile)
	}
}

func TestGoogleProvider_UnverifiedEmail(t *testing.T) {
	server := fakeProviderServer(t, map[string]any{
		"/userinfo": map[string]any{"sub": "g-1", "email": "mario@gmail.com", "email_verified": false},
	})
	provider := newGoogleProvider(testOAuthConfig(server), server.URL+"/userinfo")

	_, err := provider.Exchange(context.Background(), "code")
	if !errors.Is(err, ErrMissingProviderEmail) {
		t.Errorf("esperava ErrMissingProviderEmail, obteve %v", err)
	}
}

func TestGitHubProvider_FallsBackToPrimaryEmail(t *testing.T) {
	server := fakeProviderServer(t, map[string]any{
		"/user": map[string]any{"id": 42, "login": "mrossi", "name": "", "email": ""},
		"/user/emails": []map[string]any{
			{"email": "old@example.com", "primary": false, "verified": true},
			{"email": "mario@example.com", "primary": true, "verified": true},
		},
	})
	provider := newGitHubProvider(testOAuthConfig(server), server.URL+"/user", server.URL+"/user/emails")

	profile, err := provider.Exchange(context.Background(), "code")
	if err != nil {
		t.Fatalf("Exchange falhou: %v", err)
	}
	if profile.AccountID != "42" || profile.Email != "mario@example.com" || profile.Name != "mrossi" {
		t.Errorf("perfil inesperado: %+v", profile)
	}
}

func TestOAuthProvider_AuthCodeURLCarriesState(t *testing.T) {
	provider := NewGoogleProvider("client", "secret", "http://localhost/api/auth/google/callback")
	url := provider.AuthCodeURL("abc")
	if !strings.Contains(url, "state=abc") || !strings.Contains(url, "client_id=client") {
		t.Errorf("URL inesperada: %s", url)
	}
}

func TestNewOAuthProviders_OnlyConfigured(t *testing.T) {
	providers := NewOAuthProviders(config.OAuthConfig{
		GoogleClientID:     "id",
		GoogleClientSecret: "secret",
		RedirectURL:        "http://localhost/api/auth",
	})
	if _, ok := providers["google"]; !ok {
		t.Error("google deveria estar configurado")
	}
	if _, ok := providers["github"]; ok {
		t.Error("github não deveria estar configurado")
	}
}
