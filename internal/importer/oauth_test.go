package importer

import (
	"testing"
	"time"

	"enduro/internal/store"
	"golang.org/x/oauth2"
)

func TestNewOAuthConfig(t *testing.T) {
	cfg := NewOAuthConfig(OAuthConfig{ClientID: "id", ClientSecret: "secret", RedirectURL: "http://localhost/cb"})
	if cfg.Endpoint.AuthURL != AuthURL || cfg.Endpoint.TokenURL != TokenURL {
		t.Errorf("got endpoint %+v", cfg.Endpoint)
	}
	if cfg.ClientID != "id" || cfg.ClientSecret != "secret" {
		t.Errorf("got %+v", cfg)
	}
}

func TestSecretsTokenSourcePersistsRefreshedToken(t *testing.T) {
	repo, err := store.NewRepository(t.TempDir(), store.DefaultTunables())
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	// A token that's already expired forces the oauth2 TokenSource to
	// attempt a refresh; since we can't hit the network in this test,
	// use a still-valid token instead to exercise the persist-on-read path.
	expiry := time.Now().Add(time.Hour)
	secrets := &store.Secrets{
		Header:               store.NewHeader(string(store.KindSecrets)),
		ProviderClientID:     "id",
		ProviderClientSecret: "secret",
		ProviderAccessToken:  "access-tok",
		ProviderRefreshToken: "refresh-tok",
		ProviderTokenExpiry:  &expiry,
	}
	cfg := NewOAuthConfig(OAuthConfig{ClientID: "id", ClientSecret: "secret"})
	src := NewSecretsTokenSource(repo, cfg, secrets)

	tok, err := src.Token()
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if tok.AccessToken != "access-tok" {
		t.Errorf("access token = %q, want access-tok", tok.AccessToken)
	}

	persisted, err := store.Read[store.Secrets, *store.Secrets](repo, store.KindSecrets, "")
	if err != nil {
		t.Fatalf("Read persisted secrets: %v", err)
	}
	if persisted.ProviderAccessToken != "access-tok" {
		t.Errorf("persisted access token = %q, want access-tok", persisted.ProviderAccessToken)
	}
}

func TestExtractAthleteID(t *testing.T) {
	raw := map[string]interface{}{
		"athlete": map[string]interface{}{"id": float64(42)},
	}
	tok := (&oauth2.Token{AccessToken: "x"}).WithExtra(raw)
	if got := ExtractAthleteID(tok); got != 42 {
		t.Errorf("got %d, want 42", got)
	}
}

func TestExtractAthleteIDMissing(t *testing.T) {
	tok := &oauth2.Token{AccessToken: "x"}
	if got := ExtractAthleteID(tok); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
}
