// Package importer is the activity-provider adapter: OAuth token
// management, rate-limited HTTP fetch, and the pipeline that normalizes a
// provider record into a stored Activity. Its only writes are the final
// activity write and the token write into the secrets document — the
// importer is the only suspension point the core depends on.
package importer

import (
	"context"

	"enduro/internal/store"
	"golang.org/x/oauth2"
)

// AuthURL/TokenURL are the provider's OAuth endpoints.
const (
	AuthURL  = "https://www.strava.com/oauth/authorize"
	TokenURL = "https://www.strava.com/oauth/token"
)

// Scopes requested from the provider.
var Scopes = []string{"read,activity:read_all"}

// OAuthConfig holds the provider OAuth client credentials.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// NewOAuthConfig builds an oauth2.Config from OAuthConfig.
func NewOAuthConfig(cfg OAuthConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  AuthURL,
			TokenURL: TokenURL,
		},
		RedirectURL: cfg.RedirectURL,
		Scopes:      Scopes,
	}
}

// SecretsTokenSource adapts an oauth2.TokenSource whose refreshed tokens
// are persisted into the store.Secrets document, so a refresh never needs
// a caller-supplied callback beyond the repository. Refresh failures are
// surfaced by returning the underlying error as-is.
type SecretsTokenSource struct {
	repo   *store.Repository
	config *oauth2.Config
	source oauth2.TokenSource
}

// NewSecretsTokenSource builds a TokenSource seeded from the repository's
// persisted secrets document.
func NewSecretsTokenSource(repo *store.Repository, config *oauth2.Config, secrets *store.Secrets) *SecretsTokenSource {
	token := &oauth2.Token{
		AccessToken:  secrets.ProviderAccessToken,
		RefreshToken: secrets.ProviderRefreshToken,
	}
	if secrets.ProviderTokenExpiry != nil {
		token.Expiry = *secrets.ProviderTokenExpiry
	}
	return &SecretsTokenSource{
		repo:   repo,
		config: config,
		source: config.TokenSource(context.Background(), token),
	}
}

// Token returns a valid token, refreshing it when it has expired, and
// writes the current token back to the secrets document on every call.
func (s *SecretsTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.source.Token()
	if err != nil {
		return nil, err
	}

	secrets, loadErr := store.Read[store.Secrets, *store.Secrets](s.repo, store.KindSecrets, "")
	if loadErr != nil {
		secrets = &store.Secrets{Header: store.NewHeader(string(store.KindSecrets))}
	}
	secrets.ProviderClientID = s.config.ClientID
	secrets.ProviderClientSecret = s.config.ClientSecret
	secrets.ProviderAccessToken = token.AccessToken
	secrets.ProviderRefreshToken = token.RefreshToken
	expiry := token.Expiry
	secrets.ProviderTokenExpiry = &expiry
	if err := store.Write[store.Secrets, *store.Secrets](s.repo, store.KindSecrets, "", secrets); err != nil {
		return nil, err
	}

	return token, nil
}

// ExtractAthleteID pulls the athlete id the provider embeds in the initial
// token exchange response.
func ExtractAthleteID(token *oauth2.Token) int64 {
	if athlete, ok := token.Extra("athlete").(map[string]interface{}); ok {
		if id, ok := athlete["id"].(float64); ok {
			return int64(id)
		}
	}
	return 0
}
