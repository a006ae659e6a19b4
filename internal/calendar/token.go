package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/data/entity"
	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/data/repository"
	"github.com/dustinvannguyen13-max/sparkandmend-api/pkg/utils"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const googleTokenEndpoint = "https://oauth2.googleapis.com/token"

const tokenCacheKey = "google_access_token"

// TokenSource supplies a valid Google access token, refreshing through the
// stored integration record when the cached one is near expiry. Explicitly
// constructed and passed in, no package-level state.
type TokenSource struct {
	clientID     string
	clientSecret string
	repo         repository.IntegrationRepository
	cache        *gocache.Cache
	http         *http.Client
	log          *zap.Logger
}

func NewTokenSource(cfg utils.GoogleConfig, repo repository.IntegrationRepository, log *zap.Logger) *TokenSource {
	return &TokenSource{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		repo:         repo,
		cache:        gocache.New(30*time.Minute, 10*time.Minute),
		http:         &http.Client{Timeout: 15 * time.Second},
		log:          log.With(zap.String("client", "google_oauth")),
	}
}

// Token returns a usable access token.
func (t *TokenSource) Token(ctx context.Context) (string, error) {
	if cached, found := t.cache.Get(tokenCacheKey); found {
		return cached.(string), nil
	}

	integration, err := t.repo.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("load google integration: %w", err)
	}
	if integration == nil || !integration.Connected || integration.RefreshToken == "" {
		return "", fmt.Errorf("google calendar not connected")
	}

	// Stored token still has headroom, use it as-is.
	if integration.AccessToken != "" && time.Until(integration.TokenExpiry) > time.Minute {
		t.cacheToken(integration.AccessToken, integration.TokenExpiry)
		return integration.AccessToken, nil
	}

	refreshed, expiry, err := t.refresh(ctx, integration.RefreshToken)
	if err != nil {
		return "", err
	}

	integration.AccessToken = refreshed
	integration.TokenExpiry = expiry
	if err := t.repo.Save(ctx, integration); err != nil {
		// The refreshed token is still good for this request.
		t.log.Warn("Failed to persist refreshed google token", zap.Error(err))
	}

	t.cacheToken(refreshed, expiry)
	return refreshed, nil
}

// Exchange trades an OAuth authorization code for tokens and stores them.
func (t *TokenSource) Exchange(ctx context.Context, code, redirectURI string) error {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", redirectURI)
	form.Set("client_id", t.clientID)
	form.Set("client_secret", t.clientSecret)

	tokens, err := t.tokenRequest(ctx, form)
	if err != nil {
		return fmt.Errorf("exchange authorization code: %w", err)
	}

	integration := &entity.GoogleIntegration{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		TokenExpiry:  time.Now().Add(time.Duration(tokens.ExpiresIn) * time.Second),
		Connected:    true,
	}

	if err := t.repo.Save(ctx, integration); err != nil {
		return fmt.Errorf("store google integration: %w", err)
	}

	t.cache.Delete(tokenCacheKey)
	t.log.Info("Google calendar connected")
	return nil
}

func (t *TokenSource) refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	form.Set("client_id", t.clientID)
	form.Set("client_secret", t.clientSecret)

	tokens, err := t.tokenRequest(ctx, form)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("refresh google token: %w", err)
	}

	expiry := time.Now().Add(time.Duration(tokens.ExpiresIn) * time.Second)
	return tokens.AccessToken, expiry, nil
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

func (t *TokenSource) tokenRequest(ctx context.Context, form url.Values) (*tokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, googleTokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token endpoint status %d: %s", resp.StatusCode, body)
	}

	var tokens tokenResponse
	if err := json.Unmarshal(body, &tokens); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	if tokens.AccessToken == "" {
		return nil, fmt.Errorf("token endpoint returned no access token")
	}

	return &tokens, nil
}

func (t *TokenSource) cacheToken(token string, expiry time.Time) {
	ttl := time.Until(expiry) - time.Minute
	if ttl <= 0 {
		return
	}
	t.cache.Set(tokenCacheKey, token, ttl)
}
