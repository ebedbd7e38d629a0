package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	apperrors "github.com/yungbote/contentforge-backend/internal/pkg/errors"
	"github.com/yungbote/contentforge-backend/internal/pkg/logger"
	"github.com/yungbote/contentforge-backend/internal/platform/envutil"
)

// TokenProvider hands out a Google OAuth access token for a user. The
// generation services build their API clients per request from it.
type TokenProvider interface {
	AccessToken(ctx context.Context, userID string) (string, error)
}

// TokenStore additionally accepts tokens pushed by the auth endpoint.
type TokenStore interface {
	TokenProvider
	SaveToken(ctx context.Context, userID string, tok SavedToken) error
}

type SavedToken struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	Provider     string
}

// memoryTokenStore keeps pushed tokens in process memory and falls back
// to GOOGLE_ACCESS_TOKEN for users that never pushed one. Expired
// tokens are rejected rather than refreshed.
type memoryTokenStore struct {
	log      *logger.Logger
	fallback string

	mu     sync.RWMutex
	tokens map[string]SavedToken
}

func NewMemoryTokenStore(log *logger.Logger) TokenStore {
	return &memoryTokenStore{
		log:      log.With("service", "TokenStore"),
		fallback: envutil.Str("GOOGLE_ACCESS_TOKEN", ""),
		tokens:   make(map[string]SavedToken),
	}
}

func (ts *memoryTokenStore) SaveToken(ctx context.Context, userID string, tok SavedToken) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("user id required")
	}
	if strings.TrimSpace(tok.AccessToken) == "" {
		return fmt.Errorf("access token required")
	}
	if tok.Provider == "" {
		tok.Provider = "google"
	}

	ts.mu.Lock()
	ts.tokens[userID] = tok
	ts.mu.Unlock()

	ts.log.Info("Saved token", "userID", userID, "provider", tok.Provider, "expiresAt", tok.ExpiresAt)
	return nil
}

func (ts *memoryTokenStore) AccessToken(ctx context.Context, userID string) (string, error) {
	ts.mu.RLock()
	tok, ok := ts.tokens[userID]
	ts.mu.RUnlock()

	if ok {
		if !tok.ExpiresAt.IsZero() && time.Now().After(tok.ExpiresAt) {
			return "", fmt.Errorf("token for user %s expired at %s: %w", userID, tok.ExpiresAt.Format(time.RFC3339), apperrors.ErrUnauthorized)
		}
		return tok.AccessToken, nil
	}

	if ts.fallback != "" {
		return ts.fallback, nil
	}
	return "", fmt.Errorf("no valid token found for user %s: %w", userID, apperrors.ErrUnauthorized)
}
