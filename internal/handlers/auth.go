package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yungbote/contentforge-backend/internal/services"
)

type AuthHandler struct {
	tokens services.TokenStore
}

func NewAuthHandler(tokens services.TokenStore) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

type saveTokenRequest struct {
	UserID       string `json:"user_id" binding:"required"`
	AccessToken  string `json:"access_token" binding:"required"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
	Provider     string `json:"provider"`
}

func (ah *AuthHandler) SaveToken(c *gin.Context) {
	var req saveTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	var expiresAt time.Time
	if req.ExpiresAt > 0 {
		expiresAt = time.Unix(req.ExpiresAt, 0)
	}

	err := ah.tokens.SaveToken(c.Request.Context(), req.UserID, services.SavedToken{
		AccessToken:  req.AccessToken,
		RefreshToken: req.RefreshToken,
		ExpiresAt:    expiresAt,
		Provider:     req.Provider,
	})
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "token_save_failed", err)
		return
	}
	RespondOK(c, gin.H{"message": "Token saved successfully"})
}
