package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yungbote/contentforge-backend/internal/services"
)

type PresentationHandler struct {
	presentations services.PresentationService
}

func NewPresentationHandler(presentations services.PresentationService) *PresentationHandler {
	return &PresentationHandler{presentations: presentations}
}

func (ph *PresentationHandler) Generate(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req services.PresentationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	resp, err := ph.presentations.Generate(c.Request.Context(), uid, req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, resp)
}
