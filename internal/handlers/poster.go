package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yungbote/contentforge-backend/internal/services"
)

type PosterHandler struct {
	posters services.PosterService
}

func NewPosterHandler(posters services.PosterService) *PosterHandler {
	return &PosterHandler{posters: posters}
}

func (ph *PosterHandler) Generate(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req services.PosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	resp, err := ph.posters.CreateDesign(c.Request.Context(), uid, req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, resp)
}
