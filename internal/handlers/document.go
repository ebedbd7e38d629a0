package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yungbote/contentforge-backend/internal/services"
)

type DocumentHandler struct {
	documents services.DocumentService
}

func NewDocumentHandler(documents services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

// Generate creates a structured document from a topic, builds it as a
// Google Doc, and uploads the requested exports.
func (dh *DocumentHandler) Generate(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req services.DocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	resp, err := dh.documents.Generate(c.Request.Context(), uid, req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, resp)
}
