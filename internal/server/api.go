package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alnah/go-summary/internal/apierr"
	"github.com/alnah/go-summary/internal/summarize"
	"github.com/alnah/go-summary/internal/template"
)

// generateResponse is the success body of POST /api/generate-summary.
type generateResponse struct {
	AI string `json:"ai"`
}

// messageResponse is the body of client errors.
type messageResponse struct {
	Message string `json:"message"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, template.All())
}

func (s *Server) handleGenerateSummary(c *gin.Context) {
	var req summarize.Request
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid request body."})
		return
	}

	if errors.Is(req.Validate(), summarize.ErrTextMissing) {
		c.JSON(http.StatusBadRequest, messageResponse{Message: summarize.MissingTextMessage})
		return
	}

	text, err := s.summarizer.Summarize(c.Request.Context(), req)
	switch {
	case errors.Is(err, summarize.ErrTextMissing):
		c.JSON(http.StatusBadRequest, messageResponse{Message: summarize.MissingTextMessage})
	case err != nil:
		s.logger.Error("summary generation failed",
			zap.Bool("provider", apierr.IsProvider(err)),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, messageResponse{Message: http.StatusText(http.StatusInternalServerError)})
	default:
		c.JSON(http.StatusOK, generateResponse{AI: text})
	}
}
