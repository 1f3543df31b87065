package server

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/projectdiscovery/gologger"

	"exposure/pkg/reports"
)

func (s *Server) index(c *gin.Context) {
	var buf bytes.Buffer
	if err := reports.RenderPage(&buf, reports.Page{Title: s.config.Title, WebSocketPath: "/ws"}); err != nil {
		gologger.Error().Msgf("Failed to render page: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render page"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"sessions":  s.hub.Count(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
