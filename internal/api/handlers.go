package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"blog_analyzer/internal/core"
	"blog_analyzer/internal/services"
	"blog_analyzer/pkg"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// AnalysisService is the application surface the handlers need
type AnalysisService interface {
	Analyze(ctx context.Context, req pkg.AnalyzeRequest) (*pkg.AnalyzeResponse, error)
	Search(ctx context.Context, topic string) (*pkg.SearchResponse, error)
	Session(ctx context.Context, sessionID string) (*pkg.SessionView, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// Handler serves the HTTP endpoints
type Handler struct {
	service AnalysisService
}

// NewHandler creates the HTTP handler set
func NewHandler(service AnalysisService) *Handler {
	return &Handler{service: service}
}

// NewRouter builds the gin engine with all routes registered
func NewRouter(service AnalysisService) *gin.Engine {
	h := NewHandler(service)

	r := gin.New()
	r.Use(requestLogger(), recovery())

	r.GET("/healthz", h.health)
	r.POST("/analyze", h.analyze)
	r.GET("/search", h.search)
	r.GET("/sessions/:id", h.getSession)
	r.DELETE("/sessions/:id", h.deleteSession)

	return r
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) analyze(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": fmt.Sprintf("Invalid request body: %v", err)})
		return
	}

	var req pkg.AnalyzeRequest
	if len(bytes.TrimSpace(body)) > 0 {
		if err := binding.JSON.BindBody(body, &req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": fmt.Sprintf("Invalid request body: %v", err)})
			return
		}
	}

	resp, err := h.service.Analyze(c.Request.Context(), req)
	if err != nil {
		writeSessionError(c, err, "Analysis failed")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) search(c *gin.Context) {
	resp, err := h.service.Search(c.Request.Context(), c.Query("topic"))
	if err != nil {
		if errors.Is(err, services.ErrTopicRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, pkg.SearchResponse{
			Status:  pkg.SearchStatusError,
			Message: fmt.Sprintf("Search failed: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getSession(c *gin.Context) {
	view, err := h.service.Session(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeSessionError(c, err, "Session lookup failed")
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *Handler) deleteSession(c *gin.Context) {
	if err := h.service.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		writeSessionError(c, err, "Session delete failed")
		return
	}

	c.Status(http.StatusNoContent)
}

// writeSessionError maps session errors onto status codes
func writeSessionError(c *gin.Context, err error, prefix string) {
	switch {
	case errors.Is(err, core.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Invalid session_id"})
	case errors.Is(err, core.ErrSessionTerminal):
		c.JSON(http.StatusConflict, gin.H{"detail": "Session already completed"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": fmt.Sprintf("%s: %v", prefix, err)})
	}
}
