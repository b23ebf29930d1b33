package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tophits/internal/models"
	"tophits/internal/report"
	"tophits/internal/repositories"
	"tophits/internal/services"
)

const healthTimeout = 5 * time.Second

// EntryResolver resolves chart entries against the catalog
type EntryResolver interface {
	Resolve(ctx context.Context, entry models.SourceEntry) (*services.Resolution, error)
	ResolveChart(ctx context.Context, chart models.ChartInfo) (*services.ChartResolution, error)
}

// HealthCheck reports whether a dependency is usable
type HealthCheck func(ctx context.Context) error

// ResolveHandler handles chart resolution requests
type ResolveHandler struct {
	resolver EntryResolver
	matches  repositories.MatchRepository
	checks   map[string]HealthCheck
}

// NewResolveHandler creates a new resolve handler. matches may be nil when outcomes
// are not stored.
func NewResolveHandler(resolver EntryResolver, matches repositories.MatchRepository, checks map[string]HealthCheck) *ResolveHandler {
	return &ResolveHandler{
		resolver: resolver,
		matches:  matches,
		checks:   checks,
	}
}

// RegisterRoutes mounts the handler on the router
func (h *ResolveHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.Health)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/resolve", h.ResolveEntry)
		v1.POST("/charts/resolve", h.ResolveChart)
		v1.GET("/charts/:year/matches", h.GetChartMatches)
		v1.GET("/charts/:year/matches/:position", h.GetChartMatch)
	}
}

// ResolveEntry handles POST /api/v1/resolve
func (h *ResolveHandler) ResolveEntry(c *gin.Context) {
	var req ResolveEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}
	// chart entries inherit the chart year, a single entry has to bring its own
	if req.Year <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": "year must be a positive chart year",
		})
		return
	}

	resolution, err := h.resolver.Resolve(c.Request.Context(), req.ToEntry())
	if err != nil {
		slog.Error("Failed to resolve entry", "title", req.Title, "artists", req.Artists, "error", err)
		c.JSON(statusForError(err), gin.H{
			"error":   "Failed to resolve entry",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, newResolutionResponse(resolution))
}

// ResolveChart handles POST /api/v1/charts/resolve. With ?format=markdown the match
// report is returned instead of JSON.
func (h *ResolveHandler) ResolveChart(c *gin.Context) {
	var req ResolveChartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	chart := req.ToChart()
	resolution, err := h.resolver.ResolveChart(c.Request.Context(), chart)
	if err != nil {
		slog.Error("Failed to resolve chart", "year", req.Year, "error", err)
		c.JSON(statusForError(err), gin.H{
			"error":   "Failed to resolve chart",
			"details": err.Error(),
		})
		return
	}

	if c.Query("format") == "markdown" {
		h.renderMarkdown(c, resolution)
		return
	}

	c.JSON(http.StatusOK, newChartResolutionResponse(resolution))
}

func (h *ResolveHandler) renderMarkdown(c *gin.Context, resolution *services.ChartResolution) {
	entries := make([]models.SourceEntry, len(resolution.Resolutions))
	matches := make([]*models.CandidateTrack, len(resolution.Resolutions))
	for i, res := range resolution.Resolutions {
		entries[i] = res.Entry
		matches[i] = res.Track()
	}

	doc, err := report.RenderMarkdown(resolution.Year, entries, matches)
	if err != nil {
		slog.Error("Failed to render match report", "year", resolution.Year, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to render match report",
		})
		return
	}

	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(doc))
}

// GetChartMatches handles GET /api/v1/charts/:year/matches
func (h *ResolveHandler) GetChartMatches(c *gin.Context) {
	year, ok := h.storedMatchesYear(c)
	if !ok {
		return
	}

	records, err := h.matches.FindByYear(c.Request.Context(), year)
	if err != nil {
		slog.Error("Failed to load stored matches", "year", year, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load stored matches",
		})
		return
	}
	if records == nil {
		records = []*models.MatchRecord{}
	}

	c.JSON(http.StatusOK, StoredMatchesResponse{
		Year:    year,
		Count:   len(records),
		Matches: records,
	})
}

// GetChartMatch handles GET /api/v1/charts/:year/matches/:position
func (h *ResolveHandler) GetChartMatch(c *gin.Context) {
	year, ok := h.storedMatchesYear(c)
	if !ok {
		return
	}
	position, err := strconv.Atoi(c.Param("position"))
	if err != nil || position <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid chart position",
		})
		return
	}

	record, err := h.matches.FindByPosition(c.Request.Context(), year, position)
	if err != nil {
		slog.Error("Failed to load stored match", "year", year, "position", position, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load stored match",
		})
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No stored match for this chart position",
		})
		return
	}

	c.JSON(http.StatusOK, record)
}

// storedMatchesYear parses the :year parameter and checks that storage is enabled.
// On failure the error response has been written.
func (h *ResolveHandler) storedMatchesYear(c *gin.Context) (int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid chart year",
		})
		return 0, false
	}

	if h.matches == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Match storage is not enabled",
		})
		return 0, false
	}
	return year, true
}

// Health handles GET /health
func (h *ResolveHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			slog.Warn("Health check failed", "service", name, "error", err)
			results[name] = "unhealthy: " + err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "healthy"
	}

	overall := "healthy"
	if status != http.StatusOK {
		overall = "unhealthy"
	}
	c.JSON(status, gin.H{
		"status":   overall,
		"services": results,
	})
}

// statusForError maps resolution failures to HTTP status codes
func statusForError(err error) int {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return http.StatusGatewayTimeout
	}
	var platformErr *services.PlatformError
	if errors.As(err, &platformErr) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
