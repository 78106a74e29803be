package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sujalbistaa/campus-confessions/internal/apperr"
	"github.com/sujalbistaa/campus-confessions/internal/models"
	"github.com/sujalbistaa/campus-confessions/internal/service"
)

// --- Structs for request binding ---
type CreateConfessionInput struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// --- Handlers ---
type Env struct {
	Services *service.Services
	Store    Pinger
}

func (e *Env) ListConfessions(c *gin.Context) {
	opts := models.ListOptions{
		Sort:   models.ParseSort(c.Query("sort")),
		Search: c.Query("q"),
	}
	confessions, err := e.Services.Query.List(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err, "error fetching confessions")
		return
	}
	c.JSON(http.StatusOK, confessions)
}

func (e *Env) GetConfession(c *gin.Context) {
	id, ok := confessionID(c)
	if !ok {
		return
	}
	confession, err := e.Services.Query.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "error fetching confession")
		return
	}
	c.JSON(http.StatusOK, confession)
}

func (e *Env) CreateConfession(c *gin.Context) {
	var input CreateConfessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	confession, err := e.Services.Ingestion.Submit(c.Request.Context(), input.Text, input.Category)
	if err != nil {
		respondError(c, err, "error creating confession")
		return
	}
	c.JSON(http.StatusCreated, confession)
}

func (e *Env) LikeConfession(c *gin.Context) {
	id, ok := confessionID(c)
	if !ok {
		return
	}
	confession, err := e.Services.Engagement.Like(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "error liking confession")
		return
	}
	c.JSON(http.StatusOK, confession)
}

func (e *Env) DeleteConfession(c *gin.Context) {
	id, ok := confessionID(c)
	if !ok {
		return
	}
	if err := e.Services.Moderation.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "error deleting confession")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (e *Env) GetStats(c *gin.Context) {
	stats, err := e.Services.Query.Stats(c.Request.Context())
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("error fetching stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (e *Env) Health(c *gin.Context) {
	if err := e.Store.Ping(c.Request.Context()); err != nil {
		zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg("store unreachable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// confessionID parses the :id path param, writing a 400 when it is not a positive integer.
func confessionID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid confession ID"})
		return 0, false
	}
	return uint(id), true
}

// respondError renders err as {"error": message} with the status its kind maps to.
// Store messages are passed through verbatim.
func respondError(c *gin.Context, err error, logMsg string) {
	status := apperr.HTTPStatus(err)
	log := zerolog.Ctx(c.Request.Context())
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Msg(logMsg)
	} else {
		log.Debug().Err(err).Int("status", status).Msg(logMsg)
	}

	msg := err.Error()
	if e, ok := apperr.As(err); ok {
		msg = e.Message()
	}
	c.JSON(status, gin.H{"error": msg})
}
