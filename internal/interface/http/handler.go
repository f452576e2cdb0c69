package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luvit/moodfit/internal/domain/access"
	"github.com/luvit/moodfit/internal/domain/profile"
	"github.com/luvit/moodfit/internal/domain/recommend"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	recommendSvc recommend.Service
	accessSvc    access.Service
	logger       *slog.Logger
}

// NewHandler constructs the root HTTP handler. accessSvc may be nil when
// the login gate is disabled.
func NewHandler(recommendSvc recommend.Service, accessSvc access.Service, logger *slog.Logger) *Handler {
	return &Handler{
		recommendSvc: recommendSvc,
		accessSvc:    accessSvc,
		logger:       logger.With("component", "http.handler"),
	}
}

type sessionRequest struct {
	Passcode string `json:"passcode"`
}

// CreateSession exchanges a passcode for a session token.
func (h *Handler) CreateSession(c *gin.Context) {
	if h.accessSvc == nil {
		abortWithError(c, NewHTTPError(http.StatusNotFound, "not_found", "login gate is disabled", nil))
		return
	}
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	session, err := h.accessSvc.Grant(c.Request.Context(), req.Passcode)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, session)
}

// Recommend serves a full recommendation honoring the profile's provider
// selection, falling back to the local engine on AI failure.
func (h *Handler) Recommend(c *gin.Context) {
	var p profile.Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	if claims, ok := getClaims(c); ok {
		h.logger.Debug("recommendation requested", "role", claims.Role, "provider", p.Provider)
	}

	outcome, err := h.recommendSvc.Recommend(c.Request.Context(), p)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, outcome)
}

// RecommendLocal serves an engine-only recommendation regardless of the
// profile's AI settings.
func (h *Handler) RecommendLocal(c *gin.Context) {
	var p profile.Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	result, err := h.recommendSvc.Local(c.Request.Context(), p)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, recommend.Outcome{Origin: recommend.OriginLocal, Result: result})
}

// Latest returns the most recently committed recommendation, restoring
// from the cache slot on a cold start.
func (h *Handler) Latest(c *gin.Context) {
	p := profile.Default()
	if lang := c.Query("language"); lang != "" {
		p.Locale = profile.Locale(lang)
	}

	outcome, err := h.recommendSvc.Latest(c.Request.Context(), p)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, outcome)
}

type fridgeRequest struct {
	Ingredients string          `json:"ingredients"`
	Profile     profile.Profile `json:"profile"`
}

// FridgeRecipe generates a recipe from free-text fridge contents.
func (h *Handler) FridgeRecipe(c *gin.Context) {
	var req fridgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	recipe, err := h.recommendSvc.FridgeRecipe(c.Request.Context(), req.Ingredients, req.Profile)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, recipe)
}

type imageRequest struct {
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspectRatio"`
	Provider    string `json:"provider"`
}

// GenerateImage exposes raw image generation.
func (h *Handler) GenerateImage(c *gin.Context) {
	var req imageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	provider := profile.Provider(req.Provider)
	if provider != profile.ProviderGemini && provider != profile.ProviderOpenAI {
		provider = profile.ProviderGemini
	}

	image, err := h.recommendSvc.GenerateImage(c.Request.Context(), req.Prompt, recommend.AspectRatio(req.AspectRatio), provider)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"image": image})
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
