package polish

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resumeforge/internal/llm"
	"resumeforge/internal/shared/server/respond"
)

// Handler exposes the small text-editing flows over HTTP.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches polish routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/polish/bullet", h.bullet)
	rg.POST("/polish/summary", h.summary)
	rg.POST("/polish/grammar", h.grammar)
}

type bulletRequest struct {
	Text string `json:"text"`
}

func (h *Handler) bullet(c *gin.Context) {
	var req bulletRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "text is required", nil)
		return
	}

	out, err := h.Svc.EnhanceBulletPoint(c.Request.Context(), req.Text)
	if err != nil {
		h.flowError(c, err, "failed to enhance bullet point")
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"text": out})
}

func (h *Handler) summary(c *gin.Context) {
	var req SummaryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.TargetRole) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "targetRole is required", nil)
		return
	}

	out, err := h.Svc.GenerateSummary(c.Request.Context(), req)
	if err != nil {
		h.flowError(c, err, "failed to generate summary")
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"summary": out})
}

func (h *Handler) grammar(c *gin.Context) {
	var req GrammarInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	switch req.Tone {
	case ToneProfessional, ToneCreative, ToneExecutive:
	default:
		respond.Error(c, http.StatusBadRequest, "validation_error", "tone must be professional, creative or executive", nil)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "text is required", nil)
		return
	}

	out, err := h.Svc.CorrectGrammarAndTone(c.Request.Context(), req)
	if err != nil {
		h.flowError(c, err, "failed to correct text")
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"correctedText": out})
}

func (h *Handler) flowError(c *gin.Context, err error, msg string) {
	if llm.IsGenerationError(err) {
		respond.Error(c, http.StatusBadGateway, "generation_failed", msg, nil)
		return
	}
	respond.Error(c, http.StatusInternalServerError, "internal_error", msg, nil)
}
