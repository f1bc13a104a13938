package interview

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeforge/internal/shared/server/respond"
)

// Handler exposes interview question generation over HTTP.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches interview routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/interview/questions", h.questions)
}

type questionsRequest struct {
	Domain                string `json:"domain"`
	ExperienceLevel       string `json:"experienceLevel"`
	TargetRole            string `json:"targetRole"`
	ExistingResumeSummary string `json:"existingResumeSummary"`
	UserName              string `json:"userName"`
	Count                 int    `json:"count"`
}

func (h *Handler) questions(c *gin.Context) {
	var req questionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	questions := h.Svc.Questions(c.Request.Context(), Input{
		Domain:                req.Domain,
		ExperienceLevel:       req.ExperienceLevel,
		TargetRole:            req.TargetRole,
		ExistingResumeSummary: req.ExistingResumeSummary,
		UserName:              req.UserName,
		Count:                 req.Count,
	})

	respond.JSON(c, http.StatusOK, gin.H{"questions": questions})
}
