package keywords

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeforge/internal/shared/server/respond"
)

// Handler exposes keyword suggestion over HTTP.
type Handler struct{}

// NewHandler constructs a Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes attaches keyword routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/keywords/suggest", h.suggest)
}

type suggestRequest struct {
	JobTitle     string   `json:"jobTitle"`
	Industry     string   `json:"industry"`
	SeedKeywords []string `json:"seedKeywords"`
	Count        int      `json:"count"`
}

func (h *Handler) suggest(c *gin.Context) {
	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	suggested := Suggest(Input{
		JobTitle:     req.JobTitle,
		Industry:     req.Industry,
		SeedKeywords: req.SeedKeywords,
		Count:        req.Count,
	})

	respond.JSON(c, http.StatusOK, gin.H{"keywords": suggested})
}
