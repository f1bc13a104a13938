package orchestrator

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeforge/internal/export"
	"resumeforge/internal/generation"
	"resumeforge/internal/llm"
	"resumeforge/internal/resumes"
	"resumeforge/internal/revamp"
	"resumeforge/internal/shared/server/middleware"
	"resumeforge/internal/shared/server/respond"
)

// Handler wires session routes to the orchestrator service.
type Handler struct {
	Svc *Service
	PDF *export.PDFExporter
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, pdf *export.PDFExporter) *Handler {
	return &Handler{Svc: svc, PDF: pdf}
}

// RegisterRoutes attaches session routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	sessions := rg.Group("/sessions", sessionContext())
	sessions.POST("", h.create)
	sessions.GET("/:id", h.get)
	sessions.POST("/:id/generate", h.generate)
	sessions.POST("/:id/revamp", h.revamp)
	sessions.POST("/:id/answers", h.answers)
	sessions.POST("/:id/skip", h.skip)
	sessions.POST("/:id/optimize", h.optimize)
	sessions.POST("/:id/save", h.save)
	sessions.POST("/:id/export/pdf", h.exportPDF)
	sessions.POST("/:id/export/docx", h.exportDOCX)
}

// sessionContext stamps the session id on the request context so the request
// log carries it.
func sessionContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.Param("id"); id != "" {
			c.Set("sessionId", id)
		}
		c.Next()
	}
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	respond.JSON(c, http.StatusCreated, h.Svc.Create(userID))
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	snap, err := h.Svc.Get(userID, c.Param("id"))
	if err != nil {
		h.sessionError(c, err, "failed to load session")
		return
	}
	respond.JSON(c, http.StatusOK, snap)
}

func (h *Handler) generate(c *gin.Context) {
	c.Set("flow", "generate")
	userID := middleware.UserIDFromContext(c)

	var profile generation.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	snap, err := h.Svc.StartGenerate(c.Request.Context(), userID, c.Param("id"), profile)
	if err != nil {
		h.sessionError(c, err, "Resume generation could not be started. Please check your details and try again.")
		return
	}
	respond.JSON(c, http.StatusOK, snap)
}

func (h *Handler) revamp(c *gin.Context) {
	c.Set("flow", "revamp")
	userID := middleware.UserIDFromContext(c)

	var req revamp.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	snap, err := h.Svc.StartRevamp(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		h.sessionError(c, err, "Resume revamp could not be started. Please upload a resume first.")
		return
	}
	respond.JSON(c, http.StatusOK, snap)
}

type answersRequest struct {
	Answers []generation.InterviewAnswer `json:"answers"`
}

func (h *Handler) answers(c *gin.Context) {
	c.Set("flow", "answers")
	userID := middleware.UserIDFromContext(c)

	var req answersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	snap, err := h.Svc.SubmitAnswers(c.Request.Context(), userID, c.Param("id"), req.Answers)
	if err != nil {
		h.sessionError(c, err, "The AI could not build your resume this time. Your answers are kept, please try again.")
		return
	}
	respond.JSON(c, http.StatusOK, snap)
}

func (h *Handler) skip(c *gin.Context) {
	c.Set("flow", "skip")
	userID := middleware.UserIDFromContext(c)

	snap, err := h.Svc.Skip(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.sessionError(c, err, "The AI could not build your resume this time. Please try again.")
		return
	}
	respond.JSON(c, http.StatusOK, snap)
}

type optimizeRequest struct {
	JobDescription string `json:"jobDescription"`
}

func (h *Handler) optimize(c *gin.Context) {
	c.Set("flow", "optimize")
	userID := middleware.UserIDFromContext(c)

	var req optimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	snap, err := h.Svc.RunOptimize(c.Request.Context(), userID, c.Param("id"), req.JobDescription)
	if err != nil {
		h.sessionError(c, err, "ATS optimization failed. Your current resume is unchanged.")
		return
	}
	respond.JSON(c, http.StatusOK, snap)
}

type saveRequest struct {
	Name     string `json:"name"`
	ResumeID string `json:"resumeId"`
}

func (h *Handler) save(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	snap, err := h.Svc.Save(c.Request.Context(), userID, c.Param("id"), req.Name, req.ResumeID)
	if err != nil {
		h.sessionError(c, err, "Failed to save your resume.")
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"resumeId": snap.SavedResumeID})
}

func (h *Handler) exportPDF(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	md, err := h.Svc.Document(userID, c.Param("id"))
	if err != nil {
		h.sessionError(c, err, "There is no resume to export yet.")
		return
	}

	pdf, err := h.PDF.ExportPDF(c.Request.Context(), md)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "export_failed", "Failed to export your resume as PDF.", nil)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="resume.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *Handler) exportDOCX(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	md, err := h.Svc.Document(userID, c.Param("id"))
	if err != nil {
		h.sessionError(c, err, "There is no resume to export yet.")
		return
	}

	docx, err := export.ExportDOCX(md)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "export_failed", "Failed to export your resume as DOCX.", nil)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="resume.docx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", docx)
}

func (h *Handler) sessionError(c *gin.Context, err error, msg string) {
	var illegal *ErrIllegalTransition
	switch {
	case errors.Is(err, ErrSessionNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "session not found", nil)
	case errors.Is(err, resumes.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.As(err, &illegal):
		respond.Error(c, http.StatusConflict, "illegal_transition", illegal.Error(), nil)
	case errors.Is(err, generation.ValidationError):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, resumes.ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case llm.IsGenerationError(err):
		respond.Error(c, http.StatusBadGateway, "generation_failed", msg, nil)
	default:
		// Anything unclassified is an upstream failure (model provider,
		// storage), not a caller mistake.
		respond.Error(c, http.StatusBadGateway, "upstream_error", msg, nil)
	}
}
