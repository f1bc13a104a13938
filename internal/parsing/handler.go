package parsing

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeforge/internal/documents"
	"resumeforge/internal/extract"
	"resumeforge/internal/llm"
	"resumeforge/internal/shared/server/middleware"
	"resumeforge/internal/shared/server/respond"
	"resumeforge/internal/shared/telemetry"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires the parse endpoint to the parsing flow and document
// bookkeeping.
type Handler struct {
	Svc  *Service
	Docs *documents.Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, docs *documents.Service) *Handler {
	return &Handler{Svc: svc, Docs: docs}
}

// RegisterRoutes attaches the parse route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes/parse", h.parse)
}

func (h *Handler) parse(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileType := c.PostForm("fileType")
	switch fileType {
	case extract.TypePDF, extract.TypeDOCX, extract.TypeTXT:
	default:
		respond.Error(c, http.StatusBadRequest, "validation_error", "fileType must be pdf, docx or txt", nil)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	doc, err := h.Docs.Upload(c.Request.Context(), userID, fileHeader.Filename, bytes.NewReader(data))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store document", nil)
		return
	}

	parsed, err := h.Svc.Parse(c.Request.Context(), data, fileType, fileHeader.Filename)
	if err != nil {
		if llm.IsGenerationError(err) {
			respond.Error(c, http.StatusBadGateway, "generation_failed", "the model could not structure this resume", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to parse resume", nil)
		return
	}

	if err := h.Docs.MarkExtracted(c.Request.Context(), userID, doc.ID); err != nil {
		telemetry.Warn("parse.mark_extracted_failed", map[string]any{
			"document_id": doc.ID,
			"error":       err.Error(),
		})
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"documentId": doc.ID,
		"parsed":     parsed,
	})
}
