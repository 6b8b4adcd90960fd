package resumes

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-ats/internal/engine"
	"resume-ats/internal/sections"
	"resume-ats/internal/shared/server/middleware"
	"resume-ats/internal/shared/server/respond"
	"resume-ats/internal/suggestions"
)

const defaultMaxUploadBytes = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc, MaxUploadBytes: defaultMaxUploadBytes}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes", h.upload)
	rg.POST("/resumes/text", h.analyzeText)
	rg.GET("/resumes", h.list)
	rg.GET("/resumes/:id", h.get)
	rg.POST("/resumes/:id/reparse", h.reparse)
	rg.DELETE("/resumes/:id", h.remove)
	rg.GET("/resumes/:id/sections", h.sections)
	rg.GET("/resumes/:id/scores", h.scores)
	rg.GET("/resumes/:id/suggestions", h.suggestions)
	rg.POST("/resumes/:id/optimize", h.optimize)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	maxBytes := h.MaxUploadBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxUploadBytes
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)

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

	mimeType := fileHeader.Header.Get("Content-Type")
	resume, analysis, err := h.Svc.UploadAndAnalyze(c.Request.Context(), userID, fileHeader.Filename, mimeType, data)
	if err != nil {
		writeResumeError(c, err, "failed to analyze resume")
		return
	}

	c.Set("resumeId", resume.ID)
	respond.JSON(c, http.StatusCreated, analyzeResponse(resume, analysis))
}

type analyzeTextRequest struct {
	FileName string `json:"fileName"`
	Text     string `json:"text"`
}

func (h *Handler) analyzeText(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req analyzeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	resume, analysis, err := h.Svc.AnalyzeText(c.Request.Context(), userID, strings.TrimSpace(req.FileName), req.Text)
	if err != nil {
		writeResumeError(c, err, "failed to analyze resume")
		return
	}

	c.Set("resumeId", resume.ID)
	respond.JSON(c, http.StatusCreated, analyzeResponse(resume, analysis))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}
	if limit > 50 {
		limit = 50
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	items, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		writeResumeError(c, err, "failed to list resumes")
		return
	}

	resp := make([]gin.H, 0, len(items))
	for _, resume := range items {
		resp = append(resp, resumeResponse(resume))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	resumeID := c.Param("id")
	c.Set("resumeId", resumeID)

	resume, err := h.Svc.Get(c.Request.Context(), userID, resumeID)
	if err != nil {
		writeResumeError(c, err, "failed to fetch resume")
		return
	}

	resp := resumeResponse(resume)
	resp["raw_text"] = resume.RawText
	if scores, err := h.Svc.Scores(c.Request.Context(), userID, resumeID); err == nil {
		resp["scores"] = scores
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) reparse(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	resumeID := c.Param("id")
	c.Set("resumeId", resumeID)

	resume, analysis, err := h.Svc.Reparse(c.Request.Context(), userID, resumeID)
	if err != nil {
		writeResumeError(c, err, "failed to reparse resume")
		return
	}

	respond.JSON(c, http.StatusOK, analyzeResponse(resume, analysis))
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	resumeID := c.Param("id")
	c.Set("resumeId", resumeID)

	if err := h.Svc.Delete(c.Request.Context(), userID, resumeID); err != nil {
		writeResumeError(c, err, "failed to delete resume")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) sections(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	resumeID := c.Param("id")
	c.Set("resumeId", resumeID)

	items, err := h.Svc.SectionsOf(c.Request.Context(), userID, resumeID)
	if err != nil {
		writeResumeError(c, err, "failed to list sections")
		return
	}

	resp := make([]gin.H, 0, len(items))
	for _, sec := range items {
		resp = append(resp, sectionResponse(sec))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) scores(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	resumeID := c.Param("id")
	c.Set("resumeId", resumeID)

	scores, err := h.Svc.Scores(c.Request.Context(), userID, resumeID)
	if err != nil {
		writeResumeError(c, err, "failed to compute scores")
		return
	}

	respond.JSON(c, http.StatusOK, scores)
}

func (h *Handler) suggestions(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	resumeID := c.Param("id")
	c.Set("resumeId", resumeID)

	items, err := h.Svc.SuggestionsOf(c.Request.Context(), userID, resumeID)
	if err != nil {
		writeResumeError(c, err, "failed to list suggestions")
		return
	}

	resp := make([]gin.H, 0, len(items))
	for _, item := range items {
		resp = append(resp, suggestions.ToResponse(item))
	}
	respond.JSON(c, http.StatusOK, resp)
}

type optimizeRequest struct {
	JobDescription string `json:"jobDescription"`
	TargetRole     string `json:"targetRole"`
}

func (h *Handler) optimize(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	resumeID := c.Param("id")
	c.Set("resumeId", resumeID)

	var req optimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	result, err := h.Svc.Optimize(c.Request.Context(), userID, resumeID, req.JobDescription, req.TargetRole)
	if err != nil {
		writeResumeError(c, err, "failed to optimize resume")
		return
	}

	created := make([]gin.H, 0, len(result.Suggestions))
	for _, item := range result.Suggestions {
		created = append(created, suggestions.ToResponse(item))
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"gap":         result.Gap,
		"suggestions": created,
	})
}

func writeResumeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrUnsupportedFile):
		respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_file", "only PDF, DOCX, and plain text files are supported", nil)
	case errors.Is(err, ErrEmptyText):
		respond.Error(c, http.StatusUnprocessableEntity, "empty_text", "no extractable text in file", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}

func resumeResponse(resume Resume) gin.H {
	return gin.H{
		"id":           resume.ID,
		"fileName":     resume.FileName,
		"source":       resume.Source,
		"quality":      resume.Quality,
		"overallScore": resume.OverallScore,
		"createdAt":    resume.CreatedAt,
		"updatedAt":    resume.UpdatedAt,
	}
}

func sectionResponse(sec sections.Section) gin.H {
	return gin.H{
		"id":           sec.ID,
		"resumeId":     sec.ResumeID,
		"section_type": sec.SectionType,
		"title":        sec.Title,
		"content":      sec.Content,
		"order_index":  sec.OrderIndex,
		"ats_score":    sec.ATSScore,
		"createdAt":    sec.CreatedAt,
	}
}

func analyzeResponse(resume Resume, analysis engine.Analysis) gin.H {
	return gin.H{
		"resume":   resumeResponse(resume),
		"analysis": analysis,
	}
}
