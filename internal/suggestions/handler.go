package suggestions

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-ats/internal/shared/server/middleware"
	"resume-ats/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches suggestion routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/suggestions/:id/apply", h.apply)
	rg.POST("/suggestions/:id/dismiss", h.dismiss)
}

func (h *Handler) apply(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	suggestionID := c.Param("id")

	item, err := h.Svc.Apply(c.Request.Context(), userID, suggestionID)
	if err != nil {
		writeSuggestionError(c, err, "failed to apply suggestion")
		return
	}

	respond.JSON(c, http.StatusOK, ToResponse(item))
}

func (h *Handler) dismiss(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	suggestionID := c.Param("id")

	item, err := h.Svc.Dismiss(c.Request.Context(), userID, suggestionID)
	if err != nil {
		writeSuggestionError(c, err, "failed to dismiss suggestion")
		return
	}

	respond.JSON(c, http.StatusOK, ToResponse(item))
}

func writeSuggestionError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "suggestion not found", nil)
	case errors.Is(err, ErrInvalidTransition):
		respond.Error(c, http.StatusConflict, "invalid_transition", "suggestion already resolved", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}

// ToResponse shapes a suggestion for JSON output.
func ToResponse(item Suggestion) gin.H {
	resp := gin.H{
		"id":             item.ID,
		"resumeId":       item.ResumeID,
		"kind":           item.Kind,
		"priority":       item.Priority,
		"title":          item.Title,
		"description":    item.Description,
		"reason":         item.Reason,
		"original_text":  item.OriginalText,
		"suggested_text": item.SuggestedText,
		"impact":         item.Impact,
		"status":         item.Status,
		"createdAt":      item.CreatedAt,
	}
	if item.SectionID != "" {
		resp["sectionId"] = item.SectionID
	}
	if item.AppliedAt != nil {
		resp["appliedAt"] = item.AppliedAt
	}
	return resp
}
