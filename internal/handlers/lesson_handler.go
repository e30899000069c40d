package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/lesson-storefront/backend/internal/models"
	"github.com/Lixing-Zhang/lesson-storefront/backend/internal/repository"
	"github.com/Lixing-Zhang/lesson-storefront/backend/internal/service"
)

// LessonHandler handles lesson-related HTTP requests
type LessonHandler struct {
	service *service.LessonService
	logger  *slog.Logger
}

// NewLessonHandler creates a new lesson handler
func NewLessonHandler(service *service.LessonService, logger *slog.Logger) *LessonHandler {
	return &LessonHandler{
		service: service,
		logger:  logger,
	}
}

// LessonUpdatedResponse is returned by a successful lesson update
type LessonUpdatedResponse struct {
	Message      string `json:"message"`
	UpdatedCount int64  `json:"updatedCount"`
}

// ListLessons handles GET /lessons
func (h *LessonHandler) ListLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := h.service.ListLessons(r.Context())
	if err != nil {
		h.logger.Error("failed to list lessons", "error", err)
		WriteError(w, http.StatusInternalServerError, msgInternalError, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, lessons, h.logger)
}

// SearchLessons handles GET /search?q=
// Matches subject or location, case-insensitively and literally.
func (h *LessonHandler) SearchLessons(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	lessons, err := h.service.SearchLessons(r.Context(), query)
	if err != nil {
		h.logger.Error("failed to search lessons", "query", query, "error", err)
		WriteError(w, http.StatusInternalServerError, msgInternalError, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, lessons, h.logger)
}

// UpdateLesson handles PUT /lessons/{lessonId}
// - 200: {message, updatedCount}, updatedCount may be 0
// - 400: invalid id, empty or malformed body
// - 404: no lesson with that id
func (h *LessonHandler) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	lessonID := chi.URLParam(r, "lessonId")

	id, err := strconv.ParseInt(lessonID, 10, 64)
	if err != nil {
		h.logger.Warn("invalid lesson ID format", "lessonId", lessonID, "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid lesson ID", h.logger)
		return
	}

	var raw map[string]interface{}
	if err := decodeJSON(w, r, &raw); err != nil {
		h.logger.Warn("failed to decode lesson update", "lessonId", id, "error", err)
		WriteError(w, http.StatusBadRequest, "Update body must be a non-empty JSON object", h.logger)
		return
	}

	fields := make(models.LessonUpdate, len(raw))
	for k, v := range raw {
		fields[k] = models.NormalizeJSONValue(v)
	}

	// The update runs to completion even if the client goes away
	ctx := context.WithoutCancel(r.Context())

	modified, err := h.service.UpdateLesson(ctx, id, fields)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyUpdate):
			h.logger.Warn("empty lesson update", "lessonId", id)
			WriteError(w, http.StatusBadRequest, "Update body must be a non-empty JSON object", h.logger)
		case errors.Is(err, service.ErrImmutableField), errors.Is(err, service.ErrInvalidField):
			h.logger.Warn("rejected lesson update", "lessonId", id, "error", err)
			WriteError(w, http.StatusBadRequest, err.Error(), h.logger)
		case errors.Is(err, repository.ErrLessonNotFound):
			h.logger.Info("lesson not found", "lessonId", id)
			WriteError(w, http.StatusNotFound, "Lesson not found", h.logger)
		default:
			h.logger.Error("failed to update lesson", "lessonId", id, "error", err)
			WriteError(w, http.StatusInternalServerError, msgInternalError, h.logger)
		}
		return
	}

	h.logger.Info("lesson updated", "lessonId", id, "updated_count", modified)
	WriteJSON(w, http.StatusOK, LessonUpdatedResponse{
		Message:      "Lesson updated successfully",
		UpdatedCount: modified,
	}, h.logger)
}
