package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/lesson-storefront/backend/internal/models"
	"github.com/Lixing-Zhang/lesson-storefront/backend/internal/repository"
	"github.com/Lixing-Zhang/lesson-storefront/backend/internal/service"
	"github.com/Lixing-Zhang/lesson-storefront/backend/pkg/logger"
)

func newLessonHandler(repo repository.LessonRepository) *LessonHandler {
	return NewLessonHandler(service.NewLessonService(repo), logger.New("error"))
}

func TestListLessons(t *testing.T) {
	// Setup
	handler := newLessonHandler(repository.NewInMemoryLessonRepository(repository.SampleLessons()))

	req := httptest.NewRequest(http.MethodGet, "/lessons", nil)
	w := httptest.NewRecorder()

	handler.ListLessons(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var lessons []models.Lesson
	if err := json.NewDecoder(w.Body).Decode(&lessons); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(lessons) != 10 {
		t.Errorf("expected 10 lessons, got %d", len(lessons))
	}
}

func TestListLessons_EmptyCollection(t *testing.T) {
	handler := newLessonHandler(repository.NewInMemoryLessonRepository(nil))

	req := httptest.NewRequest(http.MethodGet, "/lessons", nil)
	w := httptest.NewRecorder()

	handler.ListLessons(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Errorf("expected empty JSON array, got %s", body)
	}
}

func TestSearchLessons(t *testing.T) {
	handler := newLessonHandler(repository.NewInMemoryLessonRepository(repository.SampleLessons()))

	testCases := []struct {
		name     string
		query    string
		expected []string
	}{
		{"subject prefix", "mus", []string{"Music"}},
		{"location case-insensitive", "EDINBURGH", []string{"Coding"}},
		{"matches subject or location", "ch", []string{"History", "Chemistry"}},
		{"dot is literal", ".", []string{}},
		{"star is literal", "*", []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/search", nil)
			q := req.URL.Query()
			q.Set("q", tc.query)
			req.URL.RawQuery = q.Encode()
			w := httptest.NewRecorder()

			handler.SearchLessons(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", w.Code)
			}

			var lessons []models.Lesson
			if err := json.NewDecoder(w.Body).Decode(&lessons); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}

			if len(lessons) != len(tc.expected) {
				t.Fatalf("expected %d lessons, got %d", len(tc.expected), len(lessons))
			}

			for i, lesson := range lessons {
				if lesson.Subject() != tc.expected[i] {
					t.Errorf("lesson %d: expected subject '%s', got %s", i, tc.expected[i], lesson.Subject())
				}
			}
		})
	}
}

func TestUpdateLesson(t *testing.T) {
	testCases := []struct {
		name           string
		id             string
		body           string
		expectedStatus int
		expectedError  string
	}{
		{"valid update", "3", `{"spaces": 2}`, http.StatusOK, ""},
		{"invalid id", "abc", `{"spaces": 2}`, http.StatusBadRequest, "Invalid lesson ID"},
		{"float id", "1.5", `{"spaces": 2}`, http.StatusBadRequest, "Invalid lesson ID"},
		{"empty object", "3", `{}`, http.StatusBadRequest, "Update body must be a non-empty JSON object"},
		{"array body", "3", `[1,2]`, http.StatusBadRequest, "Update body must be a non-empty JSON object"},
		{"trailing data", "3", `{"spaces": 2} {"spaces": 3}`, http.StatusBadRequest, "Update body must be a non-empty JSON object"},
		{"immutable id", "3", `{"id": 4}`, http.StatusBadRequest, ""},
		{"not found", "404", `{"spaces": 2}`, http.StatusNotFound, "Lesson not found"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := newLessonHandler(repository.NewInMemoryLessonRepository(repository.SampleLessons()))

			// Create router to handle URL params
			r := chi.NewRouter()
			r.Put("/lessons/{lessonId}", handler.UpdateLesson)

			req := httptest.NewRequest(http.MethodPut, "/lessons/"+tc.id, strings.NewReader(tc.body))
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			if w.Code != tc.expectedStatus {
				t.Fatalf("expected status %d, got %d", tc.expectedStatus, w.Code)
			}

			if tc.expectedError != "" {
				var response map[string]string
				if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
					t.Fatalf("failed to decode error response: %v", err)
				}
				if response["error"] != tc.expectedError {
					t.Errorf("expected error message '%s', got %s", tc.expectedError, response["error"])
				}
			}
		})
	}
}

func TestUpdateLesson_StoresIntegers(t *testing.T) {
	repo := repository.NewInMemoryLessonRepository(repository.SampleLessons())
	handler := newLessonHandler(repo)

	r := chi.NewRouter()
	r.Put("/lessons/{lessonId}", handler.UpdateLesson)

	req := httptest.NewRequest(http.MethodPut, "/lessons/1", strings.NewReader(`{"level": 2, "rating": 4.5}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	lesson, err := repo.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("failed to read lesson: %v", err)
	}
	if _, ok := lesson["level"].(int64); !ok {
		t.Errorf("expected level stored as int64, got %T", lesson["level"])
	}
	if _, ok := lesson["rating"].(float64); !ok {
		t.Errorf("expected rating stored as float64, got %T", lesson["rating"])
	}
}

// brokenLessonRepo fails every call, standing in for an unreachable store
type brokenLessonRepo struct{}

var errStoreDown = errors.New("server selection timeout")

func (brokenLessonRepo) GetAll(context.Context) ([]models.Lesson, error) { return nil, errStoreDown }
func (brokenLessonRepo) Search(context.Context, string) ([]models.Lesson, error) {
	return nil, errStoreDown
}
func (brokenLessonRepo) GetByID(context.Context, int64) (models.Lesson, error) {
	return nil, errStoreDown
}
func (brokenLessonRepo) Update(context.Context, int64, models.LessonUpdate) (int64, error) {
	return 0, errStoreDown
}
func (brokenLessonRepo) InsertMany(context.Context, []models.Lesson) (int, error) {
	return 0, errStoreDown
}

func TestLessonHandler_StoreErrors(t *testing.T) {
	handler := newLessonHandler(brokenLessonRepo{})

	r := chi.NewRouter()
	r.Get("/lessons", handler.ListLessons)
	r.Get("/search", handler.SearchLessons)
	r.Put("/lessons/{lessonId}", handler.UpdateLesson)

	requests := []*http.Request{
		httptest.NewRequest(http.MethodGet, "/lessons", nil),
		httptest.NewRequest(http.MethodGet, "/search?q=math", nil),
		httptest.NewRequest(http.MethodPut, "/lessons/1", strings.NewReader(`{"spaces": 1}`)),
	}

	for _, req := range requests {
		t.Run(req.Method+" "+req.URL.Path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusInternalServerError {
				t.Fatalf("expected status 500, got %d", w.Code)
			}

			var response map[string]string
			if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode error response: %v", err)
			}
			if response["error"] != "Internal server error" {
				t.Errorf("expected generic error message, got %s", response["error"])
			}
		})
	}
}
