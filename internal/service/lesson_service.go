package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Lixing-Zhang/lesson-storefront/backend/internal/models"
	"github.com/Lixing-Zhang/lesson-storefront/backend/internal/repository"
)

// LessonService handles business logic for lessons
type LessonService struct {
	repo repository.LessonRepository
}

// NewLessonService creates a new lesson service
func NewLessonService(repo repository.LessonRepository) *LessonService {
	return &LessonService{
		repo: repo,
	}
}

// ListLessons returns all lessons
func (s *LessonService) ListLessons(ctx context.Context) ([]models.Lesson, error) {
	return s.repo.GetAll(ctx)
}

// SearchLessons returns lessons whose subject or location contains query.
// A blank query returns the same result as ListLessons.
func (s *LessonService) SearchLessons(ctx context.Context, query string) ([]models.Lesson, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.repo.GetAll(ctx)
	}
	return s.repo.Search(ctx, query)
}

// UpdateLesson merges fields into the lesson with the given id and returns the
// number of modified documents, which is zero when nothing changed.
func (s *LessonService) UpdateLesson(ctx context.Context, id int64, fields models.LessonUpdate) (int64, error) {
	if len(fields) == 0 {
		return 0, ErrEmptyUpdate
	}

	for name, value := range fields {
		if err := checkLessonField(name, value); err != nil {
			return 0, err
		}
	}

	return s.repo.Update(ctx, id, fields)
}

// checkLessonField validates one update field name and its value
func checkLessonField(name string, value any) error {
	switch name {
	case "_id", "id":
		return fmt.Errorf("%w: %s", ErrImmutableField, name)
	case "":
		return fmt.Errorf("%w: empty field name", ErrInvalidField)
	}

	if strings.HasPrefix(name, "$") || strings.Contains(name, ".") {
		return fmt.Errorf("%w: %s is not a valid field name", ErrInvalidField, name)
	}

	switch name {
	case "subject", "location", "image":
		if _, ok := value.(string); !ok {
			return fmt.Errorf("%w: %s must be a string", ErrInvalidField, name)
		}
	case "price":
		price, ok := numberValue(value)
		if !ok {
			return fmt.Errorf("%w: price must be a number", ErrInvalidField)
		}
		if price < 0 {
			return fmt.Errorf("%w: price must not be negative", ErrInvalidField)
		}
	case "spaces":
		v, ok := value.(int64)
		if !ok {
			return fmt.Errorf("%w: spaces must be an integer", ErrInvalidField)
		}
		if v < 0 {
			return fmt.Errorf("%w: spaces must not be negative", ErrInvalidField)
		}
	}

	return nil
}

func numberValue(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
