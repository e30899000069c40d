package repository

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/Lixing-Zhang/lesson-storefront/backend/internal/models"
)

var (
	ErrLessonNotFound = errors.New("lesson not found")
	ErrOrderNotFound  = errors.New("order not found")
)

// LessonRepository defines the interface for lesson data access.
// Lessons are returned as stored, including fields the service does not know.
type LessonRepository interface {
	GetAll(ctx context.Context) ([]models.Lesson, error)
	// Search returns lessons whose subject or location contains query,
	// ignoring case. An empty query matches every lesson.
	Search(ctx context.Context, query string) ([]models.Lesson, error)
	GetByID(ctx context.Context, id int64) (models.Lesson, error)
	// Update merges fields into the lesson with the given id and returns the
	// number of documents actually modified. ErrLessonNotFound is returned
	// when no lesson matches.
	Update(ctx context.Context, id int64, fields models.LessonUpdate) (int64, error)
	InsertMany(ctx context.Context, lessons []models.Lesson) (int, error)
}

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
}

// SearchPattern trims query and escapes every regular expression
// metacharacter so the result matches the input literally.
// Case folding is left to the caller.
func SearchPattern(query string) string {
	return regexp.QuoteMeta(strings.TrimSpace(query))
}
