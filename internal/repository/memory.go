package repository

import (
	"context"
	"reflect"
	"regexp"
	"sync"

	"github.com/Lixing-Zhang/lesson-storefront/backend/internal/models"
)

// InMemoryLessonRepository implements LessonRepository with in-memory storage.
// Lessons are returned in insertion order.
type InMemoryLessonRepository struct {
	mu      sync.RWMutex
	lessons []models.Lesson
}

// NewInMemoryLessonRepository creates a repository holding copies of seed
func NewInMemoryLessonRepository(seed []models.Lesson) *InMemoryLessonRepository {
	lessons := make([]models.Lesson, 0, len(seed))
	for _, l := range seed {
		lessons = append(lessons, l.Clone())
	}
	return &InMemoryLessonRepository{lessons: lessons}
}

// SampleLessons returns the demo catalogue inserted by the seed command
// when no lessons file is given
func SampleLessons() []models.Lesson {
	return []models.Lesson{
		sampleLesson(1, "Math", "London", 100, "math.png"),
		sampleLesson(2, "English", "Oxford", 80, "english.png"),
		sampleLesson(3, "Music", "Bristol", 90, "music.png"),
		sampleLesson(4, "Art", "York", 70, "art.png"),
		sampleLesson(5, "Science", "Cambridge", 110, "science.png"),
		sampleLesson(6, "History", "Manchester", 60, "history.png"),
		sampleLesson(7, "Geography", "Leeds", 65, "geography.png"),
		sampleLesson(8, "Chemistry", "Liverpool", 95, "chemistry.png"),
		sampleLesson(9, "Physics", "Brighton", 105, "physics.png"),
		sampleLesson(10, "Coding", "Edinburgh", 120, "coding.png"),
	}
}

func sampleLesson(id int64, subject, location string, price int64, image string) models.Lesson {
	return models.Lesson{
		"id":       id,
		"subject":  subject,
		"location": location,
		"price":    price,
		"spaces":   int64(5),
		"image":    image,
	}
}

// GetAll returns all lessons
func (r *InMemoryLessonRepository) GetAll(ctx context.Context) ([]models.Lesson, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Lesson, 0, len(r.lessons))
	for _, l := range r.lessons {
		out = append(out, l.Clone())
	}
	return out, nil
}

// Search returns lessons whose subject or location contains query
func (r *InMemoryLessonRepository) Search(ctx context.Context, query string) ([]models.Lesson, error) {
	pattern := SearchPattern(query)
	if pattern == "" {
		return r.GetAll(ctx)
	}

	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Lesson, 0)
	for _, l := range r.lessons {
		if re.MatchString(l.Subject()) || re.MatchString(l.Location()) {
			out = append(out, l.Clone())
		}
	}
	return out, nil
}

// GetByID returns a lesson by its numeric id
func (r *InMemoryLessonRepository) GetByID(ctx context.Context, id int64) (models.Lesson, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if l := r.find(id); l != nil {
		return l.Clone(), nil
	}
	return nil, ErrLessonNotFound
}

// Update sets fields on the matching lesson. A field already holding an
// equal value does not count as a modification.
func (r *InMemoryLessonRepository) Update(ctx context.Context, id int64, fields models.LessonUpdate) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l := r.find(id)
	if l == nil {
		return 0, ErrLessonNotFound
	}

	changed := false
	for k, v := range fields {
		if current, ok := l[k]; ok && reflect.DeepEqual(current, v) {
			continue
		}
		l[k] = models.CloneValue(v)
		changed = true
	}

	if changed {
		return 1, nil
	}
	return 0, nil
}

// InsertMany appends lessons to the repository
func (r *InMemoryLessonRepository) InsertMany(ctx context.Context, lessons []models.Lesson) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, l := range lessons {
		r.lessons = append(r.lessons, l.Clone())
	}
	return len(lessons), nil
}

// find returns the stored lesson with id. Callers must hold the lock.
func (r *InMemoryLessonRepository) find(id int64) models.Lesson {
	for _, l := range r.lessons {
		if lid, ok := l.ID(); ok && lid == id {
			return l
		}
	}
	return nil
}

// InMemoryOrderRepository implements OrderRepository with in-memory storage
type InMemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]models.Order
}

// NewInMemoryOrderRepository creates an empty order repository
func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// Create stores an order
func (r *InMemoryOrderRepository) Create(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders[order.ID] = *order
	return nil
}

// GetByID returns an order by its id
func (r *InMemoryOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, exists := r.orders[id]
	if !exists {
		return nil, ErrOrderNotFound
	}
	return &order, nil
}

// Count returns the number of stored orders
func (r *InMemoryOrderRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders)
}
