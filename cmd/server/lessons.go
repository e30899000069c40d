package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Lixing-Zhang/lesson-storefront/backend/internal/models"
)

// loadLessons reads a JSON array of lesson documents. Every lesson needs an
// integer id and a subject, and ids must be unique.
func loadLessons(path string) ([]models.Lesson, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lessons file: %w", err)
	}

	var lessons []models.Lesson
	if err := json.Unmarshal(data, &lessons); err != nil {
		return nil, fmt.Errorf("failed to parse lessons file %s: %w", path, err)
	}

	seen := make(map[int64]bool, len(lessons))
	for i, l := range lessons {
		if l == nil {
			return nil, fmt.Errorf("lesson %d: must be an object", i)
		}
		id, ok := l.ID()
		if !ok {
			return nil, fmt.Errorf("lesson %d: id must be an integer", i)
		}
		if l.Subject() == "" {
			return nil, fmt.Errorf("lesson %d: subject is required", i)
		}
		if seen[id] {
			return nil, fmt.Errorf("lesson %d: duplicate id %d", i, id)
		}
		seen[id] = true
	}

	return lessons, nil
}
