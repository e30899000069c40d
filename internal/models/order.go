package models

import "time"

// OrderRequest represents an incoming order request
type OrderRequest struct {
	Name      string  `json:"name" validate:"required"`
	Phone     string  `json:"phone" validate:"required"`
	LessonIDs []int64 `json:"lessonIDs" validate:"required,min=1"`
	Spaces    *int    `json:"spaces,omitempty" validate:"omitempty,gte=0"`
	Items     any     `json:"items,omitempty"`
}

// Order represents a persisted order.
// Orders are written once and never mutated.
type Order struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Phone     string    `bson:"phone" json:"phone"`
	LessonIDs []int64   `bson:"lessonIDs" json:"lessonIDs"`
	Spaces    *int      `bson:"spaces,omitempty" json:"spaces,omitempty"`
	Items     any       `bson:"items,omitempty" json:"items,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
