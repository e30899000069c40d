package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Lixing-Zhang/lesson-storefront/backend/internal/models"
)

// SearchFilter builds the lesson search filter for query.
// An empty query yields the match-all filter.
func SearchFilter(query string) bson.M {
	pattern := SearchPattern(query)
	if pattern == "" {
		return bson.M{}
	}

	match := bson.M{"$regex": pattern, "$options": "i"}
	return bson.M{
		"$or": bson.A{
			bson.M{"subject": match},
			bson.M{"location": match},
		},
	}
}

// UpdateDocument builds a $set update that touches only the given fields
func UpdateDocument(fields models.LessonUpdate) bson.M {
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}
	return bson.M{"$set": set}
}

// MongoLessonRepository implements LessonRepository on a MongoDB collection
type MongoLessonRepository struct {
	coll *mongo.Collection
}

// NewMongoLessonRepository creates a lesson repository backed by db.collection
func NewMongoLessonRepository(db *mongo.Database, collection string) *MongoLessonRepository {
	return &MongoLessonRepository{coll: db.Collection(collection)}
}

// EnsureIndexes creates the unique index on the lesson id
func (r *MongoLessonRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("lesson_id_unique"),
	})
	if err != nil {
		return fmt.Errorf("failed to create lesson id index: %w", err)
	}
	return nil
}

// GetAll returns all lessons in store order
func (r *MongoLessonRepository) GetAll(ctx context.Context) ([]models.Lesson, error) {
	return r.find(ctx, bson.M{})
}

// Search returns lessons matching SearchFilter(query)
func (r *MongoLessonRepository) Search(ctx context.Context, query string) ([]models.Lesson, error) {
	return r.find(ctx, SearchFilter(query))
}

func (r *MongoLessonRepository) find(ctx context.Context, filter bson.M) ([]models.Lesson, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer func() { _ = cur.Close(ctx) }()

	lessons := make([]models.Lesson, 0)
	for cur.Next(ctx) {
		lesson, err := decodeLesson(cur.Current)
		if err != nil {
			return nil, fmt.Errorf("failed to decode lesson: %w", err)
		}
		lessons = append(lessons, lesson)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lessons: %w", err)
	}
	return lessons, nil
}

// GetByID returns a lesson by its numeric id
func (r *MongoLessonRepository) GetByID(ctx context.Context, id int64) (models.Lesson, error) {
	raw, err := r.coll.FindOne(ctx, bson.M{"id": id}).Raw()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrLessonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson %d: %w", id, err)
	}

	lesson, err := decodeLesson(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode lesson %d: %w", id, err)
	}
	return lesson, nil
}

// decodeLesson decodes a stored lesson without imposing a schema.
// Embedded documents become bson.M so they encode to JSON as objects.
func decodeLesson(raw bson.Raw) (models.Lesson, error) {
	dec, err := bson.NewDecoder(bsonrw.NewBSONDocumentReader(raw))
	if err != nil {
		return nil, err
	}
	dec.DefaultDocumentM()

	var lesson models.Lesson
	if err := dec.Decode(&lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// Update applies a $set of fields to the lesson with the given id
func (r *MongoLessonRepository) Update(ctx context.Context, id int64, fields models.LessonUpdate) (int64, error) {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, UpdateDocument(fields))
	if err != nil {
		return 0, fmt.Errorf("failed to update lesson %d: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return 0, ErrLessonNotFound
	}
	return res.ModifiedCount, nil
}

// InsertMany inserts lessons in order and returns how many were written
func (r *MongoLessonRepository) InsertMany(ctx context.Context, lessons []models.Lesson) (int, error) {
	if len(lessons) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, len(lessons))
	for i := range lessons {
		docs[i] = lessons[i]
	}

	res, err := r.coll.InsertMany(ctx, docs)
	if err != nil {
		inserted := 0
		if res != nil {
			inserted = len(res.InsertedIDs)
		}
		return inserted, fmt.Errorf("failed to insert lessons: %w", err)
	}
	return len(res.InsertedIDs), nil
}

// DeleteAll removes every lesson. Only the seed command uses it.
func (r *MongoLessonRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to clear lessons: %w", err)
	}
	return res.DeletedCount, nil
}

// MongoOrderRepository implements OrderRepository on a MongoDB collection
type MongoOrderRepository struct {
	coll *mongo.Collection
}

// NewMongoOrderRepository creates an order repository backed by db.collection
func NewMongoOrderRepository(db *mongo.Database, collection string) *MongoOrderRepository {
	return &MongoOrderRepository{coll: db.Collection(collection)}
}

// Create inserts a single order document
func (r *MongoOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if _, err := r.coll.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

// GetByID returns an order by its id
func (r *MongoOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order %s: %w", id, err)
	}
	return &order, nil
}
