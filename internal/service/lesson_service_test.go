package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lixing-Zhang/lesson-storefront/backend/internal/models"
	"github.com/Lixing-Zhang/lesson-storefront/backend/internal/repository"
)

func newLessonService() (*LessonService, *repository.InMemoryLessonRepository) {
	repo := repository.NewInMemoryLessonRepository(repository.SampleLessons())
	return NewLessonService(repo), repo
}

func TestLessonService_SearchLessons_BlankEqualsList(t *testing.T) {
	svc, _ := newLessonService()
	ctx := context.Background()

	all, err := svc.ListLessons(ctx)
	require.NoError(t, err)

	for _, q := range []string{"", "  ", "\t"} {
		got, err := svc.SearchLessons(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, all, got)
	}
}

func TestLessonService_SearchLessons_TrimsQuery(t *testing.T) {
	svc, _ := newLessonService()

	got, err := svc.SearchLessons(context.Background(), "  london ")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Math", got[0].Subject())
}

func TestLessonService_UpdateLesson(t *testing.T) {
	tests := []struct {
		name         string
		id           int64
		fields       models.LessonUpdate
		wantErr      error
		wantModified int64
	}{
		{
			name:         "spaces update",
			id:           1,
			fields:       models.LessonUpdate{"spaces": int64(3)},
			wantModified: 1,
		},
		{
			name:         "same value is not an error",
			id:           1,
			fields:       models.LessonUpdate{"spaces": int64(5)},
			wantModified: 0,
		},
		{
			name:         "float price",
			id:           2,
			fields:       models.LessonUpdate{"price": 79.5},
			wantModified: 1,
		},
		{
			name:    "empty update",
			id:      1,
			fields:  models.LessonUpdate{},
			wantErr: ErrEmptyUpdate,
		},
		{
			name:    "nil update",
			id:      1,
			fields:  nil,
			wantErr: ErrEmptyUpdate,
		},
		{
			name:    "id is immutable",
			id:      1,
			fields:  models.LessonUpdate{"id": int64(2)},
			wantErr: ErrImmutableField,
		},
		{
			name:    "object id is immutable",
			id:      1,
			fields:  models.LessonUpdate{"_id": "abc"},
			wantErr: ErrImmutableField,
		},
		{
			name:    "spaces must be an integer",
			id:      1,
			fields:  models.LessonUpdate{"spaces": 2.5},
			wantErr: ErrInvalidField,
		},
		{
			name:    "spaces must not be negative",
			id:      1,
			fields:  models.LessonUpdate{"spaces": int64(-1)},
			wantErr: ErrInvalidField,
		},
		{
			name:    "subject must be a string",
			id:      1,
			fields:  models.LessonUpdate{"subject": int64(1)},
			wantErr: ErrInvalidField,
		},
		{
			name:    "operator field names rejected",
			id:      1,
			fields:  models.LessonUpdate{"$where": "1"},
			wantErr: ErrInvalidField,
		},
		{
			name:    "dotted field names rejected",
			id:      1,
			fields:  models.LessonUpdate{"meta.room": "1"},
			wantErr: ErrInvalidField,
		},
		{
			name:    "unknown lesson",
			id:      404,
			fields:  models.LessonUpdate{"spaces": int64(1)},
			wantErr: repository.ErrLessonNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newLessonService()

			before, _ := repo.GetAll(context.Background())

			modified, err := svc.UpdateLesson(context.Background(), tt.id, tt.fields)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				after, _ := repo.GetAll(context.Background())
				assert.Equal(t, before, after, "failed update must not modify lessons")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantModified, modified)
		})
	}
}
