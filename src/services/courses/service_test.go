package courses

import (
	"context"
	"errors"
	"testing"
	"time"

	"Coaching-Management-Backend/src/mocks"
	"Coaching-Management-Backend/src/models"
	"Coaching-Management-Backend/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var actor = models.Actor{Email: "admin@example.com", Role: models.RoleAdmin}

func newTestService(t *testing.T) (*Service, *mocks.CourseStore) {
	store := &mocks.CourseStore{}
	svc := NewService(store)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { store.AssertExpectations(t) })
	return svc, store
}

func TestCreateCourse(t *testing.T) {
	svc, store := newTestService(t)
	store.On("Insert", mock.Anything, mock.MatchedBy(func(c *models.Course) bool {
		return c.Title == "Physics" && c.Description == "Mechanics" && c.CreatedBy == "admin@example.com"
	})).Return(nil).Once()

	course, err := svc.CreateCourse(context.Background(), actor, map[string]interface{}{
		"title":       " Physics ",
		"description": "Mechanics",
		"createdBy":   "someone@else.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Physics", course.Title)
	assert.Equal(t, "admin@example.com", course.CreatedBy)
}

func TestCreateCourseMissingTitle(t *testing.T) {
	svc, store := newTestService(t)

	_, err := svc.CreateCourse(context.Background(), actor, map[string]interface{}{"description": "x"})
	assert.True(t, errors.Is(err, utils.ErrMissingFields))
	store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreateCourseNullTitleFailsValidation(t *testing.T) {
	svc, store := newTestService(t)

	_, err := svc.CreateCourse(context.Background(), actor, map[string]interface{}{"title": nil, "description": "x"})
	assert.True(t, errors.Is(err, utils.ErrValidation))
	store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestUpdateCoursePartial(t *testing.T) {
	svc, store := newTestService(t)
	existing := &models.Course{ID: primitive.NewObjectID(), Title: "Physics", Description: "Mechanics"}
	updated := *existing
	updated.Description = "Optics"

	store.On("FindByID", mock.Anything, existing.ID).Return(existing, nil).Once()
	store.On("UpdateFields", mock.Anything, existing.ID, mock.MatchedBy(func(set bson.M) bool {
		_, touchedTitle := set["title"]
		return set["description"] == "Optics" && !touchedTitle && set["updatedBy"] == "admin@example.com"
	})).Return(&updated, nil).Once()

	got, err := svc.UpdateCourse(context.Background(), actor, map[string]interface{}{
		"_id":         existing.ID.Hex(),
		"description": "Optics",
	})
	require.NoError(t, err)
	assert.Equal(t, "Optics", got.Description)
	assert.Equal(t, "Physics", got.Title)
}

func TestUpdateCourseUnknown(t *testing.T) {
	svc, store := newTestService(t)
	id := primitive.NewObjectID()
	store.On("FindByID", mock.Anything, id).Return(nil, utils.ErrNotFound).Once()

	_, err := svc.UpdateCourse(context.Background(), actor, map[string]interface{}{"_id": id.Hex(), "title": "x"})
	assert.True(t, errors.Is(err, utils.ErrNotFound))
}

func TestUpdateCourseWithoutID(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.UpdateCourse(context.Background(), actor, map[string]interface{}{"title": "x"})
	assert.True(t, errors.Is(err, utils.ErrMissingFields))

	_, err = svc.UpdateCourse(context.Background(), actor, map[string]interface{}{"_id": "zzz"})
	assert.True(t, errors.Is(err, utils.ErrInvalidID))
}

func TestDeleteCourse(t *testing.T) {
	svc, store := newTestService(t)
	id := primitive.NewObjectID()
	store.On("Delete", mock.Anything, id).Return(nil).Once()
	require.NoError(t, svc.DeleteCourse(context.Background(), id.Hex()))

	missing := primitive.NewObjectID()
	store.On("Delete", mock.Anything, missing).Return(utils.ErrNotFound).Once()
	assert.True(t, errors.Is(svc.DeleteCourse(context.Background(), missing.Hex()), utils.ErrNotFound))
}
