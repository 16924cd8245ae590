package mocks

import (
	"context"

	"Coaching-Management-Backend/src/models"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CourseStore struct {
	mock.Mock
}

func (m *CourseStore) Insert(ctx context.Context, course *models.Course) error {
	return m.Called(ctx, course).Error(0)
}

func (m *CourseStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*models.Course)
	return c, args.Error(1)
}

func (m *CourseStore) Find(ctx context.Context, filter models.CourseFilter, page *models.PaginationParams) ([]models.Course, int64, error) {
	args := m.Called(ctx, filter, page)
	courses, _ := args.Get(0).([]models.Course)
	return courses, args.Get(1).(int64), args.Error(2)
}

func (m *CourseStore) UpdateFields(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Course, error) {
	args := m.Called(ctx, id, set)
	c, _ := args.Get(0).(*models.Course)
	return c, args.Error(1)
}

func (m *CourseStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

type ChapterStore struct {
	mock.Mock
}

func (m *ChapterStore) Insert(ctx context.Context, chapter *models.Chapter) error {
	return m.Called(ctx, chapter).Error(0)
}

func (m *ChapterStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Chapter, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*models.Chapter)
	return c, args.Error(1)
}

func (m *ChapterStore) Find(ctx context.Context, filter models.ChapterFilter, page *models.PaginationParams) ([]models.Chapter, int64, error) {
	args := m.Called(ctx, filter, page)
	chapters, _ := args.Get(0).([]models.Chapter)
	return chapters, args.Get(1).(int64), args.Error(2)
}

func (m *ChapterStore) UpdateFields(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Chapter, error) {
	args := m.Called(ctx, id, set)
	c, _ := args.Get(0).(*models.Chapter)
	return c, args.Error(1)
}

func (m *ChapterStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}
