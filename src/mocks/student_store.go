package mocks

import (
	"context"

	"Coaching-Management-Backend/src/models"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StudentStore struct {
	mock.Mock
}

func (m *StudentStore) Insert(ctx context.Context, student *models.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *StudentStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error) {
	args := m.Called(ctx, id)
	return studentOrNil(args.Get(0)), args.Error(1)
}

func (m *StudentStore) FindCredentialsByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error) {
	args := m.Called(ctx, id)
	return studentOrNil(args.Get(0)), args.Error(1)
}

func (m *StudentStore) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	args := m.Called(ctx, email)
	return studentOrNil(args.Get(0)), args.Error(1)
}

func (m *StudentStore) Find(ctx context.Context, filter models.StudentFilter, page *models.PaginationParams) ([]models.Student, int64, error) {
	args := m.Called(ctx, filter, page)
	students, _ := args.Get(0).([]models.Student)
	return students, args.Get(1).(int64), args.Error(2)
}

func (m *StudentStore) UpdateFields(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Student, error) {
	args := m.Called(ctx, id, set)
	return studentOrNil(args.Get(0)), args.Error(1)
}

func (m *StudentStore) CountByStatus(ctx context.Context) (*models.StudentStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*models.StudentStats)
	return stats, args.Error(1)
}

func studentOrNil(v interface{}) *models.Student {
	s, _ := v.(*models.Student)
	return s
}

type Notifier struct {
	mock.Mock
}

func (m *Notifier) WelcomeStudent(ctx context.Context, s *models.Student) {
	m.Called(ctx, s)
}

func (m *Notifier) CourseEnrollment(ctx context.Context, s *models.Student, courseName string) {
	m.Called(ctx, s, courseName)
}

func (m *Notifier) PasswordChanged(ctx context.Context, s *models.Student) {
	m.Called(ctx, s)
}
