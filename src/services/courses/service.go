package courses

import (
	"context"
	"strings"
	"time"

	"Coaching-Management-Backend/src/constants"
	"Coaching-Management-Backend/src/models"
	"Coaching-Management-Backend/src/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Store interface {
	Insert(ctx context.Context, course *models.Course) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error)
	Find(ctx context.Context, filter models.CourseFilter, page *models.PaginationParams) ([]models.Course, int64, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Course, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// CreateCourse stores a new course built from the allow-listed body fields.
func (s *Service) CreateCourse(ctx context.Context, actor models.Actor, body map[string]interface{}) (*models.Course, error) {
	if err := utils.CheckFieldsExist(body, constants.RequiredFields.CourseRegistration); err != nil {
		return nil, err
	}
	fields := utils.FilterObject(utils.ExtractFields(body, constants.ExpectedFields.Course))

	var course models.Course
	if err := utils.DecodeFields(fields, &course); err != nil {
		return nil, err
	}
	course.Title = strings.TrimSpace(course.Title)
	if err := utils.ValidateStruct(course); err != nil {
		return nil, err
	}

	course.CreatedBy = actor.Email
	course.CreatedDate = s.now()
	if err := s.store.Insert(ctx, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (s *Service) GetAllCourses(ctx context.Context, search string, page *models.PaginationParams) ([]models.Course, int64, error) {
	return s.store.Find(ctx, models.CourseFilter{Search: search}, page)
}

func (s *Service) GetCourseByID(ctx context.Context, id string) (*models.Course, error) {
	oid, err := utils.ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	return s.store.FindByID(ctx, oid)
}

// UpdateCourse applies a partial update. Only keys present in body change.
func (s *Service) UpdateCourse(ctx context.Context, actor models.Actor, body map[string]interface{}) (*models.Course, error) {
	if err := utils.CheckFieldsExist(body, constants.RequiredFields.CourseUpdate); err != nil {
		return nil, err
	}
	id, err := utils.IDFromBody(body)
	if err != nil {
		return nil, err
	}
	fields := utils.FilterObject(utils.ExtractFields(body, constants.ExpectedFields.Course))

	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	merged := *existing
	if err := utils.DecodeFields(fields, &merged); err != nil {
		return nil, err
	}
	merged.Title = strings.TrimSpace(merged.Title)
	if err := utils.ValidateStruct(merged); err != nil {
		return nil, err
	}

	set, err := utils.UpdateSet(merged, fields)
	if err != nil {
		return nil, err
	}
	set["updatedBy"] = actor.Email
	set["updatedDate"] = s.now()
	return s.store.UpdateFields(ctx, id, set)
}

// DeleteCourse removes the course only; its chapters remain.
func (s *Service) DeleteCourse(ctx context.Context, id string) error {
	oid, err := utils.ParseObjectID(id)
	if err != nil {
		return err
	}
	return s.store.Delete(ctx, oid)
}
