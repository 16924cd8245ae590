package chapters

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
	Insert(ctx context.Context, chapter *models.Chapter) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Chapter, error)
	Find(ctx context.Context, filter models.ChapterFilter, page *models.PaginationParams) ([]models.Chapter, int64, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Chapter, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// CreateChapter does not check that courseId names an existing course.
func (s *Service) CreateChapter(ctx context.Context, actor models.Actor, body map[string]interface{}) (*models.Chapter, error) {
	if err := utils.CheckFieldsExist(body, constants.RequiredFields.ChapterRegistration); err != nil {
		return nil, err
	}
	fields := utils.FilterObject(utils.ExtractFields(body, constants.ExpectedFields.Chapter))

	var chapter models.Chapter
	if err := utils.DecodeFields(fields, &chapter); err != nil {
		return nil, err
	}
	chapter.Title = strings.TrimSpace(chapter.Title)
	if err := utils.ValidateStruct(chapter); err != nil {
		return nil, err
	}

	chapter.CreatedBy = actor.Email
	chapter.CreatedDate = s.now()
	if err := s.store.Insert(ctx, &chapter); err != nil {
		return nil, err
	}
	return &chapter, nil
}

// GetAllChapters lists chapters, narrowed to one course when courseID is set.
func (s *Service) GetAllChapters(ctx context.Context, courseID, search string, page *models.PaginationParams) ([]models.Chapter, int64, error) {
	filter := models.ChapterFilter{Search: search}
	if courseID != "" {
		oid, err := utils.ParseObjectID(courseID)
		if err != nil {
			return nil, 0, err
		}
		filter.CourseID = oid
	}
	return s.store.Find(ctx, filter, page)
}

func (s *Service) GetChapterByID(ctx context.Context, id string) (*models.Chapter, error) {
	oid, err := utils.ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	return s.store.FindByID(ctx, oid)
}

func (s *Service) UpdateChapter(ctx context.Context, actor models.Actor, body map[string]interface{}) (*models.Chapter, error) {
	if err := utils.CheckFieldsExist(body, constants.RequiredFields.ChapterUpdate); err != nil {
		return nil, err
	}
	id, err := utils.IDFromBody(body)
	if err != nil {
		return nil, err
	}
	fields := utils.FilterObject(utils.ExtractFields(body, constants.ExpectedFields.Chapter))

	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	merged := *existing
	// decode into fresh slices so existing keeps its own backing arrays
	merged.Concepts, merged.References = nil, nil
	if err := utils.DecodeFields(fields, &merged); err != nil {
		return nil, err
	}
	if _, ok := fields["concepts"]; !ok {
		merged.Concepts = existing.Concepts
	}
	if _, ok := fields["references"]; !ok {
		merged.References = existing.References
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

func (s *Service) DeleteChapter(ctx context.Context, id string) error {
	oid, err := utils.ParseObjectID(id)
	if err != nil {
		return err
	}
	return s.store.Delete(ctx, oid)
}
