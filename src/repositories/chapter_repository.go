package repositories

import (
	"context"
	"fmt"
	"strings"

	"Coaching-Management-Backend/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ChapterRepository struct {
	collection[models.Chapter]
}

func NewChapterRepository(coll *mongo.Collection) *ChapterRepository {
	return &ChapterRepository{collection[models.Chapter]{coll: coll}}
}

func (r *ChapterRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "courseId", Value: 1}},
		Options: options.Index().SetName("course_id"),
	})
	if err != nil {
		return fmt.Errorf("create chapter indexes: %w", err)
	}
	return nil
}

func (r *ChapterRepository) Insert(ctx context.Context, chapter *models.Chapter) error {
	if chapter.ID.IsZero() {
		chapter.ID = primitive.NewObjectID()
	}
	return r.insertOne(ctx, chapter)
}

func (r *ChapterRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Chapter, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *ChapterRepository) Find(ctx context.Context, filter models.ChapterFilter, page *models.PaginationParams) ([]models.Chapter, int64, error) {
	query := bson.M{}
	if s := strings.TrimSpace(filter.Search); s != "" {
		query = searchFilter(s, "title", "description")
	}
	if !filter.CourseID.IsZero() {
		query["courseId"] = filter.CourseID
	}
	return r.findPage(ctx, query, page, "createdDate", nil)
}

func (r *ChapterRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Chapter, error) {
	return r.updateByID(ctx, id, set, nil)
}

func (r *ChapterRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.deleteByID(ctx, id)
}
