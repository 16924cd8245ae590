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

type CourseRepository struct {
	collection[models.Course]
}

func NewCourseRepository(coll *mongo.Collection) *CourseRepository {
	return &CourseRepository{collection[models.Course]{coll: coll}}
}

func (r *CourseRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "title", Value: 1}},
		Options: options.Index().SetName("title"),
	})
	if err != nil {
		return fmt.Errorf("create course indexes: %w", err)
	}
	return nil
}

func (r *CourseRepository) Insert(ctx context.Context, course *models.Course) error {
	if course.ID.IsZero() {
		course.ID = primitive.NewObjectID()
	}
	return r.insertOne(ctx, course)
}

func (r *CourseRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *CourseRepository) Find(ctx context.Context, filter models.CourseFilter, page *models.PaginationParams) ([]models.Course, int64, error) {
	query := bson.M{}
	if s := strings.TrimSpace(filter.Search); s != "" {
		query = searchFilter(s, "title", "description")
	}
	return r.findPage(ctx, query, page, "createdDate", nil)
}

func (r *CourseRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Course, error) {
	return r.updateByID(ctx, id, set, nil)
}

// Delete removes the course. Chapters pointing at it are left in place.
func (r *CourseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.deleteByID(ctx, id)
}
