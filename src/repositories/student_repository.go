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

var withoutPassword = bson.M{"password": 0}

type StudentRepository struct {
	collection[models.Student]
}

func NewStudentRepository(coll *mongo.Collection) *StudentRepository {
	return &StudentRepository{collection[models.Student]{coll: coll}}
}

// EnsureIndexes creates the unique indexes on email, phoneNumber and studentId.
func (r *StudentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_email")},
		{Keys: bson.D{{Key: "phoneNumber", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_phone")},
		{Keys: bson.D{{Key: "studentId", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_student_id")},
		{Keys: bson.D{{Key: "role", Value: 1}, {Key: "recStatus", Value: 1}}, Options: options.Index().SetName("role_status")},
	})
	if err != nil {
		return fmt.Errorf("create student indexes: %w", err)
	}
	return nil
}

// Insert assigns a new id and stores the student.
func (r *StudentRepository) Insert(ctx context.Context, student *models.Student) error {
	if student.ID.IsZero() {
		student.ID = primitive.NewObjectID()
	}
	return r.insertOne(ctx, student)
}

// FindByID never returns the password.
func (r *StudentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error) {
	return r.findOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(withoutPassword))
}

// FindCredentialsByID includes the stored password for verification.
func (r *StudentRepository) FindCredentialsByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByEmail includes the stored password for verification.
func (r *StudentRepository) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	return r.findOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (r *StudentRepository) Find(ctx context.Context, filter models.StudentFilter, page *models.PaginationParams) ([]models.Student, int64, error) {
	return r.findPage(ctx, studentQuery(filter), page, "createdDate", withoutPassword)
}

func (r *StudentRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Student, error) {
	return r.updateByID(ctx, id, set, withoutPassword)
}

// CountByStatus counts role=student records grouped by recStatus.
func (r *StudentRepository) CountByStatus(ctx context.Context) (*models.StudentStats, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"role": models.RoleStudent}}},
		{{Key: "$group", Value: bson.M{"_id": "$recStatus", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate student stats: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status models.RecStatus `bson:"_id"`
		Count  int64            `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode student stats: %w", err)
	}

	stats := &models.StudentStats{}
	for _, row := range rows {
		stats.Total += row.Count
		switch row.Status {
		case models.RecStatusActive:
			stats.Active = row.Count
		case models.RecStatusInactive:
			stats.Inactive = row.Count
		case models.RecStatusCourseCompleted:
			stats.Completed = row.Count
		}
	}
	return stats, nil
}

func studentQuery(f models.StudentFilter) bson.M {
	query := bson.M{}
	if f.Role != "" {
		query["role"] = f.Role
	}
	if f.ExcludeStatus != "" {
		query["recStatus"] = bson.M{"$ne": f.ExcludeStatus}
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		for k, v := range searchFilter(s, "studentname", "email", "studentId", "phoneNumber") {
			query[k] = v
		}
	}
	return query
}
