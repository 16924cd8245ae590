package repositories

import (
	"context"
	"errors"
	"testing"

	"Coaching-Management-Backend/src/models"
	"Coaching-Management-Backend/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func studentDoc(id primitive.ObjectID, email string, status models.RecStatus) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "studentname", Value: "Asha"},
		{Key: "studentId", Value: "STU00001"},
		{Key: "email", Value: email},
		{Key: "role", Value: "student"},
		{Key: "recStatus", Value: string(status)},
	}
}

func TestStudentRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("insert assigns id", func(mt *mtest.T) {
		repo := NewStudentRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		student := &models.Student{Email: "asha@example.com"}
		require.NoError(mt, repo.Insert(ctx, student))
		assert.False(mt, student.ID.IsZero())
	})

	mt.Run("insert duplicate", func(mt *mtest.T) {
		repo := NewStudentRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: students index: uniq_email",
		}))

		err := repo.Insert(ctx, &models.Student{Email: "asha@example.com"})
		assert.True(mt, errors.Is(err, utils.ErrDuplicate))
	})

	mt.Run("find by id", func(mt *mtest.T) {
		repo := NewStudentRepository(mt.Coll)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.students", mtest.FirstBatch, studentDoc(id, "asha@example.com", models.RecStatusActive)))

		student, err := repo.FindByID(ctx, id)
		require.NoError(mt, err)
		assert.Equal(mt, id, student.ID)
		assert.Equal(mt, "asha@example.com", student.Email)
		assert.Empty(mt, student.Password)
	})

	mt.Run("find by id missing", func(mt *mtest.T) {
		repo := NewStudentRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.students", mtest.FirstBatch))

		_, err := repo.FindByID(ctx, primitive.NewObjectID())
		assert.True(mt, errors.Is(err, utils.ErrNotFound))
	})

	mt.Run("find without paging", func(mt *mtest.T) {
		repo := NewStudentRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.students", mtest.FirstBatch,
			studentDoc(primitive.NewObjectID(), "a@example.com", models.RecStatusActive),
			studentDoc(primitive.NewObjectID(), "b@example.com", models.RecStatusCourseCompleted),
		))

		students, total, err := repo.Find(ctx, models.StudentFilter{Role: models.RoleStudent, ExcludeStatus: models.RecStatusInactive}, nil)
		require.NoError(mt, err)
		assert.Len(mt, students, 2)
		assert.EqualValues(mt, 2, total)
	})

	mt.Run("find with paging counts first", func(mt *mtest.T) {
		repo := NewStudentRepository(mt.Coll)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "db.students", mtest.FirstBatch, bson.D{{Key: "n", Value: int32(12)}}),
			mtest.CreateCursorResponse(0, "db.students", mtest.FirstBatch,
				studentDoc(primitive.NewObjectID(), "a@example.com", models.RecStatusActive),
			),
		)

		page := &models.PaginationParams{Page: 2, Limit: 10}
		page.Normalize([]string{"createdDate"}, "createdDate")
		students, total, err := repo.Find(ctx, models.StudentFilter{Search: "a+b"}, page)
		require.NoError(mt, err)
		assert.Len(mt, students, 1)
		assert.EqualValues(mt, 12, total)
	})

	mt.Run("update returns the new document", func(mt *mtest.T) {
		repo := NewStudentRepository(mt.Coll)
		id := primitive.NewObjectID()
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: studentDoc(id, "asha@example.com", models.RecStatusInactive)},
		})

		student, err := repo.UpdateFields(ctx, id, bson.M{"recStatus": models.RecStatusInactive})
		require.NoError(mt, err)
		assert.Equal(mt, models.RecStatusInactive, student.RecStatus)
	})

	mt.Run("update missing", func(mt *mtest.T) {
		repo := NewStudentRepository(mt.Coll)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}})

		_, err := repo.UpdateFields(ctx, primitive.NewObjectID(), bson.M{"gender": "f"})
		assert.True(mt, errors.Is(err, utils.ErrNotFound))
	})

	mt.Run("count by status", func(mt *mtest.T) {
		repo := NewStudentRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.students", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "active"}, {Key: "count", Value: int64(5)}},
			bson.D{{Key: "_id", Value: "inactive"}, {Key: "count", Value: int64(2)}},
			bson.D{{Key: "_id", Value: "courseCompleted"}, {Key: "count", Value: int64(1)}},
		))

		stats, err := repo.CountByStatus(ctx)
		require.NoError(mt, err)
		assert.Equal(mt, &models.StudentStats{Total: 8, Active: 5, Inactive: 2, Completed: 1}, stats)
	})

	mt.Run("ensure indexes", func(mt *mtest.T) {
		repo := NewStudentRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		assert.NoError(mt, repo.EnsureIndexes(ctx))
	})
}

func TestStudentQuery(t *testing.T) {
	q := studentQuery(models.StudentFilter{Role: models.RoleStudent, ExcludeStatus: models.RecStatusInactive, Search: "a.b"})

	assert.Equal(t, models.RoleStudent, q["role"])
	assert.Equal(t, bson.M{"$ne": models.RecStatusInactive}, q["recStatus"])

	or, ok := q["$or"].(bson.A)
	require.True(t, ok)
	assert.Len(t, or, 4)
	assert.Equal(t, bson.M{"studentname": primitive.Regex{Pattern: `a\.b`, Options: "i"}}, or[0])
}

func TestMapWriteErrorPassesThrough(t *testing.T) {
	err := errors.New("boom")
	assert.Equal(t, err, mapWriteError(err))
	assert.False(t, errors.Is(mapWriteError(mongo.ErrClientDisconnected), utils.ErrDuplicate))
}
