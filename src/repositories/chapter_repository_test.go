package repositories

import (
	"context"
	"testing"

	"Coaching-Management-Backend/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestChapterRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("list by course keeps order of concepts", func(mt *mtest.T) {
		repo := NewChapterRepository(mt.Coll)
		courseID := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.chapters", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "courseId", Value: courseID},
			{Key: "title", Value: "Kinematics"},
			{Key: "concepts", Value: bson.A{"velocity", "acceleration", "displacement"}},
			{Key: "references", Value: bson.A{"HC Verma ch.3"}},
		}))

		chapters, total, err := repo.Find(ctx, models.ChapterFilter{CourseID: courseID}, nil)
		require.NoError(mt, err)
		require.Len(mt, chapters, 1)
		assert.EqualValues(mt, 1, total)
		assert.Equal(mt, courseID, chapters[0].CourseID)
		assert.Equal(mt, []string{"velocity", "acceleration", "displacement"}, chapters[0].Concepts)
	})

	mt.Run("insert", func(mt *mtest.T) {
		repo := NewChapterRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		chapter := &models.Chapter{CourseID: primitive.NewObjectID(), Title: "Optics"}
		require.NoError(mt, repo.Insert(ctx, chapter))
		assert.False(mt, chapter.ID.IsZero())
	})

	mt.Run("ensure indexes", func(mt *mtest.T) {
		repo := NewChapterRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		assert.NoError(mt, repo.EnsureIndexes(ctx))
	})
}
