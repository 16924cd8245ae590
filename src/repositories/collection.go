package repositories

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"Coaching-Management-Backend/src/models"
	"Coaching-Management-Backend/src/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	readTimeout  = 10 * time.Second
	writeTimeout = 5 * time.Second
)

// collection holds the CRUD plumbing shared by the typed repositories.
type collection[T any] struct {
	coll *mongo.Collection
}

func (c collection[T]) insertOne(ctx context.Context, doc interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		return mapWriteError(err)
	}
	return nil
}

func (c collection[T]) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var doc T
	if err := c.coll.FindOne(ctx, filter, opts...).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.ErrNotFound
		}
		return nil, fmt.Errorf("find %s: %w", c.coll.Name(), err)
	}
	return &doc, nil
}

// findPage lists documents matching filter. A nil page returns everything
// sorted by defaultSort descending, without a count query.
func (c collection[T]) findPage(ctx context.Context, filter bson.M, page *models.PaginationParams, defaultSort string, projection bson.M) ([]T, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	findOpts := options.Find()
	if projection != nil {
		findOpts.SetProjection(projection)
	}

	var total int64
	if page == nil {
		findOpts.SetSort(bson.D{{Key: defaultSort, Value: -1}})
	} else {
		n, err := c.coll.CountDocuments(ctx, filter)
		if err != nil {
			return nil, 0, fmt.Errorf("count %s: %w", c.coll.Name(), err)
		}
		total = n
		findOpts.SetSort(bson.D{{Key: page.SortBy, Value: page.GetSortOrder()}}).
			SetSkip(page.GetSkip()).
			SetLimit(int64(page.Limit))
	}

	cursor, err := c.coll.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("find %s: %w", c.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	items := []T{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", c.coll.Name(), err)
	}
	if page == nil {
		total = int64(len(items))
	}
	return items, total, nil
}

// updateByID applies $set and returns the document after the update.
func (c collection[T]) updateByID(ctx context.Context, id primitive.ObjectID, set bson.M, projection bson.M) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if projection != nil {
		opts.SetProjection(projection)
	}

	var doc T
	err := c.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.ErrNotFound
		}
		return nil, mapWriteError(err)
	}
	return &doc, nil
}

func (c collection[T]) deleteByID(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete from %s: %w", c.coll.Name(), err)
	}
	if res.DeletedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func mapWriteError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", utils.ErrDuplicate, err)
	}
	return err
}

// searchFilter matches term case-insensitively as a substring of any of fields.
func searchFilter(term string, fields ...string) bson.M {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	or := make(bson.A, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: pattern})
	}
	return bson.M{"$or": or}
}
