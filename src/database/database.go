package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"Coaching-Management-Backend/src/logger"

	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

var (
	client     *mongo.Client
	once       sync.Once
	connectErr error

	StudentCollection *mongo.Collection
	CourseCollection  *mongo.Collection
	ChapterCollection *mongo.Collection
)

// ConnectMongoDB connects once and binds the collection handles.
func ConnectMongoDB(ctx context.Context, uri, dbName string) error {
	if uri == "" {
		return fmt.Errorf("mongo uri is empty")
	}

	once.Do(func() {
		ctx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()

		clientOptions := options.Client().
			ApplyURI(uri).
			SetServerMonitor(serverMonitor())

		client, connectErr = mongo.Connect(ctx, clientOptions)
		if connectErr != nil {
			connectErr = fmt.Errorf("connect to mongodb: %w", connectErr)
			return
		}

		if connectErr = client.Ping(ctx, readpref.Primary()); connectErr != nil {
			connectErr = fmt.Errorf("mongodb ping failed: %w", connectErr)
			return
		}

		db := client.Database(dbName)
		StudentCollection = db.Collection("students")
		CourseCollection = db.Collection("courses")
		ChapterCollection = db.Collection("chapters")

		logger.Info().Str("database", dbName).Msg("MongoDB connected successfully")
	})

	return connectErr
}

// DisconnectMongoDB closes the client if one was opened.
func DisconnectMongoDB(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

// Ping is used by the health endpoint.
func Ping(ctx context.Context) error {
	if client == nil {
		return fmt.Errorf("mongodb client is nil")
	}
	return client.Ping(ctx, readpref.Primary())
}

func serverMonitor() *event.ServerMonitor {
	return &event.ServerMonitor{
		ServerHeartbeatFailed: func(e *event.ServerHeartbeatFailedEvent) {
			logger.Warn().Str("connection", e.ConnectionID).Err(e.Failure).Msg("MongoDB heartbeat failed")
		},
	}
}
