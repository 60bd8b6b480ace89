package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/miyannishar/eco-logic-backend/internal/platform/logger"
)

// Service owns the mongo client lifecycle: connect and ping on startup,
// close on shutdown. Handlers receive it injected, never as a package-level
// singleton.
type Service struct {
	log    *logger.Logger
	client *mongo.Client
	db     *mongo.Database
}

func NewService(ctx context.Context, log *logger.Logger, uri, dbName string) (*Service, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if uri == "" {
		return nil, fmt.Errorf("missing MONGO_URI")
	}
	if dbName == "" {
		return nil, fmt.Errorf("missing MONGO_DB")
	}

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	log.Info("Connected to MongoDB", "db", dbName)
	return &Service{
		log:    log.With("service", "MongoService"),
		client: client,
		db:     client.Database(dbName),
	}, nil
}

func (s *Service) Database() *mongo.Database {
	if s == nil {
		return nil
	}
	return s.db
}

func (s *Service) Close(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	closeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.client.Disconnect(closeCtx)
}
