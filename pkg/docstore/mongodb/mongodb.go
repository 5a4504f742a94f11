// Package mongodb stores each collection as a MongoDB collection. Documents
// carry a UUID string _id plus _created and _updated timestamps.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/JaimeStill/tour-desk/pkg/docstore"
	"github.com/JaimeStill/tour-desk/pkg/lifecycle"
)

const (
	keyID      = "_id"
	keyCreated = "_created"
	keyUpdated = "_updated"
)

type store struct {
	client *mongo.Client
	db     *mongo.Database
	cfg    *Config
	logger *slog.Logger
}

// New creates a client for cfg. The driver connects lazily; Start verifies
// the server during startup and disconnects on shutdown.
func New(cfg *Config, logger *slog.Logger) (docstore.System, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnTimeoutDuration()).
		SetServerSelectionTimeout(cfg.ConnTimeoutDuration())

	if cfg.Username != "" && cfg.Password != "" {
		opts.SetAuth(options.Credential{
			Username: cfg.Username,
			Password: cfg.Password,
		})
	}

	client, err := mongo.Connect(context.Background(), opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	return &store{
		client: client,
		db:     client.Database(cfg.Database),
		cfg:    cfg,
		logger: logger.With("system", "docstore", "driver", "mongodb"),
	}, nil
}

func (s *store) Collection(name string) docstore.Collection {
	return &collection{col: s.db.Collection(name)}
}

func (s *store) Start(lc *lifecycle.Coordinator) error {
	s.logger.Info("starting document store", "database", s.cfg.Database)

	lc.OnStartup(func() {
		ctx, cancel := context.WithTimeout(lc.Context(), s.cfg.ConnTimeoutDuration())
		defer cancel()

		if err := s.client.Ping(ctx, nil); err != nil {
			s.logger.Error("mongodb ping failed", "error", err)
			return
		}
		s.logger.Info("mongodb connection established")
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.client.Disconnect(ctx); err != nil {
			s.logger.Error("mongodb disconnect failed", "error", err)
			return
		}
		s.logger.Info("mongodb connection closed")
	})

	return nil
}

type collection struct {
	col *mongo.Collection
}

func (c *collection) List(ctx context.Context, opts docstore.ListOptions) ([]docstore.Document, error) {
	sort := bson.D{{Key: keyCreated, Value: 1}, {Key: keyID, Value: 1}}
	if opts.OrderBy != "" {
		dir := 1
		if opts.Descending {
			dir = -1
		}
		sort = append(bson.D{{Key: opts.OrderBy, Value: dir}}, sort...)
	}

	cursor, err := c.col.Find(ctx, bson.M{}, options.Find().SetSort(sort))
	if err != nil {
		return nil, mapError(err)
	}
	defer cursor.Close(ctx)

	docs := make([]docstore.Document, 0)
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		docs = append(docs, fromBSON(raw))
	}
	if err := cursor.Err(); err != nil {
		return nil, mapError(err)
	}
	return docs, nil
}

func (c *collection) Get(ctx context.Context, id string) (docstore.Document, error) {
	var raw bson.M
	if err := c.col.FindOne(ctx, bson.M{keyID: id}).Decode(&raw); err != nil {
		return docstore.Document{}, mapError(err)
	}
	return fromBSON(raw), nil
}

func (c *collection) Add(ctx context.Context, fields map[string]any) (docstore.Document, error) {
	if err := checkFields(fields); err != nil {
		return docstore.Document{}, err
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := docstore.Document{
		ID:        uuid.NewString(),
		Fields:    maps.Clone(fields),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if doc.Fields == nil {
		doc.Fields = map[string]any{}
	}

	record := bson.M{keyID: doc.ID, keyCreated: now, keyUpdated: now}
	maps.Copy(record, doc.Fields)

	if _, err := c.col.InsertOne(ctx, record); err != nil {
		return docstore.Document{}, mapError(err)
	}
	return doc, nil
}

func (c *collection) Update(ctx context.Context, id string, fields map[string]any) error {
	if err := checkFields(fields); err != nil {
		return err
	}

	set := bson.M{keyUpdated: time.Now().UTC()}
	maps.Copy(set, fields)

	result, err := c.col.UpdateOne(ctx, bson.M{keyID: id}, bson.M{"$set": set})
	if err != nil {
		return mapError(err)
	}
	if result.MatchedCount == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

func (c *collection) Delete(ctx context.Context, id string) error {
	result, err := c.col.DeleteOne(ctx, bson.M{keyID: id})
	if err != nil {
		return mapError(err)
	}
	if result.DeletedCount == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

func checkFields(fields map[string]any) error {
	for k := range fields {
		if k == "" || strings.HasPrefix(k, "$") || strings.HasPrefix(k, "_") || strings.Contains(k, ".") {
			return fmt.Errorf("%w: %q", docstore.ErrInvalidField, k)
		}
	}
	return nil
}

func fromBSON(raw bson.M) docstore.Document {
	doc := docstore.Document{Fields: make(map[string]any, len(raw))}

	for k, v := range raw {
		switch k {
		case keyID:
			doc.ID = fmt.Sprint(v)
		case keyCreated:
			doc.CreatedAt = asTime(v)
		case keyUpdated:
			doc.UpdatedAt = asTime(v)
		default:
			doc.Fields[k] = normalize(v)
		}
	}
	return doc
}

func asTime(v any) time.Time {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC()
	case time.Time:
		return t.UTC()
	}
	return time.Time{}
}

// normalize converts driver-specific values into plain Go values.
func normalize(v any) any {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.ObjectID:
		return t.Hex()
	case primitive.Decimal128:
		return t.String()
	case primitive.A:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = normalize(item)
		}
		return out
	case primitive.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = normalize(e.Value)
		}
		return out
	case primitive.M:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = normalize(item)
		}
		return out
	}
	return v
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return docstore.ErrNotFound
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) ||
		errors.Is(err, mongo.ErrClientDisconnected) ||
		errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", docstore.ErrUnavailable, err)
	}
	return err
}
