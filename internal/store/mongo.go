package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AnshRaj112/mentracare-backend/internal/models"
)

// MongoStore is the MongoDB-backed Store.
type MongoStore struct {
	db  *mongo.Database
	now func() time.Time
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (s *MongoStore) CreateDocument(ctx context.Context, collection string, entity interface{}) (string, error) {
	id := NewID()
	doc, err := toDocument(entity, id)
	if err != nil {
		return "", err
	}
	if _, err := s.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		return "", unavailable("insert into", collection, err)
	}
	return id, nil
}

func (s *MongoStore) GetDocuments(ctx context.Context, collection string, filter Filter, limit int64) ([]Document, error) {
	query := bson.M{}
	for k, v := range filter {
		query[k] = v
	}

	findOptions := options.Find()
	if limit > 0 {
		findOptions.SetLimit(limit)
	}

	cursor, err := s.db.Collection(collection).Find(ctx, query, findOptions)
	if err != nil {
		return nil, unavailable("find in", collection, err)
	}
	defer cursor.Close(ctx)

	docs := make([]Document, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, unavailable("read from", collection, err)
	}
	return docs, nil
}

func (s *MongoStore) GetDocument(ctx context.Context, collection, id string) (Document, error) {
	var doc Document
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, unavailable("find in", collection, err)
	}
	return doc, nil
}

func (s *MongoStore) IncrementXP(ctx context.Context, userID string, amount int, touchLastActive bool) error {
	update := bson.M{"$inc": bson.M{"xp": amount}}
	if touchLastActive {
		update["$set"] = bson.M{"last_active": s.now()}
	}

	_, err := s.db.Collection(models.CollectionUser).UpdateOne(
		ctx,
		bson.M{"_id": userID},
		update,
		options.Update().SetUpsert(false),
	)
	if err != nil {
		return unavailable("update", models.CollectionUser, err)
	}
	return nil
}

func (s *MongoStore) CollectionNames(ctx context.Context) ([]string, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, unavailable("list", "collections", err)
	}
	return names, nil
}

// EnsureIndexes creates the lookup indexes used by the list endpoints.
// Called on startup from main after Mongo has connected.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	for _, name := range models.UserCollections {
		_, err := s.db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("idx_user_id"),
		})
		if err != nil {
			return err
		}
	}

	_, err := s.db.Collection(models.CollectionPeerWallPost).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "timestamp", Value: -1}},
		Options: options.Index().SetName("idx_timestamp"),
	})
	return err
}
