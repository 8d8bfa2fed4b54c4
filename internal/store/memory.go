package store

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AnshRaj112/mentracare-backend/internal/models"
)

// MemoryStore keeps documents in process memory, in insertion order. Documents
// go through the same BSON conversion as MongoStore, so both produce the same
// shapes.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]bson.D
	now         func() time.Time

	// FailWith, when set, makes every call return it wrapped as ErrStorageUnavailable.
	FailWith error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string][]bson.D),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the time source used for last_active.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.now = now
}

func (s *MemoryStore) CreateDocument(ctx context.Context, collection string, entity interface{}) (string, error) {
	if s.FailWith != nil {
		return "", unavailable("insert into", collection, s.FailWith)
	}
	id := NewID()
	doc, err := toDocument(entity, id)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[collection] = append(s.collections[collection], doc)
	return id, nil
}

func (s *MemoryStore) GetDocuments(ctx context.Context, collection string, filter Filter, limit int64) ([]Document, error) {
	if s.FailWith != nil {
		return nil, unavailable("find in", collection, s.FailWith)
	}
	want, err := normalize(filter)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Document, 0)
	for _, doc := range s.collections[collection] {
		if limit > 0 && int64(len(out)) >= limit {
			break
		}
		m, err := asMap(doc)
		if err != nil {
			return nil, err
		}
		if matches(m, want) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *MemoryStore) GetDocument(ctx context.Context, collection, id string) (Document, error) {
	docs, err := s.GetDocuments(ctx, collection, Filter{"_id": id}, 1)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}
	return docs[0], nil
}

func (s *MemoryStore) IncrementXP(ctx context.Context, userID string, amount int, touchLastActive bool) error {
	if s.FailWith != nil {
		return unavailable("update", models.CollectionUser, s.FailWith)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.collections[models.CollectionUser]
	for i, doc := range users {
		if id, _ := lookup(doc, "_id").(string); id != userID {
			continue
		}
		doc = set(doc, "xp", toInt64(lookup(doc, "xp"))+int64(amount))
		if touchLastActive {
			doc = set(doc, "last_active", primitive.NewDateTimeFromTime(s.now()))
		}
		users[i] = doc
		return nil
	}
	return nil
}

func (s *MemoryStore) CollectionNames(ctx context.Context) ([]string, error) {
	if s.FailWith != nil {
		return nil, unavailable("list", "collections", s.FailWith)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// normalize runs the filter through BSON so its values compare equal to stored ones.
func normalize(filter Filter) (bson.M, error) {
	if len(filter) == 0 {
		return bson.M{}, nil
	}
	raw, err := bson.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("marshal filter: %w", err)
	}
	var out bson.M
	if err := bson.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("unmarshal filter: %w", err)
	}
	return out, nil
}

// asMap returns a deep copy of doc as a map.
func asMap(doc bson.D) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	var out bson.M
	if err := bson.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return out, nil
}

func matches(doc, filter bson.M) bool {
	for k, v := range filter {
		got, ok := doc[k]
		if !ok || !reflect.DeepEqual(got, v) {
			return false
		}
	}
	return true
}

func lookup(doc bson.D, key string) interface{} {
	for _, e := range doc {
		if e.Key == key {
			return e.Value
		}
	}
	return nil
}

// set behaves like $set on a single field: it replaces the value or appends the field.
func set(doc bson.D, key string, value interface{}) bson.D {
	for i := range doc {
		if doc[i].Key == key {
			doc[i].Value = value
			return doc
		}
	}
	return append(doc, bson.E{Key: key, Value: value})
}

func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int32:
		return int64(n)
	case int64:
		return n
	case float64:
		return int64(n)
	case int:
		return int64(n)
	}
	return 0
}
