// internal/store/redis.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "medassist-workers/internal/common/errors"
	"medassist-workers/internal/common/logger"
)

const maxUpdateAttempts = 5

// RedisStore keeps each collection as a hash of id -> JSON body, an id list
// for insertion order and a counter for id generation.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
	logger logger.Logger
}

func NewRedisStore(client redis.UniversalClient, log logger.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "medassist:",
		now:    time.Now,
		logger: log.With(map[string]interface{}{"component": "store", "backend": "redis"}),
	}
}

func (s *RedisStore) docsKey(collection string) string { return s.prefix + collection + ":docs" }
func (s *RedisStore) idsKey(collection string) string  { return s.prefix + collection + ":ids" }
func (s *RedisStore) seqKey(collection string) string  { return s.prefix + collection + ":seq" }

func (s *RedisStore) Append(ctx context.Context, collection string, doc Document) (Document, error) {
	n, err := s.client.Incr(ctx, s.seqKey(collection)).Result()
	if err != nil {
		return nil, apperrors.NewStoreOperationError("append", err)
	}

	stored := withID(doc, NewID(collection, n, s.now()))
	body, err := json.Marshal(stored)
	if err != nil {
		return nil, apperrors.NewStoreOperationError("append", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.docsKey(collection), stored.ID(), body)
		pipe.RPush(ctx, s.idsKey(collection), stored.ID())
		return nil
	})
	if err != nil {
		return nil, apperrors.NewStoreOperationError("append", err)
	}
	return stored, nil
}

func (s *RedisStore) QueryAll(ctx context.Context, collection string) ([]Document, error) {
	ids, err := s.client.LRange(ctx, s.idsKey(collection), 0, -1).Result()
	if err != nil {
		return nil, apperrors.NewStoreOperationError("query", err)
	}
	if len(ids) == 0 {
		return []Document{}, nil
	}

	bodies, err := s.client.HMGet(ctx, s.docsKey(collection), ids...).Result()
	if err != nil {
		return nil, apperrors.NewStoreOperationError("query", err)
	}

	docs := make([]Document, 0, len(bodies))
	for i, b := range bodies {
		raw, ok := b.(string)
		if !ok {
			s.logger.Warn("dangling document id", map[string]interface{}{"collection": collection, "id": ids[i]})
			continue
		}
		var doc Document
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, apperrors.NewStoreOperationError("query", err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// UpdateField rewrites one field under WATCH, retrying when another writer
// touched the collection in between.
func (s *RedisStore) UpdateField(ctx context.Context, collection, id, field string, value interface{}) error {
	if !validField(field) {
		return apperrors.NewValidationError("field", "invalid field name "+field)
	}
	encoded, err := normalizeValue(value)
	if err != nil {
		return apperrors.NewStoreOperationError("update", err)
	}

	key := s.docsKey(collection)
	txf := func(tx *redis.Tx) error {
		raw, err := tx.HGet(ctx, key, id).Result()
		if errors.Is(err, redis.Nil) {
			return apperrors.NewDocumentNotFoundError(collection, id)
		}
		if err != nil {
			return err
		}

		var doc Document
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return err
		}
		doc[field] = encoded
		body, err := json.Marshal(doc)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, id, body)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if _, ok := apperrors.AsStandard(err); ok {
			return err
		}
		return apperrors.NewStoreOperationError("update", err)
	}
	return apperrors.NewStoreOperationError("update", errors.New("too much contention"))
}
