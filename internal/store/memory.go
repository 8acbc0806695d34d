// internal/store/memory.go
package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	apperrors "medassist-workers/internal/common/errors"
)

// MemoryStore keeps collections in process memory. Documents are deep-copied
// on the way in and out.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]Document
	now         func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: map[string][]Document{}, now: time.Now}
}

func (s *MemoryStore) Append(_ context.Context, collection string, doc Document) (Document, error) {
	copied, err := deepCopy(doc)
	if err != nil {
		return nil, apperrors.NewStoreOperationError("append", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := int64(len(s.collections[collection])) + 1
	stored := withID(copied, NewID(collection, n, s.now()))
	s.collections[collection] = append(s.collections[collection], stored)

	return deepCopy(stored)
}

func (s *MemoryStore) QueryAll(_ context.Context, collection string) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := s.collections[collection]
	out := make([]Document, 0, len(docs))
	for _, d := range docs {
		c, err := deepCopy(d)
		if err != nil {
			return nil, apperrors.NewStoreOperationError("query", err)
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *MemoryStore) UpdateField(_ context.Context, collection, id, field string, value interface{}) error {
	if !validField(field) {
		return apperrors.NewValidationError("field", "invalid field name "+field)
	}
	encoded, err := normalizeValue(value)
	if err != nil {
		return apperrors.NewStoreOperationError("update", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.collections[collection] {
		if d.ID() == id {
			d[field] = encoded
			return nil
		}
	}
	return apperrors.NewDocumentNotFoundError(collection, id)
}

func deepCopy(doc Document) (Document, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var out Document
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// normalizeValue gives value the shape it would have after a JSON round trip.
func normalizeValue(value interface{}) (interface{}, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var out interface{}
	err = json.Unmarshal(raw, &out)
	return out, err
}
