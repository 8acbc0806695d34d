// internal/store/store.go
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Collections used by the records layer.
const (
	CollectionHealthRecords = "health_records"
	CollectionOrders        = "orders"
	CollectionReminders     = "reminders"
)

// Document is one JSON object in a collection. Append assigns "id".
type Document map[string]interface{}

// ID returns the document id, or "" if unset.
func (d Document) ID() string {
	id, _ := d["id"].(string)
	return id
}

// DocumentStore is an append-only collection store with single-field updates.
// QueryAll returns documents in insertion order.
type DocumentStore interface {
	Append(ctx context.Context, collection string, doc Document) (Document, error)
	QueryAll(ctx context.Context, collection string) ([]Document, error)
	UpdateField(ctx context.Context, collection, id, field string, value interface{}) error
}

var idPrefixes = map[string]string{
	CollectionHealthRecords: "rec",
	CollectionOrders:        "ord",
	CollectionReminders:     "rem",
}

// NewID builds "{prefix}_{n}_{unix}" where n is the 1-based position of the
// new document in its collection.
func NewID(collection string, n int64, now time.Time) string {
	prefix, ok := idPrefixes[collection]
	if !ok {
		prefix = "doc"
	}
	return fmt.Sprintf("%s_%d_%d", prefix, n, now.Unix())
}

// ToDocument converts a JSON-tagged struct into a Document.
func ToDocument(v interface{}) (Document, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Decode fills v from doc through its JSON tags.
func Decode(doc Document, v interface{}) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

func withID(doc Document, id string) Document {
	out := make(Document, len(doc)+1)
	for k, v := range doc {
		out[k] = v
	}
	out["id"] = id
	return out
}

func validField(field string) bool {
	if field == "" || field == "id" {
		return false
	}
	for _, r := range field {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}
