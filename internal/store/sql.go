// internal/store/sql.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	apperrors "medassist-workers/internal/common/errors"
	"medassist-workers/internal/common/database"
	"medassist-workers/internal/common/logger"
)

type sqlDialect struct {
	// lock serializes appends to one collection for the rest of the
	// transaction; empty when the driver already allows a single writer.
	lock   string
	count  string
	insert string
	query  string
	update string
	path   func(field string) string
}

var dialects = map[string]sqlDialect{
	database.DialectPostgres: {
		lock:   `SELECT pg_advisory_xact_lock(hashtext($1))`,
		count:  `SELECT COUNT(*) FROM documents WHERE collection = $1`,
		insert: `INSERT INTO documents (collection, id, body) VALUES ($1, $2, $3::jsonb)`,
		query:  `SELECT body FROM documents WHERE collection = $1 ORDER BY seq`,
		update: `UPDATE documents SET body = jsonb_set(body, $1::text[], $2::jsonb, true) WHERE collection = $3 AND id = $4`,
		path:   func(field string) string { return "{" + field + "}" },
	},
	database.DialectSQLite: {
		count:  `SELECT COUNT(*) FROM documents WHERE collection = ?`,
		insert: `INSERT INTO documents (collection, id, body) VALUES (?, ?, ?)`,
		query:  `SELECT body FROM documents WHERE collection = ? ORDER BY seq`,
		update: `UPDATE documents SET body = json_set(body, ?, json(?)) WHERE collection = ? AND id = ?`,
		path:   func(field string) string { return "$." + field },
	},
}

// SQLStore keeps documents as JSON in the documents table (Postgres JSONB or
// SQLite TEXT with the JSON1 functions).
type SQLStore struct {
	db      *sql.DB
	dialect sqlDialect
	now     func() time.Time
	logger  logger.Logger
}

func NewSQLStore(client *database.SQLClient, log logger.Logger) (*SQLStore, error) {
	d, ok := dialects[client.Dialect]
	if !ok {
		return nil, fmt.Errorf("unsupported dialect %q", client.Dialect)
	}
	return &SQLStore{
		db:      client.DB,
		dialect: d,
		now:     time.Now,
		logger:  log.With(map[string]interface{}{"component": "store", "dialect": client.Dialect}),
	}, nil
}

func (s *SQLStore) Append(ctx context.Context, collection string, doc Document) (Document, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.NewStoreOperationError("append", err)
	}
	defer tx.Rollback()

	if s.dialect.lock != "" {
		if _, err := tx.ExecContext(ctx, s.dialect.lock, collection); err != nil {
			return nil, apperrors.NewStoreOperationError("append", err)
		}
	}

	var count int64
	if err := tx.QueryRowContext(ctx, s.dialect.count, collection).Scan(&count); err != nil {
		return nil, apperrors.NewStoreOperationError("append", err)
	}

	stored := withID(doc, NewID(collection, count+1, s.now()))
	body, err := json.Marshal(stored)
	if err != nil {
		return nil, apperrors.NewStoreOperationError("append", err)
	}

	if _, err := tx.ExecContext(ctx, s.dialect.insert, collection, stored.ID(), string(body)); err != nil {
		return nil, apperrors.NewStoreOperationError("append", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, apperrors.NewStoreOperationError("append", err)
	}

	s.logger.Debug("document appended", map[string]interface{}{"collection": collection, "id": stored.ID()})
	return stored, nil
}

func (s *SQLStore) QueryAll(ctx context.Context, collection string) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.query, collection)
	if err != nil {
		return nil, apperrors.NewStoreOperationError("query", err)
	}
	defer rows.Close()

	docs := []Document{}
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, apperrors.NewStoreOperationError("query", err)
		}
		var doc Document
		if err := json.Unmarshal(body, &doc); err != nil {
			return nil, apperrors.NewStoreOperationError("query", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreOperationError("query", err)
	}
	return docs, nil
}

func (s *SQLStore) UpdateField(ctx context.Context, collection, id, field string, value interface{}) error {
	if !validField(field) {
		return apperrors.NewValidationError("field", "invalid field name "+field)
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return apperrors.NewStoreOperationError("update", err)
	}

	res, err := s.db.ExecContext(ctx, s.dialect.update, s.dialect.path(field), string(encoded), collection, id)
	if err != nil {
		return apperrors.NewStoreOperationError("update", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewStoreOperationError("update", err)
	}
	if n == 0 {
		return apperrors.NewDocumentNotFoundError(collection, id)
	}
	return nil
}
