// internal/common/database/database_test.go
package database

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medassist-workers/internal/common/config"
)

// ==========================
// Redis
// ==========================

func TestPingRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewRedis(config.RedisConfig{Address: mr.Addr()})
	defer client.Close()

	require.NoError(t, PingRedis(context.Background(), client))

	mr.Close()
	assert.Error(t, PingRedis(context.Background(), client))
}

// ==========================
// Elasticsearch
// ==========================

func TestPingElasticsearch(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{"healthy cluster", http.StatusOK, false},
		{"unauthorized", http.StatusUnauthorized, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-Elastic-Product", "Elasticsearch")
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			es, err := NewElasticsearch(config.ElasticsearchConfig{Addresses: []string{srv.URL}})
			require.NoError(t, err)

			err = PingElasticsearch(context.Background(), es)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// ==========================
// SQLite + migrations
// ==========================

func TestNewSQLite_Migrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "medassist.db")
	client, err := NewSQLite(config.SQLiteConfig{Path: path})
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Ping(context.Background()))
	assert.Equal(t, DialectSQLite, client.Dialect)

	require.NoError(t, Migrate(client))
	require.NoError(t, Migrate(client), "re-running an applied schema is a no-op")

	_, err = client.DB.Exec(`INSERT INTO documents (collection, id, body) VALUES ('orders', 'ord_1_1', '{}')`)
	require.NoError(t, err)
	_, err = client.DB.Exec(`INSERT INTO documents (collection, id, body) VALUES ('orders', 'ord_1_1', '{}')`)
	assert.Error(t, err, "ids are unique per collection")
}

func TestMigrate_UnknownDialect(t *testing.T) {
	err := Migrate(&SQLClient{Dialect: "oracle"})
	assert.Error(t, err)
}
