// internal/medicine/catalog_test.go
package medicine

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "medassist-workers/internal/common/errors"
	"medassist-workers/internal/common/logger"
	"medassist-workers/internal/models"
)

// ==========================
// Static catalog
// ==========================

func TestStaticCatalog_ForCategory(t *testing.T) {
	catalog := NewStaticCatalog()
	ctx := context.Background()

	tests := []struct {
		category models.Category
		names    []string
	}{
		{models.CategoryPainFever, []string{"Paracetamol", "Ibuprofen"}},
		{models.CategoryColdCough, []string{"Cetirizine"}},
		{models.CategoryAcidity, []string{"Omeprazole"}},
		{models.CategoryDigestive, []string{"Loperamide"}},
		{models.CategorySkin, []string{"Cetirizine", "Calamine Lotion"}},
		{models.Category(""), nil},
		{models.Category("dental"), nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			meds, err := catalog.ForCategory(ctx, tt.category)
			require.NoError(t, err)
			require.NotNil(t, meds)

			var names []string
			for _, m := range meds {
				names = append(names, m.Name)
				assert.Equal(t, tt.category, m.Category)
				assert.NotEmpty(t, m.Dosage)
			}
			assert.Equal(t, tt.names, names)
		})
	}
}

func TestStaticCatalog_ReturnsCopies(t *testing.T) {
	catalog := NewStaticCatalog()

	meds, _ := catalog.ForCategory(context.Background(), models.CategoryPainFever)
	meds[0].Brands[0] = "Tampered"

	again, _ := catalog.ForCategory(context.Background(), models.CategoryPainFever)
	assert.Equal(t, "Crocin", again[0].Brands[0])
}

func TestStaticCatalog_All(t *testing.T) {
	all := NewStaticCatalog().All()
	assert.Len(t, all, 7)
	assert.Equal(t, "Paracetamol", all[0].Name)
	assert.Equal(t, "Calamine Lotion", all[len(all)-1].Name)
}

// ==========================
// Elasticsearch catalog
// ==========================

func newTestES(t *testing.T, handler http.HandlerFunc) *elasticsearch.Client {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return es
}

func TestElasticCatalog_ForCategory(t *testing.T) {
	var gotPath, gotBody string
	es := newTestES(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		io.WriteString(w, `{"hits":{"total":{"value":1},"hits":[{"_source":{"name":"Omeprazole","genericName":"Omeprazole","category":"acidity","dosage":"20mg"}}]}}`)
	})

	catalog := NewElasticCatalog(es, "medicines", logger.NewTestLogger(t))
	meds, err := catalog.ForCategory(context.Background(), models.CategoryAcidity)
	require.NoError(t, err)

	assert.Equal(t, "/medicines/_search", gotPath)
	assert.Contains(t, gotBody, `"term":{"category":"acidity"}`)
	require.Len(t, meds, 1)
	assert.Equal(t, "Omeprazole", meds[0].Name)
	assert.Equal(t, models.CategoryAcidity, meds[0].Category)
}

func TestElasticCatalog_UnknownCategorySkipsQuery(t *testing.T) {
	called := false
	es := newTestES(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	meds, err := NewElasticCatalog(es, "medicines", logger.NewTestLogger(t)).ForCategory(context.Background(), "dental")
	require.NoError(t, err)
	assert.Empty(t, meds)
	assert.False(t, called)
}

func TestElasticCatalog_Errors(t *testing.T) {
	t.Run("missing index is empty", func(t *testing.T) {
		es := newTestES(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"error":{"type":"index_not_found_exception"},"status":404}`)
		})
		meds, err := NewElasticCatalog(es, "medicines", logger.NewTestLogger(t)).ForCategory(context.Background(), models.CategorySkin)
		require.NoError(t, err)
		assert.Empty(t, meds)
	})

	t.Run("server error", func(t *testing.T) {
		es := newTestES(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, `{"error":{"type":"parsing_exception"},"status":400}`)
		})
		_, err := NewElasticCatalog(es, "medicines", logger.NewTestLogger(t)).ForCategory(context.Background(), models.CategorySkin)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeCatalogQueryFailed))
	})
}

func TestElasticCatalog_Seed(t *testing.T) {
	var lines []string
	es := newTestES(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/_bulk", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		lines = strings.Split(strings.TrimSpace(string(raw)), "\n")
		io.WriteString(w, `{"took":3,"errors":false,"items":[]}`)
	})

	catalog := NewElasticCatalog(es, "medicines", logger.NewTestLogger(t))
	require.NoError(t, catalog.Seed(context.Background(), NewStaticCatalog().All()))

	require.Len(t, lines, 14)
	assert.Contains(t, lines[0], `"_id":"pain_fever:paracetamol"`)
	assert.Contains(t, lines[12], `"_id":"skin:calamine-lotion"`)
}

func TestElasticCatalog_SeedItemErrors(t *testing.T) {
	es := newTestES(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"took":3,"errors":true,"items":[]}`)
	})
	err := NewElasticCatalog(es, "medicines", logger.NewTestLogger(t)).Seed(context.Background(), NewStaticCatalog().All())
	assert.Error(t, err)
}

// ==========================
// Redis cache
// ==========================

type fakeCatalog struct {
	calls int
	fn    func(models.Category) ([]models.Medicine, error)
}

func (f *fakeCatalog) ForCategory(_ context.Context, c models.Category) ([]models.Medicine, error) {
	f.calls++
	return f.fn(c)
}

func TestCachedCatalog_MissThenStore(t *testing.T) {
	db, mock := redismock.NewClientMock()
	static := NewStaticCatalog()
	next := &fakeCatalog{fn: func(c models.Category) ([]models.Medicine, error) {
		return static.ForCategory(context.Background(), c)
	}}

	meds, _ := static.ForCategory(context.Background(), models.CategoryAcidity)
	data, _ := json.Marshal(meds)

	mock.ExpectGet("medicines:acidity").RedisNil()
	mock.ExpectSet("medicines:acidity", data, 10*time.Minute).SetVal("OK")

	cached := NewCachedCatalog(next, db, 10*time.Minute, logger.NewTestLogger(t))
	got, err := cached.ForCategory(context.Background(), models.CategoryAcidity)
	require.NoError(t, err)
	assert.Equal(t, meds, got)
	assert.Equal(t, 1, next.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedCatalog_Hit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	next := &fakeCatalog{fn: func(models.Category) ([]models.Medicine, error) {
		t.Fatal("backing catalog should not be called on a hit")
		return nil, nil
	}}

	mock.ExpectGet("medicines:digestive").SetVal(`[{"name":"Loperamide","category":"digestive"}]`)

	got, err := NewCachedCatalog(next, db, time.Minute, logger.NewTestLogger(t)).ForCategory(context.Background(), models.CategoryDigestive)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Loperamide", got[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedCatalog_RedisDownFallsThrough(t *testing.T) {
	db, mock := redismock.NewClientMock()
	next := &fakeCatalog{fn: func(models.Category) ([]models.Medicine, error) {
		return []models.Medicine{{Name: "Paracetamol"}}, nil
	}}

	mock.ExpectGet("medicines:pain_fever").SetErr(errors.New("connection refused"))
	mock.Regexp().ExpectSet("medicines:pain_fever", `.*`, time.Minute).SetErr(errors.New("connection refused"))

	got, err := NewCachedCatalog(next, db, time.Minute, logger.NewTestLogger(t)).ForCategory(context.Background(), models.CategoryPainFever)
	require.NoError(t, err)
	assert.Equal(t, "Paracetamol", got[0].Name)
}

func TestCachedCatalog_BackendErrorPropagates(t *testing.T) {
	db, mock := redismock.NewClientMock()
	next := &fakeCatalog{fn: func(models.Category) ([]models.Medicine, error) {
		return nil, apperrors.NewCatalogQueryError(errors.New("es down"))
	}}
	mock.ExpectGet("medicines:skin").RedisNil()

	_, err := NewCachedCatalog(next, db, time.Minute, logger.NewTestLogger(t)).ForCategory(context.Background(), models.CategorySkin)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeCatalogQueryFailed))
}
