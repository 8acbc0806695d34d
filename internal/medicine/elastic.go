// internal/medicine/elastic.go
package medicine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	apperrors "medassist-workers/internal/common/errors"
	"medassist-workers/internal/common/logger"
	"medassist-workers/internal/models"
)

const maxCategoryHits = 50

var ErrSearchFailed = errors.New("SEARCH_QUERY_FAILED")

// ElasticCatalog reads medicines from an index with a keyword "category" field.
type ElasticCatalog struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewElasticCatalog(client *elasticsearch.Client, index string, log logger.Logger) *ElasticCatalog {
	return &ElasticCatalog{
		client: client,
		index:  index,
		logger: log.With(map[string]interface{}{"component": "medicine-catalog", "index": index}),
	}
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source models.Medicine `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (c *ElasticCatalog) ForCategory(ctx context.Context, category models.Category) ([]models.Medicine, error) {
	if _, ok := models.ParseCategory(string(category)); !ok {
		return []models.Medicine{}, nil
	}

	body, err := json.Marshal(map[string]interface{}{
		"query": map[string]interface{}{
			"term": map[string]interface{}{"category": string(category)},
		},
		"sort": []interface{}{map[string]interface{}{"name.keyword": map[string]interface{}{"unmapped_type": "keyword"}}},
	})
	if err != nil {
		return nil, apperrors.NewCatalogQueryError(err)
	}

	size := maxCategoryHits
	req := esapi.SearchRequest{
		Index: []string{c.index},
		Body:  bytes.NewReader(body),
		Size:  &size,
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return nil, apperrors.NewCatalogQueryError(fmt.Errorf("%w: %v", ErrSearchFailed, err))
	}
	defer res.Body.Close()

	if res.StatusCode == 404 {
		c.logger.Warn("medicine index missing", nil)
		return []models.Medicine{}, nil
	}
	if res.IsError() {
		return nil, apperrors.NewCatalogQueryError(fmt.Errorf("%w: %s", ErrSearchFailed, res.String()))
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, apperrors.NewCatalogQueryError(err)
	}

	out := make([]models.Medicine, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

// Seed bulk-indexes medicines under ids "{category}:{name}", so re-seeding
// overwrites instead of duplicating.
func (c *ElasticCatalog) Seed(ctx context.Context, medicines []models.Medicine) error {
	if len(medicines) == 0 {
		return nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, m := range medicines {
		meta := map[string]interface{}{
			"index": map[string]interface{}{
				"_index": c.index,
				"_id":    documentID(m),
			},
		}
		if err := enc.Encode(meta); err != nil {
			return err
		}
		if err := enc.Encode(m); err != nil {
			return err
		}
	}

	req := esapi.BulkRequest{Body: &buf, Refresh: "true"}
	res, err := req.Do(ctx, c.client)
	if err != nil {
		return apperrors.NewCatalogQueryError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return apperrors.NewCatalogQueryError(fmt.Errorf("bulk seed failed: %s", res.String()))
	}

	var result struct {
		Errors bool `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return apperrors.NewCatalogQueryError(err)
	}
	if result.Errors {
		return apperrors.NewCatalogQueryError(errors.New("bulk seed reported item errors"))
	}

	c.logger.Info("medicine index seeded", map[string]interface{}{"count": len(medicines)})
	return nil
}

func documentID(m models.Medicine) string {
	return string(m.Category) + ":" + strings.ToLower(strings.ReplaceAll(m.Name, " ", "-"))
}
