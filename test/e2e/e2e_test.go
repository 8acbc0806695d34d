// test/e2e/e2e_test.go
package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medassist-workers/internal/api"
	"medassist-workers/internal/app"
	"medassist-workers/internal/common/config"
	"medassist-workers/internal/common/logger"
	"medassist-workers/internal/models"
	"medassist-workers/pkg/registry"

	as "medassist-workers/internal/workers/triage/analyze-symptoms"
	gmr "medassist-workers/internal/workers/triage/get-medicine-recommendations"

	po "medassist-workers/internal/workers/pharmacy/place-order"
	sm "medassist-workers/internal/workers/pharmacy/search-medicine"
	to "medassist-workers/internal/workers/pharmacy/track-order"

	dr "medassist-workers/internal/workers/records/deactivate-reminder"
	qhr "medassist-workers/internal/workers/records/query-health-records"

	sn "medassist-workers/internal/workers/communication/send-notification"
)

// ==========================
// Test Helper Functions
// ==========================

func baseConfig() *config.Config {
	return &config.Config{
		App:      config.AppConfig{Name: "medassist-e2e", Environment: "test"},
		Store:    config.StoreConfig{Backend: "memory"},
		Catalog:  config.CatalogConfig{Backend: "static"},
		GenAI:    config.GenAIConfig{Provider: "none"},
		Pharmacy: config.PharmacyConfig{Seed: 11},
	}
}

func sqliteConfig(t *testing.T) *config.Config {
	cfg := baseConfig()
	cfg.Store = config.StoreConfig{Backend: "sqlite", RunMigrations: true}
	cfg.Database.SQLite.Path = filepath.Join(t.TempDir(), "medassist.db")
	return cfg
}

func redisConfig(t *testing.T) *config.Config {
	mr := miniredis.RunT(t)
	cfg := baseConfig()
	cfg.Store = config.StoreConfig{Backend: "redis"}
	cfg.Catalog.CacheTTL = 60000
	cfg.Database.Redis.Address = mr.Addr()
	return cfg
}

func buildServices(t *testing.T, cfg *config.Config) *app.Services {
	t.Helper()
	svc, err := app.Build(context.Background(), cfg, nil, logger.NewTestLogger(t))
	require.NoError(t, err)
	t.Cleanup(svc.Close)
	require.NoError(t, svc.Ready(context.Background()))
	return svc
}

func createTestServer(t *testing.T, svc *app.Services) *httptest.Server {
	srv := httptest.NewServer(api.NewRouter(svc, logger.NewTestLogger(t)))
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, method, url string, body interface{}, out interface{}) int {
	t.Helper()
	var payload []byte
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		payload = raw
	}

	req, err := http.NewRequest(method, url, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func backends(t *testing.T) map[string]func(*testing.T) *config.Config {
	return map[string]func(*testing.T) *config.Config{
		"memory": func(*testing.T) *config.Config { return baseConfig() },
		"sqlite": sqliteConfig,
		"redis":  redisConfig,
	}
}

// ==========================
// Journeys
// ==========================

// TestSymptomToOrderJourney walks a patient from a symptom check through an
// order and its confirmation, mixing worker calls and HTTP calls over the
// same services.
func TestSymptomToOrderJourney(t *testing.T) {
	for name, mkConfig := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			log := logger.NewTestLogger(t)
			svc := buildServices(t, mkConfig(t))
			srv := createTestServer(t, svc)

			// 1. triage through the worker, which saves a record by default
			analyze := as.NewHandler(as.LoadConfig(), svc.Analyzer, svc.Records, log)
			age := 34
			analysis, err := analyze.Execute(ctx, &as.Input{Text: "I have a headache and fever of 102", Age: &age})
			require.NoError(t, err)
			assert.False(t, analysis.IsEmergency)
			assert.Equal(t, models.SeverityModerate, analysis.Severity)
			assert.Regexp(t, `^rec_1_\d+$`, analysis.RecordID)
			require.NotNil(t, analysis.Analysis.OTCMedicineCategory)
			category := string(*analysis.Analysis.OTCMedicineCategory)
			assert.Equal(t, "pain_fever", category)

			// 2. the record is visible over HTTP
			var summary models.RecordSummary
			require.Equal(t, http.StatusOK, call(t, http.MethodGet, srv.URL+"/api/records", nil, &summary))
			require.Equal(t, 1, summary.Total)
			assert.Equal(t, analysis.RecordID, summary.Records[0].ID)
			assert.Equal(t, 1, summary.CommonSymptoms["fever"])

			// 3. recommendations for the suggested category
			recommend := gmr.NewHandler(gmr.LoadConfig(), svc.Catalog, log)
			meds, err := recommend.Execute(ctx, &gmr.Input{Category: &category})
			require.NoError(t, err)
			require.NotEmpty(t, meds.Medicines)
			medicine := meds.Medicines[0].Name

			// 4. quote it across pharmacies
			search := sm.NewHandler(sm.LoadConfig(), svc.Pharmacy, log)
			quotes, err := search.Execute(ctx, &sm.Input{Name: medicine})
			require.NoError(t, err)
			require.Len(t, quotes.Quotes, 4)
			require.NotNil(t, quotes.Cheapest)
			for _, q := range quotes.Quotes {
				assert.GreaterOrEqual(t, q.FinalPrice, quotes.Cheapest.FinalPrice)
			}

			// 5. order from the cheapest pharmacy
			place := po.NewHandler(po.LoadConfig(), svc.Orders, log)
			placed, err := place.Execute(ctx, &po.Input{
				Medicine:   medicine,
				PharmacyID: quotes.Cheapest.Pharmacy.ID,
				Quantity:   2,
				UnitPrice:  quotes.Cheapest.FinalPrice,
			})
			require.NoError(t, err)
			assert.Regexp(t, `^ORD\d{5}$`, placed.OrderID)
			assert.Equal(t, 2*quotes.Cheapest.FinalPrice+quotes.Cheapest.Pharmacy.DeliveryFee, placed.Total)
			assert.Regexp(t, `^ord_1_\d+$`, placed.Order.RecordID)

			// 6. tracking over HTTP and through the worker never goes backwards
			var tracking models.TrackingStatus
			require.Equal(t, http.StatusOK, call(t, http.MethodGet, srv.URL+"/api/orders/"+placed.OrderID+"/tracking", nil, &tracking))
			assert.Equal(t, placed.OrderID, tracking.OrderID)

			track := to.NewHandler(to.LoadConfig(), svc.Orders, log)
			tracked, err := track.Execute(ctx, &to.Input{OrderID: placed.OrderID})
			require.NoError(t, err)
			assert.GreaterOrEqual(t, tracked.Status.Rank(), tracking.Status.Rank())

			var orders struct {
				Orders []models.Order `json:"orders"`
			}
			require.Equal(t, http.StatusOK, call(t, http.MethodGet, srv.URL+"/api/orders", nil, &orders))
			require.Len(t, orders.Orders, 1)
			assert.Equal(t, tracked.Status, orders.Orders[0].Status)

			// 7. confirmation with every channel disabled
			notify := sn.NewHandler(sn.LoadConfig(), svc.Notifications, log)
			sent, err := notify.Execute(ctx, &sn.Input{
				NotificationType: models.NotificationOrderConfirmation,
				Email:            "patient@example.com",
				Data:             map[string]interface{}{"orderId": placed.OrderID, "medicine": medicine},
			})
			require.NoError(t, err)
			assert.Equal(t, "disabled", sent.Status)
			assert.NotEmpty(t, sent.NotificationID)
		})
	}
}

func TestEmergencyJourney(t *testing.T) {
	ctx := context.Background()
	log := logger.NewTestLogger(t)
	svc := buildServices(t, baseConfig())
	srv := createTestServer(t, svc)

	var check map[string]bool
	require.Equal(t, http.StatusOK, call(t, http.MethodPost, srv.URL+"/api/symptoms/emergency-check",
		map[string]string{"text": "sudden chest pain and difficulty breathing"}, &check))
	assert.True(t, check["isEmergency"])

	analyze := as.NewHandler(as.LoadConfig(), svc.Analyzer, svc.Records, log)
	out, err := analyze.Execute(ctx, &as.Input{Text: "sudden chest pain and difficulty breathing"})
	require.NoError(t, err)
	assert.True(t, out.IsEmergency)
	assert.Equal(t, models.SeverityEmergency, out.Severity)
	assert.NotEmpty(t, out.RecordID)

	query := qhr.NewHandler(qhr.LoadConfig(), svc.Records, log)
	found, err := query.Execute(ctx, &qhr.Input{Severities: []string{"emergency"}})
	require.NoError(t, err)
	require.Equal(t, 1, found.Total)
	assert.Equal(t, models.SeverityEmergency, found.Records[0].Severity)
}

func TestReminderJourney(t *testing.T) {
	for name, mkConfig := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			svc := buildServices(t, mkConfig(t))
			srv := createTestServer(t, svc)

			var created models.Reminder
			require.Equal(t, http.StatusCreated, call(t, http.MethodPost, srv.URL+"/api/reminders", map[string]interface{}{
				"medicine":     "Cetirizine",
				"dosage":       "10mg",
				"frequency":    "Once daily",
				"times":        []string{"8:00 PM"},
				"durationDays": 7,
			}, &created))
			assert.Regexp(t, `^rem_1_\d+$`, created.ID)
			assert.True(t, created.Active)

			deactivate := dr.NewHandler(dr.LoadConfig(), svc.Records, logger.NewTestLogger(t))
			out, err := deactivate.Execute(ctx, &dr.Input{ReminderID: created.ID})
			require.NoError(t, err)
			assert.False(t, out.Active)

			var active struct {
				Reminders []models.Reminder `json:"reminders"`
			}
			require.Equal(t, http.StatusOK, call(t, http.MethodGet, srv.URL+"/api/reminders", nil, &active))
			assert.Empty(t, active.Reminders)
		})
	}
}

// ==========================
// Registry Coverage
// ==========================

// TestRegistryCoversWorkers keeps the embedded registry and the worker
// packages in step.
func TestRegistryCoversWorkers(t *testing.T) {
	reg, err := registry.Load()
	require.NoError(t, err)
	require.NoError(t, reg.Validate())

	for _, taskType := range []string{
		as.TaskType, gmr.TaskType, sm.TaskType, po.TaskType, to.TaskType,
		qhr.TaskType, dr.TaskType, sn.TaskType,
	} {
		activity, ok := reg.Find(taskType)
		require.True(t, ok, taskType)
		schema, err := activity.CompileInputSchema()
		require.NoError(t, err)
		assert.NotNil(t, schema, taskType)
	}
}
