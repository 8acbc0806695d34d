// pkg/registry/registry_test.go
package registry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var taskTypes = []string{
	"analyze-symptoms",
	"check-emergency",
	"get-medicine-recommendations",
	"search-medicine",
	"check-prescription",
	"place-order",
	"track-order",
	"query-health-records",
	"set-reminder",
	"deactivate-reminder",
	"send-notification",
}

func TestLoad_Embedded(t *testing.T) {
	reg, err := Load()
	require.NoError(t, err)
	require.NoError(t, reg.Validate())
	assert.Len(t, reg.Activities, len(taskTypes))

	for _, taskType := range taskTypes {
		t.Run(taskType, func(t *testing.T) {
			act, ok := reg.Find(taskType)
			require.True(t, ok)
			schema, err := act.CompileInputSchema()
			require.NoError(t, err)
			assert.NotNil(t, schema)
			timeout, err := act.TimeoutDuration()
			require.NoError(t, err)
			assert.Greater(t, timeout, time.Duration(0))
		})
	}

	_, ok := reg.Find("validate-subscription")
	assert.False(t, ok)
}

func TestInputSchemas(t *testing.T) {
	reg, err := Load()
	require.NoError(t, err)

	tests := []struct {
		taskType  string
		variables string
		valid     bool
	}{
		{"analyze-symptoms", `{"text":"fever 101","age":30}`, true},
		{"analyze-symptoms", `{"age":30}`, false},
		{"place-order", `{"medicine":"Paracetamol","pharmacyId":"ph_001","quantity":2}`, true},
		{"place-order", `{"medicine":"Paracetamol","pharmacyId":"ph_001","quantity":"two"}`, false},
		{"send-notification", `{"notificationType":"reminder","phone":"+15550100"}`, true},
		{"send-notification", `{"notificationType":"fax"}`, false},
		{"query-health-records", `{}`, true},
		{"deactivate-reminder", `{"reminderId":""}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.taskType+" "+tt.variables, func(t *testing.T) {
			act, ok := reg.Find(tt.taskType)
			require.True(t, ok)
			schema, err := act.CompileInputSchema()
			require.NoError(t, err)
			assert.Equal(t, tt.valid, schema.ValidateJSON([]byte(tt.variables)).Valid)
		})
	}
}

func TestValidate_ReportsProblems(t *testing.T) {
	reg := &ActivityRegistry{Activities: []Activity{
		{ID: "a", TaskType: "a", Timeout: "10s"},
		{ID: "a", TaskType: "a", Timeout: "ten seconds"},
		{ID: "", TaskType: ""},
		{ID: "b", TaskType: "b", InputSchema: map[string]interface{}{"type": 12}},
		{ID: "c", TaskType: "c", ImplementationStatus: "shipped"},
	}}

	err := reg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate activity id a")
	assert.Contains(t, err.Error(), "duplicate taskType a")
	assert.Contains(t, err.Error(), "invalid timeout")
	assert.Contains(t, err.Error(), "has no id")
	assert.Contains(t, err.Error(), "activity b")
	assert.Contains(t, err.Error(), `unknown implementationStatus "shipped"`)
}

func TestByCategory(t *testing.T) {
	reg, err := Load()
	require.NoError(t, err)

	pharmacy := reg.ByCategory("pharmacy")
	require.Len(t, pharmacy, 4)
	for _, a := range pharmacy {
		assert.Equal(t, "pharmacy", a.Category)
		assert.Equal(t, StatusCompleted, a.ImplementationStatus)
	}
	assert.Len(t, reg.ByCategory("triage"), 3)
	assert.Len(t, reg.ByCategory(""), len(taskTypes))
	assert.Empty(t, reg.ByCategory("franchise"))
}

func TestHasErrorCode(t *testing.T) {
	reg, err := Load()
	require.NoError(t, err)

	search, ok := reg.Find("search-medicine")
	require.True(t, ok)
	assert.True(t, search.HasErrorCode("PRESCRIPTION_REQUIRED"))
	assert.False(t, search.HasErrorCode("ORDER_NOT_FOUND"))

	deactivate, ok := reg.Find("deactivate-reminder")
	require.True(t, ok)
	assert.True(t, deactivate.HasErrorCode("DOCUMENT_NOT_FOUND"))
}

func TestLoadRegistry_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activities.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"2.0.0","activities":[{"id":"x","taskType":"x"}]}`), 0o644))

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", reg.Version)

	_, err = LoadRegistry(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	reg, err = LoadRegistry("")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", reg.Version)
}
