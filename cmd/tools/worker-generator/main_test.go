// cmd/tools/worker-generator/main_test.go
package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medassist-workers/pkg/registry"
)

func TestGoTypeFromSchema(t *testing.T) {
	tests := []struct {
		name string
		prop map[string]interface{}
		want string
	}{
		{"string", map[string]interface{}{"type": "string"}, "string"},
		{"integer", map[string]interface{}{"type": "integer"}, "int"},
		{"nullable integer", map[string]interface{}{"type": []interface{}{"integer", "null"}}, "*int"},
		{"string array", map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}}, "[]string"},
		{"untyped array", map[string]interface{}{"type": "array"}, "[]interface{}"},
		{"object", map[string]interface{}{"type": "object"}, "map[string]interface{}"},
		{"enum", map[string]interface{}{"enum": []interface{}{"a", "b"}}, "string"},
		{"missing", map[string]interface{}{}, "interface{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, goTypeFromSchema(tt.prop))
		})
	}
}

func TestGoName(t *testing.T) {
	assert.Equal(t, "ReminderID", goName("reminderId"))
	assert.Equal(t, "DurationDays", goName("durationDays"))
	assert.Equal(t, "Text", goName("text"))
}

func TestNewWorkerData_FromRegistry(t *testing.T) {
	reg, err := registry.Load()
	require.NoError(t, err)
	activity, ok := reg.Find("deactivate-reminder")
	require.True(t, ok)

	data, err := newWorkerData(activity)
	require.NoError(t, err)

	assert.Equal(t, "deactivatereminder", data.PackageName)
	assert.Equal(t, "10 * time.Second", data.Timeout)
	require.Len(t, data.InputFields, 1)
	assert.Equal(t, "ReminderID", data.InputFields[0].GoName)
	assert.Equal(t, "`json:\"reminderId\"`", data.InputFields[0].Tag())
	require.Len(t, data.Required, 1)
	assert.Equal(t, "`json:\"active,omitempty\"`", data.OutputFields[0].Tag())
}

func TestRender_WritesWorkerPackage(t *testing.T) {
	reg, err := registry.Load()
	require.NoError(t, err)
	activity, ok := reg.Find("track-order")
	require.True(t, ok)

	data, err := newWorkerData(activity)
	require.NoError(t, err)

	dir := t.TempDir()
	td := templateData{WorkerData: data, Dir: "pharmacy/track-order"}
	require.NoError(t, render(dir, td, false))

	for _, name := range []string{"config.go", "models.go", "handler.go", "handler_test.go"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	handler, err := os.ReadFile(filepath.Join(dir, "handler.go"))
	require.NoError(t, err)
	assert.Contains(t, string(handler), `TaskType = "track-order"`)
	assert.Contains(t, string(handler), `NewInputEmptyError("orderId")`)

	assert.Error(t, render(dir, td, false), "existing files are kept without -force")
	assert.NoError(t, render(dir, td, true))
}
