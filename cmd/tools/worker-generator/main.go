// cmd/tools/worker-generator/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"medassist-workers/pkg/registry"
)

// WorkerData holds data for templates
type WorkerData struct {
	Name         string
	PackageName  string
	TaskType     string
	Description  string
	Timeout      string
	InputFields  []Field
	OutputFields []Field
	Required     []Field
}

// Field is one struct field derived from a JSON schema property.
type Field struct {
	GoName   string
	GoType   string
	JSONName string
	Optional bool
}

// Tag renders the struct tag, with omitempty for optional fields.
func (f Field) Tag() string {
	if f.Optional {
		return fmt.Sprintf("`json:\"%s,omitempty\"`", f.JSONName)
	}
	return fmt.Sprintf("`json:\"%s\"`", f.JSONName)
}

// goTypeFromSchema maps a JSON schema property to a Go type. Nullable
// scalars ("type": ["string", "null"]) become pointers.
func goTypeFromSchema(prop map[string]interface{}) string {
	nullable := false
	jsonType := ""
	switch t := prop["type"].(type) {
	case string:
		jsonType = t
	case []interface{}:
		for _, v := range t {
			s, _ := v.(string)
			if s == "null" {
				nullable = true
			} else if jsonType == "" {
				jsonType = s
			}
		}
	}
	if jsonType == "" {
		if _, ok := prop["enum"]; ok {
			jsonType = "string"
		}
	}

	var goType string
	switch jsonType {
	case "string":
		goType = "string"
	case "integer":
		goType = "int"
	case "number":
		goType = "float64"
	case "boolean":
		goType = "bool"
	case "object":
		return "map[string]interface{}"
	case "array":
		items, _ := prop["items"].(map[string]interface{})
		if items == nil {
			return "[]interface{}"
		}
		return "[]" + goTypeFromSchema(items)
	default:
		return "interface{}"
	}
	if nullable {
		return "*" + goType
	}
	return goType
}

// goName turns a camelCase property into an exported Go identifier,
// keeping the Id/Url initialisms upper-case.
func goName(prop string) string {
	if prop == "" {
		return prop
	}
	name := strings.ToUpper(prop[:1]) + prop[1:]
	for _, initialism := range []string{"Id", "Url"} {
		if strings.HasSuffix(name, initialism) {
			name = strings.TrimSuffix(name, initialism) + strings.ToUpper(initialism)
		}
	}
	return name
}

// fieldsFromSchema lists the schema's properties in name order.
func fieldsFromSchema(schema map[string]interface{}) []Field {
	props, _ := schema["properties"].(map[string]interface{})
	required := map[string]bool{}
	if req, ok := schema["required"].([]interface{}); ok {
		for _, r := range req {
			if s, ok := r.(string); ok {
				required[s] = true
			}
		}
	}

	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]Field, 0, len(names))
	for _, name := range names {
		prop, _ := props[name].(map[string]interface{})
		fields = append(fields, Field{
			GoName:   goName(name),
			GoType:   goTypeFromSchema(prop),
			JSONName: name,
			Optional: !required[name],
		})
	}
	return fields
}

func requiredStrings(fields []Field) []Field {
	var out []Field
	for _, f := range fields {
		if !f.Optional && f.GoType == "string" {
			out = append(out, f)
		}
	}
	return out
}

func newWorkerData(a *registry.Activity) (WorkerData, error) {
	timeout, err := a.TimeoutDuration()
	if err != nil {
		return WorkerData{}, fmt.Errorf("activity %s: %w", a.ID, err)
	}
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	inputs := fieldsFromSchema(a.InputSchema)
	return WorkerData{
		Name:         a.DisplayName,
		PackageName:  strings.ReplaceAll(a.ID, "-", ""),
		TaskType:     a.TaskType,
		Description:  a.Description,
		Timeout:      durationLiteral(timeout),
		InputFields:  inputs,
		OutputFields: fieldsFromSchema(a.OutputSchema),
		Required:     requiredStrings(inputs),
	}, nil
}

func durationLiteral(d time.Duration) string {
	if d%time.Second == 0 {
		return fmt.Sprintf("%d * time.Second", d/time.Second)
	}
	return fmt.Sprintf("%d * time.Millisecond", d/time.Millisecond)
}

const configTemplate = `// internal/workers/{{ .Dir }}/config.go
package {{ .PackageName }}

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: {{ .Timeout }},
	}
}
`

const modelsTemplate = `// internal/workers/{{ .Dir }}/models.go
package {{ .PackageName }}

type Input struct {
{{- range .InputFields }}
	{{ .GoName }} {{ .GoType }} {{ .Tag }}
{{- end }}
}

type Output struct {
{{- range .OutputFields }}
	{{ .GoName }} {{ .GoType }} {{ .Tag }}
{{- end }}
}
`

const handlerTemplate = `// internal/workers/{{ .Dir }}/handler.go
package {{ .PackageName }}

import (
	"context"
	"encoding/json"
{{- if .Required }}
	"strings"
{{- end }}

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"medassist-workers/internal/common/camunda"
	apperrors "medassist-workers/internal/common/errors"
	"medassist-workers/internal/common/logger"
)

const (
	TaskType = "{{ .TaskType }}"
)

// Handler: {{ .Description }}
type Handler struct {
	config *Config
	errors *apperrors.ErrorHandler
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		errors: apperrors.NewErrorHandler(log),
		logger: log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.errors.HandleJobError(context.Background(), client, job, apperrors.NewParseError(err))
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.errors.HandleJobError(context.Background(), client, job, err)
		return err
	}
	return camunda.CompleteJob(context.Background(), client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
{{- range .Required }}
	if strings.TrimSpace(input.{{ .GoName }}) == "" {
		return nil, apperrors.NewInputEmptyError("{{ .JSONName }}")
	}
{{- end }}

	return &Output{}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
`

const testTemplate = `// internal/workers/{{ .Dir }}/handler_test.go
package {{ .PackageName }}

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"medassist-workers/internal/common/logger"
)

func createTestHandler(t *testing.T) *Handler {
	return NewHandler(&Config{Timeout: time.Second}, logger.NewTestLogger(t))
}

func TestHandler_Execute(t *testing.T) {
	handler := createTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{})
{{- if .Required }}
	require.Error(t, err)
	require.Nil(t, output)
{{- else }}
	require.NoError(t, err)
	require.NotNil(t, output)
{{- end }}
}
`

// templateData adds the output directory to WorkerData for file headers.
type templateData struct {
	WorkerData
	Dir string
}

func render(dir string, data templateData, force bool) error {
	files := []struct {
		name string
		tmpl string
	}{
		{"config.go", configTemplate},
		{"models.go", modelsTemplate},
		{"handler.go", handlerTemplate},
		{"handler_test.go", testTemplate},
	}

	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use -force to overwrite)", path)
		}

		tmpl, err := template.New(f.name).Parse(f.tmpl)
		if err != nil {
			return fmt.Errorf("parse %s template: %w", f.name, err)
		}
		out, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := tmpl.Execute(out, data); err != nil {
			out.Close()
			return fmt.Errorf("render %s: %w", f.name, err)
		}
		if err := out.Close(); err != nil {
			return err
		}
		fmt.Printf("  wrote %s\n", path)
	}
	return nil
}

func main() {
	activity := flag.String("activity", "", "Activity ID from the registry (e.g., set-reminder)")
	outputDir := flag.String("output", "./internal/workers/", "Root directory for worker packages")
	registryPath := flag.String("registry", "", "Registry file (empty uses the embedded registry)")
	force := flag.Bool("force", false, "Overwrite existing files")
	flag.Parse()

	if *activity == "" {
		fmt.Println("Usage: worker-generator -activity <id> [-output <dir>] [-registry <path>] [-force]")
		fmt.Println("\nExample:")
		fmt.Println("  go run ./cmd/tools/worker-generator -activity track-order -output /tmp/workers")
		os.Exit(1)
	}

	reg, err := registry.LoadRegistry(*registryPath)
	if err != nil {
		fmt.Printf("Error loading registry: %v\n", err)
		os.Exit(1)
	}

	var found *registry.Activity
	for i := range reg.Activities {
		if reg.Activities[i].ID == *activity {
			found = &reg.Activities[i]
			break
		}
	}
	if found == nil {
		fmt.Printf("Activity '%s' not found in registry\n", *activity)
		os.Exit(1)
	}

	data, err := newWorkerData(found)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	rel := filepath.Join(found.Category, found.ID)
	workerDir := filepath.Join(*outputDir, rel)
	if err := os.MkdirAll(workerDir, 0755); err != nil {
		fmt.Printf("Error creating directory: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generating %s worker in %s\n", found.TaskType, workerDir)
	if err := render(workerDir, templateData{WorkerData: data, Dir: filepath.ToSlash(rel)}, *force); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Done. Register the handler in cmd/worker-manager/main.go.")
}
