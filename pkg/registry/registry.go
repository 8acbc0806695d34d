// pkg/registry/registry.go
package registry

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"medassist-workers/internal/common/validation"
)

//go:embed activities.json
var embedded []byte

// Load returns the registry compiled into the binary.
func Load() (*ActivityRegistry, error) {
	return Parse(embedded)
}

// LoadRegistry reads a registry file, or the embedded one when path is empty.
func LoadRegistry(path string) (*ActivityRegistry, error) {
	if path == "" {
		return Load()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*ActivityRegistry, error) {
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}
	return &reg, nil
}

// Find looks an activity up by task type.
func (r *ActivityRegistry) Find(taskType string) (*Activity, bool) {
	for i := range r.Activities {
		if r.Activities[i].TaskType == taskType {
			return &r.Activities[i], true
		}
	}
	return nil, false
}

// CompileInputSchema compiles the activity's input schema. An activity without one
// returns nil.
func (a *Activity) CompileInputSchema() (*validation.Schema, error) {
	if len(a.InputSchema) == 0 {
		return nil, nil
	}
	schema, err := validation.Compile(a.InputSchema)
	if err != nil {
		return nil, fmt.Errorf("activity %s: %w", a.ID, err)
	}
	return schema, nil
}

// TimeoutDuration parses Timeout, or returns 0 when unset.
func (a *Activity) TimeoutDuration() (time.Duration, error) {
	if a.Timeout == "" {
		return 0, nil
	}
	return time.ParseDuration(a.Timeout)
}

// Validate reports every problem in the registry: missing or duplicate ids
// and task types, unknown statuses, unparsable timeouts and schemas that do
// not compile.
func (r *ActivityRegistry) Validate() error {
	var errs []error
	ids := map[string]bool{}
	taskTypes := map[string]bool{}

	for i := range r.Activities {
		a := &r.Activities[i]
		if a.ID == "" {
			errs = append(errs, fmt.Errorf("activity #%d has no id", i))
		} else if ids[a.ID] {
			errs = append(errs, fmt.Errorf("duplicate activity id %s", a.ID))
		}
		ids[a.ID] = true

		if a.TaskType == "" {
			errs = append(errs, fmt.Errorf("activity %s has no taskType", a.ID))
		} else if taskTypes[a.TaskType] {
			errs = append(errs, fmt.Errorf("duplicate taskType %s", a.TaskType))
		}
		taskTypes[a.TaskType] = true

		switch a.ImplementationStatus {
		case "", StatusPlanned, StatusInProgress, StatusCompleted, StatusVerified:
		default:
			errs = append(errs, fmt.Errorf("activity %s: unknown implementationStatus %q", a.ID, a.ImplementationStatus))
		}
		if _, err := a.TimeoutDuration(); err != nil {
			errs = append(errs, fmt.Errorf("activity %s: invalid timeout %q", a.ID, a.Timeout))
		}
		if _, err := a.CompileInputSchema(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
