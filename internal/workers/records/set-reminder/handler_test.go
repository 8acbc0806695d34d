// internal/workers/records/set-reminder/handler_test.go
package setreminder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "medassist-workers/internal/common/errors"
	"medassist-workers/internal/common/logger"
	"medassist-workers/internal/records"
	"medassist-workers/internal/store"
)

func createTestHandler(t *testing.T) (*Handler, *records.Service) {
	log := logger.NewTestLogger(t)
	svc := records.NewService(store.NewMemoryStore(), log)
	return NewHandler(&Config{Timeout: time.Second}, svc, log), svc
}

func validInput() *Input {
	return &Input{
		Medicine:     "Omeprazole",
		Dosage:       "20mg",
		Frequency:    "Once daily",
		Times:        []string{"8:00 AM"},
		DurationDays: 14,
	}
}

func TestHandler_Execute(t *testing.T) {
	handler, svc := createTestHandler(t)

	output, err := handler.Execute(context.Background(), validInput())
	require.NoError(t, err)
	assert.Regexp(t, `^rem_1_\d+$`, output.ReminderID)
	assert.True(t, output.Reminder.Active)
	assert.NotEmpty(t, output.Reminder.CreatedAt)

	active, err := svc.ListActiveReminders(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Omeprazole", active[0].Medicine)
}

func TestHandler_Execute_Validation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(in *Input)
		wantCode string
	}{
		{"missing medicine", func(in *Input) { in.Medicine = "" }, "INPUT_EMPTY"},
		{"unknown frequency", func(in *Input) { in.Frequency = "Hourly" }, "VALIDATION_ERROR"},
		{"no times", func(in *Input) { in.Times = nil }, "VALIDATION_ERROR"},
		{"unsupported time", func(in *Input) { in.Times = []string{"7:00 AM"} }, "VALIDATION_ERROR"},
		{"zero days", func(in *Input) { in.DurationDays = 0 }, "VALIDATION_ERROR"},
		{"ninety one days", func(in *Input) { in.DurationDays = 91 }, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := createTestHandler(t)
			input := validInput()
			tt.mutate(input)

			_, err := handler.Execute(context.Background(), input)
			require.Error(t, err)
			stdErr, ok := apperrors.AsStandard(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, string(stdErr.Code))
		})
	}
}
