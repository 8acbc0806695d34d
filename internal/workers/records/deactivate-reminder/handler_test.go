// internal/workers/records/deactivate-reminder/handler_test.go
package deactivatereminder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "medassist-workers/internal/common/errors"
	"medassist-workers/internal/common/logger"
	"medassist-workers/internal/models"
	"medassist-workers/internal/records"
	"medassist-workers/internal/store"
)

func createTestHandler(t *testing.T) (*Handler, *records.Service) {
	log := logger.NewTestLogger(t)
	svc := records.NewService(store.NewMemoryStore(), log)
	return NewHandler(&Config{Timeout: time.Second}, svc, log), svc
}

func TestHandler_Execute(t *testing.T) {
	handler, svc := createTestHandler(t)
	ctx := context.Background()

	kept, err := svc.SetReminder(ctx, models.Reminder{Medicine: "Cetirizine", Frequency: "As needed", Times: []string{"10:00 PM"}, DurationDays: 5})
	require.NoError(t, err)
	dropped, err := svc.SetReminder(ctx, models.Reminder{Medicine: "Ibuprofen", Frequency: "Twice daily", Times: []string{"8:00 AM", "8:00 PM"}, DurationDays: 3})
	require.NoError(t, err)

	output, err := handler.Execute(ctx, &Input{ReminderID: dropped.ID})
	require.NoError(t, err)
	assert.Equal(t, dropped.ID, output.ReminderID)
	assert.False(t, output.Active)

	active, err := svc.ListActiveReminders(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, kept.ID, active[0].ID)

	stored, err := svc.GetReminder(ctx, dropped.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)
}

func TestHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		wantCode apperrors.ErrorCode
	}{
		{"blank id", " ", apperrors.ErrCodeInputEmpty},
		{"unknown id", "rem_9_1760000000", apperrors.ErrCodeDocumentNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := createTestHandler(t)
			_, err := handler.Execute(context.Background(), &Input{ReminderID: tt.id})
			require.Error(t, err)
			assert.True(t, apperrors.HasCode(err, tt.wantCode))
		})
	}
}
