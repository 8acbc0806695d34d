// internal/records/reminders.go
package records

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "medassist-workers/internal/common/errors"
	"medassist-workers/internal/models"
	"medassist-workers/internal/store"
)

var (
	ReminderFrequencies = []string{"Once daily", "Twice daily", "Three times daily", "As needed"}
	ReminderTimes       = []string{"6:00 AM", "8:00 AM", "9:00 AM", "12:00 PM", "2:00 PM", "6:00 PM", "8:00 PM", "10:00 PM"}
)

const (
	minReminderDays = 1
	maxReminderDays = 90
)

func ValidateReminder(r models.Reminder) error {
	if strings.TrimSpace(r.Medicine) == "" {
		return apperrors.NewInputEmptyError("medicine")
	}
	if !contains(ReminderFrequencies, r.Frequency) {
		return apperrors.NewValidationError("frequency", fmt.Sprintf("frequency must be one of %s", strings.Join(ReminderFrequencies, ", ")))
	}
	if len(r.Times) == 0 {
		return apperrors.NewValidationError("times", "select at least one reminder time")
	}
	for _, t := range r.Times {
		if !contains(ReminderTimes, t) {
			return apperrors.NewValidationError("times", "unsupported reminder time "+t)
		}
	}
	if r.DurationDays < minReminderDays || r.DurationDays > maxReminderDays {
		return apperrors.NewValidationError("durationDays", fmt.Sprintf("duration must be between %d and %d days", minReminderDays, maxReminderDays))
	}
	return nil
}

func (s *Service) SetReminder(ctx context.Context, r models.Reminder) (*models.Reminder, error) {
	r.Medicine = strings.TrimSpace(r.Medicine)
	if err := ValidateReminder(r); err != nil {
		return nil, err
	}
	r.ID = ""
	r.Active = true
	r.CreatedAt = s.now().Format(time.RFC3339)

	doc, err := store.ToDocument(r)
	if err != nil {
		return nil, apperrors.NewStoreOperationError("encode", err)
	}
	delete(doc, "id")

	stored, err := s.store.Append(ctx, store.CollectionReminders, doc)
	if err != nil {
		return nil, err
	}
	r.ID = stored.ID()

	s.logger.Info("reminder set", map[string]interface{}{"reminderId": r.ID, "medicine": r.Medicine})
	return &r, nil
}

func (s *Service) ListActiveReminders(ctx context.Context) ([]models.Reminder, error) {
	all, err := s.reminders(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]models.Reminder, 0, len(all))
	for _, r := range all {
		if r.Active {
			active = append(active, r)
		}
	}
	return active, nil
}

// GetReminder looks a reminder up by id, active or not.
func (s *Service) GetReminder(ctx context.Context, id string) (*models.Reminder, error) {
	all, err := s.reminders(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range all {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, apperrors.NewDocumentNotFoundError(store.CollectionReminders, id)
}

func (s *Service) DeactivateReminder(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.NewInputEmptyError("reminderId")
	}
	if err := s.store.UpdateField(ctx, store.CollectionReminders, id, "active", false); err != nil {
		return err
	}
	s.logger.Info("reminder deactivated", map[string]interface{}{"reminderId": id})
	return nil
}

func (s *Service) reminders(ctx context.Context) ([]models.Reminder, error) {
	docs, err := s.store.QueryAll(ctx, store.CollectionReminders)
	if err != nil {
		return nil, err
	}
	out := make([]models.Reminder, 0, len(docs))
	for _, d := range docs {
		r := models.Reminder{Active: true}
		if err := store.Decode(d, &r); err != nil {
			s.logger.Warn("skipping undecodable reminder", map[string]interface{}{"id": d.ID(), "error": err.Error()})
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
