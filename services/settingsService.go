package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/tarelfish/tarel-api/apperrors"
	"github.com/tarelfish/tarel-api/repositories"
)

const (
	nextDeliveryKey = "next_delivery_settings"
	// Older deployments stored a bare ISO date under this key.
	legacyNextDeliveryKey = "next_delivery_date"
)

// NextDelivery is the delivery-window configuration shown on the storefront.
type NextDelivery struct {
	ScheduledFor *string    `json:"scheduled_for"`
	CutoffAt     *string    `json:"cutoff_at"`
	WindowLabel  *string    `json:"window_label"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

type nextDeliveryPayload struct {
	ScheduledFor *string `json:"scheduled_for"`
	CutoffAt     *string `json:"cutoff_at"`
	WindowLabel  *string `json:"window_label"`
}

type SettingsService struct {
	settings *repositories.SiteSettingRepository
}

func NewSettingsService(settings *repositories.SiteSettingRepository) *SettingsService {
	return &SettingsService{settings: settings}
}

// GetNextDelivery reads the current delivery window, migrating the legacy
// bare-date shape on read. Malformed values degrade to an empty window
// rather than erroring.
func (s *SettingsService) GetNextDelivery(ctx context.Context) (NextDelivery, error) {
	setting, err := s.settings.Get(ctx, nextDeliveryKey)
	if err != nil {
		return NextDelivery{}, apperrors.Internal("Failed to read site settings", err)
	}
	if setting == nil {
		setting, err = s.settings.Get(ctx, legacyNextDeliveryKey)
		if err != nil {
			return NextDelivery{}, apperrors.Internal("Failed to read site settings", err)
		}
	}
	if setting == nil {
		return NextDelivery{}, nil
	}

	out := parseNextDeliveryValue(setting.Value)
	updatedAt := setting.UpdatedAt
	out.UpdatedAt = &updatedAt
	return out, nil
}

func parseNextDeliveryValue(raw string) NextDelivery {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return NextDelivery{}
	}

	var payload nextDeliveryPayload
	if err := json.Unmarshal([]byte(raw), &payload); err == nil {
		out := NextDelivery{
			ScheduledFor: validDate(payload.ScheduledFor),
			CutoffAt:     validDateTime(payload.CutoffAt),
		}
		if payload.WindowLabel != nil {
			if label := strings.TrimSpace(*payload.WindowLabel); label != "" {
				out.WindowLabel = &label
			}
		}
		return out
	}

	// Legacy shape: the value is a bare ISO date.
	if date := validDate(&raw); date != nil {
		return NextDelivery{ScheduledFor: date}
	}
	return NextDelivery{}
}

func validDate(value *string) *string {
	if value == nil {
		return nil
	}
	if _, err := time.Parse("2006-01-02", *value); err != nil {
		return nil
	}
	return value
}

func validDateTime(value *string) *string {
	if value == nil {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if _, err := time.Parse(layout, *value); err == nil {
			return value
		}
	}
	return nil
}

// SetNextDelivery writes the current shape under the current key. The legacy
// key is left alone; reads prefer the new key from then on.
func (s *SettingsService) SetNextDelivery(ctx context.Context, scheduledFor, cutoffAt, windowLabel *string) (NextDelivery, error) {
	if scheduledFor != nil && validDate(scheduledFor) == nil {
		return NextDelivery{}, apperrors.Validation("scheduled_for must be a YYYY-MM-DD date")
	}
	if cutoffAt != nil && validDateTime(cutoffAt) == nil {
		return NextDelivery{}, apperrors.Validation("cutoff_at must be an ISO datetime")
	}

	var label *string
	if windowLabel != nil {
		if trimmed := strings.TrimSpace(*windowLabel); trimmed != "" {
			label = &trimmed
		}
	}

	value, err := json.Marshal(nextDeliveryPayload{
		ScheduledFor: scheduledFor,
		CutoffAt:     cutoffAt,
		WindowLabel:  label,
	})
	if err != nil {
		return NextDelivery{}, apperrors.Internal("Failed to encode site settings", err)
	}

	setting, err := s.settings.Set(ctx, nextDeliveryKey, string(value))
	if err != nil {
		return NextDelivery{}, apperrors.Internal("Failed to write site settings", err)
	}

	updatedAt := setting.UpdatedAt
	return NextDelivery{
		ScheduledFor: scheduledFor,
		CutoffAt:     cutoffAt,
		WindowLabel:  label,
		UpdatedAt:    &updatedAt,
	}, nil
}
