package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"filament_dryer/internal/logger"
	"filament_dryer/internal/models"
	"filament_dryer/internal/repository"
)

type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

var errInvalidTimeRange = errors.New("invalid time range: from must be <= to")

func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

func normalizeEventType(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// normalizeAndValidateFilter returns UTC bounds and the upper-cased type.
func normalizeAndValidateFilter(f LogFilter) (time.Time, time.Time, string, error) {
	from, to := normalizeToUTC(f.From), normalizeToUTC(f.To)
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", errInvalidTimeRange
	}
	return from, to, normalizeEventType(f.Type), nil
}

func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.DashboardEvent, error) {
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, from, to, typ)
}

// IsInvalidFilter reports whether err came from filter validation.
func IsInvalidFilter(err error) bool {
	return errors.Is(err, errInvalidTimeRange)
}

// appendEvent writes a log entry; failures are logged and otherwise ignored.
func appendEvent(ctx context.Context, repo repository.EventRepo, log *logger.Logger, typ, desc string, meta map[string]any) {
	if repo == nil {
		return
	}
	err := repo.Append(ctx, models.DashboardEvent{
		OccurredAt:  time.Now().UTC(),
		Type:        typ,
		Description: desc,
		Metadata:    meta,
	})
	if err != nil {
		log.Warnw("event_append_failed", "type", typ, "err", err)
	}
}
