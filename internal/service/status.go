package service

import (
	"context"
	"errors"

	"filament_dryer/internal/device"
	"filament_dryer/internal/logger"
	"filament_dryer/internal/models"
)

// SourcePoll marks snapshots fetched over HTTP rather than pushed.
const SourcePoll = "poll"

var errStatusUnavailable = errors.New("status unavailable")

type StatusService struct {
	device    Fetcher
	dashboard Dashboard
	log       *logger.Logger
}

func NewStatusService(dev Fetcher, dash Dashboard, log *logger.Logger) *StatusService {
	return &StatusService{device: dev, dashboard: dash, log: log.Named("status")}
}

// Refresh fetches /debug/status, then /status, and applies the first snapshot
// that arrives. When both fail it gives up; the failure is only logged at debug.
func (s *StatusService) Refresh(ctx context.Context) error {
	if s.device == nil {
		return errStatusUnavailable
	}
	for _, path := range []string{device.PathDebugStatus, device.PathStatus} {
		var snap models.DeviceSnapshot
		if err := s.device.GetJSON(ctx, path, &snap); err != nil {
			s.log.Debugw("status_fetch_failed", "path", path, "err", err)
			continue
		}
		if s.dashboard != nil {
			s.dashboard.Apply(snap, SourcePoll)
		}
		return nil
	}
	return errStatusUnavailable
}
