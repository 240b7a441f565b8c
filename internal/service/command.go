package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"filament_dryer/internal/channel"
	"filament_dryer/internal/logger"
	"filament_dryer/internal/models"
	"filament_dryer/internal/repository"
)

// Manual temperature limits, inclusive.
const (
	MinTemperature = 30.0
	MaxTemperature = 80.0
)

// Command results, as recorded in metrics.
const (
	resultSent     = "sent"
	resultRejected = "rejected"
	resultFailed   = "failed"
)

var (
	ErrNotConnected     = errors.New("not connected to the dryer")
	ErrUnknownProfile   = errors.New("unknown profile")
	ErrTemperatureRange = errors.New("temperature must be between 30°C and 80°C")
	ErrSendFailed       = errors.New("failed to send command to the dryer")
	errNotWired         = errors.New("command service is not wired")
)

type CommandService struct {
	sender    Sender
	dashboard Dashboard
	eventRepo repository.EventRepo
	metrics   Recorder
	log       *logger.Logger
}

func NewCommandService(sender Sender, dash Dashboard, eventRepo repository.EventRepo, metrics Recorder, log *logger.Logger) *CommandService {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &CommandService{
		sender:    sender,
		dashboard: dash,
		eventRepo: eventRepo,
		metrics:   metrics,
		log:       log.Named("commands"),
	}
}

// StartProfile runs the profile at index in the current catalog and marks it
// as the only active profile once the frame is sent.
func (s *CommandService) StartProfile(ctx context.Context, index int) error {
	profiles := s.profiles()
	if index < 0 || index >= len(profiles) {
		s.metrics.Command(models.CommandStartProfile, resultRejected)
		return fmt.Errorf("%w: index %d", ErrUnknownProfile, index)
	}
	p := profiles[index]

	cmd := models.StartProfileCommand{Command: models.CommandStartProfile, ProfileIndex: index}
	if err := s.send(ctx, cmd.Command, cmd, map[string]any{"profileIndex": index, "profile": p.Name}); err != nil {
		return err
	}
	s.dashboard.MarkActive(index, p)
	return nil
}

// StartProfileByName resolves name against the current catalog and starts it.
func (s *CommandService) StartProfileByName(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	for i, p := range s.profiles() {
		if p.Name == name {
			return s.StartProfile(ctx, i)
		}
	}
	s.metrics.Command(models.CommandStartProfile, resultRejected)
	return fmt.Errorf("%w: %q", ErrUnknownProfile, name)
}

// SetTemperature switches the dryer to manual mode; there is no active profile afterwards.
func (s *CommandService) SetTemperature(ctx context.Context, celsius float64) error {
	if celsius < MinTemperature || celsius > MaxTemperature {
		s.metrics.Command(models.CommandSetTemperature, resultRejected)
		return ErrTemperatureRange
	}
	cmd := models.SetTemperatureCommand{Command: models.CommandSetTemperature, Temperature: celsius}
	if err := s.send(ctx, cmd.Command, cmd, map[string]any{"temperature": celsius}); err != nil {
		return err
	}
	s.dashboard.ClearActive()
	return nil
}

func (s *CommandService) StopDrying(ctx context.Context) error {
	cmd := models.StopDryingCommand{Command: models.CommandStopDrying}
	if err := s.send(ctx, cmd.Command, cmd, nil); err != nil {
		return err
	}
	s.dashboard.ClearActive()
	return nil
}

func (s *CommandService) profiles() []models.Profile {
	if s.dashboard == nil {
		return nil
	}
	return s.dashboard.Profiles()
}

// send refuses unless the channel is Connected; a failed write leaves the channel alone.
func (s *CommandService) send(ctx context.Context, name string, frame any, meta map[string]any) error {
	if s.sender == nil || s.dashboard == nil {
		return errNotWired
	}
	if s.sender.State() != channel.Connected {
		s.metrics.Command(name, resultRejected)
		s.log.Warnw("command_rejected", "command", name, "reason", "not_connected")
		return ErrNotConnected
	}
	if err := s.sender.Send(frame); err != nil {
		if errors.Is(err, channel.ErrNotConnected) {
			s.metrics.Command(name, resultRejected)
			s.log.Warnw("command_rejected", "command", name, "reason", "not_connected")
			return ErrNotConnected
		}
		s.metrics.Command(name, resultFailed)
		s.log.Errorw("command_send_failed", "command", name, "err", err)
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}

	s.metrics.Command(name, resultSent)
	s.log.Infow("command_sent", "command", name)
	if meta == nil {
		meta = map[string]any{}
	}
	meta["command"] = name
	appendEvent(ctx, s.eventRepo, s.log, models.EventCommand, "Command sent: "+name, meta)
	return nil
}
