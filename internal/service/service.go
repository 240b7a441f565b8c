package service

import (
	"context"

	"filament_dryer/internal/channel"
	"filament_dryer/internal/logger"
	"filament_dryer/internal/models"
	"filament_dryer/internal/repository"
)

// Catalog loads the dryer's profile list through its fallback chain.
type Catalog interface {
	Load(ctx context.Context) LoadedCatalog
}

// Status pulls one snapshot over HTTP when the live channel cannot be trusted yet.
type Status interface {
	Refresh(ctx context.Context) error
}

// Commands relays operator actions to the dryer over the live channel.
type Commands interface {
	StartProfile(ctx context.Context, index int) error
	StartProfileByName(ctx context.Context, name string) error
	SetTemperature(ctx context.Context, celsius float64) error
	StopDrying(ctx context.Context) error
}

// EventLog exposes the in-memory dashboard log with filtering.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.DashboardEvent, error)
}

// Fetcher is the HTTP side of the device (device.Client).
type Fetcher interface {
	GetJSON(ctx context.Context, path string, out any) error
}

// Sender is the live side of the device (channel.Manager).
type Sender interface {
	Send(v any) error
	State() channel.State
}

// Dashboard is the state owner the services write into.
type Dashboard interface {
	SetProfiles(profiles []models.Profile, source string)
	Profiles() []models.Profile
	MarkActive(index int, p models.Profile)
	ClearActive()
	Apply(s models.DeviceSnapshot, source string)
}

// Recorder receives service metrics.
type Recorder interface {
	ProfilesLoaded(source string)
	Command(name, result string)
}

type nopRecorder struct{}

func (nopRecorder) ProfilesLoaded(string)  {}
func (nopRecorder) Command(string, string) {}

// Deps are the collaborators shared by the services.
type Deps struct {
	Device    Fetcher
	Sender    Sender
	Dashboard Dashboard
	Metrics   Recorder
	Log       *logger.Logger
}

type Service struct {
	Catalog
	Status
	Commands
	EventLog
}

func NewService(repos *repository.Repository, d Deps) *Service {
	if d.Metrics == nil {
		d.Metrics = nopRecorder{}
	}
	return &Service{
		Catalog:  NewCatalogService(d.Device, d.Dashboard, repos.EventRepo, d.Metrics, d.Log),
		Status:   NewStatusService(d.Device, d.Dashboard, d.Log),
		Commands: NewCommandService(d.Sender, d.Dashboard, repos.EventRepo, d.Metrics, d.Log),
		EventLog: NewEventLogService(repos.EventRepo),
	}
}
