package service

import (
	"context"

	"filament_dryer/internal/device"
	"filament_dryer/internal/logger"
	"filament_dryer/internal/models"
	"filament_dryer/internal/repository"
)

// Catalog sources, in the order they are tried.
const (
	SourceDebug    = "debug"
	SourcePublic   = "public"
	SourceDefaults = "defaults"
)

// DefaultProfiles is used when neither profile endpoint answers.
func DefaultProfiles() []models.Profile {
	return []models.Profile{
		{Name: "PLA", Temperature: 45, Duration: 240},
		{Name: "PETG", Temperature: 65, Duration: 240},
		{Name: "ABS/ASA", Temperature: 70, Duration: 300},
		{Name: "Nylon", Temperature: 75, Duration: 360},
		{Name: "TPU", Temperature: 50, Duration: 240},
	}
}

// LoadedCatalog is the profile list together with the source that produced it.
type LoadedCatalog struct {
	Profiles []models.Profile `json:"profiles"`
	Source   string           `json:"source"`
}

type CatalogService struct {
	device    Fetcher
	dashboard Dashboard
	eventRepo repository.EventRepo
	metrics   Recorder
	log       *logger.Logger
}

func NewCatalogService(dev Fetcher, dash Dashboard, eventRepo repository.EventRepo, metrics Recorder, log *logger.Logger) *CatalogService {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &CatalogService{
		device:    dev,
		dashboard: dash,
		eventRepo: eventRepo,
		metrics:   metrics,
		log:       log.Named("catalog"),
	}
}

// Load tries the debug endpoint, then the public one, then the built-in list.
// The first source that answers wins; results are never merged.
func (s *CatalogService) Load(ctx context.Context) LoadedCatalog {
	cat := s.fetch(ctx)

	if s.dashboard != nil {
		s.dashboard.SetProfiles(cat.Profiles, cat.Source)
	}
	s.metrics.ProfilesLoaded(cat.Source)
	s.log.Infow("profiles_loaded", "source", cat.Source, "count", len(cat.Profiles))
	appendEvent(ctx, s.eventRepo, s.log, models.EventProfilesLoaded, "Profile catalog loaded",
		map[string]any{"source": cat.Source, "count": len(cat.Profiles)})
	return cat
}

func (s *CatalogService) fetch(ctx context.Context) LoadedCatalog {
	chain := []struct {
		source string
		path   string
	}{
		{SourceDebug, device.PathDebugProfiles},
		{SourcePublic, device.PathProfiles},
	}
	if s.device != nil {
		for _, step := range chain {
			var profiles []models.Profile
			err := s.device.GetJSON(ctx, step.path, &profiles)
			if err == nil {
				if profiles == nil {
					profiles = []models.Profile{}
				}
				return LoadedCatalog{Profiles: profiles, Source: step.source}
			}
			s.log.Warnw("profiles_source_failed", "source", step.source, "path", step.path, "err", err)
		}
	}
	return LoadedCatalog{Profiles: DefaultProfiles(), Source: SourceDefaults}
}
