package repository

import (
	"context"
	"time"

	"filament_dryer/internal/models"
)

// EventRepo is the dashboard's append-only event log.
type EventRepo interface {
	Append(ctx context.Context, e models.DashboardEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.DashboardEvent, error)
}

type Repository struct {
	EventRepo EventRepo
}

// NewRepository builds the in-memory repositories; capacity bounds the event log.
func NewRepository(eventCapacity int) *Repository {
	return &Repository{
		EventRepo: NewEventMemory(eventCapacity),
	}
}
