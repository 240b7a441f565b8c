// Package simulator is a development stand-in for the dryer's control server.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"filament_dryer/internal/logger"
	"filament_dryer/internal/models"
)

// Manual temperature limits accepted by the simulated firmware.
const (
	minManualC = 30.0
	maxManualC = 80.0
)

var (
	errUnknownCommand  = errors.New("unknown command")
	errBadProfileIndex = errors.New("profile index out of range")
	errBadTemperature  = errors.New("temperature out of range")
)

// Device owns the simulated state and fans snapshots out to live clients.
type Device struct {
	profiles []models.Profile
	clock    func() time.Time
	log      *logger.Logger

	mu      sync.Mutex
	state   State
	updated time.Time

	subMu sync.Mutex
	next  int
	subs  map[int]chan models.DeviceSnapshot
}

func NewDevice(profiles []models.Profile, log *logger.Logger) *Device {
	d := &Device{
		profiles: append([]models.Profile(nil), profiles...),
		clock:    time.Now,
		log:      log.Named("simulator"),
		state:    idleState(),
		subs:     make(map[int]chan models.DeviceSnapshot),
	}
	d.updated = d.clock()
	return d
}

// Profiles returns the profile list served at /profiles.
func (d *Device) Profiles() []models.Profile {
	return append([]models.Profile(nil), d.profiles...)
}

// Snapshot reports the current state in the wire format.
func (d *Device) Snapshot() models.DeviceSnapshot {
	d.mu.Lock()
	st := d.state
	d.mu.Unlock()
	return toSnapshot(st)
}

// State returns a copy of the simulated state.
func (d *Device) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Handle applies one command frame.
func (d *Device) Handle(cmd models.DeviceCommand) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch cmd.Command {
	case models.CommandStartProfile:
		if cmd.ProfileIndex == nil || *cmd.ProfileIndex < 0 || *cmd.ProfileIndex >= len(d.profiles) {
			return errBadProfileIndex
		}
		p := d.profiles[*cmd.ProfileIndex]
		d.state.Mode = ModeProfile
		d.state.TargetC = p.Temperature
		d.state.RemainingSeconds = p.DurationSeconds()
		d.state.ProfileIndex = *cmd.ProfileIndex
		d.log.Infow("profile_started", "profile", p.Name, "target", p.Temperature, "minutes", p.Duration)

	case models.CommandSetTemperature:
		if cmd.Temperature == nil || *cmd.Temperature < minManualC || *cmd.Temperature > maxManualC {
			return errBadTemperature
		}
		d.state.Mode = ModeManual
		d.state.TargetC = *cmd.Temperature
		d.state.RemainingSeconds = 0
		d.state.ProfileIndex = -1
		d.log.Infow("manual_temperature_set", "target", *cmd.Temperature)

	case models.CommandStopDrying:
		d.state.Mode = ModeIdle
		d.state.TargetC = AmbientC
		d.state.RemainingSeconds = 0
		d.state.ProfileIndex = -1
		d.state.HeaterPower = PowerOff
		d.log.Infow("drying_stopped")

	default:
		return fmt.Errorf("%w: %q", errUnknownCommand, cmd.Command)
	}
	return nil
}

// Run advances the simulation every tick and pushes a snapshot to every
// subscriber until ctx is canceled.
func (d *Device) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			d.advance(now)
			d.broadcast(d.Snapshot())
		}
	}
}

func (d *Device) advance(now time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	elapsed := now.Sub(d.updated).Seconds()
	if elapsed < 1 {
		return
	}
	if step(&d.state, elapsed) {
		d.log.Infow("profile_finished")
	}
	d.updated = now
}

// Subscribe returns a channel of pushed snapshots. Slow readers miss
// snapshots rather than stall the simulation.
func (d *Device) Subscribe(ctx context.Context) <-chan models.DeviceSnapshot {
	ch := make(chan models.DeviceSnapshot, 1)
	d.subMu.Lock()
	d.next++
	id := d.next
	d.subs[id] = ch
	d.subMu.Unlock()

	go func() {
		<-ctx.Done()
		d.subMu.Lock()
		delete(d.subs, id)
		d.subMu.Unlock()
		close(ch)
	}()
	return ch
}

func (d *Device) broadcast(s models.DeviceSnapshot) {
	d.subMu.Lock()
	defer d.subMu.Unlock()
	for _, ch := range d.subs {
		select {
		case ch <- s:
		default:
		}
	}
}

func toSnapshot(st State) models.DeviceSnapshot {
	temp := round1(st.TemperatureC)
	target := round1(st.TargetC)
	hum := round1(st.Humidity)
	active := st.Mode == ModeProfile
	rem := st.RemainingSeconds
	return models.DeviceSnapshot{
		Temperature:       &temp,
		TargetTemperature: &target,
		Humidity:          &hum,
		HeaterPower:       models.NumericPower(float64(st.HeaterPower)),
		DryingActive:      &active,
		RemainingTime:     &rem,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
