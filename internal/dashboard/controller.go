// Package dashboard owns the dashboard's mutable state: chart buffers, status
// cards, timer, profile catalog, active profile and connection indicator.
package dashboard

import (
	"context"
	"sync"
	"time"

	"filament_dryer/internal/channel"
	"filament_dryer/internal/logger"
	"filament_dryer/internal/models"
	"filament_dryer/internal/projection"
	"filament_dryer/internal/repository"
	"filament_dryer/internal/series"
)

// Snapshot sources.
const (
	SourcePush = "push"
	SourcePoll = "poll"
)

// Recorder receives controller metrics.
type Recorder interface {
	SnapshotApplied(source string)
}

// Mirror forwards accepted snapshots elsewhere without blocking.
type Mirror interface {
	Enqueue(s models.DeviceSnapshot) bool
}

type nopRecorder struct{}

func (nopRecorder) SnapshotApplied(string) {}

type Options struct {
	MaxDataPoints int
	Clock         func() time.Time
	Metrics       Recorder
	Mirror        Mirror
	Events        repository.EventRepo
	// OnOpen runs on its own goroutine each time the live channel opens.
	OnOpen func()
	Log    *logger.Logger
}

// Controller is safe for concurrent use. It implements channel.Handler.
type Controller struct {
	clock   func() time.Time
	metrics Recorder
	mirror  Mirror
	events  repository.EventRepo
	onOpen  func()
	log     *logger.Logger

	mu            sync.RWMutex
	version       uint64
	updatedAt     time.Time
	conn          channel.Status
	status        StatusView
	timer         TimerView
	temperature   *series.Buffer
	target        *series.Buffer
	humidity      *series.Buffer
	profiles      []models.Profile
	profileSource string
	active        *ActiveProfile

	hub *hub
}

func NewController(o Options) *Controller {
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.Metrics == nil {
		o.Metrics = nopRecorder{}
	}
	return &Controller{
		clock:       o.Clock,
		metrics:     o.Metrics,
		mirror:      o.Mirror,
		events:      o.Events,
		onOpen:      o.OnOpen,
		log:         o.Log.Named("dashboard"),
		conn:        channel.StatusOf(channel.Connecting),
		temperature: series.NewBuffer(o.MaxDataPoints),
		target:      series.NewBuffer(o.MaxDataPoints),
		humidity:    series.NewBuffer(o.MaxDataPoints),
		hub:         newHub(),
	}
}

// SetOnOpen replaces the open hook. It exists because the hook usually needs
// services that are built after the controller.
func (c *Controller) SetOnOpen(fn func()) {
	c.mu.Lock()
	c.onOpen = fn
	c.mu.Unlock()
}

// OnStatus updates the connection indicator.
func (c *Controller) OnStatus(st channel.Status) {
	c.mu.Lock()
	prev := c.conn.State
	c.conn = st
	c.touch()
	c.mu.Unlock()

	if prev != st.State {
		c.logTransition(st)
	}
	c.publish()
}

// OnOpen triggers one status refresh per successful open.
func (c *Controller) OnOpen() {
	c.mu.RLock()
	fn := c.onOpen
	c.mu.RUnlock()
	if fn != nil {
		go fn()
	}
}

// OnSnapshot applies a pushed snapshot.
func (c *Controller) OnSnapshot(s models.DeviceSnapshot) {
	c.Apply(s, SourcePush)
}

// Apply projects s onto the dashboard. Each step stands alone: a missing field
// keeps its previous display and does not stop the others.
func (c *Controller) Apply(s models.DeviceSnapshot, source string) {
	c.mu.Lock()
	total := 0
	if c.active != nil {
		total = c.active.TotalSeconds
	}
	res := projection.Project(s, projection.TimeLabel(c.clock()), total)

	c.applyStatus(res.Status)

	c.temperature.Push(res.Point.Label, res.Point.Temperature)
	c.target.Push(res.Point.Label, res.Point.Target)
	c.humidity.Push(res.Point.Label, res.Point.Humidity)

	if res.Timer.Err != nil {
		c.log.Warnw("timer_not_updated", "err", res.Timer.Err)
	} else {
		c.timer = TimerView{
			Visible:   res.Timer.Visible,
			Remaining: res.Timer.Remaining,
			Progress:  res.Timer.Progress,
		}
	}
	c.touch()
	c.mu.Unlock()

	c.metrics.SnapshotApplied(source)
	if c.mirror != nil && !c.mirror.Enqueue(s) {
		c.log.Debugw("mirror_queue_full")
	}
	c.publish()
}

// applyStatus must be called with the lock held.
func (c *Controller) applyStatus(st projection.Status) {
	set := func(dst *string, f projection.Field) {
		if f.Err != nil {
			c.log.Warnw("status_field_not_updated", "err", f.Err)
			return
		}
		*dst = f.Text
	}
	set(&c.status.CurrentTemp, st.CurrentTemp)
	set(&c.status.CurrentHumidity, st.CurrentHumidity)
	set(&c.status.TargetTemp, st.TargetTemp)
	set(&c.status.HeaterPower, st.HeaterPower)
}

// SetProfiles replaces the catalog. The active profile is dropped because its
// index no longer refers to the same list.
func (c *Controller) SetProfiles(profiles []models.Profile, source string) {
	c.mu.Lock()
	c.profiles = append([]models.Profile(nil), profiles...)
	c.profileSource = source
	c.active = nil
	c.touch()
	c.mu.Unlock()
	c.publish()
}

func (c *Controller) Profiles() []models.Profile {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Profile(nil), c.profiles...)
}

// MarkActive makes p (at index) the only active profile.
func (c *Controller) MarkActive(index int, p models.Profile) {
	c.mu.Lock()
	c.active = &ActiveProfile{Index: index, Name: p.Name, TotalSeconds: p.DurationSeconds()}
	c.touch()
	c.mu.Unlock()
	c.publish()
}

func (c *Controller) ClearActive() {
	c.mu.Lock()
	c.active = nil
	c.touch()
	c.mu.Unlock()
	c.publish()
}

// Active returns the active profile, if any.
func (c *Controller) Active() (ActiveProfile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.active == nil {
		return ActiveProfile{}, false
	}
	return *c.active, true
}

// View returns a copy of the current dashboard.
func (c *Controller) View() View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.viewLocked()
}

// Subscribe streams views, latest first: a slow reader skips intermediate
// views instead of blocking the controller. The channel closes when ctx ends.
func (c *Controller) Subscribe(ctx context.Context) <-chan View {
	ch, id := c.hub.add()
	go func() {
		<-ctx.Done()
		c.hub.remove(id)
	}()
	return ch
}

func (c *Controller) viewLocked() View {
	v := View{
		Version:       c.version,
		UpdatedAt:     c.updatedAt,
		Connection:    c.conn,
		Status:        c.status,
		Timer:         c.timer,
		ProfileSource: c.profileSource,
		Charts: Charts{
			Labels:      c.temperature.Labels(),
			Temperature: c.temperature.Values(),
			Target:      c.target.Values(),
			Humidity:    c.humidity.Values(),
		},
		Profiles: make([]ProfileView, 0, len(c.profiles)),
	}
	if c.timer.Progress != nil {
		p := *c.timer.Progress
		v.Timer.Progress = &p
	}
	if c.active != nil {
		a := *c.active
		v.Active = &a
	}
	for i, p := range c.profiles {
		v.Profiles = append(v.Profiles, ProfileView{
			Index:         i,
			Name:          p.Name,
			Temperature:   p.Temperature,
			Duration:      p.Duration,
			DurationLabel: projection.FormatProfileDuration(p.Duration),
			Active:        c.active != nil && c.active.Index == i,
		})
	}
	return v
}

// touch must be called with the lock held.
func (c *Controller) touch() {
	c.version++
	c.updatedAt = c.clock().UTC()
}

func (c *Controller) publish() {
	c.hub.broadcast(c.View())
}

func (c *Controller) logTransition(st channel.Status) {
	var typ string
	switch st.State {
	case channel.Connected:
		typ = models.EventConnected
	case channel.Disconnected:
		typ = models.EventDisconnected
	case channel.Error:
		typ = models.EventError
	default:
		return
	}
	if c.events == nil {
		return
	}
	err := c.events.Append(context.Background(), models.DashboardEvent{
		OccurredAt:  c.clock().UTC(),
		Type:        typ,
		Description: st.Label,
		Metadata:    map[string]any{"state": st.Name},
	})
	if err != nil {
		c.log.Warnw("event_append_failed", "type", typ, "err", err)
	}
}
