package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"filament_dryer/internal/channel"
	"filament_dryer/internal/models"
	"filament_dryer/internal/repository"
)

// fakeFetcher answers GetJSON from canned bodies keyed by path; a missing
// path behaves like a network error.
type fakeFetcher struct {
	bodies map[string]string
	errs   map[string]error
	calls  []string
}

var errUnreachable = errors.New("dial tcp: connection refused")

func (f *fakeFetcher) GetJSON(ctx context.Context, path string, out any) error {
	f.calls = append(f.calls, path)
	if err, ok := f.errs[path]; ok {
		return err
	}
	body, ok := f.bodies[path]
	if !ok {
		return errUnreachable
	}
	return json.Unmarshal([]byte(body), out)
}

type applied struct {
	snap   models.DeviceSnapshot
	source string
}

type fakeDashboard struct {
	mu          sync.Mutex
	profiles    []models.Profile
	source      string
	activeIndex int
	activeName  string
	cleared     int
	applied     []applied
}

func newFakeDashboard(profiles ...models.Profile) *fakeDashboard {
	return &fakeDashboard{profiles: profiles, activeIndex: -1}
}

func (d *fakeDashboard) SetProfiles(p []models.Profile, source string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.profiles, d.source = p, source
}

func (d *fakeDashboard) Profiles() []models.Profile {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]models.Profile(nil), d.profiles...)
}

func (d *fakeDashboard) MarkActive(index int, p models.Profile) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.activeIndex, d.activeName = index, p.Name
}

func (d *fakeDashboard) ClearActive() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.activeIndex, d.activeName = -1, ""
	d.cleared++
}

func (d *fakeDashboard) Apply(s models.DeviceSnapshot, source string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.applied = append(d.applied, applied{snap: s, source: source})
}

type fakeSender struct {
	state   channel.State
	sendErr error
	frames  []any
}

func (s *fakeSender) State() channel.State { return s.state }

func (s *fakeSender) Send(v any) error {
	if s.sendErr != nil {
		return s.sendErr
	}
	s.frames = append(s.frames, v)
	return nil
}

type commandCount struct{ name, result string }

type fakeRecorder struct {
	loads    []string
	commands []commandCount
}

func (r *fakeRecorder) ProfilesLoaded(source string) { r.loads = append(r.loads, source) }
func (r *fakeRecorder) Command(name, result string) {
	r.commands = append(r.commands, commandCount{name, result})
}

func repositoryForTest() *repository.Repository {
	return repository.NewRepository(16)
}
