package handlers

import (
	"context"
	"sync"
	"time"

	"filament_dryer/internal/dashboard"
	"filament_dryer/internal/models"
	"filament_dryer/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockCatalog struct {
	result service.LoadedCatalog
	calls  int
}

func (m *mockCatalog) Load(ctx context.Context) service.LoadedCatalog {
	m.calls++
	return m.result
}

type mockCommands struct {
	err error

	startedName string
	startedIdx  int
	temperature float64
	stopCalls   int
	calls       int
}

func (m *mockCommands) StartProfile(ctx context.Context, index int) error {
	m.calls++
	m.startedIdx = index
	return m.err
}
func (m *mockCommands) StartProfileByName(ctx context.Context, name string) error {
	m.calls++
	m.startedName = name
	return m.err
}
func (m *mockCommands) SetTemperature(ctx context.Context, celsius float64) error {
	m.calls++
	m.temperature = celsius
	return m.err
}
func (m *mockCommands) StopDrying(ctx context.Context) error {
	m.calls++
	m.stopCalls++
	return m.err
}

type mockEventLog struct {
	resp     []models.DashboardEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.DashboardEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// mockViews serves a fixed view; tests push updates through the subscriber channel.
type mockViews struct {
	mu   sync.Mutex
	view dashboard.View
	subs []chan dashboard.View
}

func (m *mockViews) View() dashboard.View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view
}

func (m *mockViews) Subscribe(ctx context.Context) <-chan dashboard.View {
	ch := make(chan dashboard.View, 1)
	m.mu.Lock()
	m.subs = append(m.subs, ch)
	m.mu.Unlock()
	return ch
}

func (m *mockViews) push(v dashboard.View) {
	m.mu.Lock()
	m.view = v
	subs := append([]chan dashboard.View(nil), m.subs...)
	m.mu.Unlock()
	for _, ch := range subs {
		ch <- v
	}
}

func (m *mockViews) subscribers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs)
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service, views ViewSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, views, nil, nil)
	return h.InitRoutes()
}

func sampleView() dashboard.View {
	return dashboard.View{
		Version: 3,
		Status:  dashboard.StatusView{CurrentTemp: "45.2", CurrentHumidity: "30.1", TargetTemp: "45.0", HeaterPower: "60"},
		Timer:   dashboard.TimerView{Visible: true, Remaining: "00:02:05"},
		Profiles: []dashboard.ProfileView{
			{Index: 0, Name: "PLA", Temperature: 45, Duration: 240, DurationLabel: "4h 0m"},
			{Index: 1, Name: "ABS/ASA", Temperature: 70, Duration: 300, DurationLabel: "5h 0m", Active: true},
		},
		ProfileSource: "debug",
	}
}
