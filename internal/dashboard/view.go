package dashboard

import (
	"time"

	"filament_dryer/internal/channel"
)

// View is everything a browser needs to draw the dashboard.
type View struct {
	Version       uint64         `json:"version"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	Connection    channel.Status `json:"connection"`
	Status        StatusView     `json:"status"`
	Charts        Charts         `json:"charts"`
	Timer         TimerView      `json:"timer"`
	Profiles      []ProfileView  `json:"profiles"`
	ProfileSource string         `json:"profileSource,omitempty"`
	Active        *ActiveProfile `json:"activeProfile,omitempty"`
}

// StatusView holds the four status cards as display text. Empty means no
// value has been received yet.
type StatusView struct {
	CurrentTemp     string `json:"currentTemp"`
	CurrentHumidity string `json:"currentHumidity"`
	TargetTemp      string `json:"targetTemp"`
	HeaterPower     string `json:"heaterPower"`
}

// Charts carries the three rolling series; all share Labels.
type Charts struct {
	Labels      []string   `json:"labels"`
	Temperature []*float64 `json:"temperature"`
	Target      []*float64 `json:"targetTemperature"`
	Humidity    []*float64 `json:"humidity"`
}

type TimerView struct {
	Visible   bool     `json:"visible"`
	Remaining string   `json:"remaining"`
	Progress  *float64 `json:"progress,omitempty"`
}

type ProfileView struct {
	Index         int     `json:"index"`
	Name          string  `json:"name"`
	Temperature   float64 `json:"temperature"`
	Duration      int     `json:"duration"`
	DurationLabel string  `json:"durationLabel"`
	Active        bool    `json:"active"`
}

// ActiveProfile is the profile most recently started from this dashboard.
type ActiveProfile struct {
	Index        int    `json:"index"`
	Name         string `json:"name"`
	TotalSeconds int    `json:"totalSeconds"`
}
