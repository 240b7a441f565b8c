// Package projection maps a device snapshot onto what the dashboard displays.
// Everything here is pure: no clocks, no I/O, no shared state.
package projection

import (
	"errors"
	"fmt"

	"filament_dryer/internal/models"
)

// ErrMissingField marks a snapshot field that was absent from the frame.
var ErrMissingField = errors.New("missing field")

// Field is one rendered status value. When Err is set Text is empty and the
// previously displayed value should stay on screen.
type Field struct {
	Text string
	Err  error
}

// Status holds the four status cards.
type Status struct {
	CurrentTemp     Field
	CurrentHumidity Field
	TargetTemp      Field
	HeaterPower     Field
}

// Point is the sample appended to each chart series for one snapshot.
type Point struct {
	Label       string
	Temperature *float64
	Target      *float64
	Humidity    *float64
}

// Timer is the countdown panel state. Err is set when the snapshot lacked the
// fields needed to decide; callers keep whatever they showed before.
type Timer struct {
	Visible   bool
	Remaining string
	Progress  *float64
	Err       error
}

// Result is everything derived from one snapshot.
type Result struct {
	Status Status
	Point  Point
	Timer  Timer
}

// Project runs every projection step. Steps are independent: a missing field
// only affects its own output. activeTotalSeconds is the full duration of the
// profile currently marked active, or 0 when none is.
func Project(s models.DeviceSnapshot, label string, activeTotalSeconds int) Result {
	return Result{
		Status: ProjectStatus(s),
		Point: Point{
			Label:       label,
			Temperature: s.Temperature,
			Target:      s.TargetTemperature,
			Humidity:    s.Humidity,
		},
		Timer: ProjectTimer(s, activeTotalSeconds),
	}
}

// ProjectStatus formats the status cards. Temperatures and humidity get one
// decimal; heater power is shown as received.
func ProjectStatus(s models.DeviceSnapshot) Status {
	st := Status{
		CurrentTemp:     oneDecimal("temperature", s.Temperature),
		CurrentHumidity: oneDecimal("humidity", s.Humidity),
		TargetTemp:      oneDecimal("targetTemperature", s.TargetTemperature),
	}
	if s.HeaterPower == nil {
		st.HeaterPower = Field{Err: missing("heaterPower")}
	} else {
		st.HeaterPower = Field{Text: s.HeaterPower.String()}
	}
	return st
}

// ProjectTimer decides timer visibility, the HH:MM:SS text and the progress.
func ProjectTimer(s models.DeviceSnapshot, activeTotalSeconds int) Timer {
	if s.DryingActive == nil {
		return Timer{Err: missing("dryingActive")}
	}
	if !*s.DryingActive {
		return Timer{Visible: false}
	}
	if s.RemainingTime == nil {
		return Timer{Visible: true, Err: missing("remainingTime")}
	}
	t := Timer{
		Visible:   true,
		Remaining: FormatRemaining(*s.RemainingTime),
	}
	if p, ok := Progress(*s.RemainingTime, activeTotalSeconds); ok {
		t.Progress = &p
	}
	return t
}

// Progress is 100 - remaining/total*100, clamped to [0, 100].
// It is undefined (ok=false) without a positive total.
func Progress(remainingSeconds, totalSeconds int) (float64, bool) {
	if totalSeconds <= 0 {
		return 0, false
	}
	p := 100 - float64(remainingSeconds)/float64(totalSeconds)*100
	switch {
	case p < 0:
		p = 0
	case p > 100:
		p = 100
	}
	return p, true
}

func oneDecimal(name string, v *float64) Field {
	if v == nil {
		return Field{Err: missing(name)}
	}
	return Field{Text: fmt.Sprintf("%.1f", *v)}
}

func missing(name string) error {
	return fmt.Errorf("%s: %w", name, ErrMissingField)
}
