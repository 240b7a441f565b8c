package projection

import (
	"errors"
	"testing"
	"time"

	"filament_dryer/internal/models"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }
func bptr(v bool) *bool       { return &v }

func fullSnapshot() models.DeviceSnapshot {
	return models.DeviceSnapshot{
		Temperature:       fptr(45.2),
		TargetTemperature: fptr(45.0),
		Humidity:          fptr(30.1),
		HeaterPower:       models.NumericPower(60),
		DryingActive:      bptr(true),
		RemainingTime:     iptr(125),
	}
}

func TestProject_ReferenceSnapshot(t *testing.T) {
	r := Project(fullSnapshot(), "10:00:00", 0)

	if r.Timer.Remaining != "00:02:05" || !r.Timer.Visible {
		t.Fatalf("timer=%+v", r.Timer)
	}
	checks := []struct {
		name string
		got  Field
		want string
	}{
		{"current temp", r.Status.CurrentTemp, "45.2"},
		{"humidity", r.Status.CurrentHumidity, "30.1"},
		{"target temp", r.Status.TargetTemp, "45.0"},
		{"heater power", r.Status.HeaterPower, "60"},
	}
	for _, c := range checks {
		if c.got.Err != nil || c.got.Text != c.want {
			t.Fatalf("%s: got %+v, want %q", c.name, c.got, c.want)
		}
	}
	if r.Point.Label != "10:00:00" || *r.Point.Temperature != 45.2 || *r.Point.Target != 45.0 || *r.Point.Humidity != 30.1 {
		t.Fatalf("point=%+v", r.Point)
	}
}

func TestProject_MissingFieldFailsOnlyThatField(t *testing.T) {
	s := fullSnapshot()
	s.Humidity = nil
	s.HeaterPower = nil

	r := Project(s, "x", 0)
	if !errors.Is(r.Status.CurrentHumidity.Err, ErrMissingField) {
		t.Fatalf("humidity err=%v", r.Status.CurrentHumidity.Err)
	}
	if !errors.Is(r.Status.HeaterPower.Err, ErrMissingField) {
		t.Fatalf("heater err=%v", r.Status.HeaterPower.Err)
	}
	if r.Status.CurrentTemp.Text != "45.2" || r.Status.TargetTemp.Text != "45.0" {
		t.Fatalf("other fields affected: %+v", r.Status)
	}
	if r.Point.Humidity != nil {
		t.Fatalf("expected humidity gap in chart point")
	}
	if r.Timer.Err != nil || r.Timer.Remaining != "00:02:05" {
		t.Fatalf("timer affected: %+v", r.Timer)
	}
}

func TestProject_HeaterPowerString(t *testing.T) {
	s := fullSnapshot()
	s.HeaterPower = models.TextPower("OFF")
	if got := ProjectStatus(s).HeaterPower.Text; got != "OFF" {
		t.Fatalf("got %q", got)
	}
}

func TestProjectTimer_InactiveAlwaysHidden(t *testing.T) {
	s := fullSnapshot()
	s.DryingActive = bptr(false)
	for _, total := range []int{0, 3600} {
		tm := ProjectTimer(s, total)
		if tm.Visible || tm.Err != nil {
			t.Fatalf("total=%d: %+v", total, tm)
		}
	}
	s.RemainingTime = nil
	if tm := ProjectTimer(s, 10); tm.Visible || tm.Err != nil {
		t.Fatalf("inactive without remaining: %+v", tm)
	}
}

func TestProjectTimer_MissingFields(t *testing.T) {
	s := fullSnapshot()
	s.DryingActive = nil
	if tm := ProjectTimer(s, 0); !errors.Is(tm.Err, ErrMissingField) {
		t.Fatalf("expected missing dryingActive, got %+v", tm)
	}

	s = fullSnapshot()
	s.RemainingTime = nil
	tm := ProjectTimer(s, 0)
	if !tm.Visible || !errors.Is(tm.Err, ErrMissingField) {
		t.Fatalf("expected visible timer with missing remaining, got %+v", tm)
	}
}

func TestProjectTimer_ProgressFromActiveProfile(t *testing.T) {
	s := fullSnapshot()
	s.RemainingTime = iptr(3600)
	tm := ProjectTimer(s, 4*3600)
	if tm.Progress == nil || *tm.Progress != 75 {
		t.Fatalf("progress=%v", tm.Progress)
	}
	if tm := ProjectTimer(s, 0); tm.Progress != nil {
		t.Fatalf("expected no progress without active profile, got %v", *tm.Progress)
	}
}

func TestProgress(t *testing.T) {
	cases := []struct {
		name      string
		remaining int
		total     int
		want      float64
		ok        bool
	}{
		{"start", 600, 600, 0, true},
		{"half", 300, 600, 50, true},
		{"done", 0, 600, 100, true},
		{"remaining above total clamps", 900, 600, 0, true},
		{"negative remaining clamps", -5, 600, 100, true},
		{"no total", 100, 0, 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := Progress(c.remaining, c.total)
			if ok != c.ok || got != c.want {
				t.Fatalf("got (%v,%v), want (%v,%v)", got, ok, c.want, c.ok)
			}
		})
	}
}

func TestFormatRemaining(t *testing.T) {
	cases := map[int]string{
		0:     "00:00:00",
		5:     "00:00:05",
		125:   "00:02:05",
		3600:  "01:00:00",
		14400: "04:00:00",
		86399: "23:59:59",
		-3:    "00:00:00",
	}
	for in, want := range cases {
		if got := FormatRemaining(in); got != want {
			t.Fatalf("FormatRemaining(%d)=%q, want %q", in, got, want)
		}
	}
}

func TestFormatProfileDuration(t *testing.T) {
	cases := map[int]string{
		240: "4h 0m",
		300: "5h 0m",
		90:  "1h 30m",
		45:  "45m",
		0:   "0m",
	}
	for in, want := range cases {
		if got := FormatProfileDuration(in); got != want {
			t.Fatalf("FormatProfileDuration(%d)=%q, want %q", in, got, want)
		}
	}
}

func TestTimeLabel(t *testing.T) {
	ts := time.Date(2025, 1, 2, 9, 5, 7, 0, time.UTC)
	if got := TimeLabel(ts); got != "09:05:07" {
		t.Fatalf("got %q", got)
	}
}
