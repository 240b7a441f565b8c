package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"filament_dryer/internal/device"
	"filament_dryer/internal/logger"
	"filament_dryer/internal/models"
)

const debugBody = `[{"name":"Debug PLA","temperature":50,"duration":120}]`
const publicBody = `[{"name":"Public PETG","temperature":65,"duration":240},{"name":"Public TPU","temperature":50,"duration":90}]`

func newCatalog(f *fakeFetcher) (*CatalogService, *fakeDashboard, *fakeEventRepo, *fakeRecorder) {
	dash := newFakeDashboard()
	repo := &fakeEventRepo{}
	rec := &fakeRecorder{}
	return NewCatalogService(f, dash, repo, rec, logger.Nop()), dash, repo, rec
}

func TestCatalogLoad_DebugWinsAndNothingElseIsConsulted(t *testing.T) {
	f := &fakeFetcher{bodies: map[string]string{
		device.PathDebugProfiles: debugBody,
		device.PathProfiles:      publicBody,
	}}
	svc, dash, repo, rec := newCatalog(f)

	got := svc.Load(context.Background())

	if got.Source != SourceDebug {
		t.Fatalf("source=%q", got.Source)
	}
	want := []models.Profile{{Name: "Debug PLA", Temperature: 50, Duration: 120}}
	if !reflect.DeepEqual(got.Profiles, want) {
		t.Fatalf("profiles=%+v", got.Profiles)
	}
	if !reflect.DeepEqual(f.calls, []string{device.PathDebugProfiles}) {
		t.Fatalf("calls=%v", f.calls)
	}
	if !reflect.DeepEqual(dash.profiles, want) || dash.source != SourceDebug {
		t.Fatalf("dashboard not updated: %+v %q", dash.profiles, dash.source)
	}
	if !reflect.DeepEqual(rec.loads, []string{SourceDebug}) {
		t.Fatalf("metrics=%v", rec.loads)
	}
	if len(repo.appended) != 1 || repo.appended[0].Type != models.EventProfilesLoaded {
		t.Fatalf("events=%+v", repo.appended)
	}
}

func TestCatalogLoad_FallsBackToPublic(t *testing.T) {
	cases := []struct {
		name string
		f    *fakeFetcher
	}{
		{
			name: "debug non-2xx",
			f: &fakeFetcher{
				bodies: map[string]string{device.PathProfiles: publicBody},
				errs:   map[string]error{device.PathDebugProfiles: fmt.Errorf("%w: 404", device.ErrHTTPStatus)},
			},
		},
		{
			name: "debug unreachable",
			f:    &fakeFetcher{bodies: map[string]string{device.PathProfiles: publicBody}},
		},
		{
			name: "debug malformed",
			f: &fakeFetcher{bodies: map[string]string{
				device.PathDebugProfiles: `{"oops":`,
				device.PathProfiles:      publicBody,
			}},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			svc, _, _, _ := newCatalog(c.f)
			got := svc.Load(context.Background())
			if got.Source != SourcePublic {
				t.Fatalf("source=%q", got.Source)
			}
			if len(got.Profiles) != 2 || got.Profiles[0].Name != "Public PETG" {
				t.Fatalf("profiles=%+v", got.Profiles)
			}
			if !reflect.DeepEqual(c.f.calls, []string{device.PathDebugProfiles, device.PathProfiles}) {
				t.Fatalf("calls=%v", c.f.calls)
			}
		})
	}
}

func TestCatalogLoad_BothFailYieldsExactDefaults(t *testing.T) {
	f := &fakeFetcher{errs: map[string]error{
		device.PathDebugProfiles: errors.New("boom"),
		device.PathProfiles:      fmt.Errorf("%w: 500", device.ErrHTTPStatus),
	}}
	svc, dash, _, rec := newCatalog(f)

	got := svc.Load(context.Background())

	want := []models.Profile{
		{Name: "PLA", Temperature: 45, Duration: 240},
		{Name: "PETG", Temperature: 65, Duration: 240},
		{Name: "ABS/ASA", Temperature: 70, Duration: 300},
		{Name: "Nylon", Temperature: 75, Duration: 360},
		{Name: "TPU", Temperature: 50, Duration: 240},
	}
	if got.Source != SourceDefaults {
		t.Fatalf("source=%q", got.Source)
	}
	if !reflect.DeepEqual(got.Profiles, want) {
		t.Fatalf("profiles=%+v", got.Profiles)
	}
	if !reflect.DeepEqual(dash.profiles, want) {
		t.Fatalf("dashboard=%+v", dash.profiles)
	}
	if !reflect.DeepEqual(rec.loads, []string{SourceDefaults}) {
		t.Fatalf("metrics=%v", rec.loads)
	}
}

func TestCatalogLoad_EmptyListIsASuccess(t *testing.T) {
	f := &fakeFetcher{bodies: map[string]string{device.PathDebugProfiles: `[]`}}
	svc, _, _, _ := newCatalog(f)

	got := svc.Load(context.Background())
	if got.Source != SourceDebug || got.Profiles == nil || len(got.Profiles) != 0 {
		t.Fatalf("got %+v", got)
	}
}

func TestDefaultProfiles_ReturnsFreshCopy(t *testing.T) {
	a := DefaultProfiles()
	a[0].Name = "changed"
	if DefaultProfiles()[0].Name != "PLA" {
		t.Fatalf("defaults were mutated")
	}
}
