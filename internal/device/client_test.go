package device

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetJSON_DecodesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/profiles" {
			t.Errorf("path=%s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":"PLA","temperature":45,"duration":240}]`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	var out []struct {
		Name string `json:"name"`
	}
	if err := c.GetJSON(context.Background(), PathProfiles, &out); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if len(out) != 1 || out[0].Name != "PLA" {
		t.Fatalf("out=%+v", out)
	}
}

func TestGetJSON_Non2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, time.Second)
	var out map[string]any
	err := c.GetJSON(context.Background(), PathStatus, &out)
	if !errors.Is(err, ErrHTTPStatus) {
		t.Fatalf("expected ErrHTTPStatus, got %v", err)
	}
}

func TestGetJSON_BadBodyIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{broken`))
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, time.Second)
	var out map[string]any
	if err := c.GetJSON(context.Background(), PathStatus, &out); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestGetJSON_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, _ := NewClient(url, 200*time.Millisecond)
	var out map[string]any
	if err := c.GetJSON(context.Background(), PathStatus, &out); err == nil {
		t.Fatalf("expected network error")
	}
}

func TestNewClient_Validation(t *testing.T) {
	for _, raw := range []string{"", "dryer.local", "ftp://dryer.local", "http://"} {
		if _, err := NewClient(raw, time.Second); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestResolve_KeepsBasePath(t *testing.T) {
	c, err := NewClient("http://dryer.local/api/", time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if got := c.resolve("/status"); got != "http://dryer.local/api/status" {
		t.Fatalf("got %q", got)
	}
}

func TestLiveURL(t *testing.T) {
	cases := map[string]string{
		"http://192.168.4.1":       "ws://192.168.4.1/ws",
		"http://dryer.local:8080/": "ws://dryer.local:8080/ws",
		"https://dryer.example":    "wss://dryer.example/ws",
	}
	for in, want := range cases {
		got, err := LiveURL(in)
		if err != nil || got != want {
			t.Fatalf("LiveURL(%q)=%q,%v want %q", in, got, err, want)
		}
	}
	if _, err := LiveURL("not a url"); err == nil {
		t.Fatalf("expected error")
	}
}
