package collectors

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// --- Registry Tests ---

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	c := NewMockCollector("weather", 0)

	if err := r.Register(c); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	got, ok := r.Get("weather")
	if !ok {
		t.Fatal("Get returned false for registered collector")
	}
	if got.Name() != "weather" {
		t.Errorf("Name = %q, want %q", got.Name(), "weather")
	}
}

func TestRegistryDuplicateNameError(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(NewMockCollector("dup", 0)); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	if err := r.Register(NewMockCollector("dup", 0)); err == nil {
		t.Fatal("second Register should have returned an error for duplicate name")
	}
}

func TestRegistryList(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(NewMockCollector("weather", 0))
	_ = r.Register(NewMockCollector("crypto", 0))
	_ = r.Register(NewMockCollector("links", 0))

	names := r.List()
	expected := []string{"crypto", "links", "weather"}

	if len(names) != len(expected) {
		t.Fatalf("List returned %d names, want %d", len(names), len(expected))
	}
	for i, name := range names {
		if name != expected[i] {
			t.Errorf("List[%d] = %q, want %q", i, name, expected[i])
		}
	}
}

func TestRegistryStatusInitial(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(NewMockCollector("crypto", 0))

	s, ok := r.Status("crypto")
	if !ok {
		t.Fatal("Status returned false for registered collector")
	}
	if !s.Healthy {
		t.Error("initial status should be healthy")
	}
	if s.RunCount != 0 {
		t.Errorf("initial RunCount = %d, want 0", s.RunCount)
	}
	if _, ok := r.Status("nope"); ok {
		t.Error("Status should return false for unregistered collector")
	}
}

func TestRegistryAllStatusSorted(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(NewMockCollector("b", 0))
	_ = r.Register(NewMockCollector("a", 0))

	statuses := r.AllStatus()
	if len(statuses) != 2 {
		t.Fatalf("AllStatus returned %d, want 2", len(statuses))
	}
	if statuses[0].Name != "a" || statuses[1].Name != "b" {
		t.Errorf("AllStatus not sorted: got %q, %q", statuses[0].Name, statuses[1].Name)
	}
}

func TestRegistryRunOnce(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(NewMockCollector("links", 0, WithData("loaded")))

	data, err := r.RunOnce(context.Background(), "links")
	if err != nil {
		t.Fatalf("RunOnce failed: %v", err)
	}
	if data != "loaded" {
		t.Errorf("Data = %v, want %q", data, "loaded")
	}

	s, _ := r.Status("links")
	if s.RunCount != 1 {
		t.Errorf("RunCount = %d, want 1", s.RunCount)
	}
	if s.LastRun.IsZero() {
		t.Error("LastRun should not be zero after RunOnce")
	}
	if !s.Healthy {
		t.Error("status should stay healthy after success")
	}
}

func TestRegistryRunOnceWithError(t *testing.T) {
	r := NewRegistry()
	testErr := errors.New("runonce-fail")
	_ = r.Register(NewMockCollector("weather", 0, WithData("partial"), WithError(testErr)))

	data, err := r.RunOnce(context.Background(), "weather")
	if !errors.Is(err, testErr) {
		t.Fatalf("RunOnce error = %v, want %v", err, testErr)
	}
	if data != "partial" {
		t.Errorf("Data = %v, want data passed through alongside the error", data)
	}

	s, _ := r.Status("weather")
	if s.ErrorCount != 1 {
		t.Errorf("ErrorCount = %d, want 1", s.ErrorCount)
	}
	if s.Healthy {
		t.Error("status should be unhealthy after error")
	}
	if s.LastError != "runonce-fail" {
		t.Errorf("LastError = %q", s.LastError)
	}
}

func TestRegistryRunOnceRecovers(t *testing.T) {
	r := NewRegistry()
	m := NewMockCollector("crypto", 0, WithError(errors.New("down")))
	_ = r.Register(m)

	_, _ = r.RunOnce(context.Background(), "crypto")
	m.Set("up", nil)
	_, _ = r.RunOnce(context.Background(), "crypto")

	s, _ := r.Status("crypto")
	if !s.Healthy || s.LastError != "" {
		t.Errorf("status after recovery = %+v, want healthy with no error", s)
	}
	if s.RunCount != 2 || s.ErrorCount != 1 {
		t.Errorf("RunCount=%d ErrorCount=%d, want 2 and 1", s.RunCount, s.ErrorCount)
	}
}

func TestRegistryRunOnceNotFound(t *testing.T) {
	r := NewRegistry()
	if _, err := r.RunOnce(context.Background(), "ghost"); err == nil {
		t.Fatal("RunOnce should error for unregistered collector")
	}
}

func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(NewMockCollector("links", 0))

	if !r.Unregister("links") {
		t.Fatal("Unregister returned false for a registered collector")
	}
	if _, ok := r.Get("links"); ok {
		t.Error("collector still registered")
	}
	if _, ok := r.Status("links"); ok {
		t.Error("status still present")
	}
	if r.Unregister("links") {
		t.Error("second Unregister should return false")
	}
	if err := r.Register(NewMockCollector("links", 0)); err != nil {
		t.Errorf("re-register after Unregister: %v", err)
	}
}

func TestRegistryRecord(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(NewMockCollector("weather", 0))

	r.Record("weather", errors.New("fetch failed"), 250*time.Millisecond)
	s, _ := r.Status("weather")
	if s.Healthy || s.LastError != "fetch failed" || s.ErrorCount != 1 {
		t.Errorf("status after failed record = %+v", s)
	}
	if s.LastLatency != 250*time.Millisecond {
		t.Errorf("LastLatency = %v, want 250ms", s.LastLatency)
	}

	r.Record("weather", nil, time.Millisecond)
	s, _ = r.Status("weather")
	if !s.Healthy || s.RunCount != 2 {
		t.Errorf("status after success = %+v", s)
	}

	// Unknown names are ignored.
	r.Record("ghost", nil, time.Millisecond)
	if _, ok := r.Status("ghost"); ok {
		t.Error("Record created a status for an unknown collector")
	}
}

// --- Mock Collector Tests ---

func TestMockCollectorDefaults(t *testing.T) {
	m := NewMockCollector("test", 5*time.Second)

	if m.Interval() != 5*time.Second {
		t.Errorf("Interval = %v, want %v", m.Interval(), 5*time.Second)
	}
	if !m.Healthy() {
		t.Error("default Healthy should be true")
	}
	if m.CallCount() != 0 {
		t.Errorf("initial CallCount = %d, want 0", m.CallCount())
	}
}

func TestMockCollectorWithCollectFunc(t *testing.T) {
	calls := 0
	m := NewMockCollector("custom", 0,
		WithCollectFunc(func(ctx context.Context) (interface{}, error) {
			calls++
			if calls == 2 {
				return nil, errors.New("second call fails")
			}
			return calls, nil
		}),
	)

	if data, _ := m.Collect(context.Background()); data != 1 {
		t.Errorf("Data = %v, want 1", data)
	}
	if _, err := m.Collect(context.Background()); err == nil {
		t.Error("second call should fail")
	}
	if m.Healthy() {
		t.Error("Healthy should follow the last Collect error")
	}
	if m.CallCount() != 2 {
		t.Errorf("CallCount = %d, want 2", m.CallCount())
	}
}

// --- HTTP Client Tests ---

func TestGetJSONDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "BrowserHome Test" {
			t.Errorf("User-Agent = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"symbol":"BTC"}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(WithHTTPClient(srv.Client()), WithUserAgent("BrowserHome Test"))
	var out struct {
		Symbol string `json:"symbol"`
	}
	if err := c.GetJSON(context.Background(), srv.URL, nil, &out); err != nil {
		t.Fatalf("GetJSON failed: %v", err)
	}
	if out.Symbol != "BTC" {
		t.Errorf("Symbol = %q, want BTC", out.Symbol)
	}
}

func TestGetJSONHeaderOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "override" {
			t.Errorf("User-Agent = %q, want override", got)
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(WithHTTPClient(srv.Client()), WithUserAgent("default"))
	var out map[string]interface{}
	h := http.Header{}
	h.Set("User-Agent", "override")
	if err := c.GetJSON(context.Background(), srv.URL, h, &out); err != nil {
		t.Fatalf("GetJSON failed: %v", err)
	}
}

func TestGetJSONStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	defer srv.Close()

	c := NewHTTPClient(WithHTTPClient(srv.Client()))
	var out map[string]interface{}
	err := c.GetJSON(context.Background(), srv.URL, nil, &out)

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want *StatusError", err)
	}
	if se.StatusCode != http.StatusPaymentRequired {
		t.Errorf("StatusCode = %d", se.StatusCode)
	}
	if !strings.Contains(err.Error(), "402 Payment Required") {
		t.Errorf("error text %q should carry the status line", err.Error())
	}
}

func TestGetJSONMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	c := NewHTTPClient(WithHTTPClient(srv.Client()))
	var out map[string]interface{}
	if err := c.GetJSON(context.Background(), srv.URL, nil, &out); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestGetJSONNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewHTTPClient()
	var out map[string]interface{}
	err := c.GetJSON(context.Background(), url, nil, &out)
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("error = %v, want ErrNetwork", err)
	}
	if !strings.Contains(err.Error(), "Network") {
		t.Errorf("network error text %q should mention Network", err.Error())
	}
}
