package component

import (
	"context"
	"errors"
	"testing"
)

type mockComponent struct {
	name     string
	startErr error
	stopErr  error
	health   Health
	events   *[]string
}

func (m *mockComponent) Name() string { return m.name }
func (m *mockComponent) Start(ctx context.Context) error {
	*m.events = append(*m.events, "start:"+m.name)
	return m.startErr
}
func (m *mockComponent) Stop(ctx context.Context) error {
	*m.events = append(*m.events, "stop:"+m.name)
	return m.stopErr
}
func (m *mockComponent) Health(ctx context.Context) Health { return m.health }
func (m *mockComponent) Describe() Description {
	return Description{Type: "test", Details: m.name}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRegistryLifecycleOrder(t *testing.T) {
	var events []string
	r := NewRegistry(nil)
	for _, n := range []string{"model", "transcription", "server"} {
		if err := r.Register(&mockComponent{name: n, events: &events}); err != nil {
			t.Fatal(err)
		}
	}
	ctx := context.Background()
	if err := r.StartAll(ctx); err != nil {
		t.Fatalf("StartAll: %v", err)
	}
	if err := r.StopAll(ctx); err != nil {
		t.Fatalf("StopAll: %v", err)
	}
	want := []string{
		"start:model", "start:transcription", "start:server",
		"stop:server", "stop:transcription", "stop:model",
	}
	if !equal(events, want) {
		t.Errorf("events = %v, want %v", events, want)
	}
	if names := r.Names(); !equal(names, []string{"model", "transcription", "server"}) {
		t.Errorf("names = %v", names)
	}
}

func TestRegistryDuplicate(t *testing.T) {
	var events []string
	r := NewRegistry(nil)
	_ = r.Register(&mockComponent{name: "model", events: &events})
	if err := r.Register(&mockComponent{name: "model", events: &events}); err == nil {
		t.Error("expected duplicate registration error")
	}
	if r.Get("model") == nil || r.Get("missing") != nil {
		t.Error("unexpected Get result")
	}
}

func TestRegistryStartFailureRollsBack(t *testing.T) {
	var events []string
	r := NewRegistry(nil)
	_ = r.Register(&mockComponent{name: "model", events: &events})
	_ = r.Register(&mockComponent{name: "server", events: &events, startErr: errors.New("port in use")})

	if err := r.StartAll(context.Background()); err == nil {
		t.Fatal("expected start error")
	}
	want := []string{"start:model", "start:server", "stop:model"}
	if !equal(events, want) {
		t.Errorf("events = %v, want %v", events, want)
	}
}

func TestRegistryStopErrorsJoined(t *testing.T) {
	var events []string
	r := NewRegistry(nil)
	_ = r.Register(&mockComponent{name: "a", events: &events, stopErr: errors.New("a failed")})
	_ = r.Register(&mockComponent{name: "b", events: &events, stopErr: errors.New("b failed")})
	_ = r.StartAll(context.Background())

	err := r.StopAll(context.Background())
	if err == nil {
		t.Fatal("expected stop error")
	}
	if got := err.Error(); got != "failed to stop b: b failed\nfailed to stop a: a failed" {
		t.Errorf("unexpected error %q", got)
	}
}

func TestOverall(t *testing.T) {
	tests := []struct {
		name    string
		healths []Health
		want    HealthStatus
	}{
		{"empty", nil, StatusHealthy},
		{"all healthy", []Health{{Status: StatusHealthy}, {Status: StatusHealthy}}, StatusHealthy},
		{"degraded model", []Health{{Status: StatusHealthy}, {Status: StatusDegraded}}, StatusDegraded},
		{"unhealthy wins", []Health{{Status: StatusDegraded}, {Status: StatusUnhealthy}}, StatusUnhealthy},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overall(tc.healths); got != tc.want {
				t.Errorf("Overall = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestHealthAll(t *testing.T) {
	var events []string
	r := NewRegistry(nil)
	_ = r.Register(&mockComponent{name: "model", events: &events, health: Health{Name: "model", Status: StatusDegraded}})
	hs := r.HealthAll(context.Background())
	if len(hs) != 1 || hs[0].Status != StatusDegraded {
		t.Errorf("unexpected health %v", hs)
	}
}
