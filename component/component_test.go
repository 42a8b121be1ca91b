package component

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/kbukum/prodquery/errors"
	"github.com/kbukum/prodquery/logger"
)

type mockComponent struct {
	name       string
	startErr   error
	stopErr    error
	health     Health
	desc       *Description
	startOrder *[]string
	stopOrder  *[]string
}

func (m *mockComponent) Name() string { return m.name }
func (m *mockComponent) Start(ctx context.Context) error {
	if m.startOrder != nil {
		*m.startOrder = append(*m.startOrder, m.name)
	}
	return m.startErr
}
func (m *mockComponent) Stop(ctx context.Context) error {
	if m.stopOrder != nil {
		*m.stopOrder = append(*m.stopOrder, m.name)
	}
	return m.stopErr
}
func (m *mockComponent) Health(ctx context.Context) Health {
	return m.health
}

type describedComponent struct {
	mockComponent
}

func (d *describedComponent) Describe() Description { return *d.desc }

func newTestRegistry() (*Registry, *bytes.Buffer) {
	var buf bytes.Buffer
	cfg := logger.Config{Level: "debug", Format: "json"}
	return NewRegistry(logger.NewWithWriter(&cfg, "test", &buf)), &buf
}

func TestRegisterDuplicate(t *testing.T) {
	r, _ := newTestRegistry()
	if err := r.Register(&mockComponent{name: "catalog"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register(&mockComponent{name: "catalog"}); err == nil {
		t.Error("expected error for duplicate registration")
	}
}

func TestGet(t *testing.T) {
	r, _ := newTestRegistry()
	r.Register(&mockComponent{name: "catalog"})

	got := r.Get("catalog")
	if got == nil {
		t.Fatal("expected to get registered component")
	}
	if got.Name() != "catalog" {
		t.Errorf("expected 'catalog', got %q", got.Name())
	}
	if r.Get("missing") != nil {
		t.Error("expected nil for unregistered component")
	}
	if len(r.All()) != 1 {
		t.Errorf("expected 1 component, got %d", len(r.All()))
	}
}

func TestStartAllOrder(t *testing.T) {
	r, _ := newTestRegistry()
	order := []string{}
	r.Register(&mockComponent{name: "tracing", startOrder: &order})
	r.Register(&mockComponent{name: "catalog", startOrder: &order})

	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}
	if len(order) != 2 || order[0] != "tracing" || order[1] != "catalog" {
		t.Errorf("expected start order [tracing, catalog], got %v", order)
	}
}

func TestStartAllStopsAtFirstError(t *testing.T) {
	r, logs := newTestRegistry()
	order := []string{}
	cause := errors.SeedUnavailable("seed.yml", fmt.Errorf("missing"))
	r.Register(&mockComponent{name: "catalog", startErr: cause, startOrder: &order})
	r.Register(&mockComponent{name: "after", startOrder: &order})

	err := r.StartAll(context.Background())
	if !errors.HasCode(err, errors.ErrCodeSeedUnavailable) {
		t.Errorf("expected wrapped SEED_UNAVAILABLE, got %v", err)
	}
	if len(order) != 1 {
		t.Errorf("expected later components not to start, got %v", order)
	}
	if !strings.Contains(logs.String(), "component start failed") {
		t.Errorf("expected start failure to be logged, got %q", logs.String())
	}
}

func TestStopAllReverseOrder(t *testing.T) {
	r, _ := newTestRegistry()
	order := []string{}
	r.Register(&mockComponent{name: "tracing", stopOrder: &order})
	r.Register(&mockComponent{name: "metrics", stopOrder: &order})
	r.Register(&mockComponent{name: "catalog", stopOrder: &order})

	r.StartAll(context.Background())
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}
	want := []string{"catalog", "metrics", "tracing"}
	if fmt.Sprint(order) != fmt.Sprint(want) {
		t.Errorf("expected reverse stop order %v, got %v", want, order)
	}
}

func TestStopAllSkipsUnstarted(t *testing.T) {
	r, _ := newTestRegistry()
	order := []string{}
	r.Register(&mockComponent{name: "catalog", stopOrder: &order})

	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}
	if len(order) != 0 {
		t.Errorf("expected 0 stops for unstarted components, got %d", len(order))
	}
}

func TestStopAllContinuesAfterError(t *testing.T) {
	r, _ := newTestRegistry()
	order := []string{}
	r.Register(&mockComponent{name: "tracing", stopOrder: &order})
	r.Register(&mockComponent{name: "metrics", stopErr: fmt.Errorf("flush failed"), stopOrder: &order})
	r.StartAll(context.Background())

	if err := r.StopAll(context.Background()); err == nil {
		t.Error("expected error from StopAll")
	}
	if len(order) != 2 {
		t.Errorf("expected both components stopped, got %v", order)
	}
}

func TestStartAllLogsDescription(t *testing.T) {
	r, logs := newTestRegistry()
	r.Register(&describedComponent{mockComponent{
		name: "catalog",
		desc: &Description{Type: "catalog", Details: "source=builtin products=16"},
	}})

	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}
	if !strings.Contains(logs.String(), "source=builtin products=16") {
		t.Errorf("expected description in logs, got %q", logs.String())
	}
}

func TestHealthAll(t *testing.T) {
	r, _ := newTestRegistry()
	r.Register(&mockComponent{name: "catalog", health: Health{Name: "catalog", Status: StatusHealthy}})
	r.Register(&mockComponent{name: "tracing", health: Health{Name: "tracing", Status: StatusDegraded, Message: "sampling off"}})

	results := r.HealthAll(context.Background())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Status != StatusHealthy {
		t.Errorf("expected catalog healthy, got %s", results[0].Status)
	}
	if results[1].Status != StatusDegraded {
		t.Errorf("expected tracing degraded, got %s", results[1].Status)
	}
}
