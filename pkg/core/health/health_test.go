package health

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func statusCheck(name string, status Status) Checker {
	return NewChecker(name, func(ctx context.Context) CheckResult {
		return CheckResult{Status: status}
	})
}

func TestRegistryCheck(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{"no checks", nil, StatusHealthy},
		{"all healthy", []Status{StatusHealthy, StatusHealthy}, StatusHealthy},
		{"one degraded", []Status{StatusHealthy, StatusDegraded}, StatusDegraded},
		{"unhealthy wins", []Status{StatusDegraded, StatusUnhealthy, StatusHealthy}, StatusUnhealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewRegistry("numerik", "0.2.0")
			for i, status := range tt.statuses {
				registry.Register(statusCheck(string(rune('a'+i)), status))
			}

			report := registry.Check(context.Background())
			if report.Status != tt.want {
				t.Errorf("Status = %s, want %s", report.Status, tt.want)
			}
			if len(report.Checks) != len(tt.statuses) {
				t.Errorf("len(Checks) = %d, want %d", len(report.Checks), len(tt.statuses))
			}
			for _, check := range report.Checks {
				if check.Name == "" || check.Timestamp.IsZero() {
					t.Errorf("check result not completed: %+v", check)
				}
			}
		})
	}
}

func TestRegistryOrderAndReplace(t *testing.T) {
	registry := NewRegistry("numerik", "0.2.0")
	registry.Register(statusCheck("journal", StatusUnhealthy))
	registry.Register(statusCheck("engine", StatusHealthy))
	registry.Register(statusCheck("journal", StatusHealthy))

	if diff := cmp.Diff([]string{"engine", "journal"}, registry.Names()); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}

	report := registry.Check(context.Background())
	var names []string
	for _, c := range report.Checks {
		names = append(names, c.Name)
	}
	if diff := cmp.Diff([]string{"engine", "journal"}, names); diff != "" {
		t.Errorf("report order mismatch (-want +got):\n%s", diff)
	}
	if report.Status != StatusHealthy {
		t.Errorf("Status = %s after replacing the unhealthy check", report.Status)
	}
	if report.Service != "numerik" || report.Version != "0.2.0" || report.Uptime == "" {
		t.Errorf("report header = %+v", report)
	}
}

func TestRegistryRecoversPanic(t *testing.T) {
	registry := NewRegistry("numerik", "0.2.0")
	registry.Register(NewChecker("engine", func(ctx context.Context) CheckResult {
		panic("rounding necessary")
	}))

	report := registry.Check(context.Background())
	if report.Status != StatusUnhealthy {
		t.Fatalf("Status = %s, want unhealthy", report.Status)
	}
	if got := report.Checks[0]; got.Name != "engine" || got.Message != "check panicked: rounding necessary" {
		t.Errorf("panicking check = %+v", got)
	}
}

func TestRegistryRunsChecksConcurrently(t *testing.T) {
	registry := NewRegistry("numerik", "0.2.0")
	var running, peak int32
	for i := 0; i < 4; i++ {
		registry.Register(NewChecker(string(rune('a'+i)), func(ctx context.Context) CheckResult {
			n := atomic.AddInt32(&running, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(20 * time.Millisecond)
			atomic.AddInt32(&running, -1)
			return CheckResult{Status: StatusHealthy}
		}))
	}

	registry.Check(context.Background())
	if atomic.LoadInt32(&peak) < 2 {
		t.Errorf("checks did not overlap, peak = %d", peak)
	}
}

func TestPingCheck(t *testing.T) {
	ok := PingCheck("journal", func(ctx context.Context) error { return nil })
	if got := ok.Check(context.Background()); got.Status != StatusHealthy {
		t.Errorf("Status = %s, want healthy", got.Status)
	}

	failing := PingCheck("journal", func(ctx context.Context) error { return errors.New("database is locked") })
	got := failing.Check(context.Background())
	if got.Status != StatusUnhealthy || got.Message != "database is locked" {
		t.Errorf("failing ping = %+v", got)
	}
}

func TestProbeCheck(t *testing.T) {
	if got := ProbeCheck("engine", "0.99", func() string { return "0.99" }).Check(context.Background()); got.Status != StatusHealthy {
		t.Errorf("Status = %s, want healthy", got.Status)
	}
	got := ProbeCheck("engine", "0.99", func() string { return "" }).Check(context.Background())
	if got.Status != StatusDegraded || got.Details["got"] != "" {
		t.Errorf("mismatching probe = %+v", got)
	}
}
