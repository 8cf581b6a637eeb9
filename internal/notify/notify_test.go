package notify

import (
	"testing"
	"time"

	"github.com/puntotecno/terminal/pkg/config"
	"github.com/puntotecno/terminal/pkg/enums"
)

func testConfig() config.NotifyConfig {
	return config.NotifyConfig{
		InfoTTL:    3 * time.Second,
		WarningTTL: 4 * time.Second,
		ErrorTTL:   5 * time.Second,
	}
}

func TestPushAndActive(t *testing.T) {
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	n := New(testConfig())
	n.now = func() time.Time { return base }

	n.Push("venta registrada", enums.SeveritySuccess)
	n.Push("stock bajo", enums.SeverityWarning)

	active := n.Active(base)
	if len(active) != 2 {
		t.Fatalf("expected 2 active got %d", len(active))
	}
	if active[0].Message != "venta registrada" || active[1].Message != "stock bajo" {
		t.Fatalf("arrival order not preserved: %+v", active)
	}
}

func TestPerSeverityTTL(t *testing.T) {
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	n := New(testConfig())
	n.now = func() time.Time { return base }

	n.Push("info", enums.SeverityInfo)
	n.Push("warning", enums.SeverityWarning)
	n.Push("error", enums.SeverityError)

	// Info expires first, then warning, then error.
	active := n.Active(base.Add(3500 * time.Millisecond))
	if len(active) != 2 {
		t.Fatalf("expected info pruned, got %d active", len(active))
	}
	active = n.Active(base.Add(4500 * time.Millisecond))
	if len(active) != 1 || active[0].Severity != enums.SeverityError {
		t.Fatalf("expected only error left, got %+v", active)
	}
	active = n.Active(base.Add(6 * time.Second))
	if len(active) != 0 {
		t.Fatalf("expected everything pruned, got %d", len(active))
	}
}

func TestDismiss(t *testing.T) {
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	n := New(testConfig())
	n.now = func() time.Time { return base }

	first := n.Push("uno", enums.SeverityInfo)
	n.Push("dos", enums.SeverityInfo)

	n.Dismiss(first)
	active := n.Active(base)
	if len(active) != 1 || active[0].Message != "dos" {
		t.Fatalf("expected only second notification, got %+v", active)
	}

	// Unknown ids are a no-op.
	n.Dismiss(first)
	if got := len(n.Active(base)); got != 1 {
		t.Fatalf("expected 1 active got %d", got)
	}
}

func TestUnknownSeverityShownAsError(t *testing.T) {
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	n := New(testConfig())
	n.now = func() time.Time { return base }

	n.Push("algo salió mal", enums.Severity("critical"))
	active := n.Active(base)
	if len(active) != 1 || active[0].Severity != enums.SeverityError {
		t.Fatalf("expected error severity, got %+v", active)
	}
}

func TestClear(t *testing.T) {
	n := New(testConfig())
	n.Push("uno", enums.SeverityInfo)
	n.Clear()
	if got := len(n.Active(time.Now())); got != 0 {
		t.Fatalf("expected empty queue got %d", got)
	}
}
