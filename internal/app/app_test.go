package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/revealkit/internal/reveal"
	"github.com/dshills/revealkit/internal/trace"
)

// newTestApp creates an application with logging silenced and shutdown
// registered as cleanup.
func newTestApp(t *testing.T, opts Options) *Application {
	t.Helper()

	application, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	application.SetAppLogger(NullLogger)
	t.Cleanup(application.Shutdown)
	return application
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestNewDefaults(t *testing.T) {
	application := newTestApp(t, Options{})

	if application.EventBus() == nil {
		t.Error("EventBus() should not be nil")
	}
	if application.Config() == nil {
		t.Error("Config() should not be nil")
	}
	if application.Surface() == nil {
		t.Error("Surface() should not be nil")
	}
	if application.Controller() == nil {
		t.Error("Controller() should not be nil")
	}
	if application.IsRunning() {
		t.Error("IsRunning() = true before Run")
	}
	if application.Renderer() != nil {
		t.Error("Renderer() should be nil before Run")
	}
}

func TestNewMissingConfigFallsBackToDefaults(t *testing.T) {
	application := newTestApp(t, Options{
		ConfigPath: filepath.Join(t.TempDir(), "missing.toml"),
	})

	cfg := application.Surface().Config()
	if cfg.CommitThreshold != 0.5 {
		t.Errorf("CommitThreshold = %v, want default 0.5", cfg.CommitThreshold)
	}
}

func TestNewEdgeOnlyOverride(t *testing.T) {
	application := newTestApp(t, Options{EdgeOnly: true})

	if got := application.Surface().Config().Mode; got != reveal.ModeEdgeOnly {
		t.Errorf("Mode = %v, want %v", got, reveal.ModeEdgeOnly)
	}
}

func TestRunNoBackend(t *testing.T) {
	application := newTestApp(t, Options{})

	if err := application.Run(); !errors.Is(err, ErrNoBackend) {
		t.Errorf("Run() error = %v, want %v", err, ErrNoBackend)
	}
}

func TestRunScriptMode(t *testing.T) {
	script := writeTempFile(t, "open.lua", `
reveal.open("left")
reveal.settle()
`)
	application := newTestApp(t, Options{ScriptPath: script})

	if err := application.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	surface := application.Surface()
	if surface.Value() != 1.0 {
		t.Errorf("Value() = %v, want 1.0", surface.Value())
	}
	if surface.CurrentSide() != reveal.SideLeft {
		t.Errorf("CurrentSide() = %v, want %v", surface.CurrentSide(), reveal.SideLeft)
	}
}

func TestRunScriptGesture(t *testing.T) {
	script := writeTempFile(t, "drag.lua", `
reveal.down(50, 10)
reveal.move(30, 0)
reveal.move(30, 0)
reveal.up()
reveal.settle()
`)
	application := newTestApp(t, Options{ScriptPath: script})

	if err := application.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// The drag crossed the commit threshold, so the panel settles open.
	if !application.Controller().IsOpen() {
		t.Errorf("IsOpen() = false after committed drag, value = %v",
			application.Surface().Value())
	}
}

func TestRunScriptError(t *testing.T) {
	script := writeTempFile(t, "broken.lua", `this is not lua(`)
	application := newTestApp(t, Options{ScriptPath: script})

	err := application.Run()
	if err == nil {
		t.Fatal("Run() should fail on a broken script")
	}

	var compErr *ComponentError
	if !errors.As(err, &compErr) {
		t.Fatalf("Run() error = %T, want *ComponentError", err)
	}
	if compErr.Component != "script" {
		t.Errorf("Component = %q, want %q", compErr.Component, "script")
	}
}

func TestRunReplayMode(t *testing.T) {
	tracePath := writeTempFile(t, "open.yaml", `
id: test-trace
width: 100
height: 40
entries:
  - at_ms: 0
    kind: open
    side: left
`)
	application := newTestApp(t, Options{ReplayPath: tracePath})

	if err := application.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	surface := application.Surface()
	if surface.Value() != 1.0 {
		t.Errorf("Value() = %v, want 1.0", surface.Value())
	}
	if surface.CurrentSide() != reveal.SideLeft {
		t.Errorf("CurrentSide() = %v, want %v", surface.CurrentSide(), reveal.SideLeft)
	}
}

func TestRunReplayMissingFile(t *testing.T) {
	application := newTestApp(t, Options{
		ReplayPath: filepath.Join(t.TempDir(), "missing.yaml"),
	})

	err := application.Run()
	if err == nil {
		t.Fatal("Run() should fail on a missing trace")
	}

	var compErr *ComponentError
	if !errors.As(err, &compErr) {
		t.Fatalf("Run() error = %T, want *ComponentError", err)
	}
	if compErr.Component != "trace" {
		t.Errorf("Component = %q, want %q", compErr.Component, "trace")
	}
}

func TestRunReplayBadFormat(t *testing.T) {
	tracePath := writeTempFile(t, "bad.yaml", `
id: bad
entries:
  - at_ms: 0
    kind: teleport
`)
	application := newTestApp(t, Options{ReplayPath: tracePath})

	err := application.Run()
	if err == nil {
		t.Fatal("Run() should fail on an unknown entry kind")
	}

	var fmtErr *trace.FormatError
	if !errors.As(err, &fmtErr) {
		t.Errorf("Run() error = %T, want wrapped *trace.FormatError", err)
	}
}

func TestShutdownIdempotent(t *testing.T) {
	application := newTestApp(t, Options{})

	application.Shutdown()
	application.Shutdown() // must not panic or block
}

func TestQueueConfigKeepsLatest(t *testing.T) {
	application := newTestApp(t, Options{})

	first := reveal.Config{CommitThreshold: 0.3}
	second := reveal.Config{CommitThreshold: 0.7}
	application.queueConfig(first)
	application.queueConfig(second)

	select {
	case cfg := <-application.configUpdates:
		if cfg.CommitThreshold != 0.7 {
			t.Errorf("queued CommitThreshold = %v, want 0.7 (latest)", cfg.CommitThreshold)
		}
	default:
		t.Fatal("no configuration queued")
	}
}
