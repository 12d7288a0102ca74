package app

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/dshills/revealkit/internal/config"
	"github.com/dshills/revealkit/internal/config/notify"
	"github.com/dshills/revealkit/internal/config/watcher"
	"github.com/dshills/revealkit/internal/event"
	"github.com/dshills/revealkit/internal/event/events"
	"github.com/dshills/revealkit/internal/renderer"
	"github.com/dshills/revealkit/internal/renderer/backend"
	"github.com/dshills/revealkit/internal/reveal"
	"github.com/dshills/revealkit/internal/script"
	"github.com/dshills/revealkit/internal/trace"
)

// Application is the central coordinator. It wires the reveal surface
// to configuration, the event bus, the renderer backend, scripting, and
// trace record/replay, and runs the frame-driven event loop.
type Application struct {
	mu sync.RWMutex

	// Core infrastructure
	bus     *event.Bus
	config  *config.Manager
	watcher *watcher.Watcher

	// The engine
	surface    *reveal.Surface
	controller *reveal.Controller

	// Hosts
	renderer *renderer.Renderer
	backend  backend.Backend
	recorder *trace.Recorder

	// Wiring
	subs          *subscriptionManager
	configUpdates chan reveal.Config

	// Event loop state, owned by the Run goroutine
	mouse mouseState
	dirty bool

	// Observability
	logger  *Logger
	metrics *Metrics

	// State
	running      atomic.Bool
	done         chan struct{}
	shutdownOnce sync.Once

	// Options
	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the TOML configuration file.
	ConfigPath string

	// ScriptPath runs a Lua script against the surface instead of the
	// interactive loop.
	ScriptPath string

	// ReplayPath replays a recorded gesture trace instead of the
	// interactive loop.
	ReplayPath string

	// RecordPath saves a gesture trace of the interactive session.
	RecordPath string

	// LogLevel sets the logging verbosity.
	LogLevel string

	// EdgeOnly restricts gesture recognition to the edge hit regions,
	// overriding the configured mode.
	EdgeOnly bool
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:          opts,
		done:          make(chan struct{}),
		configUpdates: make(chan reveal.Config, 1),
	}

	if err := app.bootstrap(); err != nil {
		return nil, err
	}

	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Logging and metrics
	app.logger = NewLogger(LoggerConfig{
		Level:  ParseLogLevel(app.opts.LogLevel),
		Prefix: "revealkit",
	})
	SetLogger(app.logger)
	app.metrics = NewMetrics()

	// 2. Event bus
	app.bus = event.NewBus(event.WithPanicHandler(func(ev any, recovered any) {
		app.LogError("event handler panic: %v", recovered)
	}))

	// 3. Configuration: defaults, file layer, env overrides
	app.config = config.NewManager()
	if err := app.config.Load(app.opts.ConfigPath); err != nil {
		// A broken config file is not fatal; run on defaults.
		app.LogWarn("config load failed, using defaults: %v", err)
	}
	app.config.Notifier().Subscribe(app.onConfigChange)

	if app.opts.ConfigPath != "" {
		w, err := watcher.New(app.opts.ConfigPath, app.reloadConfig)
		if err != nil {
			app.LogWarn("config watcher unavailable: %v", err)
		} else {
			app.watcher = w
		}
	}

	// 4. The reveal surface, with callbacks publishing onto the bus
	app.surface = reveal.New(app.revealConfig(), app.callbacks())
	app.controller = app.surface.Controller()

	// 5. Bus subscriptions bridging topics to logger, metrics, config
	app.subs = newSubscriptionManager(app)
	if err := app.subs.setup(); err != nil {
		return &InitError{Component: "subscriptions", Err: err}
	}

	return nil
}

// revealConfig builds the engine configuration from the current
// settings, honoring the edge-only override.
func (app *Application) revealConfig() reveal.Config {
	cfg := app.config.RevealConfig()
	if app.opts.EdgeOnly {
		cfg.Mode = reveal.ModeEdgeOnly
	}
	return cfg
}

// onConfigChange forwards per-setting changes onto the bus.
func (app *Application) onConfigChange(c notify.Change) {
	if c.Type != notify.ChangeSet {
		return
	}
	app.publish(events.NewConfigChanged(c.Path, c.OldValue, c.NewValue, "config"))
}

// reloadConfig is the watcher handler: re-read the layers, publish the
// outcome, and queue the new engine configuration for the event loop.
func (app *Application) reloadConfig(path string) {
	changed, err := app.config.Reload()
	if err != nil {
		app.LogWarn("config reload failed: %v", err)
		app.publish(events.NewConfigError(path, err, "config"))
		return
	}
	if changed == 0 {
		return
	}
	app.LogInfo("config reloaded: %d settings changed", changed)
	// The reloaded subscription queues the new engine configuration.
	app.publish(events.NewConfigReloaded(path, changed, "config"))
}

// queueConfig hands a new engine configuration to the event loop. Only
// the latest pending configuration is kept; the surface is single
// goroutine owned, so it is never touched from here.
func (app *Application) queueConfig(cfg reveal.Config) {
	for {
		select {
		case app.configUpdates <- cfg:
			return
		default:
			select {
			case <-app.configUpdates:
			default:
			}
		}
	}
}

// publish sends an event to the bus, logging delivery failures at
// debug; a handler error must never disturb the interaction.
func (app *Application) publish(ev any) {
	if app.bus == nil {
		return
	}
	if err := app.bus.Publish(context.Background(), ev); err != nil {
		app.LogDebug("publish failed: %v", err)
	}
}

// SetBackend sets the terminal backend.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}

	app.backend = b
	return nil
}

// Run starts the application. In script or replay mode it executes the
// input and returns; otherwise it blocks in the interactive event loop
// until shutdown is requested.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	switch {
	case app.opts.ReplayPath != "":
		return app.runReplay()
	case app.opts.ScriptPath != "":
		return app.runScript()
	}

	if app.backend == nil {
		return ErrNoBackend
	}
	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()

	app.renderer = renderer.New(app.backend)

	width, height := app.backend.Size()
	app.surface.SetSize(float64(width), float64(height))

	if app.opts.RecordPath != "" {
		app.recorder = trace.NewRecorder(float64(width), float64(height))
	}

	app.publish(events.NewLifecycle(events.TopicAppStarted, "app"))
	err := app.eventLoop()
	app.publish(events.NewLifecycle(events.TopicAppStopping, "app"))

	if app.recorder != nil && app.recorder.Len() > 0 {
		if saveErr := app.recorder.Save(app.opts.RecordPath); saveErr != nil {
			app.LogError("saving trace: %v", saveErr)
		} else {
			app.LogInfo("trace saved to %s (%d entries)", app.opts.RecordPath, app.recorder.Len())
		}
	}

	return err
}

// runScript executes a Lua scenario against the surface.
func (app *Application) runScript() error {
	engine := script.NewEngine(app.surface)
	defer engine.Close()

	app.LogInfo("running script %s", app.opts.ScriptPath)
	if err := engine.RunFile(app.opts.ScriptPath); err != nil {
		return NewComponentError("script", "run", err)
	}
	app.LogInfo("script finished: value=%.2f side=%s state=%s",
		app.surface.Value(), app.surface.CurrentSide(), app.surface.State())
	return nil
}

// runReplay replays a recorded gesture trace into the surface.
func (app *Application) runReplay() error {
	tr, err := trace.Load(app.opts.ReplayPath)
	if err != nil {
		return NewComponentError("trace", "load", err)
	}

	app.LogInfo("replaying trace %s (%d entries)", tr.ID, len(tr.Entries))
	if err := trace.NewPlayer(tr).Replay(app.surface); err != nil {
		return NewComponentError("trace", "replay", err)
	}
	app.LogInfo("replay finished: value=%.2f side=%s state=%s",
		app.surface.Value(), app.surface.CurrentSide(), app.surface.State())
	return nil
}

// Shutdown tears the application down in reverse bootstrap order.
// Safe to call multiple times and from any goroutine.
func (app *Application) Shutdown() {
	app.shutdownOnce.Do(func() {
		close(app.done)

		if app.subs != nil {
			app.subs.cleanup()
		}
		if app.watcher != nil {
			_ = app.watcher.Close()
		}
		if app.config != nil {
			app.config.Close()
		}
		if app.surface != nil {
			app.surface.Shutdown()
		}
		if app.bus != nil {
			app.bus.Close()
		}
	})
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// EventBus returns the event bus.
func (app *Application) EventBus() *event.Bus {
	return app.bus
}

// Config returns the configuration manager.
func (app *Application) Config() *config.Manager {
	return app.config
}

// Surface returns the reveal surface. It must only be driven from the
// goroutine that owns Run.
func (app *Application) Surface() *reveal.Surface {
	return app.surface
}

// Controller returns the programmatic reveal command port.
func (app *Application) Controller() *reveal.Controller {
	return app.controller
}

// Renderer returns the renderer, nil before Run.
func (app *Application) Renderer() *renderer.Renderer {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.renderer
}
