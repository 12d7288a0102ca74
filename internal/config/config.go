// Package config provides layered configuration for revealkit:
// defaults, then a TOML file, then REVEALKIT_* environment overrides.
// A Manager holds the merged settings, converts them to engine
// configuration, and publishes changes through the notify package when
// the file reloads.
package config

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dshills/revealkit/internal/config/loader"
	"github.com/dshills/revealkit/internal/config/notify"
	"github.com/dshills/revealkit/internal/reveal"
)

// EnvPrefix is the environment variable prefix for overrides.
const EnvPrefix = "REVEALKIT_"

// Defaults returns the built-in configuration map, the lowest layer.
func Defaults() map[string]any {
	return map[string]any{
		"reveal": map[string]any{
			"mode":                 "full-surface",
			"recognition_distance": 5.0,
			"fling_velocity":       500.0,
			"commit_threshold":     0.5,
			"settle_duration":      "300ms",
		},
		"edges": map[string]any{
			"left": map[string]any{
				"enabled":      true,
				"hit_width":    20.0,
				"top_inset":    0.0,
				"bottom_inset": 0.0,
			},
			"right": map[string]any{
				"enabled":      true,
				"hit_width":    20.0,
				"top_inset":    0.0,
				"bottom_inset": 0.0,
			},
		},
		"logging": map[string]any{
			"level": "info",
			"file":  "",
		},
	}
}

// Manager owns the merged configuration map and its change observers.
// It is safe for concurrent use.
type Manager struct {
	mu       sync.RWMutex
	path     string
	settings map[string]any
	notifier *notify.Notifier
}

// NewManager creates a manager seeded with the defaults.
func NewManager() *Manager {
	return &Manager{
		settings: Defaults(),
		notifier: notify.New(),
	}
}

// Load merges the TOML file at path (if any) and environment overrides
// over the defaults. The merged map replaces the current settings
// without notifying; Load is for startup, Reload for changes.
func (m *Manager) Load(path string) error {
	merged, err := loadLayers(path)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.path = path
	m.settings = merged
	m.mu.Unlock()
	return nil
}

// Reload re-reads the layers, diffs against the current settings, and
// notifies observers of every changed path. It returns the number of
// changed settings.
func (m *Manager) Reload() (int, error) {
	m.mu.RLock()
	path := m.path
	old := m.settings
	m.mu.RUnlock()

	merged, err := loadLayers(path)
	if err != nil {
		return 0, err
	}

	changes := Diff(old, merged)
	if len(changes) == 0 {
		return 0, nil
	}

	m.mu.Lock()
	m.settings = merged
	m.mu.Unlock()

	// Deliver after the swap so observers reading back see new values.
	for _, c := range changes {
		m.notifier.NotifySet(c.Path, c.OldValue, c.NewValue, "reload")
	}
	m.notifier.NotifyReload("reload")
	return len(changes), nil
}

// Path returns the configured file path, empty when running on defaults.
func (m *Manager) Path() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.path
}

// Notifier returns the change notifier for observer registration.
func (m *Manager) Notifier() *notify.Notifier {
	return m.notifier
}

// Close shuts down the notifier.
func (m *Manager) Close() {
	m.notifier.Close()
}

// Set updates one setting by dot-separated path and notifies observers.
func (m *Manager) Set(path string, value any) {
	m.mu.Lock()
	old := getByPath(m.settings, path)
	setByPath(m.settings, path, value)
	m.mu.Unlock()

	m.notifier.NotifySet(path, old, value, "set")
}

// Get returns the value at a dot-separated path, nil when absent.
func (m *Manager) Get(path string) any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return getByPath(m.settings, path)
}

// GetString returns a string setting, or fallback when absent or mistyped.
func (m *Manager) GetString(path, fallback string) string {
	if s, ok := m.Get(path).(string); ok {
		return s
	}
	return fallback
}

// GetBool returns a bool setting, or fallback when absent or mistyped.
func (m *Manager) GetBool(path string, fallback bool) bool {
	if b, ok := m.Get(path).(bool); ok {
		return b
	}
	return fallback
}

// GetFloat returns a numeric setting as float64, accepting TOML integer
// values too.
func (m *Manager) GetFloat(path string, fallback float64) float64 {
	switch v := m.Get(path).(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return fallback
	}
}

// GetDuration parses a duration-string setting, or fallback.
func (m *Manager) GetDuration(path string, fallback time.Duration) time.Duration {
	s, ok := m.Get(path).(string)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

// RevealConfig converts the current settings to an engine configuration.
// Invalid values degrade to defaults via the engine's own clamping.
func (m *Manager) RevealConfig() reveal.Config {
	return reveal.Config{
		Mode:                reveal.ParseMode(m.GetString("reveal.mode", "full-surface")),
		RecognitionDistance: m.GetFloat("reveal.recognition_distance", 5),
		FlingVelocity:       m.GetFloat("reveal.fling_velocity", 500),
		CommitThreshold:     m.GetFloat("reveal.commit_threshold", 0.5),
		SettleDuration:      m.GetDuration("reveal.settle_duration", 300*time.Millisecond),
		Edges: reveal.EdgeConfig{
			Left:  m.edgeZone("edges.left"),
			Right: m.edgeZone("edges.right"),
		},
	}
}

func (m *Manager) edgeZone(prefix string) reveal.Zone {
	return reveal.Zone{
		Enabled:     m.GetBool(prefix+".enabled", true),
		HitWidth:    m.GetFloat(prefix+".hit_width", 20),
		TopInset:    m.GetFloat(prefix+".top_inset", 0),
		BottomInset: m.GetFloat(prefix+".bottom_inset", 0),
	}
}

// loadLayers builds defaults <- file <- env.
func loadLayers(path string) (map[string]any, error) {
	merged := Defaults()

	if path != "" {
		fileCfg, err := loader.NewTOMLLoader(path).Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, fileCfg)
	}

	envCfg, err := loader.NewEnvLoader(EnvPrefix).Load()
	if err != nil {
		return nil, err
	}
	return loader.DeepMerge(merged, envCfg), nil
}

// Change is one setting difference between two configuration maps.
type Change struct {
	Path     string
	OldValue any
	NewValue any
}

// Diff returns the leaf-level changes from before to after, sorted by
// path.
func Diff(before, after map[string]any) []Change {
	oldFlat := Flatten(before)
	newFlat := Flatten(after)

	var changes []Change
	for path, newVal := range newFlat {
		if oldVal, ok := oldFlat[path]; !ok || oldVal != newVal {
			var prev any
			if ok {
				prev = oldVal
			}
			changes = append(changes, Change{Path: path, OldValue: prev, NewValue: newVal})
		}
	}
	for path, oldVal := range oldFlat {
		if _, ok := newFlat[path]; !ok {
			changes = append(changes, Change{Path: path, OldValue: oldVal, NewValue: nil})
		}
	}

	sort.Slice(changes, func(i, j int) bool {
		return changes[i].Path < changes[j].Path
	})
	return changes
}

// Flatten converts a nested map to dot-separated leaf paths.
func Flatten(data map[string]any) map[string]any {
	flat := make(map[string]any)
	flatten("", data, flat)
	return flat
}

func flatten(prefix string, data map[string]any, flat map[string]any) {
	for key, val := range data {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if sub, ok := val.(map[string]any); ok {
			flatten(path, sub, flat)
			continue
		}
		flat[path] = val
	}
}

func getByPath(data map[string]any, path string) any {
	parts := strings.Split(path, ".")
	current := data
	for i, part := range parts {
		val, ok := current[part]
		if !ok {
			return nil
		}
		if i == len(parts)-1 {
			return val
		}
		current, ok = val.(map[string]any)
		if !ok {
			return nil
		}
	}
	return nil
}

func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data
	for i := 0; i < len(parts)-1; i++ {
		next, ok := current[parts[i]].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[parts[i]] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
