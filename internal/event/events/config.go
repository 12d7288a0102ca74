package events

import (
	"github.com/dshills/revealkit/internal/event"
	"github.com/dshills/revealkit/internal/event/topic"
)

// Configuration topics.
const (
	// TopicConfigChanged carries one changed setting path.
	TopicConfigChanged topic.Topic = "config.changed"

	// TopicConfigReloaded signals a completed file reload.
	TopicConfigReloaded topic.Topic = "config.reloaded"

	// TopicConfigError carries a failed reload.
	TopicConfigError topic.Topic = "config.error"
)

// ConfigChangedPayload describes one setting change.
type ConfigChangedPayload struct {
	Path     string
	OldValue any
	NewValue any
}

// NewConfigChanged creates a config.changed event.
func NewConfigChanged(path string, oldValue, newValue any, source string) event.Event[ConfigChangedPayload] {
	return event.New(TopicConfigChanged, ConfigChangedPayload{
		Path:     path,
		OldValue: oldValue,
		NewValue: newValue,
	}, source)
}

// ConfigReloadedPayload describes a completed reload.
type ConfigReloadedPayload struct {
	Path    string
	Changed int
}

// NewConfigReloaded creates a config.reloaded event.
func NewConfigReloaded(path string, changed int, source string) event.Event[ConfigReloadedPayload] {
	return event.New(TopicConfigReloaded, ConfigReloadedPayload{Path: path, Changed: changed}, source)
}

// ConfigErrorPayload describes a failed reload.
type ConfigErrorPayload struct {
	Path string
	Err  string
}

// NewConfigError creates a config.error event.
func NewConfigError(path string, err error, source string) event.Event[ConfigErrorPayload] {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return event.New(TopicConfigError, ConfigErrorPayload{Path: path, Err: msg}, source)
}
