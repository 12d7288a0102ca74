// Package trace records pointer gestures and controller commands to
// YAML files and replays them into a surface deterministically. A trace
// captured from an interactive session reproduces the same reveal
// trajectory on every replay.
package trace

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Entry kinds. Pointer kinds mirror the pointer phases; open and close
// are controller commands.
const (
	KindDown   = "down"
	KindMove   = "move"
	KindUp     = "up"
	KindCancel = "cancel"
	KindOpen   = "open"
	KindClose  = "close"
)

// ErrEmptyTrace is returned when a trace has no entries to replay.
var ErrEmptyTrace = errors.New("trace has no entries")

// FormatError wraps a failure to decode a trace file.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("trace format error: %v", e.Err)
	}
	return fmt.Sprintf("trace format error in %s: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Entry is one recorded input. At is the time since the recording
// started, in milliseconds.
type Entry struct {
	At   int64   `yaml:"at_ms"`
	Kind string  `yaml:"kind"`
	X    float64 `yaml:"x,omitempty"`
	Y    float64 `yaml:"y,omitempty"`
	DX   float64 `yaml:"dx,omitempty"`
	DY   float64 `yaml:"dy,omitempty"`
	Side string  `yaml:"side,omitempty"`
}

// Trace is a recorded gesture session.
type Trace struct {
	ID         string    `yaml:"id"`
	RecordedAt time.Time `yaml:"recorded_at"`
	Width      float64   `yaml:"width"`
	Height     float64   `yaml:"height"`
	Entries    []Entry   `yaml:"entries"`
}

// Parse decodes a trace from YAML.
func Parse(data []byte) (*Trace, error) {
	var t Trace
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, &FormatError{Err: err}
	}
	if err := t.validate(); err != nil {
		return nil, &FormatError{Err: err}
	}
	return &t, nil
}

// Load reads and decodes a trace file.
func Load(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		var fe *FormatError
		if errors.As(err, &fe) {
			fe.Path = path
		}
		return nil, err
	}
	return t, nil
}

// Encode serializes the trace to YAML.
func (t *Trace) Encode() ([]byte, error) {
	return yaml.Marshal(t)
}

// Save writes the trace to a file.
func (t *Trace) Save(path string) error {
	data, err := t.Encode()
	if err != nil {
		return fmt.Errorf("encoding trace: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}
	return nil
}

// validate rejects entries a replay could not interpret.
func (t *Trace) validate() error {
	for i, e := range t.Entries {
		switch e.Kind {
		case KindDown, KindMove, KindUp, KindCancel, KindClose:
		case KindOpen:
			if e.Side != "left" && e.Side != "right" {
				return fmt.Errorf("entry %d: open requires side left or right, got %q", i, e.Side)
			}
		default:
			return fmt.Errorf("entry %d: unknown kind %q", i, e.Kind)
		}
		if e.At < 0 {
			return fmt.Errorf("entry %d: negative timestamp", i)
		}
	}
	return nil
}
