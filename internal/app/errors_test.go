package app

import (
	"errors"
	"testing"
)

func TestInitError(t *testing.T) {
	underlying := errors.New("disk on fire")
	err := &InitError{Component: "backend", Err: underlying}

	if got, want := err.Error(), "init backend: disk on fire"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, underlying) {
		t.Error("errors.Is should match the wrapped error")
	}
}

func TestComponentErrorMessage(t *testing.T) {
	underlying := errors.New("boom")

	tests := []struct {
		name string
		err  *ComponentError
		want string
	}{
		{
			name: "action and error",
			err:  NewComponentError("script", "run", underlying),
			want: "script: run: boom",
		},
		{
			name: "action without error",
			err:  &ComponentError{Component: "trace", Action: "load"},
			want: "trace: load",
		},
		{
			name: "error without action",
			err:  &ComponentError{Component: "config", Err: underlying},
			want: "config: boom",
		},
		{
			name: "component only",
			err:  &ComponentError{Component: "watcher"},
			want: "watcher",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestComponentErrorIs(t *testing.T) {
	underlying := errors.New("not found")
	err := NewComponentError("trace", "load", underlying)

	if !errors.Is(err, underlying) {
		t.Error("errors.Is should match the wrapped error")
	}
	if !errors.Is(err, err) {
		t.Error("errors.Is should match the error itself")
	}
	other := NewComponentError("trace", "load", underlying)
	if errors.Is(err, other) {
		t.Error("errors.Is should not match a distinct ComponentError instance")
	}
}

func TestComponentErrorUnwrap(t *testing.T) {
	underlying := errors.New("boom")
	err := NewComponentError("script", "run", underlying)

	if got := errors.Unwrap(err); got != underlying {
		t.Errorf("Unwrap() = %v, want %v", got, underlying)
	}
}

func TestWrapError(t *testing.T) {
	if got := WrapError(nil, "context"); got != nil {
		t.Errorf("WrapError(nil) = %v, want nil", got)
	}

	underlying := errors.New("root cause")
	wrapped := WrapError(underlying, "loading %s", "config")

	if got, want := wrapped.Error(), "loading config: root cause"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(wrapped, underlying) {
		t.Error("errors.Is should match through WrapError")
	}
}
