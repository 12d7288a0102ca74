// Package script embeds a sandboxed Lua interpreter that drives a
// reveal surface: synthetic pointer sequences, programmatic commands,
// frame ticks, and state queries. It backs the demo binary's -script
// flag and deterministic scenario tests.
package script

import (
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// State wraps gopher-lua with selective library loading and a sandbox.
//
// gopher-lua's LState is not goroutine-safe. The mutex protects against
// concurrent access from Go code; Lua execution itself is
// single-threaded.
type State struct {
	L      *lua.LState
	mu     sync.Mutex
	closed bool
}

// NewState creates a sandboxed Lua state with only the safe standard
// libraries open.
func NewState() *State {
	L := lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})

	// The package library must open first so require and package.loaded
	// exist for the others to register into. base gives print, pairs,
	// pcall, and friends. io, os, and debug stay out.
	lua.OpenPackage(L)
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	sb := &sandbox{L: L}
	sb.install()

	return &State{L: L}
}

// DoFile executes a Lua file synchronously.
func (s *State) DoFile(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrEngineClosed
	}
	if err := s.doWithRecovery(func() error { return s.L.DoFile(path) }); err != nil {
		return &ScriptError{Path: path, Err: err}
	}
	return nil
}

// DoString executes Lua source synchronously.
func (s *State) DoString(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrEngineClosed
	}
	if err := s.doWithRecovery(func() error { return s.L.DoString(code) }); err != nil {
		return &ScriptError{Err: err}
	}
	return nil
}

// Call invokes a global Lua function with the given arguments and
// returns its results. A missing global is an error.
func (s *State) Call(fn string, args ...lua.LValue) ([]lua.LValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrEngineClosed
	}

	fnVal := s.L.GetGlobal(fn)
	if fnVal == lua.LNil {
		return nil, fmt.Errorf("function %q not found", fn)
	}
	if fnVal.Type() != lua.LTFunction {
		return nil, fmt.Errorf("%q is not a function (got %s)", fn, fnVal.Type())
	}

	stackTop := s.L.GetTop()
	s.L.Push(fnVal)
	for _, arg := range args {
		s.L.Push(arg)
	}

	var callErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				callErr = fmt.Errorf("lua panic: %v", r)
			}
		}()
		callErr = s.L.PCall(len(args), lua.MultRet, nil)
	}()
	if callErr != nil {
		return nil, callErr
	}

	nRet := s.L.GetTop() - stackTop
	if nRet <= 0 {
		return []lua.LValue{}, nil
	}
	results := make([]lua.LValue, nRet)
	for i := 0; i < nRet; i++ {
		results[i] = s.L.Get(stackTop + i + 1)
	}
	s.L.Pop(nRet)
	return results, nil
}

// GetGlobal returns a global variable value.
func (s *State) GetGlobal(name string) lua.LValue {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return lua.LNil
	}
	return s.L.GetGlobal(name)
}

// SetGlobal sets a global variable.
func (s *State) SetGlobal(name string, value lua.LValue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.L.SetGlobal(name, value)
}

// RegisterModule installs a table of Go functions as a global module.
func (s *State) RegisterModule(name string, funcs map[string]lua.LGFunction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	mod := s.L.SetFuncs(s.L.NewTable(), funcs)
	s.L.SetGlobal(name, mod)
}

// IsClosed returns true if the state has been closed.
func (s *State) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close releases the Lua state. Further calls return ErrEngineClosed.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.L.Close()
	s.closed = true
	return nil
}

// doWithRecovery executes a function with panic recovery.
func (s *State) doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}
