package script

import lua "github.com/yuin/gopher-lua"

// sandbox restricts a Lua state to pure computation. Scripts drive the
// surface through the reveal module; they get no filesystem, process,
// or module-loading access.
type sandbox struct {
	L *lua.LState
}

// install strips the escape hatches from an already-open state.
func (s *sandbox) install() {
	// Loading code from strings or disk would bypass everything else.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		s.L.SetGlobal(name, lua.LNil)
	}

	s.installSafeRequire()
}

// installSafeRequire replaces require with a whitelist-only version.
// package.path and package.cpath are cleared so nothing can be loaded
// from disk even through the original loader.
func (s *sandbox) installSafeRequire() {
	if pkg, ok := s.L.GetGlobal("package").(*lua.LTable); ok {
		s.L.SetField(pkg, "path", lua.LString(""))
		s.L.SetField(pkg, "cpath", lua.LString(""))
	}

	safeModules := map[string]bool{
		"string": true,
		"table":  true,
		"math":   true,
	}

	originalRequire := s.L.GetGlobal("require")

	s.L.SetGlobal("require", s.L.NewFunction(func(L *lua.LState) int {
		modName := L.CheckString(1)
		if !safeModules[modName] {
			L.RaiseError("module %q is not available", modName)
			return 0 // unreachable; RaiseError does not return
		}
		L.Push(originalRequire)
		L.Push(lua.LString(modName))
		L.Call(1, 1)
		return 1
	}))
}
