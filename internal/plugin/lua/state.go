// Package lua wraps gopher-lua for plugin source execution.
package lua

import (
	"errors"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// ErrStateClosed is returned when attempting to use a closed state.
var ErrStateClosed = errors.New("lua state is closed")

// State wraps a gopher-lua interpreter holding one plugin source's
// execution namespace.
//
// Plugin sources run with full process trust, so the state opens the
// complete Lua standard library set (io, os included).
//
// gopher-lua's LState is not goroutine-safe. All operations on a State
// must be called from a single goroutine; the mutex protects against
// stray concurrent access from Go code.
type State struct {
	L *lua.LState

	mu     sync.Mutex
	closed bool
}

// NewState creates a fresh Lua state with the full standard library.
func NewState() *State {
	return &State{L: lua.NewState()}
}

// DoFile executes a Lua source file.
// Execution is synchronous and any interpreter panic is recovered.
func (s *State) DoFile(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	return s.doWithRecovery(func() error {
		return s.L.DoFile(path)
	})
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

// SetGlobal sets a global variable.
func (s *State) SetGlobal(name string, value lua.LValue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.L.SetGlobal(name, value)
}

// SetString sets a global string variable.
func (s *State) SetString(name, value string) {
	s.SetGlobal(name, lua.LString(value))
}

// RegisterModule registers a module table with the given functions.
func (s *State) RegisterModule(name string, funcs map[string]lua.LGFunction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	mod := s.L.SetFuncs(s.L.NewTable(), funcs)
	s.L.SetGlobal(name, mod)
}

// ForEachGlobal visits every string-keyed top-level binding in the state.
// Visit order follows Lua table enumeration and is not stable across runs.
func (s *State) ForEachGlobal(visit func(name string, value lua.LValue)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	globals := s.L.Get(lua.GlobalsIndex).(*lua.LTable)
	globals.ForEach(func(k, v lua.LValue) {
		if name, ok := k.(lua.LString); ok {
			visit(string(name), v)
		}
	})
}

// CallProc invokes a Lua procedure with the tokenized argument list.
// The arguments are passed as a single 1-indexed table, the command name
// at index 1. Interpreter panics are recovered and returned as errors.
func (s *State) CallProc(fn *lua.LFunction, args []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	tbl := s.L.NewTable()
	for i, arg := range args {
		tbl.RawSetInt(i+1, lua.LString(arg))
	}

	return s.doWithRecovery(func() error {
		s.L.Push(fn)
		s.L.Push(tbl)
		return s.L.PCall(1, 0, nil)
	})
}

// IsClosed returns true if the state has been closed.
func (s *State) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close releases the interpreter. After Close, all other methods are
// no-ops or return ErrStateClosed.
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
