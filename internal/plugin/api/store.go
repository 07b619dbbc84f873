package api

import (
	lua "github.com/yuin/gopher-lua"

	luastate "github.com/dshills/luashell/internal/plugin/lua"
)

// StoreModule implements the `store` Lua module backed by the shared
// value store.
type StoreModule struct {
	ctx *Context
}

// NewStoreModule creates a store module.
func NewStoreModule(ctx *Context) *StoreModule {
	return &StoreModule{ctx: ctx}
}

// Name returns the module name.
func (m *StoreModule) Name() string {
	return "store"
}

// Register installs the module into a plugin state.
func (m *StoreModule) Register(s *luastate.State) {
	s.RegisterModule(m.Name(), map[string]lua.LGFunction{
		"get": m.get,
		"set": m.set,
		"all": m.all,
	})
}

// get(key) -> raw
// Returns the raw JSON encoding of the value for key.
// Raises an error when the key has no value.
func (m *StoreModule) get(L *lua.LState) int {
	key := L.CheckString(1)

	if m.ctx.Store == nil {
		L.RaiseError("get: no store available")
		return 0
	}

	raw, err := m.ctx.Store.Get(key)
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}

	L.Push(lua.LString(raw))
	return 1
}

// set(key, raw) -> nil
// Stores a raw JSON number or string value under key.
// Raises an error when the value is not a JSON number or string.
func (m *StoreModule) set(L *lua.LState) int {
	key := L.CheckString(1)
	raw := L.CheckString(2)

	if m.ctx.Store == nil {
		L.RaiseError("set: no store available")
		return 0
	}

	if err := m.ctx.Store.Set(key, raw); err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	return 0
}

// all() -> {key = raw, ...}
// Returns every stored pair as a table of raw JSON encodings.
func (m *StoreModule) all(L *lua.LState) int {
	result := L.NewTable()

	if m.ctx.Store != nil {
		for _, kv := range m.ctx.Store.All() {
			result.RawSetString(kv.Key, lua.LString(kv.Raw))
		}
	}

	L.Push(result)
	return 1
}
