package api

import (
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"

	luastate "github.com/dshills/luashell/internal/plugin/lua"
)

// ShellModule implements the `shell` Lua module, exposing the loaded
// plugin units and small path utilities.
type ShellModule struct {
	ctx *Context

	// commandDir is substituted in displayed paths to keep listings
	// independent of where the shell is installed.
	commandDir string
}

// NewShellModule creates a shell module.
func NewShellModule(ctx *Context, commandDir string) *ShellModule {
	return &ShellModule{ctx: ctx, commandDir: commandDir}
}

// Name returns the module name.
func (m *ShellModule) Name() string {
	return "shell"
}

// Register installs the module into a plugin state.
func (m *ShellModule) Register(s *luastate.State) {
	s.RegisterModule(m.Name(), map[string]lua.LGFunction{
		"modules": m.modules,
		"match":   m.match,
	})
}

// modules() -> {{name = ..., path = ...}, ...}
// Lists the loaded plugin units in name order with display paths.
func (m *ShellModule) modules(L *lua.LState) int {
	result := L.NewTable()

	if m.ctx.Units != nil {
		for i, unit := range m.ctx.Units.Units() {
			tbl := L.NewTable()
			tbl.RawSetString("name", lua.LString(unit.Name))
			tbl.RawSetString("path", lua.LString(m.DisplayPath(unit.Path)))
			result.RawSetInt(i+1, tbl)
		}
	}

	L.Push(result)
	return 1
}

// match(pattern, name) -> bool
// Reports whether name matches the shell glob pattern.
// Raises an error for a malformed pattern.
func (m *ShellModule) match(L *lua.LState) int {
	pattern := L.CheckString(1)
	name := L.CheckString(2)

	ok, err := filepath.Match(pattern, name)
	if err != nil {
		L.RaiseError("match: bad pattern %q", pattern)
		return 0
	}

	L.Push(lua.LBool(ok))
	return 1
}

// DisplayPath rewrites a path under the command directory to use the
// ${commands} placeholder. Paths outside the directory are returned as is.
func (m *ShellModule) DisplayPath(path string) string {
	if m.commandDir == "" {
		return path
	}
	rel, err := filepath.Rel(m.commandDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.Join("${commands}", rel)
}
