package plugin_test

import (
	"testing"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/luashell/internal/plugin"
)

// evalGlobal runs a chunk and returns the named global.
func evalGlobal(t *testing.T, chunk, name string) lua.LValue {
	t.Helper()
	L := lua.NewState()
	t.Cleanup(L.Close)

	if err := L.DoString(chunk); err != nil {
		t.Fatalf("chunk failed: %v", err)
	}
	return L.GetGlobal(name)
}

func TestValidateAccepts(t *testing.T) {
	value := evalGlobal(t, `
cmd = {
  name = "greet",
  description = "Say hello.",
  procedure = function(args) end,
}
`, "cmd")

	candidate, ok := plugin.Validate(value)
	if !ok {
		t.Fatal("expected candidate to qualify")
	}
	if candidate.Name != "greet" {
		t.Errorf("Name = %q, want %q", candidate.Name, "greet")
	}
	if candidate.Description != "Say hello." {
		t.Errorf("Description = %q, want %q", candidate.Description, "Say hello.")
	}
	if candidate.Proc == nil {
		t.Error("Proc is nil")
	}
}

func TestValidateMissingDescription(t *testing.T) {
	value := evalGlobal(t, `cmd = { name = "x", procedure = function(args) end }`, "cmd")

	candidate, ok := plugin.Validate(value)
	if !ok {
		t.Fatal("expected candidate to qualify")
	}
	if candidate.Description != "" {
		t.Errorf("Description = %q, want empty", candidate.Description)
	}
}

func TestValidateNonStringDescription(t *testing.T) {
	value := evalGlobal(t, `cmd = { name = "x", description = 42, procedure = function(args) end }`, "cmd")

	candidate, ok := plugin.Validate(value)
	if !ok {
		t.Fatal("expected candidate to qualify")
	}
	if candidate.Description != "" {
		t.Errorf("Description = %q, want empty", candidate.Description)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name  string
		chunk string
	}{
		{"not a table", `cmd = "just text"`},
		{"number", `cmd = 5`},
		{"function binding", `cmd = function(args) end`},
		{"missing name", `cmd = { procedure = function(args) end }`},
		{"empty name", `cmd = { name = "", procedure = function(args) end }`},
		{"non-string name", `cmd = { name = 7, procedure = function(args) end }`},
		{"missing procedure", `cmd = { name = "x" }`},
		{"non-function procedure", `cmd = { name = "x", procedure = "run" }`},
		{"zero parameters", `cmd = { name = "x", procedure = function() end }`},
		{"three parameters", `cmd = { name = "x", procedure = function(a, b, c) end }`},
		{"vararg procedure", `cmd = { name = "x", procedure = function(...) end }`},
		{"param plus vararg", `cmd = { name = "x", procedure = function(a, ...) end }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value := evalGlobal(t, tt.chunk, "cmd")
			if _, ok := plugin.Validate(value); ok {
				t.Error("expected candidate to be rejected")
			}
		})
	}
}

func TestValidateRejectsGoFunction(t *testing.T) {
	// A Go-implemented function has no prototype to introspect.
	L := lua.NewState()
	t.Cleanup(L.Close)

	tbl := L.NewTable()
	tbl.RawSetString("name", lua.LString("native"))
	tbl.RawSetString("procedure", L.NewFunction(func(L *lua.LState) int { return 0 }))

	if _, ok := plugin.Validate(tbl); ok {
		t.Error("expected Go function procedure to be rejected")
	}
}

func TestValidateNil(t *testing.T) {
	if _, ok := plugin.Validate(lua.LNil); ok {
		t.Error("expected nil to be rejected")
	}
}
