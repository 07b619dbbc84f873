package plugin

import (
	lua "github.com/yuin/gopher-lua"
)

// Candidate is a qualifying command export extracted from a plugin
// source's top-level bindings.
type Candidate struct {
	Name        string
	Description string
	Proc        *lua.LFunction
}

// Validate decides whether an arbitrary top-level binding qualifies as a
// command entry, without relying on a declared type.
//
// A binding qualifies iff it is a table with a non-empty string `name`
// and a `procedure` that is a Lua-defined function taking exactly one
// fixed parameter and no varargs. The arity is checked by introspecting
// the compiled function prototype, never by calling it. A `description`
// field is optional; a missing or non-string value is treated as empty.
//
// Rejection is silent: malformed candidates simply report false.
// Go-implemented functions expose no prototype and cannot be
// introspected, so they are rejected as well.
func Validate(value lua.LValue) (Candidate, bool) {
	tbl, ok := value.(*lua.LTable)
	if !ok {
		return Candidate{}, false
	}

	name, ok := tbl.RawGetString("name").(lua.LString)
	if !ok || name == "" {
		return Candidate{}, false
	}

	fn, ok := tbl.RawGetString("procedure").(*lua.LFunction)
	if !ok {
		return Candidate{}, false
	}
	if fn.IsG || fn.Proto == nil {
		return Candidate{}, false
	}
	if fn.Proto.NumParameters != 1 || fn.Proto.IsVarArg != 0 {
		return Candidate{}, false
	}

	description := ""
	if d, ok := tbl.RawGetString("description").(lua.LString); ok {
		description = string(d)
	}

	return Candidate{
		Name:        string(name),
		Description: description,
		Proc:        fn,
	}, true
}
