// Package plugin provides command discovery for the shell.
//
// The shell's command set is assembled by scanning a directory for Lua
// source files. Each file is executed in its own fresh interpreter state
// and its top-level bindings are inspected: any table shaped like
//
//	my_command = {
//	    name = "greet",
//	    description = "Say hello.",
//	    procedure = function(args)
//	        print("hello " .. (args[2] or "world"))
//	    end,
//	}
//
// becomes a dispatchable command. The contract is structural: there is no
// declared type, only the shape. `name` must be a non-empty string and
// `procedure` a function of exactly one parameter (the full token list,
// command name at index 1). Bindings that do not match are ignored
// without error.
//
// Loading is partial-failure tolerant. A file that fails to parse or
// execute contributes nothing and the scan continues; a file that yields
// no qualifying entry is noted as skipped. Reloading discards the prior
// interpreter state for a file before re-executing it, so edits to a
// source are always picked up.
//
// Plugin sources run with full process trust; the interpreter opens the
// complete Lua standard library set. Host collaborators (the shared
// value store, the loaded-unit listing) are bridged into every state by
// the api subpackage.
package plugin
