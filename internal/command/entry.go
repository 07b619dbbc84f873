// Package command defines the command entry model and the registry that
// maps command names to entries.
package command

// Proc is an invocable command procedure. It receives the full tokenized
// argument list, with the command name itself at index 0. The return value
// is reported to the user but never otherwise consumed.
type Proc func(args []string) error

// Entry is one dispatchable command. An Entry is immutable once
// constructed; the registry replaces whole entries rather than mutating
// them in place.
type Entry struct {
	// Name is the dispatch key. Never empty.
	Name string

	// Description is used only for help listing. May be empty, in which
	// case the entry is dispatchable but omitted from help output.
	Description string

	// Proc is invoked with the full token list.
	Proc Proc
}

// NewEntry creates a command entry.
func NewEntry(name, description string, proc Proc) *Entry {
	return &Entry{
		Name:        name,
		Description: description,
		Proc:        proc,
	}
}
