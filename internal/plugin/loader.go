package plugin

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/luashell/internal/command"
	luastate "github.com/dshills/luashell/internal/plugin/lua"
)

// sourceExt is the plugin source file extension.
const sourceExt = ".lua"

// sourceGlobal is the global holding the source path inside a plugin state.
const sourceGlobal = "_SOURCE"

// Unit is one loaded plugin source: the file, its interpreter state, and
// the command entries it contributed.
type Unit struct {
	// Name is the logical unit identifier, e.g. "command.value_command".
	Name string

	// Path is the source file path.
	Path string

	// Entries are the qualifying command entries in binding enumeration
	// order. Order within a file is not stable across runs.
	Entries []*command.Entry

	state *luastate.State
}

// Close releases the unit's interpreter state. Entries bound to the unit
// become unusable.
func (u *Unit) Close() {
	if u.state != nil {
		u.state.Close()
	}
}

// UnitInfo describes a loaded unit for display.
type UnitInfo struct {
	Name string
	Path string
}

// StateSetup prepares a fresh interpreter state before a source file
// executes, typically by registering host API modules.
type StateSetup func(*luastate.State)

// Loader discovers plugin sources in a directory and executes each in a
// fresh interpreter state.
type Loader struct {
	dir    string
	prefix string
	setup  StateSetup
	out    io.Writer

	units map[string]*Unit
	order []string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithSetup sets the per-state setup hook.
func WithSetup(setup StateSetup) LoaderOption {
	return func(l *Loader) {
		l.setup = setup
	}
}

// WithPrefix sets the logical unit name prefix. Defaults to "command".
func WithPrefix(prefix string) LoaderOption {
	return func(l *Loader) {
		l.prefix = prefix
	}
}

// WithOutput sets the writer for user-visible load diagnostics.
// Defaults to os.Stdout.
func WithOutput(w io.Writer) LoaderOption {
	return func(l *Loader) {
		l.out = w
	}
}

// NewLoader creates a loader for the given command source directory.
func NewLoader(dir string, opts ...LoaderOption) *Loader {
	l := &Loader{
		dir:    dir,
		prefix: "command",
		out:    os.Stdout,
		units:  make(map[string]*Unit),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Dir returns the command source directory.
func (l *Loader) Dir() string {
	return l.dir
}

// LoadAll scans the directory flat and non-recursive for *.lua sources in
// lexical order and loads each one. A unit that was loaded under the same
// identifier before is discarded first, so edits are always picked up.
//
// Per-file failures are never fatal: a diagnostic naming the file is
// written and the scan continues. A file that executes but exports no
// qualifying entry is noted as skipped. Units whose source file has
// disappeared since the previous pass are dropped.
//
// The returned units are in file order; the caller merges their entries.
func (l *Loader) LoadAll() ([]*Unit, error) {
	dirEntries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNoCommandDir, l.dir, err)
	}

	seen := make(map[string]bool)
	var loaded []*Unit

	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() || filepath.Ext(dirEntry.Name()) != sourceExt {
			continue
		}

		path := filepath.Join(l.dir, dirEntry.Name())
		unit, err := l.loadFile(path)
		if err != nil {
			fmt.Fprintf(l.out, "Loading command %s failed: %v\n", dirEntry.Name(), err)
			continue
		}

		seen[unit.Name] = true
		loaded = append(loaded, unit)

		if len(unit.Entries) == 0 {
			fmt.Fprintf(l.out, "No valid command entry found. skip. %s\n", dirEntry.Name())
		}
	}

	l.prune(seen)
	return loaded, nil
}

// loadFile executes one source file in a fresh state and extracts its
// qualifying entries.
func (l *Loader) loadFile(path string) (*Unit, error) {
	base := strings.TrimSuffix(filepath.Base(path), sourceExt)
	name := l.prefix + "." + base

	// Discard any previously loaded unit under this identifier so the
	// file's current contents re-execute.
	l.discard(name)

	state := luastate.NewState()
	if l.setup != nil {
		l.setup(state)
	}
	state.SetString(sourceGlobal, path)

	if err := state.DoFile(path); err != nil {
		state.Close()
		return nil, err
	}

	unit := &Unit{
		Name:  name,
		Path:  path,
		state: state,
	}

	state.ForEachGlobal(func(_ string, value lua.LValue) {
		candidate, ok := Validate(value)
		if !ok {
			return
		}
		unit.Entries = append(unit.Entries, l.newEntry(unit, candidate))
	})

	l.units[name] = unit
	l.order = append(l.order, name)
	return unit, nil
}

// newEntry wraps a validated candidate as a command entry bound to the
// unit's interpreter state.
func (l *Loader) newEntry(unit *Unit, candidate Candidate) *command.Entry {
	proc := candidate.Proc
	return command.NewEntry(candidate.Name, candidate.Description, func(args []string) error {
		return unit.state.CallProc(proc, args)
	})
}

// discard closes and removes a loaded unit by identifier.
func (l *Loader) discard(name string) {
	unit, ok := l.units[name]
	if !ok {
		return
	}
	unit.Close()
	delete(l.units, name)
	for i, n := range l.order {
		if n == name {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

// prune drops units that were not seen in the latest pass.
func (l *Loader) prune(seen map[string]bool) {
	for name := range l.units {
		if !seen[name] {
			l.discard(name)
		}
	}
}

// Get returns a loaded unit by identifier.
func (l *Loader) Get(name string) (*Unit, bool) {
	unit, ok := l.units[name]
	return unit, ok
}

// Count returns the number of loaded units.
func (l *Loader) Count() int {
	return len(l.units)
}

// Units lists the loaded units sorted by identifier.
func (l *Loader) Units() []UnitInfo {
	infos := make([]UnitInfo, 0, len(l.units))
	for _, unit := range l.units {
		infos = append(infos, UnitInfo{Name: unit.Name, Path: unit.Path})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos
}

// CloseAll releases every loaded unit.
func (l *Loader) CloseAll() {
	for _, unit := range l.units {
		unit.Close()
	}
	l.units = make(map[string]*Unit)
	l.order = nil
}
