// Package app wires the shell together: registry build, built-in
// commands, the REPL loop, and signal-driven shutdown.
package app

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"golang.org/x/term"

	"github.com/dshills/luashell/internal/command"
	"github.com/dshills/luashell/internal/config"
	"github.com/dshills/luashell/internal/plugin"
	"github.com/dshills/luashell/internal/plugin/api"
	luastate "github.com/dshills/luashell/internal/plugin/lua"
	"github.com/dshills/luashell/internal/store"
)

// Options configures the application.
type Options struct {
	// Config is the shell configuration.
	Config config.Config

	// Input is the console input. Defaults to os.Stdin.
	Input io.Reader

	// Output receives all command output and user-visible diagnostics.
	// Defaults to os.Stdout.
	Output io.Writer

	// LogOutput receives operational logs. Defaults to os.Stderr.
	LogOutput io.Writer
}

// Application owns the command registry, the plugin loader, the shared
// value store, and the REPL loop. All registry mutation and dispatch
// happen strictly interleaved on the loop goroutine.
type Application struct {
	cfg    config.Config
	in     io.Reader
	out    io.Writer
	logger *Logger

	registry *command.Registry
	loader   *plugin.Loader
	store    *store.Store
	shellMod *api.ShellModule
	storeMod *api.StoreModule

	// interactive is true when input is a terminal; the prompt is
	// suppressed for piped input.
	interactive bool

	// stop is the cooperative shutdown flag, polled at loop boundaries.
	stop atomic.Bool

	// reloadPending marks the registry for rebuild at the next loop
	// iteration. Set by the source watcher goroutine.
	reloadPending atomic.Bool
}

// New creates the application and wires its collaborators.
func New(opts Options) (*Application, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	a := &Application{
		cfg:      opts.Config,
		in:       opts.Input,
		out:      opts.Output,
		registry: command.NewRegistry(),
		store:    store.New(),
	}

	if a.in == nil {
		a.in = os.Stdin
	}
	if a.out == nil {
		a.out = os.Stdout
	}
	a.logger = NewLogger(ParseLogLevel(opts.Config.LogLevel), opts.LogOutput)

	if f, ok := a.in.(*os.File); ok {
		a.interactive = term.IsTerminal(int(f.Fd()))
	}

	ctx := &api.Context{Store: a.store}
	a.storeMod = api.NewStoreModule(ctx)
	a.shellMod = api.NewShellModule(ctx, a.cfg.CommandDir)

	a.loader = plugin.NewLoader(a.cfg.CommandDir,
		plugin.WithSetup(a.setupState),
		plugin.WithOutput(a.out),
	)
	ctx.Units = unitsAdapter{a.loader}

	return a, nil
}

// setupState registers the host API modules into a fresh plugin state.
func (a *Application) setupState(s *luastate.State) {
	a.storeMod.Register(s)
	a.shellMod.Register(s)
}

// Registry returns the command registry.
func (a *Application) Registry() *command.Registry {
	return a.registry
}

// Store returns the shared value store.
func (a *Application) Store() *store.Store {
	return a.store
}

// BuildRegistry clears the registry and repopulates it: plugin sources
// first, in file order with later files winning name collisions, then
// the built-in command set, which overwrites unconditionally. The build
// never fails; discovery problems reduce to diagnostics and an empty
// plugin contribution.
func (a *Application) BuildRegistry() {
	a.registry.Clear()

	fmt.Fprintf(a.out, "Loading commands from: %s\n", a.cfg.CommandDir)

	units, err := a.loader.LoadAll()
	if err != nil {
		fmt.Fprintf(a.out, "Command discovery failed: %v\n", err)
	}

	loaded := 0
	for _, unit := range units {
		for _, entry := range unit.Entries {
			prev, err := a.registry.Register(entry)
			if err != nil {
				a.logger.Warn("rejecting entry from %s: %v", unit.Name, err)
				continue
			}
			if prev != nil {
				a.logger.Warn("command %q redefined by %s (last file wins)", entry.Name, unit.Name)
			}
			loaded++
		}
	}

	a.installBuiltins()
	a.logger.Debug("registry built: %d plugin entries, %d commands total", loaded, a.registry.Count())
}

// Shutdown releases the plugin interpreter states.
func (a *Application) Shutdown() {
	a.loader.CloseAll()
}

// requestStop flips the cooperative shutdown flag. The loop observes it
// at the top of its next iteration.
func (a *Application) requestStop() {
	a.stop.Store(true)
}

// unitsAdapter adapts the plugin loader to the api.UnitProvider contract.
type unitsAdapter struct {
	loader *plugin.Loader
}

func (u unitsAdapter) Units() []api.UnitInfo {
	infos := u.loader.Units()
	result := make([]api.UnitInfo, len(infos))
	for i, info := range infos {
		result[i] = api.UnitInfo{Name: info.Name, Path: info.Path}
	}
	return result
}
