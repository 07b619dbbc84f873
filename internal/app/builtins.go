package app

import (
	"fmt"

	"github.com/dshills/luashell/internal/command"
)

// installBuiltins registers the built-in command set. Built-ins are
// installed after plugin discovery and overwrite any plugin entry
// sharing their name.
func (a *Application) installBuiltins() {
	builtins := []*command.Entry{
		command.NewEntry("help", "Show help message", a.procHelp),
		command.NewEntry("quit", "Quit the application", a.procQuit),
		command.NewEntry("q", "Quit the application", a.procQuit),
		command.NewEntry("reload", "Reload commands.", a.procReload),
	}

	for _, entry := range builtins {
		prev, err := a.registry.Register(entry)
		if err != nil {
			a.logger.Error("installing built-in %q: %v", entry.Name, err)
			continue
		}
		if prev != nil {
			a.logger.Warn("built-in %q shadows a plugin command of the same name", entry.Name)
		}
	}
}

// procHelp lists every registry entry sorted by name as "name:
// description". Entries with an empty description stay dispatchable but
// are omitted from the listing.
func (a *Application) procHelp(args []string) error {
	for _, entry := range a.registry.List() {
		if entry.Description == "" {
			continue
		}
		fmt.Fprintf(a.out, "%s: %s\n", entry.Name, entry.Description)
	}
	return nil
}

// procQuit sets the stop condition. It takes effect at the next loop
// iteration boundary; the current invocation returns normally first.
func (a *Application) procQuit(args []string) error {
	a.requestStop()
	return nil
}

// procReload re-runs the full registry build synchronously.
func (a *Application) procReload(args []string) error {
	a.BuildRegistry()
	return nil
}
