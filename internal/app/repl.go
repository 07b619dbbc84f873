package app

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/dshills/luashell/internal/command"
)

// Run builds the registry, installs the signal handler, and drives the
// REPL loop until the stop condition is observed. It returns nil on
// graceful shutdown (quit, signal, or end of input).
func (a *Application) Run() error {
	a.stop.Store(false)
	a.BuildRegistry()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	if a.cfg.Watch {
		watcher, err := watchSources(a.cfg.CommandDir, &a.reloadPending, a.logger.WithComponent("watch"))
		if err != nil {
			a.logger.Warn("source watcher unavailable: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	a.loop(readLines(a.in), sigCh)
	return nil
}

// readLines feeds console input over a channel so the loop can select
// between input and signal delivery instead of blocking in a read that
// signals cannot unwind. The channel closes on end of input.
func readLines(r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	return lines
}

// loop is the dispatcher loop. One blocking suspension per iteration, at
// the select; the stop flag is consulted at the top of every iteration.
func (a *Application) loop(lines <-chan string, sigCh <-chan os.Signal) {
	for !a.stop.Load() {
		if a.reloadPending.Swap(false) {
			fmt.Fprintln(a.out, "Command sources changed, reloading...")
			a.BuildRegistry()
		}

		if a.interactive {
			fmt.Fprint(a.out, a.cfg.Prompt)
		}

		select {
		case line, ok := <-lines:
			if !ok {
				// End of input.
				a.requestStop()
				continue
			}
			a.dispatch(line)

		case sig := <-sigCh:
			fmt.Fprintf(a.out, "\nReceived signal %v, shutting down...\n", sig)
			a.requestStop()
		}
	}
}

// dispatch tokenizes one input line and invokes the matching command.
// Nothing raised by plugin code propagates past this boundary.
func (a *Application) dispatch(line string) {
	args, err := Tokenize(line)
	if err != nil {
		fmt.Fprintf(a.out, "Parse error: %v\n", err)
		return
	}
	if len(args) == 0 {
		return
	}

	entry := a.registry.Get(args[0])
	if entry == nil {
		fmt.Fprintf(a.out, "Unknown command: %s. Type 'help' for available commands.\n", args[0])
		return
	}

	a.invoke(entry, args)
}

// invoke runs a command procedure with full error and panic containment.
// A failing command never terminates the shell.
func (a *Application) invoke(entry *command.Entry, args []string) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(a.out, "Command %s panicked: %v\n%s", entry.Name, r, debug.Stack())
		}
	}()

	if err := entry.Proc(args); err != nil {
		fmt.Fprintf(a.out, "Command %s failed: %v\n", entry.Name, err)
	}
}
