package command_test

import (
	"errors"
	"testing"

	"github.com/dshills/luashell/internal/command"
)

func noop(args []string) error { return nil }

func TestRegistryRegisterAndGet(t *testing.T) {
	registry := command.NewRegistry()

	prev, err := registry.Register(command.NewEntry("greet", "say hello", noop))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if prev != nil {
		t.Errorf("expected nil previous entry, got %q", prev.Name)
	}

	got := registry.Get("greet")
	if got == nil {
		t.Fatal("expected non-nil entry")
	}
	if got.Description != "say hello" {
		t.Errorf("description = %q, want %q", got.Description, "say hello")
	}
}

func TestRegistryGetMissing(t *testing.T) {
	registry := command.NewRegistry()

	if got := registry.Get("missing"); got != nil {
		t.Errorf("expected nil for missing command, got %q", got.Name)
	}
}

func TestRegistryRegisterInvalid(t *testing.T) {
	registry := command.NewRegistry()

	tests := []struct {
		name    string
		entry   *command.Entry
		wantErr error
	}{
		{"nil entry", nil, command.ErrNilEntry},
		{"empty name", command.NewEntry("", "d", noop), command.ErrEmptyName},
		{"nil proc", command.NewEntry("x", "d", nil), command.ErrNilProc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := registry.Register(tt.entry); !errors.Is(err, tt.wantErr) {
				t.Errorf("Register() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if registry.Count() != 0 {
		t.Errorf("registry should be empty, has %d entries", registry.Count())
	}
}

func TestRegistryReplaceReturnsPrevious(t *testing.T) {
	registry := command.NewRegistry()

	first := command.NewEntry("dup", "first", noop)
	second := command.NewEntry("dup", "second", noop)

	if _, err := registry.Register(first); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	prev, err := registry.Register(second)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if prev != first {
		t.Error("expected replaced entry to be returned")
	}

	if got := registry.Get("dup"); got.Description != "second" {
		t.Errorf("description = %q, want %q", got.Description, "second")
	}
	if registry.Count() != 1 {
		t.Errorf("count = %d, want 1", registry.Count())
	}
}

func TestRegistryListSorted(t *testing.T) {
	registry := command.NewRegistry()

	for _, name := range []string{"zeta", "alpha", "mid"} {
		if _, err := registry.Register(command.NewEntry(name, "", noop)); err != nil {
			t.Fatalf("Register(%q) failed: %v", name, err)
		}
	}

	want := []string{"alpha", "mid", "zeta"}
	entries := registry.List()
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, e := range entries {
		if e.Name != want[i] {
			t.Errorf("entries[%d].Name = %q, want %q", i, e.Name, want[i])
		}
	}
}

func TestRegistryClear(t *testing.T) {
	registry := command.NewRegistry()

	if _, err := registry.Register(command.NewEntry("gone", "", noop)); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	registry.Clear()

	if registry.Has("gone") {
		t.Error("expected Has to return false after Clear")
	}
	if registry.Count() != 0 {
		t.Errorf("count = %d, want 0", registry.Count())
	}
}
