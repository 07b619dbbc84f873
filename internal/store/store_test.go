package store_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/luashell/internal/store"
)

func TestStoreSetAndGet(t *testing.T) {
	tests := []struct {
		name string
		key  string
		raw  string
	}{
		{"integer", "count", "5"},
		{"float", "ratio", "1.25"},
		{"string", "label", `"hello world"`},
		{"negative", "delta", "-3"},
		{"dotted key", "a.b", "7"},
		{"glob chars in key", "a*b?c", `"x"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := store.New()
			if err := s.Set(tt.key, tt.raw); err != nil {
				t.Fatalf("Set(%q, %q) failed: %v", tt.key, tt.raw, err)
			}

			got, err := s.Get(tt.key)
			if err != nil {
				t.Fatalf("Get(%q) failed: %v", tt.key, err)
			}
			if got != tt.raw {
				t.Errorf("Get(%q) = %q, want %q", tt.key, got, tt.raw)
			}
		})
	}
}

func TestStoreRejectsNonScalars(t *testing.T) {
	s := store.New()

	for _, raw := range []string{"true", "null", "[1,2]", `{"a":1}`, "not json"} {
		if err := s.Set("k", raw); !errors.Is(err, store.ErrInvalidValue) {
			t.Errorf("Set(%q) error = %v, want ErrInvalidValue", raw, err)
		}
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestStoreMissingKey(t *testing.T) {
	s := store.New()

	if _, err := s.Get("missing_key"); !errors.Is(err, store.ErrKeyNotFound) {
		t.Errorf("Get(missing_key) error = %v, want ErrKeyNotFound", err)
	}
}

func TestStoreEmptyKey(t *testing.T) {
	s := store.New()

	if err := s.Set("", "1"); !errors.Is(err, store.ErrEmptyKey) {
		t.Errorf("Set with empty key error = %v, want ErrEmptyKey", err)
	}
	if _, err := s.Get(""); !errors.Is(err, store.ErrEmptyKey) {
		t.Errorf("Get with empty key error = %v, want ErrEmptyKey", err)
	}
}

func TestStoreOverwrite(t *testing.T) {
	s := store.New()

	if err := s.Set("k", "1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set("k", `"two"`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := s.Get("k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != `"two"` {
		t.Errorf("Get(k) = %q, want %q", got, `"two"`)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestStoreAllSorted(t *testing.T) {
	s := store.New()

	if err := s.Set("zeta", "3"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set("alpha", "1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set("mid", `"m"`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	want := []store.KV{
		{Key: "alpha", Raw: "1"},
		{Key: "mid", Raw: `"m"`},
		{Key: "zeta", Raw: "3"},
	}
	if diff := cmp.Diff(want, s.All()); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}
}
