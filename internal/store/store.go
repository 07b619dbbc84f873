// Package store provides the process-wide shared value store that command
// procedures may read and write.
//
// Values are held as a single JSON object document manipulated with gjson
// and sjson. Only number and string values are accepted; callers exchange
// values in their raw JSON encoding.
package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Store errors.
var (
	// ErrKeyNotFound is returned when a key has no value.
	ErrKeyNotFound = errors.New("key not found")

	// ErrEmptyKey is returned when an empty key is used.
	ErrEmptyKey = errors.New("key is empty")

	// ErrInvalidValue is returned when a value is not valid JSON or not a
	// number or string.
	ErrInvalidValue = errors.New("value must be a JSON number or string")
)

// Store is a mapping from text keys to number or string values.
type Store struct {
	mu  sync.RWMutex
	doc string
}

// New creates an empty store.
func New() *Store {
	return &Store{doc: "{}"}
}

// Set stores the raw JSON encoding of a value under key.
// The value must parse as a JSON number or string.
func (s *Store) Set(key, raw string) error {
	if key == "" {
		return ErrEmptyKey
	}

	if !gjson.Valid(raw) {
		return fmt.Errorf("%w: %q", ErrInvalidValue, raw)
	}
	parsed := gjson.Parse(raw)
	switch parsed.Type {
	case gjson.Number, gjson.String:
		// Accepted
	default:
		return fmt.Errorf("%w: %q", ErrInvalidValue, raw)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := sjson.SetRaw(s.doc, escapeKey(key), parsed.Raw)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	s.doc = doc
	return nil
}

// Get returns the raw JSON encoding of the value for key.
func (s *Store) Get(key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	res := gjson.Get(s.doc, escapeKey(key))
	if !res.Exists() {
		return "", fmt.Errorf("%q: %w", key, ErrKeyNotFound)
	}
	return res.Raw, nil
}

// KV is one key/value pair, the value in its raw JSON encoding.
type KV struct {
	Key string
	Raw string
}

// All returns every pair sorted by key.
func (s *Store) All() []KV {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var pairs []KV
	gjson.Parse(s.doc).ForEach(func(key, value gjson.Result) bool {
		pairs = append(pairs, KV{Key: key.String(), Raw: value.Raw})
		return true
	})

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].Key < pairs[j].Key
	})
	return pairs
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	gjson.Parse(s.doc).ForEach(func(_, _ gjson.Result) bool {
		n++
		return true
	})
	return n
}

// escapeKey escapes gjson path syntax so keys are treated literally.
func escapeKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '\\', '.', '*', '?', '|', '#', '@':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
