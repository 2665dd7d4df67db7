package workflow

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// Patch is a partial update to State. Keys present in the patch overwrite
// the corresponding state keys; absent keys are left untouched.
type Patch map[string]any

// State holds the record threaded through every stage of a run.
// It is safe for concurrent reads while a run merges patches, but a State
// belongs to exactly one run.
type State struct {
	mu     sync.RWMutex
	data   map[string]any
	sealed map[string]struct{}
}

// NewState creates a state holding a copy of initial.
func NewState(initial map[string]any) *State {
	s := &State{
		data:   make(map[string]any, len(initial)),
		sealed: make(map[string]struct{}),
	}
	for k, v := range initial {
		s.data[k] = v
	}
	return s
}

// Merge applies p. It is all-or-nothing: if any key in p would change a
// sealed value, nothing is written and ErrSealedKey is returned.
func (s *State) Merge(p Patch) error {
	if len(p) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range p {
		if _, ok := s.sealed[k]; !ok {
			continue
		}
		if cur, exists := s.data[k]; exists && !reflect.DeepEqual(cur, v) {
			return fmt.Errorf("%w: %q", ErrSealedKey, k)
		}
	}
	for k, v := range p {
		s.data[k] = v
	}
	return nil
}

// Seal marks key immutable. Later merges may repeat the current value but
// not change it.
func (s *State) Seal(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sealed[key] = struct{}{}
}

// Sealed reports whether key has been sealed.
func (s *State) Sealed(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sealed[key]
	return ok
}

// Get retrieves a value from state.
func (s *State) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok
}

// GetOr returns the value for key, or def when the key is absent.
func (s *State) GetOr(key string, def any) any {
	if v, ok := s.Get(key); ok {
		return v
	}
	return def
}

// GetString retrieves a string value. Returns empty string if not found or not a string.
func (s *State) GetString(key string) string {
	v, _ := s.Get(key)
	str, _ := v.(string)
	return str
}

// GetInt retrieves an int value. Returns 0 if not found or not a number.
// Whole float64 values are accepted since decoded JSON carries numbers that way.
func (s *State) GetInt(key string) int {
	v, _ := s.Get(key)
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

// GetBool retrieves a bool value. Returns false if not found or not a bool.
func (s *State) GetBool(key string) bool {
	v, _ := s.Get(key)
	b, _ := v.(bool)
	return b
}

// GetStrings retrieves a string slice. A []any holding only strings is
// converted; anything else yields nil. The returned slice is a copy.
func (s *State) GetStrings(key string) []string {
	v, _ := s.Get(key)
	switch list := v.(type) {
	case []string:
		return append([]string(nil), list...)
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			str, ok := item.(string)
			if !ok {
				return nil
			}
			out = append(out, str)
		}
		return out
	}
	return nil
}

// Has returns true if the key exists in state.
func (s *State) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.data[key]
	return ok
}

// Keys returns all state keys in sorted order.
func (s *State) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of keys in state.
func (s *State) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Snapshot returns a shallow copy of the underlying map.
func (s *State) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out
}

// Clone creates a shallow copy of the state, seals included.
func (s *State) Clone() *State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clone := NewState(s.data)
	for k := range s.sealed {
		clone.sealed[k] = struct{}{}
	}
	return clone
}
