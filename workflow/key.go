package workflow

// Key represents a typed state key that associates a name with type T.
// Keys provide compile-time type safety for state access.
//
// Define keys as package-level variables for reuse:
//
//	var (
//	    KeyTitle = workflow.NewKey[string]("draft_title")
//	    KeyTags  = workflow.NewKey[[]string]("seo_tags")
//	)
type Key[T any] struct {
	name string
}

// NewKey creates a typed key with the given name.
func NewKey[T any](name string) Key[T] {
	return Key[T]{name: name}
}

// Name returns the string name of the key.
func (k Key[T]) Name() string {
	return k.name
}

// String implements fmt.Stringer for debugging.
func (k Key[T]) String() string {
	return k.name
}

// Set stores value under k in p and returns p, allocating it when nil.
func (k Key[T]) Set(p Patch, value T) Patch {
	if p == nil {
		p = Patch{}
	}
	p[k.name] = value
	return p
}

// Get retrieves a value from state using a typed key.
// Returns the zero value and false if the key is missing or the type mismatches.
func Get[T any](s *State, key Key[T]) (T, bool) {
	var zero T
	v, ok := s.Get(key.name)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// GetOr retrieves a value from state using a typed key.
// Returns defaultVal if the key is missing or the type mismatches.
//
// Example:
//
//	count := workflow.GetOr(state, KeyRewriteCount, 0)
func GetOr[T any](s *State, key Key[T], defaultVal T) T {
	v, ok := Get(s, key)
	if !ok {
		return defaultVal
	}
	return v
}

// Has returns true if the typed key exists in state.
func Has[T any](s *State, key Key[T]) bool {
	return s.Has(key.name)
}
