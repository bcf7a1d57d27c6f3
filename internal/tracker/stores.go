package tracker

import (
	"fmt"
	"sort"
)

// Store is one named entry of the snapshot mapping. Names are printable;
// the help section's key is reserved.
type Store struct {
	Name  string
	Value any
}

// Stores is the ordered snapshot mapping rendered by the tracker. A nil
// Stores is an empty mapping.
type Stores []Store

// Snapshotter is implemented by values that guard their state and need to
// hand the tracker a consistent copy. Snapshot is called on every render.
type Snapshotter interface {
	Snapshot() any
}

// StoresMsg replaces the tracker's mapping from inside the Update loop.
type StoresMsg struct {
	Stores Stores
}

// Add returns s with name set to value. An existing entry keeps its
// position and has its value replaced.
func (s Stores) Add(name string, value any) Stores {
	for i := range s {
		if s[i].Name == name {
			out := make(Stores, len(s))
			copy(out, s)
			out[i].Value = value
			return out
		}
	}
	return append(s, Store{Name: name, Value: value})
}

// FromMap builds a mapping sorted by name.
func FromMap(m map[string]any) Stores {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(Stores, 0, len(names))
	for _, name := range names {
		out = append(out, Store{Name: name, Value: m[name]})
	}
	return out
}

// Names returns the store names in order.
func (s Stores) Names() []string {
	names := make([]string, 0, len(s))
	for _, st := range s {
		names = append(names, st.Name)
	}
	return names
}

// Lookup returns the value stored under name.
func (s Stores) Lookup(name string) (any, bool) {
	for _, st := range s {
		if st.Name == name {
			return st.Value, true
		}
	}
	return nil, false
}

// resolve returns the value to serialize for v, asking Snapshotters for a
// copy. A panicking Snapshot is reported as an error.
func resolve(v any) (out any, err error) {
	s, ok := v.(Snapshotter)
	if !ok {
		return v, nil
	}

	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("snapshot panicked: %v", r)
		}
	}()
	return s.Snapshot(), nil
}
