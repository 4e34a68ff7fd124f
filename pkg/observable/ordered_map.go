package observable

// ChangeKind describes what happened to an OrderedMap entry.
type ChangeKind int

const (
	Added ChangeKind = iota
	Updated
	Removed
	Cleared
)

func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Updated:
		return "updated"
	case Removed:
		return "removed"
	case Cleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Change is a single delta broadcast by an OrderedMap. For Cleared the key
// and value are zero.
type Change[K comparable, V any] struct {
	Kind  ChangeKind
	Key   K
	Value V
}

// OrderedMap is a keyed collection that remembers insertion order and
// broadcasts a Change after each mutation. Subscribers observe the state
// after the mutation has been applied.
type OrderedMap[K comparable, V any] struct {
	keys    []K
	values  map[K]V
	changes Emitter[Change[K, V]]
}

// NewOrderedMap creates an empty map.
func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{values: make(map[K]V)}
}

// Set adds key at the end of the order, or replaces the value of an existing
// key in place.
func (m *OrderedMap[K, V]) Set(key K, value V) {
	kind := Updated
	if _, ok := m.values[key]; !ok {
		kind = Added
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
	m.changes.Emit(Change[K, V]{Kind: kind, Key: key, Value: value})
}

// Get returns the value stored for key.
func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Contains reports whether key is present.
func (m *OrderedMap[K, V]) Contains(key K) bool {
	_, ok := m.values[key]
	return ok
}

// Remove deletes key and reports whether it was present.
func (m *OrderedMap[K, V]) Remove(key K) bool {
	v, ok := m.values[key]
	if !ok {
		return false
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i:i], m.keys[i+1:]...)
			break
		}
	}
	m.changes.Emit(Change[K, V]{Kind: Removed, Key: key, Value: v})
	return true
}

// Clear removes every entry and emits a single Cleared change.
func (m *OrderedMap[K, V]) Clear() {
	m.keys = nil
	m.values = make(map[K]V)
	m.changes.Emit(Change[K, V]{Kind: Cleared})
}

// Move relocates key to index i in the order. Out of range indexes are clamped.
func (m *OrderedMap[K, V]) Move(key K, i int) bool {
	from := m.IndexOf(key)
	if from < 0 {
		return false
	}
	m.keys = append(m.keys[:from:from], m.keys[from+1:]...)
	if i < 0 {
		i = 0
	}
	if i > len(m.keys) {
		i = len(m.keys)
	}
	m.keys = append(m.keys[:i], append([]K{key}, m.keys[i:]...)...)
	m.changes.Emit(Change[K, V]{Kind: Updated, Key: key, Value: m.values[key]})
	return true
}

// IndexOf returns the position of key in the order, or -1.
func (m *OrderedMap[K, V]) IndexOf(key K) int {
	for i, k := range m.keys {
		if k == key {
			return i
		}
	}
	return -1
}

// Keys returns a copy of the keys in order.
func (m *OrderedMap[K, V]) Keys() []K {
	out := make([]K, len(m.keys))
	copy(out, m.keys)
	return out
}

// Values returns the values in key order.
func (m *OrderedMap[K, V]) Values() []V {
	out := make([]V, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, m.values[k])
	}
	return out
}

// Len returns the number of entries.
func (m *OrderedMap[K, V]) Len() int {
	return len(m.keys)
}

// Changes exposes the change stream.
func (m *OrderedMap[K, V]) Changes() Source[Change[K, V]] {
	return &m.changes
}
