package models

import (
	"github.com/pluqqy/packsmith/pkg/observable"
)

// Data is the contract every document payload satisfies. T is the payload's
// own (pointer) type.
//
// Changes fires once per effective mutation of the value or of any child
// value it owns. MakeEqualTo copies other's values into the receiver and only
// fires for the fields that actually differ.
type Data[T any] interface {
	Clone() T
	MakeEqualTo(other T)
	ValueEquals(other T) bool
	Changes() observable.Source[observable.Signal]
}

// Titled is implemented by payloads that carry a display prefix for their
// document titles. The prefix is a property of the type, not of the value.
type Titled interface {
	TitlePrefix() string
}

// TitlePrefixOf returns v's title prefix, or "" when v is not Titled.
func TitlePrefixOf(v any) string {
	if t, ok := v.(Titled); ok {
		return t.TitlePrefix()
	}
	return ""
}

// NamedData is the on-disk record of keyed documents.
type NamedData[T any] struct {
	Name string `json:"Name"`
	Data T      `json:"Data"`
}

// Notifier is embedded by payload types to provide their change stream.
type Notifier struct {
	changes observable.Emitter[observable.Signal]
}

// Changes exposes the change stream.
func (n *Notifier) Changes() observable.Source[observable.Signal] {
	return &n.changes
}

// Notify fires a change.
func (n *Notifier) Notify() {
	n.changes.Emit(observable.Signal{})
}

// setField assigns v to *field and notifies when the value changed.
func setField[V comparable](n *Notifier, field *V, v V) {
	if *field == v {
		return
	}
	*field = v
	n.Notify()
}

// setSlice is setField for slices. The stored slice is a copy of v and never nil.
func setSlice[V comparable](n *Notifier, field *[]V, v []V) {
	if equalSlices(*field, v) {
		return
	}
	*field = cloneSlice(v)
	n.Notify()
}

func equalSlices[V comparable](a, b []V) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func cloneSlice[V any](v []V) []V {
	out := make([]V, len(v))
	copy(out, v)
	return out
}
