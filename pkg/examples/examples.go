// Package examples holds starter content that can be installed into a new
// pack.
package examples

import (
	"sort"
	"strings"
)

// ExampleSet represents a collection of related examples
type ExampleSet struct {
	Name        string
	Description string
	Entities    []ExampleEntity
	Maps        []ExampleMap
}

// ExampleEntity is the template of one entity document
type ExampleEntity struct {
	Name        string
	Description string
	Tags        []string
	Health      int
	Speed       int
}

// ExampleMap is the template of one map document
type ExampleMap struct {
	Name   string
	Width  int
	Height int
	Layers []string
}

var sets = map[string]func() ExampleSet{
	"dungeon": getDungeonExamples,
	"village": getVillageExamples,
}

// Get returns the example set with the given name
func Get(name string) (ExampleSet, bool) {
	get, ok := sets[strings.ToLower(name)]
	if !ok {
		return ExampleSet{}, false
	}
	return get(), true
}

// Names lists the available example sets
func Names() []string {
	names := make([]string, 0, len(sets))
	for name := range sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
