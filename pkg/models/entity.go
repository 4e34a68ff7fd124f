package models

import (
	"encoding/json"

	"github.com/pluqqy/packsmith/pkg/observable"
)

// Stats holds the numeric attributes of an Entity. It is owned by its entity,
// which re-emits its changes.
type Stats struct {
	Notifier
	health int
	speed  int
}

// NewStats returns stats with default values.
func NewStats() *Stats {
	return &Stats{health: 100, speed: 1}
}

func (s *Stats) Health() int { return s.health }
func (s *Stats) Speed() int  { return s.speed }

func (s *Stats) SetHealth(v int) { setField(&s.Notifier, &s.health, v) }
func (s *Stats) SetSpeed(v int)  { setField(&s.Notifier, &s.speed, v) }

func (s *Stats) Clone() *Stats {
	return &Stats{health: s.health, speed: s.speed}
}

func (s *Stats) MakeEqualTo(other *Stats) {
	s.SetHealth(other.health)
	s.SetSpeed(other.speed)
}

func (s *Stats) ValueEquals(other *Stats) bool {
	return s.health == other.health && s.speed == other.speed
}

type statsWire struct {
	Health int `json:"Health"`
	Speed  int `json:"Speed"`
}

func (s *Stats) MarshalJSON() ([]byte, error) {
	return json.Marshal(statsWire{Health: s.health, Speed: s.speed})
}

func (s *Stats) UnmarshalJSON(b []byte) error {
	w := statsWire{Health: s.health, Speed: s.speed}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	s.SetHealth(w.Health)
	s.SetSpeed(w.Speed)
	return nil
}

// Entity is the payload of entity documents.
type Entity struct {
	Notifier
	description string
	tags        []string
	stats       *Stats
}

// NewEntity returns an entity with default values.
func NewEntity() *Entity {
	e := &Entity{tags: []string{}, stats: NewStats()}
	observable.Relay(e.stats.Changes(), &e.changes)
	return e
}

// TitlePrefix implements Titled.
func (e *Entity) TitlePrefix() string { return "Entity - " }

func (e *Entity) Description() string { return e.description }
func (e *Entity) Tags() []string      { return cloneSlice(e.tags) }

// Stats returns the entity's child stats value. Mutations to it are reported
// on the entity's change stream.
func (e *Entity) Stats() *Stats { return e.stats }

func (e *Entity) SetDescription(v string) { setField(&e.Notifier, &e.description, v) }
func (e *Entity) SetTags(v []string)      { setSlice(&e.Notifier, &e.tags, v) }

func (e *Entity) Clone() *Entity {
	c := NewEntity()
	c.description = e.description
	c.tags = cloneSlice(e.tags)
	c.stats.health = e.stats.health
	c.stats.speed = e.stats.speed
	return c
}

func (e *Entity) MakeEqualTo(other *Entity) {
	e.SetDescription(other.description)
	e.SetTags(other.tags)
	e.stats.MakeEqualTo(other.stats)
}

func (e *Entity) ValueEquals(other *Entity) bool {
	return e.description == other.description &&
		equalSlices(e.tags, other.tags) &&
		e.stats.ValueEquals(other.stats)
}

type entityWire struct {
	Description string   `json:"Description"`
	Tags        []string `json:"Tags"`
	Stats       *Stats   `json:"Stats"`
}

func (e *Entity) MarshalJSON() ([]byte, error) {
	return json.Marshal(entityWire{Description: e.description, Tags: e.tags, Stats: e.stats})
}

func (e *Entity) UnmarshalJSON(b []byte) error {
	w := entityWire{Description: e.description, Tags: e.tags, Stats: e.stats.Clone()}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	if w.Tags == nil {
		w.Tags = []string{}
	}
	if w.Stats == nil {
		w.Stats = NewStats()
	}
	e.SetDescription(w.Description)
	e.SetTags(w.Tags)
	e.stats.MakeEqualTo(w.Stats)
	return nil
}
