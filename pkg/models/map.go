package models

import "encoding/json"

// Map is the payload of map documents.
type Map struct {
	Notifier
	width  int
	height int
	layers []string
}

// NewMap returns a map with default values.
func NewMap() *Map {
	return &Map{width: 32, height: 32, layers: []string{"ground"}}
}

// TitlePrefix implements Titled.
func (m *Map) TitlePrefix() string { return "Map - " }

func (m *Map) Width() int       { return m.width }
func (m *Map) Height() int      { return m.height }
func (m *Map) Layers() []string { return cloneSlice(m.layers) }

func (m *Map) SetWidth(v int)       { setField(&m.Notifier, &m.width, v) }
func (m *Map) SetHeight(v int)      { setField(&m.Notifier, &m.height, v) }
func (m *Map) SetLayers(v []string) { setSlice(&m.Notifier, &m.layers, v) }

func (m *Map) Clone() *Map {
	return &Map{width: m.width, height: m.height, layers: cloneSlice(m.layers)}
}

func (m *Map) MakeEqualTo(other *Map) {
	m.SetWidth(other.width)
	m.SetHeight(other.height)
	m.SetLayers(other.layers)
}

func (m *Map) ValueEquals(other *Map) bool {
	return m.width == other.width && m.height == other.height && equalSlices(m.layers, other.layers)
}

type mapWire struct {
	Width  int      `json:"Width"`
	Height int      `json:"Height"`
	Layers []string `json:"Layers"`
}

func (m *Map) MarshalJSON() ([]byte, error) {
	return json.Marshal(mapWire{Width: m.width, Height: m.height, Layers: m.layers})
}

func (m *Map) UnmarshalJSON(b []byte) error {
	w := mapWire{Width: m.width, Height: m.height, Layers: m.layers}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	if w.Layers == nil {
		w.Layers = []string{}
	}
	m.SetWidth(w.Width)
	m.SetHeight(w.Height)
	m.SetLayers(w.Layers)
	return nil
}
