package models

import "encoding/json"

// ImageEntry maps an image identifier to its path relative to the pack root.
type ImageEntry struct {
	ID   string `json:"ID"`
	Path string `json:"Path"`
}

// ImageManifest lists the image assets of a pack. It is loaded read-only.
type ImageManifest struct {
	Notifier
	images []ImageEntry
}

// NewImageManifest returns an empty manifest.
func NewImageManifest() *ImageManifest {
	return &ImageManifest{images: []ImageEntry{}}
}

func (m *ImageManifest) Images() []ImageEntry { return cloneSlice(m.images) }

func (m *ImageManifest) SetImages(v []ImageEntry) { setSlice(&m.Notifier, &m.images, v) }

// Lookup returns the entry with the given id.
func (m *ImageManifest) Lookup(id string) (ImageEntry, bool) {
	for _, img := range m.images {
		if img.ID == id {
			return img, true
		}
	}
	return ImageEntry{}, false
}

func (m *ImageManifest) Clone() *ImageManifest {
	return &ImageManifest{images: cloneSlice(m.images)}
}

func (m *ImageManifest) MakeEqualTo(other *ImageManifest) {
	m.SetImages(other.images)
}

func (m *ImageManifest) ValueEquals(other *ImageManifest) bool {
	return equalSlices(m.images, other.images)
}

type manifestWire struct {
	Images []ImageEntry `json:"Images"`
}

func (m *ImageManifest) MarshalJSON() ([]byte, error) {
	return json.Marshal(manifestWire{Images: m.images})
}

func (m *ImageManifest) UnmarshalJSON(b []byte) error {
	var w manifestWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	if w.Images == nil {
		w.Images = []ImageEntry{}
	}
	m.SetImages(w.Images)
	return nil
}
