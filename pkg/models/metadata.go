package models

import "encoding/json"

// PackMetadata is the single-instance document stored at the pack root.
type PackMetadata struct {
	Notifier
	title       string
	author      string
	version     string
	description string
}

// NewPackMetadata returns metadata with default values.
func NewPackMetadata() *PackMetadata {
	return &PackMetadata{version: "1.0.0"}
}

// TitlePrefix implements Titled.
func (p *PackMetadata) TitlePrefix() string { return "Pack Metadata" }

func (p *PackMetadata) Title() string       { return p.title }
func (p *PackMetadata) Author() string      { return p.author }
func (p *PackMetadata) Version() string     { return p.version }
func (p *PackMetadata) Description() string { return p.description }

func (p *PackMetadata) SetTitle(v string)       { setField(&p.Notifier, &p.title, v) }
func (p *PackMetadata) SetAuthor(v string)      { setField(&p.Notifier, &p.author, v) }
func (p *PackMetadata) SetVersion(v string)     { setField(&p.Notifier, &p.version, v) }
func (p *PackMetadata) SetDescription(v string) { setField(&p.Notifier, &p.description, v) }

func (p *PackMetadata) Clone() *PackMetadata {
	return &PackMetadata{title: p.title, author: p.author, version: p.version, description: p.description}
}

func (p *PackMetadata) MakeEqualTo(other *PackMetadata) {
	p.SetTitle(other.title)
	p.SetAuthor(other.author)
	p.SetVersion(other.version)
	p.SetDescription(other.description)
}

func (p *PackMetadata) ValueEquals(other *PackMetadata) bool {
	return p.title == other.title && p.author == other.author &&
		p.version == other.version && p.description == other.description
}

type metadataWire struct {
	Title       string `json:"Title"`
	Author      string `json:"Author"`
	Version     string `json:"Version"`
	Description string `json:"Description"`
}

func (p *PackMetadata) MarshalJSON() ([]byte, error) {
	return json.Marshal(metadataWire{Title: p.title, Author: p.author, Version: p.version, Description: p.description})
}

func (p *PackMetadata) UnmarshalJSON(b []byte) error {
	w := metadataWire{Title: p.title, Author: p.author, Version: p.version, Description: p.description}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	p.SetTitle(w.Title)
	p.SetAuthor(w.Author)
	p.SetVersion(w.Version)
	p.SetDescription(w.Description)
	return nil
}
