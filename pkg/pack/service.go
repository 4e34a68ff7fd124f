// Package pack opens, creates and closes a whole pack by sequencing the
// services responsible for its parts.
package pack

import (
	"errors"
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/pluqqy/packsmith/pkg/files"
)

// ErrNotOpen is returned when a pack is required but none is open.
var ErrNotOpen = errors.New("no pack is open")

// Part is a service owning one part of a pack.
type Part interface {
	NewPack(packFolder files.Folder) error
	OpenPack(packFolder files.Folder) error
	ClosePack()
}

// FolderService is a part stored in its own subfolder.
type FolderService interface {
	Part
	Subfolder() string
}

// ImageService resolves the images referenced by documents.
type ImageService interface {
	Part
	ImagePath(id string) (string, bool)
}

// DocumentCloser closes every open document.
type DocumentCloser interface {
	CloseAll()
}

// ToolDeactivator deactivates every active editing tool.
type ToolDeactivator interface {
	DeactivateAll()
}

func log() commonlog.Logger {
	return commonlog.GetLogger("packsmith.pack")
}

// Config holds the parts of a pack. Documents and Tools are optional.
type Config struct {
	Metadata  *MetadataService
	Images    ImageService
	Folders   []FolderService
	Documents DocumentCloser
	Tools     ToolDeactivator
}

// Service opens packs by running every part in a fixed order: metadata,
// images, then the folder services in registration order.
type Service struct {
	cfg  Config
	root files.Folder
}

// NewService creates a pack service.
func NewService(cfg Config) *Service {
	return &Service{cfg: cfg}
}

// Root returns the folder of the open pack, or nil.
func (s *Service) Root() files.Folder {
	return s.root
}

func (s *Service) IsOpen() bool {
	return s.root != nil
}

// Metadata returns the metadata service.
func (s *Service) Metadata() *MetadataService {
	return s.cfg.Metadata
}

// Images returns the image service.
func (s *Service) Images() ImageService {
	return s.cfg.Images
}

func (s *Service) parts() []Part {
	parts := []Part{s.cfg.Metadata, s.cfg.Images}
	for _, folder := range s.cfg.Folders {
		parts = append(parts, folder)
	}
	return parts
}

// NewPack initialises a pack in folder, closing any open pack first.
func (s *Service) NewPack(folder files.Folder) error {
	s.ClosePack()
	for _, part := range s.parts() {
		if err := part.NewPack(folder); err != nil {
			s.closeParts()
			return fmt.Errorf("failed to create pack in %s: %w", folder.Path(), err)
		}
	}
	s.root = folder
	log().Infof("created pack %s", folder.Path())
	return nil
}

// OpenPack opens the pack in folder, closing any open pack first.
func (s *Service) OpenPack(folder files.Folder) error {
	s.ClosePack()
	for _, part := range s.parts() {
		if err := part.OpenPack(folder); err != nil {
			s.closeParts()
			return fmt.Errorf("failed to open pack %s: %w", folder.Path(), err)
		}
	}
	s.root = folder
	log().Infof("opened pack %s", folder.Path())
	return nil
}

// ClosePack closes the open documents and deactivates the tools before
// closing the folder services, the images and finally the metadata.
func (s *Service) ClosePack() {
	if s.cfg.Documents != nil {
		s.cfg.Documents.CloseAll()
	}
	if s.cfg.Tools != nil {
		s.cfg.Tools.DeactivateAll()
	}
	s.closeParts()
	if s.root != nil {
		log().Infof("closed pack %s", s.root.Path())
		s.root = nil
	}
}

func (s *Service) closeParts() {
	for _, folder := range s.cfg.Folders {
		folder.ClosePack()
	}
	s.cfg.Images.ClosePack()
	s.cfg.Metadata.ClosePack()
}
