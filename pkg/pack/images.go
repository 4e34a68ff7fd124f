package pack

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/pluqqy/packsmith/pkg/docfile"
	"github.com/pluqqy/packsmith/pkg/files"
	"github.com/pluqqy/packsmith/pkg/models"
)

// ImageManifestService resolves images through the read-only manifest in the
// images folder. The manifest is maintained by external tooling.
type ImageManifestService struct {
	folder   files.Folder
	manifest *docfile.ReadOnly[*models.ImageManifest]
}

var _ ImageService = (*ImageManifestService)(nil)

func NewImageManifestService() *ImageManifestService {
	return &ImageManifestService{}
}

// NewPack creates the images folder.
func (s *ImageManifestService) NewPack(packFolder files.Folder) error {
	s.ClosePack()
	folder, err := packFolder.GetFolder(files.ImagesDir)
	if errors.Is(err, files.ErrNotExist) {
		folder, err = packFolder.CreateFolder(files.ImagesDir)
	}
	if err != nil {
		return fmt.Errorf("failed to prepare images folder: %w", err)
	}
	s.folder = folder
	return nil
}

// OpenPack reads the manifest if the pack has one.
func (s *ImageManifestService) OpenPack(packFolder files.Folder) error {
	s.ClosePack()
	folder, err := packFolder.GetFolder(files.ImagesDir)
	if errors.Is(err, files.ErrNotExist) {
		return s.NewPack(packFolder)
	}
	if err != nil {
		return fmt.Errorf("failed to open images folder: %w", err)
	}
	s.folder = folder

	storage, err := folder.GetFile(files.ManifestFile)
	if errors.Is(err, files.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open image manifest: %w", err)
	}

	manifest := docfile.NewReadOnly(storage, models.NewImageManifest)
	if err := manifest.Load(); err != nil {
		return err
	}
	s.manifest = manifest
	log().Debugf("loaded %d images", len(manifest.Data().Images()))
	return nil
}

func (s *ImageManifestService) ClosePack() {
	s.folder = nil
	s.manifest = nil
}

// Images returns the manifest entries.
func (s *ImageManifestService) Images() []models.ImageEntry {
	if s.manifest == nil {
		return nil
	}
	return s.manifest.Data().Images()
}

// ImagePath returns the path of the image with the given id.
func (s *ImageManifestService) ImagePath(id string) (string, bool) {
	if s.manifest == nil {
		return "", false
	}
	entry, ok := s.manifest.Data().Lookup(id)
	if !ok {
		return "", false
	}
	return filepath.Join(s.folder.Path(), entry.Path), true
}
