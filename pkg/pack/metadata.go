package pack

import (
	"errors"
	"fmt"

	"github.com/pluqqy/packsmith/pkg/docfile"
	"github.com/pluqqy/packsmith/pkg/files"
	"github.com/pluqqy/packsmith/pkg/models"
)

// MetadataService owns the pack metadata file at the pack root.
type MetadataService struct {
	file *docfile.File[*models.PackMetadata]
}

func NewMetadataService() *MetadataService {
	return &MetadataService{}
}

// File returns the metadata document file, or the null file when no pack is
// open.
func (m *MetadataService) File() docfile.Editable[*models.PackMetadata] {
	if m.file == nil {
		return docfile.Null[*models.PackMetadata]()
	}
	return m.file
}

// NewPack writes default metadata titled after the pack folder.
func (m *MetadataService) NewPack(packFolder files.Folder) error {
	m.ClosePack()

	storage, err := packFolder.GetFile(files.MetadataFile)
	if errors.Is(err, files.ErrNotExist) {
		storage, err = packFolder.CreateFile(files.MetadataFile)
	}
	if err != nil {
		return fmt.Errorf("failed to create pack metadata: %w", err)
	}

	file := docfile.New(storage, models.NewPackMetadata)
	file.WorkingData().SetTitle(packFolder.Name())
	if err := file.Save(); err != nil {
		file.Close()
		return err
	}
	m.file = file
	return nil
}

// OpenPack loads the metadata file, creating it when the pack has none.
func (m *MetadataService) OpenPack(packFolder files.Folder) error {
	m.ClosePack()

	storage, err := packFolder.GetFile(files.MetadataFile)
	if errors.Is(err, files.ErrNotExist) {
		log().Warningf("%s has no %s, creating it", packFolder.Path(), files.MetadataFile)
		return m.NewPack(packFolder)
	}
	if err != nil {
		return fmt.Errorf("failed to open pack metadata: %w", err)
	}

	file := docfile.New(storage, models.NewPackMetadata)
	if err := file.Load(); err != nil {
		file.Close()
		return err
	}
	m.file = file
	return nil
}

func (m *MetadataService) ClosePack() {
	if m.file == nil {
		return
	}
	m.file.Close()
	m.file = nil
}
