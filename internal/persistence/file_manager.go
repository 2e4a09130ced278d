package persistence

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	"mindd/internal/models"
	"mindd/internal/providers"
)

// FileManager saves and restores the whole store snapshot as compressed
// JSON. Writes go through a tmp file with fsync and rename so a crash
// mid-save never corrupts the previous snapshot.
type FileManager struct {
	stores     *models.Stores
	compressor CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor CompressorInterface, stores *models.Stores, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		stores:     stores,
		logger:     logger,
	}
}

func (f *FileManager) SaveToFile(fileName string) error {
	snapshot := f.stores.Export()

	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

// LoadFromFile restores all collections from a snapshot file. A missing
// file is a fresh start, not an error; a corrupt or future-versioned file
// is.
func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressed, err := f.compressor.Decompress(data)
	if err != nil {
		return fmt.Errorf("decompress snapshot %s: %w", fileName, err)
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(decompressed, &snapshot); err != nil {
		return fmt.Errorf("parse snapshot %s: %w", fileName, err)
	}
	if snapshot.Version > models.SnapshotVersion {
		return fmt.Errorf("snapshot %s has version %d, this build reads up to %d",
			fileName, snapshot.Version, models.SnapshotVersion)
	}

	f.stores.Load(&snapshot)
	f.logger.Infof(providers.TypeApp, "Restored %d stats, %d plans, %d content items, %d users",
		f.stores.Stats.Len(), f.stores.Plans.Len(), f.stores.Content.Len(), f.stores.Users.Len())
	return nil
}
