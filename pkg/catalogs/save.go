package catalogs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/verdantlabs/verdant/pkg/constants"
	"github.com/verdantlabs/verdant/pkg/errors"
)

// Save writes every record document and regenerates the manifest.
func (cat *catalog) Save() error {
	if err := cat.writable(); err != nil {
		return err
	}

	for _, file := range cat.records.Files() {
		if err := cat.SaveRecord(file); err != nil {
			return err
		}
	}

	return cat.WriteManifest()
}

// SaveRecord writes a single record document back to the store as
// formatted JSON.
func (cat *catalog) SaveRecord(file string) error {
	if err := cat.writable(); err != nil {
		return err
	}

	rec, ok := cat.records.Get(file)
	if !ok {
		return &errors.NotFoundError{Resource: "record", ID: file}
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return errors.WrapResource("encode", "record", file, err)
	}
	data = append(data, '\n')

	path := filepath.Join(cat.options.writePath, file)
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// RemoveRecord deletes a record document from the store and the collection.
// A document already absent on disk is not an error; a re-run after a crash
// mid-apply must tolerate half-deleted groups.
func (cat *catalog) RemoveRecord(file string) error {
	if err := cat.writable(); err != nil {
		return err
	}

	path := filepath.Join(cat.options.writePath, file)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.WrapIO("delete", path, err)
	}

	// Collection membership may already be gone too; that's fine.
	_ = cat.records.Delete(file)
	return nil
}

// WriteManifest regenerates the manifest from the current member list.
// Malformed documents stay listed; they are still store members awaiting
// repair.
func (cat *catalog) WriteManifest() error {
	if err := cat.writable(); err != nil {
		return err
	}

	files := cat.records.Files()
	if len(cat.malformed) > 0 {
		files = append(files, cat.malformed...)
		sort.Strings(files)
	}
	manifest := Manifest{
		Count:   len(files),
		Records: files,
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return errors.WrapResource("encode", "manifest", "", err)
	}
	data = append(data, '\n')

	path := filepath.Join(cat.options.writePath, constants.ManifestFile)
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// writable verifies the catalog can persist.
func (cat *catalog) writable() error {
	if cat.options.readOnly {
		return errors.ErrReadOnly
	}
	if cat.options.writePath == "" {
		return &errors.ConfigError{
			Component: "catalog",
			Message:   "no write path configured for saving",
		}
	}
	return nil
}
