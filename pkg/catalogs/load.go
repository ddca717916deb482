package catalogs

import (
	"encoding/json"
	"io/fs"
	"sort"
	"strings"

	"github.com/verdantlabs/verdant/pkg/constants"
	"github.com/verdantlabs/verdant/pkg/errors"
	"github.com/verdantlabs/verdant/pkg/logging"
)

// Manifest lists the member documents of a record store.
type Manifest struct {
	Count   int      `json:"count"`
	Records []string `json:"records"`
}

// Load loads the catalog from the configured filesystem.
//
// A parse failure on a single document is caught, logged, and that document
// is excluded from the catalog (not deleted). An unreadable store is fatal.
func (cat *catalog) Load() error {
	if cat.options.readFS == nil {
		return nil // Memory catalog - nothing to load
	}

	files, err := cat.memberFiles()
	if err != nil {
		return err
	}

	cat.records.Clear()
	cat.malformed = nil

	for _, file := range files {
		data, err := fs.ReadFile(cat.options.readFS, file)
		if err != nil {
			// The manifest can list documents that no longer exist,
			// e.g. after a crash mid-run deleted a loser before the
			// manifest was rebuilt. Absence is not fatal.
			logging.Warn().
				Str("file", file).
				Err(err).
				Msg("Listed record document is unreadable, skipping")
			continue
		}

		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			cat.malformed = append(cat.malformed, file)
			logging.Warn().
				Str("file", file).
				Err(err).
				Msg("Malformed record document, excluded from this run")
			continue
		}

		if err := cat.records.Set(file, &rec); err != nil {
			return errors.WrapResource("load", "record", file, err)
		}
	}

	return nil
}

// memberFiles enumerates record documents, preferring the manifest and
// falling back to a directory glob when no manifest exists yet.
func (cat *catalog) memberFiles() ([]string, error) {
	data, err := fs.ReadFile(cat.options.readFS, constants.ManifestFile)
	if err == nil {
		var manifest Manifest
		if err := json.Unmarshal(data, &manifest); err != nil {
			return nil, errors.WrapParse("json", constants.ManifestFile, err)
		}
		files := make([]string, 0, len(manifest.Records))
		for _, file := range manifest.Records {
			if strings.HasSuffix(file, constants.RecordExtension) && file != constants.ManifestFile {
				files = append(files, file)
			}
		}
		sort.Strings(files)
		return files, nil
	}

	// No manifest: enumerate the directory itself. A store without a
	// manifest is valid on first run; an unreadable directory is not.
	matches, err := fs.Glob(cat.options.readFS, "*"+constants.RecordExtension)
	if err != nil {
		return nil, errors.WrapIO("read", "record store", err)
	}
	if _, err := fs.Stat(cat.options.readFS, "."); err != nil {
		return nil, errors.WrapIO("stat", "record store", err)
	}

	files := matches[:0]
	for _, file := range matches {
		if file != constants.ManifestFile {
			files = append(files, file)
		}
	}
	sort.Strings(files)
	return files, nil
}
