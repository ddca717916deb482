package reconcile

import (
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/verdantlabs/verdant/pkg/constants"
	"github.com/verdantlabs/verdant/pkg/errors"
)

// journalDocument is the on-disk form of the write-ahead journal. It is
// written before any document is touched and removed after the run
// finishes, so a journal left behind marks an interrupted run.
type journalDocument struct {
	StartedAt time.Time `yaml:"started_at"`
	Plan      *Plan     `yaml:"plan"`
}

// journalPath returns the journal location for a store directory.
func journalPath(dir string) string {
	return filepath.Join(dir, constants.JournalFile)
}

// writeJournal persists the plan to the store directory before apply.
func writeJournal(dir string, plan *Plan) error {
	doc := journalDocument{
		StartedAt: time.Now(),
		Plan:      plan,
	}
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return errors.WrapParse("yaml", "journal", err)
	}
	path := journalPath(dir)
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// removeJournal deletes the journal after a completed run. A missing
// journal is not an error.
func removeJournal(dir string) error {
	path := journalPath(dir)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.WrapIO("remove", path, err)
	}
	return nil
}

// ReadJournal loads a leftover journal from a store directory, or
// returns ErrNotFound when none exists. Callers use it to detect an
// interrupted run before starting a new one.
func ReadJournal(dir string) (*Plan, error) {
	path := journalPath(dir)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &errors.NotFoundError{Resource: "journal", ID: path}
		}
		return nil, errors.WrapIO("read", path, err)
	}

	var doc journalDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	if doc.Plan == nil {
		doc.Plan = &Plan{}
	}
	return doc.Plan, nil
}
