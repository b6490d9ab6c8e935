// Package packager writes canonical entities into the fixed CSV-in-zip
// .slingshot package layout.
//
// A Session is an explicit export lifecycle object: create one per export,
// stream entities through Write, then Finalize exactly once. There is no
// process-wide writer registry; everything a write touches hangs off the
// session, and Finalize releases it on all paths.
package packager

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/slingshot-dev/slingshot/internal/model"
)

type sessionState int

const (
	stateWriting sessionState = iota
	stateFinalized
)

// childPrototypes maps a parent CSV name to the child types whose writers
// are opened eagerly on first sight of the parent, so child rows always
// land next to a header even when a particular parent has no children.
var childPrototypes = map[string][]model.Entity{
	(&model.Person{}).FileName(): {
		&model.PersonAttributeValue{}, &model.PersonPhone{}, &model.PersonAddress{},
	},
	(&model.FinancialBatch{}).FileName(): {
		&model.FinancialTransaction{}, &model.FinancialTransactionDetail{},
	},
	(&model.Group{}).FileName(): {
		&model.GroupMember{},
	},
}

// Session owns the scratch directories and the lazily opened per-type CSV
// writers for one export run. Not safe for concurrent use; one export is
// in flight per session by design.
type Session struct {
	csvDir   string
	imageDir string
	state    sessionState

	// ImageArchiveLimit is the soft byte cap per image archive. The sum of
	// file sizes is compared before adding each file, so an archive can
	// exceed the cap by up to one file. Defaults to 100MB.
	ImageArchiveLimit int64

	files   map[string]*os.File
	writers map[string]*csv.Writer
}

// NewSession clears and recreates the scratch CSV and image directories
// under workDir and returns a session ready for writes. Safe to call again
// on a directory left behind by an aborted run.
func NewSession(workDir string) (*Session, error) {
	csvDir := filepath.Join(workDir, "slingshot-csv")
	imageDir := filepath.Join(workDir, "slingshot-images")
	for _, dir := range []string{csvDir, imageDir} {
		if err := os.RemoveAll(dir); err != nil {
			return nil, fmt.Errorf("clearing scratch directory %s: %w", dir, err)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating scratch directory %s: %w", dir, err)
		}
	}
	return &Session{
		csvDir:            csvDir,
		imageDir:          imageDir,
		ImageArchiveLimit: 100 * 1024 * 1024,
		files:             map[string]*os.File{},
		writers:           map[string]*csv.Writer{},
	}, nil
}

// Write appends one entity row. On the first occurrence of an entity's
// type the CSV file is opened and its header written; parent types also
// open their child files. Owned child collections are written in the same
// call, recursively, so callers never manage file handles or sibling files.
func (s *Session) Write(entity model.Entity) error {
	if s.state != stateWriting {
		return fmt.Errorf("write to finalized session")
	}
	if err := s.ensureWriter(entity); err != nil {
		return err
	}
	if parent, ok := entity.(model.ParentEntity); ok {
		for _, proto := range childPrototypes[entity.FileName()] {
			if err := s.ensureWriter(proto); err != nil {
				return err
			}
		}
		if err := s.writeRow(entity); err != nil {
			return err
		}
		for _, child := range parent.Children() {
			if err := s.Write(child); err != nil {
				return err
			}
		}
		return nil
	}
	return s.writeRow(entity)
}

func (s *Session) ensureWriter(entity model.Entity) error {
	name := entity.FileName()
	if _, open := s.writers[name]; open {
		return nil
	}
	f, err := os.Create(filepath.Join(s.csvDir, name))
	if err != nil {
		return fmt.Errorf("opening %s: %w", name, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(entity.Header()); err != nil {
		f.Close()
		return fmt.Errorf("writing %s header: %w", name, err)
	}
	s.files[name] = f
	s.writers[name] = w
	return nil
}

func (s *Session) writeRow(entity model.Entity) error {
	w := s.writers[entity.FileName()]
	if err := w.Write(entity.Row()); err != nil {
		return fmt.Errorf("writing %s row: %w", entity.FileName(), err)
	}
	return nil
}

// Result reports what Finalize produced.
type Result struct {
	PackagePath   string
	ImageArchives []string
	// RowCounts holds data rows (header excluded) per CSV file name.
	RowCounts map[string]int
}

// Finalize flushes and closes every open writer, zips the CSV files into
// exportPath (replacing any existing file), zips scratch images into
// sibling .Images.slingshot archives, and deletes both scratch
// directories. The session is unusable afterwards.
func (s *Session) Finalize(exportPath string) (*Result, error) {
	if s.state == stateFinalized {
		return nil, fmt.Errorf("session already finalized")
	}
	s.state = stateFinalized

	names := make([]string, 0, len(s.writers))
	for name := range s.writers {
		names = append(names, name)
	}
	sort.Strings(names)

	counts := map[string]int{}
	for _, name := range names {
		s.writers[name].Flush()
		if err := s.writers[name].Error(); err != nil {
			s.closeAll()
			return nil, fmt.Errorf("flushing %s: %w", name, err)
		}
		if err := s.files[name].Close(); err != nil {
			s.closeAll()
			return nil, fmt.Errorf("closing %s: %w", name, err)
		}
		delete(s.files, name)
		n, err := countDataRows(filepath.Join(s.csvDir, name))
		if err != nil {
			return nil, err
		}
		counts[name] = n
	}

	if err := os.Remove(exportPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("replacing %s: %w", exportPath, err)
	}
	if err := zipDirectory(s.csvDir, exportPath); err != nil {
		return nil, err
	}

	imageArchives, err := s.zipImages(exportPath)
	if err != nil {
		return nil, err
	}

	for _, dir := range []string{s.csvDir, s.imageDir} {
		if err := os.RemoveAll(dir); err != nil {
			return nil, fmt.Errorf("removing scratch directory %s: %w", dir, err)
		}
	}

	return &Result{
		PackagePath:   exportPath,
		ImageArchives: imageArchives,
		RowCounts:     counts,
	}, nil
}

// closeAll releases remaining handles after a finalize error. Best effort;
// the finalize error is what the caller sees.
func (s *Session) closeAll() {
	for name, f := range s.files {
		f.Close()
		delete(s.files, name)
	}
}

func countDataRows(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("counting rows of %s: %w", path, err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("counting rows of %s: %w", path, err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return len(rows) - 1, nil
}
