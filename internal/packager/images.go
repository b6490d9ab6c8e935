package packager

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// WriteImage stores a person photo in the scratch image directory under
// the Person_<id>.jpg naming convention the destination importer matches
// photos to people by.
func (s *Session) WriteImage(personID int32, r io.Reader) error {
	if s.state != stateWriting {
		return fmt.Errorf("write to finalized session")
	}
	name := fmt.Sprintf("Person_%d.jpg", personID)
	f, err := os.Create(filepath.Join(s.imageDir, name))
	if err != nil {
		return fmt.Errorf("creating image %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("writing image %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing image %s: %w", name, err)
	}
	return nil
}

// zipImages splits scratch images across <base>_<N>.Images.slingshot
// archives. The running sum of file sizes is checked before each add, so
// an archive may exceed the limit by at most one file; that approximation
// matches the legacy packages already in the field.
func (s *Session) zipImages(exportPath string) ([]string, error) {
	entries, err := os.ReadDir(s.imageDir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.imageDir, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, nil
	}
	sort.Strings(names)

	base := strings.TrimSuffix(exportPath, filepath.Ext(exportPath))

	var archives []string
	var zw *zip.Writer
	var out *os.File
	var accumulated int64
	index := 0

	open := func() error {
		index++
		path := fmt.Sprintf("%s_%d.Images.slingshot", base, index)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		out = f
		zw = zip.NewWriter(f)
		archives = append(archives, path)
		accumulated = 0
		return nil
	}
	closeCurrent := func() error {
		if zw == nil {
			return nil
		}
		if err := zw.Close(); err != nil {
			out.Close()
			return fmt.Errorf("finalizing image archive: %w", err)
		}
		if err := out.Close(); err != nil {
			return fmt.Errorf("closing image archive: %w", err)
		}
		zw = nil
		out = nil
		return nil
	}

	for _, name := range names {
		path := filepath.Join(s.imageDir, name)
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if zw == nil || accumulated > s.ImageArchiveLimit {
			if err := closeCurrent(); err != nil {
				return nil, err
			}
			if err := open(); err != nil {
				return nil, err
			}
		}
		if err := addFileToZip(zw, path, name); err != nil {
			closeCurrent()
			return nil, err
		}
		accumulated += info.Size()
	}
	if err := closeCurrent(); err != nil {
		return nil, err
	}
	return archives, nil
}
