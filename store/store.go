// Package store persists API response snapshots in timestamped folders.
//
// Layout on disk:
//
//	<payloadsRoot>/<testSuiteName>/<timestamp>/<safeTestCaseName>.json
//
// The timestamp format (YYYY.MM.DD.HHmmss) sorts lexically in chronological
// order, which is what the comparer relies on when selecting the two most
// recent snapshot folders. Test case names are sanitized by collapsing
// whitespace to underscores.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mariogalea/qualitymatters-apiveritas/internal/fileutil"
	"github.com/mariogalea/qualitymatters-apiveritas/internal/naming"
)

// TimestampLayout is the snapshot folder name format. It must remain
// lexically sortable in chronological order.
const TimestampLayout = "2006.01.02.150405"

// Store reads and writes snapshot folders under a payloads root directory.
type Store struct {
	root string
}

// New creates a Store rooted at the given payloads directory.
func New(root string) *Store {
	return &Store{root: root}
}

// Root returns the payloads root directory.
func (s *Store) Root() string {
	return s.root
}

// SuiteDir returns the directory holding all snapshot folders of a suite.
func (s *Store) SuiteDir(suite string) string {
	return filepath.Join(s.root, naming.SafeFileName(suite))
}

// FolderID formats a snapshot folder name for the given time.
func FolderID(t time.Time) string {
	return t.Format(TimestampLayout)
}

// Save writes one snapshot folder named after the current time, containing
// one JSON file per test case. Keys of payloads are declared test case
// names; values are raw response bodies. Returns the created folder ID.
func (s *Store) Save(suite string, payloads map[string][]byte) (string, error) {
	folderID := FolderID(time.Now())
	if err := s.SaveTo(suite, folderID, payloads); err != nil {
		return "", err
	}
	return folderID, nil
}

// SaveTo writes payloads into an explicitly named snapshot folder.
func (s *Store) SaveTo(suite, folderID string, payloads map[string][]byte) error {
	dir := filepath.Join(s.SuiteDir(suite), folderID)
	if err := os.MkdirAll(dir, fileutil.OwnerAll); err != nil {
		return fmt.Errorf("creating snapshot folder: %w", err)
	}

	for name, body := range payloads {
		path := filepath.Join(dir, naming.SafeFileName(name)+".json")
		if err := os.WriteFile(path, body, fileutil.OwnerReadWrite); err != nil {
			return fmt.Errorf("writing snapshot %s: %w", path, err)
		}
	}
	return nil
}

// Folders lists the snapshot folder IDs of a suite, directories only,
// sorted descending (most recent first). A missing suite directory is not
// an error and yields an empty list.
func (s *Store) Folders(suite string) ([]string, error) {
	entries, err := os.ReadDir(s.SuiteDir(suite))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading suite directory: %w", err)
	}

	var folders []string
	for _, e := range entries {
		if e.IsDir() {
			folders = append(folders, e.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(folders)))
	return folders, nil
}

// LatestTwo returns the two most recent snapshot folders of a suite as
// (previous, latest). ok is false when the suite has fewer than two folders.
func (s *Store) LatestTwo(suite string) (previous, latest string, ok bool, err error) {
	folders, err := s.Folders(suite)
	if err != nil {
		return "", "", false, err
	}
	if len(folders) < 2 {
		return "", "", false, nil
	}
	return folders[1], folders[0], true, nil
}

// Files lists the payload file names of one snapshot folder, sorted
// ascending for deterministic comparison order.
func (s *Store) Files(suite, folderID string) ([]string, error) {
	dir := filepath.Join(s.SuiteDir(suite), folderID)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot folder %s: %w", folderID, err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// Read returns the raw bytes of one payload file in a snapshot folder.
func (s *Store) Read(suite, folderID, fileName string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.SuiteDir(suite), folderID, fileName))
}

// Exists reports whether a payload file is present in a snapshot folder.
func (s *Store) Exists(suite, folderID, fileName string) bool {
	_, err := os.Stat(filepath.Join(s.SuiteDir(suite), folderID, fileName))
	return err == nil
}
