// Package store manages the on-disk corpus of statement files.
//
// Processing state lives entirely in the file name: a statement is
// unprocessed while it keeps its original name and becomes processed when
// it is renamed with the processed suffix. Files are never deleted or
// moved out of the base directory.
package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vitalyzotov/gpb-module/internal/statement"
)

const (
	statementExt    = ".csv"
	processedSuffix = "_processed.csv"
)

var (
	// ErrAlreadyExists is returned by Save when a statement file with the
	// same name is already present.
	ErrAlreadyExists = errors.New("statement file already exists")

	// ErrAlreadyProcessed is returned by Save when the processed
	// counterpart of the name is already present.
	ErrAlreadyProcessed = errors.New("statement already processed")
)

type Store struct {
	baseDir string
	parser  *statement.Parser
}

// New validates the base directory once; a store over a missing or
// unreadable directory must not come into existence.
func New(baseDir string, parser *statement.Parser) (*Store, error) {
	info, err := os.Stat(baseDir)
	if err != nil {
		return nil, fmt.Errorf("stat base directory: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("base directory %q is not a directory", baseDir)
	}

	if _, err := os.ReadDir(baseDir); err != nil {
		return nil, fmt.Errorf("read base directory: %w", err)
	}

	return &Store{baseDir: baseDir, parser: parser}, nil
}

// FindAll returns identities of every statement file, processed or not,
// sorted lexicographically by name.
func (s *Store) FindAll() ([]statement.ID, error) {
	return s.list(func(string) bool { return true })
}

// FindUnprocessed returns identities of statement files that have not been
// marked processed yet, sorted lexicographically by name.
func (s *Store) FindUnprocessed() ([]statement.ID, error) {
	return s.list(func(name string) bool {
		return !strings.HasSuffix(strings.ToLower(name), processedSuffix)
	})
}

// list walks the base directory once. os.ReadDir guarantees lexicographic
// order, which keeps scans deterministic.
func (s *Store) list(keep func(name string) bool) ([]statement.ID, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read base directory: %w", err)
	}

	var ids []statement.ID

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasSuffix(strings.ToLower(name), statementExt) || !keep(name) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %q: %w", name, err)
		}

		ids = append(ids, statement.ID{Name: name, DiscoveredAt: info.ModTime()})
	}

	return ids, nil
}

// Find loads and fully parses the named statement file.
func (s *Store) Find(id statement.ID) (*statement.Statement, error) {
	if err := checkName(id.Name); err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, id.Name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("statement %q: %w", id.Name, statement.ErrNotFound)
		}

		return nil, fmt.Errorf("open statement %q: %w", id.Name, err)
	}
	defer file.Close()

	ops, err := s.parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parse statement %q: %w", id.Name, err)
	}

	return &statement.Statement{ID: id, Operations: ops}, nil
}

// Save accepts a new statement file. The content is written to a temp file
// and renamed into place, so a concurrent directory scan never observes a
// partial file.
func (s *Store) Save(name string, content io.Reader) (statement.ID, error) {
	if err := checkName(name); err != nil {
		return statement.ID{}, err
	}

	if !strings.HasSuffix(strings.ToLower(name), statementExt) {
		return statement.ID{}, fmt.Errorf("invalid statement name %q: want %s extension", name, statementExt)
	}

	if strings.HasSuffix(strings.ToLower(name), processedSuffix) {
		return statement.ID{}, fmt.Errorf("saving already processed statements is not allowed: %q", name)
	}

	path := filepath.Join(s.baseDir, name)
	if _, err := os.Stat(path); err == nil {
		return statement.ID{}, fmt.Errorf("statement %q: %w", name, ErrAlreadyExists)
	}

	processedPath := filepath.Join(s.baseDir, processedName(name))
	if _, err := os.Stat(processedPath); err == nil {
		return statement.ID{}, fmt.Errorf("statement %q: %w", name, ErrAlreadyProcessed)
	}

	tmp, err := os.CreateTemp(s.baseDir, ".upload-*")
	if err != nil {
		return statement.ID{}, fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(tmp, content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return statement.ID{}, fmt.Errorf("write statement %q: %w", name, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return statement.ID{}, fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return statement.ID{}, fmt.Errorf("chmod temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return statement.ID{}, fmt.Errorf("publish statement %q: %w", name, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return statement.ID{}, fmt.Errorf("stat statement %q: %w", name, err)
	}

	return statement.ID{Name: name, DiscoveredAt: info.ModTime()}, nil
}

// MarkProcessed renames the statement file in place by replacing its
// extension with the processed suffix. The rename is atomic, so a
// concurrent unprocessed scan sees the file in exactly one state.
func (s *Store) MarkProcessed(id statement.ID) error {
	if err := checkName(id.Name); err != nil {
		return err
	}

	src := filepath.Join(s.baseDir, id.Name)
	if _, err := os.Stat(src); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("statement %q: %w", id.Name, statement.ErrNotFound)
		}

		return fmt.Errorf("stat statement %q: %w", id.Name, err)
	}

	target := filepath.Join(s.baseDir, processedName(id.Name))
	if _, err := os.Stat(target); err == nil {
		return fmt.Errorf("processed statement already exists: %q", processedName(id.Name))
	}

	if err := os.Rename(src, target); err != nil {
		return fmt.Errorf("mark statement %q processed: %w", id.Name, err)
	}

	return nil
}

// checkName rejects names that would resolve outside the base directory.
// The corpus is flat, so a statement name must be a bare file name with no
// path separators or traversal elements.
func checkName(name string) error {
	if name == "" || name == "." || name == ".." ||
		name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid statement name %q", name)
	}

	return nil
}

// processedName replaces the file extension with the processed suffix:
// "report_1.csv" -> "report_1_processed.csv".
func processedName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + processedSuffix
}
