package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"floorplan/internal/floorplan/export"
)

// ============================================================
// File Storage
// ============================================================

type FileStorage struct {
	root string
}

func NewFileStorage(root string) *FileStorage {
	return &FileStorage{root: root}
}

func (s *FileStorage) ExportDir() string {
	return s.root
}

// ExportPath is where an export of projectName in format f is written.
func (s *FileStorage) ExportPath(projectName string, f export.Format) string {
	return filepath.Join(s.root, export.FileName(projectName, f))
}

func (s *FileStorage) EnsureDir() error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("mkdir export dir: %w", err)
	}
	return nil
}

// SaveExport writes data as fileName in the export directory. The file is
// written next to its final path and renamed into place, so a reader never
// sees a partial file.
func (s *FileStorage) SaveExport(fileName string, data []byte) (string, error) {
	if err := s.EnsureDir(); err != nil {
		return "", err
	}
	target := filepath.Join(s.root, filepath.Base(fileName))
	if err := SaveFile(target, data); err != nil {
		return "", err
	}
	return target, nil
}

// SaveFile atomically replaces target with data.
func SaveFile(target string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", target, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", target, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", target, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("rename %s: %w", target, err)
	}
	return nil
}
