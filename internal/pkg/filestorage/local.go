package filestorage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/yigit/erp-migrator/internal/pkg/logger"
)

// ErrFileNotFound is returned when a requested document does not exist
var ErrFileNotFound = errors.New("file not found")

// LocalStorage stores documents on the local filesystem.
type LocalStorage struct {
	basePath string // The root directory where files will be stored
}

// NewLocalStorage creates a new LocalStorage instance rooted at basePath,
// creating the directory when needed.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{basePath: basePath}, nil
}

// cleanName keeps only the last path element so callers cannot escape the base directory.
func cleanName(name string) (string, error) {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "" || base == "." || base == "/" || base == ".." {
		return "", fmt.Errorf("invalid file name: %q", name)
	}
	return base, nil
}

func (ls *LocalStorage) dir(subPath string) string {
	if subPath == "" {
		return ls.basePath
	}
	return filepath.Join(ls.basePath, filepath.Clean("/" + subPath))
}

// SaveJSON writes v as indented JSON. The document is written to a temporary
// file first and renamed into place, so readers never see a partial file.
func (ls *LocalStorage) SaveJSON(subPath, name string, v interface{}) (*FileInfo, error) {
	filename, err := cleanName(name)
	if err != nil {
		return nil, err
	}

	fullDirPath := ls.dir(subPath)
	if err := os.MkdirAll(fullDirPath, 0o755); err != nil {
		logger.Error().Err(err).Str("path", fullDirPath).Msg("Failed to create subdirectory")
		return nil, fmt.Errorf("failed to create subdirectory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", filename, err)
	}

	dstPath := filepath.Join(fullDirPath, filename)
	tmpPath := filepath.Join(fullDirPath, "."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		logger.Error().Err(err).Str("path", tmpPath).Msg("Failed to write temporary file")
		return nil, fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmpPath, dstPath); err != nil {
		_ = os.Remove(tmpPath)
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to move file into place")
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	logger.Debug().Str("path", dstPath).Int("bytes", len(data)).Msg("File saved successfully")
	return &FileInfo{Name: filename, Path: dstPath, FileSize: int64(len(data))}, nil
}

// ReadJSON decodes subPath/name into v
func (ls *LocalStorage) ReadJSON(subPath, name string, v interface{}) error {
	filename, err := cleanName(name)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(filepath.Join(ls.dir(subPath), filename))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, filename)
		}
		return fmt.Errorf("failed to read file: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", filename, err)
	}
	return nil
}

// Latest returns the most recently modified .json document in subPath
func (ls *LocalStorage) Latest(subPath string) (*FileInfo, error) {
	dir := ls.dir(subPath)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var latest *FileInfo
	var latestMod int64
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); latest == nil || mod > latestMod {
			latestMod = mod
			latest = &FileInfo{Name: entry.Name(), Path: filepath.Join(dir, entry.Name()), FileSize: info.Size()}
		}
	}
	if latest == nil {
		return nil, ErrFileNotFound
	}
	return latest, nil
}

// DeleteFile removes subPath/name. Returns nil if the file doesn't exist.
func (ls *LocalStorage) DeleteFile(subPath, name string) error {
	filename, err := cleanName(name)
	if err != nil {
		return err
	}

	physicalPath := filepath.Join(ls.dir(subPath), filename)
	if err := os.Remove(physicalPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
			return nil
		}
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}
