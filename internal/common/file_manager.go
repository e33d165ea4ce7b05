package common

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// FileReadOptions configures file reading behavior
type FileReadOptions struct {
	MaxSize int64 // Maximum file size to read (0 = no limit)
}

// DefaultFileReadOptions returns default file reading options
func DefaultFileReadOptions() FileReadOptions {
	return FileReadOptions{
		MaxSize: 0,
	}
}

// FileInfo holds the subset of file metadata callers care about
type FileInfo struct {
	Path  string
	Size  int64
	IsDir bool
}

// FileManager provides high-level file operations with standardized error handling and logging
type FileManager struct {
	logger zerolog.Logger
}

// NewFileManager creates a new FileManager instance
func NewFileManager(logger zerolog.Logger) *FileManager {
	return &FileManager{
		logger: logger.With().Str("component", "FileManager").Logger(),
	}
}

// FileExists checks if a file or directory exists
func (fm *FileManager) FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// GetFileInfo returns information about a file
func (fm *FileManager) GetFileInfo(path string) (*FileInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, WrapErrorf(ErrNotFound, "file not found: %s", path)
		}
		return nil, WrapError(err, fmt.Sprintf("failed to get file info for: %s", path))
	}

	return &FileInfo{
		Path:  path,
		Size:  stat.Size(),
		IsDir: stat.IsDir(),
	}, nil
}

// ReadFile reads a whole file, refusing directories and files above opts.MaxSize
func (fm *FileManager) ReadFile(path string, opts FileReadOptions) ([]byte, error) {
	info, err := fm.GetFileInfo(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir {
		return nil, NewValidationError("path", path, "is a directory, not a file")
	}
	if opts.MaxSize > 0 && info.Size > opts.MaxSize {
		return nil, NewValidationError("file_size", info.Size, fmt.Sprintf("exceeds maximum size of %d bytes", opts.MaxSize))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, WrapError(err, fmt.Sprintf("failed to open file: %s", path))
	}
	defer func() {
		if err := file.Close(); err != nil {
			fm.logger.Error().Err(err).Str("path", path).Msg("Failed to close file.")
		}
	}()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, WrapError(err, fmt.Sprintf("failed to read file content: %s", path))
	}

	fm.logger.Debug().Str("path", path).Int("bytes", len(content)).Msg("File read")
	return content, nil
}

// EnsureDirectory creates a directory and its parents if they don't exist
func (fm *FileManager) EnsureDirectory(path string, perm fs.FileMode) error {
	if fm.FileExists(path) {
		info, err := fm.GetFileInfo(path)
		if err != nil {
			return WrapError(err, "failed to check directory: "+path)
		}
		if !info.IsDir {
			return NewValidationError("path", path, "exists but is not a directory")
		}
		return nil
	}

	if err := os.MkdirAll(path, perm); err != nil {
		return WrapError(err, "failed to create directory: "+path)
	}

	fm.logger.Debug().Str("path", path).Msg("Created directory")
	return nil
}

// WriteFile writes data to path, truncating any existing content
func (fm *FileManager) WriteFile(path string, data []byte, perm fs.FileMode) error {
	if err := fm.EnsureDirectory(filepath.Dir(path), 0755); err != nil {
		return WrapError(err, "failed to create parent directories for: "+path)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return WrapError(err, fmt.Sprintf("failed to write file: %s", path))
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fm.logger.Error().Err(closeErr).Str("path", path).Msg("Failed to close file after writing")
		}
	}()

	if _, err := file.Write(data); err != nil {
		return WrapError(err, fmt.Sprintf("failed to write file: %s", path))
	}

	fm.logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("File written successfully")
	return nil
}
