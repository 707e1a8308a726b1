package dictionary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	cacheDirectoryName = ".word"
	cacheFileExtension = ".json"

	temporaryFileExtension = ".tmp"
)

// DefaultCacheDirectory returns ~/.word, or ./.word when the home directory is unknown.
func DefaultCacheDirectory() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".", cacheDirectoryName)
	}
	return filepath.Join(home, cacheDirectoryName)
}

// FileCache stores one JSON file per lookup key.
type FileCache struct {
	rootDir string
}

var _ Store = (*FileCache)(nil)

func NewFileCache(cacheDirectory string) *FileCache {
	return &FileCache{
		rootDir: cacheDirectory,
	}
}

// RootDir returns the directory holding the cache files.
func (cache *FileCache) RootDir() string {
	return cache.rootDir
}

func (cache *FileCache) filePath(key LookupKey) string {
	return filepath.Join(cache.rootDir, key.String()+cacheFileExtension)
}

func (cache *FileCache) Prepare(_ context.Context) error {
	if err := os.MkdirAll(cache.rootDir, 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", cache.rootDir, err)
	}
	return nil
}

func (cache *FileCache) Read(_ context.Context, key LookupKey) (string, error) {
	file, err := os.Open(cache.filePath(key))
	if err != nil {
		return "", fmt.Errorf("%w: os.Open > %w", ErrCacheMiss, err)
	}
	defer func() {
		_ = file.Close()
	}()

	contents, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("%w: io.ReadAll > %w", ErrCacheMiss, err)
	}
	return string(contents), nil
}

// Write replaces the cached response through a temporary file in the same
// directory, so a failed write never leaves a truncated entry behind.
func (cache *FileCache) Write(ctx context.Context, key LookupKey, payload string) error {
	if err := cache.Prepare(ctx); err != nil {
		return err
	}

	file, err := os.CreateTemp(cache.rootDir, key.String()+".*"+temporaryFileExtension)
	if err != nil {
		return fmt.Errorf("os.CreateTemp > %w", err)
	}
	tmpPath := file.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if _, err := file.WriteString(payload); err != nil {
		_ = file.Close()
		return fmt.Errorf("file.WriteString > %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("file.Close > %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("os.Chmod > %w", err)
	}
	if err := os.Rename(tmpPath, cache.filePath(key)); err != nil {
		return fmt.Errorf("os.Rename > %w", err)
	}
	return nil
}

func (cache *FileCache) ReadAll(ctx context.Context) ([]CacheEntry, error) {
	files, err := os.ReadDir(cache.rootDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadDir > %w", err)
	}

	entries := make([]CacheEntry, 0, len(files))
	for _, file := range files {
		name := file.Name()
		if file.IsDir() || !strings.HasSuffix(name, cacheFileExtension) {
			continue
		}
		info, err := file.Info()
		if err != nil {
			return nil, fmt.Errorf("file: %s, file.Info > %w", name, err)
		}

		key := LookupKey(strings.TrimSuffix(name, cacheFileExtension))
		contents, err := cache.Read(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("file: %s, cache.Read > %w", name, err)
		}
		entries = append(entries, CacheEntry{
			Key:       key,
			Response:  []byte(contents),
			UpdatedAt: info.ModTime(),
		})
	}

	// newest first
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].UpdatedAt.After(entries[j].UpdatedAt)
	})
	return entries, nil
}

func (cache *FileCache) Delete(_ context.Context, key LookupKey) error {
	if err := os.Remove(cache.filePath(key)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrCacheMiss, key)
		}
		return fmt.Errorf("os.Remove > %w", err)
	}
	return nil
}
