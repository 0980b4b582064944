package storage

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// Storage archives raw model replies and the inputs that produced them
type Storage interface {
	// Upload stores data and returns the storage path
	Upload(ctx context.Context, analysisID uuid.UUID, name string, data []byte) (string, error)

	// Download retrieves an object by storage path
	Download(ctx context.Context, storagePath string) (io.ReadCloser, error)

	// Delete removes an object by storage path
	Delete(ctx context.Context, storagePath string) error
}

// ErrNotFound is returned by Download when no object exists at the path
var ErrNotFound = errors.New("archived object not found")

// StorageType represents the storage backend type
type StorageType string

const (
	StorageTypeLocal StorageType = "local"
	StorageTypeS3    StorageType = "s3"
)

// StorageConfig holds configuration for storage
type StorageConfig struct {
	Type         StorageType `yaml:"type"`
	LocalPath    string      `yaml:"local_path"` // For local storage
	S3Bucket     string      `yaml:"s3_bucket"`  // For S3 storage
	S3Region     string      `yaml:"s3_region"`  // For S3 storage
	AWSAccessKey string      `yaml:"-"`
	AWSSecretKey string      `yaml:"-"`
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(cfg StorageConfig) (Storage, error) {
	switch cfg.Type {
	case StorageTypeLocal:
		return NewLocalStorage(cfg.LocalPath)
	case StorageTypeS3:
		if cfg.S3Bucket == "" {
			return nil, errors.New("AWS_S3_BUCKET is required for S3 storage")
		}
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// ContentKey returns the BLAKE2b-256 digest of data, hex encoded
func ContentKey(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// generateStoragePath places an object under its analysis id and tags it
// with a prefix of its content key, so identical uploads share a path
func generateStoragePath(analysisID uuid.UUID, name string, data []byte) string {
	ext := filepath.Ext(name)
	baseName := strings.TrimSuffix(name, ext)
	// Sanitize name
	baseName = strings.ReplaceAll(baseName, " ", "_")
	baseName = strings.ReplaceAll(baseName, "/", "_")
	baseName = strings.ReplaceAll(baseName, "\\", "_")
	baseName = strings.ReplaceAll(baseName, "..", "_")

	id := analysisID.String()
	return fmt.Sprintf("%s/%s/%s_%s%s", id[:2], id, baseName, ContentKey(data)[:16], ext)
}

// getContentType determines content type from name
func getContentType(name string) string {
	switch filepath.Ext(name) {
	case ".json":
		return "application/json"
	case ".txt", ".md":
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
