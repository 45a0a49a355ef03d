// Package storage abstracts where product images live.
//
// Two drivers ship out of the box:
//   - "local": local filesystem (default, served under /storage)
//   - "s3": S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// Quick start:
//
//	storage.Connect() // boot once at startup
//
//	storage.Put("products/bowl.jpg", data)
//	url := storage.URL("products/bowl.jpg")
//
//	storage.Use("s3").Put("backups/dump.sql.gz", data)
package storage

import "io"

// Disk is the driver interface.
type Disk interface {
	// Put writes content to path, creating parents as needed.
	Put(path string, content []byte) error

	// PutStream writes from r to path.
	PutStream(path string, r io.Reader) error

	// Get returns the full content of the file at path.
	Get(path string) ([]byte, error)

	// GetStream returns a ReadCloser for the file. Caller must close it.
	GetStream(path string) (io.ReadCloser, error)

	// Exists reports whether a file exists at path.
	Exists(path string) bool

	// Missing is the inverse of Exists.
	Missing(path string) bool

	// Size returns the byte size of the file.
	Size(path string) (int64, error)

	// URL returns the public URL for path.
	URL(path string) string

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(path string) error

	// Copy creates a copy of src at dst.
	Copy(src, dst string) error

	// Move renames src to dst.
	Move(src, dst string) error

	// Files lists files directly inside directory (non-recursive).
	Files(directory string) ([]string, error)

	// AllFiles lists all files inside directory, recursively.
	AllFiles(directory string) ([]string, error)
}
