package storage

import "io"

// Backend is the interface that wraps the basic file operations.
type Backend interface {
	// Name returns the name of the backend implementation.
	Name() string

	// Reader returns a ReadCloser of the file.
	Reader(container, object string) (io.ReadCloser, error)
	// Writer returns a WriteCloser of the file.
	Writer(container, object string) (io.WriteCloser, error)
	// Exist checks the presence of the file.
	Exist(container, object string) bool

	// Remove deletes the given file.
	Remove(container, object string) error
	// Cleanup cleans useless artifacts in storage.
	Cleanup() error
}
