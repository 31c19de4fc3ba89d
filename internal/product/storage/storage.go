// Package storage abstracts where uploaded product images live.
package storage

import "io"

// FileStore is the static-file location referenced by product image names.
type FileStore interface {
	// Exists reports whether a file with the given name is present.
	Exists(name string) bool

	// Save writes the content of r under the given name, overwriting any
	// existing file, and returns the number of bytes written.
	Save(name string, r io.Reader) (int64, error)
}
