// Package resource reads route-mapped files fully into memory. There is
// no partial-content or streaming support: a resource loads whole or the
// load fails.
package resource

import (
	"io"
	"os"

	"github.com/picoserv/staticd/httperr"
)

// Loader performs whole-file reads from the local filesystem.
type Loader struct{}

// NewLoader creates a new Loader instance
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the named resource into one contiguous buffer and returns
// the contents with their byte length. Failures are typed: OpenFailure
// when the file cannot be opened, ReadFailure when reading aborts, and
// ShortRead when fewer bytes arrive than the file's reported size.
func (l *Loader) Load(name string) ([]byte, int64, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, 0, httperr.NewStorageError(httperr.OpenFailure, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, 0, httperr.NewStorageError(httperr.ReadFailure, err)
	}

	contents, err := io.ReadAll(f)
	if err != nil {
		return nil, 0, httperr.NewStorageError(httperr.ReadFailure, err)
	}
	if int64(len(contents)) < info.Size() {
		return nil, 0, httperr.NewStorageError(httperr.ShortRead, nil)
	}

	return contents, int64(len(contents)), nil
}
