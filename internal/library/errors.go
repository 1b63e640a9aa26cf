package library

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("library: directory not found")
	ErrGenusNotFound    = errors.New("library: no genomes for genus")
	ErrSpeciesNotFound  = errors.New("library: no genomes for species")
	ErrLibraryNotFound  = errors.New("library: library not found")
	ErrFolderNotCreated = errors.New("library: folder not created")
	ErrInvalidPath      = errors.New("library: invalid path")
)

// ConfigurationError is returned for bad local input, before any remote call is made.
type ConfigurationError struct {
	Field string
	Value string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// IsConfigurationError reports whether err came from validating local input.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

// SyncError marks the path a run stopped at. Everything before it was already synced,
// and running again picks up from here.
type SyncError struct {
	Path string
	Err  error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync %s: %v", e.Path, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}
