package library

import (
	"context"
	"errors"
	"fmt"
)

// Find returns the first non-deleted library with exactly this name.
// Libraries sharing a name are not told apart: the listing order decides.
func Find(ctx context.Context, store Store, name string) (*Library, error) {
	libs, err := store.ListLibraries(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("list libraries: %w", err)
	}

	for i := range libs {
		if libs[i].Deleted {
			continue
		}
		if libs[i].Name == name {
			return &libs[i], nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrLibraryNotFound, name)
}

// Resolve finds the library by name or creates it. The bool reports whether it was created.
func Resolve(ctx context.Context, store Store, name, description string) (*Library, bool, error) {
	lib, err := Find(ctx, store, name)
	if err == nil {
		return lib, false, nil
	}
	if !errors.Is(err, ErrLibraryNotFound) {
		return nil, false, err
	}

	lib, err = store.CreateLibrary(ctx, name, description)
	if err != nil {
		return nil, false, fmt.Errorf("create library %s: %w", name, err)
	}

	return lib, true, nil
}

// DirectoryDescription is the description of libraries made from a directory.
func DirectoryDescription(name string) string {
	return "Data library created from directory: " + name
}

// RefSeqDescription is the description of libraries made from RefSeq genomes.
func RefSeqDescription(name string) string {
	return "Reference genomes for " + name
}
