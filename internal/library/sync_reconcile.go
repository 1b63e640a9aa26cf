package library

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
)

// ReconcileResult describes what one path needed.
type ReconcileResult struct {
	Path           string
	FoldersCreated []string
	FileAdded      bool
}

// Reconciler mirrors local paths into a library, creating what is missing and
// never touching what already exists. Paths must be reconciled one at a time
// since each call relies on the cache entries of the calls before it.
type Reconciler struct {
	Store     Store
	Cache     *Cache
	Library   *Library
	Transport Transport
	// Root is prefixed to each LocalPath to find the file on disk
	Root   string
	Logger *slog.Logger
}

func (r *Reconciler) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

// RootFolder returns the `/` folder of the library.
func (r *Reconciler) RootFolder() (Folder, error) {
	if f, ok := r.Cache.Folder(RootFolderName); ok {
		return f, nil
	}
	if r.Library.RootFolderID != "" {
		f := Folder{ID: r.Library.RootFolderID, Name: RootFolderName}
		r.Cache.AddFolder(f)
		return f, nil
	}
	return Folder{}, fmt.Errorf("library %s has no root folder: %w", r.Library.Name, ErrFolderNotCreated)
}

// Reconcile walks the directory segments of path top-down, creating each
// missing folder under its parent, then adds the file if the library lacks it.
func (r *Reconciler) Reconcile(ctx context.Context, path LocalPath) (ReconcileResult, error) {
	res := ReconcileResult{Path: path.Canonical()}
	if len(path) == 0 {
		return res, ErrInvalidPath
	}
	for _, seg := range path {
		if seg == "" {
			return res, ErrInvalidPath
		}
	}

	log := r.logger()

	current, err := r.RootFolder()
	if err != nil {
		return res, err
	}

	for d := 0; d < path.Dirs(); d++ {
		canonical := path.Prefix(d)

		if folder, ok := r.Cache.Folder(canonical); ok {
			log.Debug("folder exists", "path", canonical)
			current = folder
			continue
		}

		log.Debug("creating folder", "path", canonical, "parent", current.Name)
		created, err := r.Store.CreateFolder(ctx, r.Library.ID, path[d], current.ID)
		if err != nil {
			return res, fmt.Errorf("create folder %s: %w", canonical, err)
		}
		if created == nil || created.ID == "" {
			return res, fmt.Errorf("create folder %s: %w", canonical, ErrFolderNotCreated)
		}

		current = Folder{ID: created.ID, Name: canonical}
		r.Cache.AddFolder(current)
		res.FoldersCreated = append(res.FoldersCreated, canonical)
	}

	canonical := path.Canonical()
	if r.Cache.FileExists(canonical) {
		log.Debug("file exists, skipping", "path", canonical)
		return res, nil
	}

	localPath := filepath.Join(r.Root, filepath.FromSlash(path.Rel()))
	log.Debug("adding file", "path", canonical, "folder", current.Name, "transport", r.Transport.Name())
	if err := r.Transport.AddFile(ctx, r.Store, r.Library, current, localPath); err != nil {
		return res, fmt.Errorf("%s file %s: %w", r.Transport.Name(), canonical, err)
	}

	r.Cache.AddFile(canonical)
	res.FileAdded = true
	return res, nil
}
