package library

import (
	"context"
	"fmt"
	"log/slog"
)

// Report summarizes one sync run.
type Report struct {
	Library        *Library
	LibraryCreated bool
	Transport      string
	Paths          int
	FoldersCreated int
	FilesAdded     int
	FilesSkipped   int
}

// Engine is the shared sync used by the directory and RefSeq commands.
type Engine struct {
	Store  Store
	Logger *slog.Logger
}

func NewEngine(store Store, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{Store: store, Logger: logger}
}

// Sync resolves the library and reconciles paths in order. It stops at the
// first failing path and returns the report so far together with a *SyncError.
func (e *Engine) Sync(ctx context.Context, req SyncRequest, paths []LocalPath) (*Report, error) {
	log := e.Logger.With("library", req.LibraryName)

	lib, created, err := Resolve(ctx, e.Store, req.LibraryName, req.Description)
	if err != nil {
		return nil, err
	}
	if created {
		log.Debug("library doesn't exist, created", "id", lib.ID)
	} else {
		log.Debug("library exists, checking it is up to date", "id", lib.ID)
	}

	cache, err := LoadCache(ctx, e.Store, lib)
	if err != nil {
		return nil, fmt.Errorf("load library %s: %w", lib.Name, err)
	}
	log.Debug("library loaded", "folders", cache.Folders(), "files", cache.Files())

	transport := SelectTransport(req.Endpoint)
	report := &Report{
		Library:        lib,
		LibraryCreated: created,
		Transport:      transport.Name(),
		Paths:          len(paths),
	}

	r := &Reconciler{
		Store:     e.Store,
		Cache:     cache,
		Library:   lib,
		Transport: transport,
		Root:      req.Root,
		Logger:    log,
	}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return report, &SyncError{Path: path.Canonical(), Err: err}
		}

		res, err := r.Reconcile(ctx, path)
		report.FoldersCreated += len(res.FoldersCreated)
		if err != nil {
			return report, &SyncError{Path: path.Canonical(), Err: err}
		}

		if res.FileAdded {
			report.FilesAdded++
		} else {
			report.FilesSkipped++
		}
	}

	log.Info("sync complete",
		"transport", report.Transport,
		"folders_created", report.FoldersCreated,
		"files_added", report.FilesAdded,
		"files_skipped", report.FilesSkipped,
	)
	return report, nil
}
