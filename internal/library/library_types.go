package library

import (
	"strings"
)

const (
	EntryTypeFile   = "file"
	EntryTypeFolder = "folder"

	// RootFolderName is the canonical name of the folder every library starts with.
	RootFolderName = "/"

	pathSeparator = "/"
)

// Library is a Galaxy data library.
type Library struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Description  string `json:"description,omitempty" yaml:"description,omitempty"`
	Synopsis     string `json:"synopsis,omitempty" yaml:"synopsis,omitempty"`
	Deleted      bool   `json:"deleted" yaml:"deleted"`
	RootFolderID string `json:"root_folder_id,omitempty" yaml:"root_folder_id,omitempty"`
}

// Folder is a folder inside a library. Name is the canonical path, e.g. `/genus/species`.
type Folder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Entry is one row of a library content listing.
type Entry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

func (e Entry) IsFile() bool   { return e.Type == EntryTypeFile }
func (e Entry) IsFolder() bool { return e.Type == EntryTypeFolder }

// User is a Galaxy user as seen through its private role.
type User struct {
	ID    string `json:"id"`
	Email string `json:"name"`
}

// LocalPath is a file path relative to the sync root, split into segments.
// The last segment is the file name.
type LocalPath []string

// SplitLocalPath splits a slash separated relative path, dropping empty segments.
func SplitLocalPath(rel string) LocalPath {
	parts := strings.Split(rel, pathSeparator)
	path := make(LocalPath, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			path = append(path, part)
		}
	}
	return path
}

// Canonical returns the library name of the file, `/a/b/file`.
func (p LocalPath) Canonical() string {
	return pathSeparator + strings.Join(p, pathSeparator)
}

// Prefix returns the canonical path of the first depth+1 segments.
func (p LocalPath) Prefix(depth int) string {
	return LocalPath(p[:depth+1]).Canonical()
}

// Rel returns the slash separated relative form, `a/b/file`.
func (p LocalPath) Rel() string {
	return strings.Join(p, pathSeparator)
}

// Name is the file name.
func (p LocalPath) Name() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Dirs is the number of directory segments before the file name.
func (p LocalPath) Dirs() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// SyncRequest is everything a single run needs. It is not modified once built.
type SyncRequest struct {
	// Root is the local directory the LocalPaths are relative to
	Root string
	// LibraryName is the library to resolve or create
	LibraryName string
	// Description is used only when the library has to be created
	Description string
	// Endpoint is the server URL, used to pick the transport
	Endpoint string
}
