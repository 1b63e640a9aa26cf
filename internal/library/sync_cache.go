package library

import (
	"context"
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
)

// Cache is the per-run view of what already exists in a library.
// The reconciler records every folder and file it creates, so later paths
// in the same run see them without asking the server again.
type Cache struct {
	folders map[string]Folder
	files   mapset.Set[string]
}

func NewCache() *Cache {
	return &Cache{
		folders: make(map[string]Folder),
		files:   mapset.NewThreadUnsafeSet[string](),
	}
}

// LoadCache snapshots the folders and files of a library.
func LoadCache(ctx context.Context, store Store, lib *Library) (*Cache, error) {
	folders, err := store.ListFolders(ctx, lib.ID, "")
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}

	contents, err := store.ListContents(ctx, lib.ID)
	if err != nil {
		return nil, fmt.Errorf("list contents: %w", err)
	}

	c := NewCache()
	for _, f := range folders {
		c.AddFolder(f)
	}
	for _, e := range contents {
		if e.IsFile() {
			c.AddFile(e.Name)
		}
	}

	return c, nil
}

func (c *Cache) FolderExists(path string) bool {
	_, ok := c.folders[path]
	return ok
}

// Folder returns the folder with the exact canonical name.
func (c *Cache) Folder(path string) (Folder, bool) {
	f, ok := c.folders[path]
	return f, ok
}

func (c *Cache) FileExists(path string) bool {
	return c.files.Contains(path)
}

func (c *Cache) AddFolder(f Folder) {
	// first listed wins when the server holds duplicates
	if _, ok := c.folders[f.Name]; !ok {
		c.folders[f.Name] = f
	}
}

func (c *Cache) AddFile(path string) {
	c.files.Add(path)
}

func (c *Cache) Folders() int { return len(c.folders) }
func (c *Cache) Files() int   { return c.files.Cardinality() }
