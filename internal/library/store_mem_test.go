package library

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
)

var errInjected = errors.New("injected failure")

type memFolder struct {
	Folder
	parentID string
}

type memLibrary struct {
	lib     Library
	folders []memFolder
	files   map[string]string // canonical name -> local path
	perms   Permissions
}

// memStore is an in-memory Store that mimics Galaxy's naming: folder names come
// back from listings as canonical paths and files as `/folder/.../name`.
type memStore struct {
	libs  []*memLibrary
	users []User
	seq   int

	linked   []string
	uploaded []string

	createLibraryCalls int
	createFolderCalls  int
	setPermsCalls      int

	// failAddAfter makes the n-th file add fail, counting from 1.
	failAddAfter int
	adds         int
}

func newMemStore() *memStore {
	return &memStore{}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s%d", prefix, m.seq)
}

func (m *memStore) addLibrary(name string, deleted bool) *memLibrary {
	root := memFolder{Folder: Folder{ID: m.nextID("F"), Name: RootFolderName}}
	ml := &memLibrary{
		lib:     Library{ID: m.nextID("L"), Name: name, Deleted: deleted, RootFolderID: root.ID},
		folders: []memFolder{root},
		files:   map[string]string{},
		perms:   NewPermissions(),
	}
	m.libs = append(m.libs, ml)
	return ml
}

func (m *memStore) library(id string) (*memLibrary, error) {
	for _, ml := range m.libs {
		if ml.lib.ID == id {
			return ml, nil
		}
	}
	return nil, fmt.Errorf("library %s: %w", id, ErrLibraryNotFound)
}

func (ml *memLibrary) folderByID(id string) (memFolder, bool) {
	for _, f := range ml.folders {
		if f.ID == id {
			return f, true
		}
	}
	return memFolder{}, false
}

func (ml *memLibrary) folderNames() []string {
	names := make([]string, 0, len(ml.folders))
	for _, f := range ml.folders {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}

func (ml *memLibrary) fileNames() []string {
	names := make([]string, 0, len(ml.files))
	for n := range ml.files {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (m *memStore) ListLibraries(ctx context.Context, deleted bool) ([]Library, error) {
	var out []Library
	for _, ml := range m.libs {
		if ml.lib.Deleted == deleted {
			out = append(out, ml.lib)
		}
	}
	return out, nil
}

func (m *memStore) CreateLibrary(ctx context.Context, name, description string) (*Library, error) {
	m.createLibraryCalls++
	ml := m.addLibrary(name, false)
	ml.lib.Description = description
	lib := ml.lib
	return &lib, nil
}

func (m *memStore) ListFolders(ctx context.Context, libraryID, name string) ([]Folder, error) {
	ml, err := m.library(libraryID)
	if err != nil {
		return nil, err
	}
	var out []Folder
	for _, f := range ml.folders {
		if name == "" || f.Name == name {
			out = append(out, f.Folder)
		}
	}
	return out, nil
}

func (m *memStore) CreateFolder(ctx context.Context, libraryID, name, parentID string) (*Folder, error) {
	m.createFolderCalls++
	ml, err := m.library(libraryID)
	if err != nil {
		return nil, err
	}
	parent, ok := ml.folderByID(parentID)
	if !ok {
		return nil, fmt.Errorf("parent folder %s not found", parentID)
	}
	f := memFolder{
		Folder:   Folder{ID: m.nextID("F"), Name: path.Join(parent.Name, name)},
		parentID: parentID,
	}
	ml.folders = append(ml.folders, f)
	// Galaxy answers with the display name, not the canonical one
	return &Folder{ID: f.ID, Name: name}, nil
}

func (m *memStore) ListContents(ctx context.Context, libraryID string) ([]Entry, error) {
	ml, err := m.library(libraryID)
	if err != nil {
		return nil, err
	}
	var out []Entry
	for _, f := range ml.folders {
		out = append(out, Entry{ID: f.ID, Name: f.Name, Type: EntryTypeFolder})
	}
	for _, n := range ml.fileNames() {
		out = append(out, Entry{ID: "D" + n, Name: n, Type: EntryTypeFile})
	}
	return out, nil
}

func (m *memStore) addFile(libraryID, folderID, localPath string) error {
	m.adds++
	if m.failAddAfter > 0 && m.adds == m.failAddAfter {
		return errInjected
	}
	ml, err := m.library(libraryID)
	if err != nil {
		return err
	}
	folder, ok := ml.folderByID(folderID)
	if !ok {
		return fmt.Errorf("folder %s not found", folderID)
	}
	ml.files[path.Join(folder.Name, path.Base(localPath))] = localPath
	return nil
}

func (m *memStore) LinkFile(ctx context.Context, libraryID, folderID, localPath string) error {
	if err := m.addFile(libraryID, folderID, localPath); err != nil {
		return err
	}
	m.linked = append(m.linked, localPath)
	return nil
}

func (m *memStore) UploadFile(ctx context.Context, libraryID, folderID, localPath string) error {
	if err := m.addFile(libraryID, folderID, localPath); err != nil {
		return err
	}
	m.uploaded = append(m.uploaded, localPath)
	return nil
}

func (m *memStore) GetPermissions(ctx context.Context, libraryID string) (Permissions, error) {
	ml, err := m.library(libraryID)
	if err != nil {
		return nil, err
	}
	return ml.perms.Clone(), nil
}

func (m *memStore) SetPermissions(ctx context.Context, libraryID string, perms Permissions) error {
	m.setPermsCalls++
	ml, err := m.library(libraryID)
	if err != nil {
		return err
	}
	ml.perms = perms.Clone()
	return nil
}

func (m *memStore) ListUsers(ctx context.Context) ([]User, error) {
	return m.users, nil
}

var _ Store = (*memStore)(nil)
