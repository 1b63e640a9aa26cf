package library

import "context"

// Store is the set of remote operations the sync needs.
// galaxy.Client implements it against a Galaxy server.
type Store interface {
	ListLibraries(ctx context.Context, deleted bool) ([]Library, error)
	CreateLibrary(ctx context.Context, name, description string) (*Library, error)

	// ListFolders returns every folder of the library, or only the folder with
	// the exact canonical name when name is non-empty.
	ListFolders(ctx context.Context, libraryID, name string) ([]Folder, error)
	CreateFolder(ctx context.Context, libraryID, name, parentID string) (*Folder, error)
	ListContents(ctx context.Context, libraryID string) ([]Entry, error)

	// LinkFile registers a path on the server's filesystem without copying it.
	LinkFile(ctx context.Context, libraryID, folderID, localPath string) error
	// UploadFile sends the contents of localPath.
	UploadFile(ctx context.Context, libraryID, folderID, localPath string) error

	GetPermissions(ctx context.Context, libraryID string) (Permissions, error)
	SetPermissions(ctx context.Context, libraryID string, perms Permissions) error
	ListUsers(ctx context.Context) ([]User, error)
}
