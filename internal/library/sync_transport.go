package library

import (
	"context"

	"github.com/openmined/libsync/internal/utils"
)

// Transport adds one local file into a library folder.
type Transport interface {
	AddFile(ctx context.Context, store Store, lib *Library, folder Folder, localPath string) error
	Name() string
}

// LinkTransport registers files that the server can already see on its filesystem.
type LinkTransport struct{}

func (LinkTransport) AddFile(ctx context.Context, store Store, lib *Library, folder Folder, localPath string) error {
	return store.LinkFile(ctx, lib.ID, folder.ID, localPath)
}

func (LinkTransport) Name() string { return "link" }

// UploadTransport sends file contents to a remote server.
type UploadTransport struct{}

func (UploadTransport) AddFile(ctx context.Context, store Store, lib *Library, folder Folder, localPath string) error {
	return store.UploadFile(ctx, lib.ID, folder.ID, localPath)
}

func (UploadTransport) Name() string { return "upload" }

// SelectTransport links when the server runs on this host and uploads otherwise.
func SelectTransport(endpoint string) Transport {
	if utils.IsLoopbackURL(endpoint) {
		return LinkTransport{}
	}
	return UploadTransport{}
}
