package galaxy

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/imroc/req/v3"
	"github.com/openmined/libsync/internal/library"
	"github.com/openmined/libsync/internal/utils"
)

// ListContents returns every folder and dataset of the library, named by canonical path.
func (c *Client) ListContents(ctx context.Context, libraryID string) ([]library.Entry, error) {
	var apiResp []contentResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("library_id", libraryID).
		SetSuccessResult(&apiResp).
		Get(v1LibraryContents)

	if err := handleAPIError(resp, err, "list library contents"); err != nil {
		return nil, err
	}

	entries := make([]library.Entry, 0, len(apiResp))
	for _, item := range apiResp {
		entries = append(entries, library.Entry{ID: item.ID, Name: item.Name, Type: item.Type})
	}
	return entries, nil
}

// ListFolders returns the folders of the library. A non-empty name keeps only that exact folder.
func (c *Client) ListFolders(ctx context.Context, libraryID, name string) ([]library.Folder, error) {
	entries, err := c.ListContents(ctx, libraryID)
	if err != nil {
		return nil, err
	}

	var folders []library.Folder
	for _, e := range entries {
		if !e.IsFolder() {
			continue
		}
		if name != "" && e.Name != name {
			continue
		}
		folders = append(folders, library.Folder{ID: e.ID, Name: e.Name})
	}
	return folders, nil
}

// CreateFolder creates a folder named name under parentID.
// The returned folder carries the display name, not the canonical path.
func (c *Client) CreateFolder(ctx context.Context, libraryID, name, parentID string) (*library.Folder, error) {
	var apiResp []contentResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetRetryCount(0).
		SetPathParam("library_id", libraryID).
		SetBody(&createFolderRequest{
			FolderID:   parentID,
			Name:       name,
			CreateType: createTypeFolder,
		}).
		SetSuccessResult(&apiResp).
		Post(v1LibraryContents)

	if err := handleAPIError(resp, err, "create folder"); err != nil {
		return nil, err
	}

	if len(apiResp) == 0 || apiResp[0].ID == "" {
		return nil, fmt.Errorf("create folder %s: %w", name, ErrEmptyResponse)
	}

	return &library.Folder{ID: apiResp[0].ID, Name: apiResp[0].Name}, nil
}

// LinkFile asks the server to reference localPath from its own filesystem without copying.
func (c *Client) LinkFile(ctx context.Context, libraryID, folderID, localPath string) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetRetryCount(0).
		SetPathParam("library_id", libraryID).
		SetBody(&linkFilesRequest{
			FolderID:        folderID,
			CreateType:      createTypeFile,
			FileType:        fileTypeAuto,
			Dbkey:           dbkeyUnknown,
			UploadOption:    uploadOptionPaths,
			FilesystemPaths: localPath,
			LinkDataOnly:    linkToFiles,
		}).
		Post(v1LibraryContents)

	return handleAPIError(resp, err, "link file")
}

// UploadFile streams localPath to the server as a multipart upload.
func (c *Client) UploadFile(ctx context.Context, libraryID, folderID, localPath string) error {
	if !utils.FileExists(localPath) {
		return fmt.Errorf("%w: %s", ErrFileNotFound, localPath)
	}

	info, err := os.Stat(localPath)
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}

	name := filepath.Base(localPath)
	slog.Debug("uploading file", "path", localPath, "size", humanize.Bytes(uint64(info.Size())))

	resp, err := c.client.R().
		SetContext(ctx).
		SetRetryCount(0).
		SetPathParam("library_id", libraryID).
		SetFormData(map[string]string{
			"folder_id":     folderID,
			"create_type":   createTypeFile,
			"file_type":     fileTypeAuto,
			"dbkey":         dbkeyUnknown,
			"upload_option": uploadOptionFile,
		}).
		SetFile(uploadFileField, localPath).
		SetUploadCallbackWithInterval(func(info req.UploadInfo) {
			// small files finish before the first tick
			if info.FileSize < 1024*1024 {
				return
			}
			slog.Debug("upload progress", "file", name,
				"uploaded", humanize.Bytes(uint64(info.UploadedSize)),
				"total", humanize.Bytes(uint64(info.FileSize)))
		}, time.Second).
		Post(v1LibraryContents)

	return handleAPIError(resp, err, "upload file")
}
