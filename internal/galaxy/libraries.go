package galaxy

import (
	"context"
	"strconv"

	"github.com/openmined/libsync/internal/library"
)

// ListLibraries returns the libraries visible to the api key, deleted or not.
func (c *Client) ListLibraries(ctx context.Context, deleted bool) ([]library.Library, error) {
	var apiResp []libraryResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("deleted", strconv.FormatBool(deleted)).
		SetSuccessResult(&apiResp).
		Get(v1Libraries)

	if err := handleAPIError(resp, err, "list libraries"); err != nil {
		return nil, err
	}

	libs := make([]library.Library, 0, len(apiResp))
	for _, l := range apiResp {
		libs = append(libs, l.toLibrary())
	}
	return libs, nil
}

// CreateLibrary creates a library. Galaxy does not enforce unique names.
func (c *Client) CreateLibrary(ctx context.Context, name, description string) (*library.Library, error) {
	var apiResp libraryResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetRetryCount(0).
		SetBody(&createLibraryRequest{
			Name:        name,
			Description: description,
		}).
		SetSuccessResult(&apiResp).
		Post(v1Libraries)

	if err := handleAPIError(resp, err, "create library"); err != nil {
		return nil, err
	}

	if apiResp.ID == "" {
		return nil, ErrEmptyResponse
	}

	lib := apiResp.toLibrary()
	return &lib, nil
}

func (l libraryResponse) toLibrary() library.Library {
	return library.Library{
		ID:           l.ID,
		Name:         l.Name,
		Description:  l.Description,
		Synopsis:     l.Synopsis,
		Deleted:      l.Deleted,
		RootFolderID: l.RootFolderID,
	}
}
