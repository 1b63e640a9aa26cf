package galaxy

import (
	"context"

	"github.com/openmined/libsync/internal/library"
)

const actionSetPermissions = "set_permissions"

// GetPermissions returns the role IDs of each permission category.
func (c *Client) GetPermissions(ctx context.Context, libraryID string) (library.Permissions, error) {
	var apiResp permissionsResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("library_id", libraryID).
		SetSuccessResult(&apiResp).
		Get(v1LibraryPermission)

	if err := handleAPIError(resp, err, "get library permissions"); err != nil {
		return nil, err
	}

	perms := library.NewPermissions()
	for key, pairs := range apiResp {
		category, ok := library.CategoryFromRoleList(key)
		if !ok {
			continue
		}
		for _, pair := range pairs {
			// [email, role id]
			if len(pair) < 2 {
				continue
			}
			perms[category].Add(pair[1])
		}
	}
	return perms, nil
}

// SetPermissions writes all four categories in one request.
func (c *Client) SetPermissions(ctx context.Context, libraryID string, perms library.Permissions) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetRetryCount(0).
		SetPathParam("library_id", libraryID).
		SetBody(&setPermissionsRequest{
			Action:    actionSetPermissions,
			AccessIDs: perms.IDs(library.CategoryView),
			AddIDs:    perms.IDs(library.CategoryAddFiles),
			ModifyIDs: perms.IDs(library.CategoryEditInfo),
			ManageIDs: perms.IDs(library.CategoryManagePermissions),
		}).
		Post(v1LibraryPermission)

	return handleAPIError(resp, err, "set library permissions")
}
