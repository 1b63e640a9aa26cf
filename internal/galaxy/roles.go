package galaxy

import (
	"context"

	"github.com/openmined/libsync/internal/library"
)

// ListUsers returns the roles visible to the api key. A user's private role is
// named after their email, which is what permission edits match on.
func (c *Client) ListUsers(ctx context.Context) ([]library.User, error) {
	var apiResp []roleResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetSuccessResult(&apiResp).
		Get(v1Roles)

	if err := handleAPIError(resp, err, "list roles"); err != nil {
		return nil, err
	}

	users := make([]library.User, 0, len(apiResp))
	for _, r := range apiResp {
		users = append(users, library.User{ID: r.ID, Email: r.Name})
	}
	return users, nil
}
