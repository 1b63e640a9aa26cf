package library

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// Category is one of the four library permission lists.
type Category string

const (
	CategoryView              Category = "view"
	CategoryAddFiles          Category = "add-files"
	CategoryEditInfo          Category = "edit-info"
	CategoryManagePermissions Category = "manage-permissions"
)

// Categories in the order they are written back.
var Categories = []Category{CategoryView, CategoryAddFiles, CategoryEditInfo, CategoryManagePermissions}

// RoleList is the key Galaxy uses for the category in permission payloads.
func (c Category) RoleList() string {
	switch c {
	case CategoryView:
		return "access_library_role_list"
	case CategoryAddFiles:
		return "add_library_item_role_list"
	case CategoryEditInfo:
		return "modify_library_role_list"
	case CategoryManagePermissions:
		return "manage_library_role_list"
	}
	return ""
}

// CategoryFromRoleList is the inverse of Category.RoleList.
func CategoryFromRoleList(key string) (Category, bool) {
	for _, c := range Categories {
		if c.RoleList() == key {
			return c, true
		}
	}
	return "", false
}

// Permissions maps each category to the role IDs granted it.
type Permissions map[Category]mapset.Set[string]

func NewPermissions() Permissions {
	p := make(Permissions, len(Categories))
	for _, c := range Categories {
		p[c] = mapset.NewThreadUnsafeSet[string]()
	}
	return p
}

// IDs returns the sorted role IDs of a category.
func (p Permissions) IDs(c Category) []string {
	set, ok := p[c]
	if !ok || set == nil {
		return []string{}
	}
	ids := set.ToSlice()
	sort.Strings(ids)
	return ids
}

// Clone returns a deep copy with every category present.
func (p Permissions) Clone() Permissions {
	out := NewPermissions()
	for c, set := range p {
		if set == nil {
			continue
		}
		if out[c] == nil {
			out[c] = mapset.NewThreadUnsafeSet[string]()
		}
		out[c].Append(set.ToSlice()...)
	}
	return out
}

// MergePermissions grants ids to the given categories, replacing their current
// grantees when reset is set. Other categories are carried over unchanged.
func MergePermissions(existing Permissions, ids []string, categories []Category, reset bool) Permissions {
	merged := existing.Clone()
	for _, c := range categories {
		if reset {
			merged[c] = mapset.NewThreadUnsafeSet(ids...)
			continue
		}
		merged[c].Append(ids...)
	}
	return merged
}

// ResolveUsers maps emails to user IDs. Matching ignores case and surrounding space.
// Emails with no user are returned in missing.
func ResolveUsers(users []User, emails []string) (ids []string, missing []string) {
	byEmail := make(map[string]string, len(users))
	for _, u := range users {
		key := strings.ToLower(strings.TrimSpace(u.Email))
		if _, ok := byEmail[key]; !ok {
			byEmail[key] = u.ID
		}
	}

	for _, email := range emails {
		if id, ok := byEmail[strings.ToLower(strings.TrimSpace(email))]; ok {
			ids = append(ids, id)
		} else {
			missing = append(missing, email)
		}
	}
	return ids, missing
}

// PermissionRequest is one permissions edit on an existing library.
type PermissionRequest struct {
	LibraryName string
	Emails      []string
	Categories  []Category
	Reset       bool
}

// EditPermissions applies req to its library in a single write. The library must exist.
func EditPermissions(ctx context.Context, store Store, req PermissionRequest, logger *slog.Logger) (Permissions, error) {
	if logger == nil {
		logger = slog.Default()
	}

	lib, err := Find(ctx, store, strings.TrimSpace(req.LibraryName))
	if err != nil {
		return nil, err
	}
	logger.Debug("library found", "library", lib.Name, "id", lib.ID)

	existing, err := store.GetPermissions(ctx, lib.ID)
	if err != nil {
		return nil, fmt.Errorf("get permissions: %w", err)
	}

	users, err := store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	ids, missing := ResolveUsers(users, req.Emails)
	for _, email := range missing {
		logger.Warn("user not found", "email", email)
	}
	logger.Debug("users resolved", "found", len(ids), "missing", len(missing))

	merged := MergePermissions(existing, ids, req.Categories, req.Reset)
	for _, c := range Categories {
		logger.Debug("permissions", "category", string(c), "roles", merged.IDs(c))
	}

	if err := store.SetPermissions(ctx, lib.ID, merged); err != nil {
		return nil, fmt.Errorf("set permissions: %w", err)
	}

	return merged, nil
}
