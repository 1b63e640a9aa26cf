package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path"
	"sync"
	"testing"
)

const testKey = "41af1965d4573a6e"

type fakeEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type fakeLibrary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Deleted      bool   `json:"deleted"`
	RootFolderID string `json:"root_folder_id"`

	contents []fakeEntry
	perms    map[string][]string
}

// fakeGalaxy is an in-memory Galaxy serving the library endpoints under /galaxy.
type fakeGalaxy struct {
	mu        sync.Mutex
	seq       int
	libraries []*fakeLibrary
	roles     map[string]string // email -> role id
	linked    []string
	requests  int

	srv *httptest.Server
}

func newFakeGalaxy(t *testing.T) *fakeGalaxy {
	t.Helper()
	g := &fakeGalaxy{roles: map[string]string{}}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/libraries", g.listLibraries)
	mux.HandleFunc("POST /api/libraries", g.createLibrary)
	mux.HandleFunc("GET /api/libraries/{id}/contents", g.listContents)
	mux.HandleFunc("POST /api/libraries/{id}/contents", g.createContent)
	mux.HandleFunc("GET /api/libraries/{id}/permissions", g.getPermissions)
	mux.HandleFunc("POST /api/libraries/{id}/permissions", g.setPermissions)
	mux.HandleFunc("GET /api/roles", g.listRoles)

	root := http.NewServeMux()
	root.Handle("/galaxy/", http.StripPrefix("/galaxy", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		g.mu.Lock()
		g.requests++
		g.mu.Unlock()
		if r.Header.Get("x-api-key") != testKey {
			writeJSON(w, http.StatusForbidden, map[string]any{"err_msg": "Provided API key is not valid.", "err_code": 403001})
			return
		}
		mux.ServeHTTP(w, r)
	})))

	g.srv = httptest.NewServer(root)
	t.Cleanup(g.srv.Close)
	return g
}

func (g *fakeGalaxy) URL() string {
	return g.srv.URL + "/galaxy/"
}

// addLibrary seeds a library with just its root folder.
func (g *fakeGalaxy) addLibrary(name string) *fakeLibrary {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.newLibraryLocked(name, "")
}

func (g *fakeGalaxy) addRole(email string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	id := fmt.Sprintf("r%d", g.seq)
	g.roles[email] = id
	return id
}

func (g *fakeGalaxy) library(name string) *fakeLibrary {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, l := range g.libraries {
		if l.Name == name {
			return l
		}
	}
	return nil
}

func (g *fakeGalaxy) libraryCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.libraries)
}

func (g *fakeGalaxy) linkedPaths() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.linked...)
}

func (g *fakeGalaxy) requestCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.requests
}

// entryNames returns the canonical names in the library, in creation order.
func (l *fakeLibrary) entryNames(kind string) []string {
	var names []string
	for _, e := range l.contents {
		if e.Type == kind && e.Name != "/" {
			names = append(names, e.Name)
		}
	}
	return names
}

func (g *fakeGalaxy) newLibraryLocked(name, description string) *fakeLibrary {
	g.seq++
	id := fmt.Sprintf("lib%d", g.seq)
	l := &fakeLibrary{
		ID:           id,
		Name:         name,
		Description:  description,
		RootFolderID: "F" + id,
		contents:     []fakeEntry{{ID: "F" + id, Name: "/", Type: "folder"}},
		perms:        map[string][]string{},
	}
	g.libraries = append(g.libraries, l)
	return l
}

func (g *fakeGalaxy) findLocked(id string) *fakeLibrary {
	for _, l := range g.libraries {
		if l.ID == id {
			return l
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]any{"err_msg": "library not found", "err_code": 404001})
}

func (g *fakeGalaxy) listLibraries(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	defer g.mu.Unlock()
	deleted := r.URL.Query().Get("deleted") == "true"
	out := []*fakeLibrary{}
	for _, l := range g.libraries {
		if l.Deleted == deleted {
			out = append(out, l)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (g *fakeGalaxy) createLibrary(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"err_msg": err.Error()})
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	writeJSON(w, http.StatusOK, g.newLibraryLocked(body.Name, body.Description))
}

func (g *fakeGalaxy) listContents(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	defer g.mu.Unlock()
	l := g.findLocked(r.PathValue("id"))
	if l == nil {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, l.contents)
}

func (g *fakeGalaxy) createContent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FolderID        string `json:"folder_id"`
		Name            string `json:"name"`
		CreateType      string `json:"create_type"`
		FilesystemPaths string `json:"filesystem_paths"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"err_msg": err.Error()})
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	l := g.findLocked(r.PathValue("id"))
	if l == nil {
		notFound(w)
		return
	}

	parent := ""
	for _, e := range l.contents {
		if e.ID == body.FolderID && e.Type == "folder" {
			parent = e.Name
		}
	}
	if parent == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"err_msg": "invalid folder id"})
		return
	}

	g.seq++
	switch body.CreateType {
	case "folder":
		e := fakeEntry{ID: fmt.Sprintf("F%d", g.seq), Name: path.Join(parent, body.Name), Type: "folder"}
		l.contents = append(l.contents, e)
		// the create response carries the display name
		writeJSON(w, http.StatusOK, []map[string]string{{"id": e.ID, "name": body.Name}})
	case "file":
		e := fakeEntry{ID: fmt.Sprintf("d%d", g.seq), Name: path.Join(parent, path.Base(body.FilesystemPaths)), Type: "file"}
		l.contents = append(l.contents, e)
		g.linked = append(g.linked, body.FilesystemPaths)
		writeJSON(w, http.StatusOK, []map[string]string{{"id": e.ID, "name": path.Base(body.FilesystemPaths)}})
	default:
		writeJSON(w, http.StatusBadRequest, map[string]any{"err_msg": "unknown create_type"})
	}
}

func (g *fakeGalaxy) getPermissions(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	defer g.mu.Unlock()
	l := g.findLocked(r.PathValue("id"))
	if l == nil {
		notFound(w)
		return
	}
	out := map[string][][]string{}
	for list, ids := range l.perms {
		for _, id := range ids {
			out[list] = append(out[list], []string{id + "@example.org", id})
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (g *fakeGalaxy) setPermissions(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"err_msg": err.Error()})
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	l := g.findLocked(r.PathValue("id"))
	if l == nil {
		notFound(w)
		return
	}

	for field, list := range map[string]string{
		"access_ids[]": "access_library_role_list",
		"add_ids[]":    "add_library_item_role_list",
		"modify_ids[]": "modify_library_role_list",
		"manage_ids[]": "manage_library_role_list",
	} {
		var ids []string
		if raw, ok := body[field].([]any); ok {
			for _, v := range raw {
				ids = append(ids, fmt.Sprint(v))
			}
		}
		l.perms[list] = ids
	}
	writeJSON(w, http.StatusOK, map[string]any{})
}

func (g *fakeGalaxy) listRoles(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := []map[string]string{}
	for email, id := range g.roles {
		out = append(out, map[string]string{"id": id, "name": email, "type": "private"})
	}
	writeJSON(w, http.StatusOK, out)
}
