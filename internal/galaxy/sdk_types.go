package galaxy

const (
	HeaderAPIKey = "x-api-key"

	v1Libraries         = "/api/libraries"
	v1LibraryContents   = "/api/libraries/{library_id}/contents"
	v1LibraryPermission = "/api/libraries/{library_id}/permissions"
	v1Roles             = "/api/roles"

	createTypeFolder = "folder"
	createTypeFile   = "file"

	uploadOptionPaths = "upload_paths"
	uploadOptionFile  = "upload_file"
	linkToFiles       = "link_to_files"
	fileTypeAuto      = "auto"
	dbkeyUnknown      = "?"

	// multipart field Galaxy reads the uploaded dataset from
	uploadFileField = "files_0|file_data"
)

type createLibraryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Synopsis    string `json:"synopsis"`
}

type libraryResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Synopsis     string `json:"synopsis"`
	Deleted      bool   `json:"deleted"`
	RootFolderID string `json:"root_folder_id"`
}

type contentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

type createFolderRequest struct {
	FolderID    string `json:"folder_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreateType  string `json:"create_type"`
}

type linkFilesRequest struct {
	FolderID        string `json:"folder_id"`
	CreateType      string `json:"create_type"`
	FileType        string `json:"file_type"`
	Dbkey           string `json:"dbkey"`
	UploadOption    string `json:"upload_option"`
	FilesystemPaths string `json:"filesystem_paths"`
	LinkDataOnly    string `json:"link_data_only"`
}

// permissionsResponse maps role list names to `[email, role id]` pairs
type permissionsResponse map[string][][]string

type setPermissionsRequest struct {
	Action    string   `json:"action"`
	AccessIDs []string `json:"access_ids[]"`
	AddIDs    []string `json:"add_ids[]"`
	ManageIDs []string `json:"manage_ids[]"`
	ModifyIDs []string `json:"modify_ids[]"`
}

type roleResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
}
