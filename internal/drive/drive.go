package drive

import (
	"net/http"

	errors "github.com/hostelhub/server/internal"
)

// Folder names inside the user's Drive. The app keeps everything under
// one root folder with a fixed subfolder per feature.
const (
	DefaultRootFolder = "HostelHub App"
	FolderPosts       = "Posts"
	FolderChatFiles   = "Chat Files"
	FolderDocuments   = "Documents"
)

const folderMimeType = "application/vnd.google-apps.folder"

// Subfolders lists every feature folder bootstrapped under the root.
var Subfolders = []string{FolderPosts, FolderChatFiles, FolderDocuments}

// File is the slim view of a Drive file the API returns.
type File struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MimeType    string `json:"mime_type"`
	Size        int64  `json:"size,omitempty"`
	WebViewLink string `json:"web_view_link,omitempty"`
	CreatedTime string `json:"created_time,omitempty"`
}

// Folders maps each feature folder name to its Drive ID after
// bootstrap.
type Folders struct {
	RootID string            `json:"root_id"`
	ByName map[string]string `json:"folders"`
}

var (
	ErrMissingToken   = errors.NewUnauthorizedError("a Drive access token is required", errors.ErrCodeInvalidToken)
	ErrQuotaExceeded  = errors.NewExternalError("Drive storage quota exceeded", errors.ErrCodeDriveQuota, http.StatusRequestEntityTooLarge)
	ErrPermission     = errors.NewForbiddenError("Drive denied access to the file", errors.ErrCodeDrivePermission)
	ErrUnknownFolder  = errors.NewValidationError("unknown folder", errors.ErrCodeValidationFailed)
	ErrUploadTooLarge = errors.NewValidationError("file exceeds the upload limit", errors.ErrCodeValidationFailed)
)
