package drive

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	errors "github.com/hostelhub/server/internal"
)

// clientFactory builds a Drive client from a user's OAuth token. Swapped
// out in tests.
type clientFactory func(ctx context.Context, token string) (*drive.Service, error)

type Service struct {
	newClient      clientFactory
	rootFolderName string
	maxUploadBytes int64
	logger         *slog.Logger
}

func NewService(rootFolderName string, maxUploadBytes int64, logger *slog.Logger) *Service {
	if rootFolderName == "" {
		rootFolderName = DefaultRootFolder
	}
	return &Service{
		newClient:      newDriveClient,
		rootFolderName: rootFolderName,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

func newDriveClient(ctx context.Context, token string) (*drive.Service, error) {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return drive.NewService(ctx, option.WithTokenSource(src))
}

// mapDriveError translates googleapi failures into domain errors.
func mapDriveError(err error) error {
	var apiErr *googleapi.Error
	if stderrors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusForbidden:
			for _, e := range apiErr.Errors {
				if e.Reason == "storageQuotaExceeded" || e.Reason == "quotaExceeded" {
					return ErrQuotaExceeded
				}
			}
			return ErrPermission
		case http.StatusUnauthorized:
			return ErrMissingToken
		case http.StatusNotFound:
			return errors.NewNotFoundError("Drive file not found", errors.ErrCodePostNotFound)
		}
	}
	return errors.NewInternalError("Drive request failed", err)
}

// EnsureFolders finds or creates the app's folder tree and returns the
// IDs.
func (s *Service) EnsureFolders(ctx context.Context, token string) (*Folders, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	client, err := s.newClient(ctx, token)
	if err != nil {
		return nil, errors.NewInternalError("failed to build Drive client", err)
	}

	rootID, err := s.findOrCreateFolder(ctx, client, s.rootFolderName, "")
	if err != nil {
		return nil, err
	}

	folders := &Folders{RootID: rootID, ByName: make(map[string]string, len(Subfolders))}
	for _, name := range Subfolders {
		id, err := s.findOrCreateFolder(ctx, client, name, rootID)
		if err != nil {
			return nil, err
		}
		folders.ByName[name] = id
	}

	s.logger.Info("drive folders ready", "root_id", rootID)
	return folders, nil
}

func (s *Service) findOrCreateFolder(ctx context.Context, client *drive.Service, name, parentID string) (string, error) {
	query := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false", name, folderMimeType)
	if parentID != "" {
		query += fmt.Sprintf(" and '%s' in parents", parentID)
	}

	list, err := client.Files.List().
		Q(query).
		Fields("files(id)").
		PageSize(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", mapDriveError(err)
	}
	if len(list.Files) > 0 {
		return list.Files[0].Id, nil
	}

	meta := &drive.File{
		Name:     name,
		MimeType: folderMimeType,
	}
	if parentID != "" {
		meta.Parents = []string{parentID}
	}
	created, err := client.Files.Create(meta).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", mapDriveError(err)
	}
	return created.Id, nil
}

// Upload stores a file in one of the feature folders and makes it
// readable by anyone with the link.
func (s *Service) Upload(ctx context.Context, token, folderName, fileName, mimeType string, size int64, content io.Reader) (*File, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	if !validSubfolder(folderName) {
		return nil, ErrUnknownFolder
	}
	if s.maxUploadBytes > 0 && size > s.maxUploadBytes {
		return nil, ErrUploadTooLarge
	}

	folders, err := s.EnsureFolders(ctx, token)
	if err != nil {
		return nil, err
	}

	client, err := s.newClient(ctx, token)
	if err != nil {
		return nil, errors.NewInternalError("failed to build Drive client", err)
	}

	meta := &drive.File{
		Name:    fileName,
		Parents: []string{folders.ByName[folderName]},
	}
	created, err := client.Files.Create(meta).
		Media(content, googleapi.ContentType(mimeType)).
		Fields("id, name, mimeType, size, webViewLink, createdTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, mapDriveError(err)
	}

	_, err = client.Permissions.Create(created.Id, &drive.Permission{
		Type: "anyone",
		Role: "reader",
	}).Context(ctx).Do()
	if err != nil {
		s.logger.Warn("failed to share uploaded file", "error", err, "file_id", created.Id)
	}

	s.logger.Info("drive file uploaded", "file_id", created.Id, "folder", folderName, "name", fileName)
	return fromDriveFile(created), nil
}

// List returns the files in one feature folder, newest first.
func (s *Service) List(ctx context.Context, token, folderName string) ([]*File, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	if !validSubfolder(folderName) {
		return nil, ErrUnknownFolder
	}

	folders, err := s.EnsureFolders(ctx, token)
	if err != nil {
		return nil, err
	}

	client, err := s.newClient(ctx, token)
	if err != nil {
		return nil, errors.NewInternalError("failed to build Drive client", err)
	}

	list, err := client.Files.List().
		Q(fmt.Sprintf("'%s' in parents and trashed = false", folders.ByName[folderName])).
		Fields("files(id, name, mimeType, size, webViewLink, createdTime)").
		OrderBy("createdTime desc").
		Context(ctx).
		Do()
	if err != nil {
		return nil, mapDriveError(err)
	}

	files := make([]*File, len(list.Files))
	for i, f := range list.Files {
		files[i] = fromDriveFile(f)
	}
	return files, nil
}

// Delete removes a file from the user's Drive.
func (s *Service) Delete(ctx context.Context, token, fileID string) error {
	if token == "" {
		return ErrMissingToken
	}

	client, err := s.newClient(ctx, token)
	if err != nil {
		return errors.NewInternalError("failed to build Drive client", err)
	}

	if err := client.Files.Delete(fileID).Context(ctx).Do(); err != nil {
		return mapDriveError(err)
	}

	s.logger.Info("drive file deleted", "file_id", fileID)
	return nil
}

func validSubfolder(name string) bool {
	for _, f := range Subfolders {
		if f == name {
			return true
		}
	}
	return false
}

func fromDriveFile(f *drive.File) *File {
	return &File{
		ID:          f.Id,
		Name:        f.Name,
		MimeType:    f.MimeType,
		Size:        f.Size,
		WebViewLink: f.WebViewLink,
		CreatedTime: f.CreatedTime,
	}
}
