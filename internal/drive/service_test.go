package drive

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"
)

func newTestService() *Service {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewService("", 10<<20, logger)
}

func TestUploadRejectsMissingToken(t *testing.T) {
	s := newTestService()
	_, err := s.Upload(context.Background(), "", FolderPosts, "pic.png", "image/png", 100, strings.NewReader("x"))
	assert.Equal(t, ErrMissingToken, err)
}

func TestUploadRejectsUnknownFolder(t *testing.T) {
	s := newTestService()
	_, err := s.Upload(context.Background(), "tok", "Secrets", "pic.png", "image/png", 100, strings.NewReader("x"))
	assert.Equal(t, ErrUnknownFolder, err)
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	s := newTestService()
	_, err := s.Upload(context.Background(), "tok", FolderPosts, "big.bin", "application/octet-stream", 11<<20, strings.NewReader("x"))
	assert.Equal(t, ErrUploadTooLarge, err)
}

func TestListRejectsMissingToken(t *testing.T) {
	s := newTestService()
	_, err := s.List(context.Background(), "", FolderPosts)
	assert.Equal(t, ErrMissingToken, err)
}

func TestMapDriveErrorQuota(t *testing.T) {
	err := &googleapi.Error{
		Code: http.StatusForbidden,
		Errors: []googleapi.ErrorItem{
			{Reason: "storageQuotaExceeded"},
		},
	}
	assert.Equal(t, ErrQuotaExceeded, mapDriveError(err))
}

func TestMapDriveErrorPermission(t *testing.T) {
	err := &googleapi.Error{Code: http.StatusForbidden}
	assert.Equal(t, ErrPermission, mapDriveError(err))
}

func TestMapDriveErrorUnauthorized(t *testing.T) {
	err := &googleapi.Error{Code: http.StatusUnauthorized}
	assert.Equal(t, ErrMissingToken, mapDriveError(err))
}
