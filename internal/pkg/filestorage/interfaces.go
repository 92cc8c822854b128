package filestorage

import (
	"errors"
	"mime/multipart"
)

// ErrInvalidPath is returned for paths that would escape the storage root
var ErrInvalidPath = errors.New("invalid file path")

// FileInfo represents information about a stored file
type FileInfo struct {
	Path     string // storage-relative path, used for deletion
	URL      string // public URL served to clients
	Filename string // original client filename
	FileSize int64
	MimeType string // sniffed from content, not taken from the client
}

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFileWithPath stores the upload under subPath with a generated name
	SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (*FileInfo, error)

	// DeleteFile removes a stored file; deleting a missing file is not an error
	DeleteFile(path string) error

	// GetFullPath returns the filesystem path of a storage-relative path
	GetFullPath(path string) (string, error)
}
