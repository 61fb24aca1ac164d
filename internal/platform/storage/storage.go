package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Folder names group blobs by document kind under the upload root.
const (
	FolderPhotos       = "photos"
	FolderPayslips     = "payslips"
	FolderCertificates = "certificates"
)

var allowedContentTypes = map[string][]string{
	FolderPhotos:       {"image/jpeg", "image/png"},
	FolderPayslips:     {"application/pdf", "image/jpeg", "image/png"},
	FolderCertificates: {"application/pdf", "image/jpeg", "image/png"},
}

// Store writes uploaded blobs to local disk and hands back a retrieval URL
// path. Callers treat it as opaque; nothing outside this package knows the
// on-disk layout.
type Store struct {
	root string
}

func New(root string) (*Store, error) {
	for folder := range allowedContentTypes {
		if err := os.MkdirAll(filepath.Join(root, folder), 0o755); err != nil {
			return nil, err
		}
	}
	return &Store{root: root}, nil
}

func (s *Store) Root() string {
	return s.root
}

// FileSystem exposes the upload root for serving. Directory opens are refused
// so a file server can fetch a known blob URL but never enumerate the folder
// it lives in.
func (s *Store) FileSystem() http.FileSystem {
	return blobOnlyFS{http.Dir(s.root)}
}

type blobOnlyFS struct {
	inner http.FileSystem
}

func (fs blobOnlyFS) Open(name string) (http.File, error) {
	file, err := fs.inner.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, os.ErrNotExist
	}
	return file, nil
}

// Save stores the upload under folder and returns its public URL path.
// Filenames embed the employee id plus a random suffix so concurrent uploads
// never collide and originals never overwrite each other.
func (s *Store) Save(file multipart.File, header *multipart.FileHeader, folder string, employeeID int64) (string, error) {
	allowed, ok := allowedContentTypes[folder]
	if !ok {
		return "", fmt.Errorf("unknown upload folder %q", folder)
	}

	contentType := header.Header.Get("Content-Type")
	if !contains(allowed, contentType) {
		return "", fmt.Errorf("unsupported content type %q, expected one of %v", contentType, allowed)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	name := fmt.Sprintf("%s-%d-%s%s", strings.TrimSuffix(folder, "s"), employeeID, uuid.NewString(), ext)

	out, err := os.Create(filepath.Join(s.root, folder, name))
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		return "", err
	}

	return path.Join("/uploads", folder, name), nil
}

func contains(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}
