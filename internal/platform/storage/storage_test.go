package storage

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func multipartUpload(t *testing.T, filename, contentType string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(map[string][]string)
	header["Content-Disposition"] = []string{`form-data; name="file"; filename="` + filename + `"`}
	header["Content-Type"] = []string{contentType}
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("Write: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	file, fileHeader, err := req.FormFile("file")
	if err != nil {
		t.Fatalf("FormFile: %v", err)
	}
	return file, fileHeader
}

func TestSaveWritesBlobAndReturnsURL(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	file, header := multipartUpload(t, "holerite.pdf", "application/pdf", []byte("%PDF-1.4 test"))
	defer file.Close()

	url, err := store.Save(file, header, FolderPayslips, 7)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if !strings.HasPrefix(url, "/uploads/payslips/") {
		t.Errorf("url = %q, want /uploads/payslips/ prefix", url)
	}
	if !strings.Contains(url, "payslip-7-") {
		t.Errorf("url = %q, want employee id in filename", url)
	}
	if !strings.HasSuffix(url, ".pdf") {
		t.Errorf("url = %q, want .pdf extension", url)
	}

	onDisk := filepath.Join(store.Root(), FolderPayslips, filepath.Base(url))
	data, err := os.ReadFile(onDisk)
	if err != nil {
		t.Fatalf("blob not on disk: %v", err)
	}
	if string(data) != "%PDF-1.4 test" {
		t.Error("blob content mismatch")
	}
}

func TestSaveRejectsWrongContentType(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	file, header := multipartUpload(t, "script.sh", "application/x-sh", []byte("#!/bin/sh"))
	defer file.Close()

	if _, err := store.Save(file, header, FolderPhotos, 1); err == nil {
		t.Error("shell script must not be accepted as a photo")
	}
}

func TestFileSystemServesBlobsButNoListings(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	file, header := multipartUpload(t, "holerite.pdf", "application/pdf", []byte("%PDF-1.4 sigiloso"))
	defer file.Close()
	url, err := store.Save(file, header, FolderPayslips, 42)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	blobName := filepath.Base(url)

	srv := httptest.NewServer(http.FileServer(store.FileSystem()))
	defer srv.Close()

	fetch := func(path string) (int, string) {
		t.Helper()
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		return resp.StatusCode, string(body)
	}

	status, body := fetch("/" + FolderPayslips + "/" + blobName)
	if status != http.StatusOK || body != "%PDF-1.4 sigiloso" {
		t.Errorf("blob fetch: status %d, body %q", status, body)
	}

	for _, path := range []string{"/", "/" + FolderPayslips, "/" + FolderPayslips + "/", "/" + FolderCertificates + "/"} {
		status, body := fetch(path)
		if status != http.StatusNotFound {
			t.Errorf("GET %s: status %d, want 404", path, status)
		}
		if strings.Contains(body, blobName) {
			t.Errorf("GET %s leaked blob name %q", path, blobName)
		}
	}
}

func TestSaveUniqueNames(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		file, header := multipartUpload(t, "foto.png", "image/png", []byte{0x89, 0x50})
		url, err := store.Save(file, header, FolderPhotos, 3)
		file.Close()
		if err != nil {
			t.Fatalf("Save: %v", err)
		}
		if seen[url] {
			t.Fatalf("duplicate url %q", url)
		}
		seen[url] = true
	}
}
