package service

import (
	"CloudVault/internal/repo"
	"CloudVault/model"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"sync"
	"testing"
)

func uploadText(t *testing.T, ownerID uint64, folderID *uint64, name, content string) uint64 {
	t.Helper()
	result, err := UploadFile(context.Background(), ownerID, folderID, name,
		"text/plain", strings.NewReader(content), int64(len(content)))
	if err != nil {
		t.Fatalf("upload %s failed: %v", name, err)
	}
	return result.FileID
}

func TestUploadCreatesVersionOne(t *testing.T) {
	cleanTables(t)
	owner := newTestUser(t, "owner@test.com")

	result, err := UploadFile(context.Background(), owner.ID, nil, "hello.txt",
		"text/plain", bytes.NewReader([]byte("hello")), 5)
	if err != nil {
		t.Fatalf("UploadFile failed: %v", err)
	}
	if result.Version != 1 {
		t.Fatalf("version = %d, want 1", result.Version)
	}
	file, err := GetFile(result.FileID)
	if err != nil {
		t.Fatal(err)
	}
	if file.Size != 5 || file.StorageKey == "" {
		t.Fatalf("file row = %+v", file)
	}
}

func TestUploadComputesChecksum(t *testing.T) {
	cleanTables(t)
	owner := newTestUser(t, "owner@test.com")

	content := "checksum me"
	sum := sha256.Sum256([]byte(content))
	want := hex.EncodeToString(sum[:])

	fileID := uploadText(t, owner.ID, nil, "sum.txt", content)
	file, err := GetFile(fileID)
	if err != nil {
		t.Fatal(err)
	}
	if file.Checksum != want {
		t.Fatalf("file checksum = %q, want %q", file.Checksum, want)
	}
	var version model.FileVersion
	if err := repo.Db.Where("file_id = ? AND version_number = 1", fileID).
		First(&version).Error; err != nil {
		t.Fatal(err)
	}
	if version.Checksum != want {
		t.Fatalf("version checksum = %q, want %q", version.Checksum, want)
	}
}

func TestRenameFileConflict(t *testing.T) {
	cleanTables(t)
	owner := newTestUser(t, "owner@test.com")
	uploadText(t, owner.ID, nil, "a.txt", "one")
	otherID := uploadText(t, owner.ID, nil, "b.txt", "two")

	if err := RenameFile(owner.ID, otherID, "a.txt"); !errors.Is(err, ErrConflict) {
		t.Fatalf("rename onto taken name = %v, want ErrConflict", err)
	}
}

func TestReuploadAppendsVersion(t *testing.T) {
	cleanTables(t)
	owner := newTestUser(t, "owner@test.com")

	fileID := uploadText(t, owner.ID, nil, "doc.txt", "first")
	result, err := UploadFile(context.Background(), owner.ID, nil, "doc.txt",
		"text/plain", strings.NewReader("second version"), 14)
	if err != nil {
		t.Fatal(err)
	}
	if result.FileID != fileID {
		t.Fatalf("re-upload created file %d, want %d", result.FileID, fileID)
	}
	if result.Version != 2 {
		t.Fatalf("version = %d, want 2", result.Version)
	}

	file, err := GetFile(fileID)
	if err != nil {
		t.Fatal(err)
	}
	if file.Size != 14 {
		t.Fatalf("file row size = %d, want the latest version's 14", file.Size)
	}

	versions, err := ListVersions(fileID)
	if err != nil {
		t.Fatal(err)
	}
	if len(versions) != 2 || versions[0].VersionNumber != 2 {
		t.Fatalf("versions = %+v, want 2 newest-first", versions)
	}
	if versions[0].StorageKey == versions[1].StorageKey {
		t.Fatal("each version must keep its own storage key")
	}
}

func TestConcurrentUploadsGetDistinctVersions(t *testing.T) {
	cleanTables(t)
	owner := newTestUser(t, "owner@test.com")
	uploadText(t, owner.ID, nil, "race.txt", "seed")

	const writers = 4
	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = UploadFile(context.Background(), owner.ID, nil, "race.txt",
				"text/plain", strings.NewReader("content"), 7)
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Fatalf("writer %d failed: %v", i, err)
		}
	}

	var numbers []int
	if err := repo.Db.Model(&model.FileVersion{}).
		Joins("JOIN files ON files.id = file_versions.file_id").
		Where("files.name = ?", "race.txt").
		Order("version_number ASC").
		Pluck("version_number", &numbers).Error; err != nil {
		t.Fatal(err)
	}
	if len(numbers) != writers+1 {
		t.Fatalf("version count = %d, want %d", len(numbers), writers+1)
	}
	for i, n := range numbers {
		if n != i+1 {
			t.Fatalf("version numbers = %v, want a gapless 1..%d", numbers, writers+1)
		}
	}
}

func TestRollbackAppendsNewVersion(t *testing.T) {
	cleanTables(t)
	owner := newTestUser(t, "owner@test.com")

	fileID := uploadText(t, owner.ID, nil, "doc.txt", "v1 content")
	uploadText(t, owner.ID, nil, "doc.txt", "v2")

	result, err := RollbackFile(context.Background(), owner.ID, fileID, 1)
	if err != nil {
		t.Fatalf("RollbackFile failed: %v", err)
	}
	if result.Version != 3 {
		t.Fatalf("rollback version = %d, want 3", result.Version)
	}

	file, err := GetFile(fileID)
	if err != nil {
		t.Fatal(err)
	}
	if file.Size != int64(len("v1 content")) {
		t.Fatalf("file size = %d, want v1's size", file.Size)
	}

	versions, err := ListVersions(fileID)
	if err != nil {
		t.Fatal(err)
	}
	if len(versions) != 3 {
		t.Fatalf("history length = %d, rollback must not rewrite it", len(versions))
	}
}

func TestRollbackToMissingVersion(t *testing.T) {
	cleanTables(t)
	owner := newTestUser(t, "owner@test.com")
	fileID := uploadText(t, owner.ID, nil, "doc.txt", "only one")

	if _, err := RollbackFile(context.Background(), owner.ID, fileID, 9); !errors.Is(err, ErrNotFound) {
		t.Fatalf("rollback to missing version = %v, want ErrNotFound", err)
	}
}

func TestDownloadURLForcesAttachment(t *testing.T) {
	cleanTables(t)
	owner := newTestUser(t, "owner@test.com")
	fileID := uploadText(t, owner.ID, nil, "report.pdf", "pdf bytes")

	url, err := DownloadURL(context.Background(), fileID)
	if err != nil {
		t.Fatalf("DownloadURL failed: %v", err)
	}
	if !strings.Contains(url, "response-content-disposition") {
		t.Fatalf("url = %q, want a disposition override", url)
	}
}

func TestSearchMatchesSubstring(t *testing.T) {
	cleanTables(t)
	owner := newTestUser(t, "owner@test.com")
	newTestFile(t, owner.ID, nil, "quarterly-report.pdf")
	newTestFile(t, owner.ID, nil, "notes.txt")
	newTestFolder(t, owner.ID, "reports", nil)

	files, folders, err := SearchFiles(owner.ID, "report")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || len(folders) != 1 {
		t.Fatalf("search hit %d files, %d folders, want 1 and 1", len(files), len(folders))
	}
}
