package service

import (
	"CloudVault/internal/repo"
	"CloudVault/model"
	"context"
	"errors"
	"testing"
)

func TestTrashFolderCascades(t *testing.T) {
	cleanTables(t)
	owner := newTestUser(t, "owner@test.com")
	top := newTestFolder(t, owner.ID, "top", nil)
	sub := newTestFolder(t, owner.ID, "sub", &top.ID)
	file := newTestFile(t, owner.ID, &sub.ID, "deep.txt")

	if err := TrashFolder(owner.ID, top.ID); err != nil {
		t.Fatalf("TrashFolder failed: %v", err)
	}

	var gotFolder model.Folder
	if err := repo.Db.First(&gotFolder, sub.ID).Error; err != nil {
		t.Fatal(err)
	}
	if !gotFolder.IsDeleted {
		t.Fatal("sub folder should be trashed with its parent")
	}
	var gotFile model.File
	if err := repo.Db.First(&gotFile, file.ID).Error; err != nil {
		t.Fatal(err)
	}
	if !gotFile.IsDeleted {
		t.Fatal("nested file should be trashed with the folder")
	}

	// trashed items disappear from normal listings
	if _, err := GetFolder(sub.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetFolder on trashed = %v, want ErrNotFound", err)
	}
	if _, err := GetFile(file.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetFile on trashed = %v, want ErrNotFound", err)
	}
}

func TestRestoreFileToMissingFolderLandsInRoot(t *testing.T) {
	cleanTables(t)
	owner := newTestUser(t, "owner@test.com")
	folder := newTestFolder(t, owner.ID, "docs", nil)
	file := newTestFile(t, owner.ID, &folder.ID, "a.txt")

	if err := TrashFile(owner.ID, file.ID); err != nil {
		t.Fatal(err)
	}
	if err := TrashFolder(owner.ID, folder.ID); err != nil {
		t.Fatal(err)
	}

	if err := RestoreFile(owner.ID, file.ID); err != nil {
		t.Fatalf("RestoreFile failed: %v", err)
	}
	restored, err := GetFile(file.ID)
	if err != nil {
		t.Fatal(err)
	}
	if restored.FolderID != nil {
		t.Fatalf("restored folder_id = %v, want root", restored.FolderID)
	}
}

func TestRestoreFolderIsShallow(t *testing.T) {
	cleanTables(t)
	owner := newTestUser(t, "owner@test.com")
	top := newTestFolder(t, owner.ID, "top", nil)
	sub := newTestFolder(t, owner.ID, "sub", &top.ID)

	if err := TrashFolder(owner.ID, top.ID); err != nil {
		t.Fatal(err)
	}
	if err := RestoreFolder(owner.ID, top.ID); err != nil {
		t.Fatalf("RestoreFolder failed: %v", err)
	}

	if _, err := GetFolder(top.ID); err != nil {
		t.Fatalf("restored folder should be live: %v", err)
	}
	if _, err := GetFolder(sub.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("child should stay trashed, got %v", err)
	}
}

func TestRestoreNameCollisionRejected(t *testing.T) {
	cleanTables(t)
	owner := newTestUser(t, "owner@test.com")
	file := newTestFile(t, owner.ID, nil, "same.txt")

	if err := TrashFile(owner.ID, file.ID); err != nil {
		t.Fatal(err)
	}
	// a fresh live file takes the name while the old one sits in the trash
	newTestFile(t, owner.ID, nil, "same.txt")

	if err := RestoreFile(owner.ID, file.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("restore into taken name = %v, want ErrConflict", err)
	}
}

func TestTrashedNameIsReusable(t *testing.T) {
	cleanTables(t)
	owner := newTestUser(t, "owner@test.com")
	file := newTestFile(t, owner.ID, nil, "draft.txt")

	if err := TrashFile(owner.ID, file.ID); err != nil {
		t.Fatal(err)
	}
	// only live rows contend for a name, so the slot frees up
	replacement := newTestFile(t, owner.ID, nil, "draft.txt")
	if replacement.ID == file.ID {
		t.Fatal("expected a new row")
	}
}

func TestTrashHoldsSameNameTwice(t *testing.T) {
	cleanTables(t)
	owner := newTestUser(t, "owner@test.com")

	first := newTestFile(t, owner.ID, nil, "again.txt")
	if err := TrashFile(owner.ID, first.ID); err != nil {
		t.Fatal(err)
	}
	second := newTestFile(t, owner.ID, nil, "again.txt")
	if err := TrashFile(owner.ID, second.ID); err != nil {
		t.Fatalf("second trash of the same name = %v, want success", err)
	}

	var trashed int64
	repo.Db.Model(&model.File{}).
		Where("owner_id = ? AND name = ? AND is_deleted = 1", owner.ID, "again.txt").
		Count(&trashed)
	if trashed != 2 {
		t.Fatalf("trashed rows = %d, want 2", trashed)
	}
}

func TestPurgeFileRemovesRows(t *testing.T) {
	cleanTables(t)
	owner := newTestUser(t, "owner@test.com")
	stranger := newTestUser(t, "viewer@test.com")
	file := newTestFile(t, owner.ID, nil, "gone.txt")
	grantShare(t, model.ResourceFile, file.ID, stranger.ID, owner.ID, model.RoleViewer)

	if err := TrashFile(owner.ID, file.ID); err != nil {
		t.Fatal(err)
	}
	if err := PurgeFile(context.Background(), owner.ID, file.ID); err != nil {
		t.Fatalf("PurgeFile failed: %v", err)
	}

	var count int64
	repo.Db.Model(&model.File{}).Where("id = ?", file.ID).Count(&count)
	if count != 0 {
		t.Fatal("file row should be gone")
	}
	repo.Db.Model(&model.FileVersion{}).Where("file_id = ?", file.ID).Count(&count)
	if count != 0 {
		t.Fatal("version rows should be gone")
	}
	repo.Db.Model(&model.Share{}).Where("resource_type = ? AND resource_id = ?",
		model.ResourceFile, file.ID).Count(&count)
	if count != 0 {
		t.Fatal("share rows should be gone")
	}
}

func TestPurgeRequiresTrash(t *testing.T) {
	cleanTables(t)
	owner := newTestUser(t, "owner@test.com")
	file := newTestFile(t, owner.ID, nil, "live.txt")

	if err := PurgeFile(context.Background(), owner.ID, file.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("purging a live file = %v, want ErrNotFound", err)
	}
}

func TestEmptyTrash(t *testing.T) {
	cleanTables(t)
	owner := newTestUser(t, "owner@test.com")
	folder := newTestFolder(t, owner.ID, "old", nil)
	file := newTestFile(t, owner.ID, nil, "old.txt")

	if err := TrashFile(owner.ID, file.ID); err != nil {
		t.Fatal(err)
	}
	if err := TrashFolder(owner.ID, folder.ID); err != nil {
		t.Fatal(err)
	}
	if err := EmptyTrash(context.Background(), owner.ID); err != nil {
		t.Fatalf("EmptyTrash failed: %v", err)
	}

	files, folders, err := ListTrash(owner.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 0 || len(folders) != 0 {
		t.Fatalf("trash not empty: %d files, %d folders", len(files), len(folders))
	}
}
