package service

import (
	"CloudVault/config"
	"CloudVault/internal/dto"
	"CloudVault/internal/repo"
	"CloudVault/internal/storage"
	"CloudVault/model"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	uploadLockTTL   = 30 * time.Second
	uploadLockRetry = 100 * time.Millisecond
	versionRetryMax = 3
)

// newStorageKey mints an object key scoped to the owner. Keys are write-once,
// rollback copies content under a fresh key.
func newStorageKey(ownerID uint64) string {
	return fmt.Sprintf("u%d/%s", ownerID, uuid.NewString())
}

// GetFile returns a live file by id.
func GetFile(fileID uint64) (*model.File, error) {
	var file model.File
	if err := repo.Db.Where("id = ? AND is_deleted = 0", fileID).First(&file).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &file, nil
}

// UploadFile stores content as a new file, or as the next version when an
// active file with the same owner, folder and name already exists. The
// checksum is computed here while the content streams to the object store.
// A Redis lock serializes uploads racing for the same slot, the unique index
// on (file_id, version_number) backstops anything the lock misses.
func UploadFile(ctx context.Context, ownerID uint64, folderID *uint64, name, mimeType string,
	reader io.Reader, size int64) (*dto.UploadResult, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: file name is required", ErrValidation)
	}
	if folderID != nil {
		var folder model.Folder
		if err := repo.Db.
			Where("id = ? AND is_deleted = 0", *folderID).
			First(&folder).Error; err != nil {
			return nil, fmt.Errorf("%w: folder", ErrNotFound)
		}
	}

	slot := "root"
	if folderID != nil {
		slot = fmt.Sprintf("%d", *folderID)
	}
	lock := repo.NewRedisLock(repo.Redis,
		fmt.Sprintf("upload:%d:%s:%s", ownerID, slot, name), uploadLockTTL)
	if err := lock.LockWait(ctx, uploadLockRetry); err != nil {
		return nil, err
	}
	defer func() {
		if err := lock.Unlock(context.Background()); err != nil {
			log.Println("release upload lock fail:", err)
		}
	}()

	key := newStorageKey(ownerID)
	hasher := sha256.New()
	err := storage.Default.PutObject(ctx, config.AppConfig.BucketName, key,
		io.TeeReader(reader, hasher), size,
		storage.PutOptions{ContentType: mimeType})
	if err != nil {
		return nil, fmt.Errorf("store object: %w", err)
	}
	checksum := hex.EncodeToString(hasher.Sum(nil))

	existing, err := findActiveFile(ownerID, folderID, name)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if existing == nil {
		file := &model.File{
			Name:       name,
			MimeType:   mimeType,
			Size:       size,
			StorageKey: key,
			OwnerID:    ownerID,
			FolderID:   folderID,
			Checksum:   checksum,
		}
		err = repo.Db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(file).Error; err != nil {
				return err
			}
			return tx.Create(&model.FileVersion{
				FileID:        file.ID,
				VersionNumber: 1,
				StorageKey:    key,
				Size:          size,
				Checksum:      checksum,
			}).Error
		})
		if err != nil {
			return nil, err
		}
		LogActivity(ownerID, model.ActionUpload, model.ResourceFile, file.ID,
			map[string]interface{}{"name": name, "version": 1})
		return &dto.UploadResult{FileID: file.ID, Version: 1}, nil
	}

	version, err := appendVersion(existing, key, size, checksum)
	if err != nil {
		return nil, err
	}
	err = repo.Db.Model(existing).Updates(map[string]interface{}{
		"storage_key": key,
		"size":        size,
		"checksum":    checksum,
		"mime_type":   mimeType,
	}).Error
	if err != nil {
		return nil, err
	}
	LogActivity(ownerID, model.ActionUpload, model.ResourceFile, existing.ID,
		map[string]interface{}{"name": name, "version": version})
	return &dto.UploadResult{FileID: existing.ID, Version: version}, nil
}

// appendVersion inserts the next version row for file. Duplicate-key failures
// mean a concurrent writer took the number first, so re-read and retry.
func appendVersion(file *model.File, key string, size int64, checksum string) (int, error) {
	for attempt := 0; attempt < versionRetryMax; attempt++ {
		next, err := nextVersionNumber(file.ID)
		if err != nil {
			return 0, err
		}
		err = repo.Db.Create(&model.FileVersion{
			FileID:        file.ID,
			VersionNumber: next,
			StorageKey:    key,
			Size:          size,
			Checksum:      checksum,
		}).Error
		if err == nil {
			return next, nil
		}
		if !repo.IsDuplicateEntry(err) {
			return 0, err
		}
	}
	return 0, fmt.Errorf("%w: version slot contended", ErrConflict)
}

func nextVersionNumber(fileID uint64) (int, error) {
	var max int
	err := repo.Db.Model(&model.FileVersion{}).
		Where("file_id = ?", fileID).
		Select("COALESCE(MAX(version_number), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

func findActiveFile(ownerID uint64, folderID *uint64, name string) (*model.File, error) {
	var file model.File
	query := repo.Db.Where("owner_id = ? AND name = ? AND is_deleted = 0", ownerID, name)
	if folderID == nil {
		query = query.Where("folder_id IS NULL")
	} else {
		query = query.Where("folder_id = ?", *folderID)
	}
	if err := query.First(&file).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &file, nil
}

// activeNameTaken reports whether a live file other than excludeID already
// occupies (owner, folder, name). The live namespace is guarded here rather
// than by a unique key, the trash may hold any number of same-named rows.
func activeNameTaken(ownerID uint64, folderID *uint64, name string, excludeID uint64) (bool, error) {
	var count int64
	query := repo.Db.Model(&model.File{}).
		Where("owner_id = ? AND name = ? AND is_deleted = 0 AND id <> ?", ownerID, name, excludeID)
	if folderID == nil {
		query = query.Where("folder_id IS NULL")
	} else {
		query = query.Where("folder_id = ?", *folderID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListVersions returns a file's versions newest-first.
func ListVersions(fileID uint64) ([]model.FileVersion, error) {
	var versions []model.FileVersion
	err := repo.Db.
		Where("file_id = ?", fileID).
		Order("version_number DESC").
		Find(&versions).Error
	return versions, err
}

// RollbackFile makes an old version current by copying its content under a
// fresh key and appending it as the newest version. History stays intact.
func RollbackFile(ctx context.Context, actorID, fileID uint64, versionNumber int) (*dto.UploadResult, error) {
	file, err := GetFile(fileID)
	if err != nil {
		return nil, err
	}
	var target model.FileVersion
	err = repo.Db.
		Where("file_id = ? AND version_number = ?", fileID, versionNumber).
		First(&target).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: version %d", ErrNotFound, versionNumber)
		}
		return nil, err
	}

	bucket := config.AppConfig.BucketName
	src, _, err := storage.Default.GetObject(ctx, bucket, target.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("read version object: %w", err)
	}
	defer src.Close()

	key := newStorageKey(file.OwnerID)
	if err := storage.Default.PutObject(ctx, bucket, key, src, target.Size,
		storage.PutOptions{ContentType: file.MimeType}); err != nil {
		return nil, fmt.Errorf("copy version object: %w", err)
	}

	version, err := appendVersion(file, key, target.Size, target.Checksum)
	if err != nil {
		return nil, err
	}
	err = repo.Db.Model(file).Updates(map[string]interface{}{
		"storage_key": key,
		"size":        target.Size,
		"checksum":    target.Checksum,
	}).Error
	if err != nil {
		return nil, err
	}
	LogActivity(actorID, model.ActionRollback, model.ResourceFile, fileID,
		map[string]interface{}{"from_version": versionNumber, "new_version": version})
	return &dto.UploadResult{FileID: fileID, Version: version}, nil
}

// DownloadURL returns a short-lived presigned URL for the file's current
// content, with a content-disposition forcing the original name.
func DownloadURL(ctx context.Context, fileID uint64) (string, error) {
	file, err := GetFile(fileID)
	if err != nil {
		return "", err
	}
	params := map[string]string{
		"response-content-disposition": fmt.Sprintf(`attachment; filename="%s"`, file.Name),
	}
	return storage.Default.PresignedGetObjectWithResponse(ctx,
		config.AppConfig.BucketName, file.StorageKey, 15*time.Minute, params)
}

// RenameFile renames an owned live file; the folder's namespace must stay
// collision-free.
func RenameFile(ownerID, fileID uint64, newName string) error {
	if newName == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	var file model.File
	if err := repo.Db.
		Where("id = ? AND owner_id = ? AND is_deleted = 0", fileID, ownerID).
		First(&file).Error; err != nil {
		return ErrNotFound
	}
	taken, err := activeNameTaken(ownerID, file.FolderID, newName, file.ID)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: file with same name already exists", ErrConflict)
	}
	if err := repo.Db.Model(&file).Update("name", newName).Error; err != nil {
		return err
	}
	LogActivity(ownerID, model.ActionRename, model.ResourceFile, fileID,
		map[string]interface{}{"new_name": newName})
	return nil
}

// MoveFile re-parents a file to targetID (nil = root).
func MoveFile(ownerID, fileID uint64, targetID *uint64) error {
	var file model.File
	if err := repo.Db.
		Where("id = ? AND owner_id = ? AND is_deleted = 0", fileID, ownerID).
		First(&file).Error; err != nil {
		return ErrNotFound
	}
	if targetID != nil {
		var folder model.Folder
		if err := repo.Db.
			Where("id = ? AND owner_id = ? AND is_deleted = 0", *targetID, ownerID).
			First(&folder).Error; err != nil {
			return fmt.Errorf("%w: target folder", ErrNotFound)
		}
	}
	taken, err := activeNameTaken(ownerID, targetID, file.Name, file.ID)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: file %s already exists in target", ErrConflict, file.Name)
	}
	if err := repo.Db.Model(&file).Update("folder_id", targetID).Error; err != nil {
		return err
	}
	LogActivity(ownerID, model.ActionMove, model.ResourceFile, fileID,
		map[string]interface{}{"target_folder_id": targetID})
	return nil
}

// SearchFiles matches live owned files and folders by name substring.
func SearchFiles(ownerID uint64, query string) ([]model.File, []model.Folder, error) {
	if query == "" {
		return nil, nil, fmt.Errorf("%w: query is required", ErrValidation)
	}
	pattern := "%" + query + "%"
	var files []model.File
	if err := repo.Db.
		Where("owner_id = ? AND is_deleted = 0 AND name LIKE ?", ownerID, pattern).
		Order("name ASC").
		Find(&files).Error; err != nil {
		return nil, nil, err
	}
	var folders []model.Folder
	if err := repo.Db.
		Where("owner_id = ? AND is_deleted = 0 AND name LIKE ?", ownerID, pattern).
		Order("name ASC").
		Find(&folders).Error; err != nil {
		return nil, nil, err
	}
	return files, folders, nil
}

// StorageUsage sums the bytes held by every version of the user's files,
// trashed rows included, since their blobs still occupy storage.
func StorageUsage(ownerID uint64) (int64, error) {
	var total int64
	err := repo.Db.Model(&model.FileVersion{}).
		Joins("JOIN files ON files.id = file_versions.file_id").
		Where("files.owner_id = ?", ownerID).
		Select("COALESCE(SUM(file_versions.size), 0)").
		Scan(&total).Error
	return total, err
}
