package service

import (
	"CloudVault/config"
	"CloudVault/internal/repo"
	"CloudVault/internal/storage"
	"CloudVault/model"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// TrashFile soft-deletes one file. Content and versions stay untouched
// until the trash row is purged.
func TrashFile(ownerID, fileID uint64) error {
	var file model.File
	if err := repo.Db.
		Where("id = ? AND owner_id = ? AND is_deleted = 0", fileID, ownerID).
		First(&file).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := repo.Db.Model(&file).Update("is_deleted", true).Error; err != nil {
		return err
	}
	LogActivity(ownerID, model.ActionDelete, model.ResourceFile, fileID,
		map[string]interface{}{"name": file.Name})
	return nil
}

// TrashFolder soft-deletes a folder and its whole live subtree in one
// transaction, so a crash cannot leave a half-trashed tree.
func TrashFolder(ownerID, folderID uint64) error {
	var folder model.Folder
	if err := repo.Db.
		Where("id = ? AND owner_id = ? AND is_deleted = 0", folderID, ownerID).
		First(&folder).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	ids, err := descendantFolderIDs(folderID)
	if err != nil {
		return err
	}
	err = repo.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Folder{}).
			Where("id IN ? AND is_deleted = 0", ids).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		return tx.Model(&model.File{}).
			Where("folder_id IN ? AND is_deleted = 0", ids).
			Update("is_deleted", true).Error
	})
	if err != nil {
		return err
	}
	LogActivity(ownerID, model.ActionDelete, model.ResourceFolder, folderID,
		map[string]interface{}{"name": folder.Name, "folders_affected": len(ids)})
	return nil
}

// ListTrash returns the user's trashed files and folders. Only subtree roots
// are interesting for folders, children restore or purge with their root.
func ListTrash(ownerID uint64) ([]model.File, []model.Folder, error) {
	var files []model.File
	if err := repo.Db.
		Where("owner_id = ? AND is_deleted = 1", ownerID).
		Order("updated_at DESC").
		Find(&files).Error; err != nil {
		return nil, nil, err
	}
	var folders []model.Folder
	if err := repo.Db.
		Where("owner_id = ? AND is_deleted = 1", ownerID).
		Order("updated_at DESC").
		Find(&folders).Error; err != nil {
		return nil, nil, err
	}
	return files, folders, nil
}

// RestoreFile brings a trashed file back. When its original folder is gone
// or trashed, the file lands in the root instead. A live name collision in
// the destination rejects the restore.
func RestoreFile(ownerID, fileID uint64) error {
	var file model.File
	if err := repo.Db.
		Where("id = ? AND owner_id = ? AND is_deleted = 1", fileID, ownerID).
		First(&file).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	target := file.FolderID
	if target != nil {
		var parent model.Folder
		if err := repo.Db.
			Where("id = ? AND is_deleted = 0", *target).
			First(&parent).Error; err != nil {
			target = nil
		}
	}
	taken, err := activeNameTaken(ownerID, target, file.Name, file.ID)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: name already taken in destination", ErrConflict)
	}
	err = repo.Db.Model(&file).Updates(map[string]interface{}{
		"is_deleted": false,
		"folder_id":  target,
	}).Error
	if err != nil {
		return err
	}
	LogActivity(ownerID, model.ActionRestore, model.ResourceFile, fileID,
		map[string]interface{}{"name": file.Name})
	return nil
}

// RestoreFolder restores only the named folder, not its trashed descendants.
// Those stay in the trash and can be restored one by one.
func RestoreFolder(ownerID, folderID uint64) error {
	var folder model.Folder
	if err := repo.Db.
		Where("id = ? AND owner_id = ? AND is_deleted = 1", folderID, ownerID).
		First(&folder).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	target := folder.ParentID
	if target != nil {
		var parent model.Folder
		if err := repo.Db.
			Where("id = ? AND is_deleted = 0", *target).
			First(&parent).Error; err != nil {
			target = nil
		}
	}
	var count int64
	query := repo.Db.Model(&model.Folder{}).
		Where("owner_id = ? AND name = ? AND id != ? AND is_deleted = 0", ownerID, folder.Name, folderID)
	if target == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *target)
	}
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: folder name already taken in destination", ErrConflict)
	}
	err := repo.Db.Model(&folder).Updates(map[string]interface{}{
		"is_deleted": false,
		"parent_id":  target,
	}).Error
	if err != nil {
		return err
	}
	LogActivity(ownerID, model.ActionRestore, model.ResourceFolder, folderID,
		map[string]interface{}{"name": folder.Name})
	return nil
}

// PurgeFile permanently removes a trashed file: blobs first, rows second,
// so a mid-way crash leaves recoverable rows rather than orphan metadata
// pointing at deleted objects.
func PurgeFile(ctx context.Context, ownerID, fileID uint64) error {
	var file model.File
	if err := repo.Db.
		Where("id = ? AND owner_id = ? AND is_deleted = 1", fileID, ownerID).
		First(&file).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return purgeFileRow(ctx, &file)
}

func purgeFileRow(ctx context.Context, file *model.File) error {
	var keys []string
	if err := repo.Db.Model(&model.FileVersion{}).
		Where("file_id = ?", file.ID).
		Pluck("storage_key", &keys).Error; err != nil {
		return err
	}
	if err := storage.Default.RemoveObjects(ctx, config.AppConfig.BucketName, keys); err != nil {
		return fmt.Errorf("remove objects: %w", err)
	}
	return repo.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("file_id = ?", file.ID).Delete(&model.FileVersion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("resource_type = ? AND resource_id = ?",
			model.ResourceFile, file.ID).Delete(&model.Share{}).Error; err != nil {
			return err
		}
		if err := tx.Where("resource_type = ? AND resource_id = ?",
			model.ResourceFile, file.ID).Delete(&model.Star{}).Error; err != nil {
			return err
		}
		if err := tx.Where("resource_type = ? AND resource_id = ?",
			model.ResourceFile, file.ID).Delete(&model.PublicLink{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.File{}, file.ID).Error
	})
}

// PurgeFolder permanently removes a trashed folder and everything beneath
// it, trashed or not.
func PurgeFolder(ctx context.Context, ownerID, folderID uint64) error {
	var folder model.Folder
	if err := repo.Db.
		Where("id = ? AND owner_id = ? AND is_deleted = 1", folderID, ownerID).
		First(&folder).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	ids, err := descendantFolderIDs(folderID)
	if err != nil {
		return err
	}
	var files []model.File
	if err := repo.Db.Where("folder_id IN ?", ids).Find(&files).Error; err != nil {
		return err
	}
	for i := range files {
		if err := purgeFileRow(ctx, &files[i]); err != nil {
			return err
		}
	}
	return repo.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("resource_type = ? AND resource_id IN ?",
			model.ResourceFolder, ids).Delete(&model.Share{}).Error; err != nil {
			return err
		}
		if err := tx.Where("resource_type = ? AND resource_id IN ?",
			model.ResourceFolder, ids).Delete(&model.Star{}).Error; err != nil {
			return err
		}
		if err := tx.Where("resource_type = ? AND resource_id IN ?",
			model.ResourceFolder, ids).Delete(&model.PublicLink{}).Error; err != nil {
			return err
		}
		// children before parents for the parent_id foreign key
		for i := len(ids) - 1; i >= 0; i-- {
			if err := tx.Delete(&model.Folder{}, ids[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// EmptyTrash purges every trashed item the user owns. The first failure
// aborts the sweep, whatever survived is still visible in the trash.
func EmptyTrash(ctx context.Context, ownerID uint64) error {
	var files []model.File
	if err := repo.Db.
		Where("owner_id = ? AND is_deleted = 1", ownerID).
		Find(&files).Error; err != nil {
		return err
	}
	for i := range files {
		if err := purgeFileRow(ctx, &files[i]); err != nil {
			return err
		}
	}
	var folders []uint64
	if err := repo.Db.Model(&model.Folder{}).
		Where("owner_id = ? AND is_deleted = 1", ownerID).
		Pluck("id", &folders).Error; err != nil {
		return err
	}
	for _, id := range folders {
		err := PurgeFolder(ctx, ownerID, id)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
	}
	return nil
}
