package service

import (
	"CloudVault/internal/repo"
	"CloudVault/model"
	"fmt"
)

// StarResource marks a file or folder as a favorite. Starring again is a
// no-op, starring requires at least VIEWER on the resource.
func StarResource(userID uint64, resourceType string, resourceID uint64) error {
	if resourceType != model.ResourceFile && resourceType != model.ResourceFolder {
		return fmt.Errorf("%w: unknown resource type %q", ErrValidation, resourceType)
	}
	if _, err := resourceOwner(resourceType, resourceID); err != nil {
		return err
	}
	star := &model.Star{
		UserID:       userID,
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
	if err := repo.Db.Create(star).Error; err != nil {
		if repo.IsDuplicateEntry(err) {
			return nil
		}
		return err
	}
	return nil
}

// UnstarResource removes a favorite; removing a missing star is a no-op.
func UnstarResource(userID uint64, resourceType string, resourceID uint64) error {
	return repo.Db.
		Where("user_id = ? AND resource_type = ? AND resource_id = ?",
			userID, resourceType, resourceID).
		Delete(&model.Star{}).Error
}

// ListStarred returns the user's starred live files and folders. Stars on
// trashed items are kept but hidden until the item is restored.
func ListStarred(userID uint64) ([]model.File, []model.Folder, error) {
	var fileIDs []uint64
	if err := repo.Db.Model(&model.Star{}).
		Where("user_id = ? AND resource_type = ?", userID, model.ResourceFile).
		Pluck("resource_id", &fileIDs).Error; err != nil {
		return nil, nil, err
	}
	var folderIDs []uint64
	if err := repo.Db.Model(&model.Star{}).
		Where("user_id = ? AND resource_type = ?", userID, model.ResourceFolder).
		Pluck("resource_id", &folderIDs).Error; err != nil {
		return nil, nil, err
	}
	var files []model.File
	if len(fileIDs) > 0 {
		if err := repo.Db.
			Where("id IN ? AND is_deleted = 0", fileIDs).
			Find(&files).Error; err != nil {
			return nil, nil, err
		}
	}
	var folders []model.Folder
	if len(folderIDs) > 0 {
		if err := repo.Db.
			Where("id IN ? AND is_deleted = 0", folderIDs).
			Find(&folders).Error; err != nil {
			return nil, nil, err
		}
	}
	return files, folders, nil
}
