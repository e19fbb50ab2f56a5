package service

import (
	"CloudVault/internal/repo"
	"CloudVault/model"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// CreateFolder creates a folder under parentID (nil = root). The parent must
// be an owned, live folder; duplicate names in one parent are rejected.
func CreateFolder(ownerID uint64, name string, parentID *uint64) (*model.Folder, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: folder name is required", ErrValidation)
	}
	if parentID != nil {
		var parent model.Folder
		if err := repo.Db.
			Where("id = ? AND owner_id = ? AND is_deleted = 0", *parentID, ownerID).
			First(&parent).Error; err != nil {
			return nil, fmt.Errorf("%w: parent folder", ErrNotFound)
		}
	}

	var count int64
	query := repo.Db.Model(&model.Folder{}).
		Where("owner_id = ? AND name = ? AND is_deleted = 0", ownerID, name)
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}
	if err := query.Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: folder already exists", ErrConflict)
	}

	folder := &model.Folder{
		Name:     name,
		OwnerID:  ownerID,
		ParentID: parentID,
	}
	if err := repo.Db.Create(folder).Error; err != nil {
		return nil, err
	}
	return folder, nil
}

// GetFolder returns a live folder by id.
func GetFolder(folderID uint64) (*model.Folder, error) {
	var folder model.Folder
	if err := repo.Db.Where("id = ? AND is_deleted = 0", folderID).First(&folder).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &folder, nil
}

// ListFolders lists a user's live folders.
func ListFolders(ownerID uint64) ([]model.Folder, error) {
	var folders []model.Folder
	err := repo.Db.
		Where("owner_id = ? AND is_deleted = 0", ownerID).
		Order("created_at DESC").
		Find(&folders).Error
	return folders, err
}

// FolderContents returns the live sub-folders and files in a folder. The
// caller must already hold VIEWER on folderID.
func FolderContents(folderID uint64) ([]model.Folder, []model.File, error) {
	var folders []model.Folder
	if err := repo.Db.
		Where("parent_id = ? AND is_deleted = 0", folderID).
		Order("name ASC").
		Find(&folders).Error; err != nil {
		return nil, nil, err
	}
	var files []model.File
	if err := repo.Db.
		Where("folder_id = ? AND is_deleted = 0", folderID).
		Order("name ASC").
		Find(&files).Error; err != nil {
		return nil, nil, err
	}
	return folders, files, nil
}

// Breadcrumbs returns the ancestor chain root-first, ending at folderID.
func Breadcrumbs(folderID uint64) ([]model.Folder, error) {
	chain := make([]model.Folder, 0, 8)
	current := &folderID
	for depth := 0; current != nil; depth++ {
		if depth >= maxTreeDepth {
			return nil, fmt.Errorf("folder tree deeper than %d, possible cycle", maxTreeDepth)
		}
		var folder model.Folder
		if err := repo.Db.Where("id = ?", *current).First(&folder).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		chain = append(chain, folder)
		current = folder.ParentID
	}
	// reverse to root-first order
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// RenameFolder renames an owned live folder; duplicates in the same parent
// are rejected.
func RenameFolder(ownerID, folderID uint64, newName string) error {
	if newName == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	var folder model.Folder
	if err := repo.Db.
		Where("id = ? AND owner_id = ? AND is_deleted = 0", folderID, ownerID).
		First(&folder).Error; err != nil {
		return ErrNotFound
	}

	var count int64
	query := repo.Db.Model(&model.Folder{}).
		Where("owner_id = ? AND name = ? AND id != ? AND is_deleted = 0", ownerID, newName, folderID)
	if folder.ParentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *folder.ParentID)
	}
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: folder with same name already exists", ErrConflict)
	}

	if err := repo.Db.Model(&folder).Update("name", newName).Error; err != nil {
		return err
	}
	LogActivity(ownerID, model.ActionRename, model.ResourceFolder, folderID,
		map[string]interface{}{"new_name": newName})
	return nil
}

// MoveFolder re-parents a folder. Moving a folder into itself or any of its
// descendants would create a cycle and is refused.
func MoveFolder(ownerID, folderID uint64, targetID *uint64) error {
	var folder model.Folder
	if err := repo.Db.
		Where("id = ? AND owner_id = ? AND is_deleted = 0", folderID, ownerID).
		First(&folder).Error; err != nil {
		return ErrNotFound
	}
	if targetID != nil {
		if *targetID == folderID {
			return fmt.Errorf("%w: cannot move folder into itself", ErrValidation)
		}
		var target model.Folder
		if err := repo.Db.
			Where("id = ? AND owner_id = ? AND is_deleted = 0", *targetID, ownerID).
			First(&target).Error; err != nil {
			return fmt.Errorf("%w: target folder", ErrNotFound)
		}
		descendant, err := isDescendantFolder(*targetID, folderID)
		if err != nil {
			return err
		}
		if descendant {
			return fmt.Errorf("%w: cannot move folder into its own subtree", ErrValidation)
		}
	}

	var count int64
	query := repo.Db.Model(&model.Folder{}).
		Where("owner_id = ? AND name = ? AND id != ? AND is_deleted = 0", ownerID, folder.Name, folderID)
	if targetID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *targetID)
	}
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: folder %s already exists in target", ErrConflict, folder.Name)
	}

	if err := repo.Db.Model(&folder).Update("parent_id", targetID).Error; err != nil {
		return err
	}
	LogActivity(ownerID, model.ActionMove, model.ResourceFolder, folderID,
		map[string]interface{}{"target_folder_id": targetID})
	return nil
}

// isDescendantFolder reports whether candidate sits below ancestorID, walking
// parent pointers up from candidate with a depth cap.
func isDescendantFolder(candidate, ancestorID uint64) (bool, error) {
	var folder model.Folder
	if err := repo.Db.Where("id = ?", candidate).First(&folder).Error; err != nil {
		return false, err
	}
	current := folder.ParentID
	for depth := 0; current != nil; depth++ {
		if depth >= maxTreeDepth {
			return false, fmt.Errorf("folder tree deeper than %d, possible cycle", maxTreeDepth)
		}
		if *current == ancestorID {
			return true, nil
		}
		var parent model.Folder
		if err := repo.Db.Where("id = ?", *current).First(&parent).Error; err != nil {
			return false, err
		}
		current = parent.ParentID
	}
	return false, nil
}

// descendantFolderIDs returns rootID plus every folder below it, deleted or
// not, via a bounded breadth-first walk.
func descendantFolderIDs(rootID uint64) ([]uint64, error) {
	ids := []uint64{rootID}
	frontier := []uint64{rootID}
	for depth := 0; len(frontier) > 0; depth++ {
		if depth >= maxTreeDepth {
			return nil, fmt.Errorf("folder tree deeper than %d, possible cycle", maxTreeDepth)
		}
		var children []uint64
		if err := repo.Db.Model(&model.Folder{}).
			Where("parent_id IN ?", frontier).
			Pluck("id", &children).Error; err != nil {
			return nil, err
		}
		ids = append(ids, children...)
		frontier = children
	}
	return ids, nil
}
