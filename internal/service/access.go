package service

import (
	"CloudVault/internal/repo"
	"CloudVault/model"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// maxTreeDepth caps every ancestor/descendant walk. The data model forbids
// parent_id cycles, but a corrupt row must not loop a request forever.
const maxTreeDepth = 64

// folderAncestors returns the folder itself plus every ancestor up to the
// root, via a bounded recursive CTE.
func folderAncestors(folderID uint64) ([]uint64, error) {
	var ids []uint64
	err := repo.Db.Raw(`
		WITH RECURSIVE parent_folders AS (
			SELECT id, parent_id, 1 AS depth
			FROM folders
			WHERE id = ?

			UNION ALL

			SELECT f.id, f.parent_id, pf.depth + 1
			FROM folders f
			JOIN parent_folders pf ON pf.parent_id = f.id
			WHERE pf.depth < ?
		)
		SELECT id FROM parent_folders`,
		folderID, maxTreeDepth,
	).Scan(&ids).Error
	return ids, err
}

// maxSharedRole returns the highest role any of the shares rows grants
// userID across the given folder ids, "" when none apply.
func maxSharedRole(userID uint64, folderIDs []uint64) (string, error) {
	if len(folderIDs) == 0 {
		return "", nil
	}
	var roles []string
	err := repo.Db.Model(&model.Share{}).
		Where("resource_type = ? AND resource_id IN ? AND shared_with = ?",
			model.ResourceFolder, folderIDs, userID).
		Pluck("role", &roles).Error
	if err != nil {
		return "", err
	}
	best := ""
	for _, role := range roles {
		if model.RoleRank(role) > model.RoleRank(best) {
			best = role
		}
	}
	return best, nil
}

func directShareRole(userID uint64, resourceType string, resourceID uint64) (string, error) {
	var share model.Share
	err := repo.Db.
		Where("resource_type = ? AND resource_id = ? AND shared_with = ?",
			resourceType, resourceID, userID).
		First(&share).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return share.Role, nil
}

// ResourceRole computes the maximum role userID holds on a resource across
// every applicable path: ownership, a direct share, and shares on any
// ancestor folder. A low direct share never downgrades a higher inherited
// one.
func ResourceRole(userID uint64, resourceType string, resourceID uint64) (string, error) {
	switch resourceType {
	case model.ResourceFile:
		return fileRole(userID, resourceID)
	case model.ResourceFolder:
		return folderRole(userID, resourceID)
	default:
		return "", fmt.Errorf("%w: invalid resource type %q", ErrValidation, resourceType)
	}
}

func fileRole(userID, fileID uint64) (string, error) {
	var file model.File
	if err := repo.Db.Where("id = ?", fileID).First(&file).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	if file.OwnerID == userID {
		return model.RoleEditor, nil
	}

	best, err := directShareRole(userID, model.ResourceFile, fileID)
	if err != nil {
		return "", err
	}
	if file.FolderID != nil {
		ancestors, err := folderAncestors(*file.FolderID)
		if err != nil {
			return "", err
		}
		inherited, err := maxSharedRole(userID, ancestors)
		if err != nil {
			return "", err
		}
		if model.RoleRank(inherited) > model.RoleRank(best) {
			best = inherited
		}
	}
	return best, nil
}

func folderRole(userID, folderID uint64) (string, error) {
	var folder model.Folder
	if err := repo.Db.Where("id = ?", folderID).First(&folder).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	if folder.OwnerID == userID {
		return model.RoleEditor, nil
	}
	ancestors, err := folderAncestors(folderID)
	if err != nil {
		return "", err
	}
	return maxSharedRole(userID, ancestors)
}

// CanAccess reports whether userID holds at least requiredRole on a resource.
func CanAccess(userID uint64, resourceType string, resourceID uint64, requiredRole string) (bool, error) {
	role, err := ResourceRole(userID, resourceType, resourceID)
	if err != nil {
		return false, err
	}
	return model.RoleRank(role) >= model.RoleRank(requiredRole), nil
}

// RequireAccess is CanAccess with the common deny translation.
func RequireAccess(userID uint64, resourceType string, resourceID uint64, requiredRole string) error {
	ok, err := CanAccess(userID, resourceType, resourceID, requiredRole)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}
