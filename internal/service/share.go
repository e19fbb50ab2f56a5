package service

import (
	"CloudVault/config"
	"CloudVault/internal/dto"
	"CloudVault/internal/repo"
	"CloudVault/model"
	"CloudVault/utils"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// resourceName resolves the display name of a file or folder, deleted or not.
func resourceName(resourceType string, resourceID uint64) (string, error) {
	switch resourceType {
	case model.ResourceFile:
		var file model.File
		if err := repo.Db.Where("id = ?", resourceID).First(&file).Error; err != nil {
			return "", err
		}
		return file.Name, nil
	case model.ResourceFolder:
		var folder model.Folder
		if err := repo.Db.Where("id = ?", resourceID).First(&folder).Error; err != nil {
			return "", err
		}
		return folder.Name, nil
	default:
		return "", fmt.Errorf("%w: unknown resource type %q", ErrValidation, resourceType)
	}
}

// resourceOwner returns the owner of a live file or folder.
func resourceOwner(resourceType string, resourceID uint64) (uint64, error) {
	switch resourceType {
	case model.ResourceFile:
		file, err := GetFile(resourceID)
		if err != nil {
			return 0, err
		}
		return file.OwnerID, nil
	case model.ResourceFolder:
		folder, err := GetFolder(resourceID)
		if err != nil {
			return 0, err
		}
		return folder.OwnerID, nil
	default:
		return 0, fmt.Errorf("%w: unknown resource type %q", ErrValidation, resourceType)
	}
}

// ShareResource grants a role on a file or folder. The sharer needs EDITOR
// access, which owners always hold. A registered recipient gets a Share row
// immediately, an unknown email gets a PendingShare holding the grant until
// they register. Either way the recipient is mailed.
func ShareResource(ctx context.Context, sharerID uint64, resourceType string, resourceID uint64,
	recipientEmail, role string) (*dto.ShareOutcome, error) {
	if model.RoleRank(role) == 0 {
		return nil, fmt.Errorf("%w: role must be VIEWER or EDITOR", ErrValidation)
	}
	recipientEmail = strings.ToLower(strings.TrimSpace(recipientEmail))
	if recipientEmail == "" {
		return nil, fmt.Errorf("%w: recipient email is required", ErrValidation)
	}

	if err := RequireAccess(sharerID, resourceType, resourceID, model.RoleEditor); err != nil {
		return nil, err
	}

	sharer, err := FindUserById(sharerID)
	if err != nil {
		return nil, err
	}
	if sharer.Email == recipientEmail {
		return nil, fmt.Errorf("%w: cannot share with yourself", ErrValidation)
	}

	name, err := resourceName(resourceType, resourceID)
	if err != nil {
		return nil, err
	}

	recipient, err := FindUserByEmail(recipientEmail)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if recipient != nil {
		share := &model.Share{
			ResourceType: resourceType,
			ResourceID:   resourceID,
			SharedWith:   recipient.ID,
			Role:         role,
			SharedBy:     sharerID,
		}
		if err := repo.Db.Create(share).Error; err != nil {
			if repo.IsDuplicateEntry(err) {
				return nil, fmt.Errorf("%w: already shared with this user", ErrConflict)
			}
			return nil, err
		}
		LogActivity(sharerID, model.ActionShare, resourceType, resourceID,
			map[string]interface{}{"shared_with": recipient.ID, "role": role})
		link := fmt.Sprintf("%s/shared", config.AppConfig.FrontendURL)
		NotifyMail(ctx, recipientEmail,
			fmt.Sprintf("%s shared %q with you", sharer.Email, name),
			shareNotifyBody(sharer.Email, name, role, link))
		return &dto.ShareOutcome{Shared: true, ShareID: share.ID}, nil
	}

	invite := &model.PendingShare{
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Email:        recipientEmail,
		Role:         role,
		InvitedBy:    sharerID,
		Token:        utils.NewSecureToken(),
		ExpiresAt:    time.Now().Add(config.AppConfig.InviteTTL),
	}
	if err := repo.Db.Create(invite).Error; err != nil {
		return nil, err
	}
	LogActivity(sharerID, model.ActionShare, resourceType, resourceID,
		map[string]interface{}{"invited_email": recipientEmail, "role": role})
	acceptLink := fmt.Sprintf("%s/invites/%s", config.AppConfig.FrontendURL, invite.Token)
	NotifyMail(ctx, recipientEmail,
		fmt.Sprintf("%s invited you to %q", sharer.Email, name),
		inviteBody(sharer.Email, name, role, acceptLink))
	return &dto.ShareOutcome{Invited: true, Expires: &invite.ExpiresAt}, nil
}

// RevokeShare removes a grant. Only the resource owner may revoke.
func RevokeShare(ownerID, shareID uint64) error {
	var share model.Share
	if err := repo.Db.Where("id = ?", shareID).First(&share).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	resOwner, err := resourceOwner(share.ResourceType, share.ResourceID)
	if err != nil {
		return err
	}
	if resOwner != ownerID {
		return ErrForbidden
	}
	if err := repo.Db.Delete(&share).Error; err != nil {
		return err
	}
	LogActivity(ownerID, model.ActionUnshare, share.ResourceType, share.ResourceID,
		map[string]interface{}{"shared_with": share.SharedWith})
	return nil
}

// ListResourceShares lists grants on one resource, owner only.
func ListResourceShares(ownerID uint64, resourceType string, resourceID uint64) ([]model.Share, error) {
	resOwner, err := resourceOwner(resourceType, resourceID)
	if err != nil {
		return nil, err
	}
	if resOwner != ownerID {
		return nil, ErrForbidden
	}
	var shares []model.Share
	err = repo.Db.
		Where("resource_type = ? AND resource_id = ?", resourceType, resourceID).
		Order("created_at ASC").
		Find(&shares).Error
	return shares, err
}

// SharedWithMe returns the live files and folders shared to the user.
func SharedWithMe(userID uint64) ([]model.File, []model.Folder, error) {
	var fileIDs []uint64
	if err := repo.Db.Model(&model.Share{}).
		Where("shared_with = ? AND resource_type = ?", userID, model.ResourceFile).
		Pluck("resource_id", &fileIDs).Error; err != nil {
		return nil, nil, err
	}
	var folderIDs []uint64
	if err := repo.Db.Model(&model.Share{}).
		Where("shared_with = ? AND resource_type = ?", userID, model.ResourceFolder).
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
