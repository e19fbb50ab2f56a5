package service

import (
	"CloudVault/internal/dto"
	"CloudVault/internal/repo"
	"CloudVault/model"
	"errors"
	"time"

	"gorm.io/gorm"
)

// GetInvite resolves a pending invite token for the accept page. Expired
// invites answer Gone-style with ErrExpired.
func GetInvite(token string) (*dto.InviteDetails, error) {
	var invite model.PendingShare
	if err := repo.Db.Where("token = ?", token).First(&invite).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if time.Now().After(invite.ExpiresAt) {
		return nil, ErrExpired
	}
	name, err := resourceName(invite.ResourceType, invite.ResourceID)
	if err != nil {
		return nil, err
	}
	inviter, err := FindUserById(invite.InvitedBy)
	if err != nil {
		return nil, err
	}
	return &dto.InviteDetails{
		Token:        invite.Token,
		ResourceType: invite.ResourceType,
		ResourceID:   invite.ResourceID,
		ResourceName: name,
		Role:         invite.Role,
		InvitedBy:    inviter.Email,
		ExpiresAt:    invite.ExpiresAt,
	}, nil
}

// AcceptInvite converts one pending invite into a share for the logged-in
// user. The token is the credential, so the grant lands on whichever account
// presents it; accepting twice is a no-op while the invite row exists.
func AcceptInvite(userID uint64, token string) error {
	user, err := FindUserById(userID)
	if err != nil {
		return err
	}
	var invite model.PendingShare
	if err := repo.Db.Where("token = ?", token).First(&invite).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if time.Now().After(invite.ExpiresAt) {
		return ErrExpired
	}

	share := model.Share{
		ResourceType: invite.ResourceType,
		ResourceID:   invite.ResourceID,
		SharedWith:   user.ID,
		Role:         invite.Role,
		SharedBy:     invite.InvitedBy,
	}
	if err := repo.Db.Create(&share).Error; err != nil && !repo.IsDuplicateEntry(err) {
		return err
	}
	return repo.Db.Delete(&invite).Error
}
