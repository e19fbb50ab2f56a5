package service

import (
	"CloudVault/config"
	"CloudVault/internal/dto"
	"CloudVault/internal/repo"
	"CloudVault/model"
	"CloudVault/utils"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func linkCacheKey(token string) string {
	return "link:" + token
}

type cachedLink struct {
	ResourceType string     `json:"resource_type"`
	ResourceID   uint64     `json:"resource_id"`
	Role         string     `json:"role"`
	PasswordHash string     `json:"password_hash,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}

// CreatePublicLink mints an anonymous access token carrying role. The
// creator must hold at least the role being handed out; an optional password
// and expiry gate the link.
func CreatePublicLink(ctx context.Context, creatorID uint64, resourceType string, resourceID uint64,
	role, password string, expiresAt *time.Time) (*model.PublicLink, error) {
	if role == "" {
		role = model.RoleViewer
	}
	if model.RoleRank(role) == 0 {
		return nil, fmt.Errorf("%w: role must be VIEWER or EDITOR", ErrValidation)
	}
	if err := RequireAccess(creatorID, resourceType, resourceID, role); err != nil {
		return nil, err
	}
	if expiresAt != nil && expiresAt.Before(time.Now()) {
		return nil, fmt.Errorf("%w: expiry already passed", ErrValidation)
	}

	var hash string
	if password != "" {
		var err error
		hash, err = utils.GetPwd(password)
		if err != nil {
			return nil, err
		}
	}
	link := &model.PublicLink{
		Token:        utils.NewSecureToken(),
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Role:         role,
		PasswordHash: hash,
		ExpiresAt:    expiresAt,
		CreatedBy:    creatorID,
	}
	if err := repo.Db.Create(link).Error; err != nil {
		return nil, err
	}
	cachePublicLink(ctx, link)
	return link, nil
}

// cachePublicLink writes the hot-path copy into Redis. Cache misses fall
// back to MySQL, so failures here only cost latency.
func cachePublicLink(ctx context.Context, link *model.PublicLink) {
	payload, err := json.Marshal(cachedLink{
		ResourceType: link.ResourceType,
		ResourceID:   link.ResourceID,
		Role:         link.Role,
		PasswordHash: link.PasswordHash,
		ExpiresAt:    link.ExpiresAt,
	})
	if err != nil {
		return
	}
	ttl := config.AppConfig.LinkCacheTTL
	if link.ExpiresAt != nil {
		if until := time.Until(*link.ExpiresAt); until < ttl {
			ttl = until
		}
	}
	if ttl <= 0 {
		return
	}
	if err := repo.Redis.Set(ctx, linkCacheKey(link.Token), payload, ttl).Err(); err != nil {
		log.Println("cache public link fail:", err)
	}
}

// AccessPublicLink resolves an anonymous link token. Unknown tokens are
// NotFound, expired links are Expired, wrong or missing passwords on a
// gated link come back as invalid credentials.
func AccessPublicLink(ctx context.Context, token, password string) (*dto.PublicLinkAccess, error) {
	entry, err := loadLink(ctx, token)
	if err != nil {
		return nil, err
	}
	if entry.ExpiresAt != nil && time.Now().After(*entry.ExpiresAt) {
		return nil, ErrExpired
	}
	if entry.PasswordHash != "" {
		if password == "" || !utils.CheckPwd(password, entry.PasswordHash) {
			return nil, ErrInvalidCredentials
		}
	}
	return &dto.PublicLinkAccess{
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		Role:         entry.Role,
	}, nil
}

func loadLink(ctx context.Context, token string) (*cachedLink, error) {
	raw, err := repo.Redis.Get(ctx, linkCacheKey(token)).Result()
	if err == nil {
		var entry cachedLink
		if err := json.Unmarshal([]byte(raw), &entry); err == nil {
			return &entry, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		log.Println("public link cache read fail:", err)
	}

	var link model.PublicLink
	if err := repo.Db.Where("token = ?", token).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	cachePublicLink(ctx, &link)
	return &cachedLink{
		ResourceType: link.ResourceType,
		ResourceID:   link.ResourceID,
		Role:         link.Role,
		PasswordHash: link.PasswordHash,
		ExpiresAt:    link.ExpiresAt,
	}, nil
}

// RevokePublicLink deletes a link and evicts its cache entry.
func RevokePublicLink(ctx context.Context, ownerID, linkID uint64) error {
	var link model.PublicLink
	if err := repo.Db.Where("id = ?", linkID).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if link.CreatedBy != ownerID {
		return ErrForbidden
	}
	if err := repo.Db.Delete(&link).Error; err != nil {
		return err
	}
	if err := repo.Redis.Del(ctx, linkCacheKey(link.Token)).Err(); err != nil {
		log.Println("evict public link cache fail:", err)
	}
	return nil
}

// ListPublicLinks lists the caller's links.
func ListPublicLinks(ownerID uint64) ([]model.PublicLink, error) {
	var links []model.PublicLink
	err := repo.Db.
		Where("created_by = ?", ownerID).
		Order("created_at DESC").
		Find(&links).Error
	return links, err
}
