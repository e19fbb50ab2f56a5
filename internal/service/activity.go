package service

import (
	"CloudVault/internal/repo"
	"CloudVault/model"
	"encoding/json"
	"log"
)

// LogActivity appends an audit record. Logging never fails the operation
// it describes, a write error only reaches the server log.
func LogActivity(actorID uint64, action, resourceType string, resourceID uint64,
	context map[string]interface{}) {
	var payload string
	if len(context) > 0 {
		raw, err := json.Marshal(context)
		if err != nil {
			log.Println("marshal activity context fail:", err)
		} else {
			payload = string(raw)
		}
	}
	entry := &model.Activity{
		ActorID:      actorID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Context:      payload,
	}
	if err := repo.Db.Create(entry).Error; err != nil {
		log.Println("record activity fail:", err)
	}
}

// ListUserActivity returns the actor's newest records first.
func ListUserActivity(actorID uint64, limit int) ([]model.Activity, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var entries []model.Activity
	err := repo.Db.
		Where("actor_id = ?", actorID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

// ListResourceActivity returns the audit trail of one resource. Anyone who
// can view the resource can read its trail.
func ListResourceActivity(userID uint64, resourceType string, resourceID uint64, limit int) ([]model.Activity, error) {
	if err := RequireAccess(userID, resourceType, resourceID, model.RoleViewer); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var entries []model.Activity
	err := repo.Db.
		Where("resource_type = ? AND resource_id = ?", resourceType, resourceID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
