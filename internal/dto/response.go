package dto

import "time"

// ShareOutcome distinguishes a direct share from a pending invitation.
type ShareOutcome struct {
	Shared  bool       `json:"shared"`
	Invited bool       `json:"invited"`
	ShareID uint64     `json:"share_id,omitempty"`
	Expires *time.Time `json:"expires_at,omitempty"`
}

// InviteDetails describes a pending invite for the accept page.
type InviteDetails struct {
	Token        string    `json:"token"`
	ResourceType string    `json:"resource_type"`
	ResourceID   uint64    `json:"resource_id"`
	ResourceName string    `json:"resource_name"`
	Role         string    `json:"role"`
	InvitedBy    string    `json:"invited_by"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// PublicLinkAccess is what an anonymous caller gets back for a valid link.
type PublicLinkAccess struct {
	ResourceType string `json:"resource_type"`
	ResourceID   uint64 `json:"resource_id"`
	Role         string `json:"role"`
}

// UploadResult reports the file and version an upload landed on.
type UploadResult struct {
	FileID  uint64 `json:"file_id"`
	Version int    `json:"version"`
}

// RegisterResult carries soft failures alongside a successful registration.
type RegisterResult struct {
	UserID       uint64   `json:"user_id"`
	SoftFailures []string `json:"soft_failures,omitempty"`
}
