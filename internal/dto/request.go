package dto

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SendOtpRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Otp   string `json:"otp" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Otp         string `json:"otp" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type CreateFolderRequest struct {
	Name     string  `json:"name" binding:"required"`
	ParentID *uint64 `json:"parent_id"`
}

type RenameRequest struct {
	NewName string `json:"new_name" binding:"required"`
}

type MoveRequest struct {
	TargetFolderID *uint64 `json:"target_folder_id"`
}

type ShareResourceRequest struct {
	ResourceType   string `json:"resource_type" binding:"required"`
	ResourceID     uint64 `json:"resource_id" binding:"required"`
	RecipientEmail string `json:"recipient_email" binding:"required,email"`
	Role           string `json:"role" binding:"required"`
}

type CreatePublicLinkRequest struct {
	ResourceType string  `json:"resource_type" binding:"required"`
	ResourceID   uint64  `json:"resource_id" binding:"required"`
	Role         string  `json:"role"`
	Password     string  `json:"password"`
	ExpiresAt    *string `json:"expires_at"` // RFC 3339
}

type AccessPublicLinkRequest struct {
	Password string `json:"password"`
}

type StarRequest struct {
	ResourceType string `json:"resource_type" binding:"required"`
	ResourceID   uint64 `json:"resource_id" binding:"required"`
}

type SearchRequest struct {
	Query string `json:"query" binding:"required"`
}

type RollbackRequest struct {
	VersionNumber int `json:"version_number" binding:"required,gte=1"`
}
