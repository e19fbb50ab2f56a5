package service

import (
	"CloudVault/config"
	"CloudVault/internal/storage"
	"CloudVault/utils"
	"context"
	"fmt"
	"time"
)

// PreviewURL generates a presigned URL that renders the current version
// inline instead of forcing a download.
func PreviewURL(ctx context.Context, fileID uint64, expiry time.Duration) (string, error) {
	file, err := GetFile(fileID)
	if err != nil {
		return "", err
	}
	contentType := file.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	safeName := utils.SanitizeHeaderFilename(file.Name)
	return storage.Default.PresignedGetObjectWithResponse(
		ctx,
		config.AppConfig.BucketName,
		file.StorageKey,
		expiry,
		map[string]string{
			"response-content-type":        contentType,
			"response-content-disposition": fmt.Sprintf("inline; filename=\"%s\"", safeName),
		},
	)
}
