package router

import (
	"CloudVault/internal/handler"
	"CloudVault/utils"

	"github.com/gin-gonic/gin"
)

// InitRouter builds API routes.
func InitRouter() *gin.Engine {
	r := gin.Default()
	r.Use(utils.CORSMiddleware())

	api := r.Group("/api")
	{
		api.POST("/register", handler.Register)
		api.POST("/login", handler.Login)
		api.POST("/verify-email/send", handler.SendVerifyOtp)
		api.POST("/verify-email", handler.VerifyEmail)
		api.POST("/forgot-password", handler.ForgotPassword)
		api.POST("/reset-password", handler.ResetPassword)

		// anonymous link access
		api.POST("/public/:token", handler.AccessPublicLink)
		api.POST("/public/:token/download", handler.PublicLinkDownload)

		// invite details are public, accepting needs a login
		api.GET("/invites/:token", handler.GetInvite)
		api.POST("/invites/:token/accept", utils.OptionalAuthMiddleware(), handler.AcceptInvite)

		auth := api.Group("")
		auth.Use(utils.AuthMiddleware())

		auth.GET("/me", handler.Me)
		auth.GET("/search", handler.Search)
		auth.GET("/activity", handler.ListMyActivity)
		auth.GET("/activity/:type/:id", handler.ListResourceActivity)

		folder := auth.Group("/folders")
		{
			folder.POST("", handler.CreateFolder)
			folder.GET("", handler.ListFolders)
			folder.GET("/:id/contents", handler.FolderContents)
			folder.GET("/:id/breadcrumbs", handler.FolderBreadcrumbs)
			folder.GET("/:id/archive", handler.DownloadFolderArchive)
			folder.POST("/:id/rename", handler.RenameFolder)
			folder.POST("/:id/move", handler.MoveFolder)
			folder.DELETE("/:id", handler.TrashFolder)
		}

		file := auth.Group("/files")
		{
			file.POST("/upload", handler.UploadFile)
			file.GET("/:id/download", handler.DownloadFile)
			file.GET("/:id/preview", handler.PreviewFile)
			file.GET("/:id/versions", handler.ListVersions)
			file.POST("/:id/rollback", handler.RollbackFile)
			file.POST("/:id/rename", handler.RenameFile)
			file.POST("/:id/move", handler.MoveFile)
			file.DELETE("/:id", handler.TrashFile)
		}

		trash := auth.Group("/trash")
		{
			trash.GET("", handler.ListTrash)
			trash.POST("/files/:id/restore", handler.RestoreFile)
			trash.POST("/folders/:id/restore", handler.RestoreFolder)
			trash.DELETE("/files/:id", handler.PurgeFile)
			trash.DELETE("/folders/:id", handler.PurgeFolder)
			trash.DELETE("", handler.EmptyTrash)
		}

		share := auth.Group("/shares")
		{
			share.POST("", handler.ShareResource)
			share.GET("/with-me", handler.SharedWithMe)
			share.GET("/:type/:id", handler.ListResourceShares)
			share.DELETE("/:id", handler.RevokeShare)
		}

		link := auth.Group("/links")
		{
			link.POST("", handler.CreatePublicLink)
			link.GET("", handler.ListPublicLinks)
			link.DELETE("/:id", handler.RevokePublicLink)
		}

		star := auth.Group("/stars")
		{
			star.POST("", handler.StarResource)
			star.GET("", handler.ListStarred)
			star.DELETE("/:type/:id", handler.UnstarResource)
		}
	}
	return r
}
