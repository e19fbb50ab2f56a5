package service

import (
	"CloudVault/config"
	"CloudVault/internal/repo"
	"CloudVault/internal/storage"
	"CloudVault/model"
	"CloudVault/utils"
	"fmt"
	"log"
	"os"
	"testing"
)

// TestMain sets up the test environment.
func TestMain(m *testing.M) {
	config.InitConfig()
	repo.InitMysqlTest()
	repo.InitRedis()
	storage.InitMinioTest()
	// point service-level operations at the test bucket
	config.AppConfig.BucketName = config.AppConfig.BucketNameTest

	cleanAllTables()

	code := m.Run()
	os.Exit(code)
}

var testTables = []string{
	"activities",
	"stars",
	"public_links",
	"pending_shares",
	"shares",
	"file_versions",
	"files",
	"folders",
	"users",
}

func cleanAllTables() {
	repo.Db.Exec("SET FOREIGN_KEY_CHECKS = 0")
	for _, table := range testTables {
		repo.Db.Exec("DELETE FROM " + table)
	}
	repo.Db.Exec("SET FOREIGN_KEY_CHECKS = 1")
	log.Println("[testmain] all tables cleaned")
}

func cleanTables(t *testing.T) {
	t.Helper()
	repo.Db.Exec("SET FOREIGN_KEY_CHECKS = 0")
	for _, table := range testTables {
		if err := repo.Db.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("clean %s failed: %v", table, err)
		}
	}
	repo.Db.Exec("SET FOREIGN_KEY_CHECKS = 1")
}

func newTestUser(t *testing.T, email string) *model.User {
	t.Helper()
	hash, err := utils.GetPwd("123456")
	if err != nil {
		t.Fatal(err)
	}
	user := &model.User{
		Email:         email,
		Password:      hash,
		Name:          "tester",
		EmailVerified: true,
	}
	if err := repo.Db.Create(user).Error; err != nil {
		t.Fatal(err)
	}
	return user
}

func newTestFolder(t *testing.T, ownerID uint64, name string, parentID *uint64) *model.Folder {
	t.Helper()
	folder, err := CreateFolder(ownerID, name, parentID)
	if err != nil {
		t.Fatalf("create folder %s failed: %v", name, err)
	}
	return folder
}

func newTestFile(t *testing.T, ownerID uint64, folderID *uint64, name string) *model.File {
	t.Helper()
	file := &model.File{
		Name:       name,
		MimeType:   "text/plain",
		Size:       11,
		StorageKey: fmt.Sprintf("test/%d/%s", ownerID, name),
		OwnerID:    ownerID,
		FolderID:   folderID,
	}
	if err := repo.Db.Create(file).Error; err != nil {
		t.Fatalf("create file %s failed: %v", name, err)
	}
	version := &model.FileVersion{
		FileID:        file.ID,
		VersionNumber: 1,
		StorageKey:    file.StorageKey,
		Size:          file.Size,
	}
	if err := repo.Db.Create(version).Error; err != nil {
		t.Fatalf("create version for %s failed: %v", name, err)
	}
	return file
}
