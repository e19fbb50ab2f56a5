package service

import (
	"CloudVault/internal/repo"
	"CloudVault/model"
	"fmt"
	"path"
	"strings"
)

// ArchiveEntry is one zip member of a folder download.
type ArchiveEntry struct {
	ZipPath string
	File    *model.File
	IsDir   bool
}

func sanitizeArchiveName(name string) string {
	clean := strings.TrimSpace(name)
	clean = strings.ReplaceAll(clean, "\\", "/")
	clean = strings.ReplaceAll(clean, "/", "_")
	clean = strings.ReplaceAll(clean, "..", "_")
	if clean == "" || clean == "." {
		return "unnamed"
	}
	return clean
}

// BuildArchiveEntries walks a live folder and lays its subtree out as zip
// paths, directories first so empty folders survive the archive.
func BuildArchiveEntries(folderID uint64) ([]ArchiveEntry, error) {
	folder, err := GetFolder(folderID)
	if err != nil {
		return nil, err
	}
	root := sanitizeArchiveName(folder.Name)
	entries := []ArchiveEntry{{ZipPath: root + "/", IsDir: true}}
	if err := collectArchiveChildren(folderID, root, &entries, 0); err != nil {
		return nil, err
	}
	return entries, nil
}

func collectArchiveChildren(folderID uint64, prefix string, entries *[]ArchiveEntry, depth int) error {
	if depth >= maxTreeDepth {
		return fmt.Errorf("folder tree deeper than %d, possible cycle", maxTreeDepth)
	}
	var files []model.File
	if err := repo.Db.
		Where("folder_id = ? AND is_deleted = 0", folderID).
		Order("name ASC").
		Find(&files).Error; err != nil {
		return err
	}
	for i := range files {
		file := files[i]
		*entries = append(*entries, ArchiveEntry{
			ZipPath: path.Join(prefix, sanitizeArchiveName(file.Name)),
			File:    &file,
		})
	}
	var folders []model.Folder
	if err := repo.Db.
		Where("parent_id = ? AND is_deleted = 0", folderID).
		Order("name ASC").
		Find(&folders).Error; err != nil {
		return err
	}
	for _, child := range folders {
		childPath := path.Join(prefix, sanitizeArchiveName(child.Name))
		*entries = append(*entries, ArchiveEntry{ZipPath: childPath + "/", IsDir: true})
		if err := collectArchiveChildren(child.ID, childPath, entries, depth+1); err != nil {
			return err
		}
	}
	return nil
}
