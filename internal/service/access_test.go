package service

import (
	"CloudVault/internal/repo"
	"CloudVault/model"
	"errors"
	"testing"
)

func grantShare(t *testing.T, resourceType string, resourceID, userID, sharerID uint64, role string) {
	t.Helper()
	share := &model.Share{
		ResourceType: resourceType,
		ResourceID:   resourceID,
		SharedWith:   userID,
		Role:         role,
		SharedBy:     sharerID,
	}
	if err := repo.Db.Create(share).Error; err != nil {
		t.Fatal(err)
	}
}

func TestOwnerAlwaysEditor(t *testing.T) {
	cleanTables(t)
	owner := newTestUser(t, "owner@test.com")
	file := newTestFile(t, owner.ID, nil, "notes.txt")

	role, err := ResourceRole(owner.ID, model.ResourceFile, file.ID)
	if err != nil {
		t.Fatal(err)
	}
	if role != model.RoleEditor {
		t.Fatalf("owner role = %q, want EDITOR", role)
	}
}

func TestNoShareNoAccess(t *testing.T) {
	cleanTables(t)
	owner := newTestUser(t, "owner@test.com")
	stranger := newTestUser(t, "stranger@test.com")
	file := newTestFile(t, owner.ID, nil, "secret.txt")

	ok, err := CanAccess(stranger.ID, model.ResourceFile, file.ID, model.RoleViewer)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("stranger should not see the file")
	}
	if err := RequireAccess(stranger.ID, model.ResourceFile, file.ID, model.RoleViewer); !errors.Is(err, ErrForbidden) {
		t.Fatalf("RequireAccess = %v, want ErrForbidden", err)
	}
}

func TestEditorImpliesViewer(t *testing.T) {
	cleanTables(t)
	owner := newTestUser(t, "owner@test.com")
	editor := newTestUser(t, "editor@test.com")
	file := newTestFile(t, owner.ID, nil, "doc.txt")
	grantShare(t, model.ResourceFile, file.ID, editor.ID, owner.ID, model.RoleEditor)

	ok, err := CanAccess(editor.ID, model.ResourceFile, file.ID, model.RoleViewer)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("editor grant should satisfy a viewer requirement")
	}
}

func TestViewerCannotEdit(t *testing.T) {
	cleanTables(t)
	owner := newTestUser(t, "owner@test.com")
	viewer := newTestUser(t, "viewer@test.com")
	file := newTestFile(t, owner.ID, nil, "doc.txt")
	grantShare(t, model.ResourceFile, file.ID, viewer.ID, owner.ID, model.RoleViewer)

	ok, err := CanAccess(viewer.ID, model.ResourceFile, file.ID, model.RoleEditor)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("viewer grant must not satisfy an editor requirement")
	}
}

func TestFolderShareInheritsToNestedFile(t *testing.T) {
	cleanTables(t)
	owner := newTestUser(t, "owner@test.com")
	guest := newTestUser(t, "guest@test.com")

	top := newTestFolder(t, owner.ID, "top", nil)
	mid := newTestFolder(t, owner.ID, "mid", &top.ID)
	leaf := newTestFolder(t, owner.ID, "leaf", &mid.ID)
	file := newTestFile(t, owner.ID, &leaf.ID, "deep.txt")

	grantShare(t, model.ResourceFolder, top.ID, guest.ID, owner.ID, model.RoleViewer)

	role, err := ResourceRole(guest.ID, model.ResourceFile, file.ID)
	if err != nil {
		t.Fatal(err)
	}
	if role != model.RoleViewer {
		t.Fatalf("inherited role = %q, want VIEWER", role)
	}

	role, err = ResourceRole(guest.ID, model.ResourceFolder, leaf.ID)
	if err != nil {
		t.Fatal(err)
	}
	if role != model.RoleViewer {
		t.Fatalf("nested folder role = %q, want VIEWER", role)
	}
}

func TestMaxRoleAcrossPaths(t *testing.T) {
	cleanTables(t)
	owner := newTestUser(t, "owner@test.com")
	guest := newTestUser(t, "guest@test.com")

	top := newTestFolder(t, owner.ID, "top", nil)
	sub := newTestFolder(t, owner.ID, "sub", &top.ID)
	file := newTestFile(t, owner.ID, &sub.ID, "both.txt")

	// viewer via ancestor folder, editor directly on the file
	grantShare(t, model.ResourceFolder, top.ID, guest.ID, owner.ID, model.RoleViewer)
	grantShare(t, model.ResourceFile, file.ID, guest.ID, owner.ID, model.RoleEditor)

	role, err := ResourceRole(guest.ID, model.ResourceFile, file.ID)
	if err != nil {
		t.Fatal(err)
	}
	if role != model.RoleEditor {
		t.Fatalf("role = %q, want EDITOR to win across paths", role)
	}
}

func TestFolderAncestorsBounded(t *testing.T) {
	cleanTables(t)
	owner := newTestUser(t, "owner@test.com")
	parent := newTestFolder(t, owner.ID, "a", nil)
	child := newTestFolder(t, owner.ID, "b", &parent.ID)

	ids, err := folderAncestors(child.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 {
		t.Fatalf("ancestors = %v, want the folder and its parent", ids)
	}
}
