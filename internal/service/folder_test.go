package service

import (
	"errors"
	"testing"
)

func TestCreateFolderDuplicateName(t *testing.T) {
	cleanTables(t)
	owner := newTestUser(t, "owner@test.com")
	newTestFolder(t, owner.ID, "docs", nil)

	if _, err := CreateFolder(owner.ID, "docs", nil); !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate folder = %v, want ErrConflict", err)
	}
	// same name under a different parent is fine
	parent := newTestFolder(t, owner.ID, "other", nil)
	if _, err := CreateFolder(owner.ID, "docs", &parent.ID); err != nil {
		t.Fatalf("same name in another parent failed: %v", err)
	}
}

func TestCreateFolderMissingParent(t *testing.T) {
	cleanTables(t)
	owner := newTestUser(t, "owner@test.com")
	missing := uint64(99999)
	if _, err := CreateFolder(owner.ID, "orphan", &missing); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing parent = %v, want ErrNotFound", err)
	}
}

func TestMoveFolderCycleRefused(t *testing.T) {
	cleanTables(t)
	owner := newTestUser(t, "owner@test.com")
	top := newTestFolder(t, owner.ID, "top", nil)
	mid := newTestFolder(t, owner.ID, "mid", &top.ID)
	leaf := newTestFolder(t, owner.ID, "leaf", &mid.ID)

	if err := MoveFolder(owner.ID, top.ID, &leaf.ID); !errors.Is(err, ErrValidation) {
		t.Fatalf("move into own subtree = %v, want ErrValidation", err)
	}
	if err := MoveFolder(owner.ID, top.ID, &top.ID); !errors.Is(err, ErrValidation) {
		t.Fatalf("move into itself = %v, want ErrValidation", err)
	}
}

func TestMoveFolderReparents(t *testing.T) {
	cleanTables(t)
	owner := newTestUser(t, "owner@test.com")
	a := newTestFolder(t, owner.ID, "a", nil)
	b := newTestFolder(t, owner.ID, "b", nil)

	if err := MoveFolder(owner.ID, b.ID, &a.ID); err != nil {
		t.Fatalf("MoveFolder failed: %v", err)
	}
	moved, err := GetFolder(b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if moved.ParentID == nil || *moved.ParentID != a.ID {
		t.Fatalf("parent = %v, want %d", moved.ParentID, a.ID)
	}
}

func TestBreadcrumbsRootFirst(t *testing.T) {
	cleanTables(t)
	owner := newTestUser(t, "owner@test.com")
	top := newTestFolder(t, owner.ID, "top", nil)
	mid := newTestFolder(t, owner.ID, "mid", &top.ID)
	leaf := newTestFolder(t, owner.ID, "leaf", &mid.ID)

	chain, err := Breadcrumbs(leaf.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(chain) != 3 {
		t.Fatalf("chain length = %d, want 3", len(chain))
	}
	if chain[0].ID != top.ID || chain[2].ID != leaf.ID {
		t.Fatalf("chain order = [%d %d %d], want root first", chain[0].ID, chain[1].ID, chain[2].ID)
	}
}

func TestFolderContentsSkipsTrashed(t *testing.T) {
	cleanTables(t)
	owner := newTestUser(t, "owner@test.com")
	parent := newTestFolder(t, owner.ID, "parent", nil)
	newTestFolder(t, owner.ID, "live", &parent.ID)
	trashed := newTestFile(t, owner.ID, &parent.ID, "dead.txt")
	newTestFile(t, owner.ID, &parent.ID, "alive.txt")

	if err := TrashFile(owner.ID, trashed.ID); err != nil {
		t.Fatal(err)
	}

	folders, files, err := FolderContents(parent.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(folders) != 1 || len(files) != 1 {
		t.Fatalf("contents = %d folders, %d files, want 1 and 1", len(folders), len(files))
	}
}

func TestRenameFolderConflict(t *testing.T) {
	cleanTables(t)
	owner := newTestUser(t, "owner@test.com")
	newTestFolder(t, owner.ID, "first", nil)
	second := newTestFolder(t, owner.ID, "second", nil)

	if err := RenameFolder(owner.ID, second.ID, "first"); !errors.Is(err, ErrConflict) {
		t.Fatalf("rename onto taken name = %v, want ErrConflict", err)
	}
}
