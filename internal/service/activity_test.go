package service

import (
	"CloudVault/model"
	"errors"
	"testing"
)

func TestResourceActivityVisibleToViewer(t *testing.T) {
	cleanTables(t)
	owner := newTestUser(t, "owner@test.com")
	viewer := newTestUser(t, "viewer@test.com")
	stranger := newTestUser(t, "stranger@test.com")
	file := newTestFile(t, owner.ID, nil, "audited.txt")
	grantShare(t, model.ResourceFile, file.ID, viewer.ID, owner.ID, model.RoleViewer)

	LogActivity(owner.ID, model.ActionRename, model.ResourceFile, file.ID,
		map[string]interface{}{"new_name": "audited.txt"})

	entries, err := ListResourceActivity(viewer.ID, model.ResourceFile, file.ID, 10)
	if err != nil {
		t.Fatalf("viewer reading the trail = %v, want success", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected at least one record")
	}

	if _, err := ListResourceActivity(stranger.ID, model.ResourceFile, file.ID, 10); !errors.Is(err, ErrForbidden) {
		t.Fatalf("stranger reading the trail = %v, want ErrForbidden", err)
	}
}
