package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/urgelog/internal/db"
)

func TestReplacementActionCreateRendersGuidance(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewReplacementActionService(db.DB)

	view, err := svc.Create(ActionInput{
		Title:    "出门散步",
		Category: "运动",
		Guidance: "**十分钟**就够了",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if !strings.Contains(view.GuidanceHTML, "<strong>十分钟</strong>") {
		t.Fatalf("markdown not rendered: %q", view.GuidanceHTML)
	}
	if view.Status != ActionStatusActive {
		t.Fatalf("expected default active status, got %s", view.Status)
	}
}

func TestReplacementActionSanitizesGuidance(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewReplacementActionService(db.DB)

	view, err := svc.Create(ActionInput{
		Title:    "深呼吸",
		Guidance: "吸气四秒<script>alert(1)</script>",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if strings.Contains(view.GuidanceHTML, "<script>") {
		t.Fatalf("script tag survived sanitization: %q", view.GuidanceHTML)
	}
	if !strings.Contains(view.GuidanceHTML, "吸气四秒") {
		t.Fatalf("text content lost: %q", view.GuidanceHTML)
	}
}

func TestReplacementActionListFilterAndOrder(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewReplacementActionService(db.DB)

	if _, err := svc.Create(ActionInput{Title: "喝水", Category: "饮食", SortOrder: 2}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := svc.Create(ActionInput{Title: "拉伸", Category: "运动", SortOrder: 1}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := svc.Create(ActionInput{Title: "冥想", Category: "运动", SortOrder: 3, Status: "hidden"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	all, err := svc.List(ActionFilter{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 actions, got %d", len(all))
	}
	if all[0].Title != "拉伸" {
		t.Fatalf("expected sort_order ordering, got %s first", all[0].Title)
	}

	active, err := svc.List(ActionFilter{Category: "运动", Status: ActionStatusActive})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(active) != 1 || active[0].Title != "拉伸" {
		t.Fatalf("unexpected filtered result: %+v", active)
	}
}

func TestReplacementActionUpdateAndDelete(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewReplacementActionService(db.DB)

	view, err := svc.Create(ActionInput{Title: "俯卧撑"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	updated, err := svc.Update(view.ID, ActionInput{Title: "原地俯卧撑", Status: "hidden"})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Title != "原地俯卧撑" || updated.Status != ActionStatusHidden {
		t.Fatalf("unexpected updated view: %+v", updated)
	}

	if err := svc.Delete(view.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := svc.Get(view.ID); !errors.Is(err, ErrActionNotFound) {
		t.Fatalf("expected ErrActionNotFound, got %v", err)
	}

	if _, err := svc.Update(view.ID, ActionInput{Title: "任意"}); !errors.Is(err, ErrActionNotFound) {
		t.Fatalf("expected ErrActionNotFound on update, got %v", err)
	}
}
