package service

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/urgelog/internal/db"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"gorm.io/gorm"
)

var (
	// ErrActionNotFound 在替代行为不存在时返回
	ErrActionNotFound = errors.New("replacement action not found")
	// ErrActionTitleRequired 当标题为空时返回
	ErrActionTitleRequired = errors.New("replacement action title is required")
)

const (
	ActionStatusActive = "active"
	ActionStatusHidden = "hidden"
)

var (
	guidanceEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	guidanceSanitizer = bluemonday.UGCPolicy()
)

// ReplacementActionService 维护"换个做法"目录
// Guidance 以 Markdown 存储，读取时渲染并消毒为安全 HTML 下发

type ReplacementActionService struct {
	db *gorm.DB
}

// ActionFilter 描述目录筛选条件
type ActionFilter struct {
	Category string
	Status   string
}

// ActionInput 定义创建/更新替代行为时可配置字段
type ActionInput struct {
	Title     string
	Category  string
	Guidance  string
	SortOrder int
	Status    string
}

// ActionView 是附带渲染结果的目录项视图
type ActionView struct {
	db.ReplacementAction
	GuidanceHTML string
}

// NewReplacementActionService 构造 ReplacementActionService
func NewReplacementActionService(gdb *gorm.DB) *ReplacementActionService {
	return &ReplacementActionService{db: gdb}
}

// List 返回目录项，按 SortOrder 升序、创建时间降序排列
func (s *ReplacementActionService) List(filter ActionFilter) ([]ActionView, error) {
	query := s.db.Model(&db.ReplacementAction{})

	if filter.Category != "" {
		query = query.Where("category = ?", strings.TrimSpace(filter.Category))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", strings.TrimSpace(filter.Status))
	}

	var actions []db.ReplacementAction
	if err := query.Order("sort_order ASC, created_at DESC").Find(&actions).Error; err != nil {
		return nil, fmt.Errorf("list replacement actions: %w", err)
	}

	views := make([]ActionView, 0, len(actions))
	for _, action := range actions {
		view, err := buildActionView(action)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// Get 根据 ID 获取单个目录项
func (s *ReplacementActionService) Get(id uint) (*ActionView, error) {
	var action db.ReplacementAction
	if err := s.db.First(&action, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActionNotFound
		}
		return nil, fmt.Errorf("get replacement action: %w", err)
	}

	view, err := buildActionView(action)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// Create 新建目录项
func (s *ReplacementActionService) Create(input ActionInput) (*ActionView, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrActionTitleRequired
	}

	action := db.ReplacementAction{
		Title:     strings.TrimSpace(input.Title),
		Category:  strings.TrimSpace(input.Category),
		Guidance:  input.Guidance,
		SortOrder: input.SortOrder,
		Status:    normalizeActionStatus(input.Status),
	}

	if err := s.db.Create(&action).Error; err != nil {
		return nil, fmt.Errorf("create replacement action: %w", err)
	}

	view, err := buildActionView(action)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// Update 更新目录项
func (s *ReplacementActionService) Update(id uint, input ActionInput) (*ActionView, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrActionTitleRequired
	}

	var existing db.ReplacementAction
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActionNotFound
		}
		return nil, fmt.Errorf("find replacement action: %w", err)
	}

	existing.Title = strings.TrimSpace(input.Title)
	existing.Category = strings.TrimSpace(input.Category)
	existing.Guidance = input.Guidance
	existing.SortOrder = input.SortOrder
	existing.Status = normalizeActionStatus(input.Status)

	if err := s.db.Save(&existing).Error; err != nil {
		return nil, fmt.Errorf("update replacement action: %w", err)
	}

	view, err := buildActionView(existing)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// Delete 删除目录项
func (s *ReplacementActionService) Delete(id uint) error {
	if err := s.db.Delete(&db.ReplacementAction{}, id).Error; err != nil {
		return fmt.Errorf("delete replacement action: %w", err)
	}
	return nil
}

func buildActionView(action db.ReplacementAction) (ActionView, error) {
	rendered, err := renderGuidance(action.Guidance)
	if err != nil {
		return ActionView{}, fmt.Errorf("render guidance: %w", err)
	}
	return ActionView{ReplacementAction: action, GuidanceHTML: rendered}, nil
}

func renderGuidance(content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := guidanceEngine.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return string(guidanceSanitizer.SanitizeBytes(buf.Bytes())), nil
}

func normalizeActionStatus(status string) string {
	status = strings.TrimSpace(strings.ToLower(status))
	if status != ActionStatusHidden {
		return ActionStatusActive
	}
	return ActionStatusHidden
}
