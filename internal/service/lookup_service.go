package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/urgelog/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrLookupNameRequired 当诱因/地点名称为空时返回
var ErrLookupNameRequired = errors.New("lookup name is required")

// LookupService 维护客户端记录冲动时可选的诱因与地点选项
// 两张表同构，创建均以名称唯一索引保证幂等

type LookupService struct {
	db *gorm.DB
}

// NewLookupService 构造 LookupService
func NewLookupService(gdb *gorm.DB) *LookupService {
	return &LookupService{db: gdb}
}

// ListCues 按名称升序返回全部诱因
func (s *LookupService) ListCues() ([]db.Cue, error) {
	var cues []db.Cue
	if err := s.db.Order("name ASC").Find(&cues).Error; err != nil {
		return nil, fmt.Errorf("list cues: %w", err)
	}
	return cues, nil
}

// CreateCue 幂等创建诱因：同名已存在时返回已有记录
func (s *LookupService) CreateCue(name string) (*db.Cue, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrLookupNameRequired
	}

	cue := db.Cue{Name: trimmed}
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&cue).Error; err != nil {
		return nil, fmt.Errorf("create cue: %w", err)
	}

	if err := s.db.Where("name = ?", trimmed).First(&cue).Error; err != nil {
		return nil, fmt.Errorf("reload cue: %w", err)
	}
	return &cue, nil
}

// DeleteCue 删除指定诱因
func (s *LookupService) DeleteCue(id uint) error {
	if err := s.db.Delete(&db.Cue{}, id).Error; err != nil {
		return fmt.Errorf("delete cue: %w", err)
	}
	return nil
}

// ListLocations 按名称升序返回全部地点
func (s *LookupService) ListLocations() ([]db.Location, error) {
	var locations []db.Location
	if err := s.db.Order("name ASC").Find(&locations).Error; err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return locations, nil
}

// CreateLocation 幂等创建地点，行为与 CreateCue 一致
func (s *LookupService) CreateLocation(name string) (*db.Location, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrLookupNameRequired
	}

	location := db.Location{Name: trimmed}
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&location).Error; err != nil {
		return nil, fmt.Errorf("create location: %w", err)
	}

	if err := s.db.Where("name = ?", trimmed).First(&location).Error; err != nil {
		return nil, fmt.Errorf("reload location: %w", err)
	}
	return &location, nil
}

// DeleteLocation 删除指定地点
func (s *LookupService) DeleteLocation(id uint) error {
	if err := s.db.Delete(&db.Location{}, id).Error; err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	return nil
}
