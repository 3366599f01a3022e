package db

import "gorm.io/gorm"

// Habit 定义了要戒除/追踪的习惯模型
// TypeTag 用于区分习惯类别，便于统计/筛选
// Status 仅使用 active/inactive 控制客户端展示，默认 active
// NOTE: 保持结构精简，更多配置可迭代扩展
type Habit struct {
	gorm.Model
	Name        string `gorm:"uniqueIndex;not null"`
	Description string
	TypeTag     string
	Status      string
}

// Cue 记录诱因选项，由客户端在记录冲动时选择
type Cue struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;not null"`
}

// Location 记录地点选项，与 Cue 同构
type Location struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;not null"`
}

// ReplacementAction 定义替代行为目录项
// Guidance 为 Markdown 文本，服务端渲染后下发
// SortOrder 越小越靠前
type ReplacementAction struct {
	gorm.Model
	Title     string `gorm:"not null"`
	Category  string
	Guidance  string
	SortOrder int
	Status    string
}
