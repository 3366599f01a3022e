package db

import (
	"time"

	"gorm.io/gorm"
)

// UrgeLog 记录一次冲动日志，是整个系统的核心事实表
// 记录只增不改：客户端通过 ClientRef（uuid）保证离线重试时的幂等
// CueID/LocationID/Intensity 均可为空；Count 在 DidResist 为真时可以为 0
// LoggedAt 一旦写入不再变更，是唯一的排序与分桶依据
type UrgeLog struct {
	gorm.Model
	ClientRef  string `gorm:"uniqueIndex;not null"`
	HabitID    uint   `gorm:"index;not null"`
	Habit      Habit  `gorm:"constraint:OnDelete:CASCADE"`
	CueID      *uint  `gorm:"index"`
	Cue        *Cue
	LocationID *uint `gorm:"index"`
	Location   *Location
	Intensity  *int
	Count      int
	DidResist  bool
	Notes      string
	LoggedAt   time.Time `gorm:"index;not null"`
}

// TableName 固定表名，避免 gorm 复数化歧义
func (UrgeLog) TableName() string {
	return "urge_logs"
}
