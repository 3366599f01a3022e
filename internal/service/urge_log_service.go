package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/urgelog/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrLogHabitRequired 当日志未关联习惯时返回
	ErrLogHabitRequired = errors.New("urge log habit is required")
	// ErrLogIntensityRange 当强度超出 1-10 时返回
	ErrLogIntensityRange = errors.New("urge log intensity out of range")
	// ErrLogCountRange 当次数超出 0-10 时返回
	ErrLogCountRange = errors.New("urge log count out of range")
)

// UrgeLogService 负责冲动日志的追加与查询
// 日志只增不改：没有任何更新或删除入口
// 客户端离线重试通过 ClientRef 唯一索引保证幂等

type UrgeLogService struct {
	db *gorm.DB
}

// UrgeLogInput 定义记录一次冲动时的输入对象
type UrgeLogInput struct {
	ClientRef  string
	HabitID    uint
	CueID      *uint
	LocationID *uint
	Intensity  *int
	Count      int
	DidResist  bool
	Notes      string
	LoggedAt   time.Time
}

// ResolvedRecord 是把外键解析为展示名称后的日志视图
// 聚合层只消费这个形态，不再回表
type ResolvedRecord struct {
	ID           uint
	HabitName    string
	HabitType    string
	CueName      string
	LocationName string
	Intensity    *int
	Count        int
	DidResist    bool
	Notes        string
	LoggedAt     time.Time
}

// NewUrgeLogService 构造 UrgeLogService
func NewUrgeLogService(gdb *gorm.DB) *UrgeLogService {
	return &UrgeLogService{db: gdb}
}

// Create 追加一条冲动日志
// ClientRef 为空时由服务端生成；已存在相同 ClientRef 时返回已有记录
func (s *UrgeLogService) Create(input UrgeLogInput) (*db.UrgeLog, error) {
	if input.HabitID == 0 {
		return nil, ErrLogHabitRequired
	}
	if input.Intensity != nil && (*input.Intensity < 1 || *input.Intensity > 10) {
		return nil, ErrLogIntensityRange
	}
	if input.Count < 0 || input.Count > 10 {
		return nil, ErrLogCountRange
	}

	clientRef := strings.TrimSpace(input.ClientRef)
	if clientRef == "" {
		clientRef = uuid.NewString()
	}

	loggedAt := input.LoggedAt
	if loggedAt.IsZero() {
		loggedAt = time.Now()
	}

	record := db.UrgeLog{
		ClientRef:  clientRef,
		HabitID:    input.HabitID,
		CueID:      input.CueID,
		LocationID: input.LocationID,
		Intensity:  input.Intensity,
		Count:      input.Count,
		DidResist:  input.DidResist,
		Notes:      strings.TrimSpace(input.Notes),
		LoggedAt:   loggedAt,
	}

	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "client_ref"}},
		DoNothing: true,
	}).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("create urge log: %w", err)
	}

	if err := s.db.Where("client_ref = ?", clientRef).First(&record).Error; err != nil {
		return nil, fmt.Errorf("reload urge log: %w", err)
	}

	return &record, nil
}

// ListResolved 返回全部日志的解析视图，按记录时间升序
func (s *UrgeLogService) ListResolved() ([]ResolvedRecord, error) {
	return s.listResolved(s.db.Model(&db.UrgeLog{}))
}

// ListResolvedSince 返回指定时间之后（含）的日志解析视图
func (s *UrgeLogService) ListResolvedSince(threshold time.Time) ([]ResolvedRecord, error) {
	return s.listResolved(s.db.Model(&db.UrgeLog{}).Where("urge_logs.logged_at >= ?", threshold))
}

func (s *UrgeLogService) listResolved(query *gorm.DB) ([]ResolvedRecord, error) {
	var rows []ResolvedRecord
	if err := query.
		Select("urge_logs.id AS id, habits.name AS habit_name, habits.type_tag AS habit_type, " +
			"cues.name AS cue_name, locations.name AS location_name, " +
			"urge_logs.intensity AS intensity, urge_logs.count AS count, " +
			"urge_logs.did_resist AS did_resist, urge_logs.notes AS notes, urge_logs.logged_at AS logged_at").
		Joins("JOIN habits ON habits.id = urge_logs.habit_id").
		Joins("LEFT JOIN cues ON cues.id = urge_logs.cue_id").
		Joins("LEFT JOIN locations ON locations.id = urge_logs.location_id").
		Order("urge_logs.logged_at ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list urge logs: %w", err)
	}
	return rows, nil
}

// EarliestLoggedAt 返回最早一条日志的时间；没有记录时返回零值
func (s *UrgeLogService) EarliestLoggedAt() (time.Time, error) {
	var record db.UrgeLog
	if err := s.db.Order("logged_at ASC").First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("find earliest urge log: %w", err)
	}
	return record.LoggedAt, nil
}
