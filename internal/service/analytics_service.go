package service

import (
	"strconv"
	"time"

	"github.com/urgelog/internal/timeline"
	"gorm.io/gorm"
)

// AnalyticsService 把存储层的日志转换为客户端展示所需的聚合视图
// 所有派生结构在每次调用时重新计算，不做缓存
// "当前时间"通过 WithNow 注入，保证统计逻辑可测试

type AnalyticsService struct {
	logs *UrgeLogService
	now  func() time.Time
	loc  *time.Location
}

// Overview 汇总整体统计数据
type Overview struct {
	TotalLogs     int
	ResistedCount int
	GaveInCount   int
	ResistRate    float64
	CurrentStreak int
	BestStreak    int
}

// NewAnalyticsService 构造 AnalyticsService，默认使用真实时钟与本地时区
func NewAnalyticsService(gdb *gorm.DB) *AnalyticsService {
	return &AnalyticsService{
		logs: NewUrgeLogService(gdb),
		now:  time.Now,
		loc:  time.Local,
	}
}

// WithNow 允许在测试或特定场景下替换时钟
func (s *AnalyticsService) WithNow(now func() time.Time) *AnalyticsService {
	if now != nil {
		s.now = now
	}
	return s
}

// WithLocation 允许替换统计所用的时区
func (s *AnalyticsService) WithLocation(loc *time.Location) *AnalyticsService {
	if loc != nil {
		s.loc = loc
	}
	return s
}

// records 加载全部日志并转换为聚合层消费的扁平记录
func (s *AnalyticsService) records() ([]timeline.Record, error) {
	resolved, err := s.logs.ListResolved()
	if err != nil {
		return nil, err
	}
	return toTimelineRecords(resolved), nil
}

func toTimelineRecords(resolved []ResolvedRecord) []timeline.Record {
	records := make([]timeline.Record, 0, len(resolved))
	for _, row := range resolved {
		records = append(records, timeline.Record{
			ID:           strconv.FormatUint(uint64(row.ID), 10),
			HabitName:    row.HabitName,
			CategoryName: row.HabitType,
			CueName:      row.CueName,
			LocationName: row.LocationName,
			Intensity:    row.Intensity,
			Count:        row.Count,
			DidResist:    row.DidResist,
			CreatedAt:    row.LoggedAt.UnixMilli(),
			Notes:        row.Notes,
		})
	}
	return records
}

// Overview 计算筛选条件下的整体统计与连胜
func (s *AnalyticsService) Overview(filter timeline.Filter) (*Overview, error) {
	records, err := s.records()
	if err != nil {
		return nil, err
	}
	records = timeline.FilterRecords(records, filter)

	overview := &Overview{TotalLogs: len(records)}
	for _, r := range records {
		if r.DidResist {
			overview.ResistedCount++
		} else {
			overview.GaveInCount++
		}
	}
	if overview.TotalLogs > 0 {
		overview.ResistRate = float64(overview.ResistedCount) / float64(overview.TotalLogs)
	}

	now := s.now().In(s.loc)
	days := timeline.QualifyingDays(records, s.loc, timeline.Resisted)
	overview.CurrentStreak = timeline.CurrentStreak(days, now)
	overview.BestStreak = timeline.BestStreak(days, s.loc)

	return overview, nil
}

// topField 统计最近 days 天内某字段的高频取值
func (s *AnalyticsService) topField(days, limit int, field timeline.FieldSelector) ([]timeline.RankEntry, error) {
	records, err := s.records()
	if err != nil {
		return nil, err
	}

	if days > 0 {
		threshold := timeline.StartOfDay(s.now().In(s.loc)).AddDate(0, 0, -(days - 1))
		records = timeline.FilterSince(records, threshold.UnixMilli())
	}

	return timeline.TopN(records, limit, field), nil
}

// TopTriggers 返回高频诱因排名
func (s *AnalyticsService) TopTriggers(days, limit int) ([]timeline.RankEntry, error) {
	return s.topField(days, limit, timeline.CueField)
}

// TopLocations 返回高频地点排名
func (s *AnalyticsService) TopLocations(days, limit int) ([]timeline.RankEntry, error) {
	return s.topField(days, limit, timeline.LocationField)
}

// TopHabits 返回高频习惯排名
func (s *AnalyticsService) TopHabits(days, limit int) ([]timeline.RankEntry, error) {
	return s.topField(days, limit, timeline.HabitField)
}

// MonthGrid 构建指定月份偏移的日历网格
// 格子计数只统计没忍住的记录，与客户端日历视图保持一致
func (s *AnalyticsService) MonthGrid(monthOffset int, filter timeline.Filter) (timeline.MonthGrid, error) {
	records, err := s.records()
	if err != nil {
		return timeline.MonthGrid{}, err
	}
	records = timeline.FilterRecords(records, filter)

	now := s.now().In(s.loc)
	monthStart := timeline.StartOfMonth(now).AddDate(0, monthOffset, 0)
	monthEnd := timeline.EndOfMonth(monthStart)

	counts := timeline.CountByDayBetween(records, s.loc, monthStart, monthEnd, timeline.GaveIn)

	earliest, err := s.logs.EarliestLoggedAt()
	if err != nil {
		return timeline.MonthGrid{}, err
	}

	return timeline.BuildMonthGrid(counts, now, monthOffset, earliest), nil
}

// WeekBuckets 返回当周（周一起）每日计数
func (s *AnalyticsService) WeekBuckets(filter timeline.Filter) (map[string]int, error) {
	records, err := s.records()
	if err != nil {
		return nil, err
	}
	records = timeline.FilterRecords(records, filter)

	now := s.now().In(s.loc)
	weekStart := timeline.StartOfWeek(now)
	weekEnd := weekStart.AddDate(0, 0, 7)

	return timeline.CountByDayBetween(records, s.loc, weekStart, weekEnd, timeline.GaveIn), nil
}

// DayDetail 返回指定日键当天的全部日志，用于日历格子的点击下钻
// 日键不合法时返回空集合而不是错误
func (s *AnalyticsService) DayDetail(dayKey string) ([]ResolvedRecord, error) {
	day, ok := timeline.ParseDayKey(dayKey, s.loc)
	if !ok {
		return []ResolvedRecord{}, nil
	}

	start, end := timeline.DayWindow(day)

	resolved, err := s.logs.ListResolvedSince(start)
	if err != nil {
		return nil, err
	}

	selected := make([]ResolvedRecord, 0, len(resolved))
	for _, row := range resolved {
		occurred := row.LoggedAt.In(s.loc)
		if occurred.Before(start) || !occurred.Before(end) {
			continue
		}
		selected = append(selected, row)
	}
	return selected, nil
}
