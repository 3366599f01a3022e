package service

import (
	"testing"
	"time"

	"github.com/urgelog/internal/db"
	"github.com/urgelog/internal/timeline"
)

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func logAt(t *testing.T, svc *UrgeLogService, habitID uint, at time.Time, resisted bool) {
	t.Helper()
	count := 1
	if resisted {
		count = 0
	}
	if _, err := svc.Create(UrgeLogInput{HabitID: habitID, Count: count, DidResist: resisted, LoggedAt: at}); err != nil {
		t.Fatalf("failed to create log: %v", err)
	}
}

func TestAnalyticsOverviewStreaks(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	habit := mustCreateHabit(t, "刷短视频", "屏幕")
	logs := NewUrgeLogService(db.DB)

	now := time.Date(2025, 6, 11, 20, 0, 0, 0, time.UTC)
	// 周一到周三连续三天成功抵抗，周日曾破功
	logAt(t, logs, habit.ID, now.AddDate(0, 0, -3), false)
	logAt(t, logs, habit.ID, now.AddDate(0, 0, -2), true)
	logAt(t, logs, habit.ID, now.AddDate(0, 0, -1), true)
	logAt(t, logs, habit.ID, now, true)

	analytics := NewAnalyticsService(db.DB).WithNow(fixedNow(now)).WithLocation(time.UTC)

	overview, err := analytics.Overview(timeline.AllRecords())
	if err != nil {
		t.Fatalf("Overview returned error: %v", err)
	}

	if overview.TotalLogs != 4 {
		t.Fatalf("expected 4 logs, got %d", overview.TotalLogs)
	}
	if overview.ResistedCount != 3 || overview.GaveInCount != 1 {
		t.Fatalf("unexpected resist split: %+v", overview)
	}
	if overview.CurrentStreak != 3 {
		t.Fatalf("expected current streak 3, got %d", overview.CurrentStreak)
	}
	if overview.BestStreak != 3 {
		t.Fatalf("expected best streak 3, got %d", overview.BestStreak)
	}
	if overview.ResistRate != 0.75 {
		t.Fatalf("expected resist rate 0.75, got %f", overview.ResistRate)
	}
}

func TestAnalyticsOverviewEmpty(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	now := time.Date(2025, 6, 11, 20, 0, 0, 0, time.UTC)
	analytics := NewAnalyticsService(db.DB).WithNow(fixedNow(now)).WithLocation(time.UTC)

	overview, err := analytics.Overview(timeline.AllRecords())
	if err != nil {
		t.Fatalf("Overview returned error: %v", err)
	}
	if overview.TotalLogs != 0 || overview.CurrentStreak != 0 || overview.BestStreak != 0 {
		t.Fatalf("empty store must yield zeroed overview: %+v", overview)
	}
}

func TestAnalyticsOverviewHabitFilter(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	habitA := mustCreateHabit(t, "刷短视频", "屏幕")
	habitB := mustCreateHabit(t, "熬夜", "作息")
	logs := NewUrgeLogService(db.DB)

	now := time.Date(2025, 6, 11, 20, 0, 0, 0, time.UTC)
	logAt(t, logs, habitA.ID, now, false)
	logAt(t, logs, habitB.ID, now.Add(-time.Hour), false)
	logAt(t, logs, habitB.ID, now.Add(-2*time.Hour), false)

	analytics := NewAnalyticsService(db.DB).WithNow(fixedNow(now)).WithLocation(time.UTC)

	overview, err := analytics.Overview(timeline.ByHabit("熬夜"))
	if err != nil {
		t.Fatalf("Overview returned error: %v", err)
	}
	if overview.TotalLogs != 2 {
		t.Fatalf("expected 2 filtered logs, got %d", overview.TotalLogs)
	}

	byCategory, err := analytics.Overview(timeline.ByCategory("屏幕"))
	if err != nil {
		t.Fatalf("Overview returned error: %v", err)
	}
	if byCategory.TotalLogs != 1 {
		t.Fatalf("expected 1 category log, got %d", byCategory.TotalLogs)
	}
}

func TestAnalyticsTopTriggers(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	habit := mustCreateHabit(t, "刷短视频", "屏幕")
	lookups := NewLookupService(db.DB)
	boredom, _ := lookups.CreateCue("无聊")
	stress, _ := lookups.CreateCue("压力")

	logs := NewUrgeLogService(db.DB)
	now := time.Date(2025, 6, 11, 20, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		if _, err := logs.Create(UrgeLogInput{HabitID: habit.ID, CueID: &boredom.ID, Count: 1, LoggedAt: now.Add(-time.Duration(i) * time.Hour)}); err != nil {
			t.Fatalf("failed to create log: %v", err)
		}
	}
	if _, err := logs.Create(UrgeLogInput{HabitID: habit.ID, CueID: &stress.ID, Count: 1, LoggedAt: now}); err != nil {
		t.Fatalf("failed to create log: %v", err)
	}
	// 窗口之外的旧记录不应计入
	if _, err := logs.Create(UrgeLogInput{HabitID: habit.ID, CueID: &stress.ID, Count: 1, LoggedAt: now.AddDate(0, 0, -40)}); err != nil {
		t.Fatalf("failed to create log: %v", err)
	}

	analytics := NewAnalyticsService(db.DB).WithNow(fixedNow(now)).WithLocation(time.UTC)

	top, err := analytics.TopTriggers(30, 3)
	if err != nil {
		t.Fatalf("TopTriggers returned error: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(top))
	}
	if top[0].Name != "无聊" || top[0].Count != 3 {
		t.Fatalf("unexpected leader: %+v", top[0])
	}
	if top[1].Name != "压力" || top[1].Count != 1 {
		t.Fatalf("unexpected runner-up: %+v", top[1])
	}
}

func TestAnalyticsMonthGrid(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	habit := mustCreateHabit(t, "刷短视频", "屏幕")
	logs := NewUrgeLogService(db.DB)

	now := time.Date(2025, 6, 11, 20, 0, 0, 0, time.UTC)
	logAt(t, logs, habit.ID, time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC), false)
	logAt(t, logs, habit.ID, time.Date(2025, 6, 3, 21, 0, 0, 0, time.UTC), false)
	// 成功抵抗的记录不计入日历格子
	logAt(t, logs, habit.ID, time.Date(2025, 6, 4, 9, 0, 0, 0, time.UTC), true)

	analytics := NewAnalyticsService(db.DB).WithNow(fixedNow(now)).WithLocation(time.UTC)

	grid, err := analytics.MonthGrid(0, timeline.AllRecords())
	if err != nil {
		t.Fatalf("MonthGrid returned error: %v", err)
	}
	if grid.Month != time.June || grid.Year != 2025 {
		t.Fatalf("unexpected grid month: %v %d", grid.Month, grid.Year)
	}

	for _, week := range grid.Weeks {
		for _, cell := range week {
			if cell.Count == nil {
				continue
			}
			switch cell.Label {
			case "3":
				if *cell.Count != 2 {
					t.Fatalf("expected 2 on day 3, got %d", *cell.Count)
				}
			case "4":
				if *cell.Count != 0 {
					t.Fatalf("resisted logs must not count, got %d", *cell.Count)
				}
			}
		}
	}
}

func TestAnalyticsWeekBuckets(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	habit := mustCreateHabit(t, "熬夜", "作息")
	logs := NewUrgeLogService(db.DB)

	// 2025-06-11 是周三；当周从 6 月 9 日（周一）开始
	now := time.Date(2025, 6, 11, 20, 0, 0, 0, time.UTC)
	logAt(t, logs, habit.ID, time.Date(2025, 6, 9, 23, 0, 0, 0, time.UTC), false)
	logAt(t, logs, habit.ID, time.Date(2025, 6, 10, 23, 0, 0, 0, time.UTC), false)
	// 上周日不属于本周
	logAt(t, logs, habit.ID, time.Date(2025, 6, 8, 23, 0, 0, 0, time.UTC), false)

	analytics := NewAnalyticsService(db.DB).WithNow(fixedNow(now)).WithLocation(time.UTC)

	buckets, err := analytics.WeekBuckets(timeline.AllRecords())
	if err != nil {
		t.Fatalf("WeekBuckets returned error: %v", err)
	}

	total := 0
	for _, c := range buckets {
		total += c
	}
	if total != 2 {
		t.Fatalf("expected 2 logs inside the week, got %d", total)
	}
}

func TestAnalyticsDayDetail(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	habit := mustCreateHabit(t, "刷短视频", "屏幕")
	logs := NewUrgeLogService(db.DB)

	day := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	logAt(t, logs, habit.ID, day.Add(9*time.Hour), false)
	logAt(t, logs, habit.ID, day.Add(21*time.Hour), false)
	logAt(t, logs, habit.ID, day.AddDate(0, 0, 1), false)

	analytics := NewAnalyticsService(db.DB).WithLocation(time.UTC)

	detail, err := analytics.DayDetail(timeline.DayKey(day))
	if err != nil {
		t.Fatalf("DayDetail returned error: %v", err)
	}
	if len(detail) != 2 {
		t.Fatalf("expected 2 records for the day, got %d", len(detail))
	}

	// 非法日键返回空集合而不是错误
	empty, err := analytics.DayDetail("not-a-key")
	if err != nil {
		t.Fatalf("DayDetail returned error for bad key: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty result for bad key, got %d", len(empty))
	}
}
