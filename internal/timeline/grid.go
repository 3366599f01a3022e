package timeline

import (
	"strconv"
	"time"
)

// Cell 表示月历网格中的一个格子
// Count 为 nil 表示月份以外的空白补位格，不可交互
// IsInactive 表示真实日期但处于未来或早于最早一条记录，同样不可选
type Cell struct {
	DayKey     string
	Label      string
	Count      *int
	IsToday    bool
	IsInactive bool
}

// MonthGrid 是以周一为首列、整周对齐的月历视图
type MonthGrid struct {
	Year  int
	Month time.Month
	Weeks [][]Cell
}

// BuildMonthGrid 构建展示月份的日历网格
// counts 为 CountByDay 产出的日键计数；monthOffset 以 now 所在月为 0，
// 负数向过去偏移；earliest 为最早一条记录的时间，零值表示还没有任何记录，
// 此时把今天视作安装日，保证首日不会被标记为不可用
func BuildMonthGrid(counts map[string]int, now time.Time, monthOffset int, earliest time.Time) MonthGrid {
	loc := now.Location()
	base := StartOfMonth(now).AddDate(0, monthOffset, 0)

	todayStart := StartOfDay(now)
	todayKey := DayKey(now)

	earliestStart := todayStart
	if !earliest.IsZero() {
		earliestStart = StartOfDay(earliest.In(loc))
	}

	leading := (int(base.Weekday()) + 6) % 7
	daysInMonth := base.AddDate(0, 1, -1).Day()

	cells := make([]Cell, 0, leading+daysInMonth+6)
	for i := 0; i < leading; i++ {
		cells = append(cells, Cell{})
	}

	for day := 1; day <= daysInMonth; day++ {
		dayStart := time.Date(base.Year(), base.Month(), day, 0, 0, 0, 0, loc)
		key := DayKey(dayStart)
		count := counts[key]

		cells = append(cells, Cell{
			DayKey:     key,
			Label:      strconv.Itoa(day),
			Count:      &count,
			IsToday:    key == todayKey,
			IsInactive: dayStart.After(todayStart) || dayStart.Before(earliestStart),
		})
	}

	for len(cells)%7 != 0 {
		cells = append(cells, Cell{})
	}

	weeks := make([][]Cell, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		weeks = append(weeks, cells[i:i+7])
	}

	return MonthGrid{Year: base.Year(), Month: base.Month(), Weeks: weeks}
}
