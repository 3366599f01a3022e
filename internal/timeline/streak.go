package timeline

import (
	"slices"
	"time"
)

// QualifyingDays 返回至少包含一条满足谓词记录的日历日集合
// 集合以 DayKey 为键；pred 为 nil 时所有记录均算作合格
func QualifyingDays(records []Record, loc *time.Location, pred Predicate) map[string]struct{} {
	days := make(map[string]struct{})
	for _, r := range records {
		if !r.Bucketable() {
			continue
		}
		if pred != nil && !pred(r) {
			continue
		}
		days[DayKey(r.OccurredAt(loc))] = struct{}{}
	}
	return days
}

// CurrentStreak 计算截至今天的连续合格天数
// 从今天起逐日回退，遇到第一个不合格的日子即停止
// 今天本身不合格时返回 0
func CurrentStreak(days map[string]struct{}, today time.Time) int {
	streak := 0
	day := StartOfDay(today)
	for {
		if _, ok := days[DayKey(day)]; !ok {
			return streak
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
}

// BestStreak 计算历史上最长的连续合格天数
// 连续性按日历日差判断（AddDate 加一天后日期相等），
// 而不是固定 86400000 毫秒的差值，避免夏令时切换导致误判断档
func BestStreak(days map[string]struct{}, loc *time.Location) int {
	if len(days) == 0 {
		return 0
	}

	midnights := make([]time.Time, 0, len(days))
	for key := range days {
		if t, ok := ParseDayKey(key, loc); ok {
			midnights = append(midnights, t)
		}
	}
	if len(midnights) == 0 {
		return 0
	}

	slices.SortFunc(midnights, func(a, b time.Time) int {
		return a.Compare(b)
	})

	best := 1
	run := 1
	for i := 1; i < len(midnights); i++ {
		if midnights[i-1].AddDate(0, 0, 1).Equal(midnights[i]) {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 1
		}
	}
	return best
}
