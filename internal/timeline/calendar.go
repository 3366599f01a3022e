package timeline

import (
	"fmt"
	"time"
)

// StartOfDay 返回所在时区当日零点
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek 返回以周一为起点的当周零点
func StartOfWeek(t time.Time) time.Time {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	return StartOfDay(t.AddDate(0, 0, -daysSinceMonday))
}

// StartOfMonth 返回当月首日零点
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth 返回下月首日零点，作为开区间上界使用
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, 0)
}

// DayKey 返回标识本地日历日的稳定字符串，用作分组键
// 格式为 "年-月-日"，月日不补零，但在单进程内保持单射与稳定
func DayKey(t time.Time) string {
	return fmt.Sprintf("%d-%d-%d", t.Year(), int(t.Month()), t.Day())
}

// DayWindow 返回覆盖 t 所在日历日的半开区间 [当日零点, 次日零点)
func DayWindow(t time.Time) (time.Time, time.Time) {
	start := StartOfDay(t)
	return start, start.AddDate(0, 0, 1)
}

// ParseDayKey 把 DayKey 还原为对应时区的当日零点
func ParseDayKey(key string, loc *time.Location) (time.Time, bool) {
	var year, month, day int
	if _, err := fmt.Sscanf(key, "%d-%d-%d", &year, &month, &day); err != nil {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc), true
}
