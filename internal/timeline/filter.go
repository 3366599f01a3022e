package timeline

import (
	"strings"
	"time"
)

// FilterKind 枚举筛选器的封闭变体
type FilterKind int

const (
	// FilterAll 表示不筛选，返回全部记录
	FilterAll FilterKind = iota
	// FilterHabit 按习惯名称筛选
	FilterHabit
	// FilterCategory 按习惯类别筛选
	FilterCategory
)

// Filter 以封闭的带标签变体描述记录筛选条件
// 取代早期版本里 "Overall"/习惯名/类别名混用的无类型字符串比较
type Filter struct {
	Kind FilterKind
	Name string
}

// AllRecords 返回不做任何筛选的 Filter
func AllRecords() Filter {
	return Filter{Kind: FilterAll}
}

// ByHabit 返回按习惯名称筛选的 Filter
func ByHabit(name string) Filter {
	return Filter{Kind: FilterHabit, Name: name}
}

// ByCategory 返回按类别筛选的 Filter
func ByCategory(name string) Filter {
	return Filter{Kind: FilterCategory, Name: name}
}

// Match 判断单条记录是否命中筛选条件
// 名称比较区分大小写，两侧均先去除首尾空白
func (f Filter) Match(r Record) bool {
	switch f.Kind {
	case FilterHabit:
		return strings.TrimSpace(r.HabitName) == strings.TrimSpace(f.Name)
	case FilterCategory:
		return strings.TrimSpace(r.CategoryName) == strings.TrimSpace(f.Name)
	default:
		return true
	}
}

// FilterRecords 按条件筛选记录，保持原有相对顺序
// FilterAll 时原样返回输入切片
func FilterRecords(records []Record, f Filter) []Record {
	if f.Kind == FilterAll {
		return records
	}

	filtered := make([]Record, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// FilterSince 保留时间戳不早于阈值的记录
func FilterSince(records []Record, threshold int64) []Record {
	kept := make([]Record, 0, len(records))
	for _, r := range records {
		if r.CreatedAt >= threshold {
			kept = append(kept, r)
		}
	}
	return kept
}

// CountByDay 统计每个日历日内满足谓词的记录数
// pred 为 nil 时所有记录均计入；空输入返回空映射
func CountByDay(records []Record, loc *time.Location, pred Predicate) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		if !r.Bucketable() {
			continue
		}
		if pred != nil && !pred(r) {
			continue
		}
		counts[DayKey(r.OccurredAt(loc))]++
	}
	return counts
}

// CountByDayBetween 先按 [start, end) 窗口裁剪再分桶
func CountByDayBetween(records []Record, loc *time.Location, start, end time.Time, pred Predicate) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		if !r.Bucketable() {
			continue
		}
		occurred := r.OccurredAt(loc)
		if occurred.Before(start) || !occurred.Before(end) {
			continue
		}
		if pred != nil && !pred(r) {
			continue
		}
		counts[DayKey(occurred)]++
	}
	return counts
}
