package timeline

import (
	"slices"
	"strings"
)

// RankEntry 表示频次排名中的一项
type RankEntry struct {
	Name  string
	Count int
}

// TopN 统计指定字段非空值的出现频次并返回前 n 名
// 按次数降序排列；次数相同时保持值在扫描中首次出现的先后顺序
// n 不为正或没有任何合格值时返回空切片
func TopN(records []Record, n int, field FieldSelector) []RankEntry {
	if n <= 0 {
		return []RankEntry{}
	}

	counts := make(map[string]int)
	firstSeen := make([]string, 0)

	for _, r := range records {
		value := strings.TrimSpace(field(r))
		if value == "" {
			continue
		}
		if _, seen := counts[value]; !seen {
			firstSeen = append(firstSeen, value)
		}
		counts[value]++
	}

	entries := make([]RankEntry, 0, len(firstSeen))
	for _, name := range firstSeen {
		entries = append(entries, RankEntry{Name: name, Count: counts[name]})
	}

	// 稳定排序保证并列名次沿用首次出现顺序
	slices.SortStableFunc(entries, func(a, b RankEntry) int {
		return b.Count - a.Count
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
