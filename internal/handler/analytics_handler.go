package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/urgelog/internal/timeline"
)

const (
	defaultTopWindowDays = 30
	defaultTopLimit      = 3
)

// parseFilter 从查询参数解析筛选条件
// filter=habit&name=xx 或 filter=category&name=xx，缺省为全部记录
func parseFilter(c *gin.Context) timeline.Filter {
	name := c.Query("name")
	switch strings.ToLower(c.Query("filter")) {
	case "habit":
		return timeline.ByHabit(name)
	case "category":
		return timeline.ByCategory(name)
	default:
		return timeline.AllRecords()
	}
}

func parseIntQuery(c *gin.Context, key string, fallback int) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// GetOverview 返回整体统计与连胜
func (a *API) GetOverview(c *gin.Context) {
	overview, err := a.analytics.Overview(parseFilter(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "计算统计信息失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_logs":     overview.TotalLogs,
		"resisted_count": overview.ResistedCount,
		"gave_in_count":  overview.GaveInCount,
		"resist_rate":    overview.ResistRate,
		"current_streak": overview.CurrentStreak,
		"best_streak":    overview.BestStreak,
	})
}

// GetTopRanking 返回高频诱因/地点/习惯排名
func (a *API) GetTopRanking(c *gin.Context) {
	days := parseIntQuery(c, "days", defaultTopWindowDays)
	limit := parseIntQuery(c, "limit", defaultTopLimit)

	var entries []timeline.RankEntry
	var err error

	switch c.DefaultQuery("field", "cue") {
	case "cue":
		entries, err = a.analytics.TopTriggers(days, limit)
	case "location":
		entries, err = a.analytics.TopLocations(days, limit)
	case "habit":
		entries, err = a.analytics.TopHabits(days, limit)
	default:
		respondError(c, http.StatusBadRequest, "无效的排名字段")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "计算排名失败")
		return
	}

	items := make([]gin.H, 0, len(entries))
	for _, entry := range entries {
		items = append(items, gin.H{"name": entry.Name, "count": entry.Count})
	}
	c.JSON(http.StatusOK, gin.H{"entries": items})
}

// GetCalendar 返回指定月份偏移的日历网格
func (a *API) GetCalendar(c *gin.Context) {
	offset := parseIntQuery(c, "offset", 0)

	grid, err := a.analytics.MonthGrid(offset, parseFilter(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "构建日历失败")
		return
	}

	weeks := make([][]gin.H, 0, len(grid.Weeks))
	for _, week := range grid.Weeks {
		cells := make([]gin.H, 0, len(week))
		for _, cell := range week {
			item := gin.H{
				"day_key":  cell.DayKey,
				"label":    cell.Label,
				"is_today": cell.IsToday,
				"inactive": cell.IsInactive,
			}
			if cell.Count != nil {
				item["count"] = *cell.Count
			} else {
				item["count"] = nil
			}
			cells = append(cells, item)
		}
		weeks = append(weeks, cells)
	}

	c.JSON(http.StatusOK, gin.H{
		"year":  grid.Year,
		"month": int(grid.Month),
		"weeks": weeks,
	})
}

// GetWeek 返回当周每日计数
func (a *API) GetWeek(c *gin.Context) {
	buckets, err := a.analytics.WeekBuckets(parseFilter(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "计算周视图失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": buckets})
}

// GetDayDetail 返回日历格子下钻后的当日日志
func (a *API) GetDayDetail(c *gin.Context) {
	rows, err := a.analytics.DayDetail(c.Param("key"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取当日日志失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": serializeResolvedRecords(rows)})
}
