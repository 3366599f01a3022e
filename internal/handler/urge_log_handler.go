package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urgelog/internal/service"
)

type urgeLogPayload struct {
	ClientRef  string `json:"client_ref"`
	HabitID    uint   `json:"habit_id"`
	CueID      *uint  `json:"cue_id"`
	LocationID *uint  `json:"location_id"`
	Intensity  *int   `json:"intensity"`
	Count      int    `json:"count"`
	DidResist  bool   `json:"did_resist"`
	Notes      string `json:"notes"`
	LoggedAt   string `json:"logged_at"` // RFC3339，可选
}

// CreateUrgeLog 追加一条冲动日志
func (a *API) CreateUrgeLog(c *gin.Context) {
	var payload urgeLogPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	var loggedAt time.Time
	if payload.LoggedAt != "" {
		parsed, err := time.Parse(time.RFC3339, payload.LoggedAt)
		if err != nil {
			respondError(c, http.StatusBadRequest, "无效的记录时间")
			return
		}
		loggedAt = parsed
	}

	record, err := a.logs.Create(service.UrgeLogInput{
		ClientRef:  payload.ClientRef,
		HabitID:    payload.HabitID,
		CueID:      payload.CueID,
		LocationID: payload.LocationID,
		Intensity:  payload.Intensity,
		Count:      payload.Count,
		DidResist:  payload.DidResist,
		Notes:      payload.Notes,
		LoggedAt:   loggedAt,
	})
	if err != nil {
		handleUrgeLogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"log": gin.H{
		"id":         record.ID,
		"client_ref": record.ClientRef,
		"habit_id":   record.HabitID,
		"count":      record.Count,
		"did_resist": record.DidResist,
		"logged_at":  record.LoggedAt.Format(time.RFC3339),
	}})
}

// ListUrgeLogs 返回全部日志的解析视图
// 客户端按需全量拉取，不做分页
func (a *API) ListUrgeLogs(c *gin.Context) {
	rows, err := a.logs.ListResolved()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取日志失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": serializeResolvedRecords(rows)})
}

func serializeResolvedRecords(rows []service.ResolvedRecord) []gin.H {
	items := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		item := gin.H{
			"id":         row.ID,
			"habit":      row.HabitName,
			"category":   row.HabitType,
			"count":      row.Count,
			"did_resist": row.DidResist,
			"notes":      row.Notes,
			"logged_at":  row.LoggedAt.Format(time.RFC3339),
		}
		if row.CueName != "" {
			item["cue"] = row.CueName
		}
		if row.LocationName != "" {
			item["location"] = row.LocationName
		}
		if row.Intensity != nil {
			item["intensity"] = *row.Intensity
		}
		items = append(items, item)
	}
	return items
}

func handleUrgeLogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLogHabitRequired):
		respondError(c, http.StatusBadRequest, "请选择要记录的习惯")
	case errors.Is(err, service.ErrLogIntensityRange):
		respondError(c, http.StatusBadRequest, "强度需在 1-10 之间")
	case errors.Is(err, service.ErrLogCountRange):
		respondError(c, http.StatusBadRequest, "次数需在 0-10 之间")
	default:
		respondError(c, http.StatusInternalServerError, "保存日志失败")
	}
}
