package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urgelog/internal/service"
)

type actionPayload struct {
	Title     string `json:"title"`
	Category  string `json:"category"`
	Guidance  string `json:"guidance"`
	SortOrder int    `json:"sort_order"`
	Status    string `json:"status"`
}

// ListActions 返回替代行为目录
func (a *API) ListActions(c *gin.Context) {
	views, err := a.actions.List(service.ActionFilter{
		Category: c.Query("category"),
		Status:   c.Query("status"),
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取替代行为列表失败")
		return
	}

	items := make([]gin.H, 0, len(views))
	for _, view := range views {
		items = append(items, actionToPayload(view))
	}
	c.JSON(http.StatusOK, gin.H{"actions": items})
}

// GetAction 返回单个替代行为
func (a *API) GetAction(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的替代行为ID")
		return
	}

	view, err := a.actions.Get(id)
	if err != nil {
		handleActionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"action": actionToPayload(*view)})
}

// CreateAction 创建替代行为
func (a *API) CreateAction(c *gin.Context) {
	var payload actionPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	view, err := a.actions.Create(service.ActionInput{
		Title:     payload.Title,
		Category:  payload.Category,
		Guidance:  payload.Guidance,
		SortOrder: payload.SortOrder,
		Status:    payload.Status,
	})
	if err != nil {
		handleActionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"action": actionToPayload(*view)})
}

// UpdateAction 更新替代行为
func (a *API) UpdateAction(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的替代行为ID")
		return
	}

	var payload actionPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	view, err := a.actions.Update(id, service.ActionInput{
		Title:     payload.Title,
		Category:  payload.Category,
		Guidance:  payload.Guidance,
		SortOrder: payload.SortOrder,
		Status:    payload.Status,
	})
	if err != nil {
		handleActionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"action": actionToPayload(*view)})
}

// DeleteAction 删除替代行为
func (a *API) DeleteAction(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的替代行为ID")
		return
	}

	if err := a.actions.Delete(id); err != nil {
		respondError(c, http.StatusInternalServerError, "删除替代行为失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func actionToPayload(view service.ActionView) gin.H {
	return gin.H{
		"id":            view.ID,
		"title":         view.Title,
		"category":      view.Category,
		"guidance":      view.Guidance,
		"guidance_html": view.GuidanceHTML,
		"sort_order":    view.SortOrder,
		"status":        view.Status,
	}
}

func handleActionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrActionNotFound):
		respondError(c, http.StatusNotFound, "替代行为不存在")
	case errors.Is(err, service.ErrActionTitleRequired):
		respondError(c, http.StatusBadRequest, "替代行为标题不能为空")
	default:
		respondError(c, http.StatusInternalServerError, "操作失败")
	}
}
