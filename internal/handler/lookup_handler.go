package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urgelog/internal/service"
)

type lookupPayload struct {
	Name string `json:"name"`
}

// ListCues 返回诱因选项
func (a *API) ListCues(c *gin.Context) {
	cues, err := a.lookups.ListCues()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取诱因列表失败")
		return
	}

	items := make([]gin.H, 0, len(cues))
	for _, cue := range cues {
		items = append(items, gin.H{"id": cue.ID, "name": cue.Name})
	}
	c.JSON(http.StatusOK, gin.H{"cues": items})
}

// CreateCue 创建诱因，名称重复时幂等返回已有记录
func (a *API) CreateCue(c *gin.Context) {
	var payload lookupPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	cue, err := a.lookups.CreateCue(payload.Name)
	if err != nil {
		if errors.Is(err, service.ErrLookupNameRequired) {
			respondError(c, http.StatusBadRequest, "诱因名称不能为空")
			return
		}
		respondError(c, http.StatusInternalServerError, "创建诱因失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"cue": gin.H{"id": cue.ID, "name": cue.Name}})
}

// DeleteCue 删除诱因
func (a *API) DeleteCue(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的诱因ID")
		return
	}

	if err := a.lookups.DeleteCue(id); err != nil {
		respondError(c, http.StatusInternalServerError, "删除诱因失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ListLocations 返回地点选项
func (a *API) ListLocations(c *gin.Context) {
	locations, err := a.lookups.ListLocations()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取地点列表失败")
		return
	}

	items := make([]gin.H, 0, len(locations))
	for _, location := range locations {
		items = append(items, gin.H{"id": location.ID, "name": location.Name})
	}
	c.JSON(http.StatusOK, gin.H{"locations": items})
}

// CreateLocation 创建地点，行为与 CreateCue 一致
func (a *API) CreateLocation(c *gin.Context) {
	var payload lookupPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	location, err := a.lookups.CreateLocation(payload.Name)
	if err != nil {
		if errors.Is(err, service.ErrLookupNameRequired) {
			respondError(c, http.StatusBadRequest, "地点名称不能为空")
			return
		}
		respondError(c, http.StatusInternalServerError, "创建地点失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"location": gin.H{"id": location.ID, "name": location.Name}})
}

// DeleteLocation 删除地点
func (a *API) DeleteLocation(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的地点ID")
		return
	}

	if err := a.lookups.DeleteLocation(id); err != nil {
		respondError(c, http.StatusInternalServerError, "删除地点失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
