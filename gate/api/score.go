package api

import (
	"net/http"
	"strconv"

	commonhttp "github.com/lihe07/RiichiEnv/common/http"
	"github.com/lihe07/RiichiEnv/game/application/dto"
)

// ScoreHandler 计分
func (h *Handler) ScoreHandler(c *commonhttp.Context) error {
	var req dto.ScoreRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("请求参数错误: " + err.Error())
		return nil
	}
	req.RequestID = c.RequestID()

	resp, err := h.scoreService.Score(c.Ctx(), &req)
	if err != nil {
		return err
	}
	c.Success(resp)
	return nil
}

// AgariHandler 和牌判定和向听数
func (h *Handler) AgariHandler(c *commonhttp.Context) error {
	var req dto.HandRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("请求参数错误: " + err.Error())
		return nil
	}
	resp, err := h.scoreService.Agari(c.Ctx(), &req)
	if err != nil {
		return err
	}
	c.Success(resp)
	return nil
}

// DecomposeHandler 面子拆分
func (h *Handler) DecomposeHandler(c *commonhttp.Context) error {
	var req dto.HandRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("请求参数错误: " + err.Error())
		return nil
	}
	resp, err := h.scoreService.Decompose(c.Ctx(), &req)
	if err != nil {
		return err
	}
	c.Success(resp)
	return nil
}

// WaitsHandler 听牌
func (h *Handler) WaitsHandler(c *commonhttp.Context) error {
	var req dto.WaitsRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("请求参数错误: " + err.Error())
		return nil
	}
	resp, err := h.scoreService.Waits(c.Ctx(), &req)
	if err != nil {
		return err
	}
	c.Success(resp)
	return nil
}

// TableHandler GET 读 query，POST 读 JSON
func (h *Handler) TableHandler(c *commonhttp.Context) error {
	var req dto.TableRequest
	var err error
	if c.Method() == http.MethodGet {
		err = c.BindQuery(&req)
	} else {
		err = c.BindJSON(&req)
	}
	if err != nil {
		c.BadRequest("请求参数错误: " + err.Error())
		return nil
	}
	resp, err := h.scoreService.Table(c.Ctx(), &req)
	if err != nil {
		return err
	}
	c.Success(resp)
	return nil
}

// RecordHandler 按 ID 查询计分记录
func (h *Handler) RecordHandler(c *commonhttp.Context) error {
	record, err := h.scoreService.Record(c.Ctx(), c.Param("id"))
	if err != nil {
		return err
	}
	c.Success(record)
	return nil
}

// RecentRecordsHandler 最近的计分记录，limit 默认 20
func (h *Handler) RecentRecordsHandler(c *commonhttp.Context) error {
	limit, err := strconv.Atoi(c.GetQueryWithDefault("limit", "20"))
	if err != nil {
		c.BadRequest("limit 必须为整数")
		return nil
	}
	resp, err := h.scoreService.RecentRecords(c.Ctx(), limit)
	if err != nil {
		return err
	}
	c.Success(resp)
	return nil
}
