package api

import (
	"time"

	"github.com/lihe07/RiichiEnv/common/http"
	"github.com/lihe07/RiichiEnv/common/log"
	"github.com/lihe07/RiichiEnv/common/metrics"
)

// PingHandler ping 检查
func PingHandler(c *http.Context) error {
	c.Success(map[string]any{
		"message":   "pong",
		"timestamp": time.Now().Unix(),
		"service":   "scorer",
	})
	return nil
}

// HealthHandler 可选后端不可用时服务仍然健康，只在 services 中标注；load 为主机和进程负载
func (h *Handler) HealthHandler(c *http.Context) error {
	load, err := metrics.CollectLoad(c.Ctx())
	if err != nil {
		log.Warn("主机负载采集失败: %v", err)
	}
	c.Success(map[string]any{
		"healthy":   true,
		"services":  h.backends(),
		"load":      load,
		"timestamp": time.Now().Unix(),
	})
	return nil
}
