package api

import (
	"github.com/lihe07/RiichiEnv/common/http"
	"github.com/lihe07/RiichiEnv/game/application/service"
)

// Handler 网关 handler 依赖
type Handler struct {
	scoreService service.ScoreService
	backends     func() map[string]string // 健康检查时报告各后端状态
}

func NewHandler(scoreService service.ScoreService, backends func() map[string]string) *Handler {
	if backends == nil {
		backends = func() map[string]string { return map[string]string{} }
	}
	return &Handler{scoreService: scoreService, backends: backends}
}

// RegisterRoutes 注册所有路由
func RegisterRoutes(server *http.HttpServer, h *Handler) {
	server.GET("/ping", PingHandler)
	server.GET("/health", h.HealthHandler)

	v1 := server.Group("/api/v1")
	{
		v1.POST("/score", h.ScoreHandler)
		v1.POST("/agari", h.AgariHandler)
		v1.POST("/decompose", h.DecomposeHandler)
		v1.POST("/waits", h.WaitsHandler)
		v1.GET("/table", h.TableHandler)
		v1.POST("/table", h.TableHandler)
		v1.GET("/records", h.RecentRecordsHandler)
		v1.GET("/records/:id", h.RecordHandler)
	}
}
