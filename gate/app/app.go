package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lihe07/RiichiEnv/common/config"
	"github.com/lihe07/RiichiEnv/common/http"
	"github.com/lihe07/RiichiEnv/common/log"
	"github.com/lihe07/RiichiEnv/core/container"
	"github.com/lihe07/RiichiEnv/game/application/service/impl"
	"github.com/lihe07/RiichiEnv/gate/api"
)

func ginMode(level string) string {
	if level == "debug" {
		return "debug"
	}
	return "release"
}

func backendStatus(c *container.ScorerContainer) func() map[string]string {
	state := func(ok, configured bool) string {
		switch {
		case ok:
			return "ok"
		case configured:
			return "unavailable"
		default:
			return "disabled"
		}
	}
	return func() map[string]string {
		return map[string]string{
			"mongo": state(c.GetMongo() != nil, config.Conf.DatabaseConf.MongoConf.Enabled()),
			"redis": state(c.GetRedis() != nil, config.Conf.DatabaseConf.RedisConf.Enabled()),
			"cache": state(c.GetScoreCache() != nil, config.Conf.CacheConf.Enabled),
		}
	}
}

func Run(ctx context.Context) error {
	scorerContainer, err := container.NewScorerContainer(ctx, config.Conf)
	if err != nil {
		return err
	}
	defer scorerContainer.Close()

	scoreService := impl.NewScoreService(
		scorerContainer.GetScoreCache(),
		scorerContainer.GetScoreRecordRepository(),
	)

	// 使用 common 封装的 gin 库 http-server
	server := http.NewHttpServer(
		http.WithPort(config.Conf.HttpPort),
		http.WithMode(ginMode(config.Conf.LogConf.Level)),
	)
	server.Use(
		http.RequestIDMiddleware(),
		http.CorsMiddleware(),
		http.LoggerMiddleware(),
		http.RateLimitMiddleware(config.Conf.RateLimit.Rate, config.Conf.RateLimit.Burst),
	)
	api.RegisterRoutes(server, api.NewHandler(scoreService, backendStatus(scorerContainer)))

	errCh := make(chan error, 1)
	go func() {
		log.Info("启动 HTTP 服务器，端口: %d", server.GetPort())
		errCh <- server.Start()
	}()

	stop := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP 服务器关闭失败: %v", err)
		} else {
			log.Info("HTTP 服务器已优雅关闭")
		}
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT, syscall.SIGHUP)
	defer signal.Stop(c)
	for {
		select {
		case <-ctx.Done():
			stop()
			return nil
		case err := <-errCh:
			if err != nil {
				log.Error("HTTP 服务器启动失败: %v", err)
			}
			return err
		case s := <-c:
			switch s {
			case syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT:
				stop()
				log.Info("中断信号，服务停止")
				return nil
			case syscall.SIGHUP:
				stop()
				log.Info("挂起信号，服务停止")
				return nil
			default:
				return nil
			}
		}
	}
}
