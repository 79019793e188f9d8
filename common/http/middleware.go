package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/lihe07/RiichiEnv/common/errs"
	"github.com/lihe07/RiichiEnv/common/log"
	"github.com/lihe07/RiichiEnv/common/utils"
)

const headerRequestID = "X-Request-ID"

// CorsMiddleware 跨域中间件
func CorsMiddleware() MiddlewareFunc {
	return func(c *Context) error {
		if origin := c.GetHeader("Origin"); origin != "" {
			c.SetHeader("Access-Control-Allow-Origin", "*")
			c.SetHeader("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			c.SetHeader("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, X-Request-ID")
			c.SetHeader("Access-Control-Expose-Headers", "Content-Length, X-Request-ID")
		}
		// 预检请求
		if c.Method() == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
		}
		return nil
	}
}

// RequestIDMiddleware 沿用调用方的 X-Request-ID，否则生成 uuid
func RequestIDMiddleware() MiddlewareFunc {
	return func(c *Context) error {
		requestID := c.GetHeader(headerRequestID)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.SetHeader(headerRequestID, requestID)
		return nil
	}
}

// LoggerMiddleware 请求完成后记录耗时和状态码
func LoggerMiddleware() MiddlewareFunc {
	return func(c *Context) error {
		start := time.Now()
		c.Next()
		log.With("requestID", c.RequestID()).Infof("HTTP %s %s %d %v from %s",
			c.Method(), c.Path(), c.StatusCode(), time.Since(start), c.ClientIP())
		return nil
	}
}

// RateLimitMiddleware 按客户端 IP 令牌桶限流，rate<=0 时不限流
func RateLimitMiddleware(rate float64, burst int) MiddlewareFunc {
	if rate <= 0 {
		return func(c *Context) error { return nil }
	}
	limiter := utils.NewKeyedRateLimiter(rate, burst, 10000, 10*time.Minute)
	return func(c *Context) error {
		if !limiter.Allow(c.ClientIP()) {
			return errs.New(errs.CodeTooMany, "请求过于频繁")
		}
		return nil
	}
}
