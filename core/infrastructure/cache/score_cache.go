package cache

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lihe07/RiichiEnv/common/cache"
	"github.com/lihe07/RiichiEnv/common/database"
	"github.com/lihe07/RiichiEnv/common/log"
)

const scoreKeyPrefix = "score:"

// scoreKeySpace 缓存键的 uuid v5 命名空间
var scoreKeySpace = uuid.MustParse("6f1c4a52-2c1e-4c55-9a43-8a1f0d3b7e21")

// RemoteStore 二级缓存，*database.RedisManager 实现了它
type RemoteStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, expiration time.Duration) error
}

// ScoreCache 计分结果缓存：本地 ristretto + 可选 redis
type ScoreCache struct {
	local     *cache.GeneralCache
	remote    RemoteStore
	remoteTTL time.Duration
}

// NewScoreCache remote 为 nil 时只用本地缓存
func NewScoreCache(local *cache.GeneralCache, remote RemoteStore, remoteTTL time.Duration) *ScoreCache {
	return &ScoreCache{
		local:     local,
		remote:    remote,
		remoteTTL: remoteTTL,
	}
}

// Key 规范化请求文本映射为定长键
func Key(canonical string) string {
	return scoreKeyPrefix + uuid.NewSHA1(scoreKeySpace, []byte(canonical)).String()
}

// Get 本地未命中时查 redis 并回填
func (c *ScoreCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if v, ok := c.local.Get(key); ok {
		return v, true
	}
	if c.remote == nil {
		return nil, false
	}
	v, err := c.remote.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			log.Warn("读取 redis 缓存失败: %v", err)
		}
		return nil, false
	}
	c.local.Set(key, v)
	return v, true
}

// Set redis 写失败只记日志，不影响计分
func (c *ScoreCache) Set(ctx context.Context, key string, value []byte) {
	c.local.Set(key, value)
	if c.remote == nil {
		return
	}
	if err := c.remote.Set(ctx, key, value, c.remoteTTL); err != nil {
		log.Warn("写入 redis 缓存失败: %v", err)
	}
}

// Wait 等待本地缓存写入生效
func (c *ScoreCache) Wait() {
	c.local.Wait()
}

// ClearLocal 规则变化时清空本地缓存，redis 中的键带规则内容，自然失效
func (c *ScoreCache) ClearLocal() {
	c.local.Clear()
}

func (c *ScoreCache) Close() {
	c.local.Close()
}
