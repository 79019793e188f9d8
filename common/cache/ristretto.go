package cache

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
)

// GeneralCache 进程内缓存，值为序列化后的字节，按字节数计成本
type GeneralCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

// NewGeneralCache maxCost 为总字节数上限，ttl 为默认过期时间
func NewGeneralCache(maxCost int64, ttl time.Duration) (*GeneralCache, error) {
	numCounters := maxCost / 64 * 10 // 约为条目数的 10 倍
	if numCounters < 1000 {
		numCounters = 1000
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: numCounters,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("创建 ristretto 缓存失败: %w", err)
	}

	return &GeneralCache{
		cache: cache,
		ttl:   ttl,
	}, nil
}

// Set 写入是异步的，可能被准入策略丢弃
func (c *GeneralCache) Set(key string, value []byte) bool {
	return c.SetWithTTL(key, value, c.ttl)
}

func (c *GeneralCache) SetWithTTL(key string, value []byte, ttl time.Duration) bool {
	return c.cache.SetWithTTL(key, value, int64(len(value))+int64(len(key)), ttl)
}

func (c *GeneralCache) Get(key string) ([]byte, bool) {
	value, ok := c.cache.Get(key)
	if !ok {
		return nil, false
	}
	b, ok := value.([]byte)
	return b, ok
}

func (c *GeneralCache) Delete(key string) {
	c.cache.Del(key)
}

// Wait 等待缓冲区写入完成，测试中使用
func (c *GeneralCache) Wait() {
	c.cache.Wait()
}

// Clear 规则变化后旧结果全部失效
func (c *GeneralCache) Clear() {
	c.cache.Clear()
}

func (c *GeneralCache) Close() {
	c.cache.Close()
}
