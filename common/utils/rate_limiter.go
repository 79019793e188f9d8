package utils

import (
	"sync"
	"time"
)

// RateLimiter 令牌桶限流器
type RateLimiter struct {
	rate       float64 // 每秒补充的令牌数
	capacity   float64 // 桶的容量，即允许的突发请求数
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

// NewRateLimiter rate 为每秒允许的请求数，burst 为桶的容量，初始为满
func NewRateLimiter(rate float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		rate:       rate,
		capacity:   float64(burst),
		tokens:     float64(burst),
		lastRefill: time.Now(),
	}
}

// Allow 判断当前请求是否允许通过
func (rl *RateLimiter) Allow() bool {
	return rl.AllowAt(time.Now())
}

// AllowAt 以指定时间补充令牌，测试中使用固定时钟
func (rl *RateLimiter) AllowAt(now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if elapsed := now.Sub(rl.lastRefill).Seconds(); elapsed > 0 {
		rl.tokens = min(rl.capacity, rl.tokens+elapsed*rl.rate)
		rl.lastRefill = now
	}

	if rl.tokens >= 1.0 {
		rl.tokens -= 1.0
		return true
	}
	return false
}

// idleSince 最后一次补充令牌的时间
func (rl *RateLimiter) idleSince() time.Time {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.lastRefill
}

// KeyedRateLimiter 按键(例如客户端 IP)分别限流
type KeyedRateLimiter struct {
	rate     float64
	burst    int
	maxKeys  int
	idle     time.Duration
	mu       sync.Mutex
	limiters map[string]*RateLimiter
}

// NewKeyedRateLimiter 键数达到 maxKeys 时清理空闲超过 idle 的限流器，仍满则淘汰最久未用的一个
func NewKeyedRateLimiter(rate float64, burst int, maxKeys int, idle time.Duration) *KeyedRateLimiter {
	if maxKeys < 1 {
		maxKeys = 1
	}
	return &KeyedRateLimiter{
		rate:     rate,
		burst:    burst,
		maxKeys:  maxKeys,
		idle:     idle,
		limiters: make(map[string]*RateLimiter),
	}
}

func (k *KeyedRateLimiter) Allow(key string) bool {
	return k.get(key, time.Now()).Allow()
}

func (k *KeyedRateLimiter) get(key string, now time.Time) *RateLimiter {
	k.mu.Lock()
	defer k.mu.Unlock()
	if rl, ok := k.limiters[key]; ok {
		return rl
	}
	if len(k.limiters) >= k.maxKeys {
		var oldestKey string
		var oldest time.Time
		for old, rl := range k.limiters {
			since := rl.idleSince()
			if now.Sub(since) > k.idle {
				delete(k.limiters, old)
				continue
			}
			if oldestKey == "" || since.Before(oldest) {
				oldestKey, oldest = old, since
			}
		}
		// 全部活跃时淘汰最久未用的键
		if len(k.limiters) >= k.maxKeys && oldestKey != "" {
			delete(k.limiters, oldestKey)
		}
	}
	rl := NewRateLimiter(k.rate, k.burst)
	k.limiters[key] = rl
	return rl
}

// Len 当前跟踪的键数
func (k *KeyedRateLimiter) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.limiters)
}
