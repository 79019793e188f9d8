package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Burst(t *testing.T) {
	rl := NewRateLimiter(1, 3)
	now := rl.lastRefill

	assert.True(t, rl.AllowAt(now))
	assert.True(t, rl.AllowAt(now))
	assert.True(t, rl.AllowAt(now))
	assert.False(t, rl.AllowAt(now))

	// 一秒补充一个令牌
	assert.True(t, rl.AllowAt(now.Add(time.Second)))
	assert.False(t, rl.AllowAt(now.Add(time.Second)))

	// 补充不超过容量
	later := now.Add(time.Minute)
	for i := 0; i < 3; i++ {
		assert.True(t, rl.AllowAt(later))
	}
	assert.False(t, rl.AllowAt(later))
}

func TestKeyedRateLimiter(t *testing.T) {
	k := NewKeyedRateLimiter(0, 1, 2, time.Minute)

	assert.True(t, k.Allow("a"))
	assert.False(t, k.Allow("a"))
	// 不同的键互不影响
	assert.True(t, k.Allow("b"))
	assert.Equal(t, 2, k.Len())

	// 超过 maxKeys 时清理空闲的键
	k.get("c", time.Now().Add(2*time.Minute))
	assert.Equal(t, 1, k.Len())
}

func TestKeyedRateLimiter_BoundedWhenAllActive(t *testing.T) {
	k := NewKeyedRateLimiter(1, 1, 3, time.Hour)
	start := time.Now()

	for i := 0; i < 50; i++ {
		key := string(rune('a' + i%26)) + string(rune('a' + i/26))
		now := start.Add(time.Duration(i) * time.Second)
		k.get(key, now).AllowAt(now)
		assert.LessOrEqual(t, k.Len(), 3)
	}
	assert.Equal(t, 3, k.Len())

	// 淘汰的是最久未用的键
	k2 := NewKeyedRateLimiter(1, 1, 2, time.Hour)
	k2.get("old", start).AllowAt(start.Add(time.Second))
	k2.get("new", start).AllowAt(start.Add(2 * time.Second))
	k2.get("next", start.Add(3*time.Second))
	assert.Equal(t, 2, k2.Len())
	_, hasOld := k2.limiters["old"]
	_, hasNew := k2.limiters["new"]
	assert.False(t, hasOld)
	assert.True(t, hasNew)
}
