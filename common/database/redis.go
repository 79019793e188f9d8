package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lihe07/RiichiEnv/common/config"
	"github.com/lihe07/RiichiEnv/common/log"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound 键不存在
var ErrNotFound = errors.New("key not found")

// RedisManager 单机和集群共用 UniversalClient
type RedisManager struct {
	Cli redis.UniversalClient
}

func NewRedis(ctx context.Context, redisConf config.RedisConf) (*RedisManager, error) {
	if !redisConf.Enabled() {
		return nil, fmt.Errorf("redis 配置出错: addr 和 clusterAddrs 均为空")
	}

	var cli redis.UniversalClient
	if len(redisConf.ClusterAddrs) == 0 {
		cli = redis.NewClient(&redis.Options{
			Addr:         redisConf.Addr,
			Password:     redisConf.Password, // 没有密码时为空字符串
			PoolSize:     redisConf.PoolSize,
			MinIdleConns: redisConf.MinIdleConns,
		})
	} else {
		cli = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:        redisConf.ClusterAddrs,
			Password:     redisConf.Password,
			PoolSize:     redisConf.PoolSize,
			MinIdleConns: redisConf.MinIdleConns,
		})
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := cli.Ping(ctx).Err(); err != nil {
		_ = cli.Close()
		return nil, fmt.Errorf("redis 连接错误: %w", err)
	}
	return &RedisManager{Cli: cli}, nil
}

func (r *RedisManager) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	return r.Cli.Set(ctx, key, value, expiration).Err()
}

// Get 键不存在时返回 ErrNotFound
func (r *RedisManager) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.Cli.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return b, err
}

func (r *RedisManager) Del(ctx context.Context, keys ...string) error {
	return r.Cli.Del(ctx, keys...).Err()
}

func (r *RedisManager) Incr(ctx context.Context, key string) (int64, error) {
	return r.Cli.Incr(ctx, key).Result()
}

func (r *RedisManager) Close() error {
	if r == nil || r.Cli == nil {
		return nil
	}
	if err := r.Cli.Close(); err != nil {
		log.Error("redis 关闭出错: %v", err)
		return err
	}
	return nil
}
