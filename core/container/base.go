package container

import (
	"context"

	"github.com/lihe07/RiichiEnv/common/config"
	"github.com/lihe07/RiichiEnv/common/database"
	"github.com/lihe07/RiichiEnv/common/log"
)

// BaseContainer 共享的数据库连接，计分服务不依赖它们，未配置或连接失败时为 nil
type BaseContainer struct {
	mongo *database.MongoManager
	redis *database.RedisManager
}

// NewBase 只连接已配置的数据库，失败时降级运行
func NewBase(ctx context.Context, conf config.DatabaseConf) *BaseContainer {
	base := &BaseContainer{}

	if conf.MongoConf.Enabled() {
		mongo, err := database.NewMongo(ctx, conf.MongoConf)
		if err != nil {
			log.Warn("mongodb 不可用，计分记录不落库: %v", err)
		} else {
			log.Info("mongodb 连接成功")
			base.mongo = mongo
		}
	}

	if conf.RedisConf.Enabled() {
		redis, err := database.NewRedis(ctx, conf.RedisConf)
		if err != nil {
			log.Warn("redis 不可用，只使用本地缓存: %v", err)
		} else {
			log.Info("redis 连接成功")
			base.redis = redis
		}
	}
	return base
}

func (c *BaseContainer) GetMongo() *database.MongoManager {
	return c.mongo
}

func (c *BaseContainer) GetRedis() *database.RedisManager {
	return c.redis
}

// Close 关闭所有资源
func (c *BaseContainer) Close() error {
	e1 := c.mongo.Close()
	e2 := c.redis.Close()
	if e1 != nil {
		log.Error("mongo 关闭失败: %v", e1)
	}
	if e2 != nil {
		log.Error("redis 关闭失败: %v", e2)
	}
	if e1 != nil {
		return e1
	}
	return e2
}
