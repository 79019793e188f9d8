package container

import (
	"context"
	"fmt"
	"time"

	commoncache "github.com/lihe07/RiichiEnv/common/cache"
	"github.com/lihe07/RiichiEnv/common/config"
	"github.com/lihe07/RiichiEnv/common/log"
	"github.com/lihe07/RiichiEnv/core/domain/repository"
	"github.com/lihe07/RiichiEnv/core/infrastructure/cache"
	"github.com/lihe07/RiichiEnv/core/infrastructure/persistence"
	"github.com/lihe07/RiichiEnv/engines/mahjong"
)

// ScorerContainer 计分网关的依赖
type ScorerContainer struct {
	*BaseContainer
	scoreCache       *cache.ScoreCache
	recordRepository repository.ScoreRecordRepository
}

func NewScorerContainer(ctx context.Context, conf *config.ScorerConfiguration) (*ScorerContainer, error) {
	base := NewBase(ctx, conf.DatabaseConf)
	c := &ScorerContainer{BaseContainer: base}

	if base.mongo != nil {
		c.recordRepository = persistence.NewScoreRecordRepository(base.mongo)
	}

	if conf.CacheConf.Enabled {
		local, err := commoncache.NewGeneralCache(conf.CacheConf.MaxCost, time.Duration(conf.CacheConf.TTL)*time.Second)
		if err != nil {
			_ = base.Close()
			return nil, fmt.Errorf("创建计分缓存失败: %w", err)
		}
		// nil 指针不能直接放进接口
		var remote cache.RemoteStore
		if base.redis != nil {
			remote = base.redis
		}
		c.scoreCache = cache.NewScoreCache(local, remote, time.Duration(conf.CacheConf.RedisTTL)*time.Second)
		config.OnRulesChange(func(mahjong.Rules) {
			c.scoreCache.ClearLocal()
			log.Info("规则变化，本地计分缓存已清空")
		})
	}
	return c, nil
}

// GetScoreCache 未启用缓存时为 nil
func (c *ScorerContainer) GetScoreCache() *cache.ScoreCache {
	return c.scoreCache
}

// GetScoreRecordRepository 未配置 mongodb 时为 nil
func (c *ScorerContainer) GetScoreRecordRepository() repository.ScoreRecordRepository {
	return c.recordRepository
}

func (c *ScorerContainer) Close() error {
	if c.scoreCache != nil {
		c.scoreCache.Close()
	}
	return c.BaseContainer.Close()
}
