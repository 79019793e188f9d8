package config

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/lihe07/RiichiEnv/common/log"
	"github.com/lihe07/RiichiEnv/engines/mahjong"
	"github.com/spf13/viper"
)

const envPrefix = "SCORER"

// Conf 进程启动时加载，热更新只替换 rules 和日志级别
var Conf *ScorerConfiguration

var (
	rules    atomic.Pointer[mahjong.Rules]
	watchMu  sync.Mutex
	watchers []func(mahjong.Rules)
)

type BaseConfig struct {
	ID         string `mapstructure:"id"`
	ServerType string `mapstructure:"serverType"`
	MetricPort int    `mapstructure:"metricPort"`
}

type ScorerConfiguration struct {
	BaseConfig   `mapstructure:",squash"`
	HttpPort     int           `mapstructure:"httpPort"`
	LogConf      LogConf       `mapstructure:"log"`
	Rules        mahjong.Rules `mapstructure:"rules"`
	CacheConf    CacheConf     `mapstructure:"cache"`
	RateLimit    RateLimitConf `mapstructure:"rateLimit"`
	DatabaseConf DatabaseConf  `mapstructure:"database"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
}

// CacheConf 本地缓存 + redis 二级缓存，TTL 单位为秒
type CacheConf struct {
	Enabled  bool  `mapstructure:"enabled"`
	MaxCost  int64 `mapstructure:"maxCost"`
	TTL      int   `mapstructure:"ttl"`
	RedisTTL int   `mapstructure:"redisTtl"`
}

// RateLimitConf 每个客户端 IP 每秒请求数，rate 为 0 时不限流
type RateLimitConf struct {
	Rate  float64 `mapstructure:"rate"`
	Burst int     `mapstructure:"burst"`
}

type DatabaseConf struct {
	MongoConf MongoConf `mapstructure:"mongo"`
	RedisConf RedisConf `mapstructure:"redis"`
}

// MongoConf url 为空时不落库
type MongoConf struct {
	Url         string `mapstructure:"url"`
	Db          string `mapstructure:"db"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	MinPoolSize int    `mapstructure:"minPoolSize"`
	MaxPoolSize int    `mapstructure:"maxPoolSize"`
}

// RedisConf addr 和 clusterAddrs 都为空时不启用二级缓存
type RedisConf struct {
	Addr         string   `mapstructure:"addr"`
	ClusterAddrs []string `mapstructure:"clusterAddrs"`
	Password     string   `mapstructure:"password"`
	PoolSize     int      `mapstructure:"poolSize"`
	MinIdleConns int      `mapstructure:"minIdleConns"`
}

func (c RedisConf) Enabled() bool {
	return c.Addr != "" || len(c.ClusterAddrs) > 0
}

func (c MongoConf) Enabled() bool {
	return c.Url != ""
}

const redactedSecret = "******"

// Redacted 打印用的副本，隐藏数据库密码
func (c ScorerConfiguration) Redacted() ScorerConfiguration {
	if c.DatabaseConf.MongoConf.Password != "" {
		c.DatabaseConf.MongoConf.Password = redactedSecret
	}
	if c.DatabaseConf.RedisConf.Password != "" {
		c.DatabaseConf.RedisConf.Password = redactedSecret
	}
	c.DatabaseConf.RedisConf.ClusterAddrs = slices.Clone(c.DatabaseConf.RedisConf.ClusterAddrs)
	return c
}

func setDefaults(v *viper.Viper) {
	def := mahjong.DefaultRules()
	v.SetDefault("id", "scorer-1")
	v.SetDefault("serverType", "scorer")
	v.SetDefault("metricPort", 0)
	v.SetDefault("httpPort", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("rules.kuitan", def.Kuitan)
	v.SetDefault("rules.kiriageMangan", def.KiriageMangan)
	v.SetDefault("rules.kazoeYakuman", def.KazoeYakuman)
	v.SetDefault("rules.doubleYakuman", def.DoubleYakuman)
	v.SetDefault("rules.requireYaku", def.RequireYaku)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.maxCost", 1<<16)
	v.SetDefault("cache.ttl", 600)
	v.SetDefault("cache.redisTtl", 3600)
	v.SetDefault("rateLimit.rate", 50)
	v.SetDefault("rateLimit.burst", 100)
	v.SetDefault("database.mongo.url", "")
	v.SetDefault("database.mongo.db", "riichi")
	v.SetDefault("database.mongo.username", "")
	v.SetDefault("database.mongo.password", "")
	v.SetDefault("database.mongo.minPoolSize", 1)
	v.SetDefault("database.mongo.maxPoolSize", 10)
	v.SetDefault("database.redis.addr", "")
	v.SetDefault("database.redis.clusterAddrs", []string{})
	v.SetDefault("database.redis.password", "")
	v.SetDefault("database.redis.poolSize", 10)
	v.SetDefault("database.redis.minIdleConns", 2)
}

func newViper(configFile string) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if configFile != "" {
		v.SetConfigFile(configFile)
	}
	return v
}

// Load 读取配置文件，configFile 为空时只使用默认值和环境变量
func Load(configFile string) (*ScorerConfiguration, error) {
	v := newViper(configFile)
	if configFile != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}
	cfg, err := unmarshal(v)
	if err != nil {
		return nil, err
	}
	Conf = cfg
	setRules(cfg.Rules)
	return cfg, nil
}

func unmarshal(v *viper.Viper) (*ScorerConfiguration, error) {
	var cfg ScorerConfiguration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	return &cfg, nil
}

// InitFixedConfig 加载配置并监听文件变化，rules 和 log.level 热更新
func InitFixedConfig(configFile string) (*ScorerConfiguration, error) {
	cfg, err := Load(configFile)
	if err != nil {
		return nil, err
	}
	if configFile == "" {
		return cfg, nil
	}

	v := newViper(configFile)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		log.Info("配置文件变化: %s %s", e.Name, e.Op)
		reload(v)
	})
	v.WatchConfig()
	return cfg, nil
}

// reload 只替换可热更新的部分，解析失败保留旧值
func reload(v *viper.Viper) {
	cfg, err := unmarshal(v)
	if err != nil {
		log.Error("配置热更新失败: %v", err)
		return
	}
	log.SetLevel(cfg.LogConf.Level)
	setRules(cfg.Rules)
	log.Info("规则已更新: %+v", cfg.Rules)
}

func setRules(r mahjong.Rules) {
	rules.Store(&r)
	watchMu.Lock()
	fns := slices.Clone(watchers)
	watchMu.Unlock()
	for _, fn := range fns {
		fn(r)
	}
}

// Rules 当前生效的规则，未加载配置时为默认规则
func Rules() mahjong.Rules {
	if r := rules.Load(); r != nil {
		return *r
	}
	return mahjong.DefaultRules()
}

// OnRulesChange 规则变化时回调，例如清空计分缓存
func OnRulesChange(fn func(mahjong.Rules)) {
	watchMu.Lock()
	defer watchMu.Unlock()
	watchers = append(watchers, fn)
}
