package database

import (
	"context"
	"testing"

	"github.com/lihe07/RiichiEnv/common/config"
	"github.com/stretchr/testify/assert"
)

func TestNewRedis_NotConfigured(t *testing.T) {
	r, err := NewRedis(context.Background(), config.RedisConf{})
	assert.Error(t, err)
	assert.Nil(t, r)
}

func TestNewMongo_NotConfigured(t *testing.T) {
	m, err := NewMongo(context.Background(), config.MongoConf{})
	assert.Error(t, err)
	assert.Nil(t, m)
}

func TestClose_NilManagers(t *testing.T) {
	var r *RedisManager
	var m *MongoManager
	assert.NoError(t, r.Close())
	assert.NoError(t, m.Close())
}
