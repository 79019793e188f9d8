package repository

import (
	"context"
	"errors"

	"github.com/lihe07/RiichiEnv/core/domain/entity"
)

var ErrScoreRecordNotFound = errors.New("score record not found")

// ScoreRecordRepository 计分记录仓储接口
type ScoreRecordRepository interface {
	// Save 保存一条计分记录
	Save(ctx context.Context, record *entity.ScoreRecord) error

	// FindByID 记录不存在时返回 ErrScoreRecordNotFound
	FindByID(ctx context.Context, id string) (*entity.ScoreRecord, error)

	// FindRecent 按时间倒序
	FindRecent(ctx context.Context, limit int) ([]*entity.ScoreRecord, error)
}
