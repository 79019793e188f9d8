package service

import (
	"context"

	"github.com/lihe07/RiichiEnv/core/domain/entity"
	"github.com/lihe07/RiichiEnv/game/application/dto"
)

// ScoreService 计分和牌形分析
type ScoreService interface {
	// Score 解析请求并计分，和牌时写入计分记录
	Score(ctx context.Context, req *dto.ScoreRequest) (*dto.ScoreResponse, error)

	// Decompose 列出所有面子拆分
	Decompose(ctx context.Context, req *dto.HandRequest) (*dto.DecomposeResponse, error)

	// Agari 判断和牌形和向听数
	Agari(ctx context.Context, req *dto.HandRequest) (*dto.AgariResponse, error)

	// Waits 听牌和进张
	Waits(ctx context.Context, req *dto.WaitsRequest) (*dto.WaitsResponse, error)

	// Table 查点数表
	Table(ctx context.Context, req *dto.TableRequest) (*dto.TableResponse, error)

	// Record 按 ID 查询计分记录
	Record(ctx context.Context, id string) (*entity.ScoreRecord, error)

	// RecentRecords 按时间倒序返回最近的计分记录
	RecentRecords(ctx context.Context, limit int) (*dto.RecordsResponse, error)
}
