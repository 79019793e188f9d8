package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/lihe07/RiichiEnv/common/database"
	"github.com/lihe07/RiichiEnv/common/log"
	"github.com/lihe07/RiichiEnv/core/domain/entity"
	"github.com/lihe07/RiichiEnv/core/domain/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const scoreRecordCollection = "score_records"

type ScoreRecordRepository struct {
	mongo *database.MongoManager
}

func NewScoreRecordRepository(mongo *database.MongoManager) repository.ScoreRecordRepository {
	return &ScoreRecordRepository{mongo: mongo}
}

func (r *ScoreRecordRepository) Save(ctx context.Context, record *entity.ScoreRecord) error {
	collection := r.mongo.Db.Collection(scoreRecordCollection)
	if _, err := collection.InsertOne(ctx, record); err != nil {
		log.Error("保存计分记录失败: %v", err)
		return fmt.Errorf("保存计分记录失败: %w", err)
	}
	return nil
}

func (r *ScoreRecordRepository) FindByID(ctx context.Context, id string) (*entity.ScoreRecord, error) {
	collection := r.mongo.Db.Collection(scoreRecordCollection)

	var record entity.ScoreRecord
	err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrScoreRecordNotFound
		}
		log.Error("查询计分记录失败: %v", err)
		return nil, err
	}
	return &record, nil
}

func (r *ScoreRecordRepository) FindRecent(ctx context.Context, limit int) ([]*entity.ScoreRecord, error) {
	collection := r.mongo.Db.Collection(scoreRecordCollection)

	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Error("查询计分记录失败: %v", err)
		return nil, err
	}
	defer cursor.Close(ctx)

	records := make([]*entity.ScoreRecord, 0, limit)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("解析计分记录失败: %w", err)
	}
	return records, nil
}
