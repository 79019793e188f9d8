package entity

import (
	"time"

	"github.com/google/uuid"
)

// ScoreRecord 一次成功和牌的计分记录，只写不改
type ScoreRecord struct {
	ID           string    `bson:"_id" json:"id"`
	RequestID    string    `bson:"request_id" json:"requestId"` // http 请求 ID，命令行调用时为空
	Hand         string    `bson:"hand" json:"hand"`       // mpsz 门内手牌，含和了牌
	Melds        []string  `bson:"melds" json:"melds"`
	WinTile      string    `bson:"win_tile" json:"winTile"`
	Tsumo        bool      `bson:"tsumo" json:"tsumo"`
	Dealer       bool      `bson:"dealer" json:"dealer"`
	Han          int       `bson:"han" json:"han"`
	Fu           int       `bson:"fu" json:"fu"`
	YakumanCount int       `bson:"yakuman_count" json:"yakumanCount"`
	Yaku         []int     `bson:"yaku" json:"yaku"` // 役种编号
	Total        int       `bson:"total" json:"total"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}

func NewScoreRecord(hand string, melds []string, winTile string) *ScoreRecord {
	if melds == nil {
		melds = []string{}
	}
	return &ScoreRecord{
		ID:        uuid.NewString(),
		Hand:      hand,
		Melds:     melds,
		WinTile:   winTile,
		CreatedAt: time.Now(),
	}
}
