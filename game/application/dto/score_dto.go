package dto

import (
	"github.com/lihe07/RiichiEnv/core/domain/entity"
	"github.com/lihe07/RiichiEnv/engines/mahjong"
)

// ScoreRequest 牌为 mpsz 文本(0 表示赤五)，手牌和和了牌也可以用 136 编号给出
type ScoreRequest struct {
	Hand      string   `json:"hand" binding:"required_without=HandIDs"`       // 门内手牌，可含和了牌
	HandIDs   []int    `json:"handIds"`                                       // 136 编号，非空时忽略 Hand
	Melds     []string `json:"melds"`                                         // 例如 "pon:555z"
	WinTile   string   `json:"winTile" binding:"required_without=WinTileID"` // 和了牌
	WinTileID *int     `json:"winTileId"`                                     // 136 编号，非空时忽略 WinTile

	Tsumo        bool `json:"tsumo"`
	Riichi       bool `json:"riichi"`
	DoubleRiichi bool `json:"doubleRiichi"`
	Ippatsu      bool `json:"ippatsu"`
	Haitei       bool `json:"haitei"`
	Houtei       bool `json:"houtei"`
	Rinshan      bool `json:"rinshan"`
	Chankan      bool `json:"chankan"`
	FirstTurn    bool `json:"firstTurn"` // 天和、地和

	RoundWind string `json:"roundWind"` // E/S/W/N 或 1z-4z，默认东
	SeatWind  string `json:"seatWind"`  // 东为庄家

	DoraIndicators []string `json:"doraIndicators"`
	UraIndicators  []string `json:"uraIndicators"`
	Honba          int      `json:"honba" binding:"gte=0"`

	RequestID string `json:"-"` // 写入计分记录
}

type YakuItem struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Han  int    `json:"han"`
}

type ScoreResponse struct {
	Agari        bool            `json:"agari"`
	Yakuman      bool            `json:"yakuman"`
	Shape        string          `json:"shape"`
	Wait         string          `json:"wait,omitempty"`
	Han          int             `json:"han"`
	Fu           int             `json:"fu"`
	YakumanCount int             `json:"yakumanCount"`
	Yaku         []YakuItem      `json:"yaku"`
	Payment      mahjong.Payment `json:"payment"`
	Division     string          `json:"division,omitempty"`
	Dora         int             `json:"dora"`
	AkaDora      int             `json:"akaDora"`
	UraDora      int             `json:"uraDora"`
	Cached       bool            `json:"cached"`
}

// HandRequest 只需要手牌的查询
type HandRequest struct {
	Hand string `json:"hand" binding:"required"`
}

type DecomposeResponse struct {
	Shape     string   `json:"shape"`
	Divisions []string `json:"divisions"`
}

type AgariResponse struct {
	Agari   bool   `json:"agari"`
	Shape   string `json:"shape"`
	Shanten int    `json:"shanten"` // -1 为和了
}

// WaitsRequest Visible 为场上可见的牌，用于扣减进张
type WaitsRequest struct {
	Hand    string `json:"hand" binding:"required"`
	Visible string `json:"visible"`
}

type WaitsResponse struct {
	Shanten int      `json:"shanten"`
	Waits   []string `json:"waits"`
	Ukeire  int      `json:"ukeire"`
}

// TableRequest Yakuman 大于 0 时按役满倍数查表，忽略番符
type TableRequest struct {
	Han     int  `json:"han" form:"han" binding:"gte=0"`
	Yakuman int  `json:"yakuman" form:"yakuman" binding:"gte=0"`
	Fu     int  `json:"fu" form:"fu"`
	Dealer bool `json:"dealer" form:"dealer"`
	Tsumo  bool `json:"tsumo" form:"tsumo"`
	Honba  int  `json:"honba" form:"honba" binding:"gte=0"`
}

type TableResponse struct {
	Han     int             `json:"han"`
	Yakuman int             `json:"yakuman,omitempty"`
	Fu      int             `json:"fu"`
	Payment mahjong.Payment `json:"payment"`
}

type RecordsResponse struct {
	Records []*entity.ScoreRecord `json:"records"`
}
