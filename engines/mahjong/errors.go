package mahjong

import "errors"

// 输入校验错误，和牌失败不属于错误
var (
	ErrInvalidTile    = errors.New("invalid tile")
	ErrTileOverflow   = errors.New("more than four copies of a tile")
	ErrHandSize       = errors.New("invalid hand size")
	ErrWinTileMissing = errors.New("winning tile not in hand")
	ErrInvalidMeld    = errors.New("invalid meld")
)
