package mahjong

import (
	"fmt"
	"sort"
)

// MeldType 副露种类
type MeldType int

const (
	MeldChi       MeldType = iota // 吃
	MeldPon                       // 碰
	MeldDaiminkan                 // 大明杠
	MeldAnkan                     // 暗杠
	MeldKakan                     // 加杠
)

func (t MeldType) String() string {
	switch t {
	case MeldChi:
		return "chi"
	case MeldPon:
		return "pon"
	case MeldDaiminkan:
		return "daiminkan"
	case MeldAnkan:
		return "ankan"
	case MeldKakan:
		return "kakan"
	default:
		return "unknown"
	}
}

type Meld struct {
	Type   MeldType
	Tiles  []TileType
	Opened bool // 只有暗杠为 false
}

// NewMeld 校验并规整副露，吃的牌按点数排序
func NewMeld(typ MeldType, tiles ...TileType) (Meld, error) {
	for _, t := range tiles {
		if !t.Valid() {
			return Meld{}, fmt.Errorf("%w: %d", ErrInvalidTile, int(t))
		}
	}
	ts := append([]TileType(nil), tiles...)
	sort.Slice(ts, func(i, j int) bool { return ts[i] < ts[j] })

	switch typ {
	case MeldChi:
		if len(ts) != 3 || !ts[0].IsNumbered() || ts[0].Rank() > 7 ||
			ts[1] != ts[0]+1 || ts[2] != ts[0]+2 {
			return Meld{}, fmt.Errorf("%w: chi %v", ErrInvalidMeld, ts)
		}
	case MeldPon:
		if len(ts) != 3 || ts[0] != ts[1] || ts[1] != ts[2] {
			return Meld{}, fmt.Errorf("%w: pon %v", ErrInvalidMeld, ts)
		}
	case MeldDaiminkan, MeldAnkan, MeldKakan:
		if len(ts) != 4 || ts[0] != ts[3] {
			return Meld{}, fmt.Errorf("%w: %s %v", ErrInvalidMeld, typ, ts)
		}
	default:
		return Meld{}, fmt.Errorf("%w: type %d", ErrInvalidMeld, int(typ))
	}

	return Meld{Type: typ, Tiles: ts, Opened: typ != MeldAnkan}, nil
}

func (m Meld) IsQuad() bool {
	return m.Type == MeldDaiminkan || m.Type == MeldAnkan || m.Type == MeldKakan
}

// IsTriplet 碰和杠都按刻子处理
func (m Meld) IsTriplet() bool {
	return m.Type != MeldChi
}

// Base 吃为最小的牌，其余为组成的牌
func (m Meld) Base() TileType {
	return m.Tiles[0]
}

func (m Meld) String() string {
	return fmt.Sprintf("%s%v", m.Type, m.Tiles)
}

func isMenzen(melds []Meld) bool {
	for _, m := range melds {
		if m.Opened {
			return false
		}
	}
	return true
}

func countQuads(melds []Meld) int {
	n := 0
	for _, m := range melds {
		if m.IsQuad() {
			n++
		}
	}
	return n
}
