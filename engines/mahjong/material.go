package mahjong

import "fmt"

type Wind int

const (
	WindEast  Wind = iota // 东风
	WindSouth             // 南风
	WindWest              // 西风
	WindNorth             // 北风
)

// TileType 34 种牌，赤宝牌不单独占位，由调用方折算成 AkaDora
type TileType int

const (
	// 万子 (0-8)
	Man1 TileType = iota
	Man2
	Man3
	Man4
	Man5
	Man6
	Man7
	Man8
	Man9

	// 筒子 (9-17)
	Pin1
	Pin2
	Pin3
	Pin4
	Pin5
	Pin6
	Pin7
	Pin8
	Pin9

	// 索子 (18-26)
	So1
	So2
	So3
	So4
	So5
	So6
	So7
	So8
	So9

	// 字牌 (27-33)
	East
	South
	West
	North
	White
	Green
	Red
)

const TileKinds = 34

func (t TileType) Valid() bool {
	return t >= Man1 && t <= Red
}

func (t TileType) IsNumbered() bool {
	return t >= Man1 && t <= So9
}

func (t TileType) IsHonor() bool {
	return t >= East && t <= Red
}

func (t TileType) IsWind() bool {
	return t >= East && t <= North
}

func (t TileType) IsDragon() bool {
	return t >= White && t <= Red
}

// IsTerminal 数牌幺九(1、9)
func (t TileType) IsTerminal() bool {
	if !t.IsNumbered() {
		return false
	}
	r := t.Rank()
	return r == 1 || r == 9
}

// IsYaochu 幺九牌(1、9、字牌)
func (t TileType) IsYaochu() bool {
	return t.IsTerminal() || t.IsHonor()
}

// Suit 0万 1筒 2索，字牌返回 -1
func (t TileType) Suit() int {
	if !t.IsNumbered() {
		return -1
	}
	return int(t) / 9
}

// Rank 数牌点数 1-9，字牌返回 0
func (t TileType) Rank() int {
	if !t.IsNumbered() {
		return 0
	}
	return int(t)%9 + 1
}

var honorNames = [...]string{"E", "S", "W", "N", "P", "F", "C"}

func (t TileType) String() string {
	switch {
	case t.IsNumbered():
		return fmt.Sprintf("%d%c", t.Rank(), "mps"[t.Suit()])
	case t.IsHonor():
		return honorNames[t-East]
	default:
		return fmt.Sprintf("TileType(%d)", int(t))
	}
}

func (w Wind) Tile() TileType {
	return East + TileType(w%4)
}

func (w Wind) String() string {
	switch w {
	case WindEast:
		return "East"
	case WindSouth:
		return "South"
	case WindWest:
		return "West"
	case WindNorth:
		return "North"
	default:
		return "Unknown"
	}
}

func (w Wind) Next() Wind {
	return (w + 1) % 4
}

// Hand34 按 34 种牌计数
type Hand34 [34]uint8

// MaxHandTiles 门内最多 14 张(含和了牌)，超过的手牌不做搜索
const MaxHandTiles = 14

// Hand34FromTiles 由牌种列表构造计数
func Hand34FromTiles(tiles []TileType) (Hand34, error) {
	var h Hand34
	for _, t := range tiles {
		if err := h.Add(t); err != nil {
			return Hand34{}, err
		}
	}
	return h, nil
}

func (h *Hand34) Add(t TileType) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidTile, int(t))
	}
	if h[t] >= 4 {
		return fmt.Errorf("%w: %s", ErrTileOverflow, t)
	}
	h[t]++
	return nil
}

func (h Hand34) Total() int {
	n := 0
	for _, c := range h {
		n += int(c)
	}
	return n
}

// Validate 每种牌最多 4 张
func (h Hand34) Validate() error {
	for i, c := range h {
		if c > 4 {
			return fmt.Errorf("%w: %s x%d", ErrTileOverflow, TileType(i), c)
		}
	}
	return nil
}

// Tiles 展开为有序牌列表
func (h Hand34) Tiles() []TileType {
	out := make([]TileType, 0, h.Total())
	for i, c := range h {
		for k := uint8(0); k < c; k++ {
			out = append(out, TileType(i))
		}
	}
	return out
}

func (h Hand34) key() string {
	var b [34]byte
	for i := 0; i < 34; i++ {
		b[i] = h[i]
	}
	return string(b[:])
}

var kokushiTiles = [13]TileType{
	Man1, Man9,
	Pin1, Pin9,
	So1, So9,
	East, South, West, North,
	White, Green, Red,
}

var greenTiles = [6]TileType{So2, So3, So4, So6, So8, Green}

func isGreen(t TileType) bool {
	for _, g := range greenTiles {
		if g == t {
			return true
		}
	}
	return false
}
