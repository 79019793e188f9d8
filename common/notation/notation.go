// Package notation 牌的文本表示：mpsz (123m0p11z)、mjai 单牌 (5mr, E)、136 编号
package notation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lihe07/RiichiEnv/engines/mahjong"
)

var ErrNotation = errors.New("notation: invalid text")

// 136 编号中每种花色第一张 5 为赤牌
const (
	RedMan5 = 16
	RedPin5 = 52
	RedSou5 = 88
)

var mjaiHonors = map[string]mahjong.TileType{
	"E": mahjong.East, "S": mahjong.South, "W": mahjong.West, "N": mahjong.North,
	"P": mahjong.White, "F": mahjong.Green, "C": mahjong.Red,
}

func suitBase(c byte) (mahjong.TileType, bool) {
	switch c {
	case 'm':
		return mahjong.Man1, true
	case 'p':
		return mahjong.Pin1, true
	case 's':
		return mahjong.So1, true
	case 'z':
		return mahjong.East, true
	}
	return 0, false
}

func tileOf(digit byte, suit byte) (mahjong.TileType, bool, error) {
	base, ok := suitBase(suit)
	if !ok {
		return 0, false, fmt.Errorf("%w: suit %q", ErrNotation, suit)
	}
	if digit < '0' || digit > '9' {
		return 0, false, fmt.Errorf("%w: digit %q", ErrNotation, digit)
	}
	n := int(digit - '0')
	if suit == 'z' {
		if n < 1 || n > 7 {
			return 0, false, fmt.Errorf("%w: honor %dz", ErrNotation, n)
		}
		return base + mahjong.TileType(n-1), false, nil
	}
	if n == 0 {
		return base + 4, true, nil
	}
	return base + mahjong.TileType(n-1), false, nil
}

// ParseTiles 解析 mpsz 串，返回牌种列表和赤五数量，空白忽略
func ParseTiles(s string) ([]mahjong.TileType, int, error) {
	var (
		tiles   []mahjong.TileType
		pending []byte
		red     int
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ' ' || c == '\t':
		case c >= '0' && c <= '9':
			pending = append(pending, c)
		default:
			if len(pending) == 0 {
				return nil, 0, fmt.Errorf("%w: %q has no digits before %q", ErrNotation, s, c)
			}
			for _, d := range pending {
				t, isRed, err := tileOf(d, c)
				if err != nil {
					return nil, 0, err
				}
				if isRed {
					red++
				}
				tiles = append(tiles, t)
			}
			pending = pending[:0]
		}
	}
	if len(pending) > 0 {
		return nil, 0, fmt.Errorf("%w: %q missing suit", ErrNotation, s)
	}
	return tiles, red, nil
}

// ParseHand 解析为 34 计数，超过 4 张返回 mahjong.ErrTileOverflow
func ParseHand(s string) (mahjong.Hand34, int, error) {
	tiles, red, err := ParseTiles(s)
	if err != nil {
		return mahjong.Hand34{}, 0, err
	}
	h, err := mahjong.Hand34FromTiles(tiles)
	if err != nil {
		return mahjong.Hand34{}, 0, err
	}
	return h, red, nil
}

// ParseTile 单张牌，接受 mpsz (5m, 0p, 1z) 和 mjai (5mr, E, C)
func ParseTile(s string) (mahjong.TileType, bool, error) {
	s = strings.TrimSpace(s)
	if t, ok := mjaiHonors[s]; ok {
		return t, false, nil
	}
	switch len(s) {
	case 2:
		return tileOf(s[0], s[1])
	case 3:
		if s[0] == '5' && s[2] == 'r' && s[1] != 'z' {
			t, _, err := tileOf(s[0], s[1])
			return t, true, err
		}
	}
	return 0, false, fmt.Errorf("%w: tile %q", ErrNotation, s)
}

// ParseTileList 逗号或空白分隔的单牌列表，例如宝牌指示牌
func ParseTileList(s string) ([]mahjong.TileType, int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	out := make([]mahjong.TileType, 0, len(fields))
	red := 0
	for _, f := range fields {
		if t, isRed, err := ParseTile(f); err == nil {
			if isRed {
				red++
			}
			out = append(out, t)
			continue
		}
		// 没有分隔符时按 mpsz 串处理，例如 "15z"
		ts, r, err := ParseTiles(f)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, ts...)
		red += r
	}
	return out, red, nil
}

// FromID136 136 编号转牌种，第二个返回值表示赤牌
func FromID136(id int) (mahjong.TileType, bool, error) {
	if id < 0 || id >= 136 {
		return 0, false, fmt.Errorf("%w: tile id %d", ErrNotation, id)
	}
	red := id == RedMan5 || id == RedPin5 || id == RedSou5
	return mahjong.TileType(id / 4), red, nil
}

// HandFromIDs 136 编号列表转手牌，同一编号不能出现两次，返回赤牌数
func HandFromIDs(ids []int) (mahjong.Hand34, int, error) {
	var h mahjong.Hand34
	var seen [136]bool
	red := 0
	for _, id := range ids {
		t, r, err := FromID136(id)
		if err != nil {
			return mahjong.Hand34{}, 0, err
		}
		if seen[id] {
			return mahjong.Hand34{}, 0, fmt.Errorf("%w: duplicate tile id %d", ErrNotation, id)
		}
		seen[id] = true
		if err := h.Add(t); err != nil {
			return mahjong.Hand34{}, 0, err
		}
		if r {
			red++
		}
	}
	return h, red, nil
}

// FormatTile 单张牌的 mpsz 表示
func FormatTile(t mahjong.TileType) string {
	if t.IsHonor() {
		return fmt.Sprintf("%dz", int(t-mahjong.East)+1)
	}
	return t.String()
}

// FormatHand 按 m p s z 分组输出
func FormatHand(h mahjong.Hand34) string {
	var sb strings.Builder
	groups := [4]struct {
		from, to mahjong.TileType
		suit     byte
	}{
		{mahjong.Man1, mahjong.Man9, 'm'},
		{mahjong.Pin1, mahjong.Pin9, 'p'},
		{mahjong.So1, mahjong.So9, 's'},
		{mahjong.East, mahjong.Red, 'z'},
	}
	for _, g := range groups {
		wrote := false
		for t := g.from; t <= g.to; t++ {
			for k := uint8(0); k < h[t]; k++ {
				sb.WriteByte(byte('1' + int(t-g.from)))
				wrote = true
			}
		}
		if wrote {
			sb.WriteByte(g.suit)
		}
	}
	return sb.String()
}

// FormatTiles 按牌种排序后输出
func FormatTiles(tiles []mahjong.TileType) string {
	var h mahjong.Hand34
	for _, t := range tiles {
		if t.Valid() && h[t] < 255 {
			h[t]++
		}
	}
	return FormatHand(h)
}
