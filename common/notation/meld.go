package notation

import (
	"fmt"
	"strings"

	"github.com/lihe07/RiichiEnv/engines/mahjong"
)

var meldPrefixes = map[string]mahjong.MeldType{
	"chi":       mahjong.MeldChi,
	"pon":       mahjong.MeldPon,
	"kan":       mahjong.MeldDaiminkan,
	"minkan":    mahjong.MeldDaiminkan,
	"daiminkan": mahjong.MeldDaiminkan,
	"ankan":     mahjong.MeldAnkan,
	"kakan":     mahjong.MeldKakan,
}

// ParseMeld 形如 "pon:555z"、"chi:123m"、"ankan:1111m"
func ParseMeld(s string) (mahjong.Meld, int, error) {
	kind, body, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return mahjong.Meld{}, 0, fmt.Errorf("%w: meld %q needs a type prefix", ErrNotation, s)
	}
	typ, ok := meldPrefixes[strings.ToLower(kind)]
	if !ok {
		return mahjong.Meld{}, 0, fmt.Errorf("%w: meld type %q", ErrNotation, kind)
	}
	tiles, red, err := ParseTiles(body)
	if err != nil {
		return mahjong.Meld{}, 0, err
	}
	m, err := mahjong.NewMeld(typ, tiles...)
	if err != nil {
		return mahjong.Meld{}, 0, err
	}
	return m, red, nil
}

// ParseMelds 返回所有副露和其中的赤五数量
func ParseMelds(list []string) ([]mahjong.Meld, int, error) {
	melds := make([]mahjong.Meld, 0, len(list))
	red := 0
	for _, s := range list {
		m, r, err := ParseMeld(s)
		if err != nil {
			return nil, 0, err
		}
		melds = append(melds, m)
		red += r
	}
	return melds, red, nil
}

// FormatMeld ParseMeld 的逆操作，大明杠输出为 kan
func FormatMeld(m mahjong.Meld) string {
	kind := m.Type.String()
	if m.Type == mahjong.MeldDaiminkan {
		kind = "kan"
	}
	return kind + ":" + FormatTiles(m.Tiles)
}
