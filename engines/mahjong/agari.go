package mahjong

import "fmt"

// Result 一次计分的结果，返回后不再修改
type Result struct {
	Agari        bool      `json:"agari"`
	Yakuman      bool      `json:"yakuman"`
	Shape        Shape     `json:"shape"`
	Wait         Wait      `json:"wait"`
	Han          int       `json:"han"`
	Fu           int       `json:"fu"`
	YakumanCount int       `json:"yakumanCount"`
	Yaku         []YakuHan `json:"yaku"`
	Payment      Payment   `json:"payment"`
	Division     *Division `json:"-"`
}

func (r *Result) YakuIDs() []int {
	ids := make([]int, 0, len(r.Yaku))
	for _, y := range r.Yaku {
		ids = append(ids, int(y.Yaku))
	}
	return ids
}

// HasYaku 是否含有指定役
func (r *Result) HasYaku(y Yaku) bool {
	for _, yh := range r.Yaku {
		if yh.Yaku == y {
			return true
		}
	}
	return false
}

// Score 使用默认规则计分
func Score(h Hand34, melds []Meld, win TileType, cond Conditions) (*Result, error) {
	return DefaultRules().Score(h, melds, win, cond)
}

// Score 计算和牌的番符和点数。
// h 为门内手牌，可以含和了牌(14-3n 张)或不含(13-3n 张)，副露单独传入。
// 牌形不成立时返回 Agari=false 的结果，输入非法时返回 error
func (r Rules) Score(h Hand34, melds []Meld, win TileType, cond Conditions) (*Result, error) {
	hand, normalized, err := prepareHand(h, melds, win)
	if err != nil {
		return nil, err
	}

	ctx := newAgariContext(r, hand, normalized, win, cond)
	best := ctx.evaluate()
	if best == nil {
		return &Result{}, nil
	}
	if r.RequireYaku && !hasRealYaku(best.yaku) {
		return &Result{}, nil
	}

	dealer := cond.IsDealer()
	var pay Payment
	if best.yakuman > 0 {
		pay = YakumanTable(best.yakuman, dealer, cond.Tsumo)
	} else {
		pay = splitPayment(r.basePoints(best.han, best.fu), dealer, cond.Tsumo)
	}

	return &Result{
		Agari:        true,
		Yakuman:      best.yakuman > 0,
		Shape:        best.shape,
		Wait:         best.wait,
		Han:          best.han,
		Fu:           best.fu,
		YakumanCount: best.yakuman,
		Yaku:         best.yaku,
		Payment:      pay.WithHonba(cond.Honba, dealer, cond.Tsumo),
		Division:     best.div,
	}, nil
}

// prepareHand 校验输入，补齐和了牌，规整副露
func prepareHand(h Hand34, melds []Meld, win TileType) (Hand34, []Meld, error) {
	if !win.Valid() {
		return Hand34{}, nil, fmt.Errorf("%w: win tile %d", ErrInvalidTile, int(win))
	}
	if err := h.Validate(); err != nil {
		return Hand34{}, nil, err
	}
	if len(melds) > 4 {
		return Hand34{}, nil, fmt.Errorf("%w: %d melds", ErrHandSize, len(melds))
	}

	normalized := make([]Meld, 0, len(melds))
	for _, m := range melds {
		nm, err := NewMeld(m.Type, m.Tiles...)
		if err != nil {
			return Hand34{}, nil, err
		}
		normalized = append(normalized, nm)
	}

	want := 14 - 3*len(melds)
	switch h.Total() {
	case want:
		if h[win] == 0 {
			return Hand34{}, nil, fmt.Errorf("%w: %s", ErrWinTileMissing, win)
		}
	case want - 1:
		if err := h.Add(win); err != nil {
			return Hand34{}, nil, err
		}
	default:
		return Hand34{}, nil, fmt.Errorf("%w: %d concealed tiles with %d melds", ErrHandSize, h.Total(), len(melds))
	}

	if err := FullHand(h, normalized).Validate(); err != nil {
		return Hand34{}, nil, err
	}
	return h, normalized, nil
}
