package mahjong

// Wait 听牌形，由和了牌落在哪个面子决定
type Wait int

const (
	WaitRyanmen Wait = iota // 两面
	WaitKanchan             // 嵌张
	WaitPenchan             // 边张
	WaitShanpon             // 双碰
	WaitTanki               // 单骑
)

func (w Wait) String() string {
	switch w {
	case WaitRyanmen:
		return "ryanmen"
	case WaitKanchan:
		return "kanchan"
	case WaitPenchan:
		return "penchan"
	case WaitShanpon:
		return "shanpon"
	case WaitTanki:
		return "tanki"
	default:
		return "unknown"
	}
}

// agariContext 一次计分调用共享的只读数据
type agariContext struct {
	rules  Rules
	cond   Conditions
	hand   Hand34 // 门内手牌，含和了牌
	full   Hand34 // 门内 + 副露，杠计 4 张
	melds  []Meld
	win    TileType
	menzen bool
	bakaze TileType
	jikaze TileType
}

func newAgariContext(r Rules, hand Hand34, melds []Meld, win TileType, cond Conditions) *agariContext {
	return &agariContext{
		rules:  r,
		cond:   cond,
		hand:   hand,
		full:   FullHand(hand, melds),
		melds:  melds,
		win:    win,
		menzen: isMenzen(melds),
		bakaze: cond.RoundWind.Tile(),
		jikaze: cond.SeatWind.Tile(),
	}
}

func (ctx *agariContext) isYakuhai(t TileType) bool {
	return t.IsDragon() || t == ctx.bakaze || t == ctx.jikaze
}

// candidate 一种拆法 + 和了牌所在的面子，winIdx 为 -1 表示和在雀头
type candidate struct {
	ctx    *agariContext
	div    Division
	winIdx int
	wait   Wait

	triplets  []TileType // 门内刻子 + 碰 + 杠
	sequences []TileType // 门内顺子 + 吃，记最小的牌
	ankou     int        // 暗刻数，荣和完成的刻子不算，暗杠算
}

func newCandidate(ctx *agariContext, div Division, winIdx int) *candidate {
	c := &candidate{ctx: ctx, div: div, winIdx: winIdx}
	for i, m := range div.Body {
		if m.Kind == Koutsu {
			c.triplets = append(c.triplets, m.Tile)
			if ctx.cond.Tsumo || i != winIdx {
				c.ankou++
			}
		} else {
			c.sequences = append(c.sequences, m.Tile)
		}
	}
	for _, m := range ctx.melds {
		if m.IsTriplet() {
			c.triplets = append(c.triplets, m.Base())
			if m.Type == MeldAnkan {
				c.ankou++
			}
		} else {
			c.sequences = append(c.sequences, m.Base())
		}
	}
	c.wait = c.classifyWait()
	return c
}

// candidatesOf 每个包含和了牌的面子(含雀头)各生成一个候选
func candidatesOf(ctx *agariContext, divs []Division) []*candidate {
	var out []*candidate
	for _, d := range divs {
		for i, m := range d.Body {
			if m.Contains(ctx.win) {
				out = append(out, newCandidate(ctx, d, i))
			}
		}
		if d.Head == ctx.win {
			out = append(out, newCandidate(ctx, d, -1))
		}
	}
	return out
}

func (c *candidate) classifyWait() Wait {
	if c.winIdx < 0 {
		return WaitTanki
	}
	m := c.div.Body[c.winIdx]
	if m.Kind == Koutsu {
		return WaitShanpon
	}
	switch c.ctx.win {
	case m.Tile + 1:
		return WaitKanchan
	case m.Tile:
		if m.Tile.Rank() == 7 {
			return WaitPenchan
		}
	case m.Tile + 2:
		if m.Tile.Rank() == 1 {
			return WaitPenchan
		}
	}
	return WaitRyanmen
}

// groupsAllYaochu 每个面子和雀头都带幺九牌
func (c *candidate) groupsAllYaochu() bool {
	if !c.div.Head.IsYaochu() {
		return false
	}
	for _, t := range c.triplets {
		if !t.IsYaochu() {
			return false
		}
	}
	for _, t := range c.sequences {
		if r := t.Rank(); r != 1 && r != 7 {
			return false
		}
	}
	return true
}

func (c *candidate) isPinfu() bool {
	ctx := c.ctx
	if !ctx.menzen || len(ctx.melds) > 0 || len(c.triplets) > 0 {
		return false
	}
	if ctx.isYakuhai(c.div.Head) {
		return false
	}
	return c.wait == WaitRyanmen
}

func (c *candidate) countTriplets(pred func(TileType) bool) int {
	n := 0
	for _, t := range c.triplets {
		if pred(t) {
			n++
		}
	}
	return n
}

func (c *candidate) hasSequence(t TileType) bool {
	for _, s := range c.sequences {
		if s == t {
			return true
		}
	}
	return false
}

func (c *candidate) hasTriplet(t TileType) bool {
	for _, s := range c.triplets {
		if s == t {
			return true
		}
	}
	return false
}

// peikouCount 门内相同顺子的对数
func (c *candidate) peikouCount() int {
	var seen [TileKinds]int
	for _, m := range c.div.Body {
		if m.Kind == Shuntsu {
			seen[m.Tile]++
		}
	}
	n := 0
	for _, k := range seen {
		n += k / 2
	}
	return n
}

func (c *candidate) isIttsu() bool {
	for s := 0; s < 3; s++ {
		base := TileType(s * 9)
		if c.hasSequence(base) && c.hasSequence(base+3) && c.hasSequence(base+6) {
			return true
		}
	}
	return false
}

func (c *candidate) isSanshoku() bool {
	for r := TileType(0); r < 7; r++ {
		if c.hasSequence(r) && c.hasSequence(r+9) && c.hasSequence(r+18) {
			return true
		}
	}
	return false
}

func (c *candidate) isSanshokuDoukou() bool {
	for r := TileType(0); r < 9; r++ {
		if c.hasTriplet(r) && c.hasTriplet(r+9) && c.hasTriplet(r+18) {
			return true
		}
	}
	return false
}

// 以下按完整手牌判断

func allTiles(h Hand34, pred func(TileType) bool) bool {
	for i, n := range h {
		if n > 0 && !pred(TileType(i)) {
			return false
		}
	}
	return true
}

func hasHonor(h Hand34) bool {
	for t := East; t <= Red; t++ {
		if h[t] > 0 {
			return true
		}
	}
	return false
}

// flushSuit 只含一种数牌时返回花色，否则 -1
func flushSuit(h Hand34) int {
	suit := -1
	for i := 0; i < 27; i++ {
		if h[i] == 0 {
			continue
		}
		s := i / 9
		if suit >= 0 && suit != s {
			return -1
		}
		suit = s
	}
	return suit
}

func isTanyao(h Hand34) bool {
	return allTiles(h, func(t TileType) bool { return !t.IsYaochu() })
}

func isTsuuiisou(h Hand34) bool {
	return allTiles(h, TileType.IsHonor)
}

func isChinroutou(h Hand34) bool {
	return allTiles(h, TileType.IsTerminal)
}

func isHonroutou(h Hand34) bool {
	return allTiles(h, TileType.IsYaochu)
}

func isRyuuiisou(h Hand34) bool {
	return allTiles(h, isGreen)
}

var chuurenBase = [9]uint8{3, 1, 1, 1, 1, 1, 1, 1, 3}

// chuurenShape 门内 1112345678999+1，返回是否九面听
func chuurenShape(h Hand34, win TileType) (ok bool, nineWait bool) {
	suit := flushSuit(h)
	if suit < 0 || hasHonor(h) || h.Total() != 14 {
		return false, false
	}
	base := suit * 9
	for r := 0; r < 9; r++ {
		if h[base+r] < chuurenBase[r] {
			return false, false
		}
	}
	rest := h
	rest[win]--
	for r := 0; r < 9; r++ {
		if rest[base+r] != chuurenBase[r] {
			return true, false
		}
	}
	return true, true
}
