package mahjong

const (
	fuBase        = 20
	fuTsumo       = 2
	fuMenzenRon   = 10
	fuChiitoi     = 25
	fuPinfuTsumo  = 20
	fuPinfuRon    = 30
	fuYakuhaiHead = 2
	fuBadWait     = 2
)

// fu 计算符数，平和由调用方先判断
func (c *candidate) fu() int {
	ctx := c.ctx
	tsumo := ctx.cond.Tsumo

	if c.isPinfu() {
		if tsumo {
			return fuPinfuTsumo
		}
		return fuPinfuRon
	}

	fu := fuBase
	if tsumo {
		fu += fuTsumo
	} else if ctx.menzen {
		fu += fuMenzenRon
	}

	// 雀头，连风牌计 4 符
	head := c.div.Head
	if head.IsDragon() {
		fu += fuYakuhaiHead
	}
	if head == ctx.bakaze {
		fu += fuYakuhaiHead
	}
	if head == ctx.jikaze {
		fu += fuYakuhaiHead
	}

	switch c.wait {
	case WaitTanki, WaitKanchan, WaitPenchan:
		fu += fuBadWait
	}

	// 门内刻子，荣和完成的按明刻
	for i, m := range c.div.Body {
		if m.Kind != Koutsu {
			continue
		}
		v := 4
		if i == c.winIdx && !tsumo {
			v = 2
		}
		if m.Tile.IsYaochu() {
			v *= 2
		}
		fu += v
	}

	for _, m := range ctx.melds {
		var v int
		switch m.Type {
		case MeldPon:
			v = 2
		case MeldDaiminkan, MeldKakan:
			v = 8
		case MeldAnkan:
			v = 16
		default:
			continue
		}
		if m.Base().IsYaochu() {
			v *= 2
		}
		fu += v
	}

	// 副露平和形荣和只有 20 符，按 30 符计
	if fu == fuBase && !tsumo {
		fu = 30
	}
	return roundUpTo10(fu)
}

func roundUpTo10(v int) int {
	return (v + 9) / 10 * 10
}
