package mahjong

// scored 单个候选的计分
type scored struct {
	yaku    []YakuHan
	han     int
	fu      int
	yakuman int
	shape   Shape
	wait    Wait
	div     *Division
}

func newScored(list []YakuHan, fu int, shape Shape) *scored {
	s := &scored{yaku: list, han: sumHan(list), fu: fu, shape: shape}
	if len(list) > 0 && list[0].Yaku.IsYakuman() {
		s.yakuman = s.han / 13
		s.fu = 0
	}
	return s
}

// better 先比番数再比符数，相同时保留先找到的
func better(a, b *scored) bool {
	if b == nil {
		return true
	}
	if a.han != b.han {
		return a.han > b.han
	}
	return a.fu > b.fu
}

func (ctx *agariContext) yakuman(y Yaku, double bool) YakuHan {
	if double && ctx.rules.DoubleYakuman {
		return YakuHan{Yaku: y, Han: 26}
	}
	return YakuHan{Yaku: y, Han: 13}
}

// kuisagari 副露减一番
func (ctx *agariContext) kuisagari(closed int) int {
	if ctx.menzen {
		return closed
	}
	return closed - 1
}

// firstTurnYakuman 天和/地和
func (ctx *agariContext) firstTurnYakuman() []YakuHan {
	cond := ctx.cond
	if !cond.TsumoFirstTurn || !cond.Tsumo || !ctx.menzen {
		return nil
	}
	if cond.IsDealer() {
		return []YakuHan{ctx.yakuman(YakuTenhou, false)}
	}
	return []YakuHan{ctx.yakuman(YakuChiihou, false)}
}

// situational 状况役，与牌形无关
func (ctx *agariContext) situational() []YakuHan {
	cond := ctx.cond
	var list []YakuHan
	if cond.DoubleRiichi {
		list = append(list, YakuHan{YakuDoubleRiichi, 2})
	} else if cond.Riichi {
		list = append(list, YakuHan{YakuRiichi, 1})
	}
	if cond.Ippatsu {
		list = append(list, YakuHan{YakuIppatsu, 1})
	}
	if ctx.menzen && cond.Tsumo {
		list = append(list, YakuHan{YakuMenzenTsumo, 1})
	}
	if cond.Haitei && cond.Tsumo {
		list = append(list, YakuHan{YakuHaitei, 1})
	}
	if cond.Houtei && !cond.Tsumo {
		list = append(list, YakuHan{YakuHoutei, 1})
	}
	if cond.Rinshan {
		list = append(list, YakuHan{YakuRinshan, 1})
	}
	if cond.Chankan {
		list = append(list, YakuHan{YakuChankan, 1})
	}
	return list
}

func (ctx *agariContext) doraYaku() []YakuHan {
	var list []YakuHan
	if ctx.cond.DoraCount > 0 {
		list = append(list, YakuHan{YakuDora, ctx.cond.DoraCount})
	}
	if ctx.cond.AkaDora > 0 {
		list = append(list, YakuHan{YakuAkaDora, ctx.cond.AkaDora})
	}
	if ctx.cond.UraDoraCount > 0 {
		list = append(list, YakuHan{YakuUraDora, ctx.cond.UraDoraCount})
	}
	return list
}

// flushYaku 清一色优先于混一色
func (ctx *agariContext) flushYaku() []YakuHan {
	if flushSuit(ctx.full) < 0 {
		return nil
	}
	if !hasHonor(ctx.full) {
		return []YakuHan{{YakuChinitsu, ctx.kuisagari(6)}}
	}
	return []YakuHan{{YakuHonitsu, ctx.kuisagari(3)}}
}

func (ctx *agariContext) tanyaoYaku() []YakuHan {
	if isTanyao(ctx.full) && (ctx.menzen || ctx.rules.Kuitan) {
		return []YakuHan{{YakuTanyao, 1}}
	}
	return nil
}

func (ctx *agariContext) evalStandard(c *candidate) *scored {
	if list := ctx.yakumanStandard(c); len(list) > 0 {
		s := newScored(list, 0, ShapeStandard)
		s.wait, s.div = c.wait, &c.div
		return s
	}
	var list []YakuHan
	list = append(list, ctx.situational()...)
	list = append(list, ctx.ordinaryStandard(c)...)
	list = append(list, ctx.doraYaku()...)
	s := newScored(list, c.fu(), ShapeStandard)
	s.wait, s.div = c.wait, &c.div
	return s
}

func (ctx *agariContext) yakumanStandard(c *candidate) []YakuHan {
	list := ctx.firstTurnYakuman()
	full := ctx.full

	if isTsuuiisou(full) {
		list = append(list, ctx.yakuman(YakuTsuuiisou, false))
	}
	if isChinroutou(full) {
		list = append(list, ctx.yakuman(YakuChinroutou, false))
	}
	if isRyuuiisou(full) {
		list = append(list, ctx.yakuman(YakuRyuuiisou, false))
	}
	if countQuads(ctx.melds) == 4 {
		list = append(list, ctx.yakuman(YakuSuukantsu, false))
	}
	if ctx.menzen && len(ctx.melds) == 0 {
		if ok, nine := chuurenShape(ctx.hand, ctx.win); ok {
			if nine {
				list = append(list, ctx.yakuman(YakuJunseiChuuren, true))
			} else {
				list = append(list, ctx.yakuman(YakuChuuren, false))
			}
		}
	}
	if c.ankou == 4 {
		if c.winIdx < 0 {
			list = append(list, ctx.yakuman(YakuSuuankouTanki, true))
		} else {
			list = append(list, ctx.yakuman(YakuSuuankou, false))
		}
	}
	if c.countTriplets(TileType.IsDragon) == 3 {
		list = append(list, ctx.yakuman(YakuDaisangen, false))
	}
	switch winds := c.countTriplets(TileType.IsWind); {
	case winds == 4:
		list = append(list, ctx.yakuman(YakuDaisuushii, true))
	case winds == 3 && c.div.Head.IsWind():
		list = append(list, ctx.yakuman(YakuShousuushii, false))
	}
	return list
}

func (ctx *agariContext) ordinaryStandard(c *candidate) []YakuHan {
	var list []YakuHan

	list = append(list, ctx.tanyaoYaku()...)
	if c.isPinfu() {
		list = append(list, YakuHan{YakuPinfu, 1})
	}

	// 役牌，连风刻子两个都算
	for _, t := range c.triplets {
		switch t {
		case White:
			list = append(list, YakuHan{YakuHaku, 1})
		case Green:
			list = append(list, YakuHan{YakuHatsu, 1})
		case Red:
			list = append(list, YakuHan{YakuChun, 1})
		}
		if t == ctx.jikaze {
			list = append(list, YakuHan{YakuJikaze, 1})
		}
		if t == ctx.bakaze {
			list = append(list, YakuHan{YakuBakaze, 1})
		}
	}

	if c.countTriplets(TileType.IsDragon) == 2 && c.div.Head.IsDragon() {
		list = append(list, YakuHan{YakuShousangen, 2})
	}

	if ctx.menzen {
		switch c.peikouCount() {
		case 2:
			list = append(list, YakuHan{YakuRyanpeiko, 3})
		case 1:
			list = append(list, YakuHan{YakuIipeiko, 1})
		}
	}

	if c.isIttsu() {
		list = append(list, YakuHan{YakuIttsu, ctx.kuisagari(2)})
	}
	if c.isSanshoku() {
		list = append(list, YakuHan{YakuSanshoku, ctx.kuisagari(2)})
	}
	if c.isSanshokuDoukou() {
		list = append(list, YakuHan{YakuSanshokuDoukou, 2})
	}
	if len(c.triplets) == 4 {
		list = append(list, YakuHan{YakuToitoi, 2})
	}
	if c.ankou == 3 {
		list = append(list, YakuHan{YakuSanankou, 2})
	}
	if countQuads(ctx.melds) == 3 {
		list = append(list, YakuHan{YakuSankantsu, 2})
	}

	// 混老头 > 纯全 > 混全
	switch {
	case isHonroutou(ctx.full):
		list = append(list, YakuHan{YakuHonroutou, 2})
	case c.groupsAllYaochu() && len(c.sequences) > 0:
		if hasHonor(ctx.full) {
			list = append(list, YakuHan{YakuChanta, ctx.kuisagari(2)})
		} else {
			list = append(list, YakuHan{YakuJunchan, ctx.kuisagari(3)})
		}
	}

	list = append(list, ctx.flushYaku()...)
	return list
}

// evalChiitoi 七对子固定 25 符
func (ctx *agariContext) evalChiitoi() *scored {
	list := ctx.firstTurnYakuman()
	if isTsuuiisou(ctx.full) {
		list = append(list, ctx.yakuman(YakuTsuuiisou, false))
	}
	if len(list) > 0 {
		return newScored(list, 0, ShapeChiitoi)
	}

	list = append(list, ctx.situational()...)
	list = append(list, YakuHan{YakuChiitoi, 2})
	list = append(list, ctx.tanyaoYaku()...)
	if isHonroutou(ctx.full) {
		list = append(list, YakuHan{YakuHonroutou, 2})
	}
	list = append(list, ctx.flushYaku()...)
	list = append(list, ctx.doraYaku()...)
	s := newScored(list, fuChiitoi, ShapeChiitoi)
	s.wait = WaitTanki
	return s
}

// evalKokushi 和了牌与手中单张成对即十三面
func (ctx *agariContext) evalKokushi() *scored {
	list := ctx.firstTurnYakuman()
	if ctx.hand[ctx.win] == 2 {
		list = append(list, ctx.yakuman(YakuKokushi13, true))
	} else {
		list = append(list, ctx.yakuman(YakuKokushi, false))
	}
	return newScored(list, 0, ShapeKokushi)
}

// evaluate 在所有候选中取最优，非和牌返回 nil
func (ctx *agariContext) evaluate() *scored {
	switch DetectShape(ctx.hand) {
	case ShapeKokushi:
		return ctx.evalKokushi()
	case ShapeChiitoi:
		best := ctx.bestStandard()
		if s := ctx.evalChiitoi(); better(s, best) {
			best = s
		}
		return best
	case ShapeStandard:
		return ctx.bestStandard()
	default:
		return nil
	}
}

func (ctx *agariContext) bestStandard() *scored {
	var best *scored
	for _, c := range candidatesOf(ctx, Decompose(ctx.hand)) {
		if s := ctx.evalStandard(c); better(s, best) {
			best = s
		}
	}
	return best
}
