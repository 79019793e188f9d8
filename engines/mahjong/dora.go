package mahjong

// DoraFromIndicator 指示牌的下一张，数牌 9->1，风牌 北->东，三元 中->白
func DoraFromIndicator(ind TileType) TileType {
	switch {
	case ind.IsNumbered():
		if ind.Rank() == 9 {
			return ind - 8
		}
		return ind + 1
	case ind.IsWind():
		if ind == North {
			return East
		}
		return ind + 1
	case ind.IsDragon():
		if ind == Red {
			return White
		}
		return ind + 1
	default:
		return ind
	}
}

// CountDora 按完整手牌(杠算 4 张)统计宝牌张数
func CountDora(full Hand34, indicators []TileType) int {
	n := 0
	for _, ind := range indicators {
		if !ind.Valid() {
			continue
		}
		n += int(full[DoraFromIndicator(ind)])
	}
	return n
}

// FullHand 门内手牌加上副露的全部牌，杠子计 4 张
func FullHand(concealed Hand34, melds []Meld) Hand34 {
	full := concealed
	for _, m := range melds {
		for _, t := range m.Tiles {
			full[t]++
		}
	}
	return full
}
