package mahjong

// Rules 规则选项，零值不可用，请用 DefaultRules
type Rules struct {
	Kuitan        bool `mapstructure:"kuitan" json:"kuitan"`               // 食断
	KiriageMangan bool `mapstructure:"kiriageMangan" json:"kiriageMangan"` // 切上满贯
	KazoeYakuman  bool `mapstructure:"kazoeYakuman" json:"kazoeYakuman"`   // 累计役满
	DoubleYakuman bool `mapstructure:"doubleYakuman" json:"doubleYakuman"` // 双倍役满
	RequireYaku   bool `mapstructure:"requireYaku" json:"requireYaku"`     // 只有宝牌时不算和
}

func DefaultRules() Rules {
	return Rules{
		Kuitan:        true,
		KiriageMangan: true,
		KazoeYakuman:  true,
		DoubleYakuman: true,
	}
}

// Payment 支付点数，只填和牌方式相关的字段
type Payment struct {
	Ron      int `json:"ron,omitempty"`      // 荣和，放铳者支付
	TsumoOya int `json:"tsumoOya,omitempty"` // 闲家自摸时庄家支付
	TsumoKo  int `json:"tsumoKo,omitempty"`  // 自摸时每个闲家支付
	Total    int `json:"total"`
}

const (
	baseMangan    = 2000
	baseHaneman   = 3000
	baseBaiman    = 4000
	baseSanbaiman = 6000
	baseYakuman   = 8000
)

// limitBase 满贯以上的固定基本点，低于满贯返回 0
func (r Rules) limitBase(han int) int {
	switch {
	case han >= 13:
		if r.KazoeYakuman {
			return baseYakuman
		}
		return baseSanbaiman
	case han >= 11:
		return baseSanbaiman
	case han >= 8:
		return baseBaiman
	case han >= 6:
		return baseHaneman
	case han >= 5:
		return baseMangan
	default:
		return 0
	}
}

// basePoints 基本点 = 符 × 2^(2+番)，封顶满贯
func (r Rules) basePoints(han, fu int) int {
	if b := r.limitBase(han); b > 0 {
		return b
	}
	if han <= 0 {
		return 0
	}
	base := fu << (han + 2)
	if base > baseMangan {
		base = baseMangan
	}
	// 4 番 30 符、3 番 60 符
	if r.KiriageMangan && base == 1920 {
		base = baseMangan
	}
	return base
}

// ScoreTable 按番符直接查点数，13 番以上按累计役满规则处理
func (r Rules) ScoreTable(han, fu int, dealer, tsumo bool) Payment {
	return splitPayment(r.basePoints(han, fu), dealer, tsumo)
}

// YakumanTable 役满倍数查点数，count 已按双倍役满规则折算
func YakumanTable(count int, dealer, tsumo bool) Payment {
	if count <= 0 {
		return Payment{}
	}
	return splitPayment(baseYakuman*count, dealer, tsumo)
}

// ScoreTable 使用默认规则
func ScoreTable(han, fu int, dealer, tsumo bool) Payment {
	return DefaultRules().ScoreTable(han, fu, dealer, tsumo)
}

func splitPayment(base int, dealer, tsumo bool) Payment {
	var p Payment
	switch {
	case !tsumo && dealer:
		p.Ron = roundUpTo100(base * 6)
		p.Total = p.Ron
	case !tsumo:
		p.Ron = roundUpTo100(base * 4)
		p.Total = p.Ron
	case dealer:
		// 庄家自摸，三家各付
		p.TsumoKo = roundUpTo100(base * 2)
		p.Total = p.TsumoKo * 3
	default:
		p.TsumoOya = roundUpTo100(base * 2)
		p.TsumoKo = roundUpTo100(base)
		p.Total = p.TsumoOya + p.TsumoKo*2
	}
	return p
}

// WithHonba 本场：荣和 +300，自摸每家 +100
func (p Payment) WithHonba(honba int, dealer, tsumo bool) Payment {
	if honba <= 0 {
		return p
	}
	if !tsumo {
		p.Ron += 300 * honba
		p.Total += 300 * honba
		return p
	}
	p.TsumoKo += 100 * honba
	if !dealer {
		p.TsumoOya += 100 * honba
	}
	p.Total += 300 * honba
	return p
}

func roundUpTo100(v int) int {
	return (v + 99) / 100 * 100
}
