package mahjong

// Shape 和牌形，三者互斥
type Shape int

const (
	ShapeNone     Shape = iota
	ShapeKokushi        // 国士无双
	ShapeChiitoi        // 七对子
	ShapeStandard       // 四面子一雀头
)

func (s Shape) String() string {
	switch s {
	case ShapeKokushi:
		return "kokushi"
	case ShapeChiitoi:
		return "chiitoi"
	case ShapeStandard:
		return "standard"
	default:
		return "none"
	}
}

// DetectShape 依次检查国士、七对、一般形
func DetectShape(h Hand34) Shape {
	if h.Validate() != nil {
		return ShapeNone
	}
	switch {
	case IsAgariKokushi(h):
		return ShapeKokushi
	case IsAgariChiitoi(h):
		return ShapeChiitoi
	case IsAgariNormal(h):
		return ShapeStandard
	default:
		return ShapeNone
	}
}

// IsWinningHand 只判断是否和牌，不计分
func IsWinningHand(h Hand34) bool {
	return DetectShape(h) != ShapeNone
}
