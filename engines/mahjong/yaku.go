package mahjong

// Yaku 役种（和牌方式），数值与牌谱工具使用的编号保持一致
type Yaku int

// 役种常量定义
const (
	// 状况役
	YakuMenzenTsumo  Yaku = 1  // 门前清自摸和
	YakuRiichi       Yaku = 2  // 立直
	YakuChankan      Yaku = 3  // 抢杠
	YakuRinshan      Yaku = 4  // 岭上开花
	YakuHaitei       Yaku = 5  // 海底摸月
	YakuHoutei       Yaku = 6  // 河底捞鱼
	YakuDoubleRiichi Yaku = 18 // 两立直
	YakuIppatsu      Yaku = 30 // 一发

	// 役牌系
	YakuHaku   Yaku = 7  // 白
	YakuHatsu  Yaku = 8  // 发
	YakuChun   Yaku = 9  // 中
	YakuJikaze Yaku = 10 // 自风
	YakuBakaze Yaku = 11 // 场风

	// 断幺、平和系
	YakuTanyao    Yaku = 12 // 断幺九
	YakuIipeiko   Yaku = 13 // 一杯口
	YakuPinfu     Yaku = 14 // 平和
	YakuRyanpeiko Yaku = 28 // 二杯口

	// 顺子系
	YakuIttsu    Yaku = 16 // 一气通贯
	YakuSanshoku Yaku = 17 // 三色同顺

	// 带幺系
	YakuChanta    Yaku = 15 // 混全带幺九
	YakuJunchan   Yaku = 26 // 纯全带幺九
	YakuHonroutou Yaku = 24 // 混老头

	// 刻子系
	YakuSanshokuDoukou Yaku = 19 // 三色同刻
	YakuToitoi         Yaku = 20 // 对对和
	YakuSanankou       Yaku = 21 // 三暗刻
	YakuSankantsu      Yaku = 22 // 三杠子
	YakuShousangen     Yaku = 23 // 小三元

	// 特殊型
	YakuChiitoi Yaku = 25 // 七对子

	// 染手
	YakuHonitsu  Yaku = 27 // 混一色
	YakuChinitsu Yaku = 29 // 清一色

	// 宝牌，不算役
	YakuDora    Yaku = 31
	YakuAkaDora Yaku = 32
	YakuUraDora Yaku = 33

	// 役满役种
	YakuTenhou        Yaku = 35 // 天和
	YakuChiihou       Yaku = 36 // 地和
	YakuDaisangen     Yaku = 37 // 大三元
	YakuSuuankou      Yaku = 38 // 四暗刻
	YakuTsuuiisou     Yaku = 39 // 字一色
	YakuRyuuiisou     Yaku = 40 // 绿一色
	YakuChinroutou    Yaku = 41 // 清老头
	YakuKokushi       Yaku = 42 // 国士无双
	YakuShousuushii   Yaku = 43 // 小四喜
	YakuSuukantsu     Yaku = 44 // 四杠子
	YakuChuuren       Yaku = 45 // 九莲宝灯
	YakuKokushi13     Yaku = 46 // 国士十三面（双倍）
	YakuSuuankouTanki Yaku = 47 // 四暗刻单骑（双倍）
	YakuJunseiChuuren Yaku = 48 // 纯正九莲宝灯（双倍）
	YakuDaisuushii    Yaku = 50 // 大四喜（双倍）
)

var yakuNames = map[Yaku]string{
	YakuMenzenTsumo:    "Menzen Tsumo",
	YakuRiichi:         "Riichi",
	YakuChankan:        "Chankan",
	YakuRinshan:        "Rinshan Kaihou",
	YakuHaitei:         "Haitei Raoyue",
	YakuHoutei:         "Houtei Raoyui",
	YakuDoubleRiichi:   "Double Riichi",
	YakuIppatsu:        "Ippatsu",
	YakuHaku:           "Yakuhai (Haku)",
	YakuHatsu:          "Yakuhai (Hatsu)",
	YakuChun:           "Yakuhai (Chun)",
	YakuJikaze:         "Yakuhai (Seat Wind)",
	YakuBakaze:         "Yakuhai (Round Wind)",
	YakuTanyao:         "Tanyao",
	YakuIipeiko:        "Iipeiko",
	YakuPinfu:          "Pinfu",
	YakuRyanpeiko:      "Ryanpeikou",
	YakuIttsu:          "Ittsu",
	YakuSanshoku:       "Sanshoku Doujun",
	YakuChanta:         "Chanta",
	YakuJunchan:        "Junchan",
	YakuHonroutou:      "Honroutou",
	YakuSanshokuDoukou: "Sanshoku Doukou",
	YakuToitoi:         "Toitoi",
	YakuSanankou:       "San Ankou",
	YakuSankantsu:      "San Kantsu",
	YakuShousangen:     "Shousangen",
	YakuChiitoi:        "Chiitoitsu",
	YakuHonitsu:        "Honitsu",
	YakuChinitsu:       "Chinitsu",
	YakuDora:           "Dora",
	YakuAkaDora:        "Aka Dora",
	YakuUraDora:        "Ura Dora",
	YakuTenhou:         "Tenhou",
	YakuChiihou:        "Chiihou",
	YakuDaisangen:      "Daisangen",
	YakuSuuankou:       "Suu Ankou",
	YakuTsuuiisou:      "Tsuu Iisou",
	YakuRyuuiisou:      "Ryuu Iisou",
	YakuChinroutou:     "Chinroutou",
	YakuKokushi:        "Kokushi Musou",
	YakuShousuushii:    "Shousuushii",
	YakuSuukantsu:      "Suu Kantsu",
	YakuChuuren:        "Chuuren Poutou",
	YakuKokushi13:      "Kokushi Musou 13-wait",
	YakuSuuankouTanki:  "Suu Ankou Tanki",
	YakuJunseiChuuren:  "Junsei Chuuren Poutou",
	YakuDaisuushii:     "Daisuushii",
}

func (y Yaku) String() string {
	if name, ok := yakuNames[y]; ok {
		return name
	}
	return "Unknown"
}

func (y Yaku) IsDora() bool {
	return y == YakuDora || y == YakuAkaDora || y == YakuUraDora
}

func (y Yaku) IsYakuman() bool {
	return y >= YakuTenhou
}

// YakuHan 单个役及其番数，役满按 13 番/倍计
type YakuHan struct {
	Yaku Yaku `json:"id"`
	Han  int  `json:"han"`
}

// Conditions 和牌时的状况，每次计分构造一次，只读
type Conditions struct {
	Tsumo          bool // 自摸，否则荣和
	Riichi         bool
	DoubleRiichi   bool
	Ippatsu        bool
	Haitei         bool // 最后一张自摸
	Houtei         bool // 最后一张荣和
	Rinshan        bool // 杠后摸牌
	Chankan        bool // 抢杠
	TsumoFirstTurn bool // 第一巡自摸(天和/地和)

	RoundWind Wind
	SeatWind  Wind

	DoraCount    int // 已按完整手牌折算
	AkaDora      int
	UraDoraCount int

	Honba int // 本场数
}

// IsDealer 自风为东即庄家
func (c Conditions) IsDealer() bool {
	return c.SeatWind == WindEast
}

func sumHan(list []YakuHan) int {
	han := 0
	for _, y := range list {
		han += y.Han
	}
	return han
}

func hasRealYaku(list []YakuHan) bool {
	for _, y := range list {
		if !y.Yaku.IsDora() {
			return true
		}
	}
	return false
}
