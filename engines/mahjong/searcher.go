package mahjong

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

type MentsuKind int

const (
	Shuntsu MentsuKind = iota // 顺子，Tile 为最小的牌
	Koutsu                    // 刻子
)

// Mentsu 手牌拆解出的面子
type Mentsu struct {
	Kind MentsuKind
	Tile TileType
}

func (m Mentsu) Contains(t TileType) bool {
	if m.Kind == Koutsu {
		return m.Tile == t
	}
	return t >= m.Tile && t <= m.Tile+2
}

func (m Mentsu) String() string {
	if m.Kind == Koutsu {
		return strings.Repeat(m.Tile.String()[:1], 3) + m.Tile.String()[1:]
	}
	if !m.Tile.IsNumbered() {
		return "?"
	}
	return fmt.Sprintf("%d%d%d%c", m.Tile.Rank(), m.Tile.Rank()+1, m.Tile.Rank()+2, "mps"[m.Tile.Suit()])
}

// Division 雀头 + 面子的一种拆法，只覆盖门内手牌
type Division struct {
	Head TileType
	Body []Mentsu
}

func (d Division) String() string {
	parts := make([]string, 0, len(d.Body)+1)
	for _, m := range d.Body {
		parts = append(parts, m.String())
	}
	parts = append(parts, d.Head.String()+d.Head.String())
	return strings.Join(parts, " ")
}

func (d Division) key() string {
	var b strings.Builder
	b.WriteByte(byte(d.Head))
	for _, m := range d.Body {
		b.WriteByte(byte(m.Kind))
		b.WriteByte(byte(m.Tile))
	}
	return b.String()
}

// Decompose 枚举所有 雀头+面子 的拆法，按内容去重，顺序固定
func Decompose(h Hand34) []Division {
	total := h.Total()
	if total < 2 || total > MaxHandTiles || total%3 != 2 || h.Validate() != nil {
		return nil
	}

	var out []Division
	seen := make(map[string]struct{})
	work := h
	body := make([]Mentsu, 0, 4)

	dfsDivisions(&work, false, 0, body, func(head TileType, body []Mentsu) {
		d := Division{Head: head, Body: append([]Mentsu(nil), body...)}
		sort.Slice(d.Body, func(i, j int) bool {
			if d.Body[i].Tile != d.Body[j].Tile {
				return d.Body[i].Tile < d.Body[j].Tile
			}
			return d.Body[i].Kind < d.Body[j].Kind
		})
		k := d.key()
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		out = append(out, d)
	})
	return out
}

// dfsDivisions 每次取最小的非零牌作为锚点：雀头(仅一次)、刻子、顺子
func dfsDivisions(h *Hand34, hasHead bool, head TileType, body []Mentsu, emit func(TileType, []Mentsu)) {
	i := firstNonZero(h)
	if i < 0 {
		if hasHead {
			emit(head, body)
		}
		return
	}
	t := TileType(i)

	if !hasHead && h[i] >= 2 {
		h[i] -= 2
		dfsDivisions(h, true, t, body, emit)
		h[i] += 2
	}

	if h[i] >= 3 {
		h[i] -= 3
		dfsDivisions(h, hasHead, head, append(body, Mentsu{Kind: Koutsu, Tile: t}), emit)
		h[i] += 3
	}

	if t.IsNumbered() && t.Rank() <= 7 && h[i+1] > 0 && h[i+2] > 0 {
		h[i]--
		h[i+1]--
		h[i+2]--
		dfsDivisions(h, hasHead, head, append(body, Mentsu{Kind: Shuntsu, Tile: t}), emit)
		h[i]++
		h[i+1]++
		h[i+2]++
	}
}

func firstNonZero(h *Hand34) int {
	for k := 0; k < 34; k++ {
		if h[k] > 0 {
			return k
		}
	}
	return -1
}

// IsAgariNormal 普通牌型是否和牌，核心思想，找雀头、组面子
func IsAgariNormal(h Hand34) bool {
	total := h.Total()
	if total < 2 || total > MaxHandTiles || total%3 != 2 {
		return false
	}
	need := (total - 2) / 3

	for j := 0; j < 34; j++ {
		if h[j] < 2 {
			continue
		}
		work := h
		work[j] -= 2
		if canFormMelds(&work, need) {
			return true
		}
	}
	return false
}

// IsAgariChiitoi 七对子：恰好七种牌各两张
func IsAgariChiitoi(h Hand34) bool {
	pairs := 0
	for i := 0; i < 34; i++ {
		switch h[i] {
		case 0:
		case 2:
			pairs++
		default:
			return false
		}
	}
	return pairs == 7
}

// IsAgariKokushi 国士无双：13 种幺九牌齐全，其中一种成对
func IsAgariKokushi(h Hand34) bool {
	if h.Total() != 14 {
		return false
	}
	pair := false
	for _, idx := range kokushiTiles {
		switch h[idx] {
		case 1:
		case 2:
			if pair {
				return false
			}
			pair = true
		default:
			return false
		}
	}
	return pair
}

func canFormMelds(h *Hand34, need int) bool {
	if need == 0 {
		return firstNonZero(h) < 0
	}

	i := firstNonZero(h)
	if i == -1 {
		return false
	}
	// 刻子
	if (*h)[i] >= 3 {
		(*h)[i] -= 3
		ok := canFormMelds(h, need-1)
		(*h)[i] += 3
		if ok {
			return true
		}
	}
	// 顺子（仅数牌）
	if t := TileType(i); t.IsNumbered() && t.Rank() <= 7 {
		if (*h)[i+1] > 0 && (*h)[i+2] > 0 {
			(*h)[i]--
			(*h)[i+1]--
			(*h)[i+2]--
			ok := canFormMelds(h, need-1)
			(*h)[i]++
			(*h)[i+1]++
			(*h)[i+2]++
			if ok {
				return true
			}
		}
	}

	return false
}

// Waits 13 张(或副露后 3n+1 张)听哪些牌
func Waits(h13 Hand34) []TileType {
	if total := h13.Total(); total > MaxHandTiles-1 || total%3 != 1 {
		return nil
	}
	var waits []TileType
	for t := 0; t < 34; t++ {
		if h13[t] >= 4 {
			continue
		}
		work := h13
		work[t]++
		if IsWinningHand(work) {
			waits = append(waits, TileType(t))
		}
	}
	return waits
}

// fixedMeldsOf 由门内张数推算副露数
func fixedMeldsOf(h Hand34) int {
	return 4 - h.Total()/3
}

// ShantenKokushi 国士无双向听数
func ShantenKokushi(h Hand34) int {
	unique := 0
	pair := false
	for _, idx := range kokushiTiles {
		if h[idx] > 0 {
			unique++
			if h[idx] >= 2 {
				pair = true
			}
		}
	}
	sh := 13 - unique
	if pair {
		sh--
	}
	return sh
}

// ShantenChiitoi 七对子向听数，四张同种只算一对
func ShantenChiitoi(h Hand34) int {
	pairs := 0
	unique := 0
	for i := 0; i < 34; i++ {
		if h[i] > 0 {
			unique++
		}
		if h[i] >= 2 {
			pairs++
		}
	}
	sh := 6 - pairs
	if unique < 7 {
		sh += 7 - unique
	}
	return sh
}

func ShantenNormal(h Hand34) int {
	best := 8 // 一般型最差上界
	if h.Total() > MaxHandTiles {
		return best
	}
	work := h
	dfsNormalShanten(&work, fixedMeldsOf(h), 0, 0, &best)
	return best
}

// dfsNormalShanten 普通牌型向听数搜索 m：当前已经形成的面子数(包含副露)、p：雀头数（0/1）、t：搭子数（taatsu）、best：全局最小向听
func dfsNormalShanten(h *Hand34, m int, p int, t int, best *int) {
	if m > 4 {
		return
	}

	t2 := t
	if limit := 4 - m; t2 > limit {
		t2 = limit
	}

	sh := 8 - 2*m - t2 - p
	if sh < *best {
		*best = sh
	}

	i := firstNonZero(h)
	if i == -1 {
		return
	}
	tile := TileType(i)

	if (*h)[i] >= 3 {
		(*h)[i] -= 3
		dfsNormalShanten(h, m+1, p, t, best)
		(*h)[i] += 3
	}

	if tile.IsNumbered() && tile.Rank() <= 7 && (*h)[i+1] > 0 && (*h)[i+2] > 0 {
		(*h)[i]--
		(*h)[i+1]--
		(*h)[i+2]--
		dfsNormalShanten(h, m+1, p, t, best)
		(*h)[i]++
		(*h)[i+1]++
		(*h)[i+2]++
	}

	if p == 0 && (*h)[i] >= 2 {
		(*h)[i] -= 2
		dfsNormalShanten(h, m, 1, t, best)
		(*h)[i] += 2
	}

	if tile.IsNumbered() {
		// 两面/边张
		if tile.Rank() <= 8 && (*h)[i+1] > 0 {
			(*h)[i]--
			(*h)[i+1]--
			dfsNormalShanten(h, m, p, t+1, best)
			(*h)[i]++
			(*h)[i+1]++
		}
		// 嵌张
		if tile.Rank() <= 7 && (*h)[i+2] > 0 {
			(*h)[i]--
			(*h)[i+2]--
			dfsNormalShanten(h, m, p, t+1, best)
			(*h)[i]++
			(*h)[i+2]++
		}
	}

	(*h)[i]--
	dfsNormalShanten(h, m, p, t, best)
	(*h)[i]++
}

// Candidate 打出一张后听牌的选择
type Candidate struct {
	Discard TileType
	Waits   []TileType // 听哪些牌
	Ukeire  int        // 有效张数
}

// DefaultSearcherLimit 每张缓存表的默认条目上限
const DefaultSearcherLimit = 1 << 16

// Searcher 向听/听牌/和牌查询的缓存，由调用方持有，计分流程不依赖它
// 任一缓存表达到上限时整表清空，内存占用有界
type Searcher struct {
	mu           sync.RWMutex
	limit        int
	shantenCache map[string]int        // 向听数缓存
	agariCache   map[string]bool       // 和牌缓存
	waitsCache   map[string][]TileType // 听牌缓存
}

func NewSearcher() *Searcher {
	return NewSearcherWithLimit(DefaultSearcherLimit)
}

// NewSearcherWithLimit limit <= 0 时使用默认上限
func NewSearcherWithLimit(limit int) *Searcher {
	if limit <= 0 {
		limit = DefaultSearcherLimit
	}
	hint := min(limit, 4096)
	return &Searcher{
		limit:        limit,
		shantenCache: make(map[string]int, hint),
		agariCache:   make(map[string]bool, hint),
		waitsCache:   make(map[string][]TileType, hint),
	}
}

// Len 三张缓存表的条目数
func (s *Searcher) Len() (shanten, agari, waits int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.shantenCache), len(s.agariCache), len(s.waitsCache)
}

// remember 调用方持有写锁
func remember[V any](m map[string]V, limit int, key string, v V) {
	if _, ok := m[key]; !ok && len(m) >= limit {
		clear(m)
	}
	m[key] = v
}

// SeekCandidates 弃牌后,有哪些牌听牌，是否允许立直由调用方判断
func (s *Searcher) SeekCandidates(h14 Hand34, visible *Hand34) []Candidate {
	var out []Candidate

	for i := 0; i < 34; i++ {
		if h14[i] == 0 {
			continue
		}

		h13 := h14
		h13[i]--

		waits, ukeire := s.WaitsAndUkeire(h13, visible)
		if len(waits) == 0 {
			continue
		}

		out = append(out, Candidate{
			Discard: TileType(i),
			Waits:   waits,
			Ukeire:  ukeire,
		})
	}

	return out
}

// WaitsAndUkeire 枚举听牌 + 计算进张
func (s *Searcher) WaitsAndUkeire(h13 Hand34, visible *Hand34) ([]TileType, int) {
	key := h13.key()
	s.mu.RLock()
	if v, ok := s.waitsCache[key]; ok {
		waits := make([]TileType, len(v))
		copy(waits, v)
		s.mu.RUnlock()
		return waits, ukeireByWaits(h13, waits, visible)
	}
	s.mu.RUnlock()

	waits := Waits(h13)

	s.mu.Lock()
	remember(s.waitsCache, s.limit, key, append([]TileType(nil), waits...))
	s.mu.Unlock()

	return waits, ukeireByWaits(h13, waits, visible)
}

// ukeireByWaits 计算听牌的进张数
func ukeireByWaits(h13 Hand34, waits []TileType, visible *Hand34) int {
	ukeire := 0
	for _, tt := range waits {
		add := 4 - int(h13[tt])
		if visible != nil {
			add -= int(visible[tt])
		}
		if add > 0 {
			ukeire += add
		}
	}
	return ukeire
}

// IsAgariAll 是否和牌
func (s *Searcher) IsAgariAll(h Hand34) bool {
	key := h.key()
	s.mu.RLock()
	if v, ok := s.agariCache[key]; ok {
		s.mu.RUnlock()
		return v
	}
	s.mu.RUnlock()

	ok := IsWinningHand(h)

	s.mu.Lock()
	remember(s.agariCache, s.limit, key, ok)
	s.mu.Unlock()
	return ok
}

// ShantenAll 向听数，副露数由张数推出
func (s *Searcher) ShantenAll(h Hand34) int {
	key := h.key()
	s.mu.RLock()
	if v, ok := s.shantenCache[key]; ok {
		s.mu.RUnlock()
		return v
	}
	s.mu.RUnlock()

	best := ShantenNormal(h)
	if fixedMeldsOf(h) == 0 {
		if v := ShantenChiitoi(h); v < best {
			best = v
		}
		if v := ShantenKokushi(h); v < best {
			best = v
		}
	}

	s.mu.Lock()
	remember(s.shantenCache, s.limit, key, best)
	s.mu.Unlock()
	return best
}
