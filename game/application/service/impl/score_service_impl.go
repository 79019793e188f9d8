package impl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lihe07/RiichiEnv/common/config"
	"github.com/lihe07/RiichiEnv/common/errs"
	"github.com/lihe07/RiichiEnv/common/log"
	"github.com/lihe07/RiichiEnv/common/notation"
	"github.com/lihe07/RiichiEnv/core/domain/entity"
	"github.com/lihe07/RiichiEnv/core/domain/repository"
	"github.com/lihe07/RiichiEnv/core/infrastructure/cache"
	"github.com/lihe07/RiichiEnv/engines/mahjong"
	"github.com/lihe07/RiichiEnv/game/application/dto"
	"github.com/lihe07/RiichiEnv/game/application/service"
)

// 单次最多返回的计分记录数
const maxRecordLimit = 100

type ScoreServiceImpl struct {
	cache    *cache.ScoreCache                // nil 时不缓存
	records  repository.ScoreRecordRepository // nil 时不落库
	searcher *mahjong.Searcher
	rules    func() mahjong.Rules // 每次调用读取，配置热更新后立即生效
}

func NewScoreService(scoreCache *cache.ScoreCache, records repository.ScoreRecordRepository) service.ScoreService {
	return &ScoreServiceImpl{
		cache:    scoreCache,
		records:  records,
		searcher: mahjong.NewSearcher(),
		rules:    config.Rules,
	}
}

// scoreInput 解析后的计分输入，门内手牌已含和了牌
type scoreInput struct {
	hand  mahjong.Hand34
	melds []mahjong.Meld
	win   mahjong.TileType
	cond  mahjong.Conditions
}

// canonical 同一手牌不同写法得到相同的键
func (in *scoreInput) canonical(rules mahjong.Rules) string {
	var sb strings.Builder
	sb.WriteString(notation.FormatHand(in.hand))
	for _, m := range in.melds {
		sb.WriteByte('|')
		sb.WriteString(notation.FormatMeld(m))
	}
	fmt.Fprintf(&sb, "|win=%s|%+v|%+v", notation.FormatTile(in.win), in.cond, rules)
	return sb.String()
}

func invalidInput(err error) error {
	if errors.Is(err, notation.ErrNotation) {
		return errs.Wrap(errs.CodeNotation, "牌谱文本解析失败", err)
	}
	return errs.Wrap(errs.CodeInvalidHand, "手牌不合法", err)
}

var windNames = map[string]mahjong.Wind{
	"": mahjong.WindEast, "east": mahjong.WindEast, "south": mahjong.WindSouth,
	"west": mahjong.WindWest, "north": mahjong.WindNorth,
}

func parseWind(s string) (mahjong.Wind, error) {
	if w, ok := windNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return w, nil
	}
	t, _, err := notation.ParseTile(s)
	if err != nil {
		return 0, err
	}
	if !t.IsWind() {
		return 0, fmt.Errorf("%w: %q is not a wind", notation.ErrNotation, s)
	}
	return mahjong.Wind(t - mahjong.East), nil
}

func parseIndicators(list []string) ([]mahjong.TileType, error) {
	if len(list) == 0 {
		return nil, nil
	}
	tiles, _, err := notation.ParseTileList(strings.Join(list, ","))
	return tiles, err
}

// parseHandAndWin 136 编号优先，其次 mpsz 文本
func parseHandAndWin(req *dto.ScoreRequest) (hand mahjong.Hand34, aka int, win mahjong.TileType, winRed bool, err error) {
	if len(req.HandIDs) > 0 {
		hand, aka, err = notation.HandFromIDs(req.HandIDs)
	} else {
		hand, aka, err = notation.ParseHand(req.Hand)
	}
	if err != nil {
		return
	}
	if req.WinTileID != nil {
		win, winRed, err = notation.FromID136(*req.WinTileID)
	} else {
		win, winRed, err = notation.ParseTile(req.WinTile)
	}
	return
}

func parseScoreRequest(req *dto.ScoreRequest) (*scoreInput, error) {
	hand, aka, win, winRed, err := parseHandAndWin(req)
	if err != nil {
		return nil, invalidInput(err)
	}
	melds, meldAka, err := notation.ParseMelds(req.Melds)
	if err != nil {
		return nil, invalidInput(err)
	}
	aka += meldAka

	// 手牌不含和了牌时补上，赤五只在这种情况下单独计数
	if hand.Total() == 13-3*len(melds) {
		if err := hand.Add(win); err != nil {
			return nil, invalidInput(err)
		}
		if winRed {
			aka++
		}
	}

	roundWind, err := parseWind(req.RoundWind)
	if err != nil {
		return nil, invalidInput(err)
	}
	seatWind, err := parseWind(req.SeatWind)
	if err != nil {
		return nil, invalidInput(err)
	}
	dora, err := parseIndicators(req.DoraIndicators)
	if err != nil {
		return nil, invalidInput(err)
	}
	ura, err := parseIndicators(req.UraIndicators)
	if err != nil {
		return nil, invalidInput(err)
	}

	full := mahjong.FullHand(hand, melds)
	cond := mahjong.Conditions{
		Tsumo:          req.Tsumo,
		Riichi:         req.Riichi,
		DoubleRiichi:   req.DoubleRiichi,
		Ippatsu:        req.Ippatsu,
		Haitei:         req.Haitei,
		Houtei:         req.Houtei,
		Rinshan:        req.Rinshan,
		Chankan:        req.Chankan,
		TsumoFirstTurn: req.FirstTurn,
		RoundWind:      roundWind,
		SeatWind:       seatWind,
		DoraCount:      mahjong.CountDora(full, dora),
		AkaDora:        aka,
		Honba:          req.Honba,
	}
	// 里宝牌只在立直时翻开
	if req.Riichi || req.DoubleRiichi {
		cond.UraDoraCount = mahjong.CountDora(full, ura)
	}

	return &scoreInput{hand: hand, melds: melds, win: win, cond: cond}, nil
}

func toScoreResponse(r *mahjong.Result, cond mahjong.Conditions) *dto.ScoreResponse {
	resp := &dto.ScoreResponse{
		Agari:        r.Agari,
		Yakuman:      r.Yakuman,
		Shape:        r.Shape.String(),
		Han:          r.Han,
		Fu:           r.Fu,
		YakumanCount: r.YakumanCount,
		Yaku:         make([]dto.YakuItem, 0, len(r.Yaku)),
		Payment:      r.Payment,
		Dora:         cond.DoraCount,
		AkaDora:      cond.AkaDora,
		UraDora:      cond.UraDoraCount,
	}
	for _, y := range r.Yaku {
		resp.Yaku = append(resp.Yaku, dto.YakuItem{ID: int(y.Yaku), Name: y.Yaku.String(), Han: y.Han})
	}
	if r.Agari && r.Shape == mahjong.ShapeStandard {
		resp.Wait = r.Wait.String()
	}
	if r.Division != nil {
		resp.Division = r.Division.String()
	}
	return resp
}

func (s *ScoreServiceImpl) Score(ctx context.Context, req *dto.ScoreRequest) (*dto.ScoreResponse, error) {
	in, err := parseScoreRequest(req)
	if err != nil {
		return nil, err
	}
	rules := s.rules()
	key := cache.Key(in.canonical(rules))
	if resp, ok := s.lookup(ctx, key); ok {
		return resp, nil
	}

	result, err := rules.Score(in.hand, in.melds, in.win, in.cond)
	if err != nil {
		return nil, invalidInput(err)
	}
	resp := toScoreResponse(result, in.cond)
	s.store(ctx, key, resp)

	if resp.Agari {
		s.persist(ctx, req, in, resp)
	}
	return resp, nil
}

func (s *ScoreServiceImpl) lookup(ctx context.Context, key string) (*dto.ScoreResponse, bool) {
	if s.cache == nil {
		return nil, false
	}
	b, ok := s.cache.Get(ctx, key)
	if !ok {
		return nil, false
	}
	var resp dto.ScoreResponse
	if err := json.Unmarshal(b, &resp); err != nil {
		log.Warn("计分缓存内容损坏: %v", err)
		return nil, false
	}
	resp.Cached = true
	return &resp, true
}

func (s *ScoreServiceImpl) store(ctx context.Context, key string, resp *dto.ScoreResponse) {
	if s.cache == nil {
		return
	}
	b, err := json.Marshal(resp)
	if err != nil {
		log.Warn("计分结果序列化失败: %v", err)
		return
	}
	s.cache.Set(ctx, key, b)
}

// persist 落库失败不影响返回结果
func (s *ScoreServiceImpl) persist(ctx context.Context, req *dto.ScoreRequest, in *scoreInput, resp *dto.ScoreResponse) {
	if s.records == nil {
		return
	}
	record := entity.NewScoreRecord(notation.FormatHand(in.hand), req.Melds, notation.FormatTile(in.win))
	record.RequestID = req.RequestID
	record.Tsumo = in.cond.Tsumo
	record.Dealer = in.cond.IsDealer()
	record.Han = resp.Han
	record.Fu = resp.Fu
	record.YakumanCount = resp.YakumanCount
	record.Total = resp.Payment.Total
	record.Yaku = make([]int, 0, len(resp.Yaku))
	for _, y := range resp.Yaku {
		record.Yaku = append(record.Yaku, y.ID)
	}
	if err := s.records.Save(ctx, record); err != nil {
		log.Warn("计分记录 %s 保存失败: %v", record.ID, err)
	}
}

// parseFullHand 解析 3n+2 张手牌，最多 14 张
func parseFullHand(s string) (mahjong.Hand34, error) {
	h, _, err := notation.ParseHand(s)
	if err != nil {
		return h, invalidInput(err)
	}
	if total := h.Total(); total > mahjong.MaxHandTiles || total%3 != 2 {
		return h, invalidInput(fmt.Errorf("%w: %d tiles", mahjong.ErrHandSize, total))
	}
	return h, nil
}

func (s *ScoreServiceImpl) Decompose(ctx context.Context, req *dto.HandRequest) (*dto.DecomposeResponse, error) {
	h, err := parseFullHand(req.Hand)
	if err != nil {
		return nil, err
	}
	divisions := mahjong.Decompose(h)
	resp := &dto.DecomposeResponse{
		Shape:     mahjong.DetectShape(h).String(),
		Divisions: make([]string, 0, len(divisions)),
	}
	for _, d := range divisions {
		resp.Divisions = append(resp.Divisions, d.String())
	}
	return resp, nil
}

func (s *ScoreServiceImpl) Agari(ctx context.Context, req *dto.HandRequest) (*dto.AgariResponse, error) {
	h, err := parseFullHand(req.Hand)
	if err != nil {
		return nil, err
	}
	return &dto.AgariResponse{
		Agari:   s.searcher.IsAgariAll(h),
		Shape:   mahjong.DetectShape(h).String(),
		Shanten: s.searcher.ShantenAll(h),
	}, nil
}

func (s *ScoreServiceImpl) Waits(ctx context.Context, req *dto.WaitsRequest) (*dto.WaitsResponse, error) {
	h, _, err := notation.ParseHand(req.Hand)
	if err != nil {
		return nil, invalidInput(err)
	}
	if total := h.Total(); total > mahjong.MaxHandTiles-1 || total%3 != 1 {
		return nil, invalidInput(fmt.Errorf("%w: %d tiles", mahjong.ErrHandSize, total))
	}
	var visible *mahjong.Hand34
	if req.Visible != "" {
		v, _, err := notation.ParseHand(req.Visible)
		if err != nil {
			return nil, invalidInput(err)
		}
		visible = &v
	}

	waits, ukeire := s.searcher.WaitsAndUkeire(h, visible)
	resp := &dto.WaitsResponse{
		Shanten: s.searcher.ShantenAll(h),
		Waits:   make([]string, 0, len(waits)),
		Ukeire:  ukeire,
	}
	for _, t := range waits {
		resp.Waits = append(resp.Waits, notation.FormatTile(t))
	}
	return resp, nil
}

func (s *ScoreServiceImpl) Table(ctx context.Context, req *dto.TableRequest) (*dto.TableResponse, error) {
	if req.Yakuman > 0 {
		pay := mahjong.YakumanTable(req.Yakuman, req.Dealer, req.Tsumo)
		return &dto.TableResponse{
			Yakuman: req.Yakuman,
			Payment: pay.WithHonba(req.Honba, req.Dealer, req.Tsumo),
		}, nil
	}
	if req.Han < 1 {
		return nil, errs.New(errs.CodeInvalidParam, "番数至少为 1")
	}
	// 满贯以下需要符数
	if req.Han < 5 && req.Fu < 20 {
		return nil, errs.New(errs.CodeInvalidParam, "符数至少为 20")
	}
	pay := s.rules().ScoreTable(req.Han, req.Fu, req.Dealer, req.Tsumo)
	return &dto.TableResponse{
		Han:     req.Han,
		Fu:      req.Fu,
		Payment: pay.WithHonba(req.Honba, req.Dealer, req.Tsumo),
	}, nil
}

func (s *ScoreServiceImpl) Record(ctx context.Context, id string) (*entity.ScoreRecord, error) {
	if s.records == nil {
		return nil, errs.New(errs.CodeNotFound, "未启用计分记录")
	}
	record, err := s.records.FindByID(ctx, id)
	if errors.Is(err, repository.ErrScoreRecordNotFound) {
		return nil, errs.Wrap(errs.CodeNotFound, "计分记录不存在", err)
	}
	if err != nil {
		return nil, errs.Wrap(errs.CodeServerError, "查询计分记录失败", err)
	}
	return record, nil
}

func (s *ScoreServiceImpl) RecentRecords(ctx context.Context, limit int) (*dto.RecordsResponse, error) {
	if limit < 1 || limit > maxRecordLimit {
		return nil, errs.New(errs.CodeInvalidParam, fmt.Sprintf("limit 取值范围 1-%d", maxRecordLimit))
	}
	if s.records == nil {
		return nil, errs.New(errs.CodeNotFound, "未启用计分记录")
	}
	records, err := s.records.FindRecent(ctx, limit)
	if err != nil {
		return nil, errs.Wrap(errs.CodeServerError, "查询计分记录失败", err)
	}
	if records == nil {
		records = []*entity.ScoreRecord{}
	}
	return &dto.RecordsResponse{Records: records}, nil
}
