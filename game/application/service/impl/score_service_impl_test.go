package impl

import (
	"context"
	"sync"
	"testing"
	"time"

	commoncache "github.com/lihe07/RiichiEnv/common/cache"
	"github.com/lihe07/RiichiEnv/common/errs"
	"github.com/lihe07/RiichiEnv/core/domain/entity"
	"github.com/lihe07/RiichiEnv/core/domain/repository"
	"github.com/lihe07/RiichiEnv/core/infrastructure/cache"
	"github.com/lihe07/RiichiEnv/engines/mahjong"
	"github.com/lihe07/RiichiEnv/game/application/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRecords struct {
	mu      sync.Mutex
	records []*entity.ScoreRecord
}

func (m *memoryRecords) Save(ctx context.Context, record *entity.ScoreRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record)
	return nil
}

func (m *memoryRecords) FindByID(ctx context.Context, id string) (*entity.ScoreRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, repository.ErrScoreRecordNotFound
}

func (m *memoryRecords) FindRecent(ctx context.Context, limit int) ([]*entity.ScoreRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records, nil
}

func (m *memoryRecords) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

func newTestService(t *testing.T) (*ScoreServiceImpl, *memoryRecords) {
	t.Helper()
	local, err := commoncache.NewGeneralCache(1<<20, time.Minute)
	require.NoError(t, err)
	t.Cleanup(local.Close)

	records := &memoryRecords{}
	svc := NewScoreService(cache.NewScoreCache(local, nil, time.Hour), records).(*ScoreServiceImpl)
	svc.rules = mahjong.DefaultRules
	return svc, records
}

func requireCode(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, errs.CodeOf(err))
}

func TestScore_PinfuRon(t *testing.T) {
	svc, records := newTestService(t)

	resp, err := svc.Score(context.Background(), &dto.ScoreRequest{
		Hand:      "123m456m789p123p11s",
		WinTile:   "1m",
		SeatWind:  "S",
		RequestID: "req-1",
	})
	require.NoError(t, err)
	require.True(t, resp.Agari)
	assert.Equal(t, "standard", resp.Shape)
	assert.Equal(t, "ryanmen", resp.Wait)
	assert.Equal(t, 1, resp.Han)
	assert.Equal(t, 30, resp.Fu)
	assert.Equal(t, mahjong.Payment{Ron: 1000, Total: 1000}, resp.Payment)
	require.Len(t, resp.Yaku, 1)
	assert.Equal(t, int(mahjong.YakuPinfu), resp.Yaku[0].ID)
	assert.Equal(t, mahjong.YakuPinfu.String(), resp.Yaku[0].Name)
	assert.NotEmpty(t, resp.Division)
	assert.False(t, resp.Cached)

	require.Equal(t, 1, records.count())
	rec := records.records[0]
	assert.Equal(t, "req-1", rec.RequestID)
	assert.Equal(t, 1000, rec.Total)
	assert.False(t, rec.Dealer)
	assert.Equal(t, []int{int(mahjong.YakuPinfu)}, rec.Yaku)
}

func TestScore_ThirteenTileHandAddsWinTile(t *testing.T) {
	svc, _ := newTestService(t)

	// 东场东家，双东刻子单骑
	resp, err := svc.Score(context.Background(), &dto.ScoreRequest{
		Hand:    "123m456p789s111z2z",
		WinTile: "2z",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Han)
	assert.Equal(t, 40, resp.Fu)
	assert.Equal(t, "tanki", resp.Wait)
	assert.Equal(t, 3900, resp.Payment.Total)
}

func TestScore_DoraAkaUra(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	base := dto.ScoreRequest{Hand: "123m456m789p123p11s", WinTile: "1m", SeatWind: "south"}

	// 指示牌 9p，宝牌 1p
	req := base
	req.DoraIndicators = []string{"9p"}
	resp, err := svc.Score(ctx, &req)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Dora)
	assert.Equal(t, 2, resp.Han)
	assert.Equal(t, 2000, resp.Payment.Total)

	req = base
	req.Hand = "123m406m789p123p11s"
	req.DoraIndicators = []string{"9p"}
	resp, err = svc.Score(ctx, &req)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.AkaDora)
	assert.Equal(t, 3, resp.Han)
	assert.Equal(t, 3900, resp.Payment.Total)

	// 没有立直时不计里宝牌
	req = base
	req.UraIndicators = []string{"9p"}
	resp, err = svc.Score(ctx, &req)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.UraDora)
	assert.Equal(t, 1, resp.Han)

	req.Riichi = true
	resp, err = svc.Score(ctx, &req)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.UraDora)
	assert.Equal(t, 3, resp.Han)
}

func TestScore_RedWinTileCountedOnce(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// 和了牌已在手牌中
	resp, err := svc.Score(ctx, &dto.ScoreRequest{Hand: "123m406m789p123p11s", WinTile: "0m", SeatWind: "S"})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.AkaDora)

	// 和了牌不在手牌中
	resp, err = svc.Score(ctx, &dto.ScoreRequest{Hand: "123m46m789p123p11s", WinTile: "0m", SeatWind: "S"})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.AkaDora)
}

func TestScore_CacheHitSkipsPersist(t *testing.T) {
	svc, records := newTestService(t)
	ctx := context.Background()
	req := &dto.ScoreRequest{Hand: "123m456m789p123p11s", WinTile: "1m", SeatWind: "S"}

	first, err := svc.Score(ctx, req)
	require.NoError(t, err)
	svc.cache.Wait()

	// 同一手牌换一种写法
	second, err := svc.Score(ctx, &dto.ScoreRequest{Hand: "11s 321p 987p 654m 321m", WinTile: "1m", SeatWind: "2z"})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Payment, second.Payment)
	assert.Equal(t, first.Yaku, second.Yaku)
	assert.Equal(t, 1, records.count())

	// 规则变化后不命中旧缓存
	svc.rules = func() mahjong.Rules {
		r := mahjong.DefaultRules()
		r.KiriageMangan = false
		return r
	}
	third, err := svc.Score(ctx, req)
	require.NoError(t, err)
	assert.False(t, third.Cached)
}

func TestScore_NotWinning(t *testing.T) {
	svc, records := newTestService(t)

	resp, err := svc.Score(context.Background(), &dto.ScoreRequest{Hand: "123m456m789p124p11s", WinTile: "1m"})
	require.NoError(t, err)
	assert.False(t, resp.Agari)
	assert.Empty(t, resp.Yaku)
	assert.Equal(t, 0, records.count())
}

func TestScore_InvalidInput(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Score(ctx, &dto.ScoreRequest{Hand: "123x", WinTile: "1m"})
	requireCode(t, err, errs.CodeNotation)

	_, err = svc.Score(ctx, &dto.ScoreRequest{Hand: "11111m", WinTile: "1m"})
	requireCode(t, err, errs.CodeInvalidHand)

	_, err = svc.Score(ctx, &dto.ScoreRequest{Hand: "123m", WinTile: "1m"})
	requireCode(t, err, errs.CodeInvalidHand)

	_, err = svc.Score(ctx, &dto.ScoreRequest{Hand: "123m456m789p123p11s", WinTile: "1m", SeatWind: "5z"})
	requireCode(t, err, errs.CodeNotation)

	_, err = svc.Score(ctx, &dto.ScoreRequest{Hand: "123m456m789p123p11s", WinTile: "1m", Melds: []string{"chi:135m"}})
	requireCode(t, err, errs.CodeInvalidHand)
}

func TestDecompose(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.Decompose(context.Background(), &dto.HandRequest{Hand: "111222333m456p11z"})
	require.NoError(t, err)
	assert.Equal(t, "standard", resp.Shape)
	assert.Len(t, resp.Divisions, 2)

	_, err = svc.Decompose(context.Background(), &dto.HandRequest{Hand: "111222333m456p1z"})
	requireCode(t, err, errs.CodeInvalidHand)
}

func TestAgari(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Agari(ctx, &dto.HandRequest{Hand: "123m456p789s11122z"})
	require.NoError(t, err)
	assert.True(t, resp.Agari)
	assert.Equal(t, -1, resp.Shanten)

	resp, err = svc.Agari(ctx, &dto.HandRequest{Hand: "123m456p789s11123z"})
	require.NoError(t, err)
	assert.False(t, resp.Agari)
	assert.Equal(t, "none", resp.Shape)
	assert.Equal(t, 0, resp.Shanten)
}

func TestWaits(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// 纯正九莲宝灯九面听
	resp, err := svc.Waits(ctx, &dto.WaitsRequest{Hand: "1112345678999m"})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Shanten)
	assert.Equal(t, []string{"1m", "2m", "3m", "4m", "5m", "6m", "7m", "8m", "9m"}, resp.Waits)
	assert.Equal(t, 23, resp.Ukeire)

	resp, err = svc.Waits(ctx, &dto.WaitsRequest{Hand: "123m456p789s1112z", Visible: "22z"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2z"}, resp.Waits)
	assert.Equal(t, 1, resp.Ukeire)

	_, err = svc.Waits(ctx, &dto.WaitsRequest{Hand: "123m456p789s11122z"})
	requireCode(t, err, errs.CodeInvalidHand)
}

func TestTable(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Table(ctx, &dto.TableRequest{Han: 3, Fu: 30})
	require.NoError(t, err)
	assert.Equal(t, mahjong.Payment{Ron: 3900, Total: 3900}, resp.Payment)

	resp, err = svc.Table(ctx, &dto.TableRequest{Han: 3, Fu: 30, Honba: 1})
	require.NoError(t, err)
	assert.Equal(t, 4200, resp.Payment.Total)

	resp, err = svc.Table(ctx, &dto.TableRequest{Han: 5, Dealer: true, Tsumo: true})
	require.NoError(t, err)
	assert.Equal(t, mahjong.Payment{TsumoKo: 4000, Total: 12000}, resp.Payment)

	_, err = svc.Table(ctx, &dto.TableRequest{Han: 0, Fu: 30})
	requireCode(t, err, errs.CodeInvalidParam)

	_, err = svc.Table(ctx, &dto.TableRequest{Han: 2, Fu: 0})
	requireCode(t, err, errs.CodeInvalidParam)

	// 13 番以上是累计役满，只算一倍
	resp, err = svc.Table(ctx, &dto.TableRequest{Han: 26, Fu: 30, Dealer: true})
	require.NoError(t, err)
	assert.Equal(t, 48000, resp.Payment.Ron)

	resp, err = svc.Table(ctx, &dto.TableRequest{Yakuman: 2, Dealer: true})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Yakuman)
	assert.Equal(t, mahjong.Payment{Ron: 96000, Total: 96000}, resp.Payment)
}

func TestScore_TileIDs(t *testing.T) {
	svc, records := newTestService(t)
	ctx := context.Background()

	// 23m 456m(赤 5m) 789p 123p 11s，荣和 1m
	win := 0
	resp, err := svc.Score(ctx, &dto.ScoreRequest{
		HandIDs:   []int{4, 8, 12, 16, 20, 60, 64, 68, 36, 40, 44, 72, 73},
		WinTileID: &win,
		SeatWind:  "S",
	})
	require.NoError(t, err)
	require.True(t, resp.Agari)
	assert.Equal(t, 1, resp.AkaDora)
	assert.Equal(t, 2, resp.Han)
	assert.Equal(t, 30, resp.Fu)
	assert.Equal(t, 2000, resp.Payment.Total)

	require.Equal(t, 1, records.count())
	assert.Equal(t, "123456m123789p11s", records.records[0].Hand)
	assert.Equal(t, "1m", records.records[0].WinTile)

	// 同一编号出现两次
	_, err = svc.Score(ctx, &dto.ScoreRequest{HandIDs: []int{4, 4}, WinTileID: &win})
	requireCode(t, err, errs.CodeNotation)

	bad := 136
	_, err = svc.Score(ctx, &dto.ScoreRequest{Hand: "23m456m789p123p11s", WinTileID: &bad})
	requireCode(t, err, errs.CodeNotation)
}

func TestOversizedHandsRejected(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// 29 张 3n+2，不能当作和牌
	_, err := svc.Agari(ctx, &dto.HandRequest{Hand: "123456789m123456789p123456789s11z"})
	requireCode(t, err, errs.CodeInvalidHand)

	_, err = svc.Decompose(ctx, &dto.HandRequest{Hand: "123456789m123456789p123456789s11z"})
	requireCode(t, err, errs.CodeInvalidHand)

	// 16 张 3n+1
	_, err = svc.Waits(ctx, &dto.WaitsRequest{Hand: "1234567899m123456p"})
	requireCode(t, err, errs.CodeInvalidHand)

	_, err = svc.Score(ctx, &dto.ScoreRequest{Hand: "123456789m123456789p11z", WinTile: "1z"})
	requireCode(t, err, errs.CodeInvalidHand)
}

func TestRecords(t *testing.T) {
	svc, records := newTestService(t)
	ctx := context.Background()

	_, err := svc.Score(ctx, &dto.ScoreRequest{Hand: "123m456m789p123p11s", WinTile: "1m", SeatWind: "S"})
	require.NoError(t, err)
	require.Equal(t, 1, records.count())
	id := records.records[0].ID

	rec, err := svc.Record(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1000, rec.Total)

	_, err = svc.Record(ctx, "missing")
	requireCode(t, err, errs.CodeNotFound)

	list, err := svc.RecentRecords(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list.Records, 1)
	assert.Equal(t, id, list.Records[0].ID)

	_, err = svc.RecentRecords(ctx, 0)
	requireCode(t, err, errs.CodeInvalidParam)
	_, err = svc.RecentRecords(ctx, maxRecordLimit+1)
	requireCode(t, err, errs.CodeInvalidParam)

	// 未启用落库
	disabled := NewScoreService(nil, nil)
	_, err = disabled.Record(ctx, id)
	requireCode(t, err, errs.CodeNotFound)
	_, err = disabled.RecentRecords(ctx, 10)
	requireCode(t, err, errs.CodeNotFound)
}

func TestRecentRecords_EmptyIsNotNil(t *testing.T) {
	svc, _ := newTestService(t)

	list, err := svc.RecentRecords(context.Background(), 5)
	require.NoError(t, err)
	assert.NotNil(t, list.Records)
	assert.Empty(t, list.Records)
}
