package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lihe07/RiichiEnv/common/errs"
	commonhttp "github.com/lihe07/RiichiEnv/common/http"
	"github.com/lihe07/RiichiEnv/core/domain/entity"
	"github.com/lihe07/RiichiEnv/core/domain/repository"
	"github.com/lihe07/RiichiEnv/game/application/service/impl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code      int             `json:"code"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	RequestID string          `json:"requestId"`
}

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
	out := make([]*entity.ScoreRecord, 0, limit)
	for i := len(m.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.records[i])
	}
	return out, nil
}

func newTestServer() *commonhttp.HttpServer {
	return newTestServerWithRecords(nil)
}

func newTestServerWithRecords(records repository.ScoreRecordRepository) *commonhttp.HttpServer {
	server := commonhttp.NewHttpServer(commonhttp.WithMode(gin.TestMode))
	server.Use(commonhttp.RequestIDMiddleware())
	h := NewHandler(impl.NewScoreService(nil, records), func() map[string]string {
		return map[string]string{"mongo": "disabled", "redis": "disabled"}
	})
	RegisterRoutes(server, h)
	return server
}

func call(t *testing.T, server *commonhttp.HttpServer, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func TestPingAndHealth(t *testing.T) {
	server := newTestServer()

	code, env := call(t, server, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, commonhttp.CodeSuccess, env.Code)
	assert.Contains(t, string(env.Data), "pong")

	code, env = call(t, server, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"mongo":"disabled"`)

	var health struct {
		Load struct {
			Goroutines int `json:"goroutines"`
		} `json:"load"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &health))
	assert.Positive(t, health.Load.Goroutines)
}

func TestScoreRoute(t *testing.T) {
	server := newTestServer()

	code, env := call(t, server, http.MethodPost, "/api/v1/score",
		`{"hand":"123m456m789p123p11s","winTile":"1m","seatWind":"S","tsumo":true}`)
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, env.RequestID)

	var data struct {
		Agari   bool `json:"agari"`
		Han     int  `json:"han"`
		Fu      int  `json:"fu"`
		Payment struct {
			TsumoOya int `json:"tsumoOya"`
			TsumoKo  int `json:"tsumoKo"`
			Total    int `json:"total"`
		} `json:"payment"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.True(t, data.Agari)
	assert.Equal(t, 2, data.Han)
	assert.Equal(t, 20, data.Fu)
	assert.Equal(t, 700, data.Payment.TsumoOya)
	assert.Equal(t, 400, data.Payment.TsumoKo)
	assert.Equal(t, 1500, data.Payment.Total)
}

func TestScoreRoute_Errors(t *testing.T) {
	server := newTestServer()

	code, env := call(t, server, http.MethodPost, "/api/v1/score", `{"hand":"123m"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, errs.CodeInvalidParam, env.Code)

	code, env = call(t, server, http.MethodPost, "/api/v1/score", `{"hand":"12q","winTile":"1m"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, errs.CodeNotation, env.Code)

	code, env = call(t, server, http.MethodPost, "/api/v1/score", `{"hand":"123m","winTile":"1m"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, errs.CodeInvalidHand, env.Code)
}

func TestAnalysisRoutes(t *testing.T) {
	server := newTestServer()

	code, env := call(t, server, http.MethodPost, "/api/v1/agari", `{"hand":"123m456p789s11122z"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"agari":true`)

	code, env = call(t, server, http.MethodPost, "/api/v1/decompose", `{"hand":"111222333m456p11z"}`)
	require.Equal(t, http.StatusOK, code)
	var dec struct {
		Divisions []string `json:"divisions"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &dec))
	assert.Len(t, dec.Divisions, 2)

	code, env = call(t, server, http.MethodPost, "/api/v1/waits", `{"hand":"1112345678999m"}`)
	require.Equal(t, http.StatusOK, code)
	var waits struct {
		Waits  []string `json:"waits"`
		Ukeire int      `json:"ukeire"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &waits))
	assert.Len(t, waits.Waits, 9)
	assert.Equal(t, 23, waits.Ukeire)
}

func TestTableRoute(t *testing.T) {
	server := newTestServer()

	code, env := call(t, server, http.MethodGet, "/api/v1/table?han=4&fu=30&dealer=true", "")
	require.Equal(t, http.StatusOK, code)
	// 切上满贯
	assert.Contains(t, string(env.Data), `"ron":12000`)

	code, env = call(t, server, http.MethodPost, "/api/v1/table", `{"han":1,"fu":30,"tsumo":true}`)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"tsumoOya":500`)
	assert.Contains(t, string(env.Data), `"tsumoKo":300`)

	code, _ = call(t, server, http.MethodGet, "/api/v1/table?han=0", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestScoreRoute_TileIDs(t *testing.T) {
	server := newTestServer()

	// 23m 456m 789p 123p 11s 的 136 编号，荣和 1m
	code, env := call(t, server, http.MethodPost, "/api/v1/score",
		`{"handIds":[4,8,12,17,20,60,64,68,36,40,44,72,73],"winTileId":0,"seatWind":"S"}`)
	require.Equal(t, http.StatusOK, code, env.Message)
	assert.Contains(t, string(env.Data), `"agari":true`)
	assert.Contains(t, string(env.Data), `"total":1000`)
}

func TestAnalysisRoutes_OversizedHand(t *testing.T) {
	server := newTestServer()

	code, env := call(t, server, http.MethodPost, "/api/v1/agari", `{"hand":"123456789m123456789p123456789s11z"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, errs.CodeInvalidHand, env.Code)

	code, env = call(t, server, http.MethodPost, "/api/v1/waits", `{"hand":"1234567899m123456p"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, errs.CodeInvalidHand, env.Code)
}

func TestRecordRoutes(t *testing.T) {
	records := &memoryRecords{}
	server := newTestServerWithRecords(records)

	code, _ := call(t, server, http.MethodPost, "/api/v1/score",
		`{"hand":"123m456m789p123p11s","winTile":"1m","seatWind":"S","tsumo":true}`)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, records.records, 1)
	id := records.records[0].ID

	code, env := call(t, server, http.MethodGet, "/api/v1/records/"+id, "")
	require.Equal(t, http.StatusOK, code)
	var rec struct {
		ID    string `json:"id"`
		Hand  string `json:"hand"`
		Total int    `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &rec))
	assert.Equal(t, id, rec.ID)
	assert.Equal(t, "123456m123789p11s", rec.Hand)
	assert.Equal(t, 1500, rec.Total)

	code, env = call(t, server, http.MethodGet, "/api/v1/records?limit=5", "")
	require.Equal(t, http.StatusOK, code)
	var list struct {
		Records []struct {
			ID string `json:"id"`
		} `json:"records"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list.Records, 1)
	assert.Equal(t, id, list.Records[0].ID)

	code, env = call(t, server, http.MethodGet, "/api/v1/records/missing", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, errs.CodeNotFound, env.Code)

	code, _ = call(t, server, http.MethodGet, "/api/v1/records?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = call(t, server, http.MethodGet, "/api/v1/records?limit=0", "")
	assert.Equal(t, http.StatusBadRequest, code)

	// 未启用落库
	code, env = call(t, newTestServer(), http.MethodGet, "/api/v1/records", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, errs.CodeNotFound, env.Code)
}
