package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lihe07/RiichiEnv/common/errs"
	"github.com/lihe07/RiichiEnv/common/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *HttpServer {
	s := NewHttpServer(WithMode(gin.TestMode))
	s.Use(RequestIDMiddleware(), CorsMiddleware(), LoggerMiddleware())
	return s
}

func doRequest(t *testing.T, s *HttpServer, method, path, body string, header map[string]string) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	var resp Response
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestServer_SuccessEnvelope(t *testing.T) {
	s := newTestServer()
	s.GET("/ok", func(c *Context) error {
		c.Success(map[string]string{"q": c.GetQuery("q")})
		return nil
	})

	w, resp := doRequest(t, s, http.MethodGet, "/ok?q=1m", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, CodeSuccess, resp.Code)
	assert.Equal(t, map[string]any{"q": "1m"}, resp.Data)

	_, err := uuid.Parse(resp.RequestID)
	assert.NoError(t, err)
	assert.Equal(t, resp.RequestID, w.Header().Get(headerRequestID))
}

func TestServer_KeepsCallerRequestID(t *testing.T) {
	s := newTestServer()
	s.GET("/ok", func(c *Context) error {
		c.Success(nil)
		return nil
	})
	id := uuid.NewString()

	_, resp := doRequest(t, s, http.MethodGet, "/ok", "", map[string]string{headerRequestID: id})
	assert.Equal(t, id, resp.RequestID)

	// 非 uuid 的外部值会被替换
	_, resp = doRequest(t, s, http.MethodGet, "/ok", "", map[string]string{headerRequestID: "abc"})
	assert.NotEqual(t, "abc", resp.RequestID)
}

func TestServer_ErrorMapping(t *testing.T) {
	s := newTestServer()
	api := s.Group("/api")
	api.POST("/bad", func(c *Context) error {
		return errs.New(errs.CodeInvalidHand, "手牌不合法")
	})
	api.POST("/missing", func(c *Context) error {
		return errs.New(errs.CodeNotFound, "not found")
	})
	api.POST("/boom", func(c *Context) error {
		return errors.New("boom")
	})

	w, resp := doRequest(t, s, http.MethodPost, "/api/bad", "{}", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, errs.CodeInvalidHand, resp.Code)

	w, resp = doRequest(t, s, http.MethodPost, "/api/missing", "{}", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, errs.CodeNotFound, resp.Code)

	w, resp = doRequest(t, s, http.MethodPost, "/api/boom", "{}", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, errs.CodeServerError, resp.Code)
	assert.Equal(t, "boom", resp.Message)
}

func TestServer_BindJSON(t *testing.T) {
	type body struct {
		Hand string `json:"hand" binding:"required"`
	}
	s := newTestServer()
	s.POST("/bind", func(c *Context) error {
		var b body
		if err := c.BindJSON(&b); err != nil {
			c.BadRequest("")
			return nil
		}
		c.Success(b.Hand)
		return nil
	})

	w, resp := doRequest(t, s, http.MethodPost, "/bind", `{"hand":"11z"}`, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "11z", resp.Data)

	w, resp = doRequest(t, s, http.MethodPost, "/bind", `{}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, MsgInvalidParam, resp.Message)
}

func TestCorsPreflight(t *testing.T) {
	s := newTestServer()
	s.POST("/x", func(c *Context) error {
		c.Success(nil)
		return nil
	})
	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecoveryReturns500(t *testing.T) {
	s := newTestServer()
	s.GET("/panic", func(c *Context) error {
		panic("boom")
	})
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	s := NewHttpServer(WithMode(gin.TestMode))
	s.Use(RateLimitMiddleware(0.001, 2))
	s.GET("/ok", func(c *Context) error {
		c.Success(nil)
		return nil
	})

	for i := 0; i < 2; i++ {
		w, _ := doRequest(t, s, http.MethodGet, "/ok", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	}
	w, resp := doRequest(t, s, http.MethodGet, "/ok", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, errs.CodeTooMany, resp.Code)

	// rate 为 0 不限流
	s = NewHttpServer(WithMode(gin.TestMode))
	s.Use(RateLimitMiddleware(0, 1))
	s.GET("/ok", func(c *Context) error {
		c.Success(nil)
		return nil
	})
	for i := 0; i < 5; i++ {
		w, _ := doRequest(t, s, http.MethodGet, "/ok", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}
