package http

import (
	"net/http"

	"github.com/lihe07/RiichiEnv/common/errs"
)

// Response 统一响应结构
type Response struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

const (
	CodeSuccess = 0  // 成功
	CodeError   = -1 // 通用错误
)

const (
	MsgSuccess      = "success"
	MsgInvalidParam = "invalid parameters"
	MsgServerError  = "internal server error"
)

func (c *Context) newResponse(code int, message string, data any) *Response {
	return &Response{
		Code:      code,
		Message:   message,
		Data:      data,
		RequestID: c.RequestID(),
	}
}

// Success 成功响应
func (c *Context) Success(data any) {
	c.JSON(http.StatusOK, c.newResponse(CodeSuccess, MsgSuccess, data))
}

// BadRequest 400 错误请求
func (c *Context) BadRequest(message string) {
	if message == "" {
		message = MsgInvalidParam
	}
	c.JSON(http.StatusBadRequest, c.newResponse(errs.CodeInvalidParam, message, nil))
}

// InternalServerError 500 服务器内部错误
func (c *Context) InternalServerError(message string) {
	if message == "" {
		message = MsgServerError
	}
	c.JSON(http.StatusInternalServerError, c.newResponse(errs.CodeServerError, message, nil))
}

// Fail 按错误码选择 HTTP 状态，未知错误 500
func (c *Context) Fail(err error) {
	code := errs.CodeOf(err)
	switch code {
	case errs.CodeInvalidParam, errs.CodeInvalidHand, errs.CodeNotation:
		c.JSON(http.StatusBadRequest, c.newResponse(code, err.Error(), nil))
	case errs.CodeNotFound:
		c.JSON(http.StatusNotFound, c.newResponse(code, err.Error(), nil))
	case errs.CodeTooMany:
		c.JSON(http.StatusTooManyRequests, c.newResponse(code, err.Error(), nil))
	default:
		c.InternalServerError(err.Error())
	}
}
