package response

import (
	"net/http"

	"touragency/internal/model"

	"github.com/gin-gonic/gin"
)

const (
	CodeSuccess      = 0
	CodeParamError   = 400
	CodeUnauthorized = 401
	CodeForbidden    = 403
	CodeNotFound     = 404
	CodeConflict     = 409
	CodeServerError  = 500
)

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

func Error(c *gin.Context, httpStatus, code int, message string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
	})
}

func ParamError(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, CodeParamError, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, CodeUnauthorized, message)
}

func ServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, CodeServerError, message)
}

// DomainError 按领域错误分类翻译 HTTP 状态码
//
//	NotFound -> 404, Unauthorized -> 403, InvalidOperation -> 409,
//	Validation -> 400, 其余 -> 500
func DomainError(c *gin.Context, err error) {
	switch model.KindOf(err) {
	case model.ErrKindNotFound:
		Error(c, http.StatusNotFound, CodeNotFound, err.Error())
	case model.ErrKindUnauthorized:
		Error(c, http.StatusForbidden, CodeForbidden, err.Error())
	case model.ErrKindInvalidOperation:
		Error(c, http.StatusConflict, CodeConflict, err.Error())
	case model.ErrKindValidation:
		Error(c, http.StatusBadRequest, CodeParamError, err.Error())
	default:
		ServerError(c, err.Error())
	}
}
