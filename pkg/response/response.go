package response

import (
    "net/http"

    "github.com/gin-gonic/gin"

    "github.com/d60-Lab/feedsync/internal/model"
)

// Response 统一返回信封；引擎只认 status_code == 200
type Response struct {
    StatusCode int               `json:"status_code"`
    Message    string            `json:"message,omitempty"`
    Payload    any               `json:"payload"`
    Pagination *model.Pagination `json:"pagination,omitempty"`
}

func Success(c *gin.Context, payload any) {
    c.JSON(http.StatusOK, Response{StatusCode: http.StatusOK, Payload: payload})
}

// SuccessPage 携带分页元数据的成功返回
func SuccessPage(c *gin.Context, payload any, p model.Pagination) {
    c.JSON(http.StatusOK, Response{StatusCode: http.StatusOK, Payload: payload, Pagination: &p})
}

func BadRequest(c *gin.Context, msg string) {
    c.JSON(http.StatusBadRequest, Response{StatusCode: http.StatusBadRequest, Message: msg})
}

func Unauthorized(c *gin.Context, msg string) {
    c.JSON(http.StatusUnauthorized, Response{StatusCode: http.StatusUnauthorized, Message: msg})
}

func NotFound(c *gin.Context, msg string) {
    c.JSON(http.StatusNotFound, Response{StatusCode: http.StatusNotFound, Message: msg})
}

func Forbidden(c *gin.Context, msg string) {
    c.JSON(http.StatusForbidden, Response{StatusCode: http.StatusForbidden, Message: msg})
}

func InternalError(c *gin.Context, err error) {
    c.JSON(http.StatusInternalServerError, Response{StatusCode: http.StatusInternalServerError, Message: err.Error()})
}
