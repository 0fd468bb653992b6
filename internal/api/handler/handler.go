package handler

import (
    "errors"
    "strconv"
    "strings"

    "github.com/gin-gonic/gin"

    "github.com/d60-Lab/feedsync/internal/localgw"
    "github.com/d60-Lab/feedsync/internal/session"
    "github.com/d60-Lab/feedsync/pkg/response"
)

// Handler 本地网关的 HTTP 门面
type Handler struct {
    svc       *localgw.Service
    jwtSecret string
}

func NewHandler(svc *localgw.Service, jwtSecret string) *Handler {
    return &Handler{svc: svc, jwtSecret: jwtSecret}
}

// Auth 解析 Bearer 令牌并注入 user_id
func (h *Handler) Auth() gin.HandlerFunc {
    return func(c *gin.Context) {
        raw := c.GetHeader("Authorization")
        token := strings.TrimPrefix(raw, "Bearer ")
        if token == "" || token == raw {
            response.Unauthorized(c, "missing bearer token")
            c.Abort()
            return
        }
        uid, err := session.ParseUserID(h.jwtSecret, token)
        if err != nil {
            response.Unauthorized(c, err.Error())
            c.Abort()
            return
        }
        c.Set("user_id", uid)
        c.Next()
    }
}

func viewer(c *gin.Context) string {
    return c.GetString("user_id")
}

func queryInt(c *gin.Context, key string, def int) int {
    v, err := strconv.Atoi(c.DefaultQuery(key, strconv.Itoa(def)))
    if err != nil {
        return def
    }
    return v
}

// writeErr 按领域错误映射状态码
func writeErr(c *gin.Context, err error) {
    switch {
    case errors.Is(err, localgw.ErrPostNotFound),
        errors.Is(err, localgw.ErrCommentNotFound),
        errors.Is(err, localgw.ErrUserNotFound):
        response.NotFound(c, err.Error())
    case errors.Is(err, localgw.ErrNotAllowed):
        response.Forbidden(c, err.Error())
    case errors.Is(err, localgw.ErrEmptyText), errors.Is(err, localgw.ErrBadScope):
        response.BadRequest(c, err.Error())
    default:
        response.InternalError(c, err)
    }
}
