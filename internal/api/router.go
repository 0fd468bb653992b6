package api

import (
    "github.com/gin-contrib/gzip"
    "github.com/gin-gonic/gin"
    "github.com/prometheus/client_golang/prometheus/promhttp"
    "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

    "github.com/d60-Lab/feedsync/internal/api/handler"
)

// NewRouter 组装本地网关的 HTTP 路由
func NewRouter(h *handler.Handler, mode string) *gin.Engine {
    gin.SetMode(mode)
    r := gin.New()
    r.Use(gin.Recovery())
    r.Use(gzip.Gzip(gzip.DefaultCompression))
    r.Use(otelgin.Middleware("feedsync-localgw"))

    r.GET("/metrics", gin.WrapH(promhttp.Handler()))
    r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

    v1 := r.Group("/api/v1", h.Auth())
    {
        v1.GET("/feed", h.Feed)

        v1.POST("/posts", h.CreatePost)
        v1.PUT("/posts/:id", h.UpdatePost)
        v1.DELETE("/posts/:id", h.DeletePost)
        v1.POST("/posts/:id/like", h.LikePost)
        v1.POST("/posts/:id/unlike", h.UnlikePost)
        v1.POST("/posts/:id/share", h.SharePost)
        v1.POST("/posts/:id/report", h.ReportPost)
        v1.POST("/posts/:id/save", h.SavePost)
        v1.POST("/posts/:id/unsave", h.UnsavePost)
        v1.POST("/posts/:id/hide", h.HidePost)

        v1.GET("/posts/:id/comments", h.Comments)
        v1.POST("/posts/:id/comments", h.AddComment)
        v1.POST("/comments/:id/replies", h.AddReply)
        v1.POST("/comments/:id/like", h.LikeComment)
        v1.POST("/comments/:id/unlike", h.UnlikeComment)

        v1.GET("/users/:id/friends", h.Friends)
    }
    return r
}
