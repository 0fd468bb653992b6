package handler

import (
    "github.com/gin-gonic/gin"

    "github.com/d60-Lab/feedsync/pkg/response"
)

// Comments 查询评论页
// @Summary 帖子评论分页（一级评论及其回复）
// @Tags 评论
// @Param id path string true "帖子ID"
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response
// @Router /api/v1/posts/{id}/comments [get]
func (h *Handler) Comments(c *gin.Context) {
    page := queryInt(c, "page", 1)
    list, err := h.svc.Comments(c.Request.Context(), viewer(c), c.Param("id"), page)
    if err != nil {
        writeErr(c, err)
        return
    }
    response.Success(c, list)
}

type commentRequest struct {
    Text string `json:"text" binding:"required"`
}

// AddComment 新增评论
// @Summary 新增评论
// @Tags 评论
// @Accept json
// @Param id path string true "帖子ID"
// @Param request body commentRequest true "评论内容"
// @Success 200 {object} response.Response
// @Router /api/v1/posts/{id}/comments [post]
func (h *Handler) AddComment(c *gin.Context) {
    var req commentRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    if err := h.svc.AddComment(c.Request.Context(), viewer(c), c.Param("id"), req.Text); err != nil {
        writeErr(c, err)
        return
    }
    response.Success(c, nil)
}

type replyRequest struct {
    PostID string `json:"post_id" binding:"required"`
    Text   string `json:"text" binding:"required"`
}

// AddReply 新增回复
// @Summary 回复评论
// @Tags 评论
// @Accept json
// @Param id path string true "评论ID"
// @Param request body replyRequest true "回复内容"
// @Success 200 {object} response.Response
// @Router /api/v1/comments/{id}/replies [post]
func (h *Handler) AddReply(c *gin.Context) {
    var req replyRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    if err := h.svc.AddReply(c.Request.Context(), viewer(c), c.Param("id"), req.PostID, req.Text); err != nil {
        writeErr(c, err)
        return
    }
    response.Success(c, nil)
}

// LikeComment 评论点赞
// @Summary 点赞评论（幂等）
// @Tags 评论
// @Param id path string true "评论ID"
// @Success 200 {object} response.Response
// @Router /api/v1/comments/{id}/like [post]
func (h *Handler) LikeComment(c *gin.Context) {
    if err := h.svc.LikeComment(c.Request.Context(), viewer(c), c.Param("id")); err != nil {
        writeErr(c, err)
        return
    }
    response.Success(c, nil)
}

// UnlikeComment 取消评论点赞
// @Summary 取消评论点赞
// @Tags 评论
// @Param id path string true "评论ID"
// @Success 200 {object} response.Response
// @Router /api/v1/comments/{id}/unlike [post]
func (h *Handler) UnlikeComment(c *gin.Context) {
    if err := h.svc.UnlikeComment(c.Request.Context(), viewer(c), c.Param("id")); err != nil {
        writeErr(c, err)
        return
    }
    response.Success(c, nil)
}
