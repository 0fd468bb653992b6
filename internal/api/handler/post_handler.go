package handler

import (
    "github.com/gin-gonic/gin"

    "github.com/d60-Lab/feedsync/internal/gateway"
    "github.com/d60-Lab/feedsync/pkg/response"
)

// LikePost 点赞
// @Summary 点赞帖子（幂等）
// @Tags 帖子
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response
// @Router /api/v1/posts/{id}/like [post]
func (h *Handler) LikePost(c *gin.Context) {
    if err := h.svc.Like(c.Request.Context(), viewer(c), c.Param("id")); err != nil {
        writeErr(c, err)
        return
    }
    response.Success(c, nil)
}

// UnlikePost 取消点赞
// @Summary 取消点赞
// @Tags 帖子
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response
// @Router /api/v1/posts/{id}/unlike [post]
func (h *Handler) UnlikePost(c *gin.Context) {
    if err := h.svc.Unlike(c.Request.Context(), viewer(c), c.Param("id")); err != nil {
        writeErr(c, err)
        return
    }
    response.Success(c, nil)
}

type shareRequest struct {
    Caption string             `json:"caption"`
    Scope   gateway.ShareScope `json:"scope"`
}

// SharePost 分享
// @Summary 分享帖子（组/活动/用户，最多一个范围）
// @Tags 帖子
// @Accept json
// @Param id path string true "帖子ID"
// @Param request body shareRequest true "分享信息"
// @Success 200 {object} response.Response
// @Router /api/v1/posts/{id}/share [post]
func (h *Handler) SharePost(c *gin.Context) {
    var req shareRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    in := gateway.ShareInput{PostID: c.Param("id"), Caption: req.Caption, Scope: req.Scope}
    if err := h.svc.Share(c.Request.Context(), viewer(c), in); err != nil {
        writeErr(c, err)
        return
    }
    response.Success(c, nil)
}

type reportRequest struct {
    ReportTypeID string `json:"report_type_id" binding:"required"`
    Description  string `json:"description"`
}

// ReportPost 举报
// @Summary 举报帖子
// @Tags 帖子
// @Accept json
// @Param id path string true "帖子ID"
// @Param request body reportRequest true "举报信息"
// @Success 200 {object} response.Response
// @Router /api/v1/posts/{id}/report [post]
func (h *Handler) ReportPost(c *gin.Context) {
    var req reportRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    in := gateway.ReportInput{PostID: c.Param("id"), ReportTypeID: req.ReportTypeID, Description: req.Description}
    if err := h.svc.Report(c.Request.Context(), viewer(c), in); err != nil {
        writeErr(c, err)
        return
    }
    response.Success(c, nil)
}

// SavePost 收藏
// @Summary 收藏帖子（幂等）
// @Tags 帖子
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response
// @Router /api/v1/posts/{id}/save [post]
func (h *Handler) SavePost(c *gin.Context) {
    if err := h.svc.Save(c.Request.Context(), viewer(c), c.Param("id")); err != nil {
        writeErr(c, err)
        return
    }
    response.Success(c, nil)
}

// UnsavePost 取消收藏
// @Summary 取消收藏
// @Tags 帖子
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response
// @Router /api/v1/posts/{id}/unsave [post]
func (h *Handler) UnsavePost(c *gin.Context) {
    if err := h.svc.Unsave(c.Request.Context(), viewer(c), c.Param("id")); err != nil {
        writeErr(c, err)
        return
    }
    response.Success(c, nil)
}

// HidePost 隐藏
// @Summary 隐藏帖子
// @Tags 帖子
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response
// @Router /api/v1/posts/{id}/hide [post]
func (h *Handler) HidePost(c *gin.Context) {
    if err := h.svc.Hide(c.Request.Context(), viewer(c), c.Param("id")); err != nil {
        writeErr(c, err)
        return
    }
    response.Success(c, nil)
}
