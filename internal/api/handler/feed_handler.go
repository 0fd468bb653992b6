package handler

import (
    "github.com/gin-gonic/gin"

    "github.com/d60-Lab/feedsync/internal/gateway"
    "github.com/d60-Lab/feedsync/internal/model"
    "github.com/d60-Lab/feedsync/pkg/response"
)

// Feed 查询一页信息流
// @Summary 信息流分页
// @Tags 信息流
// @Param filter query string false "可见范围过滤" Enums(public, friends, private)
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response
// @Router /api/v1/feed [get]
func (h *Handler) Feed(c *gin.Context) {
    filter := model.Visibility(c.Query("filter"))
    page := queryInt(c, "page", 1)
    fp, err := h.svc.FeedPage(c.Request.Context(), viewer(c), filter, page)
    if err != nil {
        writeErr(c, err)
        return
    }
    response.SuccessPage(c, fp.Posts, fp.Pagination)
}

// CreatePost 发帖
// @Summary 发帖
// @Tags 帖子
// @Accept json
// @Param request body gateway.PostInput true "帖子内容"
// @Success 200 {object} response.Response
// @Router /api/v1/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
    var in gateway.PostInput
    if err := c.ShouldBindJSON(&in); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    if in.Visibility == "" {
        in.Visibility = model.VisibilityPublic
    }
    if err := h.svc.Create(c.Request.Context(), viewer(c), in); err != nil {
        writeErr(c, err)
        return
    }
    response.Success(c, nil)
}

// UpdatePost 编辑帖子
// @Summary 编辑帖子
// @Tags 帖子
// @Accept json
// @Param id path string true "帖子ID"
// @Param request body gateway.PostInput true "帖子内容"
// @Success 200 {object} response.Response
// @Router /api/v1/posts/{id} [put]
func (h *Handler) UpdatePost(c *gin.Context) {
    var in gateway.PostInput
    if err := c.ShouldBindJSON(&in); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    if err := h.svc.Update(c.Request.Context(), viewer(c), c.Param("id"), in); err != nil {
        writeErr(c, err)
        return
    }
    response.Success(c, nil)
}

// DeletePost 删除帖子
// @Summary 删除帖子（仅作者或转发者）
// @Tags 帖子
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response
// @Router /api/v1/posts/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
    if err := h.svc.Delete(c.Request.Context(), viewer(c), c.Param("id")); err != nil {
        writeErr(c, err)
        return
    }
    response.Success(c, nil)
}

// Friends 好友列表（好友浮层数据源）
// @Summary 好友列表
// @Tags 用户
// @Param id path string true "用户ID"
// @Success 200 {object} response.Response
// @Router /api/v1/users/{id}/friends [get]
func (h *Handler) Friends(c *gin.Context) {
    list, err := h.svc.Friends(c.Request.Context(), c.Param("id"))
    if err != nil {
        writeErr(c, err)
        return
    }
    response.Success(c, list)
}
