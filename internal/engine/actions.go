package engine

import (
    "context"

    "github.com/d60-Lab/feedsync/internal/gateway"
    "github.com/d60-Lab/feedsync/internal/model"
)

// 两阶段操作统一模式：本地前置校验 -> 调网关 -> 成功后执行声明的副作用。
// 删除/隐藏/收藏/发帖/编辑改变可见集合的成员，成功后做权威刷新；
// 举报不影响该行，只关闭浮层。

// SharePost 分享 postID 指向的内容；转发包装自动解析到原帖。
// 成功后权威刷新，让新包装行按服务端顺序入列。
func (e *Engine) SharePost(ctx context.Context, postID, caption string, scope gateway.ShareScope) error {
    e.mu.Lock()
    if e.closed {
        e.mu.Unlock()
        return ErrClosed
    }
    p := e.findPost(postID)
    if p == nil {
        e.mu.Unlock()
        return ErrUnknownPost
    }
    in := gateway.ShareInput{PostID: p.TargetID(), Caption: caption, Scope: scope}
    e.mu.Unlock()

    if err := e.validate.Struct(in); err != nil {
        return err
    }
    if err := e.gw.SharePost(ctx, in); err != nil {
        metricGatewayFailure("share_post")
        return err
    }

    e.mu.Lock()
    if !e.closed {
        if p := e.findPost(postID); p != nil {
            p.TotalShares++
        }
        e.closeOverlayLocked()
    }
    e.mu.Unlock()
    return e.reloadFeed(ctx)
}

// ReportPost 举报；成功后该行保持原样，仅关闭浮层
func (e *Engine) ReportPost(ctx context.Context, postID, reportTypeID, description string) error {
    e.mu.Lock()
    if e.closed {
        e.mu.Unlock()
        return ErrClosed
    }
    if e.findPost(postID) == nil {
        e.mu.Unlock()
        return ErrUnknownPost
    }
    e.mu.Unlock()

    in := gateway.ReportInput{PostID: postID, ReportTypeID: reportTypeID, Description: description}
    if err := e.validate.Struct(in); err != nil {
        return err
    }
    if err := e.gw.ReportPost(ctx, in); err != nil {
        metricGatewayFailure("report_post")
        return err
    }

    e.mu.Lock()
    if !e.closed {
        e.closeOverlayLocked()
    }
    e.mu.Unlock()
    return nil
}

// SavePost 收藏；改变可见集合成员，成功后权威刷新
func (e *Engine) SavePost(ctx context.Context, postID string) error {
    return e.toggleSave(ctx, postID, true)
}

// UnsavePost 取消收藏
func (e *Engine) UnsavePost(ctx context.Context, postID string) error {
    return e.toggleSave(ctx, postID, false)
}

func (e *Engine) toggleSave(ctx context.Context, postID string, save bool) error {
    e.mu.Lock()
    if e.closed {
        e.mu.Unlock()
        return ErrClosed
    }
    if e.findPost(postID) == nil {
        e.mu.Unlock()
        return ErrUnknownPost
    }
    e.mu.Unlock()

    var err error
    if save {
        err = e.gw.SavePost(ctx, postID)
    } else {
        err = e.gw.UnsavePost(ctx, postID)
    }
    if err != nil {
        metricGatewayFailure("save_post")
        return err
    }

    e.mu.Lock()
    if !e.closed {
        if p := e.findPost(postID); p != nil {
            p.IsSaved = save
        }
    }
    e.mu.Unlock()
    return e.reloadFeed(ctx)
}

// HidePost 隐藏该行；成功后权威刷新
func (e *Engine) HidePost(ctx context.Context, postID string) error {
    e.mu.Lock()
    if e.closed {
        e.mu.Unlock()
        return ErrClosed
    }
    if e.findPost(postID) == nil {
        e.mu.Unlock()
        return ErrUnknownPost
    }
    e.mu.Unlock()

    if err := e.gw.HidePost(ctx, postID); err != nil {
        metricGatewayFailure("hide_post")
        return err
    }
    return e.reloadFeed(ctx)
}

// DeletePost 删除。不可逆，绝不乐观执行：确认成功后才移除本地行。
// 前置校验：仅作者或转发者可删。
func (e *Engine) DeletePost(ctx context.Context, postID string) error {
    e.mu.Lock()
    if e.closed {
        e.mu.Unlock()
        return ErrClosed
    }
    p := e.findPost(postID)
    if p == nil {
        e.mu.Unlock()
        return ErrUnknownPost
    }
    if !p.CanDelete(e.userID) {
        e.mu.Unlock()
        return ErrNotAllowed
    }
    e.mu.Unlock()

    if err := e.gw.DeletePost(ctx, postID); err != nil {
        metricGatewayFailure("delete_post")
        return err
    }

    e.mu.Lock()
    if !e.closed {
        e.removePost(postID)
        e.closeOverlayLocked()
    }
    e.mu.Unlock()
    return e.reloadFeed(ctx)
}

// CreatePost 发帖；成功后权威刷新让新帖按服务端顺序入列
func (e *Engine) CreatePost(ctx context.Context, in gateway.PostInput) error {
    if in.Visibility == "" {
        in.Visibility = model.VisibilityPublic
    }
    if err := e.validate.Struct(in); err != nil {
        return err
    }
    if err := e.gw.CreatePost(ctx, in); err != nil {
        metricGatewayFailure("create_post")
        return err
    }

    e.mu.Lock()
    if !e.closed {
        e.closeOverlayLocked()
    }
    e.mu.Unlock()
    return e.reloadFeed(ctx)
}

// UpdatePost 编辑自己的帖子；成功后本地打补丁并关闭浮层
func (e *Engine) UpdatePost(ctx context.Context, postID string, in gateway.PostInput) error {
    e.mu.Lock()
    if e.closed {
        e.mu.Unlock()
        return ErrClosed
    }
    p := e.findPost(postID)
    if p == nil {
        e.mu.Unlock()
        return ErrUnknownPost
    }
    if p.Author.ID != e.userID {
        e.mu.Unlock()
        return ErrNotAllowed
    }
    e.mu.Unlock()

    if err := e.validate.Struct(in); err != nil {
        return err
    }
    if err := e.gw.UpdatePost(ctx, postID, in); err != nil {
        metricGatewayFailure("update_post")
        return err
    }

    e.mu.Lock()
    if !e.closed {
        if p := e.findPost(postID); p != nil {
            p.Content = in.Content
            p.Visibility = in.Visibility
            p.Attachments = in.Attachments
            p.Latitude = in.Latitude
            p.Longitude = in.Longitude
            p.PlaceName = in.PlaceName
        }
        e.closeOverlayLocked()
    }
    e.mu.Unlock()
    return nil
}
