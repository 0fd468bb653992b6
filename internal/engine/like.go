package engine

import (
    "context"

    "go.uber.org/zap"

    "github.com/d60-Lab/feedsync/internal/model"
    "github.com/d60-Lab/feedsync/pkg/logger"
)

// likeSnapshot 切换前的点赞状态，失败回滚用
type likeSnapshot struct {
    liked bool
    likes int
}

// ToggleLike 帖子点赞切换。本地写同步完成（调用顺序即生效顺序），
// 网关确认异步；失败时回滚到切换前的值并发布事件。
func (e *Engine) ToggleLike(postID string) error {
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
    pre := likeSnapshot{liked: p.IsLiked, likes: p.TotalLikes}
    p.IsLiked = !pre.liked
    if p.IsLiked {
        p.TotalLikes = pre.likes + 1
    } else {
        p.TotalLikes = pre.likes - 1
    }
    nowLiked := p.IsLiked
    e.mu.Unlock()
    metricOptimisticApply("toggle_like")

    go e.confirmPostLike(postID, nowLiked, pre)
    return nil
}

func (e *Engine) confirmPostLike(postID string, liked bool, pre likeSnapshot) {
    ctx, cancel := context.WithTimeout(context.Background(), confirmTimeout)
    defer cancel()

    var err error
    if liked {
        err = e.gw.LikePost(ctx, postID)
    } else {
        err = e.gw.UnlikePost(ctx, postID)
    }

    e.mu.Lock()
    defer e.mu.Unlock()
    if e.closed {
        return
    }
    if err == nil {
        e.emit(Event{Kind: EventLikeConfirmed, PostID: postID})
        return
    }
    metricGatewayFailure("toggle_like")
    // 回滚到该次切换前的精确值
    if p := e.findPost(postID); p != nil {
        p.IsLiked = pre.liked
        p.TotalLikes = pre.likes
        metricRollback("toggle_like")
    }
    logger.Warn("like toggle rolled back", zap.String("post", postID), zap.Error(err))
    e.emit(Event{Kind: EventLikeRolledBack, PostID: postID, Err: err})
}

// ToggleCommentLike 评论点赞切换（含二级回复），规则与帖子一致
func (e *Engine) ToggleCommentLike(postID, commentID string) error {
    e.mu.Lock()
    if e.closed {
        e.mu.Unlock()
        return ErrClosed
    }
    t, ok := e.threads[postID]
    if !ok || !t.loaded {
        e.mu.Unlock()
        return ErrThreadNotLoaded
    }
    c := findComment(t, commentID)
    if c == nil {
        e.mu.Unlock()
        return ErrUnknownComment
    }
    pre := likeSnapshot{liked: c.IsLiked, likes: c.TotalLikes}
    c.IsLiked = !pre.liked
    if c.IsLiked {
        c.TotalLikes = pre.likes + 1
    } else {
        c.TotalLikes = pre.likes - 1
    }
    nowLiked := c.IsLiked
    e.mu.Unlock()
    metricOptimisticApply("toggle_comment_like")

    go e.confirmCommentLike(postID, commentID, nowLiked, pre)
    return nil
}

func (e *Engine) confirmCommentLike(postID, commentID string, liked bool, pre likeSnapshot) {
    ctx, cancel := context.WithTimeout(context.Background(), confirmTimeout)
    defer cancel()

    var err error
    if liked {
        err = e.gw.LikeComment(ctx, commentID)
    } else {
        err = e.gw.UnlikeComment(ctx, commentID)
    }

    e.mu.Lock()
    defer e.mu.Unlock()
    if e.closed {
        return
    }
    if err == nil {
        e.emit(Event{Kind: EventCommentLikeConfirmed, PostID: postID, CommentID: commentID})
        return
    }
    metricGatewayFailure("toggle_comment_like")
    if t, ok := e.threads[postID]; ok {
        if c := findComment(t, commentID); c != nil {
            c.IsLiked = pre.liked
            c.TotalLikes = pre.likes
            metricRollback("toggle_comment_like")
        }
    }
    logger.Warn("comment like toggle rolled back",
        zap.String("post", postID), zap.String("comment", commentID), zap.Error(err))
    e.emit(Event{Kind: EventCommentLikeRolledBack, PostID: postID, CommentID: commentID, Err: err})
}

// findComment 在两层结构中定位评论；调用方必须持锁
func findComment(t *threadState, commentID string) *model.Comment {
    for i := range t.comments {
        if t.comments[i].c.ID == commentID {
            return &t.comments[i].c
        }
        for j := range t.comments[i].replies {
            if t.comments[i].replies[j].ID == commentID {
                return &t.comments[i].replies[j]
            }
        }
    }
    return nil
}
