package engine

import (
    "go.uber.org/zap"

    "github.com/d60-Lab/feedsync/pkg/logger"
)

// EventKind 异步结果类型
type EventKind int

const (
    EventLikeConfirmed EventKind = iota + 1
    EventLikeRolledBack
    EventCommentLikeConfirmed
    EventCommentLikeRolledBack
    EventFeedReloaded
    EventFeedReloadFailed
)

// Event 异步网关调用的结果通知（非阻塞展示层提示用）
type Event struct {
    Kind      EventKind
    PostID    string
    CommentID string
    Err       error
}

// Events 只读事件通道
func (e *Engine) Events() <-chan Event { return e.events }

// emit 非阻塞发布；通道满则丢弃并告警。调用方必须持锁
func (e *Engine) emit(ev Event) {
    select {
    case e.events <- ev:
    default:
        logger.Warn("event channel full, drop", zap.Int("kind", int(ev.Kind)), zap.String("post", ev.PostID))
    }
}
