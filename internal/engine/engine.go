package engine

import (
    "errors"
    "sync"
    "time"

    "github.com/go-playground/validator/v10"

    "github.com/d60-Lab/feedsync/internal/gateway"
    "github.com/d60-Lab/feedsync/internal/model"
)

var (
    ErrClosed        = errors.New("engine closed")
    ErrLoadInFlight  = errors.New("page load already in flight")
    ErrNoMorePages   = errors.New("no more data")
    ErrStaleResponse = errors.New("stale response discarded")
    ErrUnknownPost   = errors.New("post not in feed cache")
    ErrUnknownComment = errors.New("comment not in thread cache")
    ErrThreadNotLoaded = errors.New("thread not loaded")
    ErrEmptyDraft    = errors.New("draft is empty")
    ErrNotAllowed    = errors.New("operation not allowed for current user")
)

// confirmTimeout 异步确认调用的上限（与 FanReplicator 落地超时一致的量级）
const confirmTimeout = 5 * time.Second

// replyKey 回复草稿的复合键（帖子 ID + 评论 ID）
type replyKey struct {
    postID    string
    commentID string
}

// Engine 信息流同步引擎：Feed/Thread 缓存的唯一写者。
// 乐观写在调用时同步落缓存，网关确认异步完成；
// 失败回滚与确认结果通过 Events 通道对外发布。
type Engine struct {
    mu       sync.Mutex
    gw       gateway.Gateway
    userID   string
    validate *validator.Validate

    // Feed Cache
    feed         []model.Post
    filter       model.Visibility
    page         int
    totalRecords int
    loadSeq      uint64 // 过滤器切换代数，旧响应据此丢弃
    loadingMore  bool

    // Thread Cache（按帖子 ID 索引，而非列表位置）
    threads map[string]*threadState

    // Composition State
    commentDrafts map[string]string
    replyDrafts   map[replyKey]string

    overlay Overlay

    events chan Event
    closed bool
}

// New 构造引擎；userID 为当前用户（身份由外部会话层提供）
func New(gw gateway.Gateway, userID string) *Engine {
    return &Engine{
        gw:            gw,
        userID:        userID,
        validate:      validator.New(),
        threads:       make(map[string]*threadState),
        commentDrafts: make(map[string]string),
        replyDrafts:   make(map[replyKey]string),
        events:        make(chan Event, 256),
    }
}

// Close 停止引擎：所有在途网关调用的后续步骤变为 no-op
func (e *Engine) Close() {
    e.mu.Lock()
    e.closed = true
    e.mu.Unlock()
}

// UserID 当前用户
func (e *Engine) UserID() string { return e.userID }

// findPost 按 ID 定位缓存内帖子；调用方必须持锁
func (e *Engine) findPost(postID string) *model.Post {
    for i := range e.feed {
        if e.feed[i].ID == postID {
            return &e.feed[i]
        }
    }
    return nil
}

// removePost 按 ID 删除帖子及其线程/草稿；调用方必须持锁
func (e *Engine) removePost(postID string) bool {
    for i := range e.feed {
        if e.feed[i].ID == postID {
            e.feed = append(e.feed[:i], e.feed[i+1:]...)
            delete(e.threads, postID)
            delete(e.commentDrafts, postID)
            for k := range e.replyDrafts {
                if k.postID == postID {
                    delete(e.replyDrafts, k)
                }
            }
            if e.totalRecords > 0 {
                e.totalRecords--
            }
            return true
        }
    }
    return false
}
