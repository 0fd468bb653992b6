package engine

import (
    "context"

    "go.uber.org/zap"

    "github.com/d60-Lab/feedsync/internal/model"
    "github.com/d60-Lab/feedsync/pkg/logger"
)

// LoadFirstPage 按过滤器整体替换 Feed 缓存并复位分页。
// 线程缓存与草稿一并清空：换流即换上下文。
func (e *Engine) LoadFirstPage(ctx context.Context, filter model.Visibility) error {
    e.mu.Lock()
    if e.closed {
        e.mu.Unlock()
        return ErrClosed
    }
    e.loadSeq++
    seq := e.loadSeq
    e.mu.Unlock()

    fp, err := e.gw.FetchFeedPage(ctx, filter, 1)
    if err != nil {
        metricGatewayFailure("fetch_feed")
        return err
    }

    e.mu.Lock()
    defer e.mu.Unlock()
    if e.closed {
        return ErrClosed
    }
    // 期间有更新的加载发起，本响应作废
    if seq != e.loadSeq {
        return ErrStaleResponse
    }
    e.applyFirstPageLocked(fp, filter, true)
    return nil
}

// LoadNextPage 在当前过滤器下追加下一页；同一时刻只允许一个在途调用。
func (e *Engine) LoadNextPage(ctx context.Context) error {
    e.mu.Lock()
    if e.closed {
        e.mu.Unlock()
        return ErrClosed
    }
    if e.loadingMore {
        e.mu.Unlock()
        return ErrLoadInFlight
    }
    if e.totalRecords > 0 && len(e.feed) >= e.totalRecords {
        e.mu.Unlock()
        return ErrNoMorePages
    }
    filter := e.filter
    next := e.page + 1
    seq := e.loadSeq
    e.loadingMore = true
    e.mu.Unlock()

    fp, err := e.gw.FetchFeedPage(ctx, filter, next)

    e.mu.Lock()
    defer e.mu.Unlock()
    e.loadingMore = false
    if e.closed {
        return ErrClosed
    }
    if err != nil {
        metricGatewayFailure("fetch_feed")
        return err
    }
    // 过滤器在途中被切换：丢弃旧流的响应
    if seq != e.loadSeq || filter != e.filter {
        logger.Debug("discard stale feed page", zap.String("filter", string(filter)), zap.Int("page", next))
        return ErrStaleResponse
    }
    e.appendDedupLocked(fp.Posts)
    e.page = next
    if fp.Pagination.TotalRecords > 0 {
        e.totalRecords = fp.Pagination.TotalRecords
    }
    return nil
}

// applyFirstPageLocked 整体替换缓存；clearAux 控制是否同时清线程/草稿
// （过滤器切换清，成员变更后的权威刷新不清）。
func (e *Engine) applyFirstPageLocked(fp *model.FeedPage, filter model.Visibility, clearAux bool) {
    e.feed = dedupPosts(fp.Posts)
    e.filter = filter
    e.page = 1
    e.totalRecords = fp.Pagination.TotalRecords
    e.loadingMore = false
    if clearAux {
        e.threads = make(map[string]*threadState)
        e.commentDrafts = make(map[string]string)
        e.replyDrafts = make(map[replyKey]string)
    }
}

// appendDedupLocked 追加一页，按 ID 去重（并发分页竞态可能重发同一帖）
func (e *Engine) appendDedupLocked(posts []model.Post) {
    seen := make(map[string]struct{}, len(e.feed))
    for i := range e.feed {
        seen[e.feed[i].ID] = struct{}{}
    }
    for _, p := range posts {
        if _, dup := seen[p.ID]; dup {
            continue
        }
        seen[p.ID] = struct{}{}
        e.feed = append(e.feed, p)
    }
}

func dedupPosts(posts []model.Post) []model.Post {
    out := make([]model.Post, 0, len(posts))
    seen := make(map[string]struct{}, len(posts))
    for _, p := range posts {
        if _, dup := seen[p.ID]; dup {
            continue
        }
        seen[p.ID] = struct{}{}
        out = append(out, p)
    }
    return out
}

// reloadFeed 成员变更（删除/隐藏/收藏/发帖）后的权威刷新：
// 重新拉取当前过滤器第一页并整体替换，线程与草稿按 ID 关联自然保留。
func (e *Engine) reloadFeed(ctx context.Context) error {
    e.mu.Lock()
    if e.closed {
        e.mu.Unlock()
        return ErrClosed
    }
    filter := e.filter
    e.loadSeq++
    seq := e.loadSeq
    e.mu.Unlock()

    fp, err := e.gw.FetchFeedPage(ctx, filter, 1)

    e.mu.Lock()
    defer e.mu.Unlock()
    if e.closed {
        return ErrClosed
    }
    if err != nil {
        metricGatewayFailure("fetch_feed")
        e.emit(Event{Kind: EventFeedReloadFailed, Err: err})
        return err
    }
    if seq != e.loadSeq {
        return ErrStaleResponse
    }
    e.applyFirstPageLocked(fp, filter, false)
    metricFeedReload()
    e.emit(Event{Kind: EventFeedReloaded})
    return nil
}

// Posts 返回渲染用快照（副本，读者不得回写）
func (e *Engine) Posts() []model.Post {
    e.mu.Lock()
    defer e.mu.Unlock()
    out := make([]model.Post, len(e.feed))
    copy(out, e.feed)
    return out
}

// Filter 当前过滤器
func (e *Engine) Filter() model.Visibility {
    e.mu.Lock()
    defer e.mu.Unlock()
    return e.filter
}

// Page 当前已加载页码
func (e *Engine) Page() int {
    e.mu.Lock()
    defer e.mu.Unlock()
    return e.page
}

// TotalRecords 最近一次权威拉取的总条数
func (e *Engine) TotalRecords() int {
    e.mu.Lock()
    defer e.mu.Unlock()
    return e.totalRecords
}

// HasMore 是否还有未加载的页
func (e *Engine) HasMore() bool {
    e.mu.Lock()
    defer e.mu.Unlock()
    return e.totalRecords > 0 && len(e.feed) < e.totalRecords
}
