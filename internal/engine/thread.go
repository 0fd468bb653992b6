package engine

import (
    "context"
    "strings"

    "github.com/d60-Lab/feedsync/internal/model"
)

// threadState 单帖评论线程（show/loading/comments）
type threadState struct {
    show     bool
    loading  bool
    loaded   bool
    comments []commentNode
}

// commentNode 缓存内评论节点；两层索引：评论 -> 回复
type commentNode struct {
    c       model.Comment
    replies []model.Comment
}

// ThreadSnapshot 渲染用线程快照
type ThreadSnapshot struct {
    Show     bool
    Loading  bool
    Comments []CommentView
}

// OpenThread 打开/收起线程。已加载只翻转可见性，绝不隐式重拉；
// 首次打开先置 loading 再拉取。
func (e *Engine) OpenThread(ctx context.Context, postID string) error {
    e.mu.Lock()
    if e.closed {
        e.mu.Unlock()
        return ErrClosed
    }
    if e.findPost(postID) == nil {
        e.mu.Unlock()
        return ErrUnknownPost
    }
    if t, ok := e.threads[postID]; ok {
        if t.loading {
            e.mu.Unlock()
            return nil // 首拉在途，忽略重复打开
        }
        t.show = !t.show
        e.mu.Unlock()
        return nil
    }
    t := &threadState{loading: true}
    e.threads[postID] = t
    e.mu.Unlock()

    comments, err := e.gw.FetchComments(ctx, postID, 1)

    e.mu.Lock()
    defer e.mu.Unlock()
    if e.closed {
        return ErrClosed
    }
    cur, ok := e.threads[postID]
    if !ok || cur != t {
        return ErrStaleResponse // 期间过滤器切换或帖子被删
    }
    cur.loading = false
    if err != nil {
        metricGatewayFailure("fetch_comments")
        // 首拉失败：移除占位项，下次打开重试
        delete(e.threads, postID)
        return err
    }
    cur.comments = buildThread(comments)
    cur.loaded = true
    cur.show = true
    return nil
}

// reloadThread 强制重拉并整体替换评论列表（评论/回复提交成功后调用）。
// 失败时保留旧列表，只清 loading。
func (e *Engine) reloadThread(ctx context.Context, postID string) error {
    e.mu.Lock()
    if e.closed {
        e.mu.Unlock()
        return ErrClosed
    }
    t, ok := e.threads[postID]
    if !ok {
        t = &threadState{}
        e.threads[postID] = t
    }
    t.loading = true
    e.mu.Unlock()

    comments, err := e.gw.FetchComments(ctx, postID, 1)

    e.mu.Lock()
    defer e.mu.Unlock()
    if e.closed {
        return ErrClosed
    }
    cur, ok := e.threads[postID]
    if !ok || cur != t {
        return ErrStaleResponse
    }
    cur.loading = false
    if err != nil {
        metricGatewayFailure("fetch_comments")
        return err
    }
    cur.comments = buildThread(comments)
    cur.loaded = true
    cur.show = true
    return nil
}

// ToggleReplyInput 翻转单条评论的回复输入框，不影响兄弟节点
func (e *Engine) ToggleReplyInput(postID, commentID string) error {
    e.mu.Lock()
    defer e.mu.Unlock()
    if e.closed {
        return ErrClosed
    }
    t, ok := e.threads[postID]
    if !ok || !t.loaded {
        return ErrThreadNotLoaded
    }
    for i := range t.comments {
        if t.comments[i].c.ID == commentID {
            t.comments[i].c.ShowReplyInput = !t.comments[i].c.ShowReplyInput
            return nil
        }
    }
    return ErrUnknownComment
}

// SubmitComment 提交当前帖的评论草稿。插入不走乐观路径：
// 成功后整体重拉线程，重拉成功才清草稿。
func (e *Engine) SubmitComment(ctx context.Context, postID string) error {
    e.mu.Lock()
    if e.closed {
        e.mu.Unlock()
        return ErrClosed
    }
    if e.findPost(postID) == nil {
        e.mu.Unlock()
        return ErrUnknownPost
    }
    text := strings.TrimSpace(e.commentDrafts[postID])
    if text == "" {
        e.mu.Unlock()
        return ErrEmptyDraft
    }
    e.mu.Unlock()

    if err := e.gw.AddComment(ctx, postID, text); err != nil {
        metricGatewayFailure("add_comment")
        return err // 草稿保留，可重试
    }
    if err := e.reloadThread(ctx, postID); err != nil {
        return err // 提交已落地但未确认展示，草稿同样保留
    }

    e.mu.Lock()
    defer e.mu.Unlock()
    if e.closed {
        return ErrClosed
    }
    delete(e.commentDrafts, postID)
    if p := e.findPost(postID); p != nil {
        p.TotalComments++
    }
    return nil
}

// SubmitReply 提交 (postID, commentID) 复合键下的回复草稿
func (e *Engine) SubmitReply(ctx context.Context, postID, commentID string) error {
    key := replyKey{postID: postID, commentID: commentID}

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
    found := false
    for i := range t.comments {
        if t.comments[i].c.ID == commentID {
            found = true
            break
        }
    }
    if !found {
        e.mu.Unlock()
        return ErrUnknownComment
    }
    text := strings.TrimSpace(e.replyDrafts[key])
    if text == "" {
        e.mu.Unlock()
        return ErrEmptyDraft
    }
    e.mu.Unlock()

    if err := e.gw.AddReply(ctx, commentID, postID, text); err != nil {
        metricGatewayFailure("add_reply")
        return err
    }
    if err := e.reloadThread(ctx, postID); err != nil {
        return err
    }

    e.mu.Lock()
    defer e.mu.Unlock()
    if e.closed {
        return ErrClosed
    }
    delete(e.replyDrafts, key)
    if p := e.findPost(postID); p != nil {
        p.TotalComments++
    }
    return nil
}

// Thread 返回线程快照；未加载返回 ok=false
func (e *Engine) Thread(postID string) (ThreadSnapshot, bool) {
    e.mu.Lock()
    defer e.mu.Unlock()
    t, ok := e.threads[postID]
    if !ok {
        return ThreadSnapshot{}, false
    }
    snap := ThreadSnapshot{Show: t.show, Loading: t.loading}
    snap.Comments = make([]CommentView, 0, len(t.comments))
    for i := range t.comments {
        cv := CommentView{Comment: t.comments[i].c}
        if n := len(t.comments[i].replies); n > 0 {
            cv.Replies = make([]model.Comment, n)
            copy(cv.Replies, t.comments[i].replies)
        }
        snap.Comments = append(snap.Comments, cv)
    }
    return snap, true
}
