package engine

// 输入缓冲：评论草稿按帖子 ID，回复草稿按 (帖子, 评论) 复合键。
// 只有确认提交成功才清空；失败时用户输入原样保留。

// SetCommentDraft 写入评论草稿
func (e *Engine) SetCommentDraft(postID, text string) {
    e.mu.Lock()
    defer e.mu.Unlock()
    if e.closed {
        return
    }
    if text == "" {
        delete(e.commentDrafts, postID)
        return
    }
    e.commentDrafts[postID] = text
}

// CommentDraft 读取评论草稿
func (e *Engine) CommentDraft(postID string) string {
    e.mu.Lock()
    defer e.mu.Unlock()
    return e.commentDrafts[postID]
}

// SetReplyDraft 写入回复草稿
func (e *Engine) SetReplyDraft(postID, commentID, text string) {
    e.mu.Lock()
    defer e.mu.Unlock()
    if e.closed {
        return
    }
    key := replyKey{postID: postID, commentID: commentID}
    if text == "" {
        delete(e.replyDrafts, key)
        return
    }
    e.replyDrafts[key] = text
}

// ReplyDraft 读取回复草稿
func (e *Engine) ReplyDraft(postID, commentID string) string {
    e.mu.Lock()
    defer e.mu.Unlock()
    return e.replyDrafts[replyKey{postID: postID, commentID: commentID}]
}
