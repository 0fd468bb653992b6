package model

import "time"

// Comment 帖子评论；Replies 为二级回复（引擎只索引两层）
type Comment struct {
    ID         string    `json:"id"`
    PostID     string    `json:"post_id"`
    ParentID   string    `json:"parent_id,omitempty"`
    Author     Author    `json:"author"`
    Text       string    `json:"text"`
    TotalLikes int       `json:"total_likes"`
    IsLiked    bool      `json:"is_liked"`
    Replies    []Comment `json:"replies,omitempty"`
    CreatedAt  time.Time `json:"created_at"`

    // ShowReplyInput 仅 UI 状态，不落库
    ShowReplyInput bool `json:"-"`
}
