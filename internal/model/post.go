package model

import "time"

// Visibility 帖子可见范围
type Visibility string

const (
    VisibilityPublic  Visibility = "public"
    VisibilityFriends Visibility = "friends"
    VisibilityPrivate Visibility = "private"
)

// AttachmentKind 附件类型
type AttachmentKind string

const (
    AttachmentImage AttachmentKind = "image"
    AttachmentVideo AttachmentKind = "video"
)

// Attachment 媒体附件（URL 对引擎不透明）
type Attachment struct {
    URL  string         `json:"url"`
    Kind AttachmentKind `json:"kind"`
}

// Post 信息流主体
type Post struct {
    ID            string       `json:"id"`
    Author        Author       `json:"author"`
    Content       string       `json:"content"`
    Attachments   []Attachment `json:"attachments,omitempty"`
    Visibility    Visibility   `json:"visibility"`
    Latitude      float64      `json:"latitude,omitempty"`
    Longitude     float64      `json:"longitude,omitempty"`
    PlaceName     string       `json:"place_name,omitempty"`
    TotalLikes    int          `json:"total_likes"`
    TotalComments int          `json:"total_comments"`
    TotalShares   int          `json:"total_shares"`
    IsLiked       bool         `json:"is_liked"`
    // IsShared 表示该行是转发包装；SharedBy 为转发者
    IsShared bool    `json:"is_shared"`
    SharedBy *Author `json:"shared_by,omitempty"`
    // 转发包装指向原帖
    OriginalPostID string    `json:"original_post_id,omitempty"`
    GroupID        string    `json:"group_id,omitempty"`
    EventID        string    `json:"event_id,omitempty"`
    IsSaved        bool      `json:"is_saved"`
    CreatedAt      time.Time `json:"created_at"`
}

// TargetID 返回分享时应使用的帖子 ID（转发包装取原帖）
func (p *Post) TargetID() string {
    if p.IsShared && p.OriginalPostID != "" {
        return p.OriginalPostID
    }
    return p.ID
}

// CanDelete 仅作者或转发者可删除
func (p *Post) CanDelete(userID string) bool {
    if p.Author.ID == userID {
        return true
    }
    return p.IsShared && p.SharedBy != nil && p.SharedBy.ID == userID
}
