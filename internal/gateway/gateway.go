package gateway

import (
    "context"
    "errors"
    "fmt"

    "github.com/d60-Lab/feedsync/internal/model"
)

var ErrNotFound = errors.New("record not found")

// StatusError 非 200 信封状态；引擎对所有非 200 一视同仁
type StatusError struct {
    Code    int
    Message string
}

func (e *StatusError) Error() string {
    return fmt.Sprintf("gateway status %d: %s", e.Code, e.Message)
}

// ShareScope 分享目标（组/活动/用户，最多一个）
type ShareScope struct {
    GroupID string `json:"group_id,omitempty"`
    EventID string `json:"event_id,omitempty"`
    UserID  string `json:"user_id,omitempty"`
}

// ShareInput 分享请求；PostID 必须是已解析的原帖 ID
type ShareInput struct {
    PostID  string     `json:"post_id" validate:"required"`
    Caption string     `json:"caption"`
    Scope   ShareScope `json:"scope"`
}

type ReportInput struct {
    PostID       string `json:"post_id" validate:"required"`
    ReportTypeID string `json:"report_type_id" validate:"required"`
    Description  string `json:"description"`
}

// PostInput 发帖/编辑帖（multipart 表单的结构化等价）
type PostInput struct {
    Content     string             `json:"content" validate:"required"`
    Attachments []model.Attachment `json:"attachments"`
    Visibility  model.Visibility   `json:"visibility" validate:"required,oneof=public friends private"`
    Latitude    float64            `json:"latitude"`
    Longitude   float64            `json:"longitude"`
    PlaceName   string             `json:"place_name"`
    GroupID     string             `json:"group_id"`
    EventID     string             `json:"event_id"`
}

// Gateway 变更网关：引擎对远端的全部出口。
// 所有实现约定：信封 status_code == 200 时返回 nil error，
// 其余一律返回非 nil（通常为 *StatusError），引擎按统一失败处理。
type Gateway interface {
    FetchFeedPage(ctx context.Context, filter model.Visibility, page int) (*model.FeedPage, error)

    LikePost(ctx context.Context, postID string) error
    UnlikePost(ctx context.Context, postID string) error

    FetchComments(ctx context.Context, postID string, page int) ([]model.Comment, error)
    AddComment(ctx context.Context, postID, text string) error
    AddReply(ctx context.Context, commentID, postID, text string) error
    LikeComment(ctx context.Context, commentID string) error
    UnlikeComment(ctx context.Context, commentID string) error

    SharePost(ctx context.Context, in ShareInput) error
    ReportPost(ctx context.Context, in ReportInput) error
    SavePost(ctx context.Context, postID string) error
    UnsavePost(ctx context.Context, postID string) error
    HidePost(ctx context.Context, postID string) error
    DeletePost(ctx context.Context, postID string) error

    CreatePost(ctx context.Context, in PostInput) error
    UpdatePost(ctx context.Context, postID string, in PostInput) error
}
