package localgw

import (
    "context"

    "github.com/d60-Lab/feedsync/internal/gateway"
    "github.com/d60-Lab/feedsync/internal/model"
)

// Client 把本地权威端适配成引擎的网关接口（压测与进程内测试用，
// 省掉 HTTP 一跳）。viewer 即当前用户。
type Client struct {
    svc    *Service
    viewer string
}

func NewClient(svc *Service, viewerID string) *Client {
    return &Client{svc: svc, viewer: viewerID}
}

func (c *Client) FetchFeedPage(ctx context.Context, filter model.Visibility, page int) (*model.FeedPage, error) {
    return c.svc.FeedPage(ctx, c.viewer, filter, page)
}

func (c *Client) LikePost(ctx context.Context, postID string) error {
    return c.svc.Like(ctx, c.viewer, postID)
}

func (c *Client) UnlikePost(ctx context.Context, postID string) error {
    return c.svc.Unlike(ctx, c.viewer, postID)
}

func (c *Client) FetchComments(ctx context.Context, postID string, page int) ([]model.Comment, error) {
    return c.svc.Comments(ctx, c.viewer, postID, page)
}

func (c *Client) AddComment(ctx context.Context, postID, text string) error {
    return c.svc.AddComment(ctx, c.viewer, postID, text)
}

func (c *Client) AddReply(ctx context.Context, commentID, postID, text string) error {
    return c.svc.AddReply(ctx, c.viewer, commentID, postID, text)
}

func (c *Client) LikeComment(ctx context.Context, commentID string) error {
    return c.svc.LikeComment(ctx, c.viewer, commentID)
}

func (c *Client) UnlikeComment(ctx context.Context, commentID string) error {
    return c.svc.UnlikeComment(ctx, c.viewer, commentID)
}

func (c *Client) SharePost(ctx context.Context, in gateway.ShareInput) error {
    return c.svc.Share(ctx, c.viewer, in)
}

func (c *Client) ReportPost(ctx context.Context, in gateway.ReportInput) error {
    return c.svc.Report(ctx, c.viewer, in)
}

func (c *Client) SavePost(ctx context.Context, postID string) error {
    return c.svc.Save(ctx, c.viewer, postID)
}

func (c *Client) UnsavePost(ctx context.Context, postID string) error {
    return c.svc.Unsave(ctx, c.viewer, postID)
}

func (c *Client) HidePost(ctx context.Context, postID string) error {
    return c.svc.Hide(ctx, c.viewer, postID)
}

func (c *Client) DeletePost(ctx context.Context, postID string) error {
    return c.svc.Delete(ctx, c.viewer, postID)
}

func (c *Client) CreatePost(ctx context.Context, in gateway.PostInput) error {
    return c.svc.Create(ctx, c.viewer, in)
}

func (c *Client) UpdatePost(ctx context.Context, postID string, in gateway.PostInput) error {
    return c.svc.Update(ctx, c.viewer, postID, in)
}

var _ gateway.Gateway = (*Client)(nil)
