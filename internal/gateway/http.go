package gateway

import (
    "bytes"
    "context"
    "encoding/json"
    "fmt"
    "io"
    "net/http"
    "net/url"
    "time"

    "github.com/hashicorp/go-retryablehttp"
    "go.opentelemetry.io/otel"
    "go.opentelemetry.io/otel/attribute"
    "go.opentelemetry.io/otel/trace"
    "golang.org/x/time/rate"

    "github.com/d60-Lab/feedsync/config"
    "github.com/d60-Lab/feedsync/internal/model"
)

// envelope 与 pkg/response.Response 对应的客户端视图
type envelope struct {
    StatusCode int               `json:"status_code"`
    Message    string            `json:"message"`
    Payload    json.RawMessage   `json:"payload"`
    Pagination *model.Pagination `json:"pagination"`
}

// HTTPGateway 基于 REST 的网关实现
type HTTPGateway struct {
    base    string
    token   string
    client  *retryablehttp.Client
    limiter *rate.Limiter
    tracer  trace.Tracer
}

// NewHTTPGateway token 为当前用户的 bearer 凭证（由外部会话层签发）
func NewHTTPGateway(cfg config.GatewayConfig, token string) *HTTPGateway {
    c := retryablehttp.NewClient()
    c.RetryMax = cfg.RetryMax
    c.HTTPClient.Timeout = time.Duration(cfg.TimeoutSec) * time.Second
    c.Logger = nil
    limit := rate.Limit(cfg.RateLimit)
    if cfg.RateLimit <= 0 {
        limit = rate.Inf
    }
    burst := cfg.RateBurst
    if burst <= 0 {
        burst = 1
    }
    return &HTTPGateway{
        base:    cfg.BaseURL,
        token:   token,
        client:  c,
        limiter: rate.NewLimiter(limit, burst),
        tracer:  otel.Tracer("feedsync/gateway"),
    }
}

func (g *HTTPGateway) do(ctx context.Context, method, path string, body any) (*envelope, error) {
    if err := g.limiter.Wait(ctx); err != nil {
        return nil, err
    }
    ctx, span := g.tracer.Start(ctx, "gateway "+method+" "+path)
    defer span.End()

    var rd io.Reader
    if body != nil {
        buf, err := json.Marshal(body)
        if err != nil {
            return nil, err
        }
        rd = bytes.NewReader(buf)
    }
    req, err := retryablehttp.NewRequestWithContext(ctx, method, g.base+path, rd)
    if err != nil {
        return nil, err
    }
    req.Header.Set("Content-Type", "application/json")
    if g.token != "" {
        req.Header.Set("Authorization", "Bearer "+g.token)
    }

    resp, err := g.client.Do(req)
    if err != nil {
        span.RecordError(err)
        return nil, err
    }
    defer resp.Body.Close()

    var env envelope
    if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
        return nil, fmt.Errorf("decode envelope: %w", err)
    }
    span.SetAttributes(attribute.Int("gateway.status_code", env.StatusCode))
    // status_code == 200 是唯一成功判据
    if env.StatusCode != http.StatusOK {
        return nil, &StatusError{Code: env.StatusCode, Message: env.Message}
    }
    return &env, nil
}

func (g *HTTPGateway) FetchFeedPage(ctx context.Context, filter model.Visibility, page int) (*model.FeedPage, error) {
    path := fmt.Sprintf("/api/v1/feed?filter=%s&page=%d", url.QueryEscape(string(filter)), page)
    env, err := g.do(ctx, http.MethodGet, path, nil)
    if err != nil {
        return nil, err
    }
    var posts []model.Post
    if err := json.Unmarshal(env.Payload, &posts); err != nil {
        return nil, fmt.Errorf("decode feed page: %w", err)
    }
    fp := &model.FeedPage{Posts: posts}
    if env.Pagination != nil {
        fp.Pagination = *env.Pagination
    }
    return fp, nil
}

func (g *HTTPGateway) LikePost(ctx context.Context, postID string) error {
    _, err := g.do(ctx, http.MethodPost, "/api/v1/posts/"+postID+"/like", nil)
    return err
}

func (g *HTTPGateway) UnlikePost(ctx context.Context, postID string) error {
    _, err := g.do(ctx, http.MethodPost, "/api/v1/posts/"+postID+"/unlike", nil)
    return err
}

func (g *HTTPGateway) FetchComments(ctx context.Context, postID string, page int) ([]model.Comment, error) {
    path := fmt.Sprintf("/api/v1/posts/%s/comments?page=%d", postID, page)
    env, err := g.do(ctx, http.MethodGet, path, nil)
    if err != nil {
        return nil, err
    }
    var comments []model.Comment
    if err := json.Unmarshal(env.Payload, &comments); err != nil {
        return nil, fmt.Errorf("decode comments: %w", err)
    }
    return comments, nil
}

func (g *HTTPGateway) AddComment(ctx context.Context, postID, text string) error {
    _, err := g.do(ctx, http.MethodPost, "/api/v1/posts/"+postID+"/comments", map[string]string{"text": text})
    return err
}

func (g *HTTPGateway) AddReply(ctx context.Context, commentID, postID, text string) error {
    _, err := g.do(ctx, http.MethodPost, "/api/v1/comments/"+commentID+"/replies",
        map[string]string{"post_id": postID, "text": text})
    return err
}

func (g *HTTPGateway) LikeComment(ctx context.Context, commentID string) error {
    _, err := g.do(ctx, http.MethodPost, "/api/v1/comments/"+commentID+"/like", nil)
    return err
}

func (g *HTTPGateway) UnlikeComment(ctx context.Context, commentID string) error {
    _, err := g.do(ctx, http.MethodPost, "/api/v1/comments/"+commentID+"/unlike", nil)
    return err
}

func (g *HTTPGateway) SharePost(ctx context.Context, in ShareInput) error {
    _, err := g.do(ctx, http.MethodPost, "/api/v1/posts/"+in.PostID+"/share", in)
    return err
}

func (g *HTTPGateway) ReportPost(ctx context.Context, in ReportInput) error {
    _, err := g.do(ctx, http.MethodPost, "/api/v1/posts/"+in.PostID+"/report", in)
    return err
}

func (g *HTTPGateway) SavePost(ctx context.Context, postID string) error {
    _, err := g.do(ctx, http.MethodPost, "/api/v1/posts/"+postID+"/save", nil)
    return err
}

func (g *HTTPGateway) UnsavePost(ctx context.Context, postID string) error {
    _, err := g.do(ctx, http.MethodPost, "/api/v1/posts/"+postID+"/unsave", nil)
    return err
}

func (g *HTTPGateway) HidePost(ctx context.Context, postID string) error {
    _, err := g.do(ctx, http.MethodPost, "/api/v1/posts/"+postID+"/hide", nil)
    return err
}

func (g *HTTPGateway) DeletePost(ctx context.Context, postID string) error {
    _, err := g.do(ctx, http.MethodDelete, "/api/v1/posts/"+postID, nil)
    return err
}

func (g *HTTPGateway) CreatePost(ctx context.Context, in PostInput) error {
    _, err := g.do(ctx, http.MethodPost, "/api/v1/posts", in)
    return err
}

func (g *HTTPGateway) UpdatePost(ctx context.Context, postID string, in PostInput) error {
    _, err := g.do(ctx, http.MethodPut, "/api/v1/posts/"+postID, in)
    return err
}

var _ Gateway = (*HTTPGateway)(nil)
