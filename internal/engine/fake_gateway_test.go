package engine

import (
    "context"
    "sync"

    "github.com/d60-Lab/feedsync/internal/gateway"
    "github.com/d60-Lab/feedsync/internal/model"
)

type pageKey struct {
    filter model.Visibility
    page   int
}

// opGate 让指定操作阻塞直到释放；entered 在调用进入时关闭，
// 测试据此确定性地安排交错。
type opGate struct {
    entered chan struct{}
    release chan struct{}
    once    sync.Once
}

func (g *opGate) wait() {
    g.once.Do(func() { close(g.entered) })
    <-g.release
}

// fakeGateway 脚本化网关：按操作名计数、注错、阻塞，
// 用于确定性地复现并发交错。
type fakeGateway struct {
    mu        sync.Mutex
    pages     map[pageKey]*model.FeedPage
    comments  map[string][]model.Comment
    errs      map[string]error
    calls     map[string]int
    gates     map[string]*opGate
    pageGates map[pageKey]*opGate

    lastShare  gateway.ShareInput
    lastReport gateway.ReportInput
}

func newFakeGateway() *fakeGateway {
    return &fakeGateway{
        pages:     make(map[pageKey]*model.FeedPage),
        comments:  make(map[string][]model.Comment),
        errs:      make(map[string]error),
        calls:     make(map[string]int),
        gates:     make(map[string]*opGate),
        pageGates: make(map[pageKey]*opGate),
    }
}

func (f *fakeGateway) setPage(filter model.Visibility, page int, total int, posts ...model.Post) {
    f.mu.Lock()
    defer f.mu.Unlock()
    f.pages[pageKey{filter: filter, page: page}] = &model.FeedPage{
        Posts:      posts,
        Pagination: model.Pagination{Page: page, TotalRecords: total},
    }
}

func (f *fakeGateway) setComments(postID string, comments ...model.Comment) {
    f.mu.Lock()
    defer f.mu.Unlock()
    f.comments[postID] = comments
}

func (f *fakeGateway) fail(op string, err error) {
    f.mu.Lock()
    defer f.mu.Unlock()
    f.errs[op] = err
}

func (f *fakeGateway) pass(op string) {
    f.mu.Lock()
    defer f.mu.Unlock()
    delete(f.errs, op)
}

// gateOp 下一批 op 调用将阻塞直到 release 关闭
func (f *fakeGateway) gateOp(op string) *opGate {
    g := &opGate{entered: make(chan struct{}), release: make(chan struct{})}
    f.mu.Lock()
    f.gates[op] = g
    f.mu.Unlock()
    return g
}

// gateFeedPage 只阻塞指定 (filter, page) 的拉取
func (f *fakeGateway) gateFeedPage(filter model.Visibility, page int) *opGate {
    g := &opGate{entered: make(chan struct{}), release: make(chan struct{})}
    f.mu.Lock()
    f.pageGates[pageKey{filter: filter, page: page}] = g
    f.mu.Unlock()
    return g
}

func (f *fakeGateway) callCount(op string) int {
    f.mu.Lock()
    defer f.mu.Unlock()
    return f.calls[op]
}

func (f *fakeGateway) begin(op string) error {
    f.mu.Lock()
    f.calls[op]++
    gate := f.gates[op]
    err := f.errs[op]
    f.mu.Unlock()
    if gate != nil {
        gate.wait()
    }
    return err
}

func (f *fakeGateway) FetchFeedPage(ctx context.Context, filter model.Visibility, page int) (*model.FeedPage, error) {
    err := f.begin("fetch_feed")
    f.mu.Lock()
    pg := f.pageGates[pageKey{filter: filter, page: page}]
    f.mu.Unlock()
    if pg != nil {
        pg.wait()
    }
    if err != nil {
        return nil, err
    }
    f.mu.Lock()
    defer f.mu.Unlock()
    fp, ok := f.pages[pageKey{filter: filter, page: page}]
    if !ok {
        return &model.FeedPage{Pagination: model.Pagination{Page: page}}, nil
    }
    cp := *fp
    cp.Posts = append([]model.Post(nil), fp.Posts...)
    return &cp, nil
}

func (f *fakeGateway) LikePost(ctx context.Context, postID string) error {
    return f.begin("like")
}

func (f *fakeGateway) UnlikePost(ctx context.Context, postID string) error {
    return f.begin("unlike")
}

func (f *fakeGateway) FetchComments(ctx context.Context, postID string, page int) ([]model.Comment, error) {
    if err := f.begin("fetch_comments"); err != nil {
        return nil, err
    }
    f.mu.Lock()
    defer f.mu.Unlock()
    return append([]model.Comment(nil), f.comments[postID]...), nil
}

func (f *fakeGateway) AddComment(ctx context.Context, postID, text string) error {
    return f.begin("add_comment")
}

func (f *fakeGateway) AddReply(ctx context.Context, commentID, postID, text string) error {
    return f.begin("add_reply")
}

func (f *fakeGateway) LikeComment(ctx context.Context, commentID string) error {
    return f.begin("like_comment")
}

func (f *fakeGateway) UnlikeComment(ctx context.Context, commentID string) error {
    return f.begin("unlike_comment")
}

func (f *fakeGateway) SharePost(ctx context.Context, in gateway.ShareInput) error {
    err := f.begin("share")
    f.mu.Lock()
    f.lastShare = in
    f.mu.Unlock()
    return err
}

func (f *fakeGateway) ReportPost(ctx context.Context, in gateway.ReportInput) error {
    err := f.begin("report")
    f.mu.Lock()
    f.lastReport = in
    f.mu.Unlock()
    return err
}

func (f *fakeGateway) SavePost(ctx context.Context, postID string) error {
    return f.begin("save")
}

func (f *fakeGateway) UnsavePost(ctx context.Context, postID string) error {
    return f.begin("unsave")
}

func (f *fakeGateway) HidePost(ctx context.Context, postID string) error {
    return f.begin("hide")
}

func (f *fakeGateway) DeletePost(ctx context.Context, postID string) error {
    return f.begin("delete")
}

func (f *fakeGateway) CreatePost(ctx context.Context, in gateway.PostInput) error {
    return f.begin("create")
}

func (f *fakeGateway) UpdatePost(ctx context.Context, postID string, in gateway.PostInput) error {
    return f.begin("update")
}

var _ gateway.Gateway = (*fakeGateway)(nil)

// 常用夹具

func post(id, authorID string, likes int, liked bool) model.Post {
    return model.Post{
        ID:         id,
        Author:     model.Author{ID: authorID, Username: "u-" + authorID},
        Content:    "content " + id,
        Visibility: model.VisibilityPublic,
        TotalLikes: likes,
        IsLiked:    liked,
    }
}

func comment(id, postID, parentID string, likes int) model.Comment {
    return model.Comment{
        ID:         id,
        PostID:     postID,
        ParentID:   parentID,
        Author:     model.Author{ID: "author-" + id},
        Text:       "text " + id,
        TotalLikes: likes,
    }
}
